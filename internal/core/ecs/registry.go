package ecs

import (
	"reflect"
	"slices"

	"go.uber.org/zap"
)

const defaultCapacity = 1024

// Options configures a Registry. The zero value is usable.
type Options struct {
	// InitialCapacity pre-sizes the per-entity tables.
	InitialCapacity int
	// Kinds shares a kind-id table between registries. Nil gives the
	// registry its own.
	Kinds  *KindRegistry
	Logger *zap.Logger
}

// Registry owns entities, their signatures, the component pools, the
// registered consumers and the tag/group indices. Entity creation and
// destruction are buffered and applied to consumers by Update, once per frame,
// so consumer entity lists never change while systems iterate them.
//
// A Registry is not safe for concurrent use; drive it from the game loop.
type Registry struct {
	log        *zap.Logger
	kinds      *KindRegistry
	entities   entityPool
	signatures []Signature
	pools      []Storage // indexed by KindID, nil until first use

	systems     map[reflect.Type]Consumer
	systemOrder []reflect.Type
	backfill    []Consumer

	tags   tagIndex
	groups groupIndex

	toAdd     entitySet
	toKill    entitySet
	toRefresh entitySet
}

func NewRegistry(opts Options) *Registry {
	capacity := opts.InitialCapacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	kinds := opts.Kinds
	if kinds == nil {
		kinds = NewKindRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:        log,
		kinds:      kinds,
		entities:   newEntityPool(capacity),
		signatures: make([]Signature, 0, capacity),
		pools:      make([]Storage, 0, 16),
		systems:    make(map[reflect.Type]Consumer, 16),
		tags:       newTagIndex(),
		groups:     newGroupIndex(),
		toAdd:      newEntitySet(),
		toKill:     newEntitySet(),
		toRefresh:  newEntitySet(),
	}
}

// Kinds returns the kind-id table used by this registry.
func (r *Registry) Kinds() *KindRegistry { return r.kinds }

// ── Entities ──────────────────────────────────────────────────────

// CreateEntity allocates an identity with an empty signature. It joins
// consumers at the next Update.
func (r *Registry) CreateEntity() Entity {
	e := r.entities.create()
	if int(e) >= len(r.signatures) {
		r.signatures = append(r.signatures, Signature{})
	} else {
		r.signatures[e].Reset()
	}
	r.toAdd.add(e)
	r.log.Debug("entity created", zap.Uint32("entity", uint32(e)))
	return e
}

// KillEntity requests destruction of e at the next Update. Repeated requests
// collapse into one. Requests for identities that are not alive are ignored.
func (r *Registry) KillEntity(e Entity) {
	switch r.entities.state(e) {
	case PendingAdd, Live:
		r.entities.set(e, PendingKill)
		r.toKill.add(e)
		r.log.Debug("entity kill requested", zap.Uint32("entity", uint32(e)))
	case PendingKill:
	default:
		r.log.Warn("kill requested for dead entity", zap.Uint32("entity", uint32(e)))
	}
}

// State reports where e is in its lifecycle.
func (r *Registry) State(e Entity) EntityState {
	return r.entities.state(e)
}

// Alive reports whether e is pending add, live or pending kill.
func (r *Registry) Alive(e Entity) bool {
	return r.entities.alive(e)
}

// Signature returns e's current component signature.
func (r *Registry) Signature(e Entity) Signature {
	if !r.entities.alive(e) {
		return Signature{}
	}
	return r.signatures[e]
}

// Len is the number of identities currently in use (pending or live).
func (r *Registry) Len() int {
	return r.entities.allocated() - r.entities.free()
}

// PendingAdds and PendingKills report queued work for the next Update.
func (r *Registry) PendingAdds() int  { return r.toAdd.len() }
func (r *Registry) PendingKills() int { return r.toKill.len() }

func (r *Registry) mustBeAlive(op string, e Entity, kind KindID) {
	if !r.entities.alive(e) {
		violate(op, e, r.kinds.Name(kind), "entity is "+r.entities.state(e).String())
	}
}

// ── Deferred pass ─────────────────────────────────────────────────

// Update applies every buffered change in two phases. Kills first: each
// entity leaves its consumers, loses its signature, components, tag and
// group, and its id goes to the back of the free list. Then adds: each new
// entity, and each live entity whose signature changed since the last pass,
// is matched against every consumer.
func (r *Registry) Update() {
	if r.toKill.len() == 0 && r.toAdd.len() == 0 && r.toRefresh.len() == 0 && len(r.backfill) == 0 {
		return
	}
	killed := r.toKill.len()
	for _, e := range r.toKill.items() {
		r.removeFromSystems(e)
		r.signatures[e].Reset()
		for _, p := range r.pools {
			if p != nil {
				p.RemoveEntityFromPool(e)
			}
		}
		r.tags.remove(e)
		r.groups.remove(e)
		r.toAdd.remove(e)
		r.toRefresh.remove(e)
		r.entities.release(e)
	}
	r.toKill.clear()

	for _, c := range r.backfill {
		r.fillSystem(c.base())
	}
	r.backfill = r.backfill[:0]

	added := r.toAdd.len()
	for _, e := range r.toAdd.items() {
		r.entities.set(e, Live)
		r.syncSystems(e)
	}
	r.toAdd.clear()

	for _, e := range r.toRefresh.items() {
		r.syncSystems(e)
	}
	r.toRefresh.clear()

	r.log.Debug("registry updated",
		zap.Int("killed", killed),
		zap.Int("added", added),
		zap.Int("entities", r.Len()),
	)
}

// syncSystems makes e's membership in every consumer match its signature.
func (r *Registry) syncSystems(e Entity) {
	sig := r.signatures[e]
	for _, t := range r.systemOrder {
		s := r.systems[t].base()
		if s.interestedIn(sig) {
			s.AddEntityToSystem(e)
		} else {
			s.RemoveEntityFromSystem(e)
		}
	}
}

func (r *Registry) removeFromSystems(e Entity) {
	for _, t := range r.systemOrder {
		r.systems[t].base().RemoveEntityFromSystem(e)
	}
}

// fillSystem rebuilds a newly registered consumer's list from the live
// entities.
func (r *Registry) fillSystem(s *System) {
	s.reset()
	for id := 0; id < r.entities.allocated(); id++ {
		e := Entity(id)
		if r.entities.state(e) == Live && s.interestedIn(r.signatures[e]) {
			s.AddEntityToSystem(e)
		}
	}
}

// ── Consumers ─────────────────────────────────────────────────────

// AddSystem registers s, keyed by its concrete type; a previously registered
// system of the same type is replaced. s's requirements are frozen and its
// entity list is rebuilt at the next Update. Adding an instance that is
// already registered does nothing.
func AddSystem[S Consumer](r *Registry, s S) S {
	t := reflect.TypeOf(s)
	b := s.base()
	b.sealed = true
	if old, ok := r.systems[t]; ok {
		if old.base() == b {
			return s
		}
		r.dropBackfill(old)
	} else {
		r.systemOrder = append(r.systemOrder, t)
	}
	r.systems[t] = s
	r.backfill = append(r.backfill, s)
	r.log.Debug("system added",
		zap.String("system", t.String()),
		zap.Stringer("signature", b.signature),
	)
	return s
}

// GetSystem returns the registered system of type S. Panics if there is none.
func GetSystem[S Consumer](r *Registry) S {
	t := reflect.TypeFor[S]()
	c, ok := r.systems[t]
	if !ok {
		violate("get system", InvalidEntity, "", "no system of type "+t.String())
	}
	return c.(S)
}

func HasSystem[S Consumer](r *Registry) bool {
	_, ok := r.systems[reflect.TypeFor[S]()]
	return ok
}

// RemoveSystem unregisters the system of type S, if any.
func RemoveSystem[S Consumer](r *Registry) {
	t := reflect.TypeFor[S]()
	c, ok := r.systems[t]
	if !ok {
		return
	}
	delete(r.systems, t)
	r.systemOrder = slices.DeleteFunc(r.systemOrder, func(x reflect.Type) bool { return x == t })
	r.dropBackfill(c)
	r.log.Debug("system removed", zap.String("system", t.String()))
}

// Systems lists registered consumers in registration order.
func (r *Registry) Systems() []Consumer {
	out := make([]Consumer, 0, len(r.systemOrder))
	for _, t := range r.systemOrder {
		out = append(out, r.systems[t])
	}
	return out
}

func (r *Registry) dropBackfill(c Consumer) {
	r.backfill = slices.DeleteFunc(r.backfill, func(x Consumer) bool { return x.base() == c.base() })
}

// ── Tags & groups ─────────────────────────────────────────────────

// TagEntity gives e the unique label tag. e's previous tag, and any other
// entity's claim on tag, are dropped.
func (r *Registry) TagEntity(e Entity, tag string) {
	if !r.entities.alive(e) {
		violate("tag entity", e, "", "entity is "+r.entities.state(e).String())
	}
	r.tags.set(e, tag)
}

func (r *Registry) RemoveEntityTag(e Entity) { r.tags.remove(e) }

func (r *Registry) EntityHasTag(e Entity, tag string) bool {
	t, ok := r.tags.byEntity[e]
	return ok && t == tag
}

// EntityTag returns e's tag, if it has one.
func (r *Registry) EntityTag(e Entity) (string, bool) {
	t, ok := r.tags.byEntity[e]
	return t, ok
}

// GetEntityByTag returns the entity holding tag, or InvalidEntity.
func (r *Registry) GetEntityByTag(tag string) Entity {
	if e, ok := r.tags.byTag[tag]; ok {
		return e
	}
	return InvalidEntity
}

// GroupEntity puts e in group. An entity belongs to one group at most;
// joining another group leaves the previous one.
func (r *Registry) GroupEntity(e Entity, group string) {
	if !r.entities.alive(e) {
		violate("group entity", e, "", "entity is "+r.entities.state(e).String())
	}
	r.groups.set(e, group)
}

func (r *Registry) RemoveEntityGroup(e Entity) { r.groups.remove(e) }

func (r *Registry) EntityBelongsToGroup(e Entity, group string) bool {
	g, ok := r.groups.byEntity[e]
	return ok && g == group
}

// EntityGroup returns e's group, if it has one.
func (r *Registry) EntityGroup(e Entity) (string, bool) {
	g, ok := r.groups.byEntity[e]
	return g, ok
}

// GetEntitiesByGroup returns the members of group in ascending id order.
func (r *Registry) GetEntitiesByGroup(group string) []Entity {
	return r.groups.members(group)
}
