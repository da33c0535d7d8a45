package ecs

import (
	"reflect"

	"go.uber.org/zap"
)

const defaultPoolCapacity = 64

// AddComponent attaches v to e as kind T, overwriting an existing T. The
// signature changes immediately; consumer lists follow at the next Update.
func AddComponent[T any](r *Registry, e Entity, v T) {
	addComponent(r, KindOf[T](r.kinds), e, v)
}

// RemoveComponent detaches kind T from e. Panics if e does not have it.
func RemoveComponent[T any](r *Registry, e Entity) {
	removeComponent[T](r, KindOf[T](r.kinds), e)
}

// HasComponent reports whether e holds kind T. It only tests the signature.
func HasComponent[T any](r *Registry, e Entity) bool {
	id, ok := r.kinds.Lookup(reflect.TypeFor[T]())
	return ok && hasComponent(r, id, e)
}

// GetComponent returns a pointer to e's T. Callers check HasComponent first;
// a missing component panics. The pointer is valid until the next add or
// remove of kind T.
func GetComponent[T any](r *Registry, e Entity) *T {
	return getComponent[T](r, KindOf[T](r.kinds), e)
}

// PoolOf returns the pool for kind T, or nil if no T was ever added.
func PoolOf[T any](r *Registry) *Pool[T] {
	id, ok := r.kinds.Lookup(reflect.TypeFor[T]())
	if !ok || int(id) >= len(r.pools) || r.pools[id] == nil {
		return nil
	}
	return r.pools[id].(*Pool[T])
}

// ComponentType caches the kind id of T for one registry's kind table, so hot
// loops skip the type lookup. Use it only with registries sharing that table.
type ComponentType[T any] struct {
	id KindID
}

// Register resolves T's kind id in r, assigning one if needed.
func Register[T any](r *Registry) ComponentType[T] {
	return ComponentType[T]{id: KindOf[T](r.kinds)}
}

func (c ComponentType[T]) ID() KindID { return c.id }

func (c ComponentType[T]) Add(r *Registry, e Entity, v T) { addComponent(r, c.id, e, v) }
func (c ComponentType[T]) Remove(r *Registry, e Entity)   { removeComponent[T](r, c.id, e) }
func (c ComponentType[T]) Has(r *Registry, e Entity) bool { return hasComponent(r, c.id, e) }
func (c ComponentType[T]) Get(r *Registry, e Entity) *T   { return getComponent[T](r, c.id, e) }

// Pool returns the pool for T, creating it if needed.
func (c ComponentType[T]) Pool(r *Registry) *Pool[T] { return poolFor[T](r, c.id) }

func poolFor[T any](r *Registry, id KindID) *Pool[T] {
	if int(id) >= len(r.pools) {
		r.pools = append(r.pools, make([]Storage, int(id)+1-len(r.pools))...)
	}
	if r.pools[id] == nil {
		r.pools[id] = NewPool[T](defaultPoolCapacity)
	}
	return r.pools[id].(*Pool[T])
}

func addComponent[T any](r *Registry, id KindID, e Entity, v T) {
	r.mustBeAlive("add component", e, id)
	poolFor[T](r, id).Set(e, v)
	sig := &r.signatures[e]
	if !sig.Has(id) {
		sig.Set(id)
		r.signatureChanged(e)
	}
	if ce := r.log.Check(zap.DebugLevel, "component added"); ce != nil {
		ce.Write(zap.Uint32("entity", uint32(e)), zap.String("kind", r.kinds.Name(id)))
	}
}

func removeComponent[T any](r *Registry, id KindID, e Entity) {
	r.mustBeAlive("remove component", e, id)
	if !r.signatures[e].Has(id) {
		violate("remove component", e, r.kinds.Name(id), "component not attached")
	}
	poolFor[T](r, id).Remove(e)
	r.signatures[e].Unset(id)
	r.signatureChanged(e)
	if ce := r.log.Check(zap.DebugLevel, "component removed"); ce != nil {
		ce.Write(zap.Uint32("entity", uint32(e)), zap.String("kind", r.kinds.Name(id)))
	}
}

func hasComponent(r *Registry, id KindID, e Entity) bool {
	return r.entities.alive(e) && r.signatures[e].Has(id)
}

func getComponent[T any](r *Registry, id KindID, e Entity) *T {
	if !hasComponent(r, id, e) {
		violate("get component", e, r.kinds.Name(id), "component not attached")
	}
	return r.pools[id].(*Pool[T]).Get(e)
}

// signatureChanged queues a live entity for consumer re-matching. Pending
// entities are matched by the deferred pass anyway.
func (r *Registry) signatureChanged(e Entity) {
	if r.entities.state(e) == Live {
		r.toRefresh.add(e)
	}
}
