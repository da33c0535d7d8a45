package ecs

// System is the consumer base every entity-processing system embeds. It holds
// the required signature, fixed once the system is registered, and the list
// of entities the Registry routed to it.
//
//	type MovementSystem struct {
//		ecs.System
//	}
//
//	s := &MovementSystem{}
//	ecs.RequireComponent[Transform](reg, &s.System)
//	ecs.RequireComponent[RigidBody](reg, &s.System)
//	ecs.AddSystem(reg, s)
type System struct {
	signature Signature
	entities  []Entity
	index     map[Entity]int
	sealed    bool
}

// Consumer is satisfied by any pointer to a struct embedding System.
type Consumer interface {
	SystemSignature() Signature
	SystemEntities() []Entity
	base() *System
}

func (s *System) base() *System { return s }

// RequireComponent adds kind T to the system's required signature. Panics once
// the system has been added to a Registry.
func RequireComponent[T any](r *Registry, s *System) {
	id := KindOf[T](r.kinds)
	if s.sealed {
		violate("require component", InvalidEntity, r.kinds.Name(id),
			"requirements are fixed once the system is registered")
	}
	s.signature.Set(id)
}

// SystemSignature is the required-component signature.
func (s *System) SystemSignature() Signature { return s.signature }

// SystemEntities returns the routed entities. The slice is owned by the system
// and stays stable until the next Registry.Update.
func (s *System) SystemEntities() []Entity { return s.entities }

// Contains reports whether e is currently routed to the system.
func (s *System) Contains(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// AddEntityToSystem appends e unless already present. Called by the
// Registry's deferred pass only.
func (s *System) AddEntityToSystem(e Entity) {
	if s.index == nil {
		s.index = make(map[Entity]int)
	}
	if _, ok := s.index[e]; ok {
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
}

// RemoveEntityFromSystem drops e by moving the last entity into its place.
// Called by the Registry's deferred pass only.
func (s *System) RemoveEntityFromSystem(e Entity) {
	idx, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if idx != last {
		moved := s.entities[last]
		s.entities[idx] = moved
		s.index[moved] = idx
	}
	s.entities = s.entities[:last]
	delete(s.index, e)
}

func (s *System) interestedIn(sig Signature) bool {
	return sig.Contains(s.signature)
}

func (s *System) reset() {
	s.entities = s.entities[:0]
	clear(s.index)
}
