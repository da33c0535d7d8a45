package ecs

import (
	"reflect"
	"strconv"
)

// KindID is the dense id of a component kind within one KindRegistry.
type KindID uint32

// KindRegistry maps component payload types to dense kind ids. Ids are handed
// out on first use, starting at 0. Each Registry owns one unless a shared one is
// injected, so independent registries (and tests) never collide.
type KindRegistry struct {
	ids   map[reflect.Type]KindID
	types []reflect.Type
}

func NewKindRegistry() *KindRegistry {
	return &KindRegistry{
		ids:   make(map[reflect.Type]KindID, MaxComponentKinds),
		types: make([]reflect.Type, 0, MaxComponentKinds),
	}
}

// KindOf returns the kind id for T, assigning the next free id on first use.
// Panics with a ContractViolation past MaxComponentKinds.
func KindOf[T any](k *KindRegistry) KindID {
	return k.idFor(reflect.TypeFor[T]())
}

func (k *KindRegistry) idFor(t reflect.Type) KindID {
	if id, ok := k.ids[t]; ok {
		return id
	}
	if len(k.types) >= MaxComponentKinds {
		violate("register kind", InvalidEntity, t.String(),
			"signature width exhausted ("+strconv.Itoa(MaxComponentKinds)+" kinds)")
	}
	id := KindID(len(k.types))
	k.ids[t] = id
	k.types = append(k.types, t)
	return id
}

// Lookup returns the id for t without assigning one.
func (k *KindRegistry) Lookup(t reflect.Type) (KindID, bool) {
	id, ok := k.ids[t]
	return id, ok
}

// Name returns the Go type name of a kind, or "" for an unassigned id.
func (k *KindRegistry) Name(id KindID) string {
	if int(id) >= len(k.types) {
		return ""
	}
	return k.types[id].String()
}

// Len is the number of kinds assigned so far.
func (k *KindRegistry) Len() int {
	return len(k.types)
}
