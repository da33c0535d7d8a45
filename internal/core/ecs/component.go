package ecs

// Storage is the type-erased view of a Pool that the Registry keeps per kind,
// so it can purge a dead entity from every pool without knowing payload types.
type Storage interface {
	Has(e Entity) bool
	RemoveEntityFromPool(e Entity)
	Clear()
	Len() int
}

var _ Storage = (*Pool[struct{}])(nil)

// Pool is packed storage for one component kind. data[0:size] holds no holes:
// removal moves the last element into the freed slot. Two maps translate
// between entities and slots.
type Pool[T any] struct {
	data          []T
	size          int
	entityToIndex map[Entity]int
	indexToEntity map[int]Entity
}

func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool[T]{
		data:          make([]T, capacity),
		entityToIndex: make(map[Entity]int, capacity),
		indexToEntity: make(map[int]Entity, capacity),
	}
}

// Set stores v for e, overwriting in place when e already has a slot and
// appending otherwise. The backing array doubles when full.
func (p *Pool[T]) Set(e Entity, v T) {
	if idx, ok := p.entityToIndex[e]; ok {
		p.data[idx] = v
		return
	}
	if p.size == len(p.data) {
		grown := make([]T, max(2*len(p.data), 1))
		copy(grown, p.data[:p.size])
		p.data = grown
	}
	idx := p.size
	p.entityToIndex[e] = idx
	p.indexToEntity[idx] = e
	p.data[idx] = v
	p.size++
}

// Remove deletes e's slot. e must have one; use RemoveEntityFromPool when
// that is not known.
func (p *Pool[T]) Remove(e Entity) {
	removed, ok := p.entityToIndex[e]
	if !ok {
		violate("pool remove", e, "", "entity has no slot in pool")
	}
	last := p.size - 1
	if removed != last {
		moved := p.indexToEntity[last]
		p.data[removed] = p.data[last]
		p.entityToIndex[moved] = removed
		p.indexToEntity[removed] = moved
	}
	var zero T
	p.data[last] = zero
	delete(p.entityToIndex, e)
	delete(p.indexToEntity, last)
	p.size--
}

// RemoveEntityFromPool is Remove that tolerates a missing slot.
func (p *Pool[T]) RemoveEntityFromPool(e Entity) {
	if _, ok := p.entityToIndex[e]; ok {
		p.Remove(e)
	}
}

// Get returns a pointer to e's payload. The pointer is valid until the next
// Set or Remove on this pool. Panics if e has no slot.
func (p *Pool[T]) Get(e Entity) *T {
	idx, ok := p.entityToIndex[e]
	if !ok {
		violate("pool get", e, "", "entity has no slot in pool")
	}
	return &p.data[idx]
}

func (p *Pool[T]) Has(e Entity) bool {
	_, ok := p.entityToIndex[e]
	return ok
}

func (p *Pool[T]) Len() int { return p.size }
func (p *Pool[T]) Cap() int { return len(p.data) }

func (p *Pool[T]) Clear() {
	clear(p.data[:p.size])
	clear(p.entityToIndex)
	clear(p.indexToEntity)
	p.size = 0
}

// Entities returns the owners of slots 0..Len()-1, in slot order.
func (p *Pool[T]) Entities() []Entity {
	out := make([]Entity, p.size)
	for i := 0; i < p.size; i++ {
		out[i] = p.indexToEntity[i]
	}
	return out
}

// Each calls fn for every slot in packed order. fn must not add to or remove
// from this pool.
func (p *Pool[T]) Each(fn func(Entity, *T)) {
	for i := 0; i < p.size; i++ {
		fn(p.indexToEntity[i], &p.data[i])
	}
}

// index reports e's slot, for invariant checks in tests.
func (p *Pool[T]) index(e Entity) (int, bool) {
	idx, ok := p.entityToIndex[e]
	return idx, ok
}
