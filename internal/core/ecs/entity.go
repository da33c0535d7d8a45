package ecs

import (
	"math"
	"strconv"
)

// Entity is an opaque, recyclable identity. It carries no data of its own; it
// is only a key into the Registry's per-entity tables.
type Entity uint32

// InvalidEntity is returned by lookups that find nothing.
const InvalidEntity Entity = math.MaxUint32

func (e Entity) ID() uint32     { return uint32(e) }
func (e Entity) IsValid() bool  { return e != InvalidEntity }
func (e Entity) String() string { return strconv.FormatUint(uint64(e), 10) }

// EntityState is the lifecycle position of an identity.
type EntityState uint8

const (
	Unborn      EntityState = iota // never allocated, or freed by the last deferred pass
	PendingAdd                     // created, waiting for the next Update
	Live                           // routed to consumers
	PendingKill                    // kill requested, still readable until the next Update
)

func (s EntityState) String() string {
	switch s {
	case Unborn:
		return "unborn"
	case PendingAdd:
		return "pending-add"
	case Live:
		return "live"
	case PendingKill:
		return "pending-kill"
	}
	return "unknown"
}

// entityPool hands out identities and recycles freed ones oldest-first, so a
// stale reference has the longest possible window before its id is reused.
type entityPool struct {
	states   []EntityState
	freeList []Entity
	nextID   uint32
}

func newEntityPool(capacity int) entityPool {
	return entityPool{
		states:   make([]EntityState, 0, capacity),
		freeList: make([]Entity, 0, capacity/4),
	}
}

func (p *entityPool) create() Entity {
	if len(p.freeList) > 0 {
		e := p.freeList[0]
		p.freeList = p.freeList[1:]
		p.states[e] = PendingAdd
		return e
	}
	e := Entity(p.nextID)
	p.nextID++
	p.states = append(p.states, PendingAdd)
	return e
}

func (p *entityPool) state(e Entity) EntityState {
	if uint32(e) >= p.nextID {
		return Unborn
	}
	return p.states[e]
}

func (p *entityPool) set(e Entity, s EntityState) {
	p.states[e] = s
}

// release returns e to the back of the free list.
func (p *entityPool) release(e Entity) {
	p.states[e] = Unborn
	p.freeList = append(p.freeList, e)
}

// allocated is the number of identities ever issued (the signature table length).
func (p *entityPool) allocated() int { return int(p.nextID) }

func (p *entityPool) free() int { return len(p.freeList) }

// alive reports whether e is readable: pending add, live, or pending kill.
func (p *entityPool) alive(e Entity) bool {
	s := p.state(e)
	return s != Unborn
}
