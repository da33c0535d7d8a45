package system

import (
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
)

// CollisionSystem emits a CollisionEvent for every pair of overlapping boxes.
// Phase 3 (PostUpdate), after movement.
type CollisionSystem struct {
	ecs.System
	registry  *ecs.Registry
	bus       *event.Bus
	transform ecs.ComponentType[component.Transform]
	collider  ecs.ComponentType[component.BoxCollider]
	bounds    []component.AABB
}

func NewCollisionSystem(r *ecs.Registry, bus *event.Bus) *CollisionSystem {
	s := &CollisionSystem{
		registry:  r,
		bus:       bus,
		transform: ecs.Register[component.Transform](r),
		collider:  ecs.Register[component.BoxCollider](r),
	}
	ecs.RequireComponent[component.Transform](r, &s.System)
	ecs.RequireComponent[component.BoxCollider](r, &s.System)
	return s
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CollisionSystem) Update(_ time.Duration) {
	entities := s.SystemEntities()

	// Handlers may add components, so take box copies up front.
	s.bounds = s.bounds[:0]
	for _, e := range entities {
		t := s.transform.Get(s.registry, e)
		c := s.collider.Get(s.registry, e)
		s.bounds = append(s.bounds, c.Bounds(*t))
	}

	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			if s.bounds[i].Overlaps(s.bounds[j]) {
				event.Emit(s.bus, event.CollisionEvent{A: entities[i], B: entities[j]})
			}
		}
	}
}
