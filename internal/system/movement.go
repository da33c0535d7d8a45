package system

import (
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
)

// MovementSystem integrates velocity into position. Phase 2 (Update).
type MovementSystem struct {
	ecs.System
	registry  *ecs.Registry
	transform ecs.ComponentType[component.Transform]
	body      ecs.ComponentType[component.RigidBody]
}

func NewMovementSystem(r *ecs.Registry) *MovementSystem {
	s := &MovementSystem{
		registry:  r,
		transform: ecs.Register[component.Transform](r),
		body:      ecs.Register[component.RigidBody](r),
	}
	ecs.RequireComponent[component.Transform](r, &s.System)
	ecs.RequireComponent[component.RigidBody](r, &s.System)
	return s
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for _, e := range s.SystemEntities() {
		t := s.transform.Get(s.registry, e)
		b := s.body.Get(s.registry, e)
		t.Position = t.Position.Add(b.Velocity.Scale(sec))
	}
}
