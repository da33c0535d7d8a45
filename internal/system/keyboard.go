package system

import (
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
)

// Key names published by the input layer.
const (
	KeyUp    = "up"
	KeyRight = "right"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeySpace = "space"
)

// KeyboardControlSystem sets the velocity of keyboard-controlled entities
// when a direction key is pressed. Phase 0 (Input).
type KeyboardControlSystem struct {
	ecs.System
	registry *ecs.Registry
	control  ecs.ComponentType[component.KeyboardControl]
	body     ecs.ComponentType[component.RigidBody]
}

func NewKeyboardControlSystem(r *ecs.Registry) *KeyboardControlSystem {
	s := &KeyboardControlSystem{
		registry: r,
		control:  ecs.Register[component.KeyboardControl](r),
		body:     ecs.Register[component.RigidBody](r),
	}
	ecs.RequireComponent[component.KeyboardControl](r, &s.System)
	ecs.RequireComponent[component.RigidBody](r, &s.System)
	return s
}

func (s *KeyboardControlSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Update does nothing: velocities change in the key handler.
func (s *KeyboardControlSystem) Update(_ time.Duration) {}

func (s *KeyboardControlSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s.onKeyPressed)
}

func (s *KeyboardControlSystem) onKeyPressed(ev event.KeyPressedEvent) {
	for _, e := range s.SystemEntities() {
		kc := s.control.Get(s.registry, e)
		b := s.body.Get(s.registry, e)
		switch ev.Key {
		case KeyUp:
			b.Velocity = kc.UpVelocity
		case KeyRight:
			b.Velocity = kc.RightVelocity
		case KeyDown:
			b.Velocity = kc.DownVelocity
		case KeyLeft:
			b.Velocity = kc.LeftVelocity
		}
	}
}
