package system

import (
	"time"

	"github.com/l1jgo/engine2d/internal/core/event"
)

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: react to input events
	PhasePreUpdate               // 1: spawn and schedule
	PhaseUpdate                  // 2: game logic, movement
	PhasePostUpdate              // 3: collision detection
	PhaseCleanup                 // 4: expire and kill
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the per-frame logic every gameplay system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Subscriber is implemented by systems that handle events. The runner calls
// it once per frame on a freshly reset bus.
type Subscriber interface {
	SubscribeToEvents(bus *event.Bus)
}
