package system

import (
	"sort"
	"time"

	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	"go.uber.org/zap"
)

// Runner drives one frame: reset the bus, let subscribers re-subscribe, apply
// the registry's deferred pass, then run systems in phase order.
type Runner struct {
	registry *ecs.Registry
	bus      *event.Bus
	log      *zap.Logger
	systems  []System
	sorted   bool
	frame    uint64
}

func NewRunner(registry *ecs.Registry, bus *event.Bus, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		registry: registry,
		bus:      bus,
		log:      log,
		systems:  make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs one full frame.
func (r *Runner) Tick(dt time.Duration) {
	r.begin()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.frame++
}

// TickPhase runs the frame prologue and then only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.begin()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
	r.frame++
}

// Frame is the number of completed ticks.
func (r *Runner) Frame() uint64 { return r.frame }

// Systems returns the registered systems in execution order.
func (r *Runner) Systems() []System {
	r.ensureSorted()
	return r.systems
}

func (r *Runner) begin() {
	r.ensureSorted()
	r.bus.Reset()
	for _, s := range r.systems {
		if sub, ok := s.(Subscriber); ok {
			sub.SubscribeToEvents(r.bus)
		}
	}
	r.registry.Update()
	if ce := r.log.Check(zap.DebugLevel, "frame started"); ce != nil {
		ce.Write(
			zap.Uint64("frame", r.frame),
			zap.Int("entities", r.registry.Len()),
			zap.Int("handlers", r.bus.Len()),
		)
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
