package system

import (
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
	"go.uber.org/zap"
)

// Install registers every gameplay system with the registry (as a consumer)
// and with the runner (as per-frame logic).
func Install(r *ecs.Registry, bus *event.Bus, runner *coresys.Runner, log *zap.Logger) {
	runner.Register(ecs.AddSystem(r, NewKeyboardControlSystem(r)))
	runner.Register(ecs.AddSystem(r, NewProjectileEmitSystem(r)))
	runner.Register(ecs.AddSystem(r, NewMovementSystem(r)))
	runner.Register(ecs.AddSystem(r, NewCollisionSystem(r, bus)))
	runner.Register(ecs.AddSystem(r, NewDamageSystem(r, log)))
	runner.Register(ecs.AddSystem(r, NewProjectileLifecycleSystem(r)))
}
