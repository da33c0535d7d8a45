package system

import (
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
)

// ProjectileLifecycleSystem kills projectiles whose lifetime ran out. The
// kill takes effect at the next frame's deferred pass. Phase 4 (Cleanup).
type ProjectileLifecycleSystem struct {
	ecs.System
	registry   *ecs.Registry
	projectile ecs.ComponentType[component.Projectile]
}

func NewProjectileLifecycleSystem(r *ecs.Registry) *ProjectileLifecycleSystem {
	s := &ProjectileLifecycleSystem{
		registry:   r,
		projectile: ecs.Register[component.Projectile](r),
	}
	ecs.RequireComponent[component.Projectile](r, &s.System)
	return s
}

func (s *ProjectileLifecycleSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *ProjectileLifecycleSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for _, e := range s.SystemEntities() {
		p := s.projectile.Get(s.registry, e)
		p.Lifetime -= sec
		if p.Lifetime <= 0 {
			s.registry.KillEntity(e)
		}
	}
}
