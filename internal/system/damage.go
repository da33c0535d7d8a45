package system

import (
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
	"go.uber.org/zap"
)

// Tags and groups the gameplay systems understand.
const (
	TagPlayer        = "player"
	GroupEnemies     = "enemies"
	GroupProjectiles = "projectiles"
)

// DamageSystem applies projectile hits reported by CollisionSystem. Friendly
// projectiles hurt the enemies group, hostile ones the player tag. A
// projectile is spent on its first hit. Phase 3 (PostUpdate), driven by events.
type DamageSystem struct {
	ecs.System
	registry   *ecs.Registry
	bus        *event.Bus
	log        *zap.Logger
	projectile ecs.ComponentType[component.Projectile]
	health     ecs.ComponentType[component.Health]
}

func NewDamageSystem(r *ecs.Registry, log *zap.Logger) *DamageSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &DamageSystem{
		registry:   r,
		log:        log,
		projectile: ecs.Register[component.Projectile](r),
		health:     ecs.Register[component.Health](r),
	}
	ecs.RequireComponent[component.BoxCollider](r, &s.System)
	return s
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DamageSystem) Update(_ time.Duration) {}

func (s *DamageSystem) SubscribeToEvents(bus *event.Bus) {
	s.bus = bus
	event.Subscribe(bus, s.onCollision)
}

func (s *DamageSystem) onCollision(ev event.CollisionEvent) {
	if !s.hit(ev.A, ev.B) {
		s.hit(ev.B, ev.A)
	}
}

func (s *DamageSystem) hit(projectile, target ecs.Entity) bool {
	r := s.registry
	if !s.projectile.Has(r, projectile) || !s.health.Has(r, target) {
		return false
	}
	if r.State(projectile) == ecs.PendingKill || r.State(target) == ecs.PendingKill {
		return false
	}
	p := s.projectile.Get(r, projectile)
	if p.Owner == target {
		return false
	}
	if p.Friendly && !r.EntityBelongsToGroup(target, GroupEnemies) {
		return false
	}
	if !p.Friendly && !r.EntityHasTag(target, TagPlayer) {
		return false
	}

	// Copy out of the pools: damage handlers may add components.
	damage := p.HitDamage
	h := s.health.Get(r, target)
	remaining := max(h.Current-damage, 0)
	h.Current = remaining
	r.KillEntity(projectile)
	s.log.Debug("projectile hit",
		zap.Uint32("projectile", projectile.ID()),
		zap.Uint32("target", target.ID()),
		zap.Int("damage", damage),
		zap.Int("health", remaining),
	)
	if s.bus != nil {
		event.Emit(s.bus, event.EntityDamagedEvent{
			Entity:    target,
			Source:    projectile,
			Amount:    damage,
			Remaining: remaining,
		})
	}
	if remaining == 0 {
		r.KillEntity(target)
	}
	return true
}
