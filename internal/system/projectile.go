package system

import (
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
)

const projectileSize = 4

// ProjectileEmitSystem spawns projectiles from emitters on a timer, and from
// the player's emitter when space is pressed. New projectiles join consumers
// at the next frame. Phase 1 (PreUpdate).
type ProjectileEmitSystem struct {
	ecs.System
	registry   *ecs.Registry
	emitter    ecs.ComponentType[component.ProjectileEmitter]
	transform  ecs.ComponentType[component.Transform]
	collider   ecs.ComponentType[component.BoxCollider]
	body       ecs.ComponentType[component.RigidBody]
	projectile ecs.ComponentType[component.Projectile]
}

func NewProjectileEmitSystem(r *ecs.Registry) *ProjectileEmitSystem {
	s := &ProjectileEmitSystem{
		registry:   r,
		emitter:    ecs.Register[component.ProjectileEmitter](r),
		transform:  ecs.Register[component.Transform](r),
		collider:   ecs.Register[component.BoxCollider](r),
		body:       ecs.Register[component.RigidBody](r),
		projectile: ecs.Register[component.Projectile](r),
	}
	ecs.RequireComponent[component.ProjectileEmitter](r, &s.System)
	ecs.RequireComponent[component.Transform](r, &s.System)
	return s
}

func (s *ProjectileEmitSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *ProjectileEmitSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for _, e := range s.SystemEntities() {
		em := s.emitter.Get(s.registry, e)
		if em.RepeatFrequency <= 0 {
			continue
		}
		em.SinceLastEmission += sec
		if em.SinceLastEmission >= em.RepeatFrequency {
			em.SinceLastEmission = 0
			s.Emit(e)
		}
	}
}

func (s *ProjectileEmitSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s.onKeyPressed)
}

func (s *ProjectileEmitSystem) onKeyPressed(ev event.KeyPressedEvent) {
	if ev.Key != KeySpace {
		return
	}
	player := s.registry.GetEntityByTag(TagPlayer)
	if player.IsValid() && s.Contains(player) {
		s.Emit(player)
	}
}

// Emit spawns one projectile from owner's emitter, centred on owner's box
// when it has one.
func (s *ProjectileEmitSystem) Emit(owner ecs.Entity) ecs.Entity {
	r := s.registry

	// Copy what we need: adding components below can move pool storage.
	em := *s.emitter.Get(r, owner)
	pos := s.transform.Get(r, owner).Position
	if s.collider.Has(r, owner) {
		c := *s.collider.Get(r, owner)
		pos = pos.Add(c.Offset).Add(component.Vec2{X: c.Width / 2, Y: c.Height / 2})
	}

	p := r.CreateEntity()
	r.GroupEntity(p, GroupProjectiles)
	s.transform.Add(r, p, component.NewTransform(pos))
	s.body.Add(r, p, component.RigidBody{Velocity: em.ProjectileVelocity})
	s.collider.Add(r, p, component.BoxCollider{Width: projectileSize, Height: projectileSize})
	proj := component.NewProjectile(em.HitDamage, em.ProjectileDuration, em.Friendly)
	proj.Owner = owner
	s.projectile.Add(r, p, proj)
	return p
}
