package component

import "github.com/l1jgo/engine2d/internal/core/ecs"

// Health is the remaining hit points of an entity.
type Health struct {
	Current int
	Max     int
}

func NewHealth(hp int) Health {
	return Health{Current: hp, Max: hp}
}

// Projectile damages what it hits and expires after its duration.
// Friendly projectiles hit enemies; hostile ones hit the player.
type Projectile struct {
	HitDamage int
	Duration  float64 // seconds
	Friendly  bool
	Lifetime  float64    // seconds left
	Owner     ecs.Entity // never hit by its own projectile
}

func NewProjectile(damage int, duration float64, friendly bool) Projectile {
	return Projectile{
		HitDamage: damage,
		Duration:  duration,
		Friendly:  friendly,
		Lifetime:  duration,
		Owner:     ecs.InvalidEntity,
	}
}

// ProjectileEmitter spawns projectiles every RepeatFrequency seconds.
// A zero frequency only fires on demand.
type ProjectileEmitter struct {
	ProjectileVelocity Vec2
	RepeatFrequency    float64 // seconds
	ProjectileDuration float64 // seconds
	HitDamage          int
	Friendly           bool
	SinceLastEmission  float64 // seconds
}
