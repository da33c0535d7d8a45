package event

import "github.com/l1jgo/engine2d/internal/core/ecs"

// CollisionEvent reports that the boxes of A and B overlap this frame.
type CollisionEvent struct {
	A ecs.Entity
	B ecs.Entity
}

// KeyPressedEvent carries a key name from the input layer ("up", "space", ...).
type KeyPressedEvent struct {
	Key string
}

// EntityDamagedEvent is emitted after a projectile hit is applied.
type EntityDamagedEvent struct {
	Entity    ecs.Entity
	Source    ecs.Entity
	Amount    int
	Remaining int
}
