package component

// KeyboardControl maps direction keys to velocities.
type KeyboardControl struct {
	UpVelocity    Vec2
	RightVelocity Vec2
	DownVelocity  Vec2
	LeftVelocity  Vec2
}
