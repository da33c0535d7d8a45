package component

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }

// Transform places an entity in the world.
type Transform struct {
	Position Vec2
	Scale    Vec2
	Rotation float64 // degrees
}

// NewTransform returns a transform at pos with unit scale.
func NewTransform(pos Vec2) Transform {
	return Transform{Position: pos, Scale: Vec2{1, 1}}
}

// RigidBody moves its entity by Velocity units per second.
type RigidBody struct {
	Velocity Vec2
}

// BoxCollider is an axis-aligned box relative to the transform position.
// Scale is not applied automatically.
type BoxCollider struct {
	Width  float64
	Height float64
	Offset Vec2
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec2
	Max Vec2
}

// Bounds returns the collider's box for a transform.
func (c BoxCollider) Bounds(t Transform) AABB {
	lo := t.Position.Add(c.Offset)
	return AABB{Min: lo, Max: lo.Add(Vec2{c.Width, c.Height})}
}

// Overlaps reports whether the boxes touch or intersect.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}
