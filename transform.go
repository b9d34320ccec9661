package serenity

// Transform describes a placement in 2D space by its individual properties.
// The zero Transform has a zero scale and collapses everything to a point;
// use NewTransform for the identity placement.
type Transform struct {
	Position Vector2
	Scale    Vector2
	Rotation float64 // radians
	Pivot    Vector2 // origin of scale and rotation, in local units
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: Vector2{1, 1}}
}

// Matrix composes the transform's properties into an affine matrix.
//
// Composition order:
//
//	Translate(-Pivot) -> Scale -> Rotate -> Translate(Position)
func (t Transform) Matrix() Matrix {
	return Translate(-t.Pivot.X, -t.Pivot.Y).
		Then(Scale(t.Scale.X, t.Scale.Y)).
		Then(Rotate(t.Rotation)).
		Then(Translate(t.Position.X, t.Position.Y))
}

// Within returns the world matrix of t placed inside a parent transform
// whose world matrix is parent.
func (t Transform) Within(parent Matrix) Matrix {
	return Multiply(parent, t.Matrix())
}

// LocalToWorld converts a point in t's local space to the space t lives in.
func (t Transform) LocalToWorld(p Vector2) Vector2 {
	return t.Matrix().Apply(p)
}

// WorldToLocal converts a point into t's local space. A degenerate
// transform (zero scale) maps every point to itself.
func (t Transform) WorldToLocal(p Vector2) Vector2 {
	inv, _ := t.Matrix().Invert()
	return inv.Apply(p)
}
