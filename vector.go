package serenity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned when a vector is divided by an exactly-zero
// scalar.
var ErrDivisionByZero = errors.New("division by zero")

// Vector2 is an immutable 2D vector used for positions, offsets, sizes, and
// directions throughout the API. Every operation returns a new value.
type Vector2 struct {
	X, Y float64
}

// Vec2 is shorthand for Vector2{X: x, Y: y}.
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies every component by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// ScaleComponentwise returns the Hadamard product of v and o.
func (v Vector2) ScaleComponentwise(o Vector2) Vector2 {
	return Vector2{v.X * o.X, v.Y * o.Y}
}

// Div divides every component by s. It fails with ErrDivisionByZero when s
// is exactly zero.
func (v Vector2) Div(s float64) (Vector2, error) {
	if s == 0 {
		return Vector2{}, fmt.Errorf("divide %v: %w", v, ErrDivisionByZero)
	}
	return Vector2{v.X / s, v.Y / s}, nil
}

// Magnitude returns the Euclidean length of v.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself.
func (v Vector2) Normalize() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return Vector2{}
	}
	return Vector2{v.X / m, v.Y / m}
}

// Dot returns the inner product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Distance returns the Euclidean distance between v and o.
func (v Vector2) Distance(o Vector2) float64 {
	return o.Sub(v).Magnitude()
}

// Lerp interpolates from v toward o. t is clamped to [0, 1].
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

func (v Vector2) String() string {
	return fmt.Sprintf("Vector2(%g, %g)", v.X, v.Y)
}

// Vector3 is an immutable 3D vector.
type Vector3 struct {
	X, Y, Z float64
}

// Vec3 is shorthand for Vector3{X: x, Y: y, Z: z}.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale multiplies every component by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// ScaleComponentwise returns the Hadamard product of v and o.
func (v Vector3) ScaleComponentwise(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Div divides every component by s. It fails with ErrDivisionByZero when s
// is exactly zero.
func (v Vector3) Div(s float64) (Vector3, error) {
	if s == 0 {
		return Vector3{}, fmt.Errorf("divide %v: %w", v, ErrDivisionByZero)
	}
	return Vector3{v.X / s, v.Y / s, v.Z / s}, nil
}

// Magnitude returns the Euclidean length of v.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself.
func (v Vector3) Normalize() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return Vector3{}
	}
	return Vector3{v.X / m, v.Y / m, v.Z / m}
}

// Dot returns the inner product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the right-handed cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Distance returns the Euclidean distance between v and o.
func (v Vector3) Distance(o Vector3) float64 {
	return o.Sub(v).Magnitude()
}

// Lerp interpolates from v toward o. t is clamped to [0, 1].
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return Vector3{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t), Lerp(v.Z, o.Z, t)}
}

func (v Vector3) String() string {
	return fmt.Sprintf("Vector3(%g, %g, %g)", v.X, v.Y, v.Z)
}

// --- Scalar helpers ---

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Lerp linearly interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	return a + (b-a)*t
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
