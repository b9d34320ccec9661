package serenity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector2Arithmetic(t *testing.T) {
	a := Vec2(3, 4)
	b := Vec2(-1, 2)

	assertVec(t, "add", a.Add(b), Vec2(2, 6))
	assertVec(t, "sub", a.Sub(b), Vec2(4, 2))
	assertVec(t, "scale", a.Scale(2), Vec2(6, 8))
	assertVec(t, "componentwise", a.ScaleComponentwise(b), Vec2(-3, 8))
	assertNear(t, "dot", a.Dot(b), 5)
	assertNear(t, "magnitude", a.Magnitude(), 5)
	assertNear(t, "distance", a.Distance(b), math.Sqrt(16+4))
}

func TestVector2Identities(t *testing.T) {
	for _, v := range []Vector2{{}, {1, -2}, {1e6, 3.25}} {
		assertVec(t, "v+0", v.Add(Vector2{}), v)
		assertVec(t, "v*1", v.Scale(1), v)
	}
}

func TestVector2OperandsUnchanged(t *testing.T) {
	a := Vec2(1, 2)
	_ = a.Add(Vec2(5, 5))
	_ = a.Scale(10)
	assert.Equal(t, Vec2(1, 2), a)
}

func TestVector2Div(t *testing.T) {
	got, err := Vec2(6, 9).Div(3)
	require.NoError(t, err)
	assertVec(t, "div", got, Vec2(2, 3))

	_, err = Vec2(1, 1).Div(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
}

func TestVector2Normalize(t *testing.T) {
	n := Vec2(3, 4).Normalize()
	assertNear(t, "length", n.Magnitude(), 1)
	assertVec(t, "direction", n, Vec2(0.6, 0.8))

	assert.Equal(t, Vector2{}, Vector2{}.Normalize(), "zero stays zero")
}

func TestVector2Lerp(t *testing.T) {
	a, b := Vec2(0, 0), Vec2(10, -10)
	assertVec(t, "t=0.25", a.Lerp(b, 0.25), Vec2(2.5, -2.5))
	assertVec(t, "t<0 clamps", a.Lerp(b, -3), a)
	assertVec(t, "t>1 clamps", a.Lerp(b, 7), b)
}

func TestVector2String(t *testing.T) {
	assert.Equal(t, "Vector2(1.5, -2)", Vec2(1.5, -2).String())
}

func TestVector3(t *testing.T) {
	a := Vec3(1, 0, 0)
	b := Vec3(0, 1, 0)

	assert.Equal(t, Vec3(0, 0, 1), a.Cross(b))
	assert.Equal(t, Vec3(1, 1, 0), a.Add(b))
	assert.Equal(t, Vec3(1, -1, 0), a.Sub(b))
	assert.Equal(t, Vec3(2, 0, 0), a.Scale(2))
	assert.Equal(t, Vec3(2, 6, 12), Vec3(1, 2, 3).ScaleComponentwise(Vec3(2, 3, 4)))
	assertNear(t, "dot", a.Dot(b), 0)
	assertNear(t, "magnitude", Vec3(2, 3, 6).Magnitude(), 7)
	assertNear(t, "distance", a.Distance(b), math.Sqrt2)
	assert.Equal(t, Vector3{}, Vector3{}.Normalize())
	assertNear(t, "unit", Vec3(2, 3, 6).Normalize().Magnitude(), 1)
	assert.Equal(t, Vec3(0.5, 0.5, 0), a.Lerp(b, 0.5))
	assert.Equal(t, "Vector3(1, 2, 3)", Vec3(1, 2, 3).String())

	got, err := Vec3(2, 4, 6).Div(2)
	require.NoError(t, err)
	assert.Equal(t, Vec3(1, 2, 3), got)

	_, err = a.Div(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestScalarHelpers(t *testing.T) {
	tests := []struct {
		name      string
		got, want float64
	}{
		{"clamp low", Clamp(-5, 0, 10), 0},
		{"clamp high", Clamp(15, 0, 10), 10},
		{"clamp mid", Clamp(5, 0, 10), 5},
		{"lerp", Lerp(10, 20, 0.5), 15},
		{"lerp clamps", Lerp(10, 20, 2), 20},
		{"deg to rad", DegreesToRadians(180), math.Pi},
		{"rad to deg", RadiansToDegrees(math.Pi / 2), 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, tt.name, tt.got, tt.want)
		})
	}
}
