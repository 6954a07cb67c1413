package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	assert.Equal(t, Vec3{5, -3, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, 7, -3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, Vec3{}, a.Scale(0))
}

func TestMagnitude(t *testing.T) {
	assert.Equal(t, 5.0, Vec3{3, 4, 0}.Magnitude())
	assert.Equal(t, 0.0, Vec3{}.Magnitude())
}

func TestNormalize(t *testing.T) {
	n := Vec3{0, 0, 9}.Normalize()
	assert.Equal(t, Vec3{0, 0, 1}, n)

	n = Vec3{3, 4, 0}.Normalize()
	assert.InDelta(t, 1.0, n.Magnitude(), 1e-12)

	// Zero-length input stays zero instead of producing NaN.
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())

	// Denormal-scale magnitudes count as degenerate too: dividing by them
	// would explode the components rather than yield a unit vector.
	assert.Equal(t, Vec3{}, Vec3{X: 1e-300}.Normalize())
	assert.Equal(t, Vec3{}, Vec3{X: 1e-13, Y: 1e-14}.Normalize())
}

func TestNormalizeErr(t *testing.T) {
	n, err := Vec3{2, 0, 0}.NormalizeErr()
	assert.NoError(t, err)
	assert.Equal(t, Vec3{1, 0, 0}, n)

	_, err = Vec3{}.NormalizeErr()
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = Vec3{Z: 1e-300}.NormalizeErr()
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(Vec3{1, 1, 0}, Vec3{4, 5, 0}))
	assert.Equal(t, 0.0, Distance(Vec3{7, 8, 9}, Vec3{7, 8, 9}))
}

func TestF32(t *testing.T) {
	assert.Equal(t, [3]float32{1.5, -2, 3}, Vec3{1.5, -2, 3}.F32())
}

func TestAspectDistance(t *testing.T) {
	// Y deltas are divided by the aspect ratio: at aspect 2, two points two
	// units apart in Y are one unit apart in circle space.
	d := AspectDistance([3]float32{0, 2, 0}, [3]float32{0, 0, 0}, 2)
	assert.InDelta(t, 1.0, d, 1e-6)

	// X deltas are unaffected by aspect.
	d = AspectDistance([3]float32{3, 0, 0}, [3]float32{0, 0, 0}, 2)
	assert.InDelta(t, 3.0, d, 1e-6)

	// Aspect 1 is the plain XY Euclidean distance; Z never contributes.
	d = AspectDistance([3]float32{3, 4, 100}, [3]float32{0, 0, -100}, 1)
	assert.InDelta(t, 5.0, d, 1e-5)

	// Symmetric in its arguments.
	p, q := [3]float32{1, 2, 0}, [3]float32{-3, 5, 0}
	assert.Equal(t, AspectDistance(p, q, 1.6), AspectDistance(q, p, 1.6))
}
