package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gravity-sim/internal/vecmath"
)

func TestEarthMoon(t *testing.T) {
	s := EarthMoon()
	assert.Equal(t, "earth-moon", s.Name)
	assert.Equal(t, 6.67259e-11, s.G)
	assert.Equal(t, 3.80e8, s.ScaleBase)
	require.Len(t, s.Bodies, 2)

	earth, moon := s.Bodies[0], s.Bodies[1]
	assert.Equal(t, 5.965e24, earth.Mass)
	assert.Equal(t, [3]float64{}, earth.Position)
	assert.Equal(t, 7.35e22, moon.Mass)
	assert.Equal(t, [3]float64{0, 3.57e8, 0}, moon.Position)
	assert.Equal(t, [3]float64{1022, 0, 0}, moon.Velocity)
}

func TestNewWorld(t *testing.T) {
	s := EarthMoon()
	w := s.NewWorld()

	assert.Equal(t, s.G, w.G)
	assert.Equal(t, s.ScaleBase, w.ScaleBase)
	require.Len(t, w.Bodies, 2)
	// Body order follows the definition order.
	assert.Equal(t, 5.965e24, w.Bodies[0].Mass)
	assert.Equal(t, vecmath.Vec3{X: 1022}, w.Bodies[1].Velocity)
	assert.Equal(t, float32(0.12*3.80e8), w.Bodies[1].Radius)
}

func TestNewWorldKeepsDefaults(t *testing.T) {
	s := Scenario{Name: "bare", G: 2}
	w := s.NewWorld()
	// Zero scale base and min separation fall back to the world defaults.
	assert.Equal(t, 1.0, w.ScaleBase)
	assert.Greater(t, w.MinSeparation, 0.0)
}

const scenariosYAML = `
- name: binary
  g: 1.0
  scale_base: 50
  bodies:
    - name: a
      mass: 100
      position: [-10, 0, 0]
      velocity: [0, -1, 0]
      radius: 2
      color: [1, 0, 0, 1]
    - name: b
      mass: 100
      position: [10, 0, 0]
      velocity: [0, 1, 0]
      radius: 2
      color: [0, 0, 1, 1]
- name: lonely
  g: 0.5
  scale_base: 10
  bodies:
    - name: only
      mass: 1
      radius: 1
      color: [1, 1, 1, 1]
`

func writeScenarios(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeScenarios(t, scenariosYAML)
	list, err := Load(path)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "binary", list[0].Name)
	assert.Equal(t, 50.0, list[0].ScaleBase)
	require.Len(t, list[0].Bodies, 2)
	assert.Equal(t, [3]float64{-10, 0, 0}, list[0].Bodies[0].Position)
	assert.Equal(t, "lonely", list[1].Name)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "- g: 1\n  bodies: []\n"},
		{"zero mass", "- name: x\n  bodies:\n    - name: b\n      mass: 0\n      radius: 1\n"},
		{"negative radius", "- name: x\n  bodies:\n    - name: b\n      mass: 1\n      radius: -2\n"},
		{"not yaml", "{{{{"},
	}
	for _, test := range tests {
		path := writeScenarios(t, test.yaml)
		_, err := Load(path)
		assert.Error(t, err, test.name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	s, err := Find("", "")
	require.NoError(t, err)
	assert.Equal(t, "earth-moon", s.Name)

	s, err = Find("earth-moon", "")
	require.NoError(t, err)
	assert.Equal(t, "earth-moon", s.Name)

	s, err = Find("cluster", "")
	require.NoError(t, err)
	assert.Equal(t, "cluster", s.Name)
	assert.Len(t, s.Bodies, DefaultClusterOptions().N+1)

	_, err = Find("missing", "")
	assert.Error(t, err)
}

func TestFindFromFile(t *testing.T) {
	path := writeScenarios(t, scenariosYAML)

	s, err := Find("lonely", path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.G)

	_, err = Find("missing", path)
	assert.Error(t, err)
}

func TestClusterSeededDeterminism(t *testing.T) {
	opts := DefaultClusterOptions()
	opts.N = 25
	opts.Seed = 42

	s1 := Cluster(opts)
	s2 := Cluster(opts)
	assert.Equal(t, s1, s2)

	opts.Seed = 43
	s3 := Cluster(opts)
	assert.NotEqual(t, s1.Bodies, s3.Bodies)
}

func TestClusterShape(t *testing.T) {
	opts := DefaultClusterOptions()
	opts.N = 50
	opts.Seed = 7
	s := Cluster(opts)

	require.Len(t, s.Bodies, 51)
	core := s.Bodies[0]
	assert.Equal(t, opts.CentralMass, core.Mass)
	assert.Equal(t, [3]float64{}, core.Position)

	for _, b := range s.Bodies[1:] {
		dist := vecmath.Vec3{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]}.Magnitude()
		assert.Greater(t, dist, 0.0)
		assert.LessOrEqual(t, dist, opts.DiscRadius*1.0001)
		// Tangential launch: velocity is perpendicular to the radius vector.
		dot := b.Position[0]*b.Velocity[0] + b.Position[1]*b.Velocity[1]
		assert.InDelta(t, 0, dot, 1e-8)
	}
}
