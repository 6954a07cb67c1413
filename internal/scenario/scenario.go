// Package scenario builds simulation worlds: the built-in Earth-Moon system,
// scenarios defined in YAML files, and procedurally generated clusters.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gravity-sim/internal/physics"
	"gravity-sim/internal/vecmath"
)

// BodyDef describes one body in a scenario file. Position/velocity are in
// the scenario's simulation units (meters and m/s for the physical ones);
// radius is visual only.
type BodyDef struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Radius   float32    `yaml:"radius"`
	Color    [4]float32 `yaml:"color"`
}

// Scenario is a complete world definition. NewWorld can be called repeatedly
// (e.g. for the R reset key) and always starts from this pristine state.
type Scenario struct {
	Name string `yaml:"name"`
	// G is the gravitational constant in the scenario's units.
	G float64 `yaml:"g"`
	// ScaleBase is the simulation length shown per clip unit at zoom 1.
	ScaleBase float64 `yaml:"scale_base"`
	// MinSeparation overrides the singularity guard distance; 0 keeps the
	// physics default.
	MinSeparation float64   `yaml:"min_separation,omitempty"`
	Bodies        []BodyDef `yaml:"bodies"`
}

// NewWorld builds a fresh world from the scenario definition.
func (s *Scenario) NewWorld() *physics.World {
	w := physics.NewWorld()
	w.G = s.G
	if s.ScaleBase > 0 {
		w.ScaleBase = s.ScaleBase
	}
	if s.MinSeparation > 0 {
		w.MinSeparation = s.MinSeparation
	}
	for _, d := range s.Bodies {
		w.AddBody(physics.NewBody(
			vecmath.Vec3{X: d.Position[0], Y: d.Position[1], Z: d.Position[2]},
			d.Mass,
			d.Radius,
			physics.Color(d.Color),
		))
		b := w.Bodies[len(w.Bodies)-1]
		b.Velocity = vecmath.Vec3{X: d.Velocity[0], Y: d.Velocity[1], Z: d.Velocity[2]}
	}
	return w
}

// EarthMoon returns the built-in Earth-Moon system: SI units, the moon
// starting at perigee with its real orbital speed. Radii are sized for the
// default scale base, not to physical scale.
func EarthMoon() Scenario {
	return Scenario{
		Name:      "earth-moon",
		G:         6.67259e-11,
		ScaleBase: 3.80e8,
		Bodies: []BodyDef{
			{
				Name:   "earth",
				Mass:   5.965e24,
				Radius: 0.2 * 3.80e8,
				Color:  [4]float32{0.1, 0.1, 0.95, 1.0},
			},
			{
				Name:     "moon",
				Mass:     7.35e22,
				Position: [3]float64{0, 3.57e8, 0},
				Velocity: [3]float64{1022, 0, 0},
				Radius:   0.12 * 3.80e8,
				Color:    [4]float32{0.25, 0.25, 0.25, 1.0},
			},
		},
	}
}

// Load reads scenario definitions from a YAML file (a top-level list of
// scenarios).
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []Scenario
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	for i := range list {
		if err := list[i].validate(); err != nil {
			return nil, fmt.Errorf("scenario: %s: %w", path, err)
		}
	}
	return list, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario without a name")
	}
	for _, b := range s.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("%s: body %q has non-positive mass", s.Name, b.Name)
		}
		if b.Radius <= 0 {
			return fmt.Errorf("%s: body %q has non-positive radius", s.Name, b.Name)
		}
	}
	return nil
}

// Find resolves a scenario by name: the built-ins ("earth-moon",
// "cluster"), then the scenarios in path (if non-empty).
func Find(name, path string) (Scenario, error) {
	switch name {
	case "", "earth-moon":
		return EarthMoon(), nil
	case "cluster":
		return Cluster(DefaultClusterOptions()), nil
	}
	if path != "" {
		list, err := Load(path)
		if err != nil {
			return Scenario{}, err
		}
		for _, s := range list {
			if s.Name == name {
				return s, nil
			}
		}
	}
	return Scenario{}, fmt.Errorf("scenario: unknown scenario %q", name)
}
