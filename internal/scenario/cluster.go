package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ClusterOptions controls procedural cluster generation. N bodies are placed
// in a disc of the given radius around a central mass, with roughly circular
// tangential velocities. Seed == 0 uses a time-based seed.
type ClusterOptions struct {
	N           int
	Seed        int64
	G           float64
	CentralMass float64
	BodyMass    float64
	DiscRadius  float64
	BodyRadius  float32
}

// DefaultClusterOptions returns a 200-body disc in toy units that reads well
// at the default zoom.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		N:           200,
		G:           1.0,
		CentralMass: 5e4,
		BodyMass:    1.0,
		DiscRadius:  80,
		BodyRadius:  0.8,
	}
}

// Cluster generates a random-disc scenario: a heavy central body plus N
// orbiters at random radii and angles, each given the circular-orbit speed
// for its distance so the disc holds together for a while.
func Cluster(opts ClusterOptions) Scenario {
	if opts.N <= 0 {
		opts.N = 1
	}
	if opts.DiscRadius <= 0 {
		opts.DiscRadius = 1
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s := Scenario{
		Name:      "cluster",
		G:         opts.G,
		ScaleBase: opts.DiscRadius * 1.25,
		Bodies:    make([]BodyDef, 0, opts.N+1),
	}
	s.Bodies = append(s.Bodies, BodyDef{
		Name:   "core",
		Mass:   opts.CentralMass,
		Radius: opts.BodyRadius * 4,
		Color:  [4]float32{0.95, 0.85, 0.3, 1.0},
	})

	for i := 0; i < opts.N; i++ {
		// sqrt keeps the area density uniform across the disc.
		dist := opts.DiscRadius * (0.15 + 0.85*math.Sqrt(rng.Float64()))
		angle := rng.Float64() * 2 * math.Pi
		x, y := dist*math.Cos(angle), dist*math.Sin(angle)

		speed := math.Sqrt(opts.G * opts.CentralMass / dist)
		s.Bodies = append(s.Bodies, BodyDef{
			Name:     fmt.Sprintf("body-%d", i),
			Mass:     opts.BodyMass,
			Position: [3]float64{x, y, 0},
			Velocity: [3]float64{-speed * math.Sin(angle), speed * math.Cos(angle), 0},
			Radius:   opts.BodyRadius,
			Color: [4]float32{
				0.4 + 0.6*rng.Float32(),
				0.4 + 0.6*rng.Float32(),
				0.4 + 0.6*rng.Float32(),
				1.0,
			},
		})
	}
	return s
}
