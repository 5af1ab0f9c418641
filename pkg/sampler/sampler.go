// Package sampler implements the randomization policy for the
// generation loop: object pose, camera placement and lighting are all
// drawn from closed uniform ranges by a single seeded source, so a run
// with a fixed seed reproduces the same sequence of scenes.
package sampler

import (
	"math"
	"math/rand"

	"github.com/menta2k/synthgen/pkg/host"
	"github.com/menta2k/synthgen/pkg/types"
)

// Sun energy and fill light placement match the original light rig and
// are not part of the configurable surface.
var (
	sunEnergyRange = types.Range{Min: 2, Max: 5}
	fillXRange     = types.Range{Min: -4, Max: 4}
	fillYRange     = types.Range{Min: -4, Max: 4}
	fillZRange     = types.Range{Min: 1, Max: 4}
)

// Config holds the randomization ranges
type Config struct {
	Scale     types.Range
	PosX      types.Range
	PosY      types.Range
	Radius    types.Range
	Elevation types.Range // degrees
	Focal     types.Range // millimeters
	Power     types.Range
}

// DefaultConfig returns the default randomization ranges
func DefaultConfig() Config {
	return Config{
		Scale:     types.Range{Min: 1.2, Max: 1.8},
		PosX:      types.Range{Min: -0.2, Max: 0.2},
		PosY:      types.Range{Min: -0.2, Max: 0.2},
		Radius:    types.Range{Min: 0.6, Max: 1.2},
		Elevation: types.Range{Min: 10, Max: 50},
		Focal:     types.Range{Min: 40, Max: 80},
		Power:     types.Range{Min: 800, Max: 1500},
	}
}

// Sampler draws scene parameters from a seeded random source
type Sampler struct {
	config Config
	rng    *rand.Rand
}

// New creates a Sampler with default ranges
func New(seed int64) *Sampler {
	return NewWithConfig(seed, DefaultConfig())
}

// NewWithConfig creates a Sampler with custom ranges
func NewWithConfig(seed int64, config Config) *Sampler {
	return &Sampler{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Uniform draws a value from the closed interval [r.Min, r.Max]
func (s *Sampler) Uniform(r types.Range) float64 {
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// Pick chooses one entry uniformly at random
func (s *Sampler) Pick(items []string) string {
	return items[s.rng.Intn(len(items))]
}

// ObjectPose samples a transform for the foreground object. A single
// scale factor is applied to all three axes, and a single angle to all
// three Euler axes; widening either to independent draws would change
// the dataset's pose distribution, so they stay shared.
func (s *Sampler) ObjectPose() types.Transform {
	scale := s.Uniform(s.config.Scale)
	angle := s.Uniform(types.Range{Min: 0, Max: 2 * math.Pi})
	x := s.Uniform(s.config.PosX)
	y := s.Uniform(s.config.PosY)

	return types.Transform{
		Location: types.Vec3{X: x, Y: y, Z: 0}, // Z stays on the ground plane
		Rotation: types.Vec3{X: angle, Y: angle, Z: angle},
		Scale:    types.Vec3{X: scale, Y: scale, Z: scale},
	}
}

// CameraPose samples focal length and a position on a sphere around
// the origin, aimed at a jittered near-origin target. The target is
// drawn over the full placement range and then halved, matching the
// original draw sequence.
func (s *Sampler) CameraPose() host.CameraPose {
	focal := s.Uniform(s.config.Focal)
	r := s.Uniform(s.config.Radius)
	elev := s.Uniform(s.config.Elevation) * math.Pi / 180
	azim := s.Uniform(types.Range{Min: 0, Max: 2 * math.Pi})

	location := types.Vec3{
		X: r * math.Cos(azim) * math.Cos(elev),
		Y: r * math.Sin(azim) * math.Cos(elev),
		Z: r * math.Sin(elev),
	}

	target := types.Vec3{
		X: s.Uniform(s.config.PosX) / 2,
		Y: s.Uniform(s.config.PosY) / 2,
		Z: 0,
	}

	return host.CameraPose{
		Location:    location,
		Target:      target,
		FocalLength: focal,
	}
}

// SunEnergy samples the directional light energy. Drawn once, when the
// light is created; the generator never resamples it.
func (s *Sampler) SunEnergy() float64 {
	return s.Uniform(sunEnergyRange)
}

// PointLight samples the per-frame fill light: power from the
// configured range, position from a fixed cube independent of object
// and camera placement.
func (s *Sampler) PointLight() host.PointLight {
	energy := s.Uniform(s.config.Power)
	x := s.Uniform(fillXRange)
	y := s.Uniform(fillYRange)
	z := s.Uniform(fillZRange)

	return host.PointLight{
		Energy:   energy,
		Location: types.Vec3{X: x, Y: y, Z: z},
	}
}
