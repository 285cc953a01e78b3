package config

import "math"

// EndlessTarget is the target distance used in endless mode. Victory is never
// checked in endless mode; the value only keeps HUD arithmetic finite.
const EndlessTarget = 999999.0

// Mission holds the per-run settings edited on the configuring screen.
type Mission struct {
	Tortuosity      float64 `yaml:"tortuosity" toml:"tortuosity"`
	Density         float64 `yaml:"density" toml:"density"`
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"`
	TotalDistance   float64 `yaml:"total_distance" toml:"total_distance"`
}

// Range describes the editable bounds of a mission field.
type Range struct {
	Min, Max, Step float64
}

// Editable ranges for mission fields on the configuring screen.
var (
	TortuosityRange = Range{Min: 0.5, Max: 3.0, Step: 0.1}
	DensityRange    = Range{Min: 0.1, Max: 1.0, Step: 0.05}
	SpeedRange      = Range{Min: 0.5, Max: 2.5, Step: 0.1}
	DistanceRange   = Range{Min: 100, Max: 2000, Step: 50}
)

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Nudge moves v by dir steps and clamps the result, rounding to the step grid.
func (r Range) Nudge(v float64, dir int) float64 {
	v += float64(dir) * r.Step
	if r.Step > 0 {
		v = math.Round(v/r.Step) * r.Step
	}
	return r.Clamp(v)
}

// Clamp returns a copy with every editable field within its documented range.
// TotalDistance is left alone when it is the endless sentinel.
func (m Mission) Clamp() Mission {
	m.Tortuosity = TortuosityRange.Clamp(m.Tortuosity)
	m.Density = DensityRange.Clamp(m.Density)
	m.SpeedMultiplier = SpeedRange.Clamp(m.SpeedMultiplier)
	if m.TotalDistance != EndlessTarget {
		m.TotalDistance = DistanceRange.Clamp(m.TotalDistance)
	}
	return m
}

// ForMode returns mission defaults for a mode: the configured mission for
// finite runs, or the same tuning with an unbounded target for endless runs.
// An unset speed multiplier means 1.0.
func (c RunnerConfig) ForMode(endless bool) Mission {
	m := c.Mission
	if m.SpeedMultiplier <= 0 {
		m.SpeedMultiplier = 1.0
	}
	m.SpeedMultiplier = SpeedRange.Clamp(m.SpeedMultiplier)
	if endless {
		m.TotalDistance = EndlessTarget
	} else if m.TotalDistance <= 0 {
		m.TotalDistance = 500
	}
	return m
}
