package sim

import (
	"math"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/core"
)

// PathParams shapes the reference lane curves.
type PathParams struct {
	BaseFrequency float64
	Tortuosity    float64
	AmplitudeX    float64
	AmplitudeY    float64
}

// NewPathParams combines path config with the run's tortuosity.
func NewPathParams(p config.PathConfig, tortuosity float64) PathParams {
	return PathParams{
		BaseFrequency: p.BaseFrequency,
		Tortuosity:    tortuosity,
		AmplitudeX:    p.AmplitudeX,
		AmplitudeY:    p.AmplitudeY,
	}
}

// Frequency returns the effective curve frequency.
func (p PathParams) Frequency() float64 {
	return p.BaseFrequency * p.Tortuosity
}

// PathPoint returns the point of a reference curve at travel distance z.
func PathPoint(z, phase float64, p PathParams) core.Vec3 {
	f := p.Frequency()
	return core.Vec3{
		X: math.Sin(z*f+phase) * p.AmplitudeX,
		Y: math.Cos(z*f*1.5+phase) * p.AmplitudeY,
		Z: -z,
	}
}

// Lanes is the pair of reference curves kept clear of obstacles.
type Lanes struct {
	Params PathParams
	Phases [2]float64
}

// NewLanes builds the lane pair from config.
func NewLanes(p config.PathConfig, tortuosity float64) Lanes {
	return Lanes{
		Params: NewPathParams(p, tortuosity),
		Phases: [2]float64{p.Lane1Phase, p.Lane2Phase},
	}
}

// At returns both lane points at distance z.
func (l Lanes) At(z float64) [2]core.Vec3 {
	return [2]core.Vec3{
		PathPoint(z, l.Phases[0], l.Params),
		PathPoint(z, l.Phases[1], l.Params),
	}
}

// Clearance returns the distance from pos to the nearest lane point at z.
func (l Lanes) Clearance(pos core.Vec3, z float64) float64 {
	pts := l.At(z)
	return math.Min(pos.DistanceTo(pts[0]), pos.DistanceTo(pts[1]))
}
