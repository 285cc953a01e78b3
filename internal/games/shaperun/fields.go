package shaperun

import (
	"fmt"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

// missionField is one editable row on the configuring screen.
type missionField struct {
	label  string
	format string
	rng    config.Range
	get    func(config.Mission) float64
	set    func(*config.Mission, float64)
}

func (f missionField) value(m config.Mission) string {
	return fmt.Sprintf(f.format, f.get(m))
}

var (
	tortuosityField = missionField{
		label: "Tortuosity", format: "%.1f", rng: config.TortuosityRange,
		get: func(m config.Mission) float64 { return m.Tortuosity },
		set: func(m *config.Mission, v float64) { m.Tortuosity = v },
	}
	densityField = missionField{
		label: "Density", format: "%.2f", rng: config.DensityRange,
		get: func(m config.Mission) float64 { return m.Density },
		set: func(m *config.Mission, v float64) { m.Density = v },
	}
	speedField = missionField{
		label: "Speed", format: "x%.1f", rng: config.SpeedRange,
		get: func(m config.Mission) float64 { return m.SpeedMultiplier },
		set: func(m *config.Mission, v float64) { m.SpeedMultiplier = v },
	}
	distanceField = missionField{
		label: "Distance", format: "%.0f", rng: config.DistanceRange,
		get: func(m config.Mission) float64 { return m.TotalDistance },
		set: func(m *config.Mission, v float64) { m.TotalDistance = v },
	}
)

// fields returns the editable fields for the current mode.
// Endless runs have no target distance to edit.
func (g *Game) fields() []missionField {
	if g.mode == sim.ModeEndless {
		return []missionField{tortuosityField, densityField, speedField}
	}
	return []missionField{tortuosityField, densityField, speedField, distanceField}
}
