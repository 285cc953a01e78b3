package sim_test

import (
	"testing"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

// scriptedRand replays fixed values, then repeats the last one.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

// emptyCorridor returns a config whose generator places nothing.
func emptyCorridor() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Generator.Attempts = 0
	cfg.Generator.PortalChance = 0
	return cfg
}

// playingState returns a run state already in the playing status.
func playingState(t *testing.T, cfg config.RunnerConfig, mode sim.Mode) *sim.RunState {
	t.Helper()
	st := sim.NewRunState(cfg.Player)
	if !st.EnterConfig(mode, cfg.ForMode(mode == sim.ModeEndless)) {
		t.Fatal("EnterConfig refused from menu")
	}
	if !st.Start() {
		t.Fatal("Start refused from configuring")
	}
	return st
}
