// Package shaperun implements Shape Runner, a corridor shooter where the
// player switches between cube, pyramid and sphere to pass matching portals
// while dodging or shooting obstacles.
package shaperun

import (
	"time"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/core"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
	"github.com/vovakirdan/shaperun/internal/registry"
)

// Game IDs for the two run modes.
const (
	MissionID = "shaperun"
	EndlessID = "shaperun_endless"
)

// Game adapts the simulation to the platform game interface.
type Game struct {
	mode    sim.Mode
	sim     *sim.Simulation
	gate    *FireGate
	latch   movementLatch
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	paused  bool
	elapsed time.Duration // Simulated time since the run started
	cursor  int           // Selected field on the configuring screen
	last    sim.StepResult
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var quickStart bool

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetQuickStart skips the configuring screen and starts runs immediately.
func SetQuickStart(v bool) {
	quickStart = v
}

// LoadConfig loads the runner configuration using the CLI settings.
// On error the defaults are returned along with it.
func LoadConfig() (config.RunnerConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg, err
}

// New creates a game for the given mode.
func New(mode sim.Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == sim.ModeEndless {
		return EndlessID
	}
	return MissionID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == sim.ModeEndless {
		return "Shape Runner: Endless"
	}
	return "Shape Runner: Mission"
}

// Describe returns a one-line summary for listings.
func (g *Game) Describe() string {
	if g.mode == sim.ModeEndless {
		return "Endless corridor, generated chunk by chunk. Survive as long as you can."
	}
	return "Reach the target distance. Tune curve, density and speed first."
}

// Reset loads configuration and opens the configuring screen for a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg, _ = LoadConfig() // A broken file falls back to the defaults
	g.sim = sim.New(g.cfg)
	g.gate = NewFireGate(sim.NewShapeTable(g.cfg.Shapes))
	g.latch.reset()
	g.paused = false
	g.elapsed = 0
	g.cursor = 0

	g.sim.EnterConfig(g.mode)
	if quickStart {
		g.start()
	}
	g.last = sim.StepResult{HUD: g.sim.HUD()}
}

func (g *Game) start() {
	g.sim.Start(g.runtime.Seed)
	g.gate.Reset()
	g.latch.reset()
	g.elapsed = 0
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.sim.State().Status() {
	case sim.StatusConfiguring:
		g.stepConfig(in)
		return core.StepResult{State: g.State()}
	case sim.StatusPlaying:
	default:
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	delta := g.runtime.TickSeconds()
	g.elapsed += time.Duration(delta * float64(time.Second))

	var intents sim.Intents
	intents.MoveX, intents.MoveY = g.latch.apply(in)

	shape := g.sim.Player().Shape
	for _, sa := range shapeActions {
		if in.Has(sa.action) {
			intents.ChangeShape, intents.Shape = true, sa.shape
			shape = sa.shape
		}
	}
	if in.Has(core.ActionFire) {
		intents.Fire = g.gate.Allow(shape, g.elapsed)
	}

	g.last = g.sim.Step(intents, delta)
	return core.StepResult{State: g.State()}
}

var shapeActions = []struct {
	action core.Action
	shape  sim.Shape
}{
	{core.ActionShapeCube, sim.ShapeCube},
	{core.ActionShapePyramid, sim.ShapePyramid},
	{core.ActionShapeSphere, sim.ShapeSphere},
}

// stepConfig handles the configuring screen.
func (g *Game) stepConfig(in core.InputFrame) {
	fields := g.fields()
	switch {
	case in.Has(core.ActionUp):
		g.cursor = (g.cursor + len(fields) - 1) % len(fields)
	case in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % len(fields)
	case in.Has(core.ActionLeft):
		g.nudge(fields[g.cursor], -1)
	case in.Has(core.ActionRight):
		g.nudge(fields[g.cursor], 1)
	case in.Has(core.ActionConfirm), in.Has(core.ActionFire):
		g.start()
	}
}

func (g *Game) nudge(f missionField, dir int) {
	m := g.sim.State().Mission()
	f.set(&m, f.rng.Nudge(f.get(m), dir))
	g.sim.UpdateMission(m)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	st := g.sim.State()
	return core.GameState{
		Score:    st.Score(),
		Distance: st.Distance(),
		GameOver: st.Status().Ended(),
		Victory:  st.Status() == sim.StatusVictory,
		Paused:   g.paused,
	}
}

// LastEvents returns the events of the most recent tick.
func (g *Game) LastEvents() []sim.Event {
	return g.last.Events
}

// Register both modes with the registry
func init() {
	registry.Register(MissionID, func() registry.Game {
		return New(sim.ModeMission)
	})
	registry.Register(EndlessID, func() registry.Game {
		return New(sim.ModeEndless)
	})
}
