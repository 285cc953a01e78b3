package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/core"
)

// frameRate converts per-frame speeds into per-second speeds.
const frameRate = 60.0

// Intents is the abstracted input consumed by one step.
type Intents struct {
	MoveX       float64 // -1 left .. 1 right
	MoveY       float64 // -1 down .. 1 up
	Fire        bool    // Already cooldown gated by the caller
	ChangeShape bool
	Shape       Shape
}

// StepResult describes what happened during a step.
type StepResult struct {
	Tick   uint64
	Events []Event
	HUD    HUD
}

// HUD is the read-only state snapshot for HUD collaborators.
type HUD struct {
	Status      Status
	Mode        Mode
	HP          int
	MaxHP       int
	Score       int
	Distance    float64
	Target      float64
	Shape       Shape
	JustDamaged bool
}

// Snapshot is the geometry feed for renderers.
type Snapshot struct {
	Tick        uint64
	HUD         HUD
	Player      core.Vec3
	Entities    []Entity
	Projectiles []Projectile
}

// Visible returns the entities within radius of the player's distance.
func (s Snapshot) Visible(radius float64) []Entity {
	out := make([]Entity, 0, len(s.Entities))
	for _, e := range s.Entities {
		if math.Abs(e.Pos.Z+s.HUD.Distance) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// Simulation owns one run: state, registry, generator and player.
// It is not safe for concurrent use; step it from a single goroutine.
type Simulation struct {
	cfg    config.RunnerConfig
	shapes ShapeTable
	state  *RunState
	reg    *Registry
	engine *Engine

	gen     *Generator
	chunker *Chunker
	player  Player
	active  bool // Player attached for the current run
	tick    uint64
}

// New creates a simulation in the menu status.
func New(cfg config.RunnerConfig) *Simulation {
	return &Simulation{
		cfg:    cfg,
		shapes: NewShapeTable(cfg.Shapes),
		state:  NewRunState(cfg.Player),
		reg:    NewRegistry(),
		engine: NewEngine(cfg),
	}
}

// State returns the run state.
func (s *Simulation) State() *RunState { return s.state }

// Registry returns the entity registry.
func (s *Simulation) Registry() *Registry { return s.reg }

// Player returns the player's current pose.
func (s *Simulation) Player() Player { return s.player }

// Lanes returns the reference lanes for the current mission settings.
func (s *Simulation) Lanes() Lanes {
	if s.gen != nil {
		return s.gen.Lanes()
	}
	return NewLanes(s.cfg.Path, s.state.Mission().Tortuosity)
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.RunnerConfig { return s.cfg }

// EnterConfig moves to configuring with the defaults for mode.
func (s *Simulation) EnterConfig(mode Mode) bool {
	return s.state.EnterConfig(mode, s.cfg.ForMode(mode == ModeEndless))
}

// UpdateMission edits the mission while configuring.
func (s *Simulation) UpdateMission(m config.Mission) bool {
	return s.state.UpdateMission(m)
}

// Start begins a run seeded with seed. The corridor is generated up front
// for missions and as an initial chunk for endless runs.
func (s *Simulation) Start(seed int64) bool {
	if !s.state.Start() {
		return false
	}
	s.reg.Reset()
	s.tick = 0
	s.player = Player{Shape: ShapeCube}
	s.active = true

	mission := s.state.Mission()
	rng := rand.New(rand.NewSource(seed))
	if s.state.Mode() == ModeEndless {
		s.gen = NewGenerator(s.cfg, mission, 0, rng)
		s.chunker = NewChunker(s.gen, s.cfg.Endless)
		s.reg.InsertAll(s.chunker.Initial())
	} else {
		s.gen = NewGenerator(s.cfg, mission, s.state.Target(), rng)
		s.chunker = nil
		s.reg.InsertAll(s.gen.Mission())
	}
	return true
}

// Reset returns to the menu and clears the registry.
func (s *Simulation) Reset() {
	s.state.Reset()
	s.reg.Reset()
	s.gen = nil
	s.chunker = nil
	s.player = Player{Shape: ShapeCube}
	s.active = false
	s.tick = 0
}

// Step advances the run by delta seconds. Outside the playing status, or
// before a run has started, it only reports the current state.
func (s *Simulation) Step(in Intents, delta float64) StepResult {
	s.state.Tick(delta)
	if !s.active || s.state.Status() != StatusPlaying {
		return StepResult{Tick: s.tick, HUD: s.HUD()}
	}
	s.tick++

	var events []Event
	if in.ChangeShape && in.Shape.Valid() && in.Shape != s.player.Shape {
		s.player.Shape = in.Shape
		events = append(events, Event{Kind: EventShapeChanged, Pos: s.player.Pos})
	}

	s.move(in, delta)

	if in.Fire {
		muzzle := s.player.Pos.Add(core.V3(0, 0, -s.cfg.Player.MuzzleOffset))
		shot := s.reg.AddProjectile(muzzle, s.player.Shape)
		events = append(events, Event{Kind: EventFired, ShotID: shot.ID, Pos: muzzle})
	}

	s.state.UpdateDistance(s.player.Pos.Z)
	if s.state.Status() == StatusVictory {
		events = append(events, Event{Kind: EventVictory, Pos: s.player.Pos})
		return StepResult{Tick: s.tick, Events: events, HUD: s.HUD()}
	}
	distance := s.state.Distance()

	if s.chunker != nil {
		if chunk := s.chunker.Extend(distance); chunk != nil {
			s.reg.InsertAll(chunk)
			events = append(events, Event{Kind: EventChunkGenerated, Pos: core.V3(0, 0, -s.chunker.GeneratedUntil())})
		}
	}

	res := s.engine.Resolve(s.reg, s.player, distance, delta)
	events = append(events, res.Events...)
	events = append(events, s.engine.Commit(s.reg, s.state, res)...)

	return StepResult{Tick: s.tick, Events: events, HUD: s.HUD()}
}

func (s *Simulation) move(in Intents, delta float64) {
	stats := s.shapes.Stats(s.player.Shape)
	p := s.cfg.Player

	s.player.PrevZ = s.player.Pos.Z
	s.player.Pos.Z -= stats.Speed * frameRate * delta * s.state.Mission().SpeedMultiplier

	lateral := p.LateralSpeed * frameRate * delta
	s.player.Pos.X = core.ClampF(s.player.Pos.X+core.ClampF(in.MoveX, -1, 1)*lateral, -p.BoundsX, p.BoundsX)
	s.player.Pos.Y = core.ClampF(s.player.Pos.Y+core.ClampF(in.MoveY, -1, 1)*lateral, p.MinY, p.MaxY)
}

// HUD returns the current HUD snapshot.
func (s *Simulation) HUD() HUD {
	return HUD{
		Status:      s.state.Status(),
		Mode:        s.state.Mode(),
		HP:          s.state.HP(),
		MaxHP:       s.state.MaxHP(),
		Score:       s.state.Score(),
		Distance:    s.state.Distance(),
		Target:      s.state.Target(),
		Shape:       s.player.Shape,
		JustDamaged: s.state.JustDamaged(),
	}
}

// Snapshot returns copies of all live geometry for renderers.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:        s.tick,
		HUD:         s.HUD(),
		Player:      s.player.Pos,
		Entities:    s.reg.Entities(),
		Projectiles: s.reg.Projectiles(),
	}
}
