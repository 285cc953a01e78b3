package sim_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/core"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

const dt = 1.0 / 60

func startSim(t *testing.T, cfg config.RunnerConfig, mode sim.Mode, seed int64) *sim.Simulation {
	t.Helper()
	s := sim.New(cfg)
	if !s.EnterConfig(mode) {
		t.Fatal("EnterConfig failed")
	}
	if !s.Start(seed) {
		t.Fatal("Start failed")
	}
	return s
}

func TestStepBeforeStartIsNoop(t *testing.T) {
	s := sim.New(config.DefaultRunnerConfig())
	res := s.Step(sim.Intents{Fire: true, MoveX: 1}, dt)

	if res.Tick != 0 || len(res.Events) != 0 || res.HUD.Status != sim.StatusMenu {
		t.Errorf("unexpected step result %+v", res)
	}
	if len(s.Snapshot().Projectiles) != 0 {
		t.Error("no projectile should spawn before a run starts")
	}
}

func TestMissionStartGeneratesCorridor(t *testing.T) {
	s := startSim(t, config.DefaultRunnerConfig(), sim.ModeMission, 1)
	snap := s.Snapshot()

	if len(snap.Entities) == 0 {
		t.Fatal("mission should be generated at start")
	}
	if snap.HUD.Target != 500 || snap.HUD.Mode != sim.ModeMission || snap.HUD.Shape != sim.ShapeCube {
		t.Errorf("hud = %+v", snap.HUD)
	}
}

func TestPlayerKinematics(t *testing.T) {
	cfg := emptyCorridor()
	s := startSim(t, cfg, sim.ModeMission, 1)

	s.Step(sim.Intents{MoveX: 1, MoveY: 1}, dt)
	p := s.Player().Pos
	// Cube: 0.15 per frame forward, 0.2 per frame lateral.
	if math.Abs(p.Z+0.15) > 1e-9 || math.Abs(p.X-0.2) > 1e-9 || math.Abs(p.Y-0.2) > 1e-9 {
		t.Errorf("after one frame pos = %+v", p)
	}
	if math.Abs(s.State().Distance()-0.15) > 1e-9 {
		t.Errorf("distance = %v", s.State().Distance())
	}

	for i := 0; i < 200; i++ {
		s.Step(sim.Intents{MoveX: -1, MoveY: -1}, dt)
	}
	p = s.Player().Pos
	if p.X != -cfg.Player.BoundsX || p.Y != cfg.Player.MinY {
		t.Errorf("player should be clamped to bounds, got %+v", p)
	}
}

func TestShapeChangeAffectsSpeed(t *testing.T) {
	s := startSim(t, emptyCorridor(), sim.ModeMission, 1)

	res := s.Step(sim.Intents{ChangeShape: true, Shape: sim.ShapeSphere}, dt)
	if !hasEvent(res.Events, sim.EventShapeChanged) || res.HUD.Shape != sim.ShapeSphere {
		t.Fatalf("shape change not applied: %+v", res)
	}
	if math.Abs(s.Player().Pos.Z+0.40) > 1e-9 {
		t.Errorf("sphere should move 0.40 per frame, z = %v", s.Player().Pos.Z)
	}
}

func TestFireSpawnsAheadOfPlayer(t *testing.T) {
	s := startSim(t, emptyCorridor(), sim.ModeMission, 1)

	res := s.Step(sim.Intents{Fire: true}, dt)
	if !hasEvent(res.Events, sim.EventFired) {
		t.Fatal("missing fired event")
	}
	shots := s.Snapshot().Projectiles
	if len(shots) != 1 || shots[0].Shape != sim.ShapeCube {
		t.Fatalf("projectiles = %+v", shots)
	}
	// Spawned 2 ahead of the player, then advanced 100/60 within the same tick.
	want := s.Player().Pos.Z - 2 - 100*dt
	if math.Abs(shots[0].Pos.Z-want) > 1e-9 {
		t.Errorf("projectile z = %v, expected %v", shots[0].Pos.Z, want)
	}
}

func TestMissionVictoryStopsSimulation(t *testing.T) {
	cfg := emptyCorridor()
	s := sim.New(cfg)
	s.EnterConfig(sim.ModeMission)
	s.UpdateMission(config.Mission{Tortuosity: 1, Density: 0.4, SpeedMultiplier: 2.5, TotalDistance: 100})
	s.Start(1)

	var won bool
	for i := 0; i < 10000 && !won; i++ {
		won = hasEvent(s.Step(sim.Intents{}, dt).Events, sim.EventVictory)
	}
	if !won || s.State().Status() != sim.StatusVictory {
		t.Fatalf("status = %v, expected victory", s.State().Status())
	}
	if s.State().Distance() < 100 {
		t.Errorf("distance = %v at victory", s.State().Distance())
	}

	before := s.Snapshot()
	after := s.Step(sim.Intents{MoveX: 1, Fire: true}, dt)
	if after.Tick != before.Tick || s.Player().Pos != before.Player {
		t.Error("simulation must not advance after the run ended")
	}
}

func TestEndlessAppendsOneChunk(t *testing.T) {
	cfg := emptyCorridor()
	s := startSim(t, cfg, sim.ModeEndless, 1)

	if s.HUD().Target != config.EndlessTarget {
		t.Fatalf("endless target = %v", s.HUD().Target)
	}

	chunks := 0
	for s.State().Distance() < 210 {
		if hasEvent(s.Step(sim.Intents{}, dt).Events, sim.EventChunkGenerated) {
			chunks++
			if d := s.State().Distance(); d+cfg.Endless.LookAhead <= 500 {
				t.Errorf("chunk appended too early at distance %v", d)
			}
		}
	}
	if chunks != 1 {
		t.Errorf("chunks appended = %d, expected 1", chunks)
	}
	if s.State().Status() != sim.StatusPlaying {
		t.Error("endless run should keep playing")
	}
}

func TestSimulationDeterministic(t *testing.T) {
	run := func() sim.Snapshot {
		s := startSim(t, config.DefaultRunnerConfig(), sim.ModeEndless, 99)
		for i := 0; i < 600; i++ {
			in := sim.Intents{MoveX: math.Sin(float64(i) / 20), Fire: i%15 == 0}
			if i == 200 {
				in.ChangeShape, in.Shape = true, sim.ShapeSphere
			}
			s.Step(in, dt)
		}
		return s.Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("same seed and intents should produce identical snapshots")
	}
}

func TestResetClearsRun(t *testing.T) {
	s := startSim(t, config.DefaultRunnerConfig(), sim.ModeMission, 5)
	s.Step(sim.Intents{Fire: true}, dt)

	s.Reset()
	snap := s.Snapshot()
	if snap.HUD.Status != sim.StatusMenu || len(snap.Entities) != 0 || len(snap.Projectiles) != 0 {
		t.Errorf("after reset: %+v", snap.HUD)
	}
	if res := s.Step(sim.Intents{}, dt); res.Tick != 0 {
		t.Error("reset simulation must not step")
	}
}

func TestSnapshotVisible(t *testing.T) {
	snap := sim.Snapshot{
		HUD: sim.HUD{Distance: 100},
		Entities: []sim.Entity{
			{ID: "near", Pos: core.V3(0, 0, -200)},
			{ID: "far", Pos: core.V3(0, 0, -300)},
		},
	}
	vis := snap.Visible(150)
	if len(vis) != 1 || vis[0].ID != "near" {
		t.Errorf("visible = %+v", vis)
	}
}
