package feed

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/storage"
)

func emptyCorridor() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Generator.Attempts = 0
	cfg.Generator.PortalChance = 0
	return cfg
}

func mustHandle(t *testing.T, s *Session, msg ClientMsg) *FrameMsg {
	t.Helper()
	f, err := s.Handle(msg)
	if err != nil {
		t.Fatalf("Handle(%s) failed: %v", msg.Type, err)
	}
	return f
}

func TestSessionWelcome(t *testing.T) {
	s := NewSession(config.DefaultRunnerConfig(), 30)
	w := s.Welcome()

	if w.Type != MsgWelcome || w.TickRate != 30 {
		t.Errorf("welcome = %+v", w)
	}
	if len(w.Modes) != 2 || len(w.Shapes) != 3 || w.Shapes[2] != "sphere" {
		t.Errorf("modes %v shapes %v", w.Modes, w.Shapes)
	}
	if w.Mission.TotalDistance != 500 || w.RenderDistance != 150 {
		t.Errorf("mission defaults = %+v, render distance %v", w.Mission, w.RenderDistance)
	}
}

func TestSessionMissionToVictory(t *testing.T) {
	s := NewSession(emptyCorridor(), 60)
	var runs []storage.Run
	s.OnRunEnd = func(r storage.Run) { runs = append(runs, r) }

	f := mustHandle(t, s, ClientMsg{Type: MsgConfigure, Mode: "mission"})
	if f.Status != "configuring" {
		t.Fatalf("status after configure = %q", f.Status)
	}
	f = mustHandle(t, s, ClientMsg{Type: MsgMission, Mission: &MissionMsg{
		Tortuosity: 1, Density: 0.4, SpeedMultiplier: 2.5, TotalDistance: 100,
	}})
	if f.Mission.TotalDistance != 100 || f.Mission.SpeedMultiplier != 2.5 {
		t.Fatalf("mission = %+v", f.Mission)
	}
	f = mustHandle(t, s, ClientMsg{Type: MsgStart, Seed: 9})
	if f.Status != "playing" || f.Target != 100 || f.HP != 4 {
		t.Fatalf("frame after start = %+v", f)
	}
	mustHandle(t, s, ClientMsg{Type: MsgInput, Input: InputMsg{Shape: "sphere"}})

	var last FrameMsg
	ticks := 0
	for ; ticks < 500; ticks++ {
		frame, ok := s.Tick()
		if !ok {
			break
		}
		last = frame
	}
	if last.Status != "victory" {
		t.Fatalf("run should end in victory, last frame status %q after %d ticks", last.Status, ticks)
	}
	if len(last.Events) == 0 || last.Events[len(last.Events)-1].Kind != "victory" {
		t.Errorf("final frame events = %+v", last.Events)
	}
	if _, ok := s.Tick(); ok {
		t.Error("Tick() after the run ended should report false")
	}

	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
	r := runs[0]
	if r.Mode != "shaperun" || r.Outcome != storage.OutcomeVictory || r.Seed != 9 || r.Origin != "feed" || r.Distance < 100 {
		t.Errorf("recorded run = %+v", r)
	}
}

func TestSessionHeldFireRespectsCooldown(t *testing.T) {
	s := NewSession(emptyCorridor(), 60)
	mustHandle(t, s, ClientMsg{Type: MsgConfigure, Mode: "endless"})
	mustHandle(t, s, ClientMsg{Type: MsgStart, Seed: 1})
	mustHandle(t, s, ClientMsg{Type: MsgInput, Input: InputMsg{Fire: true, Shape: "sphere"}})

	fired := 0
	for range 60 {
		frame, ok := s.Tick()
		if !ok {
			t.Fatal("run ended unexpectedly")
		}
		for _, ev := range frame.Events {
			if ev.Kind == "fired" {
				fired++
			}
		}
		if frame.Shape != "sphere" {
			t.Fatalf("shape = %q", frame.Shape)
		}
	}
	// 120ms cooldown at 60 ticks per second fires on ticks 1, 9, 17, ... 57.
	if fired != 8 {
		t.Errorf("fired %d shots in one second, expected 8", fired)
	}
}

func TestSessionRejectsInvalidMessages(t *testing.T) {
	s := NewSession(emptyCorridor(), 60)

	if _, err := s.Handle(ClientMsg{Type: "teleport"}); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("unknown type error = %v", err)
	}
	if _, err := s.Handle(ClientMsg{Type: MsgConfigure, Mode: "sideways"}); err == nil {
		t.Error("unknown mode should be rejected")
	}
	if _, err := s.Handle(ClientMsg{Type: MsgStart}); err == nil {
		t.Error("start without configure should be rejected")
	}
	if _, err := s.Handle(ClientMsg{Type: MsgMission, Mission: &MissionMsg{}}); err == nil {
		t.Error("mission outside configuring should be rejected")
	}
	if _, err := s.Handle(ClientMsg{Type: MsgInput, Input: InputMsg{Shape: "torus"}}); err == nil {
		t.Error("unknown shape should be rejected")
	}

	mustHandle(t, s, ClientMsg{Type: MsgConfigure, Mode: "mission"})
	mustHandle(t, s, ClientMsg{Type: MsgStart, Seed: 3})
	if _, err := s.Handle(ClientMsg{Type: MsgConfigure, Mode: "endless"}); err == nil {
		t.Error("configure during a run should be rejected")
	}
}

func TestSessionEndlessKeepsUnboundedTarget(t *testing.T) {
	s := NewSession(emptyCorridor(), 60)
	f := mustHandle(t, s, ClientMsg{Type: MsgConfigure, Mode: "endless", Mission: &MissionMsg{
		Tortuosity: 2, Density: 0.5, SpeedMultiplier: 1, TotalDistance: 300,
	}})
	if f.Mission.TotalDistance != config.EndlessTarget || f.Mission.Tortuosity != 2 {
		t.Errorf("endless mission = %+v", f.Mission)
	}
}

func TestSessionUsesPresetSpeed(t *testing.T) {
	cfg := emptyCorridor()
	config.ApplyPreset(&cfg, config.DifficultyHard)
	s := NewSession(cfg, 60)

	if got := s.Welcome().Mission.SpeedMultiplier; got != 1.3 {
		t.Errorf("welcome speed = %v, expected 1.3", got)
	}
	f := mustHandle(t, s, ClientMsg{Type: MsgConfigure, Mode: "mission"})
	if f.Mission.SpeedMultiplier != 1.3 || f.Mission.Density != 0.6 {
		t.Fatalf("configured mission = %+v", f.Mission)
	}

	mustHandle(t, s, ClientMsg{Type: MsgStart, Seed: 3})
	frame, _ := s.Tick()
	// Cube speed 0.15 per 1/60 s, scaled by 1.3.
	if want := 0.15 * 1.3; math.Abs(frame.Distance-want) > 1e-6 {
		t.Errorf("distance after one tick = %v, expected %v", frame.Distance, want)
	}
}

func TestSessionResetAbandonsRun(t *testing.T) {
	s := NewSession(emptyCorridor(), 60)
	var runs []storage.Run
	s.OnRunEnd = func(r storage.Run) { runs = append(runs, r) }

	mustHandle(t, s, ClientMsg{Type: MsgConfigure, Mode: "endless"})
	mustHandle(t, s, ClientMsg{Type: MsgStart, Seed: 5})
	for range 10 {
		s.Tick()
	}
	f := mustHandle(t, s, ClientMsg{Type: MsgReset})
	if f.Status != "menu" {
		t.Errorf("status after reset = %q", f.Status)
	}
	s.Close()

	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeAbandoned || runs[0].Mode != "shaperun_endless" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestFrameCullsDistantEntities(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Mission.Density = 1
	s := NewSession(cfg, 60)
	mustHandle(t, s, ClientMsg{Type: MsgConfigure, Mode: "mission"})
	mustHandle(t, s, ClientMsg{Type: MsgMission, Mission: &MissionMsg{Tortuosity: 1, Density: 1, SpeedMultiplier: 1, TotalDistance: 2000}})
	f := mustHandle(t, s, ClientMsg{Type: MsgStart, Seed: 11})

	if len(f.Entities) == 0 {
		t.Fatal("dense corridor should have visible entities")
	}
	for _, e := range f.Entities {
		if -e.Pos.Z > 150 {
			t.Fatalf("entity %s at z=%v beyond render distance", e.ID, e.Pos.Z)
		}
		if e.Kind == "breakable" && e.HP <= 0 {
			t.Errorf("obstacle %s without hp", e.ID)
		}
	}
}
