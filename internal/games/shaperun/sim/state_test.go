package sim_test

import (
	"testing"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

func TestRunStateTransitions(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st := sim.NewRunState(cfg.Player)

	if st.Status() != sim.StatusMenu {
		t.Fatalf("initial status = %v", st.Status())
	}
	if st.Start() {
		t.Error("Start should require configuring")
	}
	if !st.EnterConfig(sim.ModeMission, cfg.ForMode(false)) || st.Status() != sim.StatusConfiguring {
		t.Fatal("EnterConfig failed")
	}
	if !st.Start() || st.Status() != sim.StatusPlaying {
		t.Fatal("Start failed")
	}
	if st.EnterConfig(sim.ModeEndless, cfg.ForMode(true)) {
		t.Error("EnterConfig should be refused while playing")
	}
	if st.HP() != 4 || st.Score() != 0 || st.Distance() != 0 || st.Target() != 500 {
		t.Errorf("fresh run: hp=%d score=%d dist=%v target=%v", st.HP(), st.Score(), st.Distance(), st.Target())
	}

	st.Reset()
	if st.Status() != sim.StatusMenu {
		t.Errorf("Reset status = %v", st.Status())
	}
}

func TestRunStateUpdateMissionClamps(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st := sim.NewRunState(cfg.Player)
	st.EnterConfig(sim.ModeEndless, cfg.ForMode(true))

	st.UpdateMission(config.Mission{Tortuosity: 9, Density: 0.3, SpeedMultiplier: 1, TotalDistance: 100})
	m := st.Mission()
	if m.Tortuosity != 3.0 || m.TotalDistance != config.EndlessTarget {
		t.Errorf("mission = %+v", m)
	}
}

func TestHealthBounds(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st := playingState(t, cfg, sim.ModeMission)

	for i := 0; i < 10; i++ {
		healed := st.Heal()
		if healed != (i < cfg.Player.MaxHP-cfg.Player.InitialHP) {
			t.Errorf("heal %d reported %v at hp %d", i, healed, st.HP())
		}
		if st.HP() > cfg.Player.MaxHP {
			t.Fatalf("hp %d exceeds max %d", st.HP(), cfg.Player.MaxHP)
		}
	}
	if st.HP() != cfg.Player.MaxHP {
		t.Errorf("hp = %d, expected max", st.HP())
	}

	for i := 0; i < cfg.Player.MaxHP-1; i++ {
		st.TakeDamage()
		if st.Status() != sim.StatusPlaying {
			t.Fatalf("defeat before reaching zero, hp=%d", st.HP())
		}
	}
	st.TakeDamage()
	if st.HP() != 0 || st.Status() != sim.StatusDefeat {
		t.Fatalf("hp=%d status=%v, expected defeat at zero", st.HP(), st.Status())
	}

	if st.TakeDamage() || st.HP() != 0 {
		t.Error("damage after defeat must be a no-op")
	}
	if st.Heal() || st.HP() != 0 {
		t.Error("heal after defeat must be a no-op")
	}
	if st.AddScore(10) || st.UpdateDistance(-50) {
		t.Error("score and distance must not change after defeat")
	}
}

func TestVictoryOnlyInMissionMode(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	mission := playingState(t, cfg, sim.ModeMission)
	mission.UpdateDistance(-499.9)
	if mission.Status() != sim.StatusPlaying {
		t.Fatal("victory before target")
	}
	mission.UpdateDistance(-500)
	if mission.Status() != sim.StatusVictory {
		t.Errorf("status = %v, expected victory at target", mission.Status())
	}

	endless := playingState(t, cfg, sim.ModeEndless)
	endless.UpdateDistance(-2 * config.EndlessTarget)
	if endless.Status() != sim.StatusPlaying {
		t.Errorf("endless run ended with %v", endless.Status())
	}
	if endless.Distance() != 2*config.EndlessTarget {
		t.Errorf("distance = %v", endless.Distance())
	}
}

func TestJustDamagedFlash(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	st := playingState(t, cfg, sim.ModeMission)

	st.TakeDamage()
	if !st.JustDamaged() {
		t.Fatal("flag should be set after damage")
	}
	st.Tick(0.25)
	if !st.JustDamaged() {
		t.Error("flag should survive 0.25s")
	}
	st.Tick(0.2)
	if st.JustDamaged() {
		t.Error("flag should clear after 0.4s")
	}
}
