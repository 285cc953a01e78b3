package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/games/shaperun"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
	"github.com/vovakirdan/shaperun/internal/storage"
)

// ErrUnknownMessage is returned for client messages with an unknown type.
var ErrUnknownMessage = errors.New("feed: unknown message type")

// Session drives one simulation for one connection. It is not safe for
// concurrent use; the connection loop owns it.
type Session struct {
	cfg      config.RunnerConfig
	sim      *sim.Simulation
	gate     *shaperun.FireGate
	tick     time.Duration
	elapsed  time.Duration
	input    InputMsg
	seed     int64
	recorded bool

	// OnRunEnd receives every finished or abandoned run.
	OnRunEnd func(storage.Run)
}

// NewSession creates a session in the menu status.
func NewSession(cfg config.RunnerConfig, tickRate int) *Session {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Session{
		cfg:  cfg,
		sim:  sim.New(cfg),
		gate: shaperun.NewFireGate(sim.NewShapeTable(cfg.Shapes)),
		tick: time.Second / time.Duration(tickRate),
	}
}

// Welcome describes the server to a new client.
func (s *Session) Welcome() WelcomeMsg {
	shapes := make([]string, 0, len(sim.Shapes))
	for _, sh := range sim.Shapes {
		shapes = append(shapes, sh.String())
	}
	return WelcomeMsg{
		Type:           MsgWelcome,
		Modes:          []string{sim.ModeMission.String(), sim.ModeEndless.String()},
		Shapes:         shapes,
		TickRate:       int(time.Second / s.tick),
		RenderDistance: s.cfg.Culling.RenderDistance,
		Mission:        missionMsg(s.cfg.ForMode(false)),
	}
}

// Handle applies a client message. It returns a frame when the message
// changed the visible state.
func (s *Session) Handle(msg ClientMsg) (*FrameMsg, error) {
	switch msg.Type {
	case MsgConfigure:
		mode, ok := ParseMode(msg.Mode)
		if !ok {
			return nil, fmt.Errorf("feed: unknown mode %q", msg.Mode)
		}
		if !s.sim.EnterConfig(mode) {
			return nil, errors.New("feed: a run is in progress, reset first")
		}
		if msg.Mission != nil {
			s.updateMission(*msg.Mission, mode)
		}

	case MsgMission:
		if msg.Mission == nil {
			return nil, errors.New("feed: mission message without settings")
		}
		if s.sim.State().Status() != sim.StatusConfiguring {
			return nil, errors.New("feed: mission can only change while configuring")
		}
		s.updateMission(*msg.Mission, s.sim.State().Mode())

	case MsgStart:
		seed := msg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		if !s.sim.Start(seed) {
			return nil, errors.New("feed: no run configured")
		}
		s.seed = seed
		s.recorded = false
		s.elapsed = 0
		s.input = InputMsg{}
		s.gate.Reset()

	case MsgInput:
		if msg.Input.Shape != "" {
			if _, ok := sim.ParseShape(msg.Input.Shape); !ok {
				return nil, fmt.Errorf("feed: unknown shape %q", msg.Input.Shape)
			}
		}
		s.input = msg.Input
		return nil, nil

	case MsgReset:
		s.Close()
		s.sim.Reset()
		s.input = InputMsg{}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}

	f := s.frame(nil)
	return &f, nil
}

// updateMission keeps the endless target when the client sends a distance.
func (s *Session) updateMission(m MissionMsg, mode sim.Mode) {
	mission := m.mission()
	if mode == sim.ModeEndless {
		mission.TotalDistance = config.EndlessTarget
	}
	s.sim.UpdateMission(mission)
}

// Tick advances one fixed step with the held input. It reports false when
// no run is in progress.
func (s *Session) Tick() (FrameMsg, bool) {
	if s.sim.State().Status() != sim.StatusPlaying {
		return FrameMsg{}, false
	}
	s.elapsed += s.tick

	intents := sim.Intents{MoveX: s.input.MoveX, MoveY: s.input.MoveY}
	shape := s.sim.Player().Shape
	if next, ok := sim.ParseShape(s.input.Shape); ok && next != shape {
		intents.ChangeShape, intents.Shape = true, next
		shape = next
	}
	if s.input.Fire {
		intents.Fire = s.gate.Allow(shape, s.elapsed)
	}

	res := s.sim.Step(intents, s.tick.Seconds())
	if res.HUD.Status.Ended() {
		outcome := storage.OutcomeDefeat
		if res.HUD.Status == sim.StatusVictory {
			outcome = storage.OutcomeVictory
		}
		s.record(outcome)
	}
	return s.frame(res.Events), true
}

// Close records a run abandoned mid-way. Safe to call more than once.
func (s *Session) Close() {
	st := s.sim.State()
	if st.Status() == sim.StatusPlaying && st.Distance() > 0 {
		s.record(storage.OutcomeAbandoned)
	}
}

func (s *Session) record(outcome storage.Outcome) {
	if s.recorded {
		return
	}
	s.recorded = true
	if s.OnRunEnd == nil {
		return
	}
	st := s.sim.State()
	mode := shaperun.MissionID
	if st.Mode() == sim.ModeEndless {
		mode = shaperun.EndlessID
	}
	s.OnRunEnd(storage.Run{
		Mode:     mode,
		Outcome:  outcome,
		Score:    st.Score(),
		Distance: st.Distance(),
		Seed:     s.seed,
		Origin:   "feed",
	})
}

func (s *Session) frame(events []sim.Event) FrameMsg {
	return frameFrom(s.sim.Snapshot(), s.sim.State().Mission(), events, s.cfg.Culling.RenderDistance)
}
