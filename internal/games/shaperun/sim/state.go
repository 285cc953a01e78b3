package sim

import "github.com/vovakirdan/shaperun/internal/config"

// Status is the run status.
type Status uint8

const (
	StatusMenu Status = iota
	StatusConfiguring
	StatusPlaying
	StatusVictory
	StatusDefeat
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "menu"
	case StatusConfiguring:
		return "configuring"
	case StatusPlaying:
		return "playing"
	case StatusVictory:
		return "victory"
	case StatusDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Ended reports whether the run reached a terminal status.
func (s Status) Ended() bool {
	return s == StatusVictory || s == StatusDefeat
}

// RunState tracks progress of a single run.
// Health, score and distance only change while playing.
type RunState struct {
	player config.PlayerConfig

	status   Status
	mode     Mode
	mission  config.Mission
	hp       int
	score    int
	distance float64
	target   float64
	flash    float64 // Seconds left on the just-damaged flag
}

// NewRunState creates a run state in the menu status.
func NewRunState(player config.PlayerConfig) *RunState {
	return &RunState{
		player: player,
		status: StatusMenu,
		hp:     player.InitialHP,
	}
}

// Status returns the current run status.
func (s *RunState) Status() Status { return s.status }

// Mode returns the mode chosen on entering the configuring status.
func (s *RunState) Mode() Mode { return s.mode }

// Mission returns the mission settings for the current or next run.
func (s *RunState) Mission() config.Mission { return s.mission }

// HP returns the current health.
func (s *RunState) HP() int { return s.hp }

// MaxHP returns the health ceiling.
func (s *RunState) MaxHP() int { return s.player.MaxHP }

// Score returns the points earned this run.
func (s *RunState) Score() int { return s.score }

// Distance returns how far the player has travelled this run.
func (s *RunState) Distance() float64 { return s.distance }

// Target returns the distance that wins a mission run.
func (s *RunState) Target() float64 { return s.target }

// JustDamaged reports whether damage was taken within the flash window.
func (s *RunState) JustDamaged() bool { return s.flash > 0 }

// EnterConfig moves from the menu to the configuring status with
// mode-specific mission defaults. Returns false from any other status.
func (s *RunState) EnterConfig(mode Mode, mission config.Mission) bool {
	if s.status != StatusMenu && s.status != StatusConfiguring {
		return false
	}
	s.status = StatusConfiguring
	s.mode = mode
	s.mission = mission
	return true
}

// UpdateMission replaces the mission settings while configuring.
func (s *RunState) UpdateMission(mission config.Mission) bool {
	if s.status != StatusConfiguring {
		return false
	}
	if s.mode == ModeEndless {
		mission.TotalDistance = config.EndlessTarget
	}
	s.mission = mission.Clamp()
	return true
}

// Start begins a run from the configuring status, resetting health, score
// and distance and fixing the target distance.
func (s *RunState) Start() bool {
	if s.status != StatusConfiguring {
		return false
	}
	s.status = StatusPlaying
	s.hp = s.player.InitialHP
	s.score = 0
	s.distance = 0
	s.flash = 0
	s.target = s.mission.TotalDistance
	if s.target <= 0 {
		s.target = 500
	}
	return true
}

// Reset returns to the menu from any status.
func (s *RunState) Reset() {
	s.status = StatusMenu
	s.hp = s.player.InitialHP
	s.score = 0
	s.distance = 0
	s.flash = 0
}

// TakeDamage removes one health point. Reaching zero ends the run in defeat.
func (s *RunState) TakeDamage() bool {
	if s.status != StatusPlaying {
		return false
	}
	s.flash = s.player.DamageFlash
	s.hp--
	if s.hp <= 0 {
		s.hp = 0
		s.status = StatusDefeat
	}
	return true
}

// Heal restores one health point. Returns false at full health.
func (s *RunState) Heal() bool {
	if s.status != StatusPlaying || s.hp >= s.player.MaxHP {
		return false
	}
	s.hp++
	return true
}

// AddScore adds a non-negative amount to the score.
func (s *RunState) AddScore(n int) bool {
	if s.status != StatusPlaying || n <= 0 {
		return false
	}
	s.score += n
	return true
}

// UpdateDistance sets the distance from the player's travel-axis position
// and ends a mission run in victory once the target is reached.
func (s *RunState) UpdateDistance(z float64) bool {
	if s.status != StatusPlaying {
		return false
	}
	if z < 0 {
		z = -z
	}
	s.distance = z
	if s.mode == ModeMission && s.distance >= s.target {
		s.status = StatusVictory
	}
	return true
}

// Tick ages the just-damaged flag by delta seconds.
func (s *RunState) Tick(delta float64) {
	if s.flash > 0 {
		s.flash -= delta
	}
}
