// Package config provides YAML/TOML runner configuration loading, export and
// difficulty presets.
package config

// RunnerConfig contains all tunables for a Shape Runner run.
// It is read once at run start and never mutated by the simulation.
type RunnerConfig struct {
	Player    PlayerConfig    `yaml:"player" toml:"player"`
	Shapes    ShapesConfig    `yaml:"shapes" toml:"shapes"`
	Path      PathConfig      `yaml:"path" toml:"path"`
	Generator GeneratorConfig `yaml:"generator" toml:"generator"`
	Endless   EndlessConfig   `yaml:"endless" toml:"endless"`
	Hitbox    HitboxConfig    `yaml:"hitbox" toml:"hitbox"`
	Scoring   ScoringConfig   `yaml:"scoring" toml:"scoring"`
	Culling   CullingConfig   `yaml:"culling" toml:"culling"`
	Mission   Mission         `yaml:"mission" toml:"mission"`
}

// PlayerConfig defines health and lateral movement for the player.
type PlayerConfig struct {
	InitialHP    int     `yaml:"initial_hp" toml:"initial_hp"`
	MaxHP        int     `yaml:"max_hp" toml:"max_hp"`
	LateralSpeed float64 `yaml:"lateral_speed" toml:"lateral_speed"` // Units per 1/60 s
	BoundsX      float64 `yaml:"bounds_x" toml:"bounds_x"`
	MinY         float64 `yaml:"min_y" toml:"min_y"`
	MaxY         float64 `yaml:"max_y" toml:"max_y"`
	MuzzleOffset float64 `yaml:"muzzle_offset" toml:"muzzle_offset"` // Projectile spawn distance ahead of the player
	DamageFlash  float64 `yaml:"damage_flash" toml:"damage_flash"`   // Seconds the just-damaged flag stays set
}

// ShapeStats defines movement and weapon stats for one player shape.
type ShapeStats struct {
	Speed           float64 `yaml:"speed" toml:"speed"` // Forward units per 1/60 s
	CooldownMS      int     `yaml:"cooldown_ms" toml:"cooldown_ms"`
	Damage          float64 `yaml:"damage" toml:"damage"`
	Width           float64 `yaml:"width" toml:"width"`
	Length          float64 `yaml:"length" toml:"length"`
	ProjectileSpeed float64 `yaml:"projectile_speed" toml:"projectile_speed"` // Units per second
}

// ShapesConfig holds stats for every player shape.
type ShapesConfig struct {
	Cube    ShapeStats `yaml:"cube" toml:"cube"`
	Pyramid ShapeStats `yaml:"pyramid" toml:"pyramid"`
	Sphere  ShapeStats `yaml:"sphere" toml:"sphere"`
}

// PathConfig defines the reference lane curves.
// Frequency is scaled by Mission.Tortuosity.
type PathConfig struct {
	BaseFrequency float64 `yaml:"base_frequency" toml:"base_frequency"`
	AmplitudeX    float64 `yaml:"amplitude_x" toml:"amplitude_x"`
	AmplitudeY    float64 `yaml:"amplitude_y" toml:"amplitude_y"`
	Lane1Phase    float64 `yaml:"lane1_phase" toml:"lane1_phase"`
	Lane2Phase    float64 `yaml:"lane2_phase" toml:"lane2_phase"`
}

// GeneratorConfig defines procedural placement. Density comes from Mission.
type GeneratorConfig struct {
	StartZ            float64 `yaml:"start_z" toml:"start_z"`
	Step              float64 `yaml:"step" toml:"step"`
	Attempts          int     `yaml:"attempts" toml:"attempts"`
	PortalChance      float64 `yaml:"portal_chance" toml:"portal_chance"`
	PortalMinSpacing  float64 `yaml:"portal_min_spacing" toml:"portal_min_spacing"`
	PortalEndMargin   float64 `yaml:"portal_end_margin" toml:"portal_end_margin"`
	PortalY           float64 `yaml:"portal_y" toml:"portal_y"`
	CorridorX         float64 `yaml:"corridor_x" toml:"corridor_x"`
	CorridorY         float64 `yaml:"corridor_y" toml:"corridor_y"`
	SafeRadius        float64 `yaml:"safe_radius" toml:"safe_radius"`
	CollectibleChance float64 `yaml:"collectible_chance" toml:"collectible_chance"`
	BreakableChance   float64 `yaml:"breakable_chance" toml:"breakable_chance"`
	ObstacleHP        float64 `yaml:"obstacle_hp" toml:"obstacle_hp"`
}

// EndlessConfig defines incremental chunk generation.
type EndlessConfig struct {
	InitialChunk float64 `yaml:"initial_chunk" toml:"initial_chunk"`
	ChunkLength  float64 `yaml:"chunk_length" toml:"chunk_length"`
	LookAhead    float64 `yaml:"look_ahead" toml:"look_ahead"`
}

// HitboxConfig holds the half sizes used by collision tests.
type HitboxConfig struct {
	Player          float64 `yaml:"player" toml:"player"`
	Obstacle        float64 `yaml:"obstacle" toml:"obstacle"`
	ObstacleDepth   float64 `yaml:"obstacle_depth" toml:"obstacle_depth"` // Obstacle half depth against projectiles
	Collectible     float64 `yaml:"collectible" toml:"collectible"`
	PortalThickness float64 `yaml:"portal_thickness" toml:"portal_thickness"`
}

// ScoringConfig defines fixed score bonuses.
type ScoringConfig struct {
	BreakBonus       int `yaml:"break_bonus" toml:"break_bonus"`
	PortalBonus      int `yaml:"portal_bonus" toml:"portal_bonus"`
	CollectibleBonus int `yaml:"collectible_bonus" toml:"collectible_bonus"`
}

// CullingConfig defines how far behind the player things survive.
type CullingConfig struct {
	ObstacleMargin  float64 `yaml:"obstacle_margin" toml:"obstacle_margin"`
	ProjectileTrail float64 `yaml:"projectile_trail" toml:"projectile_trail"`
	RenderDistance  float64 `yaml:"render_distance" toml:"render_distance"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset adjusts the mission defaults for a difficulty preset.
// Normal keeps the configured values.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Mission.Density = 0.25
		cfg.Mission.Tortuosity = 0.7
		cfg.Mission.SpeedMultiplier = 0.8
	case DifficultyHard:
		cfg.Mission.Density = 0.6
		cfg.Mission.Tortuosity = 1.5
		cfg.Mission.SpeedMultiplier = 1.3
	}
	cfg.Mission = cfg.Mission.Clamp()
}
