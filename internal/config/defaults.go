package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/shaperun.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in Shape Runner configuration.
// It mirrors defaults/shaperun.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: PlayerConfig{
			InitialHP:    4,
			MaxHP:        5,
			LateralSpeed: 0.2,
			BoundsX:      6,
			MinY:         -3,
			MaxY:         4,
			MuzzleOffset: 2,
			DamageFlash:  0.4,
		},
		Shapes: ShapesConfig{
			Cube:    ShapeStats{Speed: 0.15, CooldownMS: 600, Damage: 3, Width: 0.8, Length: 4.0, ProjectileSpeed: 100},
			Pyramid: ShapeStats{Speed: 0.25, CooldownMS: 300, Damage: 1.5, Width: 0.4, Length: 3.5, ProjectileSpeed: 120},
			Sphere:  ShapeStats{Speed: 0.40, CooldownMS: 120, Damage: 1, Width: 0.2, Length: 2.5, ProjectileSpeed: 150},
		},
		Path: PathConfig{
			BaseFrequency: 0.04,
			AmplitudeX:    5.0,
			AmplitudeY:    2.1,
			Lane1Phase:    0,
			Lane2Phase:    math.Pi,
		},
		Generator: GeneratorConfig{
			StartZ:            40,
			Step:              5,
			Attempts:          6,
			PortalChance:      0.1,
			PortalMinSpacing:  30,
			PortalEndMargin:   20,
			PortalY:           0.5,
			CorridorX:         7,
			CorridorY:         4.5,
			SafeRadius:        3.5,
			CollectibleChance: 0.15,
			BreakableChance:   0.6,
			ObstacleHP:        3,
		},
		Endless: EndlessConfig{
			InitialChunk: 500,
			ChunkLength:  300,
			LookAhead:    300,
		},
		Hitbox: HitboxConfig{
			Player:          0.6,
			Obstacle:        0.9,
			ObstacleDepth:   1.0,
			Collectible:     0.7,
			PortalThickness: 0.5,
		},
		Scoring: ScoringConfig{
			BreakBonus:       20,
			PortalBonus:      50,
			CollectibleBonus: 50,
		},
		Culling: CullingConfig{
			ObstacleMargin:  50,
			ProjectileTrail: 200,
			RenderDistance:  150,
		},
		Mission: Mission{
			Tortuosity:      1.0,
			Density:         0.4,
			SpeedMultiplier: 1.0,
			TotalDistance:   500,
		},
	}
}
