package sim

import (
	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/core"
)

// Player is the player's pose for one tick.
type Player struct {
	Pos   core.Vec3
	PrevZ float64 // Travel-axis position before this tick's movement
	Shape Shape
}

// Resolution collects everything a tick decided before it is committed.
type Resolution struct {
	HP           map[string]float64 // Accumulated integrity per hit obstacle
	Removed      []string
	RemovedShots []uint64
	Score        int
	Damage       bool // At most one damage transition per tick
	Heal         bool // At most one heal transition per tick
	Events       []Event
}

// Engine resolves projectile and player interactions once per tick.
type Engine struct {
	hitbox  config.HitboxConfig
	scoring config.ScoringConfig
	culling config.CullingConfig
	shapes  ShapeTable
}

// NewEngine creates a collision engine from configuration.
func NewEngine(cfg config.RunnerConfig) *Engine {
	return &Engine{
		hitbox:  cfg.Hitbox,
		scoring: cfg.Scoring,
		culling: cfg.Culling,
		shapes:  NewShapeTable(cfg.Shapes),
	}
}

// Resolve advances projectiles and computes all interactions for one tick.
// Only projectile positions are mutated; everything else is collected into
// the returned Resolution for Commit.
//
// Order:
//  1. Advance projectiles and expire those far behind the player
//  2. Projectile vs obstacle, first match in scan order wins
//  3. Cull obstacles that scrolled behind the player
//  4. Player vs portal, collectible and obstacle
func (e *Engine) Resolve(reg *Registry, player Player, distance, delta float64) Resolution {
	res := Resolution{HP: make(map[string]float64)}
	removed := make(map[string]bool)

	// 1. Advance projectiles
	for i := range reg.projectiles {
		p := &reg.projectiles[i]
		if !p.Active {
			continue
		}
		p.Pos.Z -= e.shapes.Stats(p.Shape).ProjectileSpeed * delta
		if p.Pos.Z < -distance-e.culling.ProjectileTrail {
			p.Active = false
			res.RemovedShots = append(res.RemovedShots, p.ID)
		}
	}

	// 2. Projectile vs obstacle
	obstacleBox := core.HalfExtents{X: e.hitbox.Obstacle, Y: e.hitbox.Obstacle, Z: e.hitbox.ObstacleDepth}
	for i := range reg.projectiles {
		p := &reg.projectiles[i]
		if !p.Active {
			continue
		}
		stats := e.shapes.Stats(p.Shape)
		shotBox := core.HalfExtents{X: stats.Width / 2, Y: stats.Width / 2, Z: stats.Length / 2}

		for _, id := range reg.order {
			ent := reg.entities[id]
			if !ent.Kind.IsObstacle() || removed[id] {
				continue
			}
			if !core.Overlaps(p.Pos, shotBox, ent.Pos, obstacleBox) {
				continue
			}

			p.Active = false
			res.RemovedShots = append(res.RemovedShots, p.ID)

			if ent.Kind == KindUnbreakable {
				res.Events = append(res.Events, Event{Kind: EventShotBlocked, EntityID: id, ShotID: p.ID, Pos: ent.Pos})
				break
			}

			hp, ok := res.HP[id]
			if !ok {
				hp = ent.HP
			}
			hp -= stats.Damage
			res.HP[id] = hp

			if hp <= 0 {
				removed[id] = true
				res.Removed = append(res.Removed, id)
				res.Score += e.scoring.BreakBonus
				res.Events = append(res.Events, Event{Kind: EventObstacleBroken, EntityID: id, ShotID: p.ID, Pos: ent.Pos, Score: e.scoring.BreakBonus})
			} else {
				res.Events = append(res.Events, Event{Kind: EventObstacleHit, EntityID: id, ShotID: p.ID, Pos: ent.Pos})
			}
			break
		}
	}

	// 3. Cull obstacles behind the player
	for _, id := range reg.order {
		if !removed[id] && behind(reg.entities[id].Pos.Z, distance, e.culling.ObstacleMargin) {
			removed[id] = true
			res.Removed = append(res.Removed, id)
		}
	}

	// 4. Player vs entities
	playerBox := core.Cube(e.hitbox.Player)
	for _, id := range reg.order {
		if removed[id] {
			continue
		}
		ent := reg.entities[id]

		switch {
		case ent.Kind.IsPortal():
			if !e.crossedPortal(player, ent.Pos.Z) {
				continue
			}
			if required, _ := ent.RequiredShape(); required == player.Shape {
				res.Score += e.scoring.PortalBonus
				res.Events = append(res.Events, Event{Kind: EventPortalPassed, EntityID: id, Pos: ent.Pos, Score: e.scoring.PortalBonus})
			} else {
				res.Damage = true
				res.Events = append(res.Events, Event{Kind: EventPortalMissed, EntityID: id, Pos: ent.Pos})
			}

		case ent.Kind == KindCollectible:
			if !core.Overlaps(player.Pos, playerBox, ent.Pos, core.Cube(e.hitbox.Collectible)) {
				continue
			}
			res.Heal = true
			res.Score += e.scoring.CollectibleBonus
			res.Events = append(res.Events, Event{Kind: EventCollected, EntityID: id, Pos: ent.Pos, Score: e.scoring.CollectibleBonus})

		default:
			if !core.Overlaps(player.Pos, playerBox, ent.Pos, core.Cube(e.hitbox.Obstacle)) {
				continue
			}
			res.Damage = true
			res.Events = append(res.Events, Event{Kind: EventCrashed, EntityID: id, Pos: ent.Pos})
		}

		removed[id] = true
		res.Removed = append(res.Removed, id)
	}

	return res
}

// crossedPortal reports whether the player is inside the portal slab or
// moved through its plane during this tick.
func (e *Engine) crossedPortal(player Player, planeZ float64) bool {
	if core.CrossesSlab(player.Pos, planeZ, e.hitbox.PortalThickness) {
		return true
	}
	return player.PrevZ > planeZ && player.Pos.Z <= planeZ
}

// Commit applies a resolution: integrity updates, batch removals, one score
// addition, then at most one damage and one heal transition.
// Returns the state transition events.
func (e *Engine) Commit(reg *Registry, state *RunState, res Resolution) []Event {
	reg.ApplyHP(res.HP)
	reg.Remove(res.Removed...)
	reg.RemoveProjectiles(res.RemovedShots...)

	var events []Event
	state.AddScore(res.Score)

	if res.Damage && state.TakeDamage() {
		events = append(events, Event{Kind: EventDamaged})
		if state.Status() == StatusDefeat {
			events = append(events, Event{Kind: EventDefeat})
		}
	}
	if res.Heal && state.Heal() {
		events = append(events, Event{Kind: EventHealed})
	}
	return events
}
