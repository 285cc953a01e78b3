package sim

import "github.com/vovakirdan/shaperun/internal/core"

// EventKind identifies something that happened during a step.
type EventKind uint8

const (
	EventFired           EventKind = iota // Projectile spawned
	EventShapeChanged                     // Player switched shape
	EventShotBlocked                      // Projectile absorbed by an unbreakable obstacle
	EventObstacleHit                      // Breakable obstacle lost integrity
	EventObstacleBroken                   // Breakable obstacle destroyed by projectiles
	EventPortalPassed                     // Portal crossed with the matching shape
	EventPortalMissed                     // Portal crossed with the wrong shape
	EventCollected                        // Collectible picked up
	EventCrashed                          // Player hit an obstacle
	EventDamaged                          // Health decreased
	EventHealed                           // Health increased
	EventChunkGenerated                   // Endless corridor extended
	EventVictory                          // Target distance reached
	EventDefeat                           // Health reached zero
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventFired:
		return "fired"
	case EventShapeChanged:
		return "shape_changed"
	case EventShotBlocked:
		return "shot_blocked"
	case EventObstacleHit:
		return "obstacle_hit"
	case EventObstacleBroken:
		return "obstacle_broken"
	case EventPortalPassed:
		return "portal_passed"
	case EventPortalMissed:
		return "portal_missed"
	case EventCollected:
		return "collected"
	case EventCrashed:
		return "crashed"
	case EventDamaged:
		return "damaged"
	case EventHealed:
		return "healed"
	case EventChunkGenerated:
		return "chunk_generated"
	case EventVictory:
		return "victory"
	case EventDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Event records one thing that happened during a step.
type Event struct {
	Kind     EventKind
	EntityID string    // Entity involved, if any
	ShotID   uint64    // Projectile involved, if any
	Pos      core.Vec3 // Where it happened
	Score    int       // Score awarded by this event
}
