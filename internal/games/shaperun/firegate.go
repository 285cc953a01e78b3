package shaperun

import (
	"time"

	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

// FireGate enforces the per-shape fire cooldown outside the simulation.
// The cooldown of the shape firing now decides how long since the last shot
// must have passed.
type FireGate struct {
	shapes sim.ShapeTable
	last   time.Duration
	fired  bool
}

// NewFireGate creates a gate using the cooldowns in table.
func NewFireGate(table sim.ShapeTable) *FireGate {
	return &FireGate{shapes: table}
}

// Allow reports whether shape may fire at time now and records the shot.
func (g *FireGate) Allow(shape sim.Shape, now time.Duration) bool {
	cooldown := time.Duration(g.shapes.Stats(shape).CooldownMS) * time.Millisecond
	if g.fired && now-g.last < cooldown {
		return false
	}
	g.last = now
	g.fired = true
	return true
}

// Reset forgets the last shot.
func (g *FireGate) Reset() {
	g.last = 0
	g.fired = false
}
