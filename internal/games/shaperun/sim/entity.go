package sim

import "github.com/vovakirdan/shaperun/internal/core"

// Entity is an obstacle, collectible or portal placed in the corridor.
type Entity struct {
	ID    string
	Kind  Kind
	Pos   core.Vec3
	HP    float64 // Remaining integrity, meaningful for breakable obstacles
	Shape Shape   // Required shape, portals only
}

// RequiredShape returns the shape needed to pass a portal.
func (e Entity) RequiredShape() (Shape, bool) {
	if !e.Kind.IsPortal() {
		return 0, false
	}
	return e.Shape, true
}

// Projectile is a shot travelling down the corridor.
type Projectile struct {
	ID     uint64
	Pos    core.Vec3
	Shape  Shape // Owning shape, selects damage, size and speed
	Active bool
}
