// Package sim provides the simulation core for Shape Runner.
// This package is UI-agnostic and deterministic for a given random source.
package sim

import (
	"fmt"

	"github.com/vovakirdan/shaperun/internal/config"
)

// Shape is a player form. Each form has its own movement and weapon stats.
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapePyramid
	ShapeSphere

	shapeCount
)

// Shapes lists every shape in declaration order.
var Shapes = [shapeCount]Shape{ShapeCube, ShapePyramid, ShapeSphere}

// String returns the string representation of a shape.
func (s Shape) String() string {
	switch s {
	case ShapeCube:
		return "cube"
	case ShapePyramid:
		return "pyramid"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the declared shapes.
func (s Shape) Valid() bool {
	return s < shapeCount
}

// ParseShape converts a name into a Shape.
func ParseShape(name string) (Shape, bool) {
	for _, s := range Shapes {
		if s.String() == name {
			return s, true
		}
	}
	return ShapeCube, false
}

// ShapeTable maps every shape to its stats.
type ShapeTable [shapeCount]config.ShapeStats

// NewShapeTable builds the table from configuration.
// It panics if a declared shape has no stats source, so adding a shape
// without wiring its stats fails at construction.
func NewShapeTable(cfg config.ShapesConfig) ShapeTable {
	var t ShapeTable
	for _, s := range Shapes {
		switch s {
		case ShapeCube:
			t[s] = cfg.Cube
		case ShapePyramid:
			t[s] = cfg.Pyramid
		case ShapeSphere:
			t[s] = cfg.Sphere
		default:
			panic(fmt.Sprintf("sim: no stats for shape %d", s))
		}
	}
	return t
}

// Stats returns the stats for a shape. Unknown shapes get cube stats.
func (t ShapeTable) Stats(s Shape) config.ShapeStats {
	if !s.Valid() {
		return t[ShapeCube]
	}
	return t[s]
}

// Kind identifies what an entity is.
type Kind uint8

const (
	KindBreakable Kind = iota
	KindUnbreakable
	KindCollectible
	KindPortalCube
	KindPortalPyramid
	KindPortalSphere
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindBreakable:
		return "breakable"
	case KindUnbreakable:
		return "unbreakable"
	case KindCollectible:
		return "collectible"
	case KindPortalCube:
		return "portal-cube"
	case KindPortalPyramid:
		return "portal-pyramid"
	case KindPortalSphere:
		return "portal-sphere"
	default:
		return "unknown"
	}
}

// IsPortal reports whether k is one of the portal kinds.
func (k Kind) IsPortal() bool {
	return k == KindPortalCube || k == KindPortalPyramid || k == KindPortalSphere
}

// IsObstacle reports whether k is a breakable or unbreakable obstacle.
func (k Kind) IsObstacle() bool {
	return k == KindBreakable || k == KindUnbreakable
}

// PortalKind returns the portal kind that requires shape s.
func PortalKind(s Shape) Kind {
	switch s {
	case ShapePyramid:
		return KindPortalPyramid
	case ShapeSphere:
		return KindPortalSphere
	default:
		return KindPortalCube
	}
}

// Mode is the run mode.
type Mode uint8

const (
	ModeMission Mode = iota // Finite run ending at the target distance
	ModeEndless             // Unbounded run with incremental generation
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	if m == ModeEndless {
		return "endless"
	}
	return "mission"
}
