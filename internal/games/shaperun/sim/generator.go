package sim

import (
	"math"
	"strconv"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/core"
)

// Rand is the random source consumed by the generator.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// noPortalYet makes the first portal eligible at any step.
const noPortalYet = -math.MaxFloat64

// Generator places entities along the corridor in fixed distance steps.
// The last-portal tracker persists across calls so consecutive ranges keep
// portal spacing.
type Generator struct {
	cfg         config.GeneratorConfig
	lanes       Lanes
	density     float64
	rng         Rand
	missionEnd  float64 // Zero in endless mode
	lastPortalZ float64
}

// NewGenerator creates a generator for one run.
// missionEnd is the target distance for finite runs and 0 for endless runs.
func NewGenerator(cfg config.RunnerConfig, mission config.Mission, missionEnd float64, rng Rand) *Generator {
	return &Generator{
		cfg:         cfg.Generator,
		lanes:       NewLanes(cfg.Path, mission.Tortuosity),
		density:     mission.Density,
		rng:         rng,
		missionEnd:  missionEnd,
		lastPortalZ: noPortalYet,
	}
}

// Lanes returns the reference lanes used for placement.
func (g *Generator) Lanes() Lanes {
	return g.lanes
}

// Mission generates the whole bounded interval [StartZ, missionEnd) once.
func (g *Generator) Mission() []Entity {
	return g.Range(g.cfg.StartZ, g.missionEnd-g.cfg.StartZ)
}

// Range generates entities for steps z in [start, start+length).
func (g *Generator) Range(start, length float64) []Entity {
	if g.cfg.Step <= 0 || length <= 0 {
		return nil
	}
	end := start + length
	items := make([]Entity, 0, int(length/g.cfg.Step)*2)

	for i := 0; ; i++ {
		z := start + float64(i)*g.cfg.Step
		if z >= end {
			break
		}
		if portal, ok := g.tryPortal(z); ok {
			items = append(items, portal)
			continue
		}
		items = g.placeObstacles(items, z)
	}
	return items
}

func (g *Generator) tryPortal(z float64) (Entity, bool) {
	if g.rng.Float64() >= g.cfg.PortalChance {
		return Entity{}, false
	}
	if z-g.lastPortalZ < g.cfg.PortalMinSpacing {
		return Entity{}, false
	}
	if g.missionEnd > 0 && z >= g.missionEnd-g.cfg.PortalEndMargin {
		return Entity{}, false
	}

	g.lastPortalZ = z
	shape := Shapes[g.rng.Intn(len(Shapes))]
	return Entity{
		ID:    "portal-" + formatZ(z),
		Kind:  PortalKind(shape),
		Pos:   core.V3(0, g.cfg.PortalY, -z),
		HP:    1,
		Shape: shape,
	}, true
}

func (g *Generator) placeObstacles(items []Entity, z float64) []Entity {
	for i := 0; i < g.cfg.Attempts; i++ {
		if g.rng.Float64() >= g.density {
			continue
		}
		pos := core.V3(
			g.uniform(-g.cfg.CorridorX, g.cfg.CorridorX),
			g.uniform(-g.cfg.CorridorY, g.cfg.CorridorY),
			-z,
		)
		suffix := formatZ(z) + "-" + strconv.Itoa(i)

		if g.lanes.Clearance(pos, z) < g.cfg.SafeRadius {
			// Only pickups may sit on a lane.
			if g.rng.Float64() < g.cfg.CollectibleChance {
				items = append(items, Entity{ID: "col-" + suffix, Kind: KindCollectible, Pos: pos, HP: 1})
			}
			continue
		}

		kind := KindUnbreakable
		if g.rng.Float64() < g.cfg.BreakableChance {
			kind = KindBreakable
		}
		items = append(items, Entity{ID: "obs-" + suffix, Kind: kind, Pos: pos, HP: g.cfg.ObstacleHP})
	}
	return items
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func formatZ(z float64) string {
	return strconv.FormatFloat(z, 'f', -1, 64)
}

// Chunker extends an endless corridor one chunk at a time.
type Chunker struct {
	gen            *Generator
	cfg            config.EndlessConfig
	startZ         float64
	generatedUntil float64
}

// NewChunker wraps a generator for incremental generation.
func NewChunker(gen *Generator, cfg config.EndlessConfig) *Chunker {
	return &Chunker{gen: gen, cfg: cfg, startZ: gen.cfg.StartZ}
}

// GeneratedUntil returns the end of the covered distance range.
func (c *Chunker) GeneratedUntil() float64 {
	return c.generatedUntil
}

// Initial generates the first chunk [StartZ, InitialChunk).
// Calling it again returns nil.
func (c *Chunker) Initial() []Entity {
	if c.generatedUntil > 0 {
		return nil
	}
	c.generatedUntil = math.Max(c.cfg.InitialChunk, c.startZ)
	return c.gen.Range(c.startZ, c.generatedUntil-c.startZ)
}

// Extend appends exactly one chunk when distance is within the look-ahead
// margin of the covered range, and returns nil otherwise.
func (c *Chunker) Extend(distance float64) []Entity {
	if c.generatedUntil == 0 || c.cfg.ChunkLength <= 0 {
		return nil
	}
	if distance+c.cfg.LookAhead <= c.generatedUntil {
		return nil
	}

	from := c.generatedUntil
	chunk := c.gen.Range(from, c.cfg.ChunkLength)
	c.generatedUntil = from + c.cfg.ChunkLength

	// Drop anything that falls in already covered distance.
	kept := chunk[:0]
	for _, e := range chunk {
		if math.Abs(e.Pos.Z) >= from {
			kept = append(kept, e)
		}
	}
	return kept
}
