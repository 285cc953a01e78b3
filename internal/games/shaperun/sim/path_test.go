package sim_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

func TestPathPointBoundedAndContinuous(t *testing.T) {
	pc := config.DefaultRunnerConfig().Path

	for _, tort := range []float64{0.5, 1.0, 3.0} {
		p := sim.NewPathParams(pc, tort)
		const dz = 0.01
		// Max slope of either curve bounds the change per step.
		maxStep := (p.AmplitudeX + 1.5*p.AmplitudeY) * p.Frequency() * dz * 1.01

		prev := sim.PathPoint(0, 0, p)
		for z := dz; z < 2000; z += dz {
			pt := sim.PathPoint(z, math.Pi, p)
			if math.Abs(pt.X) > p.AmplitudeX+1e-9 || math.Abs(pt.Y) > p.AmplitudeY+1e-9 {
				t.Fatalf("tortuosity %v: point %+v out of amplitude bounds at z=%v", tort, pt, z)
			}
			if pt.Z != -z {
				t.Fatalf("travel axis should be -z, got %v at z=%v", pt.Z, z)
			}
			cur := sim.PathPoint(z, 0, p)
			if math.Abs(cur.X-prev.X) > maxStep || math.Abs(cur.Y-prev.Y) > maxStep {
				t.Fatalf("tortuosity %v: jump at z=%v: %+v -> %+v", tort, z, prev, cur)
			}
			prev = cur
		}
	}
}

func TestPathPointPure(t *testing.T) {
	p := sim.NewPathParams(config.DefaultRunnerConfig().Path, 1.7)
	for _, z := range []float64{0, 13.5, 400, 1999} {
		if sim.PathPoint(z, 1, p) != sim.PathPoint(z, 1, p) {
			t.Errorf("PathPoint not repeatable at z=%v", z)
		}
	}
}

func TestLanesOpposedPhases(t *testing.T) {
	lanes := sim.NewLanes(config.DefaultRunnerConfig().Path, 1.0)
	pts := lanes.At(0)

	// Phase 0 and pi mirror each other.
	if math.Abs(pts[0].X+pts[1].X) > 1e-9 || math.Abs(pts[0].Y+pts[1].Y) > 1e-9 {
		t.Errorf("lanes should mirror at z=0, got %+v and %+v", pts[0], pts[1])
	}
	if c := lanes.Clearance(pts[1], 0); c != 0 {
		t.Errorf("clearance on a lane point = %v, expected 0", c)
	}
}
