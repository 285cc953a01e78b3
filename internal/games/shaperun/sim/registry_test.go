package sim_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/shaperun/internal/core"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

func ids(es []sim.Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func TestRegistryInsertOrderAndDuplicates(t *testing.T) {
	r := sim.NewRegistry()
	n := r.InsertAll([]sim.Entity{
		{ID: "b", Pos: core.V3(0, 0, -10)},
		{ID: "a", Pos: core.V3(0, 0, -20)},
		{ID: "b", Pos: core.V3(0, 0, -30)},
	})
	if n != 2 || r.Len() != 2 {
		t.Fatalf("inserted %d, len %d, expected 2", n, r.Len())
	}
	if got := ids(r.Entities()); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("scan order = %v", got)
	}
	if e, _ := r.Get("b"); e.Pos.Z != -10 {
		t.Error("duplicate insert should not overwrite")
	}
}

func TestRegistryRemoveIdempotent(t *testing.T) {
	r := sim.NewRegistry()
	r.InsertAll([]sim.Entity{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	r.Remove("b", "missing")
	r.Remove("b")
	if got := ids(r.Entities()); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("after remove = %v", got)
	}
}

func TestRegistryApplyHP(t *testing.T) {
	r := sim.NewRegistry()
	r.InsertAll([]sim.Entity{
		{ID: "x", Kind: sim.KindBreakable, HP: 3},
		{ID: "y", Kind: sim.KindBreakable, HP: 3},
	})

	r.ApplyHP(map[string]float64{"x": 1.5, "y": 0, "ghost": -1})

	if e, ok := r.Get("x"); !ok || e.HP != 1.5 {
		t.Errorf("x = %+v, %v", e, ok)
	}
	if _, ok := r.Get("y"); ok {
		t.Error("entity at hp 0 should be removed")
	}
}

func TestRegistryCull(t *testing.T) {
	r := sim.NewRegistry()
	r.InsertAll([]sim.Entity{
		{ID: "far-behind", Pos: core.V3(0, 0, -40)},
		{ID: "just-behind", Pos: core.V3(0, 0, -150)},
		{ID: "ahead", Pos: core.V3(0, 0, -300)},
	})

	// distance 200, margin 50: anything with z > -150 goes.
	culled := r.Cull(200, 50)
	if !reflect.DeepEqual(culled, []string{"far-behind"}) {
		t.Errorf("culled = %v", culled)
	}
	if r.Len() != 2 {
		t.Errorf("len = %d, expected 2", r.Len())
	}
}

func TestRegistryProjectiles(t *testing.T) {
	r := sim.NewRegistry()
	p1 := r.AddProjectile(core.V3(0, 0, -2), sim.ShapeCube)
	p2 := r.AddProjectile(core.V3(1, 0, -2), sim.ShapeSphere)
	if p1.ID == p2.ID || !p1.Active {
		t.Fatalf("projectiles %+v %+v", p1, p2)
	}

	r.RemoveProjectiles(p1.ID, 999)
	got := r.Projectiles()
	if len(got) != 1 || got[0].ID != p2.ID {
		t.Errorf("projectiles = %+v", got)
	}

	r.Reset()
	if r.Len() != 0 || len(r.Projectiles()) != 0 {
		t.Error("Reset should clear everything")
	}
}
