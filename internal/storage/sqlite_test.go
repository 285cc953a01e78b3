package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTemp(t)

	runs := []Run{
		{Mode: "shaperun", Outcome: OutcomeDefeat, Score: 100, Distance: 210},
		{Mode: "shaperun", Outcome: OutcomeVictory, Score: 340, Distance: 500, Seed: 7},
		{Mode: "shaperun", Outcome: OutcomeDefeat, Score: 100, Distance: 320},
		{Mode: "shaperun_endless", Outcome: OutcomeDefeat, Score: 900, Distance: 1500, Origin: "ssh"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("shaperun", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	if top[0].Score != 340 || top[0].Outcome != OutcomeVictory || top[0].Seed != 7 {
		t.Errorf("best run = %+v", top[0])
	}
	// Equal scores are ordered by distance.
	if top[1].Distance != 320 || top[2].Distance != 210 {
		t.Errorf("tie order = %v, %v", top[1].Distance, top[2].Distance)
	}
	if top[2].Origin != "local" {
		t.Errorf("default origin = %q", top[2].Origin)
	}

	limited, err := store.TopRuns("shaperun", 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("limit not applied: %d runs, err %v", len(limited), err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTemp(t)
	for i, mode := range []string{"a", "b", "c"} {
		if _, err := store.SaveRun(Run{Mode: mode, Outcome: OutcomeDefeat, Score: i}); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Mode != "c" || recent[1].Mode != "b" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTemp(t)

	high, err := store.HighScore("shaperun")
	if err != nil || high != 0 {
		t.Fatalf("HighScore() on empty = %d, %v", high, err)
	}

	store.SaveRun(Run{Mode: "shaperun", Outcome: OutcomeDefeat, Score: 70})
	store.SaveRun(Run{Mode: "shaperun", Outcome: OutcomeDefeat, Score: 120})

	if high, _ = store.HighScore("shaperun"); high != 120 {
		t.Errorf("HighScore() = %d, expected 120", high)
	}

	if err := store.ClearRuns("shaperun"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if high, _ = store.HighScore("shaperun"); high != 0 {
		t.Errorf("HighScore() after clear = %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTemp(t)
	store.SaveRun(Run{Mode: "shaperun", Outcome: OutcomeVictory, Score: 200, Distance: 500})
	store.SaveRun(Run{Mode: "shaperun", Outcome: OutcomeDefeat, Score: 100, Distance: 250})
	store.SaveRun(Run{Mode: "shaperun_endless", Outcome: OutcomeAbandoned, Score: 40, Distance: 90})

	st, err := store.Stats("shaperun")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.Victories != 1 || st.HighScore != 200 || st.BestDistance != 500 || st.AvgScore != 150 {
		t.Errorf("stats = %+v", st)
	}

	empty, err := store.Stats("unknown")
	if err != nil || empty.Runs != 0 {
		t.Errorf("stats for unplayed mode = %+v, %v", empty, err)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["shaperun_endless"].Runs != 1 {
		t.Errorf("all stats = %+v", all)
	}
}
