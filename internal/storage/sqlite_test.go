package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func solve(levelID string, d time.Duration, ticks int) SolveEntry {
	return SolveEntry{
		LevelID:  levelID,
		Ticks:    ticks,
		Duration: d,
		Pushes:   3,
		Breaks:   1,
		Masks:    2,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSolve(solve("push_tutorial", 12*time.Second, 720)); err != nil {
		t.Fatalf("SaveSolve() failed: %v", err)
	}
	if _, err := store.SaveSolve(solve("push_tutorial", 8*time.Second, 480)); err != nil {
		t.Fatalf("SaveSolve() failed: %v", err)
	}
	if _, err := store.SaveSolve(solve("push_tutorial", 20*time.Second, 1200)); err != nil {
		t.Fatalf("SaveSolve() failed: %v", err)
	}

	// Different level
	if _, err := store.SaveSolve(solve("medium1", 90*time.Second, 5400)); err != nil {
		t.Fatalf("SaveSolve() failed: %v", err)
	}

	solves, err := store.TopSolves("push_tutorial", 10)
	if err != nil {
		t.Fatalf("TopSolves() failed: %v", err)
	}

	if len(solves) != 3 {
		t.Fatalf("Expected 3 solves, got %d", len(solves))
	}

	// Quickest first
	if solves[0].Duration != 8*time.Second {
		t.Errorf("Expected quickest solve of 8s, got %v", solves[0].Duration)
	}
	if solves[1].Duration != 12*time.Second {
		t.Errorf("Expected second solve of 12s, got %v", solves[1].Duration)
	}
	if solves[2].Duration != 20*time.Second {
		t.Errorf("Expected third solve of 20s, got %v", solves[2].Duration)
	}

	// Counters round-trip
	if solves[0].Pushes != 3 || solves[0].Breaks != 1 || solves[0].Masks != 2 {
		t.Errorf("Counters did not round-trip: %+v", solves[0])
	}
	if solves[0].Ticks != 480 {
		t.Errorf("Ticks = %d, expected 480", solves[0].Ticks)
	}

	mediumSolves, err := store.TopSolves("medium1", 10)
	if err != nil {
		t.Fatalf("TopSolves() failed: %v", err)
	}
	if len(mediumSolves) != 1 {
		t.Errorf("Expected 1 medium1 solve, got %d", len(mediumSolves))
	}
}

func TestStoreTopSolvesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveSolve(solve("test", time.Duration(i+1)*time.Second, (i+1)*60))
	}

	solves, err := store.TopSolves("test", 3)
	if err != nil {
		t.Fatalf("TopSolves() failed: %v", err)
	}

	if len(solves) != 3 {
		t.Fatalf("Expected 3 solves with limit, got %d", len(solves))
	}

	if solves[0].Duration != time.Second || solves[2].Duration != 3*time.Second {
		t.Errorf("Solves not in expected order: %v", solves)
	}
}

func TestStoreBestSolve(t *testing.T) {
	store := openTestStore(t)

	// No solves yet
	best, err := store.BestSolve("ignore_tutorial")
	if err != nil {
		t.Fatalf("BestSolve() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil best for unsolved level, got %+v", best)
	}

	store.SaveSolve(solve("ignore_tutorial", 30*time.Second, 1800))
	store.SaveSolve(solve("ignore_tutorial", 15*time.Second, 900))
	store.SaveSolve(solve("ignore_tutorial", 45*time.Second, 2700))

	best, err = store.BestSolve("ignore_tutorial")
	if err != nil {
		t.Fatalf("BestSolve() failed: %v", err)
	}
	if best == nil || best.Duration != 15*time.Second {
		t.Errorf("Expected best solve of 15s, got %+v", best)
	}
}

func TestStoreClearSolves(t *testing.T) {
	store := openTestStore(t)

	store.SaveSolve(solve("push_tutorial", 10*time.Second, 600))
	store.SaveSolve(solve("push_tutorial", 11*time.Second, 660))
	store.SaveSolve(solve("medium2", 60*time.Second, 3600))

	if err := store.ClearSolves("push_tutorial"); err != nil {
		t.Fatalf("ClearSolves() failed: %v", err)
	}

	tutorialSolves, _ := store.TopSolves("push_tutorial", 10)
	if len(tutorialSolves) != 0 {
		t.Errorf("Expected 0 tutorial solves after clear, got %d", len(tutorialSolves))
	}

	mediumSolves, _ := store.TopSolves("medium2", 10)
	if len(mediumSolves) != 1 {
		t.Errorf("medium2 solves should not be affected by clearing push_tutorial")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	// Unsolved level: zero counts, no error
	stats, err := store.Stats("medium3")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.SolveCount != 0 || stats.BestDuration != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveSolve(SolveEntry{LevelID: "medium3", Ticks: 600, Duration: 10 * time.Second, Pushes: 5, Breaks: 2})
	store.SaveSolve(SolveEntry{LevelID: "medium3", Ticks: 1200, Duration: 20 * time.Second, Pushes: 7, Breaks: 0})

	stats, err = store.Stats("medium3")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.SolveCount != 2 {
		t.Errorf("SolveCount = %d, expected 2", stats.SolveCount)
	}
	if stats.BestDuration != 10*time.Second {
		t.Errorf("BestDuration = %v, expected 10s", stats.BestDuration)
	}
	if stats.AvgDuration != 15*time.Second {
		t.Errorf("AvgDuration = %v, expected 15s", stats.AvgDuration)
	}
	if stats.TotalPushes != 12 || stats.TotalBreaks != 2 {
		t.Errorf("Totals = %d pushes %d breaks, expected 12 and 2", stats.TotalPushes, stats.TotalBreaks)
	}
}

func TestStoreAllStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveSolve(solve("push_tutorial", 10*time.Second, 600))
	store.SaveSolve(solve("medium1", 60*time.Second, 3600))
	store.SaveSolve(solve("medium1", 50*time.Second, 3000))

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(all))
	}
	if all["medium1"].SolveCount != 2 {
		t.Errorf("medium1 count = %d, expected 2", all["medium1"].SolveCount)
	}
	if all["medium1"].BestDuration != 50*time.Second {
		t.Errorf("medium1 best = %v, expected 50s", all["medium1"].BestDuration)
	}
	if all["push_tutorial"].SolveCount != 1 {
		t.Errorf("push_tutorial count = %d, expected 1", all["push_tutorial"].SolveCount)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
