package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
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

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200, 500, 400} {
		if _, err := store.SaveScore("runner", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("other", 900)

	scores, err := store.TopScores("runner", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 200 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	for _, s := range scores {
		if s.GameID != "runner" {
			t.Errorf("GameID = %q, expected runner", s.GameID)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d for empty game, expected 0", high)
	}

	store.SaveScore("runner", 100)
	store.SaveScore("runner", 300)
	store.SaveScore("runner", 200)

	high, err = store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveRun(RunRecord{
		GameID:            "runner",
		Player:            "alice",
		Score:             158,
		Wave:              3,
		Duration:          72500 * time.Millisecond,
		EnemiesDefeated:   4,
		PowerUpsCollected: 2,
		DamageTaken:       35,
		Seed:              42,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if saved.RunID == uuid.Nil {
		t.Fatal("SaveRun() should assign a run ID")
	}

	got, err := store.RunByID(saved.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.Score != 158 || got.Wave != 3 || got.Player != "alice" || got.Seed != 42 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Duration != 72500*time.Millisecond {
		t.Errorf("Duration = %v, expected 1m12.5s", got.Duration)
	}
	if got.EnemiesDefeated != 4 || got.PowerUpsCollected != 2 || got.DamageTaken != 35 {
		t.Errorf("stats = %d/%d/%d", got.EnemiesDefeated, got.PowerUpsCollected, got.DamageTaken)
	}

	// A run also counts as a score entry.
	high, _ := store.HighScore("runner")
	if high != 158 {
		t.Errorf("HighScore() = %d, expected 158", high)
	}
}

func TestStoreSaveRunKeepsID(t *testing.T) {
	store := openTestStore(t)
	id := uuid.New()

	saved, err := store.SaveRun(RunRecord{RunID: id, GameID: "runner", Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if saved.RunID != id {
		t.Errorf("RunID = %v, expected %v", saved.RunID, id)
	}

	if _, err := store.SaveRun(RunRecord{RunID: id, GameID: "runner", Score: 2}); err == nil {
		t.Error("expected error for duplicate run ID")
	}
	// The failed run must not leave a score behind.
	scores, _ := store.TopScores("runner", 10)
	if len(scores) != 1 {
		t.Errorf("expected 1 score after failed save, got %d", len(scores))
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(uuid.New())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, expected nil", got)
	}
}

func TestStoreRunQueries(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "runner", Player: "alice", Score: 10},
		{GameID: "runner", Player: "bob", Score: 30},
		{GameID: "runner", Player: "alice", Score: 20},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns("runner", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].Score != 20 || recent[2].Score != 10 {
		t.Errorf("RecentRuns() order = %v", scoresOf(recent))
	}

	best, err := store.BestRuns("runner", 2)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 2 || best[0].Score != 30 || best[1].Score != 20 {
		t.Errorf("BestRuns() = %v", scoresOf(best))
	}

	mine, err := store.PlayerRuns("alice", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("PlayerRuns(alice) returned %d runs, expected 2", len(mine))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "runner", Score: 100})
	store.SaveScore("runner", 200)
	store.SaveScore("other", 300)

	if err := store.ClearScores("runner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("runner", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("runner", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("other game should not be affected")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetGameStats() on empty = %+v", empty)
	}

	store.SaveRun(RunRecord{GameID: "runner", Score: 100, Wave: 2, EnemiesDefeated: 3, Duration: time.Second})
	store.SaveRun(RunRecord{GameID: "runner", Score: 300, Wave: 5, EnemiesDefeated: 7, Duration: 2 * time.Second})

	stats, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("HighScore/AvgScore = %d/%v, expected 300/200", stats.HighScore, stats.AvgScore)
	}
	if stats.BestWave != 5 || stats.TotalEnemies != 10 {
		t.Errorf("BestWave/TotalEnemies = %d/%d, expected 5/10", stats.BestWave, stats.TotalEnemies)
	}
	if stats.TotalTime != 3*time.Second {
		t.Errorf("TotalTime = %v, expected 3s", stats.TotalTime)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func scoresOf(runs []RunRecord) []int {
	out := make([]int, len(runs))
	for i, r := range runs {
		out[i] = r.Score
	}
	return out
}
