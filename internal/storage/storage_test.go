package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/katsup07/chess/internal/game"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	dir, err := os.MkdirTemp("", "chess-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGameRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	rec := &GameRecord{
		ID:         "abc123",
		StartFEN:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		FEN:        "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		Moves:      []game.MoveRecord{{Coord: "e2e4", SAN: "e4"}},
		Result:     "*",
		Status:     "ongoing",
		Difficulty: "medium",
	}
	if err := s.SaveGame(rec); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	got, err := s.LoadGame("abc123")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if got.FEN != rec.FEN || len(got.Moves) != 1 || got.Moves[0].SAN != "e4" {
		t.Errorf("Loaded record differs: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("SaveGame should stamp CreatedAt and UpdatedAt")
	}

	if _, err := s.LoadGame("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadGame of unknown id = %v, want ErrNotFound", err)
	}
}

func TestListAndDeleteGames(t *testing.T) {
	s := openTestStorage(t)

	for _, id := range []string{"one", "two"} {
		if err := s.SaveGame(&GameRecord{ID: id, Status: "ongoing", Result: "*"}); err != nil {
			t.Fatalf("SaveGame %s failed: %v", id, err)
		}
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 stored games, got %d", len(games))
	}

	if err := s.DeleteGame("one"); err != nil {
		t.Fatalf("DeleteGame failed: %v", err)
	}
	if err := s.DeleteGame("never-existed"); err != nil {
		t.Errorf("Deleting an unknown id should not error, got %v", err)
	}
	games, _ = s.ListGames()
	if len(games) != 1 || games[0].ID != "two" {
		t.Errorf("Expected only game 'two' to remain, got %+v", games)
	}
}

func TestStatsDefaultsAndOutcomes(t *testing.T) {
	s := openTestStorage(t)

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.GamesPlayed != 0 || stats.WinRate() != 0 {
		t.Errorf("Fresh stats should be empty, got %+v", stats)
	}

	outcomes := []Outcome{Win, Win, Loss, Draw}
	for _, o := range outcomes {
		if err := s.RecordOutcome("medium", o); err != nil {
			t.Fatalf("RecordOutcome failed: %v", err)
		}
	}

	stats, err = s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.GamesPlayed != 4 || stats.Wins != 2 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("Tally wrong: %+v", stats)
	}
	if stats.WinRate() != 50 {
		t.Errorf("WinRate = %.2f, want 50", stats.WinRate())
	}
	if stats.LongestStreak != 2 || stats.CurrentStreak != 0 {
		t.Errorf("Streaks wrong: current %d longest %d", stats.CurrentStreak, stats.LongestStreak)
	}
	tally := stats.ByDifficulty["medium"]
	if tally.Wins != 2 || tally.Losses != 1 || tally.Draws != 1 {
		t.Errorf("Per-difficulty tally wrong: %+v", tally)
	}
}

func TestDataDir(t *testing.T) {
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dir == "" {
		t.Fatal("DataDir returned empty path")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dir)
	}
	t.Logf("Data directory: %s", dir)
}
