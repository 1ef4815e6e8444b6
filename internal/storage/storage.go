package storage

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/katsup07/chess/internal/game"
)

// Storage keys
const (
	keyStats   = "stats"
	gamePrefix = "game:"
)

// ErrNotFound reports a lookup for a game id that is not stored.
var ErrNotFound = errors.New("game not found")

// GameRecord is the persisted form of one game.
type GameRecord struct {
	ID         string            `json:"id"`
	StartFEN   string            `json:"start_fen"`
	FEN        string            `json:"fen"`
	Moves      []game.MoveRecord `json:"moves"`
	Result     string            `json:"result"`
	Status     string            `json:"status"`
	Difficulty string            `json:"difficulty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Outcome is a finished game seen from the human player's side.
type Outcome int

const (
	Win Outcome = iota
	Loss
	Draw
)

// Tally counts outcomes.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Stats aggregates play statistics across all finished games.
type Stats struct {
	GamesPlayed   int              `json:"games_played"`
	Wins          int              `json:"wins"`
	Losses        int              `json:"losses"`
	Draws         int              `json:"draws"`
	ByDifficulty  map[string]Tally `json:"by_difficulty"`
	CurrentStreak int              `json:"current_streak"`
	LongestStreak int              `json:"longest_streak"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{ByDifficulty: make(map[string]Tally)}
}

// WinRate returns the win rate as a percentage (0-100).
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes a game record, stamping UpdatedAt.
func (s *Storage) SaveGame(rec *GameRecord) error {
	rec.UpdatedAt = time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gamePrefix+rec.ID), data)
	})
}

// LoadGame reads one game record by id.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gamePrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListGames returns all stored games, most recently updated first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var records []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// DeleteGame removes a stored game. Deleting an unknown id is not an
// error.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(gamePrefix + id))
	})
}

// SaveStats writes the statistics blob.
func (s *Storage) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats reads statistics, returning empty stats when none are
// stored yet.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if err != nil {
		return nil, err
	}
	if stats.ByDifficulty == nil {
		stats.ByDifficulty = make(map[string]Tally)
	}
	return stats, nil
}

// RecordOutcome folds one finished game into the statistics.
func (s *Storage) RecordOutcome(difficulty string, outcome Outcome) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	tally := stats.ByDifficulty[difficulty]
	switch outcome {
	case Win:
		stats.Wins++
		tally.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
	case Loss:
		stats.Losses++
		tally.Losses++
		stats.CurrentStreak = 0
	case Draw:
		stats.Draws++
		tally.Draws++
		stats.CurrentStreak = 0
	}
	stats.ByDifficulty[difficulty] = tally

	return s.SaveStats(stats)
}
