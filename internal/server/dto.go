package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/katsup07/chess/internal/engine"
	"github.com/katsup07/chess/internal/game"
	"github.com/katsup07/chess/internal/storage"
)

// newGameRequest creates a game. Both fields are optional: fen
// defaults to the starting position, difficulty to medium.
type newGameRequest struct {
	FEN        string `json:"fen,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type moveRequest struct {
	Move string `json:"move"`
}

// gameResponse is the full state snapshot a frontend renders from.
type gameResponse struct {
	ID         string            `json:"id"`
	FEN        string            `json:"fen"`
	Turn       string            `json:"turn"`
	Status     string            `json:"status"`
	Winner     string            `json:"winner,omitempty"`
	Result     string            `json:"result"`
	Check      bool              `json:"check"`
	Difficulty string            `json:"difficulty"`
	Moves      []game.MoveRecord `json:"moves"`
	LegalMoves []string          `json:"legal_moves"`
}

// gameSummary is one row of the saved-games listing.
type gameSummary struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Result     string    `json:"result"`
	Difficulty string    `json:"difficulty"`
	Plies      int       `json:"plies"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func summaryFromRecord(rec *storage.GameRecord) gameSummary {
	return gameSummary{
		ID:         rec.ID,
		Status:     rec.Status,
		Result:     rec.Result,
		Difficulty: rec.Difficulty,
		Plies:      len(rec.Moves),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

// enginePayload is one search progress report streamed to websocket
// clients while the engine thinks.
type enginePayload struct {
	Depth  int    `json:"depth"`
	Score  string `json:"score"`
	Nodes  uint64 `json:"nodes"`
	TimeMs int64  `json:"time_ms"`
	Best   string `json:"best"`
}

func engineInfoDTO(info engine.SearchInfo) enginePayload {
	return enginePayload{
		Depth:  info.Depth,
		Score:  engine.ScoreToString(info.Score, info.Depth),
		Nodes:  info.Nodes,
		TimeMs: info.Time.Milliseconds(),
		Best:   info.Best.String(),
	}
}

// statsResponse wraps stored statistics with the derived win rate.
type statsResponse struct {
	*storage.Stats
	WinRate float64 `json:"win_rate"`
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
