package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/katsup07/chess/internal/board"
	"github.com/katsup07/chess/internal/engine"
	"github.com/katsup07/chess/internal/game"
	"github.com/katsup07/chess/internal/storage"
)

// liveGame is a game resident in memory. The human plays the side
// that was to move when the game was created; the engine answers for
// the other side.
type liveGame struct {
	game      *game.Game
	human     board.Color
	createdAt time.Time
	recorded  bool // outcome already counted in stats
}

// Controller owns the games and writes every change through to the
// store. A single mutex serializes all mutations, so a request that
// triggers an engine reply holds it for the length of the search.
type Controller struct {
	mu    sync.Mutex
	games map[string]*liveGame
	store *storage.Storage
	log   zerolog.Logger
}

func NewController(store *storage.Storage, log zerolog.Logger) *Controller {
	return &Controller{
		games: make(map[string]*liveGame),
		store: store,
		log:   log.With().Str("component", "controller").Logger(),
	}
}

// Create starts a new game and persists it.
func (c *Controller) Create(req newGameRequest) (gameResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := engine.Medium
	if req.Difficulty != "" {
		var err error
		if d, err = engine.ParseDifficulty(req.Difficulty); err != nil {
			return gameResponse{}, err
		}
	}
	fen := req.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	g, err := game.NewFromFEN(fen, d)
	if err != nil {
		return gameResponse{}, err
	}

	id := newGameID()
	lg := &liveGame{game: g, human: g.SideToMove(), createdAt: time.Now()}
	c.games[id] = lg
	c.persist(id, lg)
	c.log.Info().Str("game_id", id).Str("difficulty", d.String()).Msg("game created")
	return c.snapshot(id, lg), nil
}

// Get returns the state of a game, loading it from the store when it
// is not resident.
func (c *Controller) Get(id string) (gameResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lg, err := c.resident(id)
	if err != nil {
		return gameResponse{}, err
	}
	return c.snapshot(id, lg), nil
}

// List returns summaries of all stored games, most recent first.
func (c *Controller) List() ([]gameSummary, error) {
	recs, err := c.store.ListGames()
	if err != nil {
		return nil, err
	}
	summaries := make([]gameSummary, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, summaryFromRecord(rec))
	}
	return summaries, nil
}

// Stats returns the stored play statistics.
func (c *Controller) Stats() (statsResponse, error) {
	stats, err := c.store.LoadStats()
	if err != nil {
		return statsResponse{}, err
	}
	return statsResponse{Stats: stats, WinRate: stats.WinRate()}, nil
}

// Move applies the human's move and, while the game stays open, the
// engine's reply. Search progress is reported through onInfo.
func (c *Controller) Move(id, mv string, onInfo func(engine.SearchInfo)) (gameResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lg, err := c.resident(id)
	if err != nil {
		return gameResponse{}, err
	}
	status, err := lg.game.ApplyMove(mv)
	if err != nil {
		return gameResponse{}, err
	}
	if !status.Terminal() {
		eng := lg.game.Engine()
		eng.OnInfo = onInfo
		if _, _, err := lg.game.EngineReply(); err != nil {
			eng.OnInfo = nil
			return gameResponse{}, err
		}
		eng.OnInfo = nil
	}
	c.recordIfFinished(id, lg)
	c.persist(id, lg)
	return c.snapshot(id, lg), nil
}

// Undo retracts the engine reply and the human move that prompted it.
// When only the human has moved, a single ply comes back.
func (c *Controller) Undo(id string) (gameResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lg, err := c.resident(id)
	if err != nil {
		return gameResponse{}, err
	}
	if err := lg.game.Undo(); err != nil {
		return gameResponse{}, err
	}
	if lg.game.SideToMove() != lg.human && lg.game.Plies() > 0 {
		_ = lg.game.Undo()
	}
	c.persist(id, lg)
	return c.snapshot(id, lg), nil
}

// Delete removes a game from memory and from the store.
func (c *Controller) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.games, id)
	return c.store.DeleteGame(id)
}

// resident returns the live game for id, rehydrating it from the
// store by replaying its moves when the server has restarted since
// the game was created. Callers hold c.mu.
func (c *Controller) resident(id string) (*liveGame, error) {
	if lg, ok := c.games[id]; ok {
		return lg, nil
	}
	rec, err := c.store.LoadGame(id)
	if err != nil {
		return nil, err
	}
	d, err := engine.ParseDifficulty(rec.Difficulty)
	if err != nil {
		d = engine.Medium
	}
	g, err := game.NewFromFEN(rec.StartFEN, d)
	if err != nil {
		return nil, fmt.Errorf("rehydrate %s: %w", id, err)
	}
	human := g.SideToMove()
	for _, mv := range rec.Moves {
		if _, err := g.ApplyMove(mv.Coord); err != nil {
			return nil, fmt.Errorf("rehydrate %s: move %s: %w", id, mv.Coord, err)
		}
	}
	lg := &liveGame{
		game:      g,
		human:     human,
		createdAt: rec.CreatedAt,
		recorded:  rec.Status != board.Ongoing.String(),
	}
	c.games[id] = lg
	return lg, nil
}

// recordIfFinished counts a just-finished game in the stats, once.
func (c *Controller) recordIfFinished(id string, lg *liveGame) {
	status, winner := lg.game.Status()
	if !status.Terminal() || lg.recorded {
		return
	}
	lg.recorded = true
	outcome := storage.Draw
	if status == board.Checkmate {
		if winner == lg.human {
			outcome = storage.Win
		} else {
			outcome = storage.Loss
		}
	}
	if err := c.store.RecordOutcome(lg.game.Difficulty().String(), outcome); err != nil {
		c.log.Warn().Err(err).Str("game_id", id).Msg("record outcome failed")
	}
}

// persist writes the game through to the store. Persistence failures
// are logged, not surfaced: the in-memory game stays playable.
func (c *Controller) persist(id string, lg *liveGame) {
	status, _ := lg.game.Status()
	rec := &storage.GameRecord{
		ID:         id,
		StartFEN:   lg.game.StartFEN(),
		FEN:        lg.game.FEN(),
		Moves:      append([]game.MoveRecord(nil), lg.game.History()...),
		Result:     lg.game.Result(),
		Status:     status.String(),
		Difficulty: lg.game.Difficulty().String(),
		CreatedAt:  lg.createdAt,
	}
	if err := c.store.SaveGame(rec); err != nil {
		c.log.Warn().Err(err).Str("game_id", id).Msg("save game failed")
	}
}

func (c *Controller) snapshot(id string, lg *liveGame) gameResponse {
	status, winner := lg.game.Status()
	resp := gameResponse{
		ID:         id,
		FEN:        lg.game.FEN(),
		Turn:       colorLetter(lg.game.SideToMove()),
		Status:     status.String(),
		Result:     lg.game.Result(),
		Check:      lg.game.InCheck(),
		Difficulty: lg.game.Difficulty().String(),
		Moves:      append([]game.MoveRecord(nil), lg.game.History()...),
		LegalMoves: moveStrings(lg.game.LegalMoves()),
	}
	if status == board.Checkmate {
		resp.Winner = colorName(winner)
	}
	return resp
}

func colorLetter(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}

func moveStrings(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func newGameID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf[:])
}
