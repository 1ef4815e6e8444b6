// Package game orchestrates a single chess game over the rules kernel:
// it keeps the move log, classifies the result after every move, and
// drives the engine for its replies.
package game

import (
	"errors"
	"fmt"

	"github.com/katsup07/chess/internal/board"
	"github.com/katsup07/chess/internal/engine"
)

// Sentinel errors for callers that want to branch on the cause.
var (
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// MoveRecord is one applied move in both notations the hosts need.
type MoveRecord struct {
	Coord string `json:"coord"` // coordinate form, e.g. "e2e4"
	SAN   string `json:"san"`   // standard algebraic, e.g. "e4"
}

// Game couples a position with its history and an engine opponent.
// A Game is not safe for concurrent use; callers serialize access.
type Game struct {
	pos      *board.Position
	startFEN string
	eng      *engine.Engine
	records  []MoveRecord
	undos    []board.Undo
	status   board.Status
	winner   board.Color
}

// New starts a game from the standard starting position.
func New(d engine.Difficulty) *Game {
	g, err := NewFromFEN(board.StartFEN, d)
	if err != nil {
		panic(err) // the start FEN is a constant and always parses
	}
	return g
}

// NewFromFEN starts a game from an arbitrary position.
func NewFromFEN(fen string, d engine.Difficulty) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	eng := engine.New()
	eng.SetDifficulty(d)
	g := &Game{
		pos:      pos,
		startFEN: pos.FEN(),
		eng:      eng,
	}
	g.status, g.winner = pos.Classify()
	return g, nil
}

// ApplyMove applies a move given in coordinate form ("e2e4") or SAN
// ("e4", "Nf3", "O-O"). It returns the resulting status.
func (g *Game) ApplyMove(s string) (board.Status, error) {
	if g.status.Terminal() {
		return g.status, ErrGameOver
	}
	m, err := g.pos.ParseMove(s)
	if err != nil {
		if san, sanErr := board.ParseSAN(s, g.pos); sanErr == nil {
			m = san
		} else {
			return g.status, err
		}
	}
	g.apply(m)
	return g.status, nil
}

// Apply applies a move taken from LegalMoves.
func (g *Game) Apply(m board.Move) (board.Status, error) {
	if g.status.Terminal() {
		return g.status, ErrGameOver
	}
	g.apply(m)
	return g.status, nil
}

// EngineReply asks the engine for its move and applies it.
func (g *Game) EngineReply() (MoveRecord, board.Status, error) {
	if g.status.Terminal() {
		return MoveRecord{}, g.status, ErrGameOver
	}
	m, ok := g.eng.BestMove(g.pos)
	if !ok {
		// Unreachable while status is ongoing, kept as a guard.
		return MoveRecord{}, g.status, ErrGameOver
	}
	g.apply(m)
	return g.records[len(g.records)-1], g.status, nil
}

// apply commits a legal move: SAN is rendered from the pre-move
// position, then the move is made and the game reclassified.
func (g *Game) apply(m board.Move) {
	rec := MoveRecord{Coord: m.String(), SAN: m.ToSAN(g.pos)}
	g.undos = append(g.undos, g.pos.MakeMove(m))
	g.records = append(g.records, rec)
	g.status, g.winner = g.pos.Classify()
}

// Undo retracts the most recent ply. Undoing out of a finished game
// reopens it.
func (g *Game) Undo() error {
	if len(g.undos) == 0 {
		return ErrNothingToUndo
	}
	g.pos.UnmakeMove(g.undos[len(g.undos)-1])
	g.undos = g.undos[:len(g.undos)-1]
	g.records = g.records[:len(g.records)-1]
	g.status, g.winner = g.pos.Classify()
	return nil
}

// LegalMoves lists the legal moves for the side to move.
func (g *Game) LegalMoves() []board.Move {
	return g.pos.LegalMoves()
}

// LegalMovesFrom lists the legal moves starting on one square, for
// hosts that highlight a picked-up piece's destinations.
func (g *Game) LegalMovesFrom(sq board.Square) []board.Move {
	all := g.pos.LegalMoves()
	from := all[:0]
	for _, m := range all {
		if m.From == sq {
			from = append(from, m)
		}
	}
	return from
}

// Status returns the current classification and, for checkmate, the
// winner.
func (g *Game) Status() (board.Status, board.Color) {
	return g.status, g.winner
}

// Result returns the PGN-style result string: "1-0", "0-1",
// "1/2-1/2", or "*" while the game runs.
func (g *Game) Result() string {
	switch {
	case g.status == board.Checkmate && g.winner == board.White:
		return "1-0"
	case g.status == board.Checkmate && g.winner == board.Black:
		return "0-1"
	case g.status.Draw():
		return "1/2-1/2"
	default:
		return "*"
	}
}

// FEN exports the current position.
func (g *Game) FEN() string {
	return g.pos.FEN()
}

// StartFEN returns the position the game began from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// Position exposes the live position for the hosts. Callers must not
// mutate it or hold it across an Apply.
func (g *Game) Position() *board.Position {
	return g.pos
}

// History returns the applied moves in order. The slice is shared;
// callers must not modify it.
func (g *Game) History() []MoveRecord {
	return g.records
}

// Plies returns the number of applied moves.
func (g *Game) Plies() int {
	return len(g.records)
}

// SideToMove returns whose turn it is.
func (g *Game) SideToMove() board.Color {
	return g.pos.SideToMove
}

// InCheck reports whether the side to move stands in check.
func (g *Game) InCheck() bool {
	return g.pos.InCheck()
}

// RepetitionCount returns how often the current position has occurred.
func (g *Game) RepetitionCount() int {
	return g.pos.RepetitionCount()
}

// SetDifficulty changes the engine strength for subsequent replies.
func (g *Game) SetDifficulty(d engine.Difficulty) {
	g.eng.SetDifficulty(d)
}

// Difficulty returns the engine strength.
func (g *Game) Difficulty() engine.Difficulty {
	return g.eng.Difficulty()
}

// Engine exposes the engine, so hosts can attach an OnInfo callback.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}
