package game

import (
	"errors"
	"testing"

	"github.com/katsup07/chess/internal/board"
	"github.com/katsup07/chess/internal/engine"
)

func TestNewGame(t *testing.T) {
	g := New(engine.Medium)
	if got := g.FEN(); got != board.StartFEN {
		t.Errorf("new game FEN = %s, want start position", got)
	}
	if status, _ := g.Status(); status != board.Ongoing {
		t.Errorf("new game status = %v, want ongoing", status)
	}
	if g.SideToMove() != board.White {
		t.Error("White moves first")
	}
	if g.Plies() != 0 {
		t.Errorf("new game has %d plies", g.Plies())
	}
	if g.Result() != "*" {
		t.Errorf("running game result = %q, want *", g.Result())
	}
}

func TestNewFromFENRejectsGarbage(t *testing.T) {
	if _, err := NewFromFEN("not a fen", engine.Easy); err == nil {
		t.Error("bad FEN must be rejected")
	}
}

func TestApplyMoveBothNotations(t *testing.T) {
	g := New(engine.Easy)

	if _, err := g.ApplyMove("e2e4"); err != nil {
		t.Fatalf("coordinate move: %v", err)
	}
	if _, err := g.ApplyMove("Nc6"); err != nil {
		t.Fatalf("SAN move: %v", err)
	}

	hist := g.History()
	if len(hist) != 2 {
		t.Fatalf("history has %d entries, want 2", len(hist))
	}
	if hist[0].Coord != "e2e4" || hist[0].SAN != "e4" {
		t.Errorf("first record = %+v", hist[0])
	}
	if hist[1].Coord != "b8c6" || hist[1].SAN != "Nc6" {
		t.Errorf("second record = %+v", hist[1])
	}
}

func TestApplyMoveRejectsIllegal(t *testing.T) {
	g := New(engine.Easy)
	for _, mv := range []string{"e2e5", "d8h4", "Ke2", "xyz", ""} {
		if _, err := g.ApplyMove(mv); err == nil {
			t.Errorf("move %q must be rejected at the start position", mv)
		}
	}
	if g.Plies() != 0 {
		t.Error("rejected moves must not enter the history")
	}
}

func TestFoolsMate(t *testing.T) {
	g := New(engine.Easy)
	for _, mv := range []string{"f2f3", "e7e5", "g2g4"} {
		if _, err := g.ApplyMove(mv); err != nil {
			t.Fatalf("apply %s: %v", mv, err)
		}
	}
	status, err := g.ApplyMove("d8h4")
	if err != nil {
		t.Fatalf("apply Qh4: %v", err)
	}
	if status != board.Checkmate {
		t.Fatalf("status = %v, want checkmate", status)
	}
	if _, winner := g.Status(); winner != board.Black {
		t.Errorf("winner = %v, want Black", winner)
	}
	if g.Result() != "0-1" {
		t.Errorf("result = %q, want 0-1", g.Result())
	}
	if hist := g.History(); hist[len(hist)-1].SAN != "Qh4#" {
		t.Errorf("mating move SAN = %q, want Qh4#", hist[len(hist)-1].SAN)
	}

	if _, err := g.ApplyMove("a2a3"); !errors.Is(err, ErrGameOver) {
		t.Errorf("moving in a finished game: err = %v, want ErrGameOver", err)
	}
}

func TestLoadFinishedPosition(t *testing.T) {
	g, err := NewFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", engine.Medium)
	if err != nil {
		t.Fatal(err)
	}
	if status, _ := g.Status(); status != board.Stalemate {
		t.Errorf("status = %v, want stalemate", status)
	}
	if g.Result() != "1/2-1/2" {
		t.Errorf("result = %q, want 1/2-1/2", g.Result())
	}
}

func TestUndo(t *testing.T) {
	g := New(engine.Easy)
	if err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("undo on a fresh game: err = %v, want ErrNothingToUndo", err)
	}

	g.ApplyMove("e2e4")
	g.ApplyMove("e7e5")
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.Plies() != 1 || g.SideToMove() != board.Black {
		t.Errorf("after one undo: %d plies, %v to move", g.Plies(), g.SideToMove())
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.FEN() != board.StartFEN {
		t.Errorf("after full undo FEN = %s, want start position", g.FEN())
	}
}

// Undoing the mating move reopens the game.
func TestUndoReopensFinishedGame(t *testing.T) {
	g := New(engine.Easy)
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if _, err := g.ApplyMove(mv); err != nil {
			t.Fatalf("apply %s: %v", mv, err)
		}
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if status, _ := g.Status(); status != board.Ongoing {
		t.Errorf("status after undoing mate = %v, want ongoing", status)
	}
	if _, err := g.ApplyMove("h7h5"); err != nil {
		t.Errorf("reopened game must accept moves: %v", err)
	}
}

func TestLegalMovesFrom(t *testing.T) {
	g := New(engine.Easy)
	moves := g.LegalMovesFrom(board.E2)
	if len(moves) != 2 {
		t.Fatalf("e2 pawn has %d moves, want 2", len(moves))
	}
	for _, m := range moves {
		if m.From != board.E2 {
			t.Errorf("move %v does not start on e2", m)
		}
	}
	if empty := g.LegalMovesFrom(board.E4); len(empty) != 0 {
		t.Errorf("empty square yielded %d moves", len(empty))
	}
}

func TestEngineReply(t *testing.T) {
	g := New(engine.Easy)
	if _, err := g.ApplyMove("e2e4"); err != nil {
		t.Fatal(err)
	}
	rec, status, err := g.EngineReply()
	if err != nil {
		t.Fatalf("engine reply: %v", err)
	}
	if status != board.Ongoing {
		t.Errorf("status after reply = %v", status)
	}
	if g.Plies() != 2 {
		t.Errorf("plies = %d, want 2", g.Plies())
	}
	if g.SideToMove() != board.White {
		t.Error("after the engine replies it is White's turn again")
	}
	if rec.Coord == "" || rec.SAN == "" {
		t.Errorf("reply record is incomplete: %+v", rec)
	}
}

func TestRepetitionTracking(t *testing.T) {
	g := New(engine.Easy)
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1"}
	for _, mv := range shuffle {
		if _, err := g.ApplyMove(mv); err != nil {
			t.Fatalf("apply %s: %v", mv, err)
		}
	}
	status, err := g.ApplyMove("f6g8")
	if err != nil {
		t.Fatal(err)
	}
	if g.RepetitionCount() != 3 {
		t.Errorf("repetition count = %d, want 3", g.RepetitionCount())
	}
	if status != board.DrawThreefold {
		t.Errorf("status = %v, want threefold draw", status)
	}
}

func TestInCheck(t *testing.T) {
	g, err := NewFromFEN("4k3/8/8/8/8/8/8/4KQ2 w - - 0 1", engine.Easy)
	if err != nil {
		t.Fatal(err)
	}
	if g.InCheck() {
		t.Error("White is not in check")
	}
	if _, err := g.ApplyMove("Qf8+"); err != nil {
		t.Fatalf("apply Qf8+: %v", err)
	}
	if !g.InCheck() {
		t.Error("Black must be in check after Qf8+")
	}
}
