// Package engine implements the chess AI: static evaluation and
// time-bounded iterative-deepening search.
package engine

import "github.com/katsup07/chess/internal/board"

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

// Piece values for quick lookup. The king carries no material value
// because he never comes off the board.
var pieceValues = [6]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0}

// Mobility shaping: the legal-move-count difference is clamped before
// scaling so a wide-open position cannot drown out material.
const (
	mobilityClamp = 20
	mobilityScale = 2
)

// Evaluate returns the static score in centipawns from the side to
// move's point of view: material plus piece-square bonuses plus the
// clamped mobility difference. Pure and deterministic.
func Evaluate(pos *board.Position) int {
	us := pos.SideToMove
	score := 0
	for sq := board.A8; sq <= board.H1; sq++ {
		pc := pos.Board[sq]
		if pc == board.Empty {
			continue
		}
		v := pieceValues[pc.Type()] + pstValue(pc, sq)
		if pc.Color() == us {
			score += v
		} else {
			score -= v
		}
	}
	return score + mobilityScore(pos)
}

// mobilityScore counts both sides' legal moves and scores the
// difference for the side to move. The opponent's count is measured by
// flipping the side to move in place; the en passant target is masked
// during the flip because it belongs only to the true mover.
func mobilityScore(pos *board.Position) int {
	own := len(pos.LegalMoves())

	ep := pos.EnPassant
	pos.EnPassant = board.NoSquare
	pos.SideToMove = pos.SideToMove.Other()
	their := len(pos.LegalMoves())
	pos.SideToMove = pos.SideToMove.Other()
	pos.EnPassant = ep

	diff := own - their
	if diff > mobilityClamp {
		diff = mobilityClamp
	} else if diff < -mobilityClamp {
		diff = -mobilityClamp
	}
	return diff * mobilityScale
}
