package engine

import (
	"sync/atomic"
	"time"

	"github.com/katsup07/chess/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxDepth  = 64
)

// searcher carries the state of one search run. It is created fresh
// per BestMove call and is not safe for concurrent use.
type searcher struct {
	nodes    uint64
	deadline time.Time
	stop     *atomic.Bool // external stop request, may be nil
	aborted  bool
}

// expired is the cooperative abort check, consulted at every node
// entry. Once it trips, the whole in-flight depth unwinds and its
// partial result is discarded.
func (s *searcher) expired() bool {
	if s.aborted {
		return true
	}
	if s.stop != nil && s.stop.Load() {
		s.aborted = true
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.aborted = true
	}
	return s.aborted
}

// searchRoot scores every root move with negamax at depth-1 and
// returns the best one. completed is false when the deadline cut the
// iteration short, in which case the caller keeps the previous depth's
// answer.
func (s *searcher) searchRoot(pos *board.Position, moves []board.Move, depth int) (best board.Move, bestScore int, completed bool) {
	alpha := -Infinity
	best = board.NoMove
	for _, m := range moves {
		u := pos.MakeMove(m)
		score := -s.negamax(pos, depth-1, -Infinity, -alpha)
		pos.UnmakeMove(u)
		if s.aborted {
			return board.NoMove, 0, false
		}
		if score > alpha {
			alpha = score
			best = m
		}
	}
	return best, alpha, true
}

// negamax returns the score of the position from the side to move's
// point of view. Terminal states are classified before anything else,
// so a mate on the board outranks the depth horizon.
func (s *searcher) negamax(pos *board.Position, depth, alpha, beta int) int {
	if s.expired() {
		return 0
	}
	s.nodes++

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.InCheck() {
			// Mated here. Offsetting by remaining depth makes nearer
			// mates score larger, steering the search toward them.
			return -(MateScore + depth)
		}
		return 0 // stalemate
	}
	if pos.HalfmoveClock >= 100 || pos.RepetitionCount() >= 3 || pos.IsInsufficientMaterial() {
		return 0
	}
	if depth <= 0 {
		return Evaluate(pos)
	}

	orderMoves(moves)
	for _, m := range moves {
		u := pos.MakeMove(m)
		score := -s.negamax(pos, depth-1, -beta, -alpha)
		pos.UnmakeMove(u)
		if s.aborted {
			return 0
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return alpha
}

// MateDistance extracts the distance to mate from a score, in plies.
// depth is the search depth the score was found at. ok is false for
// ordinary scores; plies is negative when the side to move gets mated.
func MateDistance(score, depth int) (plies int, ok bool) {
	if score >= MateScore {
		return depth + MateScore - score, true
	}
	if score <= -MateScore {
		return -(depth + MateScore + score), true
	}
	return 0, false
}
