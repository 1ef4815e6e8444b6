package engine

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/katsup07/chess/internal/board"
)

// SearchInfo reports the state of the search after each completed
// iteration.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Best  board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = MaxDepth)
	MoveTime time.Duration // Wall-clock budget for this move (0 = no limit)
	Random   bool          // Skip search: random capture, else random move
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the lowercase difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name, case-sensitively lowercase.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

// DifficultySettings maps difficulty to search limits. Easy does not
// search at all: it plays a random capture when one exists, else any
// random legal move.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 1, Random: true},
	Medium: {Depth: 3, MoveTime: 500 * time.Millisecond},
	Hard:   {Depth: 5, MoveTime: 2 * time.Second},
}

// Engine is the chess AI. One Engine serves one game at a time: the
// search mutates the position it is handed and restores it before
// returning, so concurrent BestMove calls need separate positions.
type Engine struct {
	difficulty Difficulty
	rng        *rand.Rand
	stopFlag   atomic.Bool

	// OnInfo, when set, receives a report after every completed
	// search iteration.
	OnInfo func(SearchInfo)
}

// New creates an engine at Medium difficulty.
func New() *Engine {
	return &Engine{
		difficulty: Medium,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// BestMove finds the best move under the current difficulty's limits.
// ok is false only when the side to move has no legal move.
func (e *Engine) BestMove(pos *board.Position) (board.Move, bool) {
	return e.BestMoveWithLimits(pos, DifficultySettings[e.difficulty])
}

// BestMoveWithLimits finds the best move under explicit limits using
// iterative deepening. Each depth's answer replaces the previous one
// only when the depth ran to completion; a deadline abort mid-depth
// keeps the last completed depth's move. Depth 1 always completes.
func (e *Engine) BestMoveWithLimits(pos *board.Position, limits SearchLimits) (board.Move, bool) {
	e.stopFlag.Store(false)
	if limits.Random {
		return e.randomMove(pos)
	}

	root := pos.LegalMoves()
	if len(root) == 0 {
		return board.NoMove, false
	}
	orderMoves(root)

	start := time.Now()
	var deadline time.Time
	if limits.MoveTime > 0 {
		deadline = start.Add(limits.MoveTime)
	}
	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	s := &searcher{stop: &e.stopFlag}
	best := board.NoMove
	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 {
			// The first iteration runs without a deadline so a move
			// always exists, however small the budget.
			s.deadline = deadline
			if s.expired() {
				break
			}
		}
		move, score, completed := s.searchRoot(pos, root, depth)
		if !completed {
			break
		}
		best = move
		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: s.nodes,
				Time:  time.Since(start),
				Best:  move,
			})
		}
		if score >= MateScore || score <= -MateScore {
			break // forced mate either way, deeper search cannot change it
		}
	}
	if best == board.NoMove {
		// Stopped before depth 1 finished. Any legal move beats none.
		best = root[0]
	}
	return best, true
}

// Stop requests that an in-flight search wind down at its next node
// entry. The search still returns its best completed answer.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// randomMove implements the easy policy: uniformly random among
// capturing moves, or among all legal moves when nothing hangs.
func (e *Engine) randomMove(pos *board.Position) (board.Move, bool) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return board.NoMove, false
	}
	captures := moves[:0:0]
	for _, m := range moves {
		if m.IsCapture() {
			captures = append(captures, m)
		}
	}
	pool := moves
	if len(captures) > 0 {
		pool = captures
	}
	return pool[e.rng.Intn(len(pool))], true
}

// ScoreToString renders a score as pawns ("0.34", "-1.20") or as a
// mate announcement ("mate 2", "mate -1"). depth is the iteration the
// score came from; mate distances cannot be recovered without it.
func ScoreToString(score, depth int) string {
	if plies, ok := MateDistance(score, depth); ok {
		if plies < 0 {
			return "mate -" + strconv.Itoa((-plies+1)/2)
		}
		return "mate " + strconv.Itoa((plies+1)/2)
	}
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
