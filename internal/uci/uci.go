// Package uci speaks the Universal Chess Interface on a pair of
// streams, so the engine can play under any UCI GUI or match runner.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/katsup07/chess/internal/board"
	"github.com/katsup07/chess/internal/engine"
)

// UCI hosts one engine over the UCI protocol.
type UCI struct {
	eng *engine.Engine
	pos *board.Position
	out io.Writer

	searching  bool
	searchDone chan struct{}
}

// New creates a protocol handler writing its replies to out.
func New(eng *engine.Engine, out io.Writer) *UCI {
	return &UCI{
		eng: eng,
		pos: board.StartPosition(),
		out: out,
	}
}

// Run reads commands from in until "quit" or EOF. It blocks; the
// caller owns process exit.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			u.handleStop()
			return nil
		// Debug commands, not part of the protocol.
		case "d":
			fmt.Fprintln(u.out, u.pos.String())
		case "perft":
			u.handlePerft(args)
		}
	}
	u.handleStop()
	return scanner.Err()
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name Chess")
	fmt.Fprintln(u.out, "id author katsup07")
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, "option name Difficulty type combo default medium var easy var medium var hard")
	fmt.Fprintln(u.out, "uciok")
}

func (u *UCI) handleNewGame() {
	u.handleStop()
	u.pos = board.StartPosition()
}

// handlePosition sets up a position. Formats:
//   - position startpos [moves e2e4 e7e5 ...]
//   - position fen <fen> [moves e2e4 ...]
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := -1
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.StartPosition()
	case "fen":
		fenEnd := len(args)
		if movesAt >= 0 {
			fenEnd = movesAt
		}
		parsed, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Fprintf(u.out, "info string invalid fen: %v\n", err)
			return
		}
		pos = parsed
	default:
		return
	}

	// Moves are applied tracked so the repetition history the search
	// consults matches the game that led here.
	if movesAt >= 0 {
		for _, s := range args[movesAt+1:] {
			m, err := pos.ParseMove(s)
			if err != nil {
				fmt.Fprintf(u.out, "info string invalid move %s: %v\n", s, err)
				return
			}
			pos.MakeMove(m)
		}
	}
	u.pos = pos
}

// goOptions holds the parsed arguments of a "go" command.
type goOptions struct {
	Depth     int
	MoveTime  time.Duration
	Infinite  bool
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
	Perft     int
}

func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)
	if opts.Perft > 0 {
		u.runPerft(opts.Perft)
		return
	}
	if u.searching {
		select {
		case <-u.searchDone:
			u.searching = false
		default:
			return // one search at a time
		}
	}

	limits := u.limitsFor(opts)
	u.eng.OnInfo = func(info engine.SearchInfo) {
		u.sendInfo(info)
	}

	u.searching = true
	u.searchDone = make(chan struct{})
	pos := u.pos.Clone()

	go func() {
		defer close(u.searchDone)
		move, ok := u.eng.BestMoveWithLimits(pos, limits)
		if !ok {
			fmt.Fprintln(u.out, "bestmove 0000")
			return
		}
		fmt.Fprintf(u.out, "bestmove %s\n", move)
	}()
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	ms := func(s string) time.Duration {
		n, _ := strconv.Atoi(s)
		return time.Duration(n) * time.Millisecond
	}
	for i := 0; i < len(args); i++ {
		next := ""
		if i+1 < len(args) {
			next = args[i+1]
		}
		switch args[i] {
		case "depth":
			opts.Depth, _ = strconv.Atoi(next)
			i++
		case "movetime":
			opts.MoveTime = ms(next)
			i++
		case "wtime":
			opts.WTime = ms(next)
			i++
		case "btime":
			opts.BTime = ms(next)
			i++
		case "winc":
			opts.WInc = ms(next)
			i++
		case "binc":
			opts.BInc = ms(next)
			i++
		case "movestogo":
			opts.MovesToGo, _ = strconv.Atoi(next)
			i++
		case "infinite":
			opts.Infinite = true
		case "perft":
			opts.Perft, _ = strconv.Atoi(next)
			i++
		}
	}
	return opts
}

// limitsFor converts go options into search limits. With no explicit
// control the current difficulty's limits apply.
func (u *UCI) limitsFor(opts goOptions) engine.SearchLimits {
	if opts.Infinite {
		return engine.SearchLimits{Depth: engine.MaxDepth}
	}

	var limits engine.SearchLimits
	if opts.Depth > 0 {
		limits.Depth = opts.Depth
	}
	if opts.MoveTime > 0 {
		limits.MoveTime = opts.MoveTime
	} else if opts.WTime > 0 || opts.BTime > 0 {
		remaining, inc := opts.WTime, opts.WInc
		if u.pos.SideToMove == board.Black {
			remaining, inc = opts.BTime, opts.BInc
		}
		ply := 2 * (u.pos.FullmoveNumber - 1)
		if u.pos.SideToMove == board.Black {
			ply++
		}
		limits.MoveTime = engine.AllocateTime(remaining, inc, opts.MovesToGo, ply)
	}
	if limits.Depth == 0 && limits.MoveTime == 0 {
		return engine.DifficultySettings[u.eng.Difficulty()]
	}
	return limits
}

// sendInfo prints one search progress line in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	score := fmt.Sprintf("cp %d", info.Score)
	if plies, ok := engine.MateDistance(info.Score, info.Depth); ok {
		if plies < 0 {
			score = fmt.Sprintf("mate -%d", (-plies+1)/2)
		} else {
			score = fmt.Sprintf("mate %d", (plies+1)/2)
		}
	}
	nps := uint64(0)
	if info.Time > 0 {
		nps = uint64(float64(info.Nodes) / info.Time.Seconds())
	}
	fmt.Fprintf(u.out, "info depth %d score %s nodes %d time %d nps %d pv %s\n",
		info.Depth, score, info.Nodes, info.Time.Milliseconds(), nps, info.Best)
}

func (u *UCI) handleStop() {
	if u.searching {
		u.eng.Stop()
		<-u.searchDone
		u.searching = false
	}
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	target := (*string)(nil)
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target == nil {
				continue
			}
			if *target != "" {
				*target += " "
			}
			*target += arg
		}
	}

	switch strings.ToLower(name) {
	case "difficulty":
		d, err := engine.ParseDifficulty(strings.ToLower(value))
		if err != nil {
			fmt.Fprintf(u.out, "info string %v\n", err)
			return
		}
		u.eng.SetDifficulty(d)
	}
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			depth = n
		}
	}
	u.runPerft(depth)
}

// runPerft counts leaf nodes to the given depth and reports the rate.
func (u *UCI) runPerft(depth int) {
	start := time.Now()
	nodes := board.Perft(u.pos, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "info string perft %d nodes %d time %d\n", depth, nodes, elapsed.Milliseconds())
	fmt.Fprintf(u.out, "nodes %d\n", nodes)
}
