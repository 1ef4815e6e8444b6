package board

// Perft counts leaf nodes of the legal move tree to the given depth.
// It exists to validate the generator: any rule bug shows up as a node
// count drifting from the published tables.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		u := p.makeMove(m, false)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(u)
	}
	return nodes
}

// Divide returns the perft count under each root move, keyed by
// coordinate notation. Handy for bisecting a generator bug one root
// move at a time.
func Divide(p *Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range p.LegalMoves() {
		u := p.makeMove(m, false)
		out[m.String()] = Perft(p, depth-1)
		p.UnmakeMove(u)
	}
	return out
}
