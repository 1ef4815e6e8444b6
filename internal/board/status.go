package board

// Status describes whether a game is over and how.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawThreefold
	DrawInsufficient
)

// Terminal reports whether the status ends the game.
func (s Status) Terminal() bool {
	return s != Ongoing
}

// Draw reports whether the status is any of the draw outcomes.
func (s Status) Draw() bool {
	return s == Stalemate || s == DrawFiftyMove || s == DrawThreefold || s == DrawInsufficient
}

// String returns a short human-readable form.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "fifty-move draw"
	case DrawThreefold:
		return "threefold repetition"
	case DrawInsufficient:
		return "insufficient material"
	default:
		return "unknown"
	}
}

// Classify returns the game status and, for checkmate, the winner.
// No-legal-move outcomes are checked first, then the fifty-move rule,
// threefold repetition, and insufficient material, so a mate delivered
// on the hundredth halfmove is still a mate.
func (p *Position) Classify() (Status, Color) {
	if !p.HasLegalMove() {
		if p.InCheck() {
			return Checkmate, p.SideToMove.Other()
		}
		return Stalemate, NoColor
	}
	if p.HalfmoveClock >= 100 {
		return DrawFiftyMove, NoColor
	}
	if p.RepetitionCount() >= 3 {
		return DrawThreefold, NoColor
	}
	if p.IsInsufficientMaterial() {
		return DrawInsufficient, NoColor
	}
	return Ongoing, NoColor
}

// IsInsufficientMaterial reports whether neither side can possibly
// deliver mate. The test is deliberately conservative: any pawn, rook,
// or queen counts as mating material, as do two bishops, bishop plus
// knight, or three knights. Helpmate-only corners like two lone
// knights are treated as drawn.
func (p *Position) IsInsufficientMaterial() bool {
	var knights, bishops [2]int
	for sq := A8; sq <= H1; sq++ {
		pc := p.Board[sq]
		switch pc.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			knights[pc.Color()]++
		case Bishop:
			bishops[pc.Color()]++
		}
	}
	for c := White; c <= Black; c++ {
		if bishops[c] >= 2 || (bishops[c] >= 1 && knights[c] >= 1) || knights[c] >= 3 {
			return false
		}
	}
	return true
}
