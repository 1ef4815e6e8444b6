package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle on the given wing.
func (cr CastlingRights) CanCastle(c Color, side CastleSide) bool {
	switch {
	case c == White && side == KingSide:
		return cr&WhiteKingSideCastle != 0
	case c == White && side == QueenSide:
		return cr&WhiteQueenSideCastle != 0
	case c == Black && side == KingSide:
		return cr&BlackKingSideCastle != 0
	case c == Black && side == QueenSide:
		return cr&BlackQueenSideCastle != 0
	}
	return false
}

// Position holds the complete game state: the board itself plus every
// piece of bookkeeping a move needs to be made and unmade exactly.
type Position struct {
	// Board maps square index to piece, row-major from a8.
	Board [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights

	// EnPassant is the capture target square behind the pawn that just
	// double-pushed, or NoSquare.
	EnPassant Square

	// HalfmoveClock counts plies since the last capture or pawn move.
	HalfmoveClock int

	// FullmoveNumber starts at 1 and increments after Black moves.
	FullmoveNumber int

	// Hash is the Zobrist hash, kept current incrementally.
	Hash uint64

	// KingSquare caches each king's square so check tests never scan.
	KingSquare [2]Square

	// history records the hash after every tracked move, the starting
	// position included. repetitions counts occurrences per hash.
	history     []uint64
	repetitions map[uint64]int
}

// NewPosition returns an empty position with no pieces and history
// tracking initialized.
func NewPosition() *Position {
	return &Position{
		EnPassant:      NoSquare,
		FullmoveNumber: 1,
		KingSquare:     [2]Square{NoSquare, NoSquare},
		repetitions:    make(map[uint64]int),
	}
}

// StartPosition returns the standard chess starting position.
func StartPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err) // the start FEN is a constant and always parses
	}
	return p
}

// PieceAt returns the piece on the given square.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board[sq]
}

// InCheck reports whether the side to move's king is attacked.
func (p *Position) InCheck() bool {
	return p.IsAttacked(p.KingSquare[p.SideToMove], p.SideToMove.Other())
}

// startHistory seeds repetition tracking with the current position.
// The starting position counts as its first occurrence, so a position
// reached twice more after it is already a threefold.
func (p *Position) startHistory() {
	p.history = p.history[:0]
	if p.repetitions == nil {
		p.repetitions = make(map[uint64]int)
	} else {
		for k := range p.repetitions {
			delete(p.repetitions, k)
		}
	}
	p.history = append(p.history, p.Hash)
	p.repetitions[p.Hash] = 1
}

// RepetitionCount returns how many times the current position has
// occurred in the tracked history.
func (p *Position) RepetitionCount() int {
	return p.repetitions[p.Hash]
}

// Clone returns a deep copy sharing nothing with the original.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]uint64(nil), p.history...)
	c.repetitions = make(map[uint64]int, len(p.repetitions))
	for k, v := range p.repetitions {
		c.repetitions[k] = v
	}
	return &c
}

// String renders the board with ranks 8 down to 1, for logs and tests.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", 8-row)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.Board[row*8+file].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprintf(&sb, "%s to move, castling %s, ep %s\n",
		p.SideToMove, p.CastlingRights, p.EnPassant)
	return sb.String()
}
