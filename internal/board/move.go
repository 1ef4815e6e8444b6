package board

import "fmt"

// CastleSide identifies which wing a castling move uses.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

// Move describes a single move as a plain value. Piece and Captured are
// filled in by the generator so make/unmake never has to probe the board
// to learn what moved.
type Move struct {
	From       Square
	To         Square
	Piece      Piece
	Captured   Piece     // Empty when the move is quiet
	Promotion  PieceType // Knight..Queen on promotion moves
	Castle     CastleSide
	EnPassant  bool // capture onto the en passant target square
	DoublePush bool
}

// NoMove is the zero move, used where no move exists.
var NoMove = Move{From: NoSquare, To: NoSquare}

// IsCapture reports whether the move takes a piece, en passant included.
func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

// IsPromotion reports whether the move promotes a pawn. Only Knight
// through Queen count, so a zero-valued Promotion field means no
// promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion >= Knight && m.Promotion <= Queen
}

// CaptureSquare returns the square the captured piece stands on. For en
// passant that is not the destination: the victim pawn sits one step
// behind the target square from the mover's point of view.
func (m Move) CaptureSquare() Square {
	if !m.EnPassant {
		return m.To
	}
	if m.Piece.Color() == White {
		return m.To + South
	}
	return m.To + North
}

// String prints pure coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.From == NoSquare {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		// Black piece letters are lowercase, which is what coordinate
		// notation wants for the promotion suffix.
		s += string(NewPiece(Black, m.Promotion).Letter())
	}
	return s
}

// ParseMove resolves coordinate notation like "e2e4" or "a7a8q" against
// the position's legal moves. It errors when the text names no legal move.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NoMove, fmt.Errorf("invalid promotion in %q", s)
		}
	}
	for _, m := range p.LegalMoves() {
		if m.From != from || m.To != to {
			continue
		}
		if m.IsPromotion() {
			if m.Promotion == promo {
				return m, nil
			}
			continue
		}
		if promo == NoPieceType {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("illegal move %q", s)
}
