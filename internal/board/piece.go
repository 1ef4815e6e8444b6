package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Piece packs a color and a piece type into one byte. Empty is the zero
// value, so a fresh board array is all empty squares.
type Piece uint8

// Empty marks a square with no piece on it.
const Empty Piece = 0

// Piece constants for every colored piece.
const (
	WhitePawn Piece = iota + 1
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

// NewPiece builds a piece from a color and type.
func NewPiece(c Color, pt PieceType) Piece {
	return Piece(uint8(c)*6 + uint8(pt) + 1)
}

// Color returns the piece color, or NoColor for Empty.
func (p Piece) Color() Color {
	if p == Empty {
		return NoColor
	}
	return Color((p - 1) / 6)
}

// Type returns the piece type, or NoPieceType for Empty.
func (p Piece) Type() PieceType {
	if p == Empty {
		return NoPieceType
	}
	return PieceType((p - 1) % 6)
}

// IsWhite reports whether the piece is white.
func (p Piece) IsWhite() bool {
	return p >= WhitePawn && p <= WhiteKing
}

// IsBlack reports whether the piece is black.
func (p Piece) IsBlack() bool {
	return p >= BlackPawn && p <= BlackKing
}

// pieceLetters maps pieces to FEN letters, indexed by Piece value.
var pieceLetters = [13]byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k'}

// Letter returns the FEN letter for the piece (uppercase for White).
func (p Piece) Letter() byte {
	return pieceLetters[p]
}

// PieceFromLetter parses a FEN piece letter. Returns Empty for anything
// that is not a valid letter.
func PieceFromLetter(b byte) Piece {
	for p := WhitePawn; p <= BlackKing; p++ {
		if pieceLetters[p] == b {
			return p
		}
	}
	return Empty
}

// String returns the FEN letter as a string, or "." for Empty.
func (p Piece) String() string {
	if p == Empty {
		return "."
	}
	return string(pieceLetters[p])
}
