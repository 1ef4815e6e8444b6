// Package board implements chess rules on a 64-square mailbox board.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// The board is stored row-major from the top-left of the printed board:
// A8=0, H8=7, A1=56, H1=63.
type Square int8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// NoSquare marks the absence of a square (no en passant target, off board).
const NoSquare Square = -1

// Direction offsets in the top-left row-major layout. North moves toward
// rank 8, which is toward index 0.
const (
	North     = -8
	South     = 8
	East      = 1
	West      = -1
	NorthEast = -7
	NorthWest = -9
	SouthEast = 9
	SouthWest = 7
)

// knightOffsets are the eight knight jumps.
var knightOffsets = [8]int{-17, -15, -10, -6, 6, 10, 15, 17}

// kingOffsets are the eight king steps.
var kingOffsets = [8]int{NorthWest, North, NorthEast, West, East, SouthWest, South, SouthEast}

// bishopDirs and rookDirs are the slider ray directions.
var (
	bishopDirs = [4]int{NorthWest, NorthEast, SouthWest, SouthEast}
	rookDirs   = [4]int{North, West, East, South}
)

// SquareOf builds a square from file (0=a) and rank (0=rank 1).
func SquareOf(file, rank int) Square {
	return Square((7-rank)*8 + file)
}

// File returns the file (0=a .. 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (0=rank 1 .. 7=rank 8).
func (sq Square) Rank() int {
	return 7 - int(sq)>>3
}

// Row returns the board-array row (0 = rank 8 .. 7 = rank 1).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Valid reports whether the square is on the board.
func (sq Square) Valid() bool {
	return sq >= A8 && sq <= H1
}

// step moves by one offset, returning NoSquare when the step wraps a
// board edge. A genuine one-step move changes the file by at most two
// (knight jumps); a wrap shows up as a larger file jump.
func (sq Square) step(offset int) Square {
	to := sq + Square(offset)
	if !to.Valid() {
		return NoSquare
	}
	fd := sq.File() - to.File()
	if fd < -2 || fd > 2 {
		return NoSquare
	}
	return to
}

// String returns the algebraic name, e.g. "e4".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string(rune('a'+sq.File())) + string(rune('1'+sq.Rank()))
}

// ParseSquare parses an algebraic square name like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return SquareOf(int(s[0]-'a'), int(s[1]-'1')), nil
}
