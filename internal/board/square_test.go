package board

import "testing"

func TestSquareLayout(t *testing.T) {
	// Index 0 is a8; indices walk files first, then down the ranks.
	if A8 != 0 || H8 != 7 || A1 != 56 || H1 != 63 {
		t.Fatal("Corner squares are misnumbered")
	}
	if sq := SquareOf(4, 0); sq != E1 {
		t.Errorf("SquareOf(4,0) = %v, want e1", sq)
	}
	if E4.File() != 4 || E4.Rank() != 3 {
		t.Errorf("e4 decomposed to file %d rank %d", E4.File(), E4.Rank())
	}
}

func TestSquareStringRoundTrip(t *testing.T) {
	for sq := A8; sq <= H1; sq++ {
		back, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("%v: %v", sq, err)
		}
		if back != sq {
			t.Errorf("Round trip %v -> %q -> %v", sq, sq.String(), back)
		}
	}
	if _, err := ParseSquare("i1"); err == nil {
		t.Error("i1 should not parse")
	}
	if _, err := ParseSquare("a9"); err == nil {
		t.Error("a9 should not parse")
	}
}

// Offsets that would wrap around a board edge must come back invalid,
// not land on the far side of the next rank.
func TestStepEdgeWrapping(t *testing.T) {
	if got := H4.step(East); got != NoSquare {
		t.Errorf("h4 east = %v, want off-board", got)
	}
	if got := A4.step(West); got != NoSquare {
		t.Errorf("a4 west = %v, want off-board", got)
	}
	if got := A8.step(North); got != NoSquare {
		t.Errorf("a8 north = %v, want off-board", got)
	}
	if got := H1.step(SouthEast); got != NoSquare {
		t.Errorf("h1 southeast = %v, want off-board", got)
	}
	if got := E4.step(NorthEast); got != F5 {
		t.Errorf("e4 northeast = %v, want f5", got)
	}
}

func TestKnightOffsetsFromCorner(t *testing.T) {
	var targets []Square
	for _, off := range knightOffsets {
		if to := G1.step(off); to != NoSquare {
			targets = append(targets, to)
		}
	}
	want := map[Square]bool{F3: true, H3: true, E2: true}
	if len(targets) != len(want) {
		t.Fatalf("g1 knight reaches %v, want f3/h3/e2", targets)
	}
	for _, sq := range targets {
		if !want[sq] {
			t.Errorf("g1 knight should not reach %v", sq)
		}
	}
}
