package board

import "testing"

// Perft node counts are the standard way to verify move generation:
// one wrong edge case in castling, en passant, or promotions shifts
// the totals immediately.

func TestPerftStartingPosition(t *testing.T) {
	pos := StartPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// Depth 5 takes longer, enable for thorough testing:
		// {5, 4865609},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete uses the classic position dense with castling,
// pins, promotions, and en passant.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		// {4, 4085603}, // Takes ~1s, enable for thorough testing
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 exercises en passant discoveries and pinned
// pawns.
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
		// {5, 674624}, // Enable for thorough testing
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin covers the horizontal pin edge case: the e4
// pawn may not capture en passant because removing both pawns from
// the fourth rank exposes the black king to the h4 rook.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	for _, m := range pos.LegalMoves() {
		if m.EnPassant {
			t.Errorf("En passant move %v should be illegal (horizontal pin)", m)
		}
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := StartPosition()

	counts := Divide(pos, 3)
	if len(counts) != 20 {
		t.Errorf("Expected 20 root moves, got %d", len(counts))
	}

	var sum uint64
	for _, n := range counts {
		sum += n
	}
	if want := Perft(pos, 3); sum != want {
		t.Errorf("Divide sum = %d, want %d", sum, want)
	}
}

// TestPerftLeavesPositionIntact makes sure the unmake path restores
// everything perft touched.
func TestPerftLeavesPositionIntact(t *testing.T) {
	pos := StartPosition()
	before := pos.FEN()
	hash := pos.Hash

	Perft(pos, 3)

	if got := pos.FEN(); got != before {
		t.Errorf("Position changed by perft: %s -> %s", before, got)
	}
	if pos.Hash != hash {
		t.Errorf("Hash changed by perft: %016x -> %016x", hash, pos.Hash)
	}
}
