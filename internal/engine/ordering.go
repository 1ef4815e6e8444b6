package engine

import (
	"sort"

	"github.com/katsup07/chess/internal/board"
)

// Move ordering weights. Promotions outrank every capture; captures
// are ranked by MVV-LVA; quiet moves sit at zero.
const promotionOrderScore = 100000

// orderMoves sorts promotions first, then captures, then quiet moves.
// The sort is stable so equally scored moves keep the generator's
// order, which keeps search results reproducible.
func orderMoves(moves []board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moveOrderScore(moves[i]) > moveOrderScore(moves[j])
	})
}

// moveOrderScore ranks captures by victim value times ten minus
// attacker value: the classic MVV-LVA scheme favoring big victims
// taken by small attackers. Searching those first tightens the
// alpha-beta window early and prunes more of the rest.
func moveOrderScore(m board.Move) int {
	if m.IsPromotion() {
		return promotionOrderScore
	}
	if m.IsCapture() {
		return pieceValues[m.Captured.Type()]*10 - pieceValues[m.Piece.Type()]
	}
	return 0
}
