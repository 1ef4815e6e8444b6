package board

// IsAttacked reports whether sq is attacked by any piece of color by.
// It looks outward from sq: pawn and knight and king attacks by direct
// offset, sliders by walking each ray to the first occupied square.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if !sq.Valid() {
		return false
	}

	// Pawns. A white pawn attacks toward rank 8, so the attacker sits
	// one step south-east or south-west of the target square.
	if by == White {
		if p.pieceOn(sq.step(SouthEast), WhitePawn) || p.pieceOn(sq.step(SouthWest), WhitePawn) {
			return true
		}
	} else {
		if p.pieceOn(sq.step(NorthEast), BlackPawn) || p.pieceOn(sq.step(NorthWest), BlackPawn) {
			return true
		}
	}

	// Knights
	knight := NewPiece(by, Knight)
	for _, o := range knightOffsets {
		if p.pieceOn(sq.step(o), knight) {
			return true
		}
	}

	// King
	king := NewPiece(by, King)
	for _, o := range kingOffsets {
		if p.pieceOn(sq.step(o), king) {
			return true
		}
	}

	// Sliders: first piece on each ray decides.
	bishop := NewPiece(by, Bishop)
	queen := NewPiece(by, Queen)
	for _, dir := range bishopDirs {
		if pc := p.firstOnRay(sq, dir); pc == bishop || pc == queen {
			return true
		}
	}
	rook := NewPiece(by, Rook)
	for _, dir := range rookDirs {
		if pc := p.firstOnRay(sq, dir); pc == rook || pc == queen {
			return true
		}
	}
	return false
}

// pieceOn reports whether sq holds exactly the given piece. A NoSquare
// argument (an off-board step) is never a hit.
func (p *Position) pieceOn(sq Square, pc Piece) bool {
	return sq != NoSquare && p.Board[sq] == pc
}

// firstOnRay walks from sq in the given direction and returns the first
// piece encountered, or Empty when the ray exits the board.
func (p *Position) firstOnRay(sq Square, dir int) Piece {
	for to := sq.step(dir); to != NoSquare; to = to.step(dir) {
		if pc := p.Board[to]; pc != Empty {
			return pc
		}
	}
	return Empty
}
