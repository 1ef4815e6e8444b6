package board

// LegalMoves generates all legal moves for the side to move, in stable
// board-scan order. Legality is decided by trial: each pseudo-legal
// move is made, the mover's king checked, and the move unmade.
func (p *Position) LegalMoves() []Move {
	pseudo := p.PseudoLegalMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if p.IsLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// PseudoLegalMoves generates all pseudo-legal moves (may leave the
// mover's king in check).
func (p *Position) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	us := p.SideToMove
	for sq := A8; sq <= H1; sq++ {
		pc := p.Board[sq]
		if pc == Empty || pc.Color() != us {
			continue
		}
		switch pc.Type() {
		case Pawn:
			moves = p.genPawnMoves(moves, sq, pc)
		case Knight:
			moves = p.genOffsetMoves(moves, sq, pc, knightOffsets[:])
		case Bishop:
			moves = p.genSliderMoves(moves, sq, pc, bishopDirs[:])
		case Rook:
			moves = p.genSliderMoves(moves, sq, pc, rookDirs[:])
		case Queen:
			moves = p.genSliderMoves(moves, sq, pc, bishopDirs[:])
			moves = p.genSliderMoves(moves, sq, pc, rookDirs[:])
		case King:
			moves = p.genOffsetMoves(moves, sq, pc, kingOffsets[:])
			moves = p.genCastlingMoves(moves, us)
		}
	}
	return moves
}

// IsLegal reports whether a pseudo-legal move leaves the mover's king
// out of check.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	u := p.makeMove(m, false)
	ok := !p.IsAttacked(p.KingSquare[us], us.Other())
	p.UnmakeMove(u)
	return ok
}

// HasLegalMove reports whether any legal move exists, bailing at the
// first one found.
func (p *Position) HasLegalMove() bool {
	for _, m := range p.PseudoLegalMoves() {
		if p.IsLegal(m) {
			return true
		}
	}
	return false
}

// genPawnMoves generates pushes, double pushes, captures, en passant,
// and promotion expansion for one pawn.
func (p *Position) genPawnMoves(moves []Move, from Square, pc Piece) []Move {
	us := pc.Color()
	push := North
	homeRow, promoRow := 6, 0
	captureDirs := [2]int{NorthWest, NorthEast}
	if us == Black {
		push = South
		homeRow, promoRow = 1, 7
		captureDirs = [2]int{SouthWest, SouthEast}
	}

	// Pushes. A pawn never wraps on a straight push, so step is only
	// guarding the board edge here.
	if to := from.step(push); to != NoSquare && p.Board[to] == Empty {
		if to.Row() == promoRow {
			moves = addPromotions(moves, from, to, pc, Empty)
		} else {
			moves = append(moves, Move{From: from, To: to, Piece: pc})
			if from.Row() == homeRow {
				if to2 := to.step(push); to2 != NoSquare && p.Board[to2] == Empty {
					moves = append(moves, Move{From: from, To: to2, Piece: pc, DoublePush: true})
				}
			}
		}
	}

	// Captures, en passant included.
	for _, dir := range captureDirs {
		to := from.step(dir)
		if to == NoSquare {
			continue
		}
		if target := p.Board[to]; target != Empty && target.Color() == us.Other() {
			if to.Row() == promoRow {
				moves = addPromotions(moves, from, to, pc, target)
			} else {
				moves = append(moves, Move{From: from, To: to, Piece: pc, Captured: target})
			}
		} else if to == p.EnPassant {
			moves = append(moves, Move{
				From:      from,
				To:        to,
				Piece:     pc,
				Captured:  NewPiece(us.Other(), Pawn),
				EnPassant: true,
			})
		}
	}
	return moves
}

// addPromotions expands one pawn arrival on the last rank into the four
// promotion moves, queen first.
func addPromotions(moves []Move, from, to Square, pc, captured Piece) []Move {
	for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		moves = append(moves, Move{From: from, To: to, Piece: pc, Captured: captured, Promotion: promo})
	}
	return moves
}

// genOffsetMoves generates knight and king moves from an offset table.
func (p *Position) genOffsetMoves(moves []Move, from Square, pc Piece, offsets []int) []Move {
	us := pc.Color()
	for _, o := range offsets {
		to := from.step(o)
		if to == NoSquare {
			continue
		}
		target := p.Board[to]
		if target != Empty && target.Color() == us {
			continue
		}
		moves = append(moves, Move{From: from, To: to, Piece: pc, Captured: target})
	}
	return moves
}

// genSliderMoves walks each ray until blocked, capturing the blocker
// when it is an enemy piece.
func (p *Position) genSliderMoves(moves []Move, from Square, pc Piece, dirs []int) []Move {
	us := pc.Color()
	for _, dir := range dirs {
		for to := from.step(dir); to != NoSquare; to = to.step(dir) {
			target := p.Board[to]
			if target == Empty {
				moves = append(moves, Move{From: from, To: to, Piece: pc})
				continue
			}
			if target.Color() != us {
				moves = append(moves, Move{From: from, To: to, Piece: pc, Captured: target})
			}
			break
		}
	}
	return moves
}

// genCastlingMoves generates castling king moves. The king may not
// castle out of, through, or into check, every square between king and
// rook must be empty, and the rook must still stand on its home corner.
// The rook check matters for hand-built FENs whose rights say more than
// the board holds.
func (p *Position) genCastlingMoves(moves []Move, us Color) []Move {
	kingFrom, them := E1, Black
	if us == Black {
		kingFrom, them = E8, White
	}
	if p.Board[kingFrom] != NewPiece(us, King) || p.IsAttacked(kingFrom, them) {
		return moves
	}
	rook := NewPiece(us, Rook)

	if p.CastlingRights.CanCastle(us, KingSide) {
		f, g := kingFrom+East, kingFrom+2*East
		if p.Board[f] == Empty && p.Board[g] == Empty && p.Board[kingFrom+3*East] == rook &&
			!p.IsAttacked(f, them) && !p.IsAttacked(g, them) {
			moves = append(moves, Move{From: kingFrom, To: g, Piece: NewPiece(us, King), Castle: KingSide})
		}
	}
	if p.CastlingRights.CanCastle(us, QueenSide) {
		d, c, b := kingFrom+West, kingFrom+2*West, kingFrom+3*West
		if p.Board[d] == Empty && p.Board[c] == Empty && p.Board[b] == Empty && p.Board[kingFrom+4*West] == rook &&
			!p.IsAttacked(d, them) && !p.IsAttacked(c, them) {
			moves = append(moves, Move{From: kingFrom, To: c, Piece: NewPiece(us, King), Castle: QueenSide})
		}
	}
	return moves
}
