package board

// Undo carries everything MakeMove changed that cannot be recomputed,
// so UnmakeMove can restore the prior position exactly.
type Undo struct {
	Move           Move
	CastlingRights CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	Hash           uint64
	tracked        bool
}

// MakeMove applies a move, updating the board, rights, clocks, hash,
// king cache, and repetition history, and returns the undo record.
// The move must come from this position's generator.
func (p *Position) MakeMove(m Move) Undo {
	return p.makeMove(m, true)
}

// makeMove is MakeMove with repetition tracking optional. Speculative
// probes (legality filtering, search) skip the history bookkeeping.
func (p *Position) makeMove(m Move, track bool) Undo {
	undo := Undo{
		Move:           m,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfmoveClock:  p.HalfmoveClock,
		Hash:           p.Hash,
		tracked:        track,
	}
	us := p.SideToMove
	them := us.Other()

	// Hash out state that always changes.
	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	// Remove the captured piece. For en passant the victim is not on
	// the destination square.
	if m.Captured != Empty {
		capSq := m.CaptureSquare()
		p.Board[capSq] = Empty
		p.Hash ^= hashPiece(m.Captured, capSq)
	}

	// Move the piece, promoting on arrival if the move says so.
	arriving := m.Piece
	if m.IsPromotion() {
		arriving = NewPiece(us, m.Promotion)
	}
	p.Board[m.From] = Empty
	p.Board[m.To] = arriving
	p.Hash ^= hashPiece(m.Piece, m.From)
	p.Hash ^= hashPiece(arriving, m.To)

	// Castling also moves the rook.
	if m.Castle != NoCastle {
		rookFrom, rookTo := rookCastleSquares(us, m.Castle)
		rook := p.Board[rookFrom]
		p.Board[rookFrom] = Empty
		p.Board[rookTo] = rook
		p.Hash ^= hashPiece(rook, rookFrom)
		p.Hash ^= hashPiece(rook, rookTo)
	}

	// Update castling rights. A king move clears both rights; a rook
	// leaving its corner, or anything landing on a corner, clears that
	// corner's right.
	if m.Piece.Type() == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
		p.KingSquare[us] = m.To
	}
	if m.From == A1 || m.To == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if m.From == H1 || m.To == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if m.From == A8 || m.To == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if m.From == H8 || m.To == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
	p.Hash ^= zobristCastling[p.CastlingRights]

	// A double push opens an en passant target on the skipped square.
	if m.DoublePush {
		p.EnPassant = (m.From + m.To) / 2
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	if m.Piece.Type() == Pawn || m.Captured != Empty {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if us == Black {
		p.FullmoveNumber++
	}

	p.SideToMove = them
	p.Hash ^= zobristSideToMove

	if track {
		p.history = append(p.history, p.Hash)
		p.repetitions[p.Hash]++
	}
	return undo
}

// UnmakeMove restores the position to the state before the MakeMove
// that produced the undo record.
func (p *Position) UnmakeMove(u Undo) {
	m := u.Move

	if u.tracked {
		cur := p.Hash
		p.history = p.history[:len(p.history)-1]
		if n := p.repetitions[cur]; n <= 1 {
			delete(p.repetitions, cur)
		} else {
			p.repetitions[cur] = n - 1
		}
	}

	them := p.SideToMove
	us := them.Other()
	p.SideToMove = us

	// Put the mover back, demoting a promoted pawn.
	p.Board[m.From] = m.Piece
	p.Board[m.To] = Empty
	if m.Captured != Empty {
		p.Board[m.CaptureSquare()] = m.Captured
	}
	if m.Castle != NoCastle {
		rookFrom, rookTo := rookCastleSquares(us, m.Castle)
		p.Board[rookFrom] = p.Board[rookTo]
		p.Board[rookTo] = Empty
	}
	if m.Piece.Type() == King {
		p.KingSquare[us] = m.From
	}

	p.CastlingRights = u.CastlingRights
	p.EnPassant = u.EnPassant
	p.HalfmoveClock = u.HalfmoveClock
	p.Hash = u.Hash
	if us == Black {
		p.FullmoveNumber--
	}
}

// rookCastleSquares returns the rook's from and to squares for a castle.
func rookCastleSquares(c Color, side CastleSide) (Square, Square) {
	switch {
	case c == White && side == KingSide:
		return H1, F1
	case c == White && side == QueenSide:
		return A1, D1
	case c == Black && side == KingSide:
		return H8, F8
	default:
		return A8, D8
	}
}
