package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation in the context
// of the position it is played from.
func (m Move) ToSAN(pos *Position) string {
	if m.From == NoSquare {
		return "-"
	}

	var sb strings.Builder

	switch {
	case m.Castle == KingSide:
		sb.WriteString("O-O")
	case m.Castle == QueenSide:
		sb.WriteString("O-O-O")
	default:
		pt := m.Piece.Type()
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(pos, m))
		}
		if m.IsCapture() {
			if pt == Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(m.From.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion])
		}
	}

	// Check and mate suffix, decided by playing the move out.
	u := pos.makeMove(m, false)
	if pos.InCheck() {
		if pos.HasLegalMove() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	pos.UnmakeMove(u)

	return sb.String()
}

// disambiguation returns the minimal origin hint when another piece of
// the same type can reach the same destination: file if that settles
// it, else rank, else both.
func disambiguation(pos *Position, m Move) string {
	var candidates []Square
	for _, other := range pos.LegalMoves() {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if other.Piece.Type() == m.Piece.Type() {
			candidates = append(candidates, other.From)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string(rune('a' + m.From.File()))
	case !sameRank:
		return string(rune('1' + m.From.Rank()))
	default:
		return m.From.String()
	}
}

// ParseSAN resolves a SAN string like "Nbd7", "exd6", or "O-O" against
// the position's legal moves. Check suffixes and "e.p." are tolerated.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, " e.p.")
	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")

	// Castling
	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		side := KingSide
		if len(s) == 5 {
			side = QueenSide
		}
		for _, m := range pos.LegalMoves() {
			if m.Castle == side {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("illegal move %q", orig)
	}

	// Promotion
	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 && idx+1 < len(s) {
		switch s[idx+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion in %q", orig)
		}
		s = s[:idx]
	}

	isCapture := strings.ContainsRune(s, 'x')
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, fmt.Errorf("invalid piece in %q", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid move %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid destination in %q", orig)
	}
	s = s[:len(s)-2]

	// Whatever remains is origin disambiguation.
	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		default:
			return NoMove, fmt.Errorf("invalid move %q", orig)
		}
	}

	for _, m := range pos.LegalMoves() {
		if m.To != dest || m.Piece.Type() != pt {
			continue
		}
		if disambigFile >= 0 && m.From.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Rank() != disambigRank {
			continue
		}
		if isCapture != m.IsCapture() {
			continue
		}
		if promo != NoPieceType {
			if !m.IsPromotion() || m.Promotion != promo {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("illegal move %q", orig)
}

// MovesToSAN converts a move sequence starting at pos to SAN, playing
// the line out on a copy.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Clone()
	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}
	return result
}
