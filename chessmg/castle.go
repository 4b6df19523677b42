package chessmg

// castlingMoves appends castling candidates for side. A king on its home row
// castles toward a rook on the corner of that row: the king moves two files
// and the rook lands on the file the king crossed.
func (b *Board) castlingMoves(dst []MoveOp, side Color) []MoveOp {
	rights := b.castling[side]
	if !rights.Kingside && !rights.Queenside {
		return dst
	}
	w := b.shape.Width
	row := b.homeRow(side)
	for _, king := range b.index[King] {
		if b.squares[king].Color != side || king/w != row {
			continue
		}
		if rights.Kingside {
			dst = b.appendCastle(dst, side, king, row*w+w-1, 1)
		}
		if rights.Queenside {
			dst = b.appendCastle(dst, side, king, row*w, -1)
		}
	}
	return dst
}

func (b *Board) appendCastle(dst []MoveOp, side Color, king, rook, dir int) []MoveOp {
	if r := b.squares[rook]; r.Piece != Rook || r.Color != side {
		return dst
	}
	// The king needs two squares of travel that stop short of the rook.
	if (rook-king)*dir < 3 {
		return dst
	}
	for sq := king + dir; sq != rook; sq += dir {
		if b.squares[sq].Piece != Empty {
			return dst
		}
	}
	to := king + 2*dir
	opponent := side.Other()
	for sq := king; sq != to+dir; sq += dir {
		if b.IsSquareAttacked(sq, opponent) {
			return dst
		}
	}
	return append(dst, MoveOp{From: king, To: to, IsCastle: true})
}

// castleRookSquares returns where the rook starts and lands for a castling
// king move.
func (b *Board) castleRookSquares(m MoveOp) (from, to int) {
	w := b.shape.Width
	row := m.From / w
	if m.To > m.From {
		return row*w + w - 1, m.From + 1
	}
	return row * w, m.From - 1
}
