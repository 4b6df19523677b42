package chessmg

// step is a direction in rows and files. The index delta is dr*width + df;
// df is kept separately so edge checks never rely on index arithmetic alone.
type step struct{ dr, df int }

var (
	rookSteps   = []step{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopSteps = []step{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenSteps  = append(append([]step{}, rookSteps...), bishopSteps...)
	kingSteps   = queenSteps
	knightSteps = []step{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

var promotionKinds = [...]PieceKind{Queen, Rook, Bishop, Knight}

// RookMoves returns the pseudo-legal rook moves of the side to play.
func (b *Board) RookMoves() []MoveOp { return b.slidingMoves(nil, Rook, rookSteps, b.toPlay) }

// BishopMoves returns the pseudo-legal bishop moves of the side to play.
func (b *Board) BishopMoves() []MoveOp { return b.slidingMoves(nil, Bishop, bishopSteps, b.toPlay) }

// QueenMoves returns the pseudo-legal queen moves of the side to play.
func (b *Board) QueenMoves() []MoveOp { return b.slidingMoves(nil, Queen, queenSteps, b.toPlay) }

// KnightMoves returns the pseudo-legal knight moves of the side to play.
func (b *Board) KnightMoves() []MoveOp { return b.leaperMoves(nil, Knight, knightSteps, b.toPlay) }

// KingMoves returns the pseudo-legal king moves of the side to play, castling included.
func (b *Board) KingMoves() []MoveOp {
	dst := b.leaperMoves(nil, King, kingSteps, b.toPlay)
	return b.castlingMoves(dst, b.toPlay)
}

// PawnMoves returns the pseudo-legal pawn moves of the side to play:
// pushes, double pushes, captures, en passant and promotions.
func (b *Board) PawnMoves() []MoveOp { return b.pawnMoves(nil, b.toPlay, false) }

// PseudoLegalMoves returns every pseudo-legal move of the side to play.
func (b *Board) PseudoLegalMoves() []MoveOp {
	return b.generate(make([]MoveOp, 0, 64), b.toPlay)
}

// generate appends all pseudo-legal moves of side, king first and pawns last.
func (b *Board) generate(dst []MoveOp, side Color) []MoveOp {
	dst = b.leaperMoves(dst, King, kingSteps, side)
	dst = b.castlingMoves(dst, side)
	dst = b.slidingMoves(dst, Queen, queenSteps, side)
	dst = b.slidingMoves(dst, Bishop, bishopSteps, side)
	dst = b.slidingMoves(dst, Rook, rookSteps, side)
	dst = b.leaperMoves(dst, Knight, knightSteps, side)
	return b.pawnMoves(dst, side, false)
}

// attacks appends the moves side could use to capture on any square: every
// non-castling move of pieces, plus both pawn diagonals whether or not
// something stands there. Pawn pushes never attack and are left out.
func (b *Board) attacks(dst []MoveOp, side Color) []MoveOp {
	dst = b.leaperMoves(dst, King, kingSteps, side)
	dst = b.slidingMoves(dst, Queen, queenSteps, side)
	dst = b.slidingMoves(dst, Bishop, bishopSteps, side)
	dst = b.slidingMoves(dst, Rook, rookSteps, side)
	dst = b.leaperMoves(dst, Knight, knightSteps, side)
	return b.pawnMoves(dst, side, true)
}

// slidingMoves walks each direction from every piece of kind until the board
// edge or the first occupied square. The file edge is checked before each step,
// since a raw index increment would wrap onto the next rank.
func (b *Board) slidingMoves(dst []MoveOp, kind PieceKind, steps []step, side Color) []MoveOp {
	w, n := b.shape.Width, len(b.squares)
	for _, from := range b.index[kind] {
		if b.squares[from].Color != side {
			continue
		}
		for _, s := range steps {
			delta := s.dr*w + s.df
			cur := from
			for {
				if (s.df < 0 && cur%w == 0) || (s.df > 0 && cur%w == w-1) {
					break
				}
				cur += delta
				if cur < 0 || cur >= n {
					break
				}
				target := b.squares[cur]
				if target.Piece != Empty {
					if target.Color != side {
						dst = append(dst, MoveOp{From: from, To: cur})
					}
					break
				}
				dst = append(dst, MoveOp{From: from, To: cur})
			}
		}
	}
	return dst
}

// leaperMoves handles knights and kings: one jump per step, skipping targets
// whose file would fall off the board and squares held by side.
func (b *Board) leaperMoves(dst []MoveOp, kind PieceKind, steps []step, side Color) []MoveOp {
	w, n := b.shape.Width, len(b.squares)
	for _, from := range b.index[kind] {
		if b.squares[from].Color != side {
			continue
		}
		file := from % w
		for _, s := range steps {
			if f := file + s.df; f < 0 || f >= w {
				continue
			}
			to := from + s.dr*w + s.df
			if to < 0 || to >= n {
				continue
			}
			if t := b.squares[to]; t.Piece != Empty && t.Color == side {
				continue
			}
			dst = append(dst, MoveOp{From: from, To: to})
		}
	}
	return dst
}

// pawnMoves generates pawn moves for side. With attacksOnly set it emits the
// two diagonal targets of every pawn instead, for attack queries.
func (b *Board) pawnMoves(dst []MoveOp, side Color, attacksOnly bool) []MoveOp {
	w, n := b.shape.Width, len(b.squares)
	dir := b.pawnStep(side)
	startRow := 1
	lastRow := b.shape.Height - 1
	if side == White {
		startRow, lastRow = b.shape.Height-2, 0
	}
	for _, from := range b.index[Pawn] {
		if b.squares[from].Color != side {
			continue
		}
		one := from + dir
		if one < 0 || one >= n {
			continue
		}
		promotes := one/w == lastRow

		if !attacksOnly && b.squares[one].Piece == Empty {
			dst = appendPawnMove(dst, MoveOp{From: from, To: one}, promotes)
			if two := one + dir; from/w == startRow && two >= 0 && two < n && b.squares[two].Piece == Empty {
				dst = append(dst, MoveOp{
					From:         from,
					To:           two,
					SetEnPassant: EnPassant{Valid: true, Target: one},
				})
			}
		}

		file := from % w
		for _, df := range [2]int{-1, 1} {
			if (df < 0 && file == 0) || (df > 0 && file == w-1) {
				continue
			}
			to := one + df
			target := b.squares[to]
			switch {
			case attacksOnly:
				if target.Piece == Empty || target.Color != side {
					dst = append(dst, MoveOp{From: from, To: to})
				}
			case target.Piece != Empty:
				if target.Color != side {
					dst = appendPawnMove(dst, MoveOp{From: from, To: to}, promotes)
				}
			case b.enPassant.Valid && b.enPassant.Target == to:
				// The victim is the enemy pawn that just passed over the target.
				if victim := b.squares[to-dir]; victim.Piece == Pawn && victim.Color != side {
					dst = append(dst, MoveOp{From: from, To: to, IsEnPassant: true})
				}
			}
		}
	}
	return dst
}

func appendPawnMove(dst []MoveOp, m MoveOp, promotes bool) []MoveOp {
	if !promotes {
		return append(dst, m)
	}
	for _, k := range promotionKinds {
		m.Promote = k
		dst = append(dst, m)
	}
	return dst
}
