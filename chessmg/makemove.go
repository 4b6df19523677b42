package chessmg

import "math"

// FiftyMoveLimit is the halfmove clock value at which the game is drawn.
const FiftyMoveLimit = 100

// Apply plays m on the board in place. It does not check legality; callers
// take m from LegalMoves or use Play. The piece kind driving every rule below
// is read from the origin square before anything is moved.
//
// Apply panics with *CorruptedIndexError when the origin square is empty or
// the location index disagrees with the squares it touches.
func (b *Board) Apply(m MoveOp) {
	mover := b.squares[m.From]
	if mover.Piece == Empty {
		panic(&CorruptedIndexError{Index: m.From, Kind: Empty, Reason: "move from an empty square"})
	}
	captured := b.squares[m.To]
	placed := mover
	if m.Promote != Empty {
		placed.Piece = m.Promote
	}

	// Index: the mover leaves From, a victim on To leaves the index, and
	// the (possibly promoted) mover is indexed on To.
	b.index.remove(mover.Piece, m.From)
	isCapture := captured.Piece != Empty
	if isCapture {
		b.index.remove(captured.Piece, m.To)
	}
	b.index.add(placed.Piece, m.To)

	// En passant victim sits one rank behind To.
	if m.IsEnPassant {
		victim := m.To - b.pawnStep(mover.Color)
		b.index.remove(Pawn, victim)
		b.squares[victim] = Square{}
		isCapture = true
	}

	// The en passant target lives for exactly one ply.
	b.enPassant = EnPassant{}
	if m.SetEnPassant.Valid {
		b.enPassant = m.SetEnPassant
	}

	// Castling rights and the castling rook.
	switch mover.Piece {
	case King:
		b.castling[mover.Color] = SideRights{}
		if m.IsCastle {
			rookFrom, rookTo := b.castleRookSquares(m)
			b.relocate(rookFrom, rookTo)
		}
	case Rook:
		b.clearRookRight(mover.Color, m.From)
	}
	if captured.Piece == Rook {
		b.clearRookRight(captured.Color, m.To)
	}

	// Fifty-move rule: the clock counts up and resets on captures and pawn moves.
	if isCapture || mover.Piece == Pawn {
		b.halfmoveClock = 0
	} else if b.halfmoveClock < math.MaxUint16 {
		b.halfmoveClock++
	}
	if b.halfmoveClock >= FiftyMoveLimit && b.result == Active {
		b.result = Draw50Moves
	}

	b.squares[m.To] = placed
	b.squares[m.From] = Square{}

	b.toPlay = b.toPlay.Other()
	if b.toPlay == White && b.fullmoveNumber < math.MaxUint16 {
		b.fullmoveNumber++
	}
}

// ApplyImmutable returns a clone of the board with m applied, leaving b untouched.
func (b *Board) ApplyImmutable(m MoveOp) *Board {
	c := b.Clone()
	c.Apply(m)
	return c
}

// relocate moves a piece between two squares without any of the turn
// bookkeeping of Apply. It backs the rook half of castling.
func (b *Board) relocate(from, to int) {
	sq := b.squares[from]
	if sq.Piece == Empty {
		panic(&CorruptedIndexError{Index: from, Kind: Empty, Reason: "relocating an empty square"})
	}
	b.index.remove(sq.Piece, from)
	b.index.add(sq.Piece, to)
	b.squares[to] = sq
	b.squares[from] = Square{}
}

// clearRookRight drops the right tied to a rook standing on, or leaving, a
// home corner of side.
func (b *Board) clearRookRight(side Color, at int) {
	w := b.shape.Width
	if at/w != b.homeRow(side) {
		return
	}
	switch at % w {
	case 0:
		b.castling[side].Queenside = false
	case w - 1:
		b.castling[side].Kingside = false
	}
}
