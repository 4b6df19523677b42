package chessmg

import (
	"fmt"
	"strings"
)

// MoveOp is a candidate or committed transition between two board indices.
type MoveOp struct {
	From int
	To   int

	// IsEnPassant marks a capture whose victim stands behind To, not on it.
	IsEnPassant bool
	// IsCastle marks the king's two-square castling move; Apply relocates the rook.
	IsCastle bool
	// SetEnPassant is the target this move creates for the opponent's next turn.
	SetEnPassant EnPassant
	// Promote is the kind a pawn becomes, Empty when not a promotion.
	Promote PieceKind
}

// UCI encodes m in coordinate form, e.g. "e2e4" or "e7e8q".
func (b *Board) UCI(m MoveOp) string {
	s := b.shape.Algebraic(m.From) + b.shape.Algebraic(m.To)
	if m.Promote != Empty {
		s += strings.ToLower(string(glyphs[m.Promote]))
	}
	return s
}

// ParseMove decodes a coordinate move ("e2e4", "e7e8q") and returns the matching
// legal move of the position, flags included. Malformed text yields a
// *FormatError; a well-formed move that is not legal wraps ErrIllegalMove.
func (b *Board) ParseMove(text string) (MoveOp, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	from, to, promo, err := b.splitMove(text)
	if err != nil {
		return MoveOp{}, err
	}
	for _, m := range b.LegalMoves() {
		if m.From == from && m.To == to && m.Promote == promo {
			return m, nil
		}
	}
	return MoveOp{}, fmt.Errorf("%s: %w", text, ErrIllegalMove)
}

// splitMove separates origin, destination and promotion suffix. Rank numbers
// may have several digits on tall boards, so the split point is found by
// scanning for the second file letter.
func (b *Board) splitMove(text string) (from, to int, promo PieceKind, err error) {
	second := -1
	for i := 1; i < len(text); i++ {
		if !isDigit(text[i]) {
			second = i
			break
		}
	}
	if second < 2 {
		return 0, 0, Empty, formatErr("move", text, "expected <from><to>[promotion]")
	}
	end := second + 1
	for end < len(text) && isDigit(text[end]) {
		end++
	}
	if from, err = b.shape.ParseSquare(text[:second]); err != nil {
		return 0, 0, Empty, formatErr("move", text, "bad origin square")
	}
	if to, err = b.shape.ParseSquare(text[second:end]); err != nil {
		return 0, 0, Empty, formatErr("move", text, "bad destination square")
	}
	switch suffix := text[end:]; suffix {
	case "":
		promo = Empty
	case "q":
		promo = Queen
	case "r":
		promo = Rook
	case "b":
		promo = Bishop
	case "n":
		promo = Knight
	default:
		return 0, 0, Empty, formatErr("move", text, "invalid promotion piece %q", suffix)
	}
	return from, to, promo, nil
}
