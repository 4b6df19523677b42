package chessmg

import "fmt"

// IsSquareAttacked reports whether any piece of side by could capture on sq.
// It regenerates by's attack set on every call.
func (b *Board) IsSquareAttacked(sq int, by Color) bool {
	for _, m := range b.attacks(make([]MoveOp, 0, 64), by) {
		if m.To == sq {
			return true
		}
	}
	return false
}

// InCheck reports whether a king of the given color is attacked. A side
// without a king is never in check.
func (b *Board) InCheck(side Color) bool {
	for _, k := range b.index[King] {
		if b.squares[k].Color == side && b.IsSquareAttacked(k, side.Other()) {
			return true
		}
	}
	return false
}

// LegalMoves returns the pseudo-legal moves of the side to play that do not
// leave its own king attacked. Each candidate is played on a clone and the
// opponent's attacks are regenerated there.
func (b *Board) LegalMoves() []MoveOp {
	side := b.toPlay
	candidates := b.PseudoLegalMoves()
	legal := candidates[:0]
	for _, m := range candidates {
		if !b.ApplyImmutable(m).InCheck(side) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegal reports whether m is one of the legal moves of the position.
func (b *Board) IsLegal(m MoveOp) bool {
	for _, legal := range b.LegalMoves() {
		if legal == m {
			return true
		}
	}
	return false
}

// Play applies m after checking it against the legal move set, then
// adjudicates the resulting position. Apply itself stays unconditional.
func (b *Board) Play(m MoveOp) error {
	if b.result.IsOver() {
		return fmt.Errorf("%s: %w", b.result, ErrGameOver)
	}
	if !b.IsLegal(m) {
		return fmt.Errorf("%s: %w", b.UCI(m), ErrIllegalMove)
	}
	b.Apply(m)
	b.Adjudicate()
	return nil
}
