package chessmg

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(b.ApplyImmutable(m), depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move, keyed by
// the move's coordinate string.
func PerftDivide(b *Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.LegalMoves() {
		out[b.UCI(m)] = Perft(b.ApplyImmutable(m), depth-1)
	}
	return out
}
