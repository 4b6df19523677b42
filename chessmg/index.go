package chessmg

import "golang.org/x/exp/slices"

// pieceIndex maps each piece kind to the sorted board indices holding a piece
// of that kind, regardless of color. Slot Empty is never populated.
//
// Sorted arenas keep generation order deterministic and make Clone a handful
// of slice copies.
type pieceIndex [numKinds][]int

func (x *pieceIndex) add(k PieceKind, i int) {
	pos, found := slices.BinarySearch(x[k], i)
	if found {
		panic(&CorruptedIndexError{Index: i, Kind: k, Reason: "square already indexed"})
	}
	x[k] = slices.Insert(x[k], pos, i)
}

func (x *pieceIndex) remove(k PieceKind, i int) {
	pos, found := slices.BinarySearch(x[k], i)
	if !found {
		panic(&CorruptedIndexError{Index: i, Kind: k, Reason: "square missing from index"})
	}
	x[k] = slices.Delete(x[k], pos, pos+1)
}

func (x *pieceIndex) contains(k PieceKind, i int) bool {
	_, found := slices.BinarySearch(x[k], i)
	return found
}

func (x *pieceIndex) clone() pieceIndex {
	var c pieceIndex
	for k := range x {
		c[k] = slices.Clone(x[k])
	}
	return c
}
