package chessmg

import (
	"errors"
	"testing"
)

func TestPieceIndexOrdering(t *testing.T) {
	var x pieceIndex
	for _, i := range []int{40, 3, 17, 63, 0} {
		x.add(Knight, i)
	}
	want := []int{0, 3, 17, 40, 63}
	for i, v := range want {
		if x[Knight][i] != v {
			t.Fatalf("got %v want %v", x[Knight], want)
		}
	}
	x.remove(Knight, 17)
	if x.contains(Knight, 17) || len(x[Knight]) != 4 {
		t.Fatalf("remove: %v", x[Knight])
	}

	c := x.clone()
	c.add(Knight, 17)
	if x.contains(Knight, 17) {
		t.Fatalf("clone shares storage with the original")
	}
}

func expectCorrupted(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrCorruptedIndex) {
			t.Fatalf("expected a corrupted-index panic, got %v", r)
		}
	}()
	fn()
}

func TestPieceIndexPanics(t *testing.T) {
	var x pieceIndex
	x.add(Rook, 5)
	expectCorrupted(t, func() { x.add(Rook, 5) })
	expectCorrupted(t, func() { x.remove(Bishop, 5) })
}

func TestApplyPanicsOnCorruptedIndex(t *testing.T) {
	b := NewBoard()
	e2, _ := b.shape.ParseSquare("e2")
	e4, _ := b.shape.ParseSquare("e4")

	// Drop the pawn entries behind the squares' back.
	b.index[Pawn] = nil
	if err := b.Validate(); !errors.Is(err, ErrCorruptedIndex) {
		t.Fatalf("Validate: expected ErrCorruptedIndex, got %v", err)
	}
	expectCorrupted(t, func() {
		b.Apply(MoveOp{From: e2, To: e4, SetEnPassant: EnPassant{Valid: true, Target: e2 - 8}})
	})

	b = NewBoard()
	e3, _ := b.shape.ParseSquare("e3")
	expectCorrupted(t, func() { b.Apply(MoveOp{From: e3, To: e4}) })
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	c := b.Clone()
	c.index.remove(Pawn, c.index[Pawn][0])
	if err := b.Validate(); err != nil {
		t.Fatalf("original damaged through clone: %v", err)
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected the clone to disagree with its squares")
	}
}
