package chessmg_test

import (
	"testing"

	mg "chess-movegen/chessmg"
)

// play looks up each coordinate move among the legal moves and applies it.
func play(t *testing.T, b *mg.Board, moves ...string) {
	t.Helper()
	for _, text := range moves {
		m, err := b.ParseMove(text)
		if err != nil {
			t.Fatalf("ParseMove(%q) on %s: %v", text, b.ToFEN(), err)
		}
		b.Apply(m)
		if err := b.Validate(); err != nil {
			t.Fatalf("after %s: %v", text, err)
		}
	}
}

func TestApplyBookkeeping(t *testing.T) {
	b := mg.NewBoard()

	play(t, b, "e2e4")
	if got := b.ToFEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Fatalf("after e2e4: %s", got)
	}
	if ep := b.EnPassant(); !ep.Valid || ep.Target != sq(t, "e3") {
		t.Fatalf("en passant: %+v", ep)
	}

	play(t, b, "e7e5")
	if b.FullmoveNumber() != 2 || b.ToPlay() != mg.White {
		t.Fatalf("after e7e5: fullmove %d, %s to play", b.FullmoveNumber(), b.ToPlay())
	}

	play(t, b, "g1f3")
	if b.EnPassant().Valid {
		t.Fatalf("en passant target outlived its ply")
	}
	if b.HalfmoveClock() != 1 {
		t.Fatalf("halfmove after knight move: got %d want 1", b.HalfmoveClock())
	}

	play(t, b, "b8c6", "f1b5", "g8f6")
	if b.HalfmoveClock() != 4 || b.FullmoveNumber() != 4 {
		t.Fatalf("clocks: %d/%d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	play(t, b, "b5c6")
	if b.HalfmoveClock() != 0 {
		t.Fatalf("capture should reset the clock, got %d", b.HalfmoveClock())
	}
	play(t, b, "d7c6")
	if got := b.ToFEN(); got != "r1bqkb1r/ppp2ppp/2p2n2/4p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 5" {
		t.Fatalf("after Bxc6 dxc6: %s", got)
	}
}

func TestApplyImmutable(t *testing.T) {
	b := mg.NewBoard()
	before := b.ToFEN()
	m, err := b.ParseMove("d2d4")
	if err != nil {
		t.Fatal(err)
	}
	next := b.ApplyImmutable(m)
	if b.ToFEN() != before {
		t.Fatalf("original changed: %s", b.ToFEN())
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("original index: %v", err)
	}
	if next.At(sq(t, "d4")).Piece != mg.Pawn || !next.At(sq(t, "d2")).IsEmpty() {
		t.Fatalf("clone not updated: %s", next.ToFEN())
	}

	// Further play on the clone stays off the original.
	play(t, next, "d7d5")
	if b.ToFEN() != before {
		t.Fatalf("original changed through clone: %s", b.ToFEN())
	}
}

func TestCastlingRightsBookkeeping(t *testing.T) {
	const fen = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	tests := []struct {
		name  string
		moves []string
		want  string
	}{
		{"king step", []string{"e1e2"}, "kq"},
		{"kingside rook", []string{"h1h2"}, "Qkq"},
		{"queenside rook", []string{"a1a2"}, "Kkq"},
		{"rook captures rook", []string{"a1a8"}, "Kk"},
		{"black king", []string{"e1f1", "e8d8"}, ""},
		{"rook returns", []string{"h1h2", "a8a7", "h2h1"}, "Qk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, fen)
			play(t, b, tt.moves...)
			got := b.ToFEN()
			want := "-"
			if tt.want != "" {
				want = tt.want
			}
			if field := fenField(got, 2); field != want {
				t.Fatalf("castling: got %q want %q (%s)", field, want, got)
			}
		})
	}
}

func fenField(fen string, n int) string {
	field, i := 0, 0
	for j := 0; j <= len(fen); j++ {
		if j == len(fen) || fen[j] == ' ' {
			if field == n {
				return fen[i:j]
			}
			field++
			i = j + 1
		}
	}
	return ""
}

func TestApplyCastling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"white kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1"},
		{"white queenside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "r3k2r/8/8/8/8/8/8/2KR3R b kq - 1 1"},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", "r4rk1/8/8/8/8/8/8/R3K2R w KQ - 1 2"},
		{"black queenside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.fen)
			m, err := b.ParseMove(tt.move)
			if err != nil {
				t.Fatalf("ParseMove: %v", err)
			}
			if !m.IsCastle {
				t.Fatalf("%s not flagged as castling", tt.move)
			}
			b.Apply(m)
			if got := b.ToFEN(); got != tt.want {
				t.Fatalf("got %s want %s", got, tt.want)
			}
			if err := b.Validate(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestApplyEnPassant(t *testing.T) {
	b := mustParse(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	play(t, b, "e5d6")
	if got := b.ToFEN(); got != "4k3/8/3P4/8/8/8/8/4K3 b - - 0 1" {
		t.Fatalf("after exd6: %s", got)
	}
	if got := b.Locations(mg.Pawn); len(got) != 1 || got[0] != sq(t, "d6") {
		t.Fatalf("pawn index: %v", got)
	}

	// Black side: the victim sits above the target.
	b = mustParse(t, "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	play(t, b, "d4e3")
	if got := b.ToFEN(); got != "4k3/8/8/8/8/4p3/8/4K3 w - - 0 2" {
		t.Fatalf("after dxe3: %s", got)
	}
}

func TestApplyPromotion(t *testing.T) {
	b := mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	play(t, b, "a7b8n")
	if got := b.ToFEN(); got != "1N5k/8/8/8/8/8/8/7K b - - 0 1" {
		t.Fatalf("after axb8=N: %s", got)
	}
	if len(b.Locations(mg.Pawn)) != 0 {
		t.Fatalf("pawn still indexed: %v", b.Locations(mg.Pawn))
	}
	if got := b.Locations(mg.Knight); len(got) != 1 || got[0] != sq(t, "b8") {
		t.Fatalf("knight index: %v", got)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/R3K3 w - - 98 80")
	play(t, b, "a1a2")
	if b.Result() != mg.Active || b.HalfmoveClock() != 99 {
		t.Fatalf("at 99: %s, clock %d", b.Result(), b.HalfmoveClock())
	}
	play(t, b, "e8d8")
	if b.HalfmoveClock() != mg.FiftyMoveLimit || b.Result() != mg.Draw50Moves {
		t.Fatalf("at 100: %s, clock %d", b.Result(), b.HalfmoveClock())
	}

	// A pawn move one ply earlier keeps the game going.
	b = mustParse(t, "4k3/8/8/8/8/8/P7/4K3 w - - 99 80")
	play(t, b, "a2a3")
	if b.Result() != mg.Active || b.HalfmoveClock() != 0 {
		t.Fatalf("pawn move: %s, clock %d", b.Result(), b.HalfmoveClock())
	}
}

// A long deterministic walk must keep the index in step with the squares and
// never lose a king.
func TestApplyPreservesIndex(t *testing.T) {
	b := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for ply := 0; ply < 200; ply++ {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[(ply*7+3)%len(moves)]
		b.Apply(m)
		if err := b.Validate(); err != nil {
			t.Fatalf("ply %d (%s): %v", ply, b.ToFEN(), err)
		}
		if got := len(b.Locations(mg.King)); got != 2 {
			t.Fatalf("ply %d: %d kings on %s", ply, got, b.ToFEN())
		}
	}
}
