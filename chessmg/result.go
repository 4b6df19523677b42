package chessmg

import "fmt"

// Result is the state of the game: Active, or the reason it ended.
type Result uint8

const (
	Active Result = iota
	DrawAgreement
	// DrawThreefold is reserved; repetition is not detected.
	DrawThreefold
	Draw50Moves
	DrawInsufficientMaterial
	DrawTimeoutInsufficientMaterial
	DrawStalemate
	WhiteWinsOnTime
	BlackWinsOnTime
	WhiteWinsByResignation
	BlackWinsByResignation
	WhiteWinsByCheckmate
	BlackWinsByCheckmate
)

var resultNames = [...]string{
	Active:                          "active",
	DrawAgreement:                   "draw by agreement",
	DrawThreefold:                   "draw by threefold repetition",
	Draw50Moves:                     "draw by fifty-move rule",
	DrawInsufficientMaterial:        "draw by insufficient material",
	DrawTimeoutInsufficientMaterial: "draw by timeout with insufficient material",
	DrawStalemate:                   "draw by stalemate",
	WhiteWinsOnTime:                 "white wins on time",
	BlackWinsOnTime:                 "black wins on time",
	WhiteWinsByResignation:          "white wins by resignation",
	BlackWinsByResignation:          "black wins by resignation",
	WhiteWinsByCheckmate:            "white wins by checkmate",
	BlackWinsByCheckmate:            "black wins by checkmate",
}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprintf("Result(%d)", uint8(r))
}

// IsOver reports whether the game has ended.
func (r Result) IsOver() bool { return r != Active }

// IsDraw reports whether the game ended without a winner.
func (r Result) IsDraw() bool { return r >= DrawAgreement && r <= DrawStalemate }

// Winner returns the winning side of a decisive result.
func (r Result) Winner() (Color, bool) {
	switch r {
	case WhiteWinsOnTime, WhiteWinsByResignation, WhiteWinsByCheckmate:
		return White, true
	case BlackWinsOnTime, BlackWinsByResignation, BlackWinsByCheckmate:
		return Black, true
	}
	return White, false
}

// Adjudicate ends an active game that is decided by the position itself:
// checkmate, stalemate, an expired fifty-move clock or insufficient material.
// It returns the current result.
func (b *Board) Adjudicate() Result {
	switch b.result {
	case Active:
	case Draw50Moves:
		// Apply sets the draw when the clock expires; a mate delivered by
		// that same move still wins.
		if b.InCheck(b.toPlay) && len(b.LegalMoves()) == 0 {
			b.result = b.checkmated()
		}
		return b.result
	default:
		return b.result
	}
	switch {
	case len(b.LegalMoves()) == 0:
		if b.InCheck(b.toPlay) {
			b.result = b.checkmated()
		} else {
			b.result = DrawStalemate
		}
	case b.halfmoveClock >= FiftyMoveLimit:
		b.result = Draw50Moves
	case !b.hasSufficientMaterial():
		b.result = DrawInsufficientMaterial
	}
	return b.result
}

// checkmated is the result when the side to play is mated.
func (b *Board) checkmated() Result {
	if b.toPlay == White {
		return BlackWinsByCheckmate
	}
	return WhiteWinsByCheckmate
}

// Resign ends an active game in favor of the opponent of side.
func (b *Board) Resign(side Color) {
	if b.result != Active {
		return
	}
	if side == White {
		b.result = BlackWinsByResignation
	} else {
		b.result = WhiteWinsByResignation
	}
}

// AgreeDraw ends an active game as a draw by agreement.
func (b *Board) AgreeDraw() {
	if b.result == Active {
		b.result = DrawAgreement
	}
}

// FlagFall ends an active game because side ran out of time. The opponent wins
// unless it has no material left to mate with.
func (b *Board) FlagFall(side Color) {
	if b.result != Active {
		return
	}
	switch {
	case !b.canMate(side.Other(), side):
		b.result = DrawTimeoutInsufficientMaterial
	case side == White:
		b.result = BlackWinsOnTime
	default:
		b.result = WhiteWinsOnTime
	}
}

// material counts side's pieces by kind.
func (b *Board) material(side Color) (counts [numKinds]int) {
	for k := Pawn; k <= King; k++ {
		for _, i := range b.index[k] {
			if b.squares[i].Color == side {
				counts[k]++
			}
		}
	}
	return counts
}

// canMate is the flag-fall test for side against the flagged player. Two
// minors or any pawn, rook or queen can mate. A lone minor can only mate with
// help from the flagged side's own men, and a lone bishop gets none from
// bishops running on its own square color.
func (b *Board) canMate(side, against Color) bool {
	m := b.material(side)
	if m[Pawn] > 0 || m[Rook] > 0 || m[Queen] > 0 {
		return true
	}
	switch minors := m[Knight] + m[Bishop]; {
	case minors >= 2:
		return true
	case minors == 0:
		return false
	}
	o := b.material(against)
	if o[Pawn]+o[Rook]+o[Queen]+o[Knight] > 0 {
		return true
	}
	if m[Knight] == 1 {
		return o[Bishop] > 0
	}
	shade := b.squareShade(b.bishopOf(side))
	for _, i := range b.index[Bishop] {
		if b.squares[i].Color == against && b.squareShade(i) != shade {
			return true
		}
	}
	return false
}

// hasSufficientMaterial reports whether either side can still deliver mate.
// K v K, K+minor v K and K+B v K+B with same-colored bishops are dead draws.
func (b *Board) hasSufficientMaterial() bool {
	white, black := b.material(White), b.material(Black)
	for _, m := range [2][numKinds]int{white, black} {
		if m[Pawn] > 0 || m[Rook] > 0 || m[Queen] > 0 {
			return true
		}
	}
	wMinor := white[Knight] + white[Bishop]
	bMinor := black[Knight] + black[Bishop]
	switch {
	case wMinor == 0 && bMinor == 0:
		return false
	case wMinor == 1 && bMinor == 0, wMinor == 0 && bMinor == 1:
		return false
	case white[Bishop] == 1 && black[Bishop] == 1 && wMinor == 1 && bMinor == 1:
		return b.squareShade(b.bishopOf(White)) != b.squareShade(b.bishopOf(Black))
	}
	return true
}

func (b *Board) bishopOf(side Color) int {
	for _, i := range b.index[Bishop] {
		if b.squares[i].Color == side {
			return i
		}
	}
	return -1
}

// squareShade is 0 or 1 depending on the square color of i.
func (b *Board) squareShade(i int) int {
	w := b.shape.Width
	return (i/w + i%w) % 2
}
