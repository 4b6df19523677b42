package chessmg

import (
	"fmt"
	"strings"
)

// String draws one glyph per square, one line per rank starting with the rank
// written first in FEN, followed by a status line.
func (b *Board) String() string {
	var sb strings.Builder
	w := b.shape.Width
	for i, sq := range b.squares {
		sb.WriteByte(sq.Glyph())
		if (i+1)%w == 0 {
			sb.WriteByte('\n')
		}
	}
	fmt.Fprintf(&sb, "move %d | %s to play | %s | %s\n", b.fullmoveNumber, b.toPlay, b.result, b.castling)
	return sb.String()
}

// String shows the four rights in fixed KQkq slots, '-' where a right is gone.
func (cr CastlingRights) String() string {
	slots := []byte("----")
	if cr[White].Kingside {
		slots[0] = 'K'
	}
	if cr[White].Queenside {
		slots[1] = 'Q'
	}
	if cr[Black].Kingside {
		slots[2] = 'k'
	}
	if cr[Black].Queenside {
		slots[3] = 'q'
	}
	return string(slots)
}
