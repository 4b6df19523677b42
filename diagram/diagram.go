// Package diagram renders chessmg positions as SVG board diagrams.
package diagram

import (
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"chess-movegen/chessmg"
)

const (
	defaultSquareSize = 45

	lightFill     = "#f0d9b5"
	darkFill      = "#b58863"
	highlightFill = "#f6f669"
)

var pieceGlyphs = [2][7]string{
	chessmg.White: {"", "♙", "♖", "♘", "♗", "♕", "♔"},
	chessmg.Black: {"", "♟", "♜", "♞", "♝", "♛", "♚"},
}

type config struct {
	squareSize int
	flip       bool
	highlight  map[int]bool
}

// Option adjusts how a diagram is drawn.
type Option func(*config)

// Highlight marks the given board indices, e.g. the squares of the last move.
func Highlight(squares ...int) Option {
	return func(c *config) {
		for _, sq := range squares {
			c.highlight[sq] = true
		}
	}
}

// Flip draws the board from Black's side.
func Flip(on bool) Option {
	return func(c *config) { c.flip = on }
}

// SquareSize sets the edge of one square in pixels. Values below 10 are ignored.
func SquareSize(px int) Option {
	return func(c *config) {
		if px >= 10 {
			c.squareSize = px
		}
	}
}

// Write renders b as a standalone SVG document. Coordinates run along the left
// and bottom edges. The first write error is returned.
func Write(w io.Writer, b *chessmg.Board, opts ...Option) error {
	cfg := config{squareSize: defaultSquareSize, highlight: map[int]bool{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	ew := &errWriter{w: w}
	shape := b.Shape()
	sz := cfg.squareSize
	margin := sz / 2
	width := margin + shape.Width*sz
	height := shape.Height*sz + margin

	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	fontSize := sz * 3 / 4
	labelSize := sz / 3
	for row := 0; row < shape.Height; row++ {
		for col := 0; col < shape.Width; col++ {
			idx := squareAt(shape, row, col, cfg.flip)
			x, y := margin+col*sz, row*sz

			fill := lightFill
			if (idx/shape.Width+idx%shape.Width)%2 == 1 {
				fill = darkFill
			}
			if cfg.highlight[idx] {
				fill = highlightFill
			}
			canvas.Rect(x, y, sz, sz, "fill:"+fill)

			sq := b.At(idx)
			if sq.IsEmpty() {
				continue
			}
			canvas.Text(x+sz/2, y+sz*3/4, pieceGlyphs[sq.Color][sq.Piece],
				fmt.Sprintf("text-anchor:middle;font-size:%dpx", fontSize))
		}
	}

	labelStyle := fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:#333333", labelSize)
	for row := 0; row < shape.Height; row++ {
		rank := shape.Height - row
		if cfg.flip {
			rank = row + 1
		}
		canvas.Text(margin/2, row*sz+sz/2+labelSize/3, strconv.Itoa(rank), labelStyle)
	}
	for col := 0; col < shape.Width; col++ {
		file := col
		if cfg.flip {
			file = shape.Width - 1 - col
		}
		canvas.Text(margin+col*sz+sz/2, shape.Height*sz+margin*3/4, string(rune('a'+file)), labelStyle)
	}

	canvas.End()
	return ew.err
}

// squareAt maps a drawing cell to a board index.
func squareAt(shape chessmg.Shape, row, col int, flip bool) int {
	if flip {
		return (shape.Height-1-row)*shape.Width + (shape.Width - 1 - col)
	}
	return row*shape.Width + col
}

// errWriter keeps the first error; svgo itself ignores write failures.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
