// Package chessmg is a mailbox chess move generator: a square array with a
// per-kind location index, a FEN codec, pseudo-legal generation, move
// application and legality filtering by forward simulation.
package chessmg

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return 1 - c }

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// PieceKind is a colorless piece type. The order matches the display glyph table.
type PieceKind uint8

const (
	Empty PieceKind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

const numKinds = int(King) + 1

var kindNames = [numKinds]string{"empty", "pawn", "rook", "knight", "bishop", "queen", "king"}

func (k PieceKind) String() string {
	if int(k) < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("PieceKind(%d)", uint8(k))
}

// Square is the content of one board cell. Color carries no meaning when Piece is Empty.
type Square struct {
	Color Color
	Piece PieceKind
}

// IsEmpty reports whether no piece stands on the square.
func (s Square) IsEmpty() bool { return s.Piece == Empty }

// Shape is the board geometry in ranks (Height) and files (Width).
type Shape struct {
	Height int
	Width  int
}

// StandardShape is the 8x8 board.
var StandardShape = Shape{Height: 8, Width: 8}

// ErrInvalidShape is returned for boards too small to host pawns or too wide for file letters.
var ErrInvalidShape = errors.New("invalid board shape")

// Size is the number of squares.
func (s Shape) Size() int { return s.Height * s.Width }

func (s Shape) validate() error {
	if s.Height < 5 || s.Width < 3 || s.Width > 26 {
		return fmt.Errorf("%dx%d: %w", s.Height, s.Width, ErrInvalidShape)
	}
	return nil
}

// SideRights are the castling rights of one color.
type SideRights struct {
	Kingside  bool
	Queenside bool
}

// CastlingRights holds both sides' rights, indexed by Color.
type CastlingRights [2]SideRights

// EnPassant is the square a pawn may move to when capturing en passant.
// Target is only meaningful while Valid is set.
type EnPassant struct {
	Valid  bool
	Target int
}

// Board is a complete position. The zero value is not usable; build one with
// NewBoard, ParseFEN or ParseFENShape.
type Board struct {
	squares []Square
	shape   Shape

	// index mirrors squares: index[k] holds every board index occupied by kind k.
	index pieceIndex

	toPlay    Color
	castling  CastlingRights
	enPassant EnPassant

	// halfmoveClock counts half-moves since the last capture or pawn move.
	halfmoveClock  uint16
	fullmoveNumber uint16
	result         Result
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Shape returns the board geometry.
func (b *Board) Shape() Shape { return b.shape }

// At returns the square at index i.
func (b *Board) At(i int) Square { return b.squares[i] }

// Squares returns a copy of every square in index order.
func (b *Board) Squares() []Square { return slices.Clone(b.squares) }

// Locations returns a copy of the sorted indices holding kind, for both colors.
func (b *Board) Locations(kind PieceKind) []int {
	if kind == Empty || int(kind) >= numKinds {
		return nil
	}
	return slices.Clone(b.index[kind])
}

// ToPlay reports which side moves next.
func (b *Board) ToPlay() Color { return b.toPlay }

// Castling returns the castling rights of both sides.
func (b *Board) Castling() CastlingRights { return b.castling }

// EnPassant returns the current en passant target.
func (b *Board) EnPassant() EnPassant { return b.enPassant }

// HalfmoveClock returns the half-moves played since the last capture or pawn move.
func (b *Board) HalfmoveClock() uint16 { return b.halfmoveClock }

// FullmoveNumber returns the move counter, incremented after each Black move.
func (b *Board) FullmoveNumber() uint16 { return b.fullmoveNumber }

// Result returns the game state.
func (b *Board) Result() Result { return b.result }

// Clone returns an independent copy. Squares and the location index are always
// copied together.
func (b *Board) Clone() *Board {
	c := *b
	c.squares = slices.Clone(b.squares)
	c.index = b.index.clone()
	return &c
}

// homeRow is the row holding a side's king and rooks at the start.
func (b *Board) homeRow(side Color) int {
	if side == White {
		return b.shape.Height - 1
	}
	return 0
}

// pawnStep is the index delta of a single pawn advance.
func (b *Board) pawnStep(side Color) int {
	if side == White {
		return -b.shape.Width
	}
	return b.shape.Width
}

// rebuildIndex derives the location index from squares with one full scan.
func (b *Board) rebuildIndex() {
	b.index = pieceIndex{}
	for i, sq := range b.squares {
		if sq.Piece != Empty {
			b.index.add(sq.Piece, i)
		}
	}
}

// Validate checks that the location index agrees with the squares. It returns a
// *CorruptedIndexError describing the first disagreement found.
func (b *Board) Validate() error {
	if len(b.squares) != b.shape.Size() {
		return &CorruptedIndexError{Index: len(b.squares), Reason: "square count does not match shape"}
	}
	for i, sq := range b.squares {
		for k := Pawn; k <= King; k++ {
			if (sq.Piece == k) != b.index.contains(k, i) {
				return &CorruptedIndexError{Index: i, Kind: k, Reason: "index disagrees with square"}
			}
		}
	}
	for k := Pawn; k <= King; k++ {
		for _, i := range b.index[k] {
			if i < 0 || i >= len(b.squares) {
				return &CorruptedIndexError{Index: i, Kind: k, Reason: "index entry off the board"}
			}
		}
	}
	return nil
}
