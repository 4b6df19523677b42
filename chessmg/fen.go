package chessmg

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// glyphs is the display and FEN letter for each kind, uppercase for White.
var glyphs = [numKinds]byte{'.', 'P', 'R', 'N', 'B', 'Q', 'K'}

// squareFromLetter converts a FEN piece letter to the square it describes.
func squareFromLetter(ch byte) (Square, bool) {
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if glyphs[k] == ch {
			return Square{Color: color, Piece: k}, true
		}
	}
	return Square{}, false
}

// Glyph returns the display letter of the square: '.' when empty, lowercase for Black.
func (s Square) Glyph() byte {
	g := glyphs[s.Piece]
	if s.Piece != Empty && s.Color == Black {
		g += 'a' - 'A'
	}
	return g
}

// ParseFEN parses a FEN string for the standard 8x8 board.
func ParseFEN(fen string) (*Board, error) {
	return ParseFENShape(fen, StandardShape)
}

// ParseFENShape parses a FEN string describing a board of the given shape.
// Either a complete Board or an error is returned, never both.
func ParseFENShape(fen string, shape Shape) (*Board, error) {
	if err := shape.validate(); err != nil {
		return nil, err
	}
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, formatErr("FEN", fen, "expected 6 fields, got %d", len(fields))
	}

	b := &Board{
		squares: make([]Square, shape.Size()),
		shape:   shape,
	}

	// 1. Piece placement
	if err := b.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		b.toPlay = White
	case "b":
		b.toPlay = Black
	default:
		return nil, formatErr("side to move", fields[1], "must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		seen := map[rune]bool{}
		for _, ch := range fields[2] {
			if seen[ch] {
				return nil, formatErr("castling", fields[2], "duplicate %q", ch)
			}
			seen[ch] = true
			switch ch {
			case 'K':
				b.castling[White].Kingside = true
			case 'Q':
				b.castling[White].Queenside = true
			case 'k':
				b.castling[Black].Kingside = true
			case 'q':
				b.castling[Black].Queenside = true
			default:
				return nil, formatErr("castling", fields[2], "unexpected %q", ch)
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		target, err := shape.ParseSquare(fields[3])
		if err != nil {
			return nil, formatErr("en passant", fields[3], "not a square on a %dx%d board", shape.Height, shape.Width)
		}
		b.enPassant = EnPassant{Valid: true, Target: target}
	}

	// 5. Halfmove clock
	halfmove, err := strconv.ParseUint(fields[4], 10, 16)
	if err != nil {
		return nil, formatErr("halfmove clock", fields[4], "not an unsigned 16-bit number")
	}
	b.halfmoveClock = uint16(halfmove)

	// 6. Fullmove number
	fullmove, err := strconv.ParseUint(fields[5], 10, 16)
	if err != nil || fullmove == 0 {
		return nil, formatErr("fullmove number", fields[5], "not a positive 16-bit number")
	}
	b.fullmoveNumber = uint16(fullmove)

	b.rebuildIndex()
	return b, nil
}

// parsePlacement fills squares from the placement field. Runs of empty squares
// may span several digits on boards wider than nine files.
func (b *Board) parsePlacement(field string) error {
	h, w := b.shape.Height, b.shape.Width
	ranks := strings.Split(field, "/")
	if len(ranks) != h {
		return formatErr("placement", field, "expected %d ranks, got %d", h, len(ranks))
	}
	for row, rank := range ranks {
		if rank == "" {
			return formatErr("placement", field, "rank %d is empty", h-row)
		}
		file := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if isDigit(ch) {
				if ch == '0' {
					return formatErr("placement", rank, "empty-square run starts with 0")
				}
				run := 0
				for ; i < len(rank) && isDigit(rank[i]); i++ {
					run = run*10 + int(rank[i]-'0')
					if run > w {
						break
					}
				}
				i--
				file += run
				if file > w {
					return formatErr("placement", rank, "rank %d covers more than %d files", h-row, w)
				}
				continue
			}
			sq, ok := squareFromLetter(ch)
			if !ok {
				return formatErr("placement", rank, "unrecognized piece letter %q", ch)
			}
			if file >= w {
				return formatErr("placement", rank, "rank %d covers more than %d files", h-row, w)
			}
			b.squares[row*w+file] = sq
			file++
		}
		if file != w {
			return formatErr("placement", rank, "rank %d covers %d files, want %d", h-row, file, w)
		}
	}
	return nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// ParseSquare decodes a coordinate such as "e4" into a board index. Files are
// lettered from 'a' and ranks numbered from 1 at the bottom (White's side).
func (s Shape) ParseSquare(text string) (int, error) {
	if len(text) < 2 {
		return 0, formatErr("square", text, "too short")
	}
	file := int(text[0]) - 'a'
	if file < 0 || file >= s.Width {
		return 0, formatErr("square", text, "file out of range")
	}
	digits := text[1:]
	if digits[0] == '0' {
		return 0, formatErr("square", text, "rank starts with 0")
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, formatErr("square", text, "rank is not a number")
		}
	}
	rank, err := strconv.Atoi(digits)
	if err != nil || rank < 1 || rank > s.Height {
		return 0, formatErr("square", text, "rank out of range")
	}
	return (s.Height-rank)*s.Width + file, nil
}

// Algebraic encodes a board index as a coordinate such as "e4".
func (s Shape) Algebraic(i int) string {
	file := i % s.Width
	rank := s.Height - i/s.Width
	return string(rune('a'+file)) + strconv.Itoa(rank)
}

// ToFEN produces the FEN string of the position.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	w := b.shape.Width

	// 1. Piece placement
	for row := 0; row < b.shape.Height; row++ {
		empty := 0
		for file := 0; file < w; file++ {
			sq := b.squares[row*w+file]
			if sq.Piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(sq.Glyph())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < b.shape.Height-1 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.toPlay == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if cr := b.castling.fen(); cr != "" {
		sb.WriteString(cr)
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	// 4. En passant square
	if b.enPassant.Valid {
		sb.WriteString(b.shape.Algebraic(b.enPassant.Target))
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(int(b.halfmoveClock)))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(int(b.fullmoveNumber)))
	return sb.String()
}

// fen returns the set rights as a KQkq subset, empty when none are set.
func (cr CastlingRights) fen() string {
	var sb strings.Builder
	if cr[White].Kingside {
		sb.WriteByte('K')
	}
	if cr[White].Queenside {
		sb.WriteByte('Q')
	}
	if cr[Black].Kingside {
		sb.WriteByte('k')
	}
	if cr[Black].Queenside {
		sb.WriteByte('q')
	}
	return sb.String()
}
