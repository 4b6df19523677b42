package chessmg

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("format error")
	// ErrIllegalMove is wrapped by Play and ParseMove when a move is not in the legal set.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is wrapped by Play once the result is no longer Active.
	ErrGameOver = errors.New("game is over")
	// ErrCorruptedIndex matches every *CorruptedIndexError.
	ErrCorruptedIndex = errors.New("corrupted piece-location index")
)

// FormatError reports text that does not follow the notation grammar.
type FormatError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func formatErr(field, value, reason string, args ...any) error {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &FormatError{Field: field, Value: value, Reason: reason}
}

// CorruptedIndexError means the piece-location index disagrees with the squares.
// It is a programming defect: mutators panic with it instead of continuing.
type CorruptedIndexError struct {
	Index  int
	Kind   PieceKind
	Reason string
}

func (e *CorruptedIndexError) Error() string {
	return fmt.Sprintf("corrupted piece-location index at %d (%s): %s", e.Index, e.Kind, e.Reason)
}

func (e *CorruptedIndexError) Is(target error) bool { return target == ErrCorruptedIndex }
