// Package codec decodes the weekly-progress buffer returned by the horo
// contract: a VarInt record count followed by packed claim records.
package codec

import (
	"errors"
	"fmt"
)

// Kind classifies a structural decode failure.
type Kind int

const (
	KindTruncated Kind = iota + 1
	KindValueTooLarge
	KindInvalidDayOfWeek
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindValueTooLarge:
		return "value too large"
	case KindInvalidDayOfWeek:
		return "invalid day of week"
	default:
		return "unknown"
	}
}

var (
	// ErrTruncated matches any DecodeError caused by running out of bytes.
	ErrTruncated = errors.New("codec: truncated input")
	// ErrValueTooLarge matches VarInts that do not terminate within 64 bits.
	ErrValueTooLarge = errors.New("codec: value too large")
	// ErrInvalidDayOfWeek matches records whose weekday byte is above 6.
	ErrInvalidDayOfWeek = errors.New("codec: invalid day of week")

	// ErrPrecisionLoss is a warning, not a failure: the value decoded exactly but
	// exceeds the range clients built on float64 can represent.
	ErrPrecisionLoss = errors.New("codec: value exceeds safe integer range")
)

// DecodeError describes where and why decoding stopped.
type DecodeError struct {
	Kind   Kind
	Field  string
	Offset int
	Need   int // bytes required from Offset, Truncated only
	Have   int // bytes available from Offset, Truncated only
	Value  uint64
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindTruncated:
		return fmt.Sprintf("codec: not enough bytes for %s at offset %d, need %d but only %d available",
			e.Field, e.Offset, e.Need, e.Have)
	case KindInvalidDayOfWeek:
		return fmt.Sprintf("codec: invalid day of week %d at offset %d", e.Value, e.Offset)
	default:
		return fmt.Sprintf("codec: %s decoding %s at offset %d", e.Kind, e.Field, e.Offset)
	}
}

// Is lets callers test the failure class with errors.Is.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrTruncated:
		return e.Kind == KindTruncated
	case ErrValueTooLarge:
		return e.Kind == KindValueTooLarge
	case ErrInvalidDayOfWeek:
		return e.Kind == KindInvalidDayOfWeek
	}
	return false
}

func truncated(field string, buf []byte, offset, need int) *DecodeError {
	have := len(buf) - offset
	if have < 0 {
		have = 0
	}
	return &DecodeError{Kind: KindTruncated, Field: field, Offset: offset, Need: need, Have: have}
}
