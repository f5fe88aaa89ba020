package track2

import (
	"errors"
	"fmt"
)

// Kind identifies which pipeline stage rejected a swipe.
type Kind int

const (
	KindFraming Kind = iota + 1
	KindParity
	KindChecksum
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindFraming:
		return "framing"
	case KindParity:
		return "parity"
	case KindChecksum:
		return "checksum"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

var (
	ErrFraming  = errors.New("framing error")
	ErrParity   = errors.New("parity error")
	ErrChecksum = errors.New("checksum error")
	ErrFormat   = errors.New("format error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindFraming:
		return ErrFraming
	case KindParity:
		return ErrParity
	case KindChecksum:
		return ErrChecksum
	case KindFormat:
		return ErrFormat
	default:
		return nil
	}
}

// DecodeError is the only error type returned by Decode and its stages.
// It unwraps to one of ErrFraming, ErrParity, ErrChecksum or ErrFormat.
type DecodeError struct {
	Kind   Kind
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("track2: %s error", e.Kind)
	}
	return fmt.Sprintf("track2: %s error: %s", e.Kind, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the kind carried by err, if err is (or wraps) a *DecodeError.
func KindOf(err error) (Kind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

func decodeErrorf(kind Kind, format string, args ...any) error {
	return &DecodeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
