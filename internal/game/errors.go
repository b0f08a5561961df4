package game

import (
	"errors"
	"fmt"
)

// Kind classifies the ways the engine can reject a request. Every
// rejection leaves the hand state untouched; the caller is expected to
// re-prompt.
type Kind int

const (
	// IllegalAction covers betting-rules violations: acting out of
	// turn, checking while facing a bet, raising below the minimum.
	IllegalAction Kind = iota + 1
	// InsufficientFunds means the attempted commitment exceeds the
	// player's stack and only an all-in would be accepted instead.
	InsufficientFunds
	// DeckExhausted is defensive; it cannot trigger in a normal
	// 2-6 player hand.
	DeckExhausted
	// InvalidConfiguration covers bad blinds, stacks, or player counts.
	InvalidConfiguration
)

func (k Kind) String() string {
	switch k {
	case IllegalAction:
		return "illegal_action"
	case InsufficientFunds:
		return "insufficient_funds"
	case DeckExhausted:
		return "deck_exhausted"
	case InvalidConfiguration:
		return "invalid_configuration"
	default:
		return "unknown"
	}
}

// Error is an engine rejection with a machine-readable kind.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Errorf builds an engine error of the given kind. Boundary layers use
// it for rejections that should carry a machine-readable kind.
func Errorf(kind Kind, format string, args ...any) error {
	return errorf(kind, format, args...)
}

// KindOf extracts the Kind from an engine error, or 0 for other errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
