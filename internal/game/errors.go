package game

import (
	"errors"
	"fmt"
)

var (
	// ErrPhaseViolation is returned when an operation is invoked outside the
	// phase it belongs to. The state is left unchanged.
	ErrPhaseViolation = errors.New("phase violation")

	// ErrIllegalMove is returned when the phase is right but a slot, index or
	// card is not a legal choice. The state is left unchanged.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvariantBreach is returned when a transition would produce (or was
	// handed) a corrupt state. The transition is refused.
	ErrInvariantBreach = errors.New("invariant breach")

	// ErrInvalidSetup is returned by the deck builder for unusable faction
	// choices or catalogs.
	ErrInvalidSetup = errors.New("invalid setup")
)

// ErrorKind classifies a RuleError.
type ErrorKind int

const (
	KindPhaseViolation ErrorKind = iota
	KindIllegalMove
	KindInvariantBreach
	KindInvalidSetup
)

// Code returns the machine-readable code for the kind.
func (k ErrorKind) Code() string {
	switch k {
	case KindPhaseViolation:
		return "PHASE_VIOLATION"
	case KindIllegalMove:
		return "ILLEGAL_MOVE"
	case KindInvariantBreach:
		return "INVARIANT_BREACH"
	case KindInvalidSetup:
		return "INVALID_SETUP"
	default:
		return "UNKNOWN"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindPhaseViolation:
		return ErrPhaseViolation
	case KindIllegalMove:
		return ErrIllegalMove
	case KindInvariantBreach:
		return ErrInvariantBreach
	default:
		return ErrInvalidSetup
	}
}

// RuleError describes why an operation was refused.
type RuleError struct {
	Kind   ErrorKind
	Op     string // operation name, e.g. "place"
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind.sentinel(), e.Reason)
}

// Unwrap lets errors.Is match the kind's sentinel.
func (e *RuleError) Unwrap() error {
	return e.Kind.sentinel()
}

// Code returns the machine-readable code of the error kind.
func (e *RuleError) Code() string {
	return e.Kind.Code()
}

// Recoverable reports whether the caller can simply re-prompt.
func (e *RuleError) Recoverable() bool {
	return e.Kind == KindPhaseViolation || e.Kind == KindIllegalMove
}

func phaseViolation(op string, want, got Phase) error {
	return &RuleError{
		Kind:   KindPhaseViolation,
		Op:     op,
		Reason: fmt.Sprintf("only legal in %s phase, current phase is %s", want, got),
	}
}

func illegalMove(op, format string, args ...any) error {
	return &RuleError{Kind: KindIllegalMove, Op: op, Reason: fmt.Sprintf(format, args...)}
}

func invariantBreach(op, format string, args ...any) error {
	return &RuleError{Kind: KindInvariantBreach, Op: op, Reason: fmt.Sprintf(format, args...)}
}

func invalidSetup(format string, args ...any) error {
	return &RuleError{Kind: KindInvalidSetup, Op: "setup", Reason: fmt.Sprintf(format, args...)}
}

// IsRecoverable reports whether err is a phase violation or illegal move.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrPhaseViolation) || errors.Is(err, ErrIllegalMove)
}
