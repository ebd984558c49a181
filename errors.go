package gtfsrtjson

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed run.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindDecode    ErrorKind = "decode"
	KindIO        ErrorKind = "io"
	KindInternal  ErrorKind = "internal"
)

// Error is the single failure type returned by Pipeline.Run. State is the
// stage that was running when the failure happened.
type Error struct {
	Kind  ErrorKind
	State State
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s error: %v", e.State, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a pipeline *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, KindInternal for anything unclassified.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

// Describe renders err for the user. Transport failures and feed
// processing failures get distinct wording.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	cause := err
	var pe *Error
	if errors.As(err, &pe) && pe.Err != nil {
		cause = pe.Err
	}
	switch KindOf(err) {
	case KindTransport:
		return fmt.Sprintf("Error fetching GTFS data: %v", cause)
	case KindDecode:
		return fmt.Sprintf("An error occurred while processing the feed: %v", cause)
	case KindIO:
		return fmt.Sprintf("Error writing GTFS JSON output: %v", cause)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", cause)
	}
}

// Exit codes by error kind.
const (
	ExitOK        = 0
	ExitInternal  = 1
	ExitTransport = 2
	ExitDecode    = 3
	ExitIO        = 4
)

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindTransport:
		return ExitTransport
	case KindDecode:
		return ExitDecode
	case KindIO:
		return ExitIO
	default:
		return ExitInternal
	}
}

// panicError carries a value recovered from a panicking stage.
type panicError struct {
	value any
}

func (p *panicError) Error() string { return fmt.Sprintf("panic: %v", p.value) }
