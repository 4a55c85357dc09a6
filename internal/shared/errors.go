package shared

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrWritesRejected     = fmt.Errorf("destination rejected further writes")

	// Input validation errors
	ErrInvalidInput     = fmt.Errorf("invalid input")
	ErrMissingArgument  = fmt.Errorf("missing required argument")
	ErrInvalidURL       = fmt.Errorf("invalid playlist URL")
	ErrEmptyTrackList   = fmt.Errorf("no tracks loaded")
	ErrNoPlaylistChosen = fmt.Errorf("no destination playlist selected")
)

// ErrorKind classifies a failure by how it affects a transfer run.
type ErrorKind int

const (
	// KindUnknown is reported for errors that did not come from this module.
	KindUnknown ErrorKind = iota
	// KindUserInput means the operation never started (bad URL, empty list, nothing selected).
	KindUserInput
	// KindPrecondition is a failed playlist-level call; fatal to the run.
	KindPrecondition
	// KindPerTrackSearch is a failed search for one track; the run continues.
	KindPerTrackSearch
	// KindPerTrackAdd is a failed add for one found candidate; the run continues.
	KindPerTrackAdd
	// KindCanceled means the caller's context ended the run at a track boundary.
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindUserInput:
		return "user_input"
	case KindPrecondition:
		return "precondition"
	case KindPerTrackSearch:
		return "search_failed"
	case KindPerTrackAdd:
		return "add_failed"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error carries an [ErrorKind] together with the operation, the affected track (if any) and the cause.
type Error struct {
	Kind  ErrorKind
	Op    string
	Track string // "title - artists" of the affected track, empty for run-level errors
	Err   error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Track != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Track)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and operation name.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewTrackError wraps err with a kind, operation name and the track it concerns.
func NewTrackError(kind ErrorKind, op, track string, err error) *Error {
	return &Error{Kind: kind, Op: op, Track: track, Err: err}
}

// KindOf returns the [ErrorKind] of the first [*Error] in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err stops a run, as opposed to degrading to a per-track outcome.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch KindOf(err) {
	case KindPerTrackSearch, KindPerTrackAdd:
		return false
	default:
		return true
	}
}
