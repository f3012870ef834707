package loader

import (
	"errors"

	"github.com/7ntys/chaos-lab/internal/menu"
)

// FallbackMessage is shown when a failure carries no message of its own.
const FallbackMessage = "Unexpected error"

// ErrBackendUnavailable is reported when either endpoint answers with a
// non-success status. The two endpoints are deliberately not distinguished.
//
//nolint:staticcheck // ST1005: the message is user-facing and shown verbatim.
var ErrBackendUnavailable = errors.New("Backend unavailable")

// Result is the outcome of a single load attempt.
// A nil Err means success; otherwise Items and Specials are empty.
type Result struct {
	Items    []menu.Item
	Specials []menu.Special
	Err      error
}

// Success builds a successful result. Nil collections are normalized to empty ones.
func Success(items []menu.Item, specials []menu.Special) Result {
	if items == nil {
		items = []menu.Item{}
	}
	if specials == nil {
		specials = []menu.Special{}
	}
	return Result{Items: items, Specials: specials}
}

// Failure builds a failed result.
func Failure(err error) Result {
	if err == nil {
		err = errors.New(FallbackMessage)
	}
	return Result{Err: err}
}

// OK reports whether the load succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the user-facing failure text, or "" on success.
func (r Result) Message() string {
	return MessageOf(r.Err)
}

// MessageOf converts err into the text displayed for a failed load.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
