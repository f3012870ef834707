package view

import (
	"github.com/7ntys/chaos-lab/internal/loader"
	"github.com/7ntys/chaos-lab/internal/menu"
)

// Phase identifies which variant a State holds.
type Phase int

const (
	// PhaseLoading means the load has not settled yet.
	PhaseLoading Phase = iota
	// PhaseFailed means the load settled with an error message.
	PhaseFailed
	// PhaseLoaded means the load settled with items and specials.
	PhaseLoaded
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "failed"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the view. The zero value is Loading.
type State struct {
	phase    Phase
	message  string
	items    []menu.Item
	specials []menu.Special
}

// Loading returns the initial state.
func Loading() State {
	return State{phase: PhaseLoading}
}

// Failed returns a settled error state. An empty message uses the loader fallback.
func Failed(message string) State {
	if message == "" {
		message = loader.FallbackMessage
	}
	return State{phase: PhaseFailed, message: message}
}

// Loaded returns a settled success state. Nil collections become empty.
func Loaded(items []menu.Item, specials []menu.Special) State {
	if items == nil {
		items = []menu.Item{}
	}
	if specials == nil {
		specials = []menu.Special{}
	}
	return State{phase: PhaseLoaded, items: items, specials: specials}
}

// Settle applies a load result. Only a Loading state transitions; a settled
// state is returned unchanged.
func (s State) Settle(r loader.Result) State {
	if s.phase != PhaseLoading {
		return s
	}
	if !r.OK() {
		return Failed(r.Message())
	}
	return Loaded(r.Items, r.Specials)
}

// Phase returns the variant.
func (s State) Phase() Phase { return s.phase }

// IsLoading reports whether the load is still pending.
func (s State) IsLoading() bool { return s.phase == PhaseLoading }

// Error returns the failure message and whether the state is Failed.
func (s State) Error() (string, bool) {
	return s.message, s.phase == PhaseFailed
}

// Items returns the loaded menu items. Empty unless Loaded.
func (s State) Items() []menu.Item {
	if s.items == nil {
		return []menu.Item{}
	}
	return s.items
}

// Specials returns the loaded specials. Empty unless Loaded.
func (s State) Specials() []menu.Special {
	if s.specials == nil {
		return []menu.Special{}
	}
	return s.specials
}
