// internal/playback/playback.go
//
// The playback controller owns the cursor position within the fetched
// timeline, the play/pause flag, and control visibility. It never looks at
// the history itself; callers hand it the current history length.

package playback

import "math"

// State is the playback controller state.
type State struct {
	Cursor       int
	Playing      bool
	ShowControls bool
}

// New builds the initial playback state from startup options.
func New(opts Options) State {
	return State{
		Playing:      opts.Play,
		ShowControls: opts.ShowControls,
	}
}

// SetCursor rounds the slider position to the nearest integer and replaces
// the cursor unconditionally. Bounds are enforced by the slider's own
// min/max; out-of-range values from programmatic misuse degrade to the
// placeholder image at render time rather than erroring here.
func (s State) SetCursor(position float64) State {
	s.Cursor = int(math.Round(position))
	return s
}

// TogglePlaying flips the play/pause flag.
func (s State) TogglePlaying() State {
	s.Playing = !s.Playing
	return s
}

// ToggleControls flips control visibility.
func (s State) ToggleControls() State {
	s.ShowControls = !s.ShowControls
	return s
}

// Advance moves the cursor one step forward, wrapping to 0 when it reaches
// the end of the timeline. Only the advance timer tick calls this.
func (s State) Advance(historyLength int) State {
	if s.Cursor >= historyLength-1 {
		s.Cursor = 0
		return s
	}
	s.Cursor++
	return s
}

// SliderMax derives the slider upper bound for a timeline of the given
// length. An empty timeline degrades to a single fixed point at 0.
func SliderMax(historyLength int) int {
	if historyLength < 1 {
		return 0
	}
	return historyLength - 1
}
