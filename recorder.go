package chordkeys

import (
	"slices"
	"strings"
	"sync"
)

// Recorder captures raw key events from a Source and turns them back into
// the binding notation. It works independently of any Matcher.
type Recorder struct {
	mu          sync.Mutex
	src         Source
	recording   bool
	unsubscribe func()
	events      []Event
}

// NewRecorder creates a Recorder for src. It does not capture until Start is called.
func NewRecorder(src Source) *Recorder {
	return &Recorder{src: src}
}

// Start begins appending every event of the source to the capture buffer.
// Calling Start while recording has no effect.
func (r *Recorder) Start() {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return
	}
	r.recording = true
	r.mu.Unlock()

	unsubscribe := r.src.Subscribe(r.record)

	r.mu.Lock()
	if !r.recording {
		// Stopped while subscribing.
		r.mu.Unlock()
		unsubscribe()
		return
	}
	r.unsubscribe = unsubscribe
	r.mu.Unlock()
}

// Stop ends the capture, clears the buffer and returns the captured
// sequence in the binding notation.
//
// Returns:
//   - string: Space-separated chord tokens, in the order the keys were pressed.
func (r *Recorder) Stop() string {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.recording = false
	events := r.events
	r.events = nil
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	return Reconstruct(events)
}

// Recording reports whether the recorder is capturing.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Events returns a copy of the events captured so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.events = append(r.events, e)
	}
}

// Reconstruct converts a raw event log into the binding notation.
//
// A key press counts as a chord when the next event in the log is a key
// release, so only the last of several keys held together is kept, and
// modifier presses leading up to a chord are dropped. A key press ending
// the log is kept as well. Modifier flags become the C-S-A-M prefix and a
// modifier key name never appears as the chord's key.
//
// Parameters:
//   - events: Raw events in the order they were delivered.
//
// Returns:
//   - string: Chord tokens joined with single spaces.
func Reconstruct(events []Event) string {
	var chords []string
	for slow, fast := 0, 1; slow < len(events); slow, fast = slow+1, fast+1 {
		e := events[slow]
		if e.Type != KeyDown {
			continue
		}
		if fast < len(events) && events[fast].Type != KeyUp {
			continue
		}
		chords = append(chords, formatChord(e.Ctrl, e.Shift, e.Alt, e.Meta, e.Key))
	}
	return strings.Join(chords, " ")
}
