package chordkeys

import (
	"fmt"
	"strings"
)

// EventType distinguishes key presses from key releases.
type EventType uint8

const (
	// KeyDown is emitted when a key is pressed.
	KeyDown EventType = iota + 1

	// KeyUp is emitted when a key is released.
	KeyUp
)

// String returns "keydown" or "keyup".
func (t EventType) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

// Modifier is a bit set of modifier keys, used to build events.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << (iota - 1)

	// ModShift indicates the Shift key.
	ModShift

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Event is a raw key event as delivered by the host.
//
// Key uses browser key naming: "Control", "Shift", "Alt", "Meta", " " for the
// space bar, "-" for dash, "ArrowUp", "F5" and so on. Comparison is case-insensitive.
type Event struct {
	Type  EventType
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
	Key   string
}

// NewEvent builds an event of the given type with the modifier flags taken from mods.
func NewEvent(t EventType, key string, mods Modifier) Event {
	return Event{
		Type:  t,
		Ctrl:  mods.Has(ModCtrl),
		Shift: mods.Has(ModShift),
		Alt:   mods.Has(ModAlt),
		Meta:  mods.Has(ModMeta),
		Key:   key,
	}
}

// Down builds a KeyDown event.
func Down(key string, mods Modifier) Event {
	return NewEvent(KeyDown, key, mods)
}

// Up builds a KeyUp event.
func Up(key string, mods Modifier) Event {
	return NewEvent(KeyUp, key, mods)
}

// Chord returns the event normalized for comparison against a Binding.
func (e Event) Chord() Binding {
	return Binding{
		Ctrl:  e.Ctrl,
		Shift: e.Shift,
		Alt:   e.Alt,
		Meta:  e.Meta,
		Key:   strings.ToLower(e.Key),
	}
}

// String returns a debug representation such as "keydown C-s".
func (e Event) String() string {
	return e.Type.String() + " " + formatChord(e.Ctrl, e.Shift, e.Alt, e.Meta, e.Key)
}

// IsModifierKey reports whether key names one of the modifier keys.
func IsModifierKey(key string) bool {
	switch strings.ToLower(key) {
	case "control", "shift", "alt", "meta":
		return true
	}
	return false
}

// Source is the host event source the Matcher and Recorder attach to.
//
// Subscribe registers fn for every key event and returns a function that
// removes it again. Implementations deliver events to listeners in
// subscription order.
type Source interface {
	Subscribe(fn func(Event)) (unsubscribe func())
}
