// Package chordkeys recognizes keyboard chord sequences in a stream of
// key-down and key-up events, and records typed sequences back into text.
//
// # Notation
//
// A chord token is a '-' separated list of segments:
//
//   - Modifier letters: C (Ctrl), S (Shift), A (Alt), M (Meta), always upper case.
//   - A key: any single character, or one of the names returned by SpecialKeys
//     ("space", "dash", "arrowup", "enter", "f1" ... "f12", ...).
//
// Examples: "C-s", "C-S-s", "A-M-dash", "escape". A token made of a single
// modifier letter, such as "C", binds the modifier key itself.
//
// A sequence is a whitespace-separated list of tokens. "C-x C-s" fires when
// Ctrl+X is pressed and released, then Ctrl+S is pressed.
//
// # Matching and recording
//
// A Matcher attaches to a Source and calls back when a registered sequence
// is completed:
//
//	target := chordkeys.NewTarget()
//	m, _ := chordkeys.New(target)
//	h, err := m.On("C-x C-s", save)
//	...
//	m.Off(h)
//
// A Recorder attaches to the same kind of Source and converts what was typed
// into a sequence string that Parse accepts, so recording a shortcut and
// registering it round-trip.
package chordkeys
