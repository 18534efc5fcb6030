package chordkeys

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Binding is one chord: the modifier state plus the key that completes it.
//
// Key is lower-cased, except for the space and dash keys which are stored as
// " " and "-". A chord made of a single modifier stores that modifier's name
// ("control", "shift", "alt" or "meta") as its key.
type Binding struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
	Key   string
}

// specialKeys holds the multi-character key names accepted in a chord token.
var specialKeys = map[string]string{
	"space":      " ",
	"dash":       "-",
	"arrowleft":  "arrowleft",
	"arrowright": "arrowright",
	"arrowup":    "arrowup",
	"arrowdown":  "arrowdown",
	"backspace":  "backspace",
	"enter":      "enter",
	"escape":     "escape",
	"capslock":   "capslock",
	"tab":        "tab",
	"home":       "home",
	"pageup":     "pageup",
	"pagedown":   "pagedown",
	"end":        "end",
	"f1":         "f1",
	"f2":         "f2",
	"f3":         "f3",
	"f4":         "f4",
	"f5":         "f5",
	"f6":         "f6",
	"f7":         "f7",
	"f8":         "f8",
	"f9":         "f9",
	"f10":        "f10",
	"f11":        "f11",
	"f12":        "f12",
}

// SpecialKeys returns the special key names of the notation in sorted order.
func SpecialKeys() []string {
	names := make([]string, 0, len(specialKeys))
	for name := range specialKeys {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse converts a single chord token such as "C-S-s", "space" or "A" into a Binding.
//
// Segments are separated by '-'. The single letters C, S, A and M set the Ctrl,
// Shift, Alt and Meta flags; any single character is also the key candidate, the
// last one winning. A special key name becomes the key wherever it appears. A
// token made of a lone modifier letter binds the modifier key itself.
//
// Parameters:
//   - token: Chord token, without surrounding whitespace.
//
// Returns:
//   - Binding: The parsed chord.
//   - error: ErrInvalidBinding (wrapped) if the token is empty, has an empty
//     segment (as in "A--" or a trailing '-'), or an unknown multi-character segment.
func Parse(token string) (Binding, error) {
	if token == "" {
		return Binding{}, fmt.Errorf("%w: empty token", ErrInvalidBinding)
	}

	var (
		b       Binding
		special bool
	)
	for _, seg := range strings.Split(token, "-") {
		if utf8.RuneCountInString(seg) == 1 {
			switch seg {
			case "C":
				b.Ctrl = true
			case "S":
				b.Shift = true
			case "A":
				b.Alt = true
			case "M":
				b.Meta = true
			}
			if !special {
				b.Key = strings.ToLower(seg)
			}
			continue
		}
		if key, ok := specialKeys[seg]; ok {
			b.Key = key
			special = true
			continue
		}
		if seg == "" {
			return Binding{}, fmt.Errorf("%w: %q: empty segment", ErrInvalidBinding, token)
		}
		return Binding{}, fmt.Errorf("%w: %q: unknown segment %q", ErrInvalidBinding, token, seg)
	}

	if utf8.RuneCountInString(token) == 1 {
		switch {
		case b.Ctrl:
			b.Key = "control"
		case b.Shift:
			b.Key = "shift"
		case b.Alt:
			b.Key = "alt"
		case b.Meta:
			b.Key = "meta"
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on error.
// Use only for known-valid tokens in initialization code.
func MustParse(token string) Binding {
	b, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseSequence splits s on whitespace and parses every token.
// Empty tokens are dropped; a sequence without any token is rejected.
func ParseSequence(s string) ([]Binding, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidBinding)
	}
	bindings := make([]Binding, 0, len(tokens))
	for _, tok := range tokens {
		b, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// String returns the canonical chord token: modifier letters in C-S-A-M order,
// then the key. It is the inverse of Parse for every Binding Parse returns.
func (b Binding) String() string {
	return formatChord(b.Ctrl, b.Shift, b.Alt, b.Meta, b.Key)
}

// FormatSequence joins the canonical tokens of bindings with single spaces.
func FormatSequence(bindings []Binding) string {
	tokens := make([]string, len(bindings))
	for i, b := range bindings {
		tokens[i] = b.String()
	}
	return strings.Join(tokens, " ")
}

// formatChord builds a chord token from modifier flags and a key identifier.
// Modifier key names are dropped from the key position since the prefix
// letter already represents them. The result is empty when neither a
// modifier nor a key remains.
func formatChord(ctrl, shift, alt, meta bool, key string) string {
	parts := make([]string, 0, 5)
	if ctrl {
		parts = append(parts, "C")
	}
	if shift {
		parts = append(parts, "S")
	}
	if alt {
		parts = append(parts, "A")
	}
	if meta {
		parts = append(parts, "M")
	}

	key = strings.ToLower(key)
	switch {
	case key == " ":
		key = "space"
	case key == "-":
		key = "dash"
	case IsModifierKey(key):
		key = ""
	}
	if key != "" {
		parts = append(parts, key)
	}
	return strings.Join(parts, "-")
}
