package chordkeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"A--",
		"--",
		"-",
		"C-",
		"C-foo",
		"Escape",
		"ctrl-s",
	}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			_, err := Parse(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBinding)
		})
	}
}

func TestParseValid(t *testing.T) {
	tests := []struct {
		token string
		want  Binding
	}{
		{"C-s", Binding{Ctrl: true, Key: "s"}},
		{"C-S-s", Binding{Ctrl: true, Shift: true, Key: "s"}},
		{"S-C-s", Binding{Ctrl: true, Shift: true, Key: "s"}},
		{"C-C-s", Binding{Ctrl: true, Key: "s"}},
		{"space", Binding{Key: " "}},
		{"dash", Binding{Key: "-"}},
		{"A-M-dash", Binding{Alt: true, Meta: true, Key: "-"}},
		{"escape", Binding{Key: "escape"}},
		{"C-f5", Binding{Ctrl: true, Key: "f5"}},
		{"a", Binding{Key: "a"}},
		{"`", Binding{Key: "`"}},
		{"s", Binding{Key: "s"}},
		{"C-S", Binding{Ctrl: true, Shift: true, Key: "s"}},
		{"S-arrowup", Binding{Shift: true, Key: "arrowup"}},
		{"space-C", Binding{Ctrl: true, Key: " "}},
		{"home-x-end", Binding{Key: "end"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLoneModifier(t *testing.T) {
	tests := []struct {
		token string
		want  Binding
	}{
		{"C", Binding{Ctrl: true, Key: "control"}},
		{"S", Binding{Shift: true, Key: "shift"}},
		{"A", Binding{Alt: true, Key: "alt"}},
		{"M", Binding{Meta: true, Key: "meta"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.token))
		})
	}
}

func TestParseSpecialKeys(t *testing.T) {
	for _, name := range SpecialKeys() {
		b, err := Parse(name)
		require.NoError(t, err, name)
		switch name {
		case "space":
			assert.Equal(t, " ", b.Key)
		case "dash":
			assert.Equal(t, "-", b.Key)
		default:
			assert.Equal(t, name, b.Key)
		}
		assert.False(t, b.Ctrl || b.Shift || b.Alt || b.Meta, name)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("--") })
}

func TestParseSequence(t *testing.T) {
	got, err := ParseSequence("  C-x   C-s ")
	require.NoError(t, err)
	assert.Equal(t, []Binding{
		{Ctrl: true, Key: "x"},
		{Ctrl: true, Key: "s"},
	}, got)

	_, err = ParseSequence("C-x A--")
	assert.ErrorIs(t, err, ErrInvalidBinding)

	_, err = ParseSequence("   ")
	assert.ErrorIs(t, err, ErrInvalidBinding)
}

func TestBindingString(t *testing.T) {
	tests := []struct {
		binding Binding
		want    string
	}{
		{Binding{Ctrl: true, Key: "s"}, "C-s"},
		{Binding{Meta: true, Alt: true, Shift: true, Ctrl: true, Key: "k"}, "C-S-A-M-k"},
		{Binding{Key: " "}, "space"},
		{Binding{Alt: true, Key: "-"}, "A-dash"},
		{Binding{Shift: true, Key: "shift"}, "S"},
		{Binding{Key: "escape"}, "escape"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.binding.String())
		})
	}
}

func TestBindingStringRoundTrip(t *testing.T) {
	tokens := []string{"C", "S", "A", "M", "C-s", "S-C-x", "A-M-dash", "space", "C-space", "f12", "M-arrowleft", "x", "C-S"}
	for _, name := range SpecialKeys() {
		tokens = append(tokens, name, "C-A-"+name)
	}

	for _, token := range tokens {
		b := MustParse(token)
		again, err := Parse(b.String())
		require.NoError(t, err, token)
		assert.Equal(t, b, again, token)
	}
}

func TestFormatSequence(t *testing.T) {
	bindings, err := ParseSequence("S-C-x  space C")
	require.NoError(t, err)
	assert.Equal(t, "C-S-x space C", FormatSequence(bindings))
}
