package main

import (
	"errors"
	"os"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/tischda/chordkeys"
)

// terminalSource turns the key events of a tcell screen into chordkeys events.
//
// Terminals only report key presses, so every press is dispatched as a
// keydown immediately followed by the matching keyup. Modifier keys pressed
// on their own are never reported.
type terminalSource struct {
	*chordkeys.Target
	screen tcell.Screen
}

func newTerminalSource(screen tcell.Screen) *terminalSource {
	return &terminalSource{
		Target: chordkeys.NewTarget(),
		screen: screen,
	}
}

// openScreen initializes a tcell screen on the controlling terminal.
//
// Returns:
//   - tcell.Screen: The initialized screen; call Fini when done.
//   - error: Non-nil if stdin is not a terminal or the screen cannot be initialized.
func openScreen() (tcell.Screen, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()
	return screen, nil
}

// run dispatches key events until stop returns true for a key event, the
// screen is finalized or an interrupt event is posted. The key event that
// stops the loop is not dispatched.
//
// Parameters:
//   - stop: Reports whether a key event ends the loop; may be nil.
func (s *terminalSource) run(stop func(ev *tcell.EventKey) bool) {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventInterrupt:
			return
		case *tcell.EventKey:
			if stop != nil && stop(ev) {
				return
			}
			for _, e := range convertKey(ev) {
				s.Dispatch(e)
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// isCtrlC reports whether ev is Ctrl+C.
func isCtrlC(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		unicode.ToLower(ev.Rune()) == 'c'
}

// convertKey converts a tcell key event to a keydown/keyup pair.
// Returns nil for keys with no name in browser key naming.
func convertKey(ev *tcell.EventKey) []chordkeys.Event {
	mods := convertMod(ev.Modifiers())
	name := ""

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods |= chordkeys.ModShift
		}
		name = string(r)
	case tcell.KeyEnter:
		name = "Enter"
	case tcell.KeyTab:
		name = "Tab"
	case tcell.KeyBacktab:
		name = "Tab"
		mods |= chordkeys.ModShift
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "Backspace"
	case tcell.KeyEscape:
		name = "Escape"
	case tcell.KeyCtrlSpace:
		name = " "
		mods |= chordkeys.ModCtrl
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			name = string(rune('a' + (k - tcell.KeyCtrlA)))
			mods |= chordkeys.ModCtrl
			break
		}
		name = keyNames[k]
	}
	if name == "" {
		return nil
	}
	return []chordkeys.Event{
		chordkeys.Down(name, mods),
		chordkeys.Up(name, mods),
	}
}

// keyNames maps tcell keys to browser key names.
var keyNames = map[tcell.Key]string{
	tcell.KeyUp:     "ArrowUp",
	tcell.KeyDown:   "ArrowDown",
	tcell.KeyLeft:   "ArrowLeft",
	tcell.KeyRight:  "ArrowRight",
	tcell.KeyHome:   "Home",
	tcell.KeyEnd:    "End",
	tcell.KeyPgUp:   "PageUp",
	tcell.KeyPgDn:   "PageDown",
	tcell.KeyInsert: "Insert",
	tcell.KeyDelete: "Delete",
	tcell.KeyF1:     "F1",
	tcell.KeyF2:     "F2",
	tcell.KeyF3:     "F3",
	tcell.KeyF4:     "F4",
	tcell.KeyF5:     "F5",
	tcell.KeyF6:     "F6",
	tcell.KeyF7:     "F7",
	tcell.KeyF8:     "F8",
	tcell.KeyF9:     "F9",
	tcell.KeyF10:    "F10",
	tcell.KeyF11:    "F11",
	tcell.KeyF12:    "F12",
}

// convertMod converts tcell modifiers to chordkeys modifiers.
func convertMod(m tcell.ModMask) chordkeys.Modifier {
	var mods chordkeys.Modifier
	if m&tcell.ModCtrl != 0 {
		mods |= chordkeys.ModCtrl
	}
	if m&tcell.ModShift != 0 {
		mods |= chordkeys.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= chordkeys.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= chordkeys.ModMeta
	}
	return mods
}

// drawStatus writes msg on the last line of the screen.
func drawStatus(screen tcell.Screen, msg string) {
	w, h := screen.Size()
	if h == 0 {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(msg)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		screen.SetContent(x, h-1, r, nil, style)
	}
	screen.Show()
}

// statusWriter is an io.Writer showing each write on the status line.
type statusWriter struct {
	screen tcell.Screen
}

func (w statusWriter) Write(p []byte) (int, error) {
	drawStatus(w.screen, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
