package chordkeys

import (
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"sync"
)

// Handle identifies a registration made with On or Once.
type Handle uint64

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger the matcher reports registrations and
// completed sequences to. The default logger discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.logger = l
		}
	}
}

// BindOption configures a single registration.
type BindOption func(*registration)

// OnComboChange sets the progress callback of a registration. It is called
// with the new cursor after every matching chord that does not complete the
// sequence, and with 0 after every key press that does not match.
func OnComboChange(fn func(combo int)) BindOption {
	return func(r *registration) {
		r.onCombo = fn
	}
}

type registration struct {
	handle   Handle
	sequence string
	bindings []Binding
	combo    int
	callback func()
	onCombo  func(int)
	once     bool
	removed  bool
}

// Matcher recognizes registered chord sequences in the key events of a Source.
//
// Every registration owns its own progress cursor. A chord after the first
// only advances the cursor if the previous chord's key was released in
// between (or, for a modifier chord, was the last modifier pressed), so that
// pressing two keys together never counts as a two-step sequence.
//
// Callbacks run synchronously on the goroutine that delivers the event, with
// no lock held: they may call On, Off or Disable. Panics raised by callbacks
// are not recovered; registrations later in the iteration order are not
// visited for that event.
type Matcher struct {
	mu      sync.Mutex
	regs    map[Handle]*registration
	order   []*registration
	nextID  Handle
	prevKey string
	prevMod string
	enabled bool
	logger  *log.Logger

	recorder    *Recorder
	unsubscribe func()
}

// New creates a Matcher attached to src. The matcher starts enabled.
//
// Parameters:
//   - src: Host event source delivering key events.
//   - opts: Optional settings such as WithLogger.
//
// Returns:
//   - *Matcher: The attached matcher; call Close to detach it.
//   - error: ErrNoSource if src is nil.
func New(src Source, opts ...Option) (*Matcher, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	m := &Matcher{
		regs:     make(map[Handle]*registration),
		enabled:  true,
		logger:   log.New(io.Discard, "", 0),
		recorder: NewRecorder(src),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unsubscribe = src.Subscribe(m.HandleEvent)
	return m, nil
}

// On registers callback for sequence, a whitespace-separated list of chord
// tokens such as "C-x C-s". Nothing is registered if any token is invalid.
//
// Parameters:
//   - sequence: Chord sequence in the binding notation.
//   - callback: Called each time the whole sequence is completed; may be nil.
//   - opts: Optional settings such as OnComboChange.
//
// Returns:
//   - Handle: Identifies the registration for Off and Rebind.
//   - error: ErrInvalidBinding (wrapped) if the sequence cannot be parsed.
func (m *Matcher) On(sequence string, callback func(), opts ...BindOption) (Handle, error) {
	return m.register(sequence, callback, false, opts)
}

// Once is like On, but the registration removes itself after its first completion.
func (m *Matcher) Once(sequence string, callback func(), opts ...BindOption) (Handle, error) {
	return m.register(sequence, callback, true, opts)
}

func (m *Matcher) register(sequence string, callback func(), once bool, opts []BindOption) (Handle, error) {
	bindings, err := ParseSequence(sequence)
	if err != nil {
		return 0, err
	}
	if callback == nil {
		callback = func() {}
	}
	r := &registration{
		sequence: sequence,
		bindings: bindings,
		callback: callback,
		onCombo:  func(int) {},
		once:     once,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.onCombo == nil {
		r.onCombo = func(int) {}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.handle = m.nextID
	m.regs[r.handle] = r
	m.order = append(m.order, r)
	m.logger.Printf("registered %d: %s", r.handle, FormatSequence(bindings))
	return r.handle, nil
}

// Rebind replaces the sequence of an existing registration. The registration
// keeps its callbacks and its place in the iteration order; its progress is reset.
//
// Parameters:
//   - h: Handle returned by On or Once.
//   - sequence: New chord sequence.
//
// Returns:
//   - error: ErrInvalidBinding (wrapped) for an invalid sequence, ErrUnknownHandle
//     if h is not registered. The registration is unchanged on error.
func (m *Matcher) Rebind(h Handle, sequence string) error {
	bindings, err := ParseSequence(sequence)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regs[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	r.sequence = sequence
	r.bindings = bindings
	r.combo = 0
	m.logger.Printf("rebound %d: %s", h, FormatSequence(bindings))
	return nil
}

// Off removes a registration. Unknown handles are ignored.
func (m *Matcher) Off(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.regs[h]; ok {
		m.remove(r)
		m.logger.Printf("removed %d", h)
	}
}

// remove must be called with m.mu held.
func (m *Matcher) remove(r *registration) {
	r.removed = true
	delete(m.regs, r.handle)
	m.order = slices.DeleteFunc(m.order, func(o *registration) bool {
		return o == r
	})
}

// Progress returns the progress cursor of a registration, or -1 if h is not registered.
func (m *Matcher) Progress(h Handle) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.regs[h]; ok {
		return r.combo
	}
	return -1
}

// Len returns the number of registrations.
func (m *Matcher) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Enable resumes event processing.
func (m *Matcher) Enable() {
	m.mu.Lock()
	m.enabled = true
	m.mu.Unlock()
}

// Disable suspends event processing. Registrations and their progress are kept.
func (m *Matcher) Disable() {
	m.mu.Lock()
	m.enabled = false
	m.mu.Unlock()
}

// Enabled reports whether events are being processed.
func (m *Matcher) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// StartRecord starts capturing raw events from the matcher's source,
// whether or not the matcher is enabled.
func (m *Matcher) StartRecord() {
	m.recorder.Start()
}

// StopRecord stops capturing and returns the captured events in the binding notation.
func (m *Matcher) StopRecord() string {
	return m.recorder.Stop()
}

// Close detaches the matcher and its recorder from the source.
func (m *Matcher) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	m.recorder.Stop()
}

// HandleEvent processes one key event. It is the listener New attaches to
// the source; hosts with their own dispatch loop may call it directly.
func (m *Matcher) HandleEvent(e Event) {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return
	}
	if e.Type == KeyUp {
		if !IsModifierKey(e.Key) {
			m.prevKey = strings.ToLower(e.Key)
		}
		m.mu.Unlock()
		return
	}
	if e.Type != KeyDown {
		m.mu.Unlock()
		return
	}
	prevKey, prevMod := m.prevKey, m.prevMod
	order := slices.Clone(m.order)
	m.mu.Unlock()

	chord := e.Chord()
	for _, r := range order {
		m.step(r, chord, prevKey, prevMod)
	}

	if IsModifierKey(e.Key) {
		m.mu.Lock()
		m.prevMod = chord.Key
		m.mu.Unlock()
	}
}

// step feeds one key press to a registration and runs its callbacks.
func (m *Matcher) step(r *registration, chord Binding, prevKey, prevMod string) {
	var (
		progress func(int)
		combo    int
		complete func()
	)

	m.mu.Lock()
	if r.removed {
		m.mu.Unlock()
		return
	}
	if r.bindings[r.combo] == chord && (r.combo == 0 ||
		r.bindings[r.combo-1].Key == prevKey ||
		r.bindings[r.combo-1].Key == prevMod) {
		r.combo++
		if r.combo == len(r.bindings) {
			r.combo = 0
			complete = r.callback
			m.logger.Printf("completed %d: %s", r.handle, FormatSequence(r.bindings))
			if r.once {
				m.remove(r)
			}
		} else {
			progress, combo = r.onCombo, r.combo
		}
	} else {
		r.combo = 0
		progress, combo = r.onCombo, 0
	}
	m.mu.Unlock()

	if progress != nil {
		progress(combo)
	}
	if complete != nil {
		complete()
	}
}
