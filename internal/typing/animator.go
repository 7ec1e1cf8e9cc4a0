// Package typing implements the typewriter headline: a phrase is typed
// one character at a time, held, erased twice as fast, and the next
// phrase follows, forever.
package typing

import (
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"
	"github.com/spotdemo4/birthday/internal/clock"
)

const (
	DefaultInterval = 110 * time.Millisecond
	DefaultPause    = 2000 * time.Millisecond
)

type Mode int

const (
	Typing Mode = iota
	Erasing
)

var modeName = map[Mode]string{
	Typing:  "typing",
	Erasing: "erasing",
}

func (m Mode) String() string {
	return modeName[m]
}

// Frame is a snapshot of what the animator is showing.
type Frame struct {
	Text  string
	Index int
	Mode  Mode
}

type Option func(*Animator) error

// WithTypingInterval sets the delay between typed characters. Erasing
// runs at half of it.
func WithTypingInterval(d time.Duration) Option {
	return func(a *Animator) error {
		if d <= 0 {
			return &ConfigError{Field: "typing interval", Reason: "must be positive"}
		}
		a.interval = d
		return nil
	}
}

// WithPause sets how long a fully typed phrase is held before erasing.
func WithPause(d time.Duration) Option {
	return func(a *Animator) error {
		if d < 0 {
			return &ConfigError{Field: "pause", Reason: "must not be negative"}
		}
		a.pause = d
		return nil
	}
}

type Animator struct {
	clock    clock.Clock
	words    []string
	phrases  [][]string
	interval time.Duration
	pause    time.Duration

	mu        sync.Mutex
	index     int
	shown     int
	mode      Mode
	flip      bool
	timer     *clock.Timer
	started   bool
	stopped   bool
	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func(Frame)
}

func New(words []string, clk clock.Clock, opts ...Option) (*Animator, error) {
	if len(words) == 0 {
		return nil, &ConfigError{Field: "words", Reason: "at least one phrase is required"}
	}
	if clk == nil {
		clk = clock.Real()
	}

	a := &Animator{
		clock:    clk,
		words:    append([]string(nil), words...),
		interval: DefaultInterval,
		pause:    DefaultPause,
		mode:     Typing,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	a.phrases = make([][]string, len(words))
	for i, w := range words {
		a.phrases[i] = graphemes(w)
	}

	return a, nil
}

// Start schedules the first tick. It does nothing if the animator is
// already running or has been stopped.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started || a.stopped {
		return
	}
	a.started = true
	a.timer = a.clock.AfterFunc(a.interval, a.tick)
}

// Stop cancels the pending tick. The animator keeps its last frame and
// never changes again.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	a.timer.Stop()
	a.timer = nil
	a.observers = nil
}

func (a *Animator) Frame() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame()
}

func (a *Animator) Text() string {
	return a.Frame().Text
}

// Subscribe registers fn to receive every new frame. Calls are sequential
// and never made while the animator's lock is held.
func (a *Animator) Subscribe(fn func(Frame)) (unsubscribe func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextID++
	id := a.nextID
	a.observers = append(a.observers, observer{id: id, fn: fn})

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		for i, o := range a.observers {
			if o.id == id {
				a.observers = append(a.observers[:i], a.observers[i+1:]...)
				return
			}
		}
	}
}

func (a *Animator) tick() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}

	// The pause elapsed
	if a.flip {
		a.flip = false
		a.mode = Erasing
	}

	phrase := a.phrases[a.index]
	changed := true
	delay := a.interval

	switch {
	case a.mode == Typing && a.shown == len(phrase):
		a.flip = true
		changed = false
		delay = a.pause

	case a.mode == Erasing && a.shown == 0:
		a.mode = Typing
		a.index = (a.index + 1) % len(a.phrases)

	case a.mode == Erasing:
		a.shown--
		delay = a.interval / 2

	default:
		a.shown++
	}

	frame := a.frame()
	observers := append([]observer(nil), a.observers...)
	a.mu.Unlock()

	if changed {
		for _, o := range observers {
			o.fn(frame)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.timer = a.clock.AfterFunc(delay, a.tick)
}

func (a *Animator) frame() Frame {
	return Frame{
		Text:  strings.Join(a.phrases[a.index][:a.shown], ""),
		Index: a.index,
		Mode:  a.mode,
	}
}

// graphemes splits s into user-perceived characters, so an emoji with a
// variation selector is typed and erased as one.
func graphemes(s string) []string {
	out := []string{}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
