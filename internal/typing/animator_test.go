package typing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spotdemo4/birthday/internal/clock"
)

var epoch = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

type recorder struct {
	frames []Frame
}

func (r *recorder) observe(f Frame) {
	r.frames = append(r.frames, f)
}

func start(t *testing.T, words []string, opts ...Option) (*Animator, *clock.FakeClock, *recorder) {
	t.Helper()

	c := clock.Fake(epoch)
	a, err := New(words, c, opts...)
	if err != nil {
		t.Fatalf("New(%q) error: %v", words, err)
	}

	r := &recorder{}
	a.Subscribe(r.observe)
	a.Start()

	return a, c, r
}

func expect(t *testing.T, a *Animator, text string, index int, mode Mode) {
	t.Helper()

	f := a.Frame()
	if f.Text != text || f.Index != index || f.Mode != mode {
		t.Fatalf("frame = {%q %d %s}, want {%q %d %s}", f.Text, f.Index, f.Mode, text, index, mode)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		opts  []Option
		field string
	}{
		{"nil words", nil, nil, "words"},
		{"empty words", []string{}, nil, "words"},
		{"zero interval", []string{"a"}, []Option{WithTypingInterval(0)}, "typing interval"},
		{"negative interval", []string{"a"}, []Option{WithTypingInterval(-time.Second)}, "typing interval"},
		{"negative pause", []string{"a"}, []Option{WithPause(-1)}, "pause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clock.Fake(epoch)
			a, err := New(tt.words, c, tt.opts...)
			if a != nil {
				t.Fatalf("New returned an animator")
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Fatalf("field = %q, want %q", cfgErr.Field, tt.field)
			}
			if c.Pending() != 0 {
				t.Fatalf("rejected config left %d timers pending", c.Pending())
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	a, err := New([]string{"x"}, clock.Fake(epoch))
	if err != nil {
		t.Fatal(err)
	}
	if a.interval != DefaultInterval || a.pause != DefaultPause {
		t.Fatalf("defaults = %v/%v", a.interval, a.pause)
	}
	expect(t, a, "", 0, Typing)
}

func TestNothingHappensBeforeStart(t *testing.T) {
	c := clock.Fake(epoch)
	a, err := New([]string{"AB"}, c)
	if err != nil {
		t.Fatal(err)
	}
	c.Advance(time.Minute)
	expect(t, a, "", 0, Typing)
}

func TestSinglePhraseCycle(t *testing.T) {
	a, c, _ := start(t, []string{"AB"})

	c.Advance(110 * time.Millisecond)
	expect(t, a, "A", 0, Typing)
	c.Advance(110 * time.Millisecond)
	expect(t, a, "AB", 0, Typing)

	// Pause tick, then the full hold
	c.Advance(110 * time.Millisecond)
	expect(t, a, "AB", 0, Typing)
	c.Advance(1999 * time.Millisecond)
	expect(t, a, "AB", 0, Typing)

	c.Advance(time.Millisecond)
	expect(t, a, "A", 0, Erasing)
	c.Advance(55 * time.Millisecond)
	expect(t, a, "", 0, Erasing)

	// Wraps back to the only phrase
	c.Advance(55 * time.Millisecond)
	expect(t, a, "", 0, Typing)
	c.Advance(110 * time.Millisecond)
	expect(t, a, "A", 0, Typing)
}

func TestAdvancesToNextPhrase(t *testing.T) {
	a, c, _ := start(t, []string{"HI", "YO"},
		WithTypingInterval(100*time.Millisecond),
		WithPause(time.Second),
	)

	c.Advance(200 * time.Millisecond)
	expect(t, a, "HI", 0, Typing)

	c.Advance(100 * time.Millisecond) // pause begins
	c.Advance(time.Second)            // first erase
	expect(t, a, "H", 0, Erasing)
	c.Advance(50 * time.Millisecond)
	expect(t, a, "", 0, Erasing)

	c.Advance(50 * time.Millisecond)
	expect(t, a, "", 1, Typing)

	c.Advance(100 * time.Millisecond)
	expect(t, a, "Y", 1, Typing)
	c.Advance(100 * time.Millisecond)
	expect(t, a, "YO", 1, Typing)
}

func TestZeroPause(t *testing.T) {
	a, c, _ := start(t, []string{"A"}, WithTypingInterval(10*time.Millisecond), WithPause(0))

	c.Advance(10 * time.Millisecond)
	expect(t, a, "A", 0, Typing)

	// The pause tick falls due immediately after the hold tick
	c.Advance(10 * time.Millisecond)
	expect(t, a, "", 0, Erasing)
}

func TestSingleCharacterPhrase(t *testing.T) {
	a, c, r := start(t, []string{"X", "Y"}, WithTypingInterval(20*time.Millisecond), WithPause(100*time.Millisecond))

	c.Advance(20 * time.Millisecond)
	expect(t, a, "X", 0, Typing)

	c.Advance(20 * time.Millisecond)
	c.Advance(100 * time.Millisecond)
	expect(t, a, "", 0, Erasing)

	c.Advance(10 * time.Millisecond)
	expect(t, a, "", 1, Typing)

	var texts []string
	for _, f := range r.frames {
		texts = append(texts, f.Text)
	}
	if got := strings.Join(texts, ","); got != "X,," {
		t.Fatalf("frames = %q", got)
	}
}

func TestGraphemeClusters(t *testing.T) {
	a, c, _ := start(t, []string{"I ❤️"}, WithTypingInterval(10*time.Millisecond))

	c.Advance(10 * time.Millisecond)
	expect(t, a, "I", 0, Typing)
	c.Advance(10 * time.Millisecond)
	expect(t, a, "I ", 0, Typing)
	c.Advance(10 * time.Millisecond)
	expect(t, a, "I ❤️", 0, Typing)
}

func TestTextIsAlwaysPrefix(t *testing.T) {
	words := []string{"Happy Birthday", "You're 18 Now!", "I Love You ❤️", "", "x"}
	a, c, r := start(t, words,
		WithTypingInterval(30*time.Millisecond),
		WithPause(200*time.Millisecond),
	)

	for range 4000 {
		c.Advance(5 * time.Millisecond)

		f := a.Frame()
		if f.Index < 0 || f.Index >= len(words) {
			t.Fatalf("index %d out of range", f.Index)
		}
		if !strings.HasPrefix(words[f.Index], f.Text) {
			t.Fatalf("%q is not a prefix of %q", f.Text, words[f.Index])
		}
	}

	for _, f := range r.frames {
		if !strings.HasPrefix(words[f.Index], f.Text) {
			t.Fatalf("observed %q, not a prefix of %q", f.Text, words[f.Index])
		}
	}
}

func TestWraparound(t *testing.T) {
	words := []string{"ab", "c", "def"}
	_, c, r := start(t, words,
		WithTypingInterval(10*time.Millisecond),
		WithPause(50*time.Millisecond),
	)

	c.Advance(10 * time.Second)

	cycles := 0
	last := 0
	for _, f := range r.frames {
		if f.Index != last {
			cycles++
			last = f.Index
			if f.Index != cycles%len(words) {
				t.Fatalf("after %d cycles index = %d, want %d", cycles, f.Index, cycles%len(words))
			}
		}
	}
	if cycles < 2*len(words) {
		t.Fatalf("only %d cycles observed", cycles)
	}
}

func TestDeterministic(t *testing.T) {
	run := func() []Frame {
		_, c, r := start(t, []string{"HI", "YO"}, WithTypingInterval(40*time.Millisecond), WithPause(300*time.Millisecond))
		for range 200 {
			c.Advance(7 * time.Millisecond)
		}
		return r.frames
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("runs produced %d and %d frames", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("frame %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestStopFreezes(t *testing.T) {
	a, c, r := start(t, []string{"HELLO"})

	c.Advance(330 * time.Millisecond)
	expect(t, a, "HEL", 0, Typing)

	a.Stop()
	seen := len(r.frames)

	c.Advance(time.Hour)
	expect(t, a, "HEL", 0, Typing)
	if len(r.frames) != seen {
		t.Fatalf("observer called after Stop")
	}
	if c.Pending() != 0 {
		t.Fatalf("Pending() = %d after Stop", c.Pending())
	}

	// A stopped animator stays stopped
	a.Start()
	c.Advance(time.Hour)
	expect(t, a, "HEL", 0, Typing)
}

func TestStopDuringPause(t *testing.T) {
	a, c, _ := start(t, []string{"A"}, WithTypingInterval(10*time.Millisecond))

	c.Advance(20 * time.Millisecond)
	a.Stop()
	c.Advance(time.Minute)
	expect(t, a, "A", 0, Typing)
}

func TestSingleOutstandingTimer(t *testing.T) {
	a, c, _ := start(t, []string{"AB", "CD"}, WithTypingInterval(10*time.Millisecond), WithPause(30*time.Millisecond))
	a.Start()

	for range 100 {
		if c.Pending() != 1 {
			t.Fatalf("Pending() = %d, want 1", c.Pending())
		}
		c.Advance(3 * time.Millisecond)
	}
}

func TestUnsubscribe(t *testing.T) {
	a, c, r := start(t, []string{"ABC"}, WithTypingInterval(10*time.Millisecond))

	other := &recorder{}
	unsubscribe := a.Subscribe(other.observe)

	c.Advance(10 * time.Millisecond)
	unsubscribe()
	c.Advance(20 * time.Millisecond)

	if len(other.frames) != 1 {
		t.Fatalf("unsubscribed observer saw %d frames, want 1", len(other.frames))
	}
	if len(r.frames) != 3 {
		t.Fatalf("observer saw %d frames, want 3", len(r.frames))
	}
}

func TestModeString(t *testing.T) {
	if Typing.String() != "typing" || Erasing.String() != "erasing" {
		t.Fatalf("unexpected mode names %q %q", Typing, Erasing)
	}
}
