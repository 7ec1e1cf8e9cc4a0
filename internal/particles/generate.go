package particles

import (
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	heartColor   = lipgloss.Color("#f472b6")
	sparkleColor = lipgloss.Color("#c084fc")

	ConfettiLife = 4 * time.Second
	BalloonLife  = 3 * time.Second
)

// Hearts float slowly up and down behind the page.
func Hearts(r Rand, n int, glyph string) []Sprite {
	out := make([]Sprite, n)
	for i := range out {
		out[i] = Sprite{
			Kind:   Heart,
			Glyph:  glyph,
			Color:  heartColor,
			X:      r.Float64(),
			Y:      r.Float64(),
			Drift:  math.Sin(float64(i)) * 0.03,
			Delay:  between(r, 0, 5*time.Second),
			Period: between(r, 15*time.Second, 25*time.Second),
		}
	}
	return out
}

// Sparkles blink in and out at random spots.
func Sparkles(r Rand, n int, glyph string) []Sprite {
	out := make([]Sprite, n)
	for i := range out {
		out[i] = Sprite{
			Kind:   Sparkle,
			Glyph:  glyph,
			Color:  sparkleColor,
			X:      r.Float64(),
			Y:      r.Float64(),
			Delay:  between(r, 0, 8*time.Second),
			Period: between(r, 3*time.Second, 7*time.Second),
		}
	}
	return out
}

// Confetti falls once from the top, cycling through colors.
func Confetti(r Rand, n int, glyph string, colors []string) []Sprite {
	out := make([]Sprite, n)
	for i := range out {
		out[i] = Sprite{
			Kind:  Piece,
			Glyph: glyph,
			Color: pick(colors, i),
			X:     r.Float64(),
			Y:     0,
			Drift: math.Sin(float64(i)) * 0.1,
			Delay: between(r, 0, 2*time.Second),
			Life:  ConfettiLife,
		}
	}
	return out
}

// Balloons rise in a staggered row across the screen.
func Balloons(n int, glyph string, colors []string) []Sprite {
	out := make([]Sprite, n)
	for i := range out {
		out[i] = Sprite{
			Kind:  Balloon,
			Glyph: glyph,
			Color: pick(colors, i),
			X:     float64(10+i*7) / 100,
			Y:     1,
			Drift: math.Sin(float64(i)*0.5) * 0.05,
			Delay: time.Duration(i) * 100 * time.Millisecond,
			Life:  BalloonLife,
		}
	}
	return out
}

func between(r Rand, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(r.Float64()*float64(hi-lo))
}

func pick(colors []string, i int) lipgloss.Color {
	if len(colors) == 0 {
		return ""
	}
	return lipgloss.Color(colors[i%len(colors)])
}
