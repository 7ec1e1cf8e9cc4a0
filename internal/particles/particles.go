// Package particles places and moves the decorative hearts, sparkles,
// confetti and balloons. Placement goes through a Rand so a fixed seed
// always draws the same screen.
package particles

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Rand is the subset of *rand.Rand (math/rand/v2) used for placement.
type Rand interface {
	Float64() float64
}

type Kind int

const (
	Heart Kind = iota
	Sparkle
	Piece
	Balloon
)

var kindName = map[Kind]string{
	Heart:    "heart",
	Sparkle:  "sparkle",
	Piece:    "confetti",
	Balloon:  "balloon",
}

func (k Kind) String() string {
	return kindName[k]
}

// Sprite is one decorative element. X and Y are fractions of the canvas.
// Looping sprites (Life == 0) repeat every Period forever; the others
// play once for Life after Delay.
type Sprite struct {
	Kind  Kind
	Glyph string
	Color lipgloss.Color

	X, Y   float64
	Drift  float64
	Delay  time.Duration
	Period time.Duration
	Life   time.Duration
}

// At returns where the sprite is after elapsed, and whether it is visible.
func (s Sprite) At(elapsed time.Duration) (x, y float64, visible bool) {
	t := elapsed - s.Delay

	switch s.Kind {
	case Heart:
		p := phase(t, s.Period)
		return s.X + s.Drift*math.Sin(2*math.Pi*p), s.Y - 0.1*math.Sin(math.Pi*p), true

	case Sparkle:
		if t < 0 {
			return s.X, s.Y, false
		}
		p := phase(t, s.Period)
		return s.X, s.Y, p > 0.2 && p < 0.8

	case Piece:
		if t < 0 || t > s.Life {
			return s.X, s.Y, false
		}
		p := float64(t) / float64(s.Life)
		return s.X + s.Drift*p, s.Y + p, p < 0.9

	case Balloon:
		if t < 0 {
			return s.X, 1, false
		}
		p := math.Min(float64(t)/float64(s.Life), 1)
		y := 1 - 1.2*easeOut(p)
		return s.X + s.Drift*math.Sin(math.Pi*p), y, y >= 0
	}

	return s.X, s.Y, false
}

// Finished reports whether a one-shot sprite is over.
func (s Sprite) Finished(elapsed time.Duration) bool {
	if s.Life == 0 {
		return false
	}
	return elapsed-s.Delay > s.Life
}

type Field struct {
	Sprites []Sprite
}

func NewField(groups ...[]Sprite) *Field {
	f := &Field{}
	for _, g := range groups {
		f.Sprites = append(f.Sprites, g...)
	}
	return f
}

// Done reports whether every sprite in the field has finished.
func (f *Field) Done(elapsed time.Duration) bool {
	for _, s := range f.Sprites {
		if !s.Finished(elapsed) {
			return false
		}
	}
	return true
}

// Render draws the field on a width x height canvas. Every row is exactly
// width cells wide.
func (f *Field) Render(elapsed time.Duration, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	for _, s := range f.Sprites {
		x, y, visible := s.At(elapsed)
		if !visible || x < 0 || x >= 1 || y < 0 || y >= 1 {
			continue
		}

		row := int(y * float64(height))
		col := int(x * float64(width))
		w := lipgloss.Width(s.Glyph)
		if w == 0 || col+w > width || !free(grid[row], col, w) {
			continue
		}

		grid[row][col] = cell{glyph: s.Glyph, color: s.Color, width: w}
		for i := 1; i < w; i++ {
			grid[row][col+i].covered = true
		}
	}

	rows := make([]string, height)
	for i, r := range grid {
		var b strings.Builder
		for _, c := range r {
			switch {
			case c.covered:
			case c.glyph == "":
				b.WriteByte(' ')
			case c.color == "":
				b.WriteString(c.glyph)
			default:
				b.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(c.glyph))
			}
		}
		rows[i] = b.String()
	}

	return rows
}

type cell struct {
	glyph   string
	color   lipgloss.Color
	width   int
	covered bool
}

func free(row []cell, col, w int) bool {
	for i := col; i < col+w; i++ {
		if row[i].glyph != "" || row[i].covered {
			return false
		}
	}
	return true
}

func phase(t, period time.Duration) float64 {
	if period <= 0 || t < 0 {
		return 0
	}
	return float64(t%period) / float64(period)
}

func easeOut(p float64) float64 {
	return 1 - (1-p)*(1-p)
}
