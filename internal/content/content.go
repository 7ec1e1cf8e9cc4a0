// Package content holds the words, tracks and palettes of the greeting.
// A built-in document is always loaded first; a user file only needs to
// carry the fields it changes.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDoc []byte

type Content struct {
	Name     string   `yaml:"name"`
	Age      int      `yaml:"age"`
	Header   string   `yaml:"header"`
	Headline Headline `yaml:"headline"`
	Message  string   `yaml:"message"`
	Video    Video    `yaml:"video"`
	Modal    Modal    `yaml:"modal"`
	Footer   string   `yaml:"footer"`
	Player   Player   `yaml:"player"`
	Palette  Palette  `yaml:"palette"`
}

type Headline struct {
	Phrases []string `yaml:"phrases"`
	SpeedMs int      `yaml:"speed_ms"`
	PauseMs int      `yaml:"pause_ms"`
}

func (h Headline) Speed() time.Duration {
	return time.Duration(h.SpeedMs) * time.Millisecond
}

func (h Headline) Pause() time.Duration {
	return time.Duration(h.PauseMs) * time.Millisecond
}

type Video struct {
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
	Button  string `yaml:"button"`
	Src     string `yaml:"src"`
}

type Modal struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Icons    []string `yaml:"icons"`
	Lines    []string `yaml:"lines"`
	Button   string   `yaml:"button"`
	Corners  []string `yaml:"corners"`
}

type Player struct {
	Caption string  `yaml:"caption"`
	Volume  float64 `yaml:"volume"`
	Tracks  []Track `yaml:"tracks"`
}

type Track struct {
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Src      string `yaml:"src"`
	Duration string `yaml:"duration"`
}

type Palette struct {
	Confetti      []string `yaml:"confetti"`
	Balloons      []string `yaml:"balloons"`
	Heart         string   `yaml:"heart"`
	Sparkle       string   `yaml:"sparkle"`
	Balloon       string   `yaml:"balloon"`
	ConfettiGlyph string   `yaml:"confetti_glyph"`
}

// Default returns the built-in content.
func Default() (*Content, error) {
	c := &Content{}
	if err := yaml.Unmarshal(defaultDoc, c); err != nil {
		return nil, fmt.Errorf("could not parse built-in content: %w", err)
	}
	return c, nil
}

// Load reads the file at path over the built-in content. Relative media
// paths in the file are taken relative to the file's directory.
func Load(path string) (*Content, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read content: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	c.Resolve(filepath.Dir(path))

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Resolve makes relative video and track paths absolute against dir.
func (c *Content) Resolve(dir string) {
	c.Video.Src = resolve(dir, c.Video.Src)
	for i := range c.Player.Tracks {
		c.Player.Tracks[i].Src = resolve(dir, c.Player.Tracks[i].Src)
	}
}

func (c *Content) Validate() error {
	errs := []error{}

	if len(c.Headline.Phrases) == 0 {
		errs = append(errs, errors.New("headline needs at least one phrase"))
	}
	if c.Headline.SpeedMs <= 0 {
		errs = append(errs, fmt.Errorf("headline speed_ms must be positive, got %d", c.Headline.SpeedMs))
	}
	if c.Headline.PauseMs < 0 {
		errs = append(errs, fmt.Errorf("headline pause_ms must not be negative, got %d", c.Headline.PauseMs))
	}
	if c.Player.Volume < 0 || c.Player.Volume > 1 {
		errs = append(errs, fmt.Errorf("player volume must be between 0 and 1, got %g", c.Player.Volume))
	}
	for i, t := range c.Player.Tracks {
		if t.Src == "" {
			errs = append(errs, fmt.Errorf("track %d (%q) has no src", i+1, t.Title))
		}
	}

	return errors.Join(errs...)
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
