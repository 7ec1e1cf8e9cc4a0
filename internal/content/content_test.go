package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("built-in content is invalid: %v", err)
	}

	if len(c.Headline.Phrases) != 4 {
		t.Fatalf("phrases = %q", c.Headline.Phrases)
	}
	if c.Headline.Speed() != 100*time.Millisecond || c.Headline.Pause() != 2500*time.Millisecond {
		t.Fatalf("speed/pause = %v/%v", c.Headline.Speed(), c.Headline.Pause())
	}
	if len(c.Player.Tracks) != 3 || c.Player.Volume != 0.7 {
		t.Fatalf("player = %+v", c.Player)
	}
	if len(c.Palette.Confetti) != 5 || len(c.Palette.Balloons) != 4 {
		t.Fatalf("palette = %+v", c.Palette)
	}
}

func write(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMergesOverDefault(t *testing.T) {
	path := write(t, `
name: Sam
headline:
  phrases: ["Hi Sam", "Cake!"]
player:
  tracks:
    - title: Song
      src: songs/song.mp3
video:
  src: /abs/video.mp4
`)

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Name != "Sam" {
		t.Fatalf("name = %q", c.Name)
	}
	if got := strings.Join(c.Headline.Phrases, "|"); got != "Hi Sam|Cake!" {
		t.Fatalf("phrases = %q", got)
	}
	if c.Headline.SpeedMs != 100 {
		t.Fatalf("speed_ms not kept from default: %d", c.Headline.SpeedMs)
	}
	if c.Header != "Special Birthday Girl" {
		t.Fatalf("header not kept from default: %q", c.Header)
	}

	if len(c.Player.Tracks) != 1 {
		t.Fatalf("tracks = %+v", c.Player.Tracks)
	}
	if want := filepath.Join(filepath.Dir(path), "songs", "song.mp3"); c.Player.Tracks[0].Src != want {
		t.Fatalf("track src = %q, want %q", c.Player.Tracks[0].Src, want)
	}
	if c.Video.Src != "/abs/video.mp4" {
		t.Fatalf("video src = %q", c.Video.Src)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no phrases", "headline:\n  phrases: []\n", "at least one phrase"},
		{"zero speed", "headline:\n  speed_ms: 0\n", "speed_ms"},
		{"negative pause", "headline:\n  pause_ms: -1\n", "pause_ms"},
		{"loud volume", "player:\n  volume: 1.5\n", "volume"},
		{"track without src", "player:\n  tracks:\n    - title: Nope\n", "has no src"},
		{"not yaml", "headline: [", "could not parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
}
