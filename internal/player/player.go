// Package player is the music player: a short track list played through
// beep with play/pause, seeking, volume and track skipping.
package player

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/spotdemo4/birthday/internal/content"
)

const DefaultVolume = 0.7

var ErrNoTrack = errors.New("player: no track loaded")

type Player struct {
	mu     sync.Mutex
	out    Output
	decode Decoder
	tracks []content.Track

	current int
	volume  float64
	playing bool
	err     error

	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	gain   *effects.Volume
}

type Option func(*Player)

func WithDecoder(d Decoder) Option {
	return func(p *Player) { p.decode = d }
}

func WithVolume(v float64) Option {
	return func(p *Player) { p.volume = clamp(v) }
}

// State is a snapshot for rendering.
type State struct {
	Track    content.Track
	Index    int
	Count    int
	Playing  bool
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Err      error
}

// New builds a player over tracks. A nil out gives a player that shows
// the track list but never loads audio.
func New(out Output, tracks []content.Track, opts ...Option) *Player {
	p := &Player{
		out:    out,
		decode: Decode,
		tracks: append([]content.Track(nil), tracks...),
		volume: DefaultVolume,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Toggle plays or pauses the current track, loading it first if needed.
// A track that has played to the end starts again from the beginning.
func (p *Player) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensure(); err != nil {
		return err
	}

	p.out.Lock()
	ended := p.stream.Position() >= p.stream.Len()
	if !ended {
		p.ctrl.Paused = !p.ctrl.Paused
		p.playing = !p.ctrl.Paused
	}
	p.out.Unlock()

	if ended {
		return p.replay()
	}
	return nil
}

// replay rewinds the current track and hands it to the output again, since
// the mixer drops a streamer once it is drained.
func (p *Player) replay() error {
	p.out.Clear()

	p.out.Lock()
	err := p.stream.Seek(0)
	p.ctrl.Paused = err != nil
	p.playing = err == nil
	p.out.Unlock()

	if err != nil {
		return fmt.Errorf("could not rewind %q: %w", p.tracks[p.current].Title, err)
	}
	p.out.Play(p.gain)
	return nil
}

// Next moves to the following track, wrapping around, and stops playback.
func (p *Player) Next() error {
	return p.Select(p.index() + 1)
}

// Prev moves to the previous track, wrapping around, and stops playback.
func (p *Player) Prev() error {
	return p.Select(p.index() - 1)
}

// Select loads track i (taken modulo the track count) paused.
func (p *Player) Select(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.tracks) == 0 {
		return ErrNoTrack
	}

	p.unload()
	p.current = ((i % len(p.tracks)) + len(p.tracks)) % len(p.tracks)
	p.playing = false
	p.err = nil

	return p.ensure()
}

// Seek jumps to a fraction (0 to 1) of the current track.
func (p *Player) Seek(fraction float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return ErrNoTrack
	}

	p.out.Lock()
	defer p.out.Unlock()
	return p.stream.Seek(int(clamp(fraction) * float64(p.stream.Len())))
}

// SeekBy moves the playhead by d, staying inside the track.
func (p *Player) SeekBy(d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return ErrNoTrack
	}

	p.out.Lock()
	defer p.out.Unlock()

	pos := p.stream.Position() + p.format.SampleRate.N(d)
	pos = max(0, min(pos, p.stream.Len()))
	return p.stream.Seek(pos)
}

// SetVolume sets the volume, clamped to 0..1.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = clamp(v)
	if p.gain == nil {
		return
	}

	p.out.Lock()
	p.applyVolume()
	p.out.Unlock()
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := State{
		Index:  p.current,
		Count:  len(p.tracks),
		Volume: p.volume,
		Err:    p.err,
	}
	if len(p.tracks) > 0 {
		s.Track = p.tracks[p.current]
	}
	if p.stream == nil {
		return s
	}

	p.out.Lock()
	pos, length := p.stream.Position(), p.stream.Len()
	p.out.Unlock()

	s.Position = p.format.SampleRate.D(pos)
	s.Duration = p.format.SampleRate.D(length)
	s.Playing = p.playing && pos < length

	return s
}

// Progress is the played fraction of the current track, 0 when its length
// is unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Position) / float64(s.Duration)
}

// Close stops playback and releases the current track.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unload()
	p.playing = false
}

func (p *Player) index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// ensure loads the current track if nothing is loaded.
func (p *Player) ensure() error {
	if p.stream != nil {
		return nil
	}
	if p.err != nil {
		return p.err
	}
	if p.out == nil || len(p.tracks) == 0 {
		return ErrNoTrack
	}

	track := p.tracks[p.current]
	stream, format, err := p.decode(track.Src)
	if err != nil {
		p.err = fmt.Errorf("could not load %q: %w", track.Title, err)
		return p.err
	}

	var s beep.Streamer = stream
	if rate := p.out.SampleRate(); format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, stream)
	}

	p.stream = stream
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: true}
	p.gain = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolume()
	p.out.Play(p.gain)

	return nil
}

func (p *Player) unload() {
	if p.stream == nil {
		return
	}

	p.out.Lock()
	p.ctrl.Paused = true
	p.out.Unlock()
	p.out.Clear()

	p.stream.Close()
	p.stream = nil
	p.ctrl = nil
	p.gain = nil
}

// applyVolume maps the linear volume onto the base-2 gain of effects.Volume.
func (p *Player) applyVolume() {
	p.gain.Silent = p.volume == 0
	if p.volume > 0 {
		p.gain.Volume = math.Log2(p.volume)
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

// FormatTime renders d as m:ss.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
