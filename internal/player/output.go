package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Output is where decoded audio goes. Lock and Unlock guard changes to a
// streamer that is already playing.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Speaker initialises the sound card once and returns it as an Output.
// It fails on machines without an audio device.
func Speaker() (Output, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return speakerOutput{}, nil
}

func (speakerOutput) SampleRate() beep.SampleRate { return sampleRate }
func (speakerOutput) Play(s beep.Streamer)        { speaker.Play(s) }
func (speakerOutput) Clear()                      { speaker.Clear() }
func (speakerOutput) Lock()                       { speaker.Lock() }
func (speakerOutput) Unlock()                     { speaker.Unlock() }
