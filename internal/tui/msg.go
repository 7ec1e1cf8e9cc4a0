package tui

import (
	"time"

	"github.com/spotdemo4/birthday/internal/typing"
)

const (
	modalDelay    = time.Second
	confettiTime  = 4 * time.Second
	frameInterval = 50 * time.Millisecond
	seekStep      = 5 * time.Second
	volumeStep    = 0.1
)

// FrameMsg carries a new headline frame from the animator.
type FrameMsg typing.Frame

type openModalMsg struct{}

type hideConfettiMsg struct {
	burst int
}

type animateMsg struct{}

type videoMsg struct {
	err error
}

type VideoState int

const (
	VideoHidden VideoState = iota
	VideoOpening
	VideoShown
)

var videoStateName = map[VideoState]string{
	VideoHidden:  "hidden",
	VideoOpening: "opening",
	VideoShown:   "shown",
}

func (vs VideoState) String() string {
	return videoStateName[vs]
}
