package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/spotdemo4/birthday/internal/clock"
	"github.com/spotdemo4/birthday/internal/ctxutil"
	"github.com/spotdemo4/birthday/internal/launch"
	"github.com/spotdemo4/birthday/internal/player"
	"github.com/spotdemo4/birthday/internal/tui"
	"github.com/spotdemo4/birthday/internal/typing"
)

var version = "dev"

func main() {
	cfg, err := getConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		tui.PrintErr("error: %v", err)
		os.Exit(1)
	}
	if cfg.version {
		tui.Print("birthday v%s", version)
		return
	}

	closeLog, err := setupLog(cfg.logOutput)
	if err != nil {
		tui.PrintErr("error: could not open log: %v", err)
		os.Exit(1)
	}
	defer closeLog()

	c := cfg.content

	// Create headline animator
	animator, err := typing.New(c.Headline.Phrases, clock.Real(),
		typing.WithTypingInterval(c.Headline.Speed()),
		typing.WithPause(c.Headline.Pause()),
	)
	if err != nil {
		tui.PrintErr("error: %v", err)
		os.Exit(1)
	}
	frames := make(chan typing.Frame, 1)
	animator.Subscribe(func(f typing.Frame) {
		ctxutil.Replace(frames, f)
	})

	// Create music player
	var out player.Output
	if !cfg.noAudio {
		out, err = player.Speaker()
		if err != nil {
			tui.PrintWarn("warning: audio disabled: %v", err)
		}
	}
	music := player.New(out, c.Player.Tracks, player.WithVolume(c.Player.Volume))
	defer music.Close()

	seed := cfg.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Info("starting", "version", version, "seed", seed, "phrases", len(c.Headline.Phrases), "tracks", len(c.Player.Tracks))

	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	// Create tea
	t := tea.NewProgram(tui.New(tui.Options{
		Context: ctx,
		Content: c,
		Frames:  frames,
		Initial: animator.Frame(),
		Player:  music,
		Open:    launch.Open,
		Rand:    rand.New(rand.NewPCG(seed, seed>>1)),
		Version: version,
	}), tea.WithContext(ctx), tea.WithAltScreen())

	// Start tea
	wg.Add(1)
	var teaErr error
	go func() {
		_, err := t.Run()

		if !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
			teaErr = err
		}

		// If context not yet cancelled
		if err := ctx.Err(); err == nil {
			cancel()
		}

		wg.Done()
	}()

	// Run the headline until the program exits
	wg.Add(1)
	go func() {
		animator.Start()
		<-ctx.Done()
		animator.Stop()

		wg.Done()
	}()

	wg.Wait()

	if teaErr != nil {
		slog.Error("tui exited", "error", teaErr)
		tui.PrintErr("%v", teaErr)
		os.Exit(1)
	}
}
