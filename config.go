package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spotdemo4/birthday/internal/content"
	"github.com/spotdemo4/birthday/internal/tui"
)

type config struct {
	content   *content.Content
	seed      uint64
	noAudio   bool
	logOutput string
	version   bool
}

func getConfig(args []string) (c config, err error) {
	// Media and the .env file live in the user's config dir
	mediaDir := "."
	configDir, err := os.UserConfigDir()
	if err != nil {
		tui.PrintWarn("warning: could not get config dir: %v", err)
	} else {
		mediaDir = filepath.Join(configDir, "birthday")
		envFile := filepath.Join(configDir, "birthday.env")
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			tui.PrintWarn("warning: could not load %s: %v", envFile, err)
		}
	}

	// Env vars are the defaults, flags override them
	var (
		contentPath string
		name        string
		words       string
		speed       int
		pause       int
	)
	speedEnv, speedSet := envInt("BD_SPEED_MS")
	pauseEnv, pauseSet := envInt("BD_PAUSE_MS")
	seedEnv, _ := envUint("BD_SEED")

	flags := pflag.NewFlagSet("birthday", pflag.ContinueOnError)
	flags.StringVar(&contentPath, "content", os.Getenv("BD_CONTENT"), "path to a YAML content file")
	flags.StringVar(&name, "name", os.Getenv("BD_NAME"), "name of the birthday person")
	flags.StringVar(&words, "words", os.Getenv("BD_WORDS"), "headline phrases separated by '|'")
	flags.IntVar(&speed, "speed", speedEnv, "milliseconds between typed characters")
	flags.IntVar(&pause, "pause", pauseEnv, "milliseconds to hold a typed phrase")
	flags.Uint64Var(&c.seed, "seed", seedEnv, "seed for the decorations (0 picks one)")
	flags.BoolVar(&c.noAudio, "no-audio", envBool("BD_NO_AUDIO"), "do not open the audio device")
	flags.StringVar(&c.logOutput, "log-output", os.Getenv("BD_LOG"), "write JSON log records to this file")
	flags.BoolVar(&c.version, "version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		return c, err
	}

	// Load content
	if contentPath != "" {
		c.content, err = content.Load(contentPath)
		if err != nil {
			return c, err
		}
	} else {
		c.content, err = content.Default()
		if err != nil {
			return c, err
		}
		c.content.Resolve(mediaDir)
	}

	// Apply overrides
	if name != "" {
		c.content.Name = name
		c.content.Modal.Subtitle = name + "! 💖"
		c.content.Footer = "Made with endless love for " + name
	}
	if words != "" {
		c.content.Headline.Phrases = []string{}
		for w := range strings.SplitSeq(words, "|") {
			if w = strings.TrimSpace(w); w != "" {
				c.content.Headline.Phrases = append(c.content.Headline.Phrases, w)
			}
		}
	}
	// 0 is a valid pause, so only an explicit value overrides the content
	if speedSet || flags.Changed("speed") {
		c.content.Headline.SpeedMs = speed
	}
	if pauseSet || flags.Changed("pause") {
		c.content.Headline.PauseMs = pause
	}

	if err := c.content.Validate(); err != nil {
		return c, fmt.Errorf("invalid content: %w", err)
	}

	return c, nil
}

// envInt reads an integer env var. ok is false when it is unset or invalid.
func envInt(key string) (i int, ok bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		tui.PrintWarn("warning: invalid value for '%s': %v", key, err)
		return 0, false
	}

	return i, true
}

func envUint(key string) (u uint64, ok bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}

	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		tui.PrintWarn("warning: invalid value for '%s': %v", key, err)
		return 0, false
	}

	return u, true
}

func envBool(key string) bool {
	s := os.Getenv(key)
	if s == "" {
		return false
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		tui.PrintWarn("warning: invalid value for '%s': %v", key, err)
		return false
	}

	return b
}
