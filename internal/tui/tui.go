package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spotdemo4/birthday/internal/content"
	"github.com/spotdemo4/birthday/internal/ctxutil"
	"github.com/spotdemo4/birthday/internal/particles"
	"github.com/spotdemo4/birthday/internal/player"
	"github.com/spotdemo4/birthday/internal/typing"
)

var (
	FooterStyle = lipgloss.NewStyle().Align(lipgloss.Center)

	TextStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"})
	SubtextStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"})
	AltTextStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5c5f77", Dark: "#bac2de"})
	AccentTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#db2777", Dark: "#f472b6"})
	HeadlineStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#c026d3", Dark: "#f0abfc"})

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#f9a8d4", Dark: "#db2777"}).
			Padding(1, 3).
			Align(lipgloss.Center)
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#f9a8d4", Dark: "#ec4899"}).
			Padding(1, 4).
			Align(lipgloss.Center)
	AccentButtonStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1).
				Background(lipgloss.AdaptiveColor{Light: "#ec4899", Dark: "#f472b6"}).
				Foreground(lipgloss.AdaptiveColor{Light: "#fdf2f8", Dark: "#11111b"})
)

type Options struct {
	Context context.Context
	Content *content.Content

	// Frames delivers headline frames; Initial is shown until the first one.
	Frames  chan typing.Frame
	Initial typing.Frame

	Player  *player.Player
	Open    func(ctx context.Context, path string) error
	Rand    particles.Rand
	Version string
}

type Tui struct {
	ctx     context.Context
	content *content.Content
	frames  chan typing.Frame
	player  *player.Player
	open    func(ctx context.Context, path string) error
	rand    particles.Rand
	version string

	spinner   spinner.Model
	stopwatch stopwatch.Model
	progress  progress.Model
	help      help.Model
	keys      keyMap
	picker    Picker
	width     *int
	height    *int

	frame      typing.Frame
	background *particles.Field
	balloons   *particles.Field
	confetti   *particles.Field
	elapsed    time.Duration
	opened     time.Duration
	burst      int

	showModal  bool
	showPlayer bool
	picking    bool
	video      VideoState
	status     string
}

func New(o Options) Tui {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Player == nil {
		o.Player = player.New(nil, o.Content.Player.Tracks)
	}

	c := o.Content
	background := particles.NewField(
		particles.Hearts(o.Rand, 20, c.Palette.Heart),
		particles.Sparkles(o.Rand, 30, c.Palette.Sparkle),
	)

	return Tui{
		ctx:     o.Context,
		content: c,
		frames:  o.Frames,
		player:  o.Player,
		open:    o.Open,
		rand:    o.Rand,
		version: o.Version,

		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(AccentTextStyle)),
		stopwatch: stopwatch.NewWithInterval(time.Second),
		progress:  progress.New(progress.WithGradient("#f472b6", "#a855f7"), progress.WithoutPercentage(), progress.WithWidth(30)),
		help:      help.New(),
		keys:      newKeyMap(),
		picker:    NewPicker(c.Player.Tracks),

		frame:      o.Initial,
		background: background,
	}
}

func (m Tui) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.stopwatch.Init(),
		m.nextFrame(),
		tea.Tick(modalDelay, func(time.Time) tea.Msg { return openModalMsg{} }),
		animate(),
	)
}

func (m Tui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	cmds := []tea.Cmd{}

	switch msg := msg.(type) {

	case FrameMsg:
		m.frame = typing.Frame(msg)
		cmds = append(cmds, m.nextFrame())

	case openModalMsg:
		cmds = append(cmds, m.celebrate())

	case hideConfettiMsg:
		if msg.burst == m.burst {
			m.confetti = nil
		}

	case animateMsg:
		m.elapsed += frameInterval
		since := m.elapsed - m.opened
		if m.balloons != nil && m.balloons.Done(since) {
			m.balloons = nil
		}
		if m.confetti != nil && m.confetti.Done(since) {
			m.confetti = nil
		}
		cmds = append(cmds, animate())

	case videoMsg:
		if msg.err != nil {
			m.video = VideoHidden
			m.status = msg.err.Error()
		} else {
			m.video = VideoShown
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.width = &msg.Width
		m.height = &msg.Height
		m.picker.Update(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.progress.Width = min(40, max(10, msg.Width/3))

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.stopwatch, cmd = m.stopwatch.Update(msg)
	cmds = append(cmds, cmd)

	if m.picking {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.picker.List, cmd = m.picker.List.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Tui) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	// Track picker takes the keyboard while open
	if m.picking {
		switch msg.String() {
		case "enter":
			if i, ok := m.picker.Selected(); ok {
				m.report(m.player.Select(i))
			}
			m.picking = false
		case "esc", "t":
			m.picking = false
		}
		return nil
	}

	if m.showModal {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.showModal = false
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Celebrate):
		return m.celebrate()

	case key.Matches(msg, m.keys.Video):
		return m.playVideo()

	case key.Matches(msg, m.keys.Music):
		m.showPlayer = !m.showPlayer

	case key.Matches(msg, m.keys.Tracks):
		m.showPlayer = true
		m.picking = true
		m.picker.List.Select(m.player.State().Index)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	if !m.showPlayer {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.PlayPause):
		m.report(m.player.Toggle())
	case key.Matches(msg, m.keys.Next):
		m.report(m.player.Next())
	case key.Matches(msg, m.keys.Prev):
		m.report(m.player.Prev())
	case key.Matches(msg, m.keys.Forward):
		m.report(m.player.SeekBy(seekStep))
	case key.Matches(msg, m.keys.Back):
		m.report(m.player.SeekBy(-seekStep))
	case key.Matches(msg, m.keys.Jump):
		tenths := msg.String()[0] - '0'
		m.report(m.player.Seek(float64(tenths) / 10))
	case key.Matches(msg, m.keys.VolumeUp):
		m.player.SetVolume(m.player.Volume() + volumeStep)
	case key.Matches(msg, m.keys.VolumeDown):
		m.player.SetVolume(m.player.Volume() - volumeStep)
	}

	return nil
}

// celebrate opens the modal with a fresh confetti burst and schedules the
// burst to end.
func (m *Tui) celebrate() tea.Cmd {
	p := m.content.Palette

	m.showModal = true
	m.burst++
	m.opened = m.elapsed
	m.confetti = particles.NewField(particles.Confetti(m.rand, 60, p.ConfettiGlyph, p.Confetti))
	m.balloons = particles.NewField(particles.Balloons(12, p.Balloon, p.Balloons))

	burst := m.burst
	return tea.Tick(confettiTime, func(time.Time) tea.Msg {
		return hideConfettiMsg{burst: burst}
	})
}

func (m *Tui) playVideo() tea.Cmd {
	if m.video == VideoOpening || m.open == nil {
		return nil
	}
	m.video = VideoOpening
	m.status = ""

	ctx, open, src := m.ctx, m.open, m.content.Video.Src
	return func() tea.Msg {
		return videoMsg{err: open(ctx, src)}
	}
}

func (m *Tui) report(err error) {
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, player.ErrNoTrack):
		m.status = "music is unavailable"
	default:
		m.status = err.Error()
	}
}

// nextFrame waits for the animator's next frame.
func (m Tui) nextFrame() tea.Cmd {
	if m.frames == nil {
		return nil
	}

	ctx, frames := m.ctx, m.frames
	return func() tea.Msg {
		f, ok := ctxutil.Next(ctx, frames)
		if !ok {
			return nil
		}
		return FrameMsg(f)
	}
}

func animate() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return animateMsg{} })
}
