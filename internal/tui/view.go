package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spotdemo4/birthday/internal/particles"
	"github.com/spotdemo4/birthday/internal/player"
)

const (
	cursorBlink    = 500 * time.Millisecond
	underlineMax   = 40
	messageMaxWide = 72
)

func (m Tui) View() string {
	if m.width == nil || m.height == nil {
		return ""
	}

	if m.showModal {
		return m.render(renderParams{
			body:       m.modalView(),
			background: m.celebrationBackground(),
		})
	}

	return m.render(renderParams{
		body:       m.pageView(),
		footer:     m.footerView(),
		background: m.background.Render(m.elapsed, *m.width, *m.height),
	})
}

func (m Tui) pageView() string {
	c := m.content
	width := *m.width

	header := AccentTextStyle.Bold(true).Render("★ " + c.Header + " ★")

	cursor := " "
	if (m.elapsed/cursorBlink)%2 == 0 {
		cursor = AccentTextStyle.Render("▌")
	}
	headline := HeadlineStyle.Render(m.frame.Text) + cursor
	underline := AccentTextStyle.Render(strings.Repeat("━", underlineWidth(m.frame.Text)))

	message := TextStyle.
		Width(min(width-4, messageMaxWide)).
		Align(lipgloss.Center).
		Render(c.Message)

	sections := []string{header, "", headline, underline, "", message, "", m.videoView()}
	if m.showPlayer {
		sections = append(sections, "", m.playerView())
	}
	if m.status != "" {
		sections = append(sections, "", WarnTextStyle.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// underlineWidth follows the typed text, two cells per character.
func underlineWidth(text string) int {
	return min(lipgloss.Width(text)*2, underlineMax)
}

func (m Tui) videoView() string {
	v := m.content.Video

	switch m.video {
	case VideoOpening:
		return CardStyle.Render(m.spinner.View() + " " + SubtextStyle.Render("opening your video..."))

	case VideoShown:
		return CardStyle.Render(AccentTextStyle.Render("▶ playing ") + TextStyle.Render(filepath.Base(v.Src)))

	default:
		return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			AccentTextStyle.Bold(true).Render(v.Title),
			SubtextStyle.Render(v.Caption),
			"",
			AccentButtonStyle.Render(v.Button)+SubtextStyle.Render("  v"),
		))
	}
}

func (m Tui) playerView() string {
	if m.picking {
		return CardStyle.Render(m.picker.List.View())
	}

	s := m.player.State()
	if s.Count == 0 {
		return CardStyle.Render(SubtextStyle.Render("no tracks"))
	}

	art := m.content.Palette.Heart
	if s.Playing && (m.elapsed/cursorBlink)%2 == 1 {
		art = "💗"
	}

	title := TextStyle.Bold(true).Render(s.Track.Title)
	artist := SubtextStyle.Render(s.Track.Artist)

	total := s.Track.Duration
	if s.Duration > 0 {
		total = player.FormatTime(s.Duration)
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		SubtextStyle.Render(player.FormatTime(s.Position)+" "),
		m.progress.ViewAs(s.Progress()),
		SubtextStyle.Render(" "+total),
	)

	play := "▶"
	if s.Playing {
		play = "⏸"
	}
	controls := fmt.Sprintf("⏮  %s  ⏭", AccentButtonStyle.Render(play))

	speaker := "🔉"
	if s.Volume > 0.5 {
		speaker = "🔊"
	}
	volume := SubtextStyle.Render(fmt.Sprintf("%s %3.0f%%  %d/%d", speaker, s.Volume*100, s.Index+1, s.Count))

	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		art,
		title,
		artist,
		"",
		bar,
		"",
		controls,
		volume,
		"",
		SubtextStyle.Render(m.content.Player.Caption),
	))
}

func (m Tui) footerView() string {
	love := AccentTextStyle.Render("✨ " + m.content.Footer + " ✨")
	elapsed := AltTextStyle.Render(fmt.Sprintf("celebrating for %s", m.stopwatch.View()))
	if m.version != "" {
		elapsed += AltTextStyle.Render(fmt.Sprintf(" · v%s", m.version))
	}
	return lipgloss.JoinVertical(lipgloss.Center, love, elapsed, m.help.View(m.keys))
}

func (m Tui) modalView() string {
	c := m.content.Modal

	party := "🎉"
	if (m.elapsed-m.opened)/cursorBlink%2 == 1 {
		party = "🎊"
	}

	icons := strings.Join(c.Icons, "   ")
	lines := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		style := SubtextStyle
		if i == 0 {
			style = AccentTextStyle.Bold(true)
		}
		lines[i] = style.Render(l)
	}

	box := ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		party,
		"",
		AccentTextStyle.Bold(true).Render(c.Title),
		HeadlineStyle.Render(c.Subtitle),
		"",
		icons,
		"",
		lipgloss.JoinVertical(lipgloss.Center, lines...),
		"",
		AccentButtonStyle.Render(c.Button)+SubtextStyle.Render("  enter"),
	))

	if len(c.Corners) < 4 {
		return box
	}

	// Decorations sit on the corners of the box
	w := lipgloss.Width(box)
	top := corners(c.Corners[0], c.Corners[1], w)
	bottom := corners(c.Corners[2], c.Corners[3], w)
	return lipgloss.JoinVertical(lipgloss.Left, top, box, bottom)
}

func corners(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return ""
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Tui) celebrationBackground() []string {
	since := m.elapsed - m.opened

	var rows []string
	for _, f := range []*particles.Field{m.balloons, m.confetti} {
		switch {
		case f == nil:
		case rows == nil:
			rows = f.Render(since, *m.width, *m.height)
		default:
			rows = merge(rows, f.Render(since, *m.width, *m.height))
		}
	}
	return rows
}

// merge lays b over a, keeping a's row wherever b's is blank.
func merge(a, b []string) []string {
	out := make([]string, len(a))
	for i := range a {
		out[i] = a[i]
		if i < len(b) && strings.TrimSpace(b[i]) != "" {
			out[i] = b[i]
		}
	}
	return out
}

type renderParams struct {
	body       string
	footer     string
	background []string
}

// render centers the body and footer on screen; rows they do not cover
// show the background.
func (m Tui) render(p renderParams) string {
	if m.width == nil || m.height == nil {
		return ""
	}
	width, height := *m.width, *m.height

	body := strings.Split(p.body, "\n")
	footer := []string{}
	if p.footer != "" {
		footer = strings.Split(p.footer, "\n")
	}

	rows := make([]string, height)
	for i := range rows {
		if i < len(p.background) {
			rows[i] = p.background[i]
		} else {
			rows[i] = strings.Repeat(" ", width)
		}
	}

	footerTop := max(0, height-len(footer))
	for i, line := range footer {
		if footerTop+i < height {
			rows[footerTop+i] = FooterStyle.Width(width).Render(line)
		}
	}

	top := max(0, (footerTop-len(body))/2)
	for i, line := range body {
		if top+i >= footerTop {
			break
		}
		rows[top+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}

	return strings.Join(rows, "\n")
}

