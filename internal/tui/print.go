package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	ErrTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"})
	WarnTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"})
)

// Output is where the Print helpers write; the TUI owns the terminal while
// it runs, so these are only used before and after it.
var Output io.Writer = os.Stdout

func Print(msg string, ext ...any) {
	fprint(TextStyle, slog.LevelInfo, msg, ext...)
}

func PrintErr(msg string, ext ...any) {
	fprint(ErrTextStyle, slog.LevelError, msg, ext...)
}

func PrintWarn(msg string, ext ...any) {
	fprint(WarnTextStyle, slog.LevelWarn, msg, ext...)
}

func fprint(style lipgloss.Style, level slog.Level, msg string, ext ...any) {
	text := fmt.Sprintf(msg, ext...)
	slog.Log(context.Background(), level, text)
	fmt.Fprintln(Output, style.Render(text))
}
