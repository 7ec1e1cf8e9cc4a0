package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spotdemo4/birthday/internal/content"
)

var (
	titleStyle        = TextStyle.Bold(true).MarginLeft(2)
	itemStyle         = AltTextStyle.PaddingLeft(4)
	selectedItemStyle = AccentTextStyle.PaddingLeft(2)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
)

// Picker is the track list shown with 't'.
type Picker struct {
	List list.Model

	minWidth  int
	minHeight int
}

func NewPicker(tracks []content.Track) Picker {
	items := []list.Item{}
	minWidth := 20
	for i, t := range tracks {
		it := trackItem{index: i, track: t}
		if w := lipgloss.Width(it.String()) + 6; w > minWidth {
			minWidth = w
		}
		items = append(items, it)
	}
	minHeight := len(items) + 4

	l := list.New(items, trackDelegate{}, minWidth, minHeight)
	l.Title = "Tracks"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	return Picker{
		List:      l,
		minWidth:  minWidth,
		minHeight: minHeight,
	}
}

func (p *Picker) Update(width int, height int) {
	if width < p.minWidth {
		p.List.SetWidth(width)
	} else {
		p.List.SetWidth(p.minWidth)
	}

	if height-1 < p.minHeight {
		p.List.SetHeight(height - 1)
	} else {
		p.List.SetHeight(p.minHeight)
	}
}

// Selected returns the index of the highlighted track.
func (p *Picker) Selected() (int, bool) {
	it, ok := p.List.SelectedItem().(trackItem)
	if !ok {
		return 0, false
	}
	return it.index, true
}

type trackItem struct {
	index int
	track content.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }

func (i trackItem) String() string {
	return fmt.Sprintf("%s · %s  %s", i.track.Title, i.track.Artist, i.track.Duration)
}

type trackDelegate struct{}

func (d trackDelegate) Height() int                             { return 1 }
func (d trackDelegate) Spacing() int                            { return 0 }
func (d trackDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("♪ "+i.String()))
		return
	}
	fmt.Fprint(w, itemStyle.Render(i.String()))
}
