package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Celebrate  key.Binding
	Close      key.Binding
	Video      key.Binding
	Music      key.Binding
	PlayPause  key.Binding
	Next       key.Binding
	Prev       key.Binding
	Forward    key.Binding
	Back       key.Binding
	Jump       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Tracks     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Celebrate:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "celebrate again")),
		Close:      key.NewBinding(key.WithKeys("esc", "enter", "x"), key.WithHelp("enter", "close")),
		Video:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "play video")),
		Music:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")),
		PlayPause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Prev:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		Forward:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "+5s")),
		Back:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "-5s")),
		Jump:       key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "jump")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "louder")),
		VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "quieter")),
		Tracks:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tracks")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Celebrate, k.Video, k.Music, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Celebrate, k.Close, k.Video},
		{k.Music, k.PlayPause, k.Tracks},
		{k.Next, k.Prev, k.Forward, k.Back, k.Jump},
		{k.VolumeUp, k.VolumeDown, k.Help, k.Quit},
	}
}
