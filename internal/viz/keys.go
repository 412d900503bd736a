package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Apply  key.Binding
	Clear  key.Binding
	Preset key.Binding
	Save   key.Binding
	Record key.Binding
	Theme  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "check")),
		Apply:  key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "apply")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Preset: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next preset")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save chart")),
		Record: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "record run")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Apply, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Apply, k.Clear, k.Preset},
		{k.Save, k.Record, k.Theme, k.Help, k.Quit},
	}
}
