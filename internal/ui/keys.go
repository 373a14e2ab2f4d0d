package ui

import (
	"github.com/atomicstack/assetnav/internal/session"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Enter       key.Binding
	Back        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding
	Assets      key.Binding
	Search      key.Binding
	Upload      key.Binding
	Download    key.Binding
	Log         key.Binding
	Help        key.Binding
	Complete    key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	Copy        key.Binding
	CopyCommand key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "top")),
		End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Assets:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "assets")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Upload:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Download:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Log:         key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Complete:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy entry")),
		CopyCommand: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "copy command")),
	}
}

// contextKeys is the help.KeyMap for whatever is on screen.
type contextKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k contextKeys) ShortHelp() []key.Binding  { return k.short }
func (k contextKeys) FullHelp() [][]key.Binding { return k.full }

func (m *Model) helpKeys() contextKeys {
	k := m.keys
	move := []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End}
	switch m.overlay {
	case overlayLog:
		return contextKeys{
			short: []key.Binding{k.Up, k.Down, k.Copy, k.CopyCommand, k.Cancel},
			full:  [][]key.Binding{move, {k.Copy, k.CopyCommand, k.Cancel}},
		}
	case overlayHelp:
		return contextKeys{
			short: []key.Binding{k.Up, k.Down, k.Cancel},
			full:  [][]key.Binding{{k.Up, k.Down, k.PageUp, k.PageDown}, {k.Cancel}},
		}
	}
	frame := m.session.Active()
	switch frame.View {
	case session.ViewFolderBrowser:
		if frame.IsResults() {
			return contextKeys{
				short: []key.Binding{k.Up, k.Down, k.Enter, k.Download, k.Search, k.Back},
				full:  [][]key.Binding{move, {k.Enter, k.Download, k.Search, k.Back, k.Log, k.Help}},
			}
		}
		return contextKeys{
			short: []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Assets, k.Search, k.Help, k.Quit},
			full: [][]key.Binding{
				move,
				{k.Enter, k.Back, k.Refresh},
				{k.Assets, k.Search, k.Upload, k.Download},
				{k.Log, k.Help, k.Quit, k.ForceQuit},
			},
		}
	case session.ViewAssetBrowser:
		return contextKeys{
			short: []key.Binding{k.Up, k.Down, k.Download, k.Refresh, k.Back},
			full:  [][]key.Binding{move, {k.Enter, k.Download, k.Refresh, k.Back, k.Log, k.Help}},
		}
	case session.ViewUpload:
		return contextKeys{
			short: []key.Binding{k.Complete, k.Submit, k.Cancel},
			full:  [][]key.Binding{{k.Complete, k.Submit, k.Cancel, k.ForceQuit}},
		}
	default:
		return contextKeys{
			short: []key.Binding{k.Submit, k.Cancel},
			full:  [][]key.Binding{{k.Submit, k.Cancel, k.ForceQuit}},
		}
	}
}
