package ui

import (
	"github.com/atomicstack/assetnav/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Keys

## Folders

- **j / k** or arrows: move the cursor
- **enter**: open the selected folder
- **esc / backspace**: go to the parent folder
- **r**: refresh the current folder
- **a**: list the assets of the current folder
- **/**: search assets by text
- **u**: upload a local file into the current folder
- **d**: download the asset last selected in this folder
- **l**: command log, **?**: this help
- **q / ctrl+c**: quit

## Assets and search results

- **enter**: show asset details
- **d**: download into the download directory
- **r**: refresh the listing
- **q / esc**: back to the folders

## Prompts

- **enter**: run, **esc**: cancel
- **ctrl+w / ctrl+u**: delete a word or the whole line
- **tab**: accept the best local file suggestion (upload)
- an empty download path saves into the download directory

## Command log

- **c**: copy the entry, **C**: copy only its command line
`

const defaultHelpWidth = 80

func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

func (m *Model) openHelp() {
	m.overlay = overlayHelp
	m.layoutHelp()
	m.helpView.GotoTop()
	events.UI.Overlay("help", true)
}

// layoutHelp sizes the help viewport, re-rendering only when the width changes.
func (m *Model) layoutHelp() {
	width := m.width
	if width <= 0 {
		width = defaultHelpWidth
	}
	height := m.height - 2
	if m.height <= 0 {
		height = 20
	}
	if height < 1 {
		height = 1
	}
	m.helpView.Width = width
	m.helpView.Height = height
	if width != m.helpWidth {
		m.helpView.SetContent(renderHelp(width))
		m.helpWidth = width
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Help):
		m.closeOverlay()
		return nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}
