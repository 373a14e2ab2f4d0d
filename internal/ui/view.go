package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/assetnav/internal/format/table"
	"github.com/atomicstack/assetnav/internal/history"
	"github.com/atomicstack/assetnav/internal/session"
	"github.com/atomicstack/assetnav/internal/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const (
	itemIndicator = "▌"
	busyMarker    = "⇣ downloading"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model. It only reads state.
func (m *Model) View() string {
	switch m.overlay {
	case overlayLog:
		return m.viewLog()
	case overlayHelp:
		return m.viewHelp()
	}
	frame := m.session.Active()
	top := []styledLine{m.headerLine(frame)}
	top = append(top, m.promptLines(frame)...)
	top = append(top, m.rowLines(frame)...)
	return m.compose(top, m.bottomLines(frame))
}

// compose fits the top section above the bottom bar.
func (m *Model) compose(top, bottom []styledLine) string {
	if m.height > 0 {
		top = limitHeight(top, m.height-len(bottom), m.width)
	}
	lines := append(applyWidth(top, m.width), applyWidth(bottom, m.width)...)
	return renderLines(lines)
}

func (m *Model) headerLine(frame *session.Frame) styledLine {
	var text string
	switch frame.View {
	case session.ViewFolderBrowser:
		if frame.IsResults() {
			text = fmt.Sprintf("Search results for %q (%d)", frame.Query, len(frame.Assets))
		} else {
			text = m.folderPath(m.session.CurrentFolderID())
		}
	case session.ViewAssetBrowser:
		text = m.folderPath(frame.FolderID) + " · assets"
	case session.ViewSearch:
		text = "Search assets"
	case session.ViewUpload:
		text = "Upload to " + m.folderPath(frame.FolderID)
	case session.ViewDownload:
		text = "Download " + frame.Target.Name
	}
	return styledLine{text: text, style: styles.Header}
}

// folderPath renders the breadcrumb of id, e.g. "/projects/brackets".
func (m *Model) folderPath(id string) string {
	root := m.folderName(state.RootID)
	names := make([]string, 0, 4)
	for _, folder := range m.folders.Path(id) {
		names = append(names, folder.Name)
	}
	if len(names) == 0 {
		return root
	}
	if strings.HasSuffix(root, "/") {
		return root + strings.Join(names, "/")
	}
	return root + "/" + strings.Join(names, "/")
}

func (m *Model) promptLines(frame *session.Frame) []styledLine {
	if frame.Prompt == nil {
		return nil
	}
	lines := []styledLine{{text: m.renderPrompt(frame), raw: true}}
	if frame.View != session.ViewUpload {
		return lines
	}
	if m.backendErr != "" {
		lines = append(lines, styledLine{text: "Watcher: " + m.backendErr, style: styles.Error})
	}
	for i, s := range m.suggestions {
		prefix := "  "
		if i == 0 {
			prefix = "» "
		}
		lines = append(lines, styledLine{text: prefix + s, style: styles.Suggestion})
	}
	return lines
}

func promptLabel(view session.View) string {
	switch view {
	case session.ViewSearch:
		return "Search: "
	case session.ViewUpload:
		return "File: "
	case session.ViewDownload:
		return "Save to: "
	}
	return "> "
}

func (m *Model) promptPlaceholder(view session.View) string {
	switch view {
	case session.ViewSearch:
		return "(type to search)"
	case session.ViewUpload:
		return "(path of a local file, tab completes)"
	case session.ViewDownload:
		return fmt.Sprintf("(empty saves to %s)", m.downloadDir)
	}
	return ""
}

func (m *Model) renderPrompt(frame *session.Frame) string {
	label := render(styles.PromptLabel, promptLabel(frame.View))
	runes := []rune(frame.Prompt.Value)
	if len(runes) == 0 {
		placeholder := []rune(m.promptPlaceholder(frame.View))
		if len(placeholder) == 0 {
			return label + render(styles.Cursor, " ")
		}
		return label + render(styles.Cursor, string(placeholder[0])) + render(styles.Placeholder, string(placeholder[1:]))
	}
	pos := frame.Prompt.CursorPos()
	before := render(styles.Prompt, string(runes[:pos]))
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = render(styles.Prompt, string(runes[pos+1:]))
	}
	return label + before + render(styles.Cursor, caret) + after
}

func (m *Model) rowLines(frame *session.Frame) []styledLine {
	if frame.View == session.ViewSearch || frame.View == session.ViewUpload || frame.View == session.ViewDownload {
		return nil
	}
	list := frame.List
	if list.Len() == 0 {
		if frame.Loading() {
			return nil
		}
		msg := "(no folders)"
		switch {
		case frame.IsResults():
			msg = fmt.Sprintf("No assets match %q", frame.Query)
		case frame.View == session.ViewAssetBrowser:
			msg = "(no assets)"
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	labels := m.rowLabels(frame)
	visible, start := list.Window(m.maxVisibleItems())
	lines := make([]styledLine, 0, len(visible))
	for i := range visible {
		idx := start + i
		lines = append(lines, buildItemLine(labels[idx], idx == list.Cursor, nil, m.width))
	}
	return lines
}

func (m *Model) rowLabels(frame *session.Frame) []string {
	if !frame.ListsAssets() {
		labels := make([]string, len(frame.Folders))
		for i, folder := range frame.Folders {
			labels[i] = folder.Name
			if folder.HasChildren {
				labels[i] += "/"
			}
		}
		return labels
	}
	rows := make([][]string, len(frame.Assets))
	for i, asset := range frame.Assets {
		status := asset.Status
		if frame.IsBusy(asset.ID) {
			status = busyMarker
		}
		rows[i] = []string{asset.Name, humanize.IBytes(uint64(max(asset.Size, 0))), status}
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
}

// buildItemLine constructs a single styledLine for a list row. When width
// is positive the text is padded so the selected row's background spans
// the full line.
func buildItemLine(label string, selected bool, style *lipgloss.Style, width int) styledLine {
	lineStyle := styles.Item
	if style != nil {
		lineStyle = style
	}
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := itemIndicator + " " + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) bottomLines(frame *session.Frame) []styledLine {
	lines := make([]styledLine, 0, 4)
	for _, op := range m.session.InFlight() {
		if op.Origin != frame.ID || !frame.Expects(op) {
			continue
		}
		lines = append(lines, styledLine{text: m.spinner.View() + " " + loadingText(op), raw: true})
	}
	if st := m.session.Status(); st.Text != "" {
		if st.Level == session.LevelError {
			lines = append(lines, styledLine{text: "Error: " + st.Text, style: styles.Error})
		} else {
			lines = append(lines, styledLine{text: st.Text, style: styles.Info})
		}
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.help.View(m.helpKeys()), raw: true})
	}
	return lines
}

func (m *Model) viewLog() string {
	top := []styledLine{{text: "Command log", style: styles.OverlayTitle}}
	entries := m.session.Log().Entries()
	if len(entries) == 0 {
		top = append(top, styledLine{text: "(no commands run yet)", style: styles.Info})
	} else {
		visible, start := m.logList.Window(m.maxVisibleItems())
		for i := range visible {
			idx := start + i
			top = append(top, buildItemLine(visible[i].Label, idx == m.logList.Cursor, outcomeStyle(entries[idx].Outcome), m.width))
		}
	}
	return m.compose(top, m.overlayBottom())
}

func outcomeStyle(o history.Outcome) *lipgloss.Style {
	switch o {
	case history.OutcomeOK:
		return styles.LogSuccess
	case history.OutcomeError:
		return styles.LogError
	default:
		return styles.LogMuted
	}
}

func (m *Model) viewHelp() string {
	header := render(styles.OverlayTitle, "Help")
	body := m.helpView.View()
	bottom := renderLines(applyWidth(m.overlayBottom(), m.width))
	out := header + "\n" + body
	if bottom != "" {
		out += "\n" + bottom
	}
	return out
}

func (m *Model) overlayBottom() []styledLine {
	lines := make([]styledLine, 0, 2)
	if st := m.session.Status(); st.Text != "" {
		style := styles.Info
		if st.Level == session.LevelError {
			style = styles.Error
		}
		lines = append(lines, styledLine{text: st.Text, style: style})
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.help.View(m.helpKeys()), raw: true})
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	if m.overlay == overlayHelp {
		m.layoutHelp()
	}
	m.syncViewport(m.session.Active())
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	var used int
	if m.overlay == overlayLog {
		used = 1 + len(m.overlayBottom())
	} else {
		frame := m.session.Active()
		used = 1 + len(m.promptLines(frame)) + len(m.bottomLines(frame))
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
