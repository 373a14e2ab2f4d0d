package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/assetnav/internal/backend"
	"github.com/atomicstack/assetnav/internal/data/dispatcher"
	"github.com/atomicstack/assetnav/internal/history"
	"github.com/atomicstack/assetnav/internal/session"
	"github.com/atomicstack/assetnav/internal/state"
	"github.com/atomicstack/assetnav/internal/theme"
	"github.com/atomicstack/assetnav/internal/ui/command"
	uistate "github.com/atomicstack/assetnav/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	transientStatusTTL = 3 * time.Second
	suggestionLimit    = 5
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type overlay int

const (
	overlayNone overlay = iota
	overlayLog
	overlayHelp
)

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// Animate drives the loading spinner with tick messages.
	Animate     bool
	DownloadDir string
	CacheTTL    time.Duration
	RootName    string
	Watcher     *backend.Watcher
	History     *history.Store
	Clock       func() time.Time
}

// Model implements the Bubble Tea model for the asset browser.
type Model struct {
	session    *session.Session
	bus        *command.Bus
	folders    state.FolderStore
	assets     state.AssetStore
	files      state.LocalFileStore
	dispatcher *dispatcher.Dispatcher
	history    *history.Store
	started    time.Time
	backend    *backend.Watcher
	backendErr string

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	animate bool

	overlay   overlay
	logList   *uistate.List
	helpView  viewport.Model
	helpWidth int

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	downloadDir string
	cacheTTL    time.Duration
	suggestions []string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state at the root folder.
func NewModel(exec command.Executor, opts Options) *Model {
	sessOpts := []session.Option{}
	if opts.Clock != nil {
		sessOpts = append(sessOpts, session.WithClock(opts.Clock))
	}
	folders := state.NewFolderStore(opts.RootName)
	assets := state.NewAssetStore()
	files := state.NewLocalFileStore()
	downloadDir := opts.DownloadDir
	if downloadDir == "" {
		downloadDir = "."
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m := &Model{
		session:     session.New(sessOpts...),
		bus:         command.New(exec),
		folders:     folders,
		assets:      assets,
		files:       files,
		dispatcher:  dispatcher.New(folders, assets, files),
		history:     opts.History,
		backend:     opts.Watcher,
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		animate:     opts.Animate,
		logList:     uistate.NewList(nil),
		helpView:    viewport.New(0, 0),
		showFooter:  opts.ShowFooter,
		verbose:     opts.Verbose,
		downloadDir: downloadDir,
		cacheTTL:    opts.CacheTTL,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.width
	m.started = m.session.Now()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It issues the root listing.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadFolder(m.session.Root(), state.RootID)}
	if m.history != nil {
		cmds = append(cmds, loadHistory(m.history, m.started))
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.animate {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.syncViewport(m.session.Active())
	if m.overlay == overlayLog {
		m.logList.EnsureCursorVisible(m.maxVisibleItems())
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):                    m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):             m.handleWindowSizeMsg,
		reflect.TypeOf(command.OperationCompletedMsg{}): m.handleOperationCompletedMsg,
		reflect.TypeOf(spinner.TickMsg{}):               m.handleSpinnerTickMsg,
		reflect.TypeOf(backendEventMsg{}):               m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):                m.handleBackendDoneMsg,
		reflect.TypeOf(historyRecordedMsg{}):            m.handleHistoryRecordedMsg,
		reflect.TypeOf(historyLoadedMsg{}):              m.handleHistoryLoadedMsg,
		reflect.TypeOf(clipboardMsg{}):                  m.handleClipboardMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.animate {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

// Session exposes the navigation state, mainly for tests and the app layer.
func (m *Model) Session() *session.Session {
	return m.session
}
