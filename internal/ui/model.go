package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/gideon/internal/journal"
	"github.com/faizmokh/gideon/internal/logger"
	"github.com/faizmokh/gideon/internal/render"
)

// CopiedFlash is how long the "Copied!" acknowledgment stays visible.
const CopiedFlash = 2 * time.Second

const (
	defaultFetchTimeout = 15 * time.Second
	defaultWidth        = 80
	defaultHeight       = 24
	chromeHeight        = 9
)

// State is the rendering state for the selected date.
type State uint8

const (
	StateLoading State = iota
	StatePresent
	StateAbsent
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePresent:
		return "present"
	default:
		return "absent"
	}
}

// Options wires collaborators into the Model.
type Options struct {
	Source    journal.Source
	Log       *logger.Logger
	Clipboard Clipboard
	Renderer  *render.Renderer
	// Start is the initially selected date; zero means today.
	Start time.Time
	Mode  Mode
	// FetchTimeout bounds each entry request.
	FetchTimeout time.Duration
}

// Model owns Bubble Tea state for the timeline navigator.
type Model struct {
	ctx          context.Context
	source       journal.Source
	log          *logger.Logger
	clipboard    Clipboard
	renderer     *render.Renderer
	fetchTimeout time.Duration

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	selected time.Time
	mode     Mode
	entry    *journal.Entry
	loading  bool
	copied   bool
	copySeq  int

	width      int
	height     int
	statusLine string
}

type entryLoadedMsg struct {
	date  time.Time
	entry journal.Entry
	found bool
	err   error
}

type copyResultMsg struct {
	id  int
	err error
}

type copiedExpiredMsg struct {
	id int
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	start := opts.Start
	if start.IsZero() {
		start = journal.Today()
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New()
	}
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(defaultWidth, defaultHeight-chromeHeight)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
	}

	return Model{
		ctx:          ctx,
		source:       opts.Source,
		log:          log,
		clipboard:    clip,
		renderer:     renderer,
		fetchTimeout: timeout,
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      spin,
		viewport:     vp,
		selected:     journal.Midnight(start),
		mode:         opts.Mode,
		loading:      true,
		width:        defaultWidth,
		height:       defaultHeight,
	}
}

// Init loads the entry for the initial date.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchEntryCmd(m.selected), m.spinner.Tick)
}

// SelectedDate returns the day currently shown.
func (m Model) SelectedDate() time.Time {
	return m.selected
}

// Window returns the five dates on the timeline strip.
func (m Model) Window() []time.Time {
	return journal.Window(m.selected)
}

// DisplayMode returns the current light/dark preference.
func (m Model) DisplayMode() Mode {
	return m.mode
}

// Entry returns the loaded entry, if any.
func (m Model) Entry() (journal.Entry, bool) {
	if m.entry == nil {
		return journal.Entry{}, false
	}
	return *m.entry, true
}

// Loading reports whether a fetch for the selected date is outstanding.
func (m Model) Loading() bool {
	return m.loading
}

// Copied reports whether the copy acknowledgment is showing.
func (m Model) Copied() bool {
	return m.copied
}

// State derives the rendering state.
func (m Model) State() State {
	switch {
	case m.loading:
		return StateLoading
	case m.entry != nil:
		return StatePresent
	default:
		return StateAbsent
	}
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case entryLoadedMsg:
		return m.handleEntryLoaded(msg)
	case copyResultMsg:
		return m.handleCopyResult(msg)
	case copiedExpiredMsg:
		if msg.id == m.copySeq {
			m.copied = false
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		return m.StepDate(-1)
	case key.Matches(msg, m.keys.Next):
		return m.StepDate(1)
	case key.Matches(msg, m.keys.Pick):
		slot := int(msg.String()[0] - '1')
		return m.SelectDate(m.Window()[slot])
	case key.Matches(msg, m.keys.Today):
		return m.SelectDate(journal.Today())
	case key.Matches(msg, m.keys.Reload):
		return m.SelectDate(m.selected)
	case key.Matches(msg, m.keys.Theme):
		return m.ToggleDisplayMode(), nil
	case key.Matches(msg, m.keys.Copy):
		return m.CopyEntryText()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SelectDate makes date the selected day and fetches its entry.
func (m Model) SelectDate(date time.Time) (Model, tea.Cmd) {
	m.selected = journal.Midnight(date)
	m.entry = nil
	m.loading = true
	m.copied = false
	// Invalidate any pending copy result or expiry timer.
	m.copySeq++
	m.statusLine = ""
	m.viewport.SetContent("")
	m.viewport.GotoTop()
	return m, m.fetchEntryCmd(m.selected)
}

// StepDate moves the selection by days.
func (m Model) StepDate(days int) (Model, tea.Cmd) {
	return m.SelectDate(journal.Step(m.selected, days))
}

// ToggleDisplayMode flips light/dark without reloading data.
func (m Model) ToggleDisplayMode() Model {
	m.mode = m.mode.Toggle()
	m.refreshContent()
	return m
}

// CopyEntryText copies the loaded entry's raw markdown to the clipboard.
// Without a loaded entry it does nothing.
func (m Model) CopyEntryText() (Model, tea.Cmd) {
	if m.loading || m.entry == nil {
		return m, nil
	}
	m.copySeq++
	id := m.copySeq
	content := m.entry.Content
	clip := m.clipboard
	return m, func() tea.Msg {
		return copyResultMsg{id: id, err: clip.WriteAll(content)}
	}
}

func (m Model) handleEntryLoaded(msg entryLoadedMsg) (tea.Model, tea.Cmd) {
	dateKey := journal.Key(msg.date)
	// Ignore stale results for dates we no longer display.
	if !journal.SameDay(m.selected, msg.date) {
		m.log.Debugw("stale_entry_discarded", "date", dateKey, "selected", journal.Key(m.selected))
		return m, nil
	}

	m.loading = false
	m.entry = nil
	switch {
	case msg.err != nil:
		m.log.Errorw("fetch_entry_failed", "date", dateKey, "err", msg.err)
	case msg.found:
		entry := msg.entry
		m.entry = &entry
	}
	m.refreshContent()
	return m, nil
}

func (m Model) handleCopyResult(msg copyResultMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.copySeq {
		return m, nil
	}
	if msg.err != nil {
		m.log.Warnw("copy_failed", "date", journal.Key(m.selected), "err", msg.err)
		m.copied = false
		m.statusLine = fmt.Sprintf("Copy failed: %v", msg.err)
		return m, nil
	}
	m.copied = true
	m.statusLine = ""
	return m, clearCopiedCmd(msg.id, CopiedFlash)
}

func (m Model) fetchEntryCmd(date time.Time) tea.Cmd {
	src := m.source
	parent := m.ctx
	timeout := m.fetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		entry, found, err := journal.Lookup(ctx, src, date)
		return entryLoadedMsg{date: date, entry: entry, found: found, err: err}
	}
}

func clearCopiedCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return copiedExpiredMsg{id: id}
	})
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width = width
	m.height = height
	m.help.Width = width

	chrome := chromeHeight
	if m.help.ShowAll {
		chrome += len(m.keys.FullHelp()[0])
	}
	m.viewport.Width = width
	m.viewport.Height = max(height-chrome, 3)
	m.refreshContent()
}

func (m *Model) refreshContent() {
	if m.loading {
		m.viewport.SetContent("")
		return
	}
	if m.entry == nil {
		m.viewport.SetContent(m.placeholder())
		return
	}

	out, err := m.renderer.Markdown(m.entry.Content, m.mode.RenderStyle(), m.contentWidth())
	if err != nil {
		m.log.Errorw("render_entry_failed", "date", m.entry.Date, "err", err)
		out = paletteFor(m.mode).muted.Render("This entry could not be rendered. Press c to copy its raw text.")
	}
	m.viewport.SetContent(out)
}

func (m Model) contentWidth() int {
	return max(m.width-4, 20)
}
