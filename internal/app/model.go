package app

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"replayview/internal/logging"
	"replayview/internal/metadata"
	"replayview/internal/star"
	"replayview/internal/types"
)

const (
	defaultPollInterval   = 10 * time.Second
	defaultRequestTimeout = 10 * time.Second
	tickInterval          = 250 * time.Millisecond
	headerLines           = 1
	dividerLines          = 1
	footerLines           = 2
	minPanelWidth         = 24
	minPanelHeight        = 3
	wheelScrollLines      = 3
)

// Dependencies are the collaborators the sidebar is built from.
type Dependencies struct {
	SessionID      string
	Sessions       SessionSource
	Viewer         ViewerSource
	Star           *star.Toggler
	Links          metadata.LinkOptions
	Location       *time.Location
	PollInterval   time.Duration
	RequestTimeout time.Duration
	Logger         logging.Logger
}

type ModelOption func(*Model)

func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.clock = now
		}
	}
}

// WithTooltipOptions applies opts to every tooltip the panel shows.
func WithTooltipOptions(opts ...TooltipOption) ModelOption {
	return func(m *Model) {
		m.tooltipOptions = append(m.tooltipOptions, opts...)
	}
}

type Model struct {
	sessionID      string
	sessions       SessionSource
	viewerSource   ViewerSource
	star           *star.Toggler
	links          metadata.LinkOptions
	location       *time.Location
	pollInterval   time.Duration
	requestTimeout time.Duration
	logger         logging.Logger
	clock          func() time.Time
	layerComposer  LayerComposer
	tooltipOptions []TooltipOption

	session     *types.Session
	viewer      types.Viewer
	fields      metadata.FieldMemo
	layout      panelLayout
	viewport    viewport.Model
	focus       int
	hover       int
	tooltipOpen bool
	pollGen     int

	keys   keyMap
	help   help.Model
	status string
	width  int
	height int

	toastText   string
	toastLevel  toastLevel
	toastUntil  time.Time
	toastsShown int
}

func NewModel(deps Dependencies, opts ...ModelOption) Model {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	location := deps.Location
	if location == nil {
		location = time.Local
	}
	interval := deps.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	keys := defaultKeyMap()
	keys.Star.SetEnabled(false)
	keys.Activate.SetEnabled(false)

	m := Model{
		sessionID:      strings.TrimSpace(deps.SessionID),
		sessions:       deps.Sessions,
		viewerSource:   deps.Viewer,
		star:           deps.Star,
		links:          deps.Links,
		location:       location,
		pollInterval:   interval,
		requestTimeout: timeout,
		logger:         logging.Component(logger, "ui"),
		clock:          time.Now,
		layerComposer:  NewTextLayerComposer(),
		viewport:       viewport.New(viewport.WithWidth(minPanelWidth), viewport.WithHeight(minPanelHeight)),
		hover:          -1,
		keys:           keys,
		help:           help.New(),
		status:         "loading session…",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.refreshPanel()
	return m
}

func Run(deps Dependencies, opts ...ModelOption) error {
	model := NewModel(deps, opts...)
	p := tea.NewProgram(&model)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), tea.RequestBackgroundColor}
	if m.sessions != nil && m.sessionID != "" {
		cmds = append(cmds, fetchSessionCmd(m.sessions, m.star, m.sessionID, m.requestTimeout))
	}
	if m.viewerSource != nil {
		cmds = append(cmds, fetchViewerCmd(m.viewerSource, m.requestTimeout))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.BackgroundColorMsg:
		dark := msg.IsDark()
		setMarkdownBackgroundDark(dark)
		m.help.Styles = help.DefaultStyles(dark)
		return m, nil
	case sessionLoadedMsg:
		return m, m.applySessionLoaded(msg)
	case viewerLoadedMsg:
		m.applyViewerLoaded(msg)
		return m, nil
	case pollMsg:
		if msg.gen != m.pollGen || m.sessions == nil {
			return m, nil
		}
		return m, fetchSessionCmd(m.sessions, m.star, m.sessionID, m.requestTimeout)
	case starResultMsg:
		m.applyStarOutcome(msg.outcome)
		return m, nil
	case clipboardCopiedMsg:
		m.applyClipboardResult(msg)
		return m, nil
	case tickMsg:
		m.expireToast(time.Time(msg))
		return m, tickCmd()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

func (m *Model) render() string {
	width := max(minPanelWidth, m.width)
	title := "Session"
	if m.sessionID != "" {
		title += " " + m.sessionID
	}
	lines := []string{
		headerStyle.Render(truncateToWidth(title, width)),
		m.box().View(),
		dividerStyle.Render(strings.Repeat("─", width)),
		m.viewport.View(),
	}
	footer := m.toastLine(width)
	if footer == "" {
		footer = statusStyle.Render(truncateToWidth(m.status, width))
	}
	lines = append(lines, footer, truncateToWidth(m.help.View(m.keys), width))
	base := lipgloss.JoinVertical(lipgloss.Left, lines...)

	tip, anchor, ok := m.activeTooltip()
	if !ok || m.layerComposer == nil {
		return base
	}
	overlay, ok := tip.Overlay(anchor, width, lipgloss.Height(base))
	if !ok {
		return base
	}
	return m.layerComposer.Compose(base, []LayerOverlay{overlay})
}

func (m *Model) box() metadataBox {
	state := star.StateSynced
	if m.star != nil && m.session != nil {
		state = m.star.State(m.session.Key())
	}
	return metadataBox{
		session:   m.session,
		showStar:  m.viewer.LoggedIn,
		syncState: state,
		location:  m.location,
		width:     max(minPanelWidth, m.width),
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.refreshPanel()
}

func (m *Model) panelTop() int {
	return headerLines + lipgloss.Height(m.box().View()) + dividerLines
}

// refreshPanel rebuilds the rows from the current session and viewer and
// re-lays the viewport around them.
func (m *Model) refreshPanel() {
	var fields []types.Field
	if m.session != nil {
		fields = m.fields.Filter(m.session.Fields)
	}
	panel := sanitizePanel(metadata.BuildPanel(m.session, m.viewer, fields, m.links))
	count := len(panel.Session) + len(panel.User) + len(panel.Device)
	m.focus = clamp(m.focus, 0, max(0, count-1))
	if m.hover >= count {
		m.hover = -1
	}

	width := max(minPanelWidth, m.width)
	m.layout = renderMetadataPanel(panel, m.session == nil, width, m.focus)
	m.viewport.SetWidth(width)
	height := minPanelHeight
	if m.height > 0 {
		height = max(minPanelHeight, m.height-m.panelTop()-footerLines)
	}
	m.viewport.SetHeight(height)
	m.viewport.SetContent(m.layout.content)

	row, ok := m.focusedRow()
	m.keys.Activate.SetEnabled(ok && row.Render == metadata.RenderLink && row.Link != "")
}

func (m *Model) focusedRow() (metadata.Row, bool) {
	if m.focus < 0 || m.focus >= len(m.layout.rows) {
		return metadata.Row{}, false
	}
	return m.layout.rows[m.focus], true
}

func (m *Model) applySessionLoaded(msg sessionLoadedMsg) tea.Cmd {
	m.pollGen++
	next := pollCmd(m.pollInterval, m.pollGen)
	if msg.err != nil {
		m.status = "session error: " + msg.err.Error()
		m.logger.Warn("session fetch failed", logging.F("session", m.sessionID), logging.F("err", msg.err))
	} else {
		m.status = ""
	}
	if msg.session != nil {
		m.session = m.keepPendingStar(msg.session)
		m.refreshPanel()
	}
	return next
}

// keepPendingStar holds on to the starred flag shown on screen while a star
// request for the session is unresolved. A fetch that raced the key press
// carries the value from before the flip.
func (m *Model) keepPendingStar(fetched *types.Session) *types.Session {
	if m.star == nil || m.session == nil || m.session.Key() != fetched.Key() {
		return fetched
	}
	if m.star.State(fetched.Key()) == star.StateSynced || fetched.Starred == m.session.Starred {
		return fetched
	}
	next := fetched.Clone()
	next.Starred = m.session.Starred
	return next
}

func (m *Model) applyViewerLoaded(msg viewerLoadedMsg) {
	if msg.err != nil {
		m.status = "viewer error: " + msg.err.Error()
		m.logger.Warn("viewer fetch failed", logging.F("err", msg.err))
		return
	}
	m.viewer = msg.viewer
	m.keys.Star.SetEnabled(m.viewer.LoggedIn)
	m.refreshPanel()
}

func (m *Model) activateStar() tea.Cmd {
	if !m.viewer.LoggedIn || m.session == nil || m.star == nil {
		return nil
	}
	req, updated, err := m.star.Begin(context.Background(), m.session.Key())
	if err != nil {
		m.logger.Warn("star activation failed", logging.F("session", m.session.Key()), logging.F("err", err))
		m.showErrorToast(star.FailureMessage)
		return nil
	}
	m.session = updated
	return sendStarCmd(m.star, req, m.requestTimeout)
}

func (m *Model) applyStarOutcome(outcome star.Outcome) {
	if outcome.Session != nil && m.session != nil && outcome.Session.Key() == m.session.Key() {
		m.session = outcome.Session
		m.refreshPanel()
	}
	level := toastLevelInfo
	if outcome.Notice.Level == star.NoticeError {
		level = toastLevelError
	}
	m.showToast(level, outcome.Notice.Text, outcome.Notice.Duration)
	if outcome.Err != nil {
		m.status = "star error: " + outcome.Err.Error()
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Star):
		return m.activateStar()
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Tooltip):
		m.tooltipOpen = !m.tooltipOpen
	case key.Matches(msg, m.keys.Dismiss):
		m.tooltipOpen = false
		m.hover = -1
	case key.Matches(msg, m.keys.Activate):
		return m.activateFocusedRow()
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset() - m.viewport.Height())
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset() + m.viewport.Height())
	}
	return nil
}

func (m *Model) refresh() tea.Cmd {
	var cmds []tea.Cmd
	if m.sessions != nil && m.sessionID != "" {
		cmds = append(cmds, fetchSessionCmd(m.sessions, m.star, m.sessionID, m.requestTimeout))
	}
	if m.viewerSource != nil {
		cmds = append(cmds, fetchViewerCmd(m.viewerSource, m.requestTimeout))
	}
	return tea.Batch(cmds...)
}

func (m *Model) moveFocus(delta int) {
	if len(m.layout.rows) == 0 {
		return
	}
	m.focus = clamp(m.focus+delta, 0, len(m.layout.rows)-1)
	m.refreshPanel()
	m.ensureFocusVisible()
}

func (m *Model) ensureFocusVisible() {
	if m.focus < 0 || m.focus >= len(m.layout.rowLines) {
		return
	}
	line := m.layout.rowLines[m.focus]
	offset := m.viewport.YOffset()
	height := m.viewport.Height()
	switch {
	case line < offset:
		m.viewport.SetYOffset(line)
	case line >= offset+height:
		m.viewport.SetYOffset(line - height + 1)
	}
}

func (m *Model) activateFocusedRow() tea.Cmd {
	row, ok := m.focusedRow()
	if !ok || row.Render != metadata.RenderLink || row.Link == "" {
		return nil
	}
	return copyToClipboardCmd(row.Link, "Copied link to "+strings.ToLower(row.Key))
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	mouse := msg.Mouse()
	switch msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft {
			return nil
		}
		if m.box().starHit(mouse.X, mouse.Y-headerLines) {
			return m.activateStar()
		}
		idx, ok := m.rowAtScreen(mouse.Y)
		if !ok {
			return nil
		}
		m.focus = idx
		m.refreshPanel()
		return m.activateFocusedRow()
	case tea.MouseMotionMsg:
		m.hover = -1
		if idx, ok := m.rowAtScreen(mouse.Y); ok && m.layout.rows[idx].Tooltip != "" {
			m.hover = idx
		}
	case tea.MouseWheelMsg:
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.viewport.SetYOffset(m.viewport.YOffset() - wheelScrollLines)
		case tea.MouseWheelDown:
			m.viewport.SetYOffset(m.viewport.YOffset() + wheelScrollLines)
		}
	}
	return nil
}

// rowAtScreen maps a screen row inside the panel viewport to a panel row.
func (m *Model) rowAtScreen(y int) (int, bool) {
	top := m.panelTop()
	if y < top || y >= top+m.viewport.Height() {
		return -1, false
	}
	return m.layout.rowAt(y - top + m.viewport.YOffset())
}

// activeTooltip resolves the tooltip to draw: the hovered row wins over the
// focused one.
func (m *Model) activeTooltip() (Tooltip, TooltipAnchor, bool) {
	idx := m.hover
	active := idx >= 0
	if idx < 0 {
		idx = m.focus
		active = m.tooltipOpen
	}
	if idx < 0 || idx >= len(m.layout.rows) {
		return Tooltip{}, TooltipAnchor{}, false
	}
	tip := NewTooltip(m.layout.rows[idx].Tooltip, m.tooltipOptions...)
	if !tip.Visible(active) {
		return Tooltip{}, TooltipAnchor{}, false
	}
	top := m.panelTop()
	row := top + m.layout.rowLines[idx] - m.viewport.YOffset()
	if row < top || row >= top+m.viewport.Height() {
		return Tooltip{}, TooltipAnchor{}, false
	}
	return tip, TooltipAnchor{Row: row, Col: m.layout.keyCol, Width: m.layout.keyWidth}, true
}

func (m *Model) now() time.Time {
	if m.clock == nil {
		return time.Now()
	}
	return m.clock()
}
