// Package dropdown implements a single-select dropdown widget: a closed
// field that expands into a transient option menu.
//
// The widget is a thin Bubble Tea shell over the shared machinery: a
// [selection.Registry] holds the canonical choice, an [overlay.Controller]
// sequences the menu lifecycle, an [interaction.Router] arbitrates keyboard,
// pointer and typeahead input, and a [viewsync.Scheduler] coalesces scroll
// work per update.
package dropdown

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/google/uuid"

	"github.com/charmbracelet/velvet/event"
	"github.com/charmbracelet/velvet/interaction"
	"github.com/charmbracelet/velvet/internal/uiutil"
	"github.com/charmbracelet/velvet/item"
	"github.com/charmbracelet/velvet/overlay"
	"github.com/charmbracelet/velvet/selection"
	"github.com/charmbracelet/velvet/styles"
	"github.com/charmbracelet/velvet/typeahead"
	"github.com/charmbracelet/velvet/viewsync"
)

const (
	defaultWidth     = 28
	defaultMaxHeight = 8

	frameInterval = 40 * time.Millisecond
)

// fieldHeight is the rendered height of the closed field, border included.
const fieldHeight = 3

type animStepMsg struct {
	id  string
	tag int
}

type scrollStepMsg struct {
	id string
}

// Select is a single-select dropdown.
type Select struct {
	src     *item.SliceSource
	reg     *selection.Registry
	ctrl    *overlay.Controller
	matcher *typeahead.Matcher
	router  *interaction.Router
	stream  *event.Stream
	sync    *viewsync.Scheduler

	keyMap KeyMap
	styles styles.Styles

	id          string
	placeholder string
	width       int
	maxHeight   int
	quick       bool

	focused      bool
	frame        int
	tag          int
	offset       int
	targetOffset int
	scrollMode   viewsync.Mode
	announcement string

	queued []event.Event
}

// Option configures a [Select].
type Option func(*Select)

// WithPlaceholder sets the text shown while nothing is selected.
func WithPlaceholder(s string) Option {
	return func(m *Select) { m.placeholder = s }
}

// WithWidth sets the rendered width of the field and menu.
func WithWidth(w int) Option {
	return func(m *Select) { m.width = w }
}

// WithMaxHeight caps the number of menu rows shown at once.
func WithMaxHeight(h int) Option {
	return func(m *Select) { m.maxHeight = h }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Select) { m.keyMap = k }
}

// WithStyles replaces the default styles.
func WithStyles(s styles.Styles) Option {
	return func(m *Select) { m.styles = s }
}

// WithQuickMotion skips open and close transitions and scroll easing
// entirely, for reduced motion preferences and for tests.
func WithQuickMotion() Option {
	return func(m *Select) { m.quick = true }
}

// WithTypeaheadInterval overrides the typeahead buffer expiry.
func WithTypeaheadInterval(d time.Duration) Option {
	return func(m *Select) { m.matcher = typeahead.New(typeahead.WithInterval(d)) }
}

// New creates a select over the given options.
func New(items []*item.Item, opts ...Option) *Select {
	src := item.NewSliceSource(items...)
	stream := event.NewStream()
	reg := selection.NewRegistry(src, stream)
	ctrl := overlay.NewController(reg, stream)

	m := &Select{
		src:     src,
		reg:     reg,
		ctrl:    ctrl,
		matcher: typeahead.New(),
		stream:  stream,
		sync:    viewsync.NewScheduler(),

		keyMap: DefaultKeyMap(),
		styles: styles.DefaultStyles(),

		id:          uuid.NewString(),
		placeholder: "Select…",
		width:       defaultWidth,
		maxHeight:   defaultMaxHeight,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.router = interaction.NewRouter(interaction.Config{
		Registry: reg,
		Overlay:  ctrl,
		Matcher:  m.matcher,
	})

	stream.Subscribe(func(ev event.Event) {
		if ev.Type == event.Change && m.ctrl.AnnouncementsEnabled() && ev.Item != nil {
			m.announcement = ev.Item.Label()
		}
		m.queued = append(m.queued, ev)
	})

	return m
}

// Init implements [tea.Model].
func (m *Select) Init() tea.Cmd {
	return nil
}

// Focus gives the field keyboard focus.
func (m *Select) Focus() {
	m.focused = true
}

// Blur removes keyboard focus. An open menu dismisses without selecting.
func (m *Select) Blur() tea.Cmd {
	m.focused = false
	if m.ctrl.Phase() == overlay.Open {
		m.router.Dismiss()
		return m.closeCmd()
	}
	return m.drainCmd()
}

// Focused reports whether the field has keyboard focus.
func (m *Select) Focused() bool { return m.focused }

// Open expands the menu programmatically.
func (m *Select) Open() tea.Cmd {
	if !m.router.Open() {
		return nil
	}
	m.revealSelection()
	m.sync.Flush()
	m.applyScroll()
	return m.openCmd()
}

// Update implements the Bubble Tea update loop for the widget.
func (m *Select) Update(msg tea.Msg) (*Select, tea.Cmd) {
	m.reg.Sync()

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case animStepMsg:
		if msg.id != m.id || msg.tag != m.tag {
			return m, nil
		}
		if cmd := m.stepTransition(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case scrollStepMsg:
		if msg.id != m.id {
			return m, nil
		}
		// applyScroll below reschedules while the target is unmet.
		m.offset = viewsync.Step(m.offset, m.targetOffset)
	case tea.KeyPressMsg:
		if !m.focused {
			break
		}
		if m.ctrl.Visible() {
			cmds = append(cmds, m.handleMenuKey(msg)...)
		} else {
			cmds = append(cmds, m.handleFieldKey(msg)...)
		}
	}

	m.sync.Flush()
	if cmd := m.applyScroll(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.drainCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Sequence(cmds...)
}

func (m *Select) handleFieldKey(msg tea.KeyPressMsg) []tea.Cmd {
	if key.Matches(msg, m.keyMap.Open) && m.router.Open() {
		m.revealSelection()
		return []tea.Cmd{m.openCmd()}
	}
	// A refused open means the typeahead buffer is hot; the key extends the
	// buffer instead.
	if ch, ok := printableRune(msg); ok {
		res := m.router.TypeChar(ch)
		if res.Matched {
			m.revealIndex(res.Index)
		}
	}
	return nil
}

func (m *Select) handleMenuKey(msg tea.KeyPressMsg) []tea.Cmd {
	typing := m.router.State() == interaction.TypingAhead
	switch {
	case key.Matches(msg, m.keyMap.Close):
		m.router.Escape()
		return []tea.Cmd{m.closeCmd()}
	case key.Matches(msg, m.keyMap.Up):
		m.revealIndex(m.router.Navigate(-1))
	case key.Matches(msg, m.keyMap.Down):
		m.revealIndex(m.router.Navigate(1))
	case key.Matches(msg, m.keyMap.Home):
		m.revealIndex(m.router.Home())
	case key.Matches(msg, m.keyMap.End):
		m.revealIndex(m.router.End())
	case key.Matches(msg, m.keyMap.Confirm):
		// A hot buffer claims the space key for itself.
		if typing && msg.Text == " " {
			res := m.router.TypeChar(' ')
			if res.Matched {
				m.revealIndex(res.Index)
			}
			return nil
		}
		idx := m.router.ActiveIndex()
		if idx < 0 {
			m.router.Dismiss()
			return []tea.Cmd{m.closeCmd()}
		}
		res := m.router.Confirm(idx, interaction.SourceKeyboard)
		if res.Cancelled {
			return nil
		}
		m.matcher.Reset()
		m.ctrl.RequestClose(overlay.ReasonSelection)
		return []tea.Cmd{m.closeCmd()}
	default:
		if ch, ok := printableRune(msg); ok {
			res := m.router.TypeChar(ch)
			if res.Matched {
				m.revealIndex(res.Index)
			}
		}
	}
	return nil
}

// HandleClick routes a pointer press at widget-local coordinates. The caller
// translates from screen space.
func (m *Select) HandleClick(x, y int) tea.Cmd {
	inField := x >= 0 && x < m.width && y >= 0 && y < fieldHeight
	switch {
	case inField:
		if m.ctrl.Phase() == overlay.Open {
			m.router.Dismiss()
			return m.closeCmd()
		}
		if m.router.Open() {
			m.revealSelection()
			return m.openCmd()
		}
	case m.ctrl.Phase() == overlay.Open:
		row := y - fieldHeight - 1 + m.offset
		inMenu := x >= 0 && x < m.width && y >= fieldHeight
		if inMenu && row >= 0 && row < len(m.reg.Items()) {
			res := m.router.Confirm(row, interaction.SourcePointer)
			if res.Cancelled {
				return m.drainCmd()
			}
			m.ctrl.RequestClose(overlay.ReasonSelection)
			return m.closeCmd()
		}
		// Outside click.
		m.router.Dismiss()
		return m.closeCmd()
	}
	return nil
}

// stepTransition advances the open or close animation by one frame.
func (m *Select) stepTransition() tea.Cmd {
	m.frame++
	grown := (m.frame + 1) * viewsync.SmoothStepLines
	switch m.ctrl.Phase() {
	case overlay.Opening:
		if grown >= m.fullRows() {
			m.ctrl.FinishOpen()
			return nil
		}
	case overlay.Closing:
		if m.fullRows()-grown <= 0 {
			m.ctrl.FinishClose()
			return nil
		}
	default:
		return nil
	}
	return m.animCmd()
}

func (m *Select) openCmd() tea.Cmd {
	m.frame = 0
	m.tag++
	if m.quick {
		m.ctrl.FinishOpen()
		return nil
	}
	return m.animCmd()
}

func (m *Select) closeCmd() tea.Cmd {
	m.frame = 0
	m.tag++
	if m.quick {
		m.ctrl.FinishClose()
		return m.drainCmd()
	}
	return m.animCmd()
}

func (m *Select) animCmd() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return animStepMsg{id: id, tag: tag}
	})
}

func (m *Select) scrollCmd() tea.Cmd {
	id := m.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return scrollStepMsg{id: id}
	})
}

// revealIndex schedules a smoothly eased scroll that brings the given row
// into view, for focus traversal. Scheduling is keyed, so several moves
// within one update coalesce into a single reveal of the final row.
func (m *Select) revealIndex(idx int) {
	m.reveal(idx, viewsync.Smooth)
}

// revealSelection restores the viewport onto the canonical selection with
// an instantaneous jump, as when the menu opens onto a preselected item.
func (m *Select) revealSelection() {
	m.reveal(m.reg.SelectedIndex(), viewsync.Instant)
}

func (m *Select) reveal(idx int, mode viewsync.Mode) {
	if idx < 0 {
		return
	}
	m.sync.Schedule("reveal", func() {
		m.scrollMode = mode
		m.targetOffset = viewsync.RevealOffset(
			m.offset, m.fullRows(), len(m.reg.Items()), idx, idx+1,
		)
	})
}

// applyScroll moves the viewport toward the reveal target: instantly for
// selection restoration and quick-motion mode, one eased step at a time for
// focus traversal.
func (m *Select) applyScroll() tea.Cmd {
	if m.offset == m.targetOffset {
		return nil
	}
	if m.quick || m.scrollMode == viewsync.Instant || !m.ctrl.Visible() {
		m.offset = m.targetOffset
		return nil
	}
	return m.scrollCmd()
}

// drainCmd converts queued lifecycle and selection events into ordered
// Bubble Tea messages.
func (m *Select) drainCmd() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}
	evs := m.queued
	m.queued = nil

	var msgs []tea.Msg
	for _, ev := range evs {
		switch ev.Type {
		case event.Input:
			msgs = append(msgs, SelectionInputMsg{Item: ev.Item, Index: ev.Index, Value: ev.Value})
		case event.Change:
			msgs = append(msgs, SelectionChangeMsg{Item: ev.Item, Index: ev.Index, Value: ev.Value})
		case event.Opened:
			msgs = append(msgs, OpenedMsg{})
		case event.Closed:
			msgs = append(msgs, ClosedMsg{Reason: overlay.Reason(ev.Reason)})
		}
	}
	return uiutil.Sequenced(msgs...)
}

// View renders the field with the menu expanded beneath it when visible.
func (m *Select) View() string {
	field := m.FieldView()
	if !m.ctrl.Visible() {
		return field
	}
	return lipgloss.JoinVertical(lipgloss.Left, field, m.MenuView())
}

// FieldView renders only the closed field, for callers that layer the menu
// themselves.
func (m *Select) FieldView() string {
	s := m.styles.Dropdown

	fieldStyle := s.FieldBlurred
	if m.focused {
		fieldStyle = s.FieldFocused
	}

	arrow := ArrowFor(m.ctrl.Phase())
	labelW := max(1, m.width-4-lipgloss.Width(arrow)-1)

	var text string
	if label := m.reg.Label(); label != "" {
		text = m.styles.Base.Render(ansi.Truncate(label, labelW, "…"))
	} else {
		text = s.Placeholder.Render(ansi.Truncate(m.placeholder, labelW, "…"))
	}

	gap := labelW - lipgloss.Width(text)
	line := text + strings.Repeat(" ", max(1, gap+1)) + s.Arrow.Render(arrow)
	return fieldStyle.Width(m.width - 2).Render(line)
}

// MenuView renders the option menu for the current transition frame.
// Empty when the menu is fully closed.
func (m *Select) MenuView() string {
	if !m.ctrl.Visible() {
		return ""
	}
	s := m.styles.Dropdown

	items := m.reg.Items()
	rows := m.fullRows()
	grown := (m.frame + 1) * viewsync.SmoothStepLines
	switch m.ctrl.Phase() {
	case overlay.Opening:
		rows = ordered.Clamp(grown, 1, rows)
	case overlay.Closing:
		rows = ordered.Clamp(rows-grown, 1, rows)
	}

	offset := ordered.Clamp(m.offset, 0, max(0, len(items)-rows))
	lines := make([]string, 0, rows)
	for i := offset; i < offset+rows && i < len(items); i++ {
		lines = append(lines, m.optionView(items[i]))
	}

	menuStyle := s.Menu
	if m.ctrl.Phase() == overlay.Opening || m.ctrl.Phase() == overlay.Closing {
		menuStyle = s.MenuOpening
	}
	return menuStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Select) optionView(it *item.Item) string {
	s := m.styles.Dropdown

	style := s.Option
	switch {
	case it.Disabled():
		style = s.OptionDisabled
	case it.Active():
		style = s.OptionActive
	case it.Selected():
		style = s.OptionSelected
	}

	mark := "  "
	if it.Selected() {
		mark = styles.CheckIcon + " "
	}
	label := ansi.Truncate(it.Label(), max(1, m.width-6), "…")
	return style.Width(m.width - 4).Render(mark + label)
}

// Announcement returns the latest live announcement: the label of the last
// selection made while the menu was closed, typeahead included.
// Announcements are suppressed while the menu is anything but fully closed.
func (m *Select) Announcement() string { return m.announcement }

// ArrowFor returns the field arrow for an overlay phase.
func ArrowFor(p overlay.Phase) string {
	if p == overlay.Closed {
		return styles.ArrowCollapsed
	}
	return styles.ArrowExpanded
}

// Phase exposes the menu lifecycle phase.
func (m *Select) Phase() overlay.Phase { return m.ctrl.Phase() }

// Value returns the canonical selected value, empty when nothing is
// selected.
func (m *Select) Value() string { return m.reg.Value() }

// Label returns the selected option's label.
func (m *Select) Label() string { return m.reg.Label() }

// SelectedIndex returns the selected option's index, -1 when none.
func (m *Select) SelectedIndex() int { return m.reg.SelectedIndex() }

// Selected returns the selected option.
func (m *Select) Selected() (*item.Item, int, bool) { return m.reg.Selected() }

// SelectedItems returns the selected options as a slice of zero or one.
func (m *Select) SelectedItems() []*item.Item { return m.reg.SelectedItems() }

// SetValue selects the option with the given value. A value with no match
// yet is remembered and applied when a matching option appears.
func (m *Select) SetValue(v string) { m.reg.SelectValue(v) }

// SetSelectedIndex selects the option at idx; -1 clears. An out-of-range
// index is remembered and applied when the options grow to cover it.
func (m *Select) SetSelectedIndex(idx int) { m.reg.SelectIndex(idx) }

// ClearSelection removes the selection.
func (m *Select) ClearSelection() { m.reg.Select(nil) }

// Options returns a snapshot of the option set.
func (m *Select) Options() []*item.Item { return m.src.Items() }

// SetOptions replaces the option set and applies any remembered value or
// index against it.
func (m *Select) SetOptions(items ...*item.Item) {
	m.src.Set(items...)
	m.reg.Sync()
}

// AppendOptions adds options and applies any remembered value or index.
func (m *Select) AppendOptions(items ...*item.Item) {
	m.src.Append(items...)
	m.reg.Sync()
}

// RemoveOption removes one option. A removed selection keeps reporting its
// last value until the next selection settles.
func (m *Select) RemoveOption(it *item.Item) {
	m.src.Remove(it)
}

// Intercept registers a confirm interceptor. See [interaction.Router].
func (m *Select) Intercept(fn interaction.Interceptor) (remove func()) {
	return m.router.Intercept(fn)
}

// Subscribe attaches a listener to the widget's event stream.
func (m *Select) Subscribe(fn event.Listener) (unsubscribe func()) {
	return m.stream.Subscribe(fn)
}

// ShortHelp implements [help.KeyMap].
func (m *Select) ShortHelp() []key.Binding { return m.keyMap.ShortHelp() }

// FullHelp implements [help.KeyMap].
func (m *Select) FullHelp() [][]key.Binding { return m.keyMap.FullHelp() }

func (m *Select) fullRows() int {
	n := m.src.Len()
	if n == 0 {
		return 1
	}
	return min(n, m.maxHeight)
}

func printableRune(msg tea.KeyPressMsg) (rune, bool) {
	if msg.Text == "" {
		return 0, false
	}
	rs := []rune(msg.Text)
	if len(rs) != 1 {
		return 0, false
	}
	return rs[0], true
}
