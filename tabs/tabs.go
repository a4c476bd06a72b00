// Package tabs implements a tab bar with attached panels.
//
// The bar reuses the same selection machinery as the dropdown: a
// [selection.Registry] holds the active tab, an [interaction.Router]
// arbitrates keyboard and pointer input, and a [viewsync.Scheduler]
// coalesces horizontal reveal scrolling when the bar overflows. There is no
// overlay: tabs have no open or close lifecycle.
//
// Activation comes in two modes. In automatic mode (the default) moving the
// focus highlight activates the tab it lands on. In manual mode arrow keys
// only move the highlight and enter or space activates it.
package tabs

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/charmbracelet/velvet/event"
	"github.com/charmbracelet/velvet/interaction"
	"github.com/charmbracelet/velvet/internal/uiutil"
	"github.com/charmbracelet/velvet/item"
	"github.com/charmbracelet/velvet/selection"
	"github.com/charmbracelet/velvet/styles"
	"github.com/charmbracelet/velvet/viewsync"
)

const (
	defaultWidth       = 60
	defaultMaxTabWidth = 16
)

// Variant is the visual flavor of the bar.
type Variant int

const (
	// Primary renders an indicator line under the bar.
	Primary Variant = iota
	// Secondary renders the active tab with an inverted cell and no
	// indicator.
	Secondary
)

// Tab describes one tab on construction.
type Tab struct {
	Value    string
	Label    string
	Content  string
	Disabled bool
}

// Tabs is a tab bar with panels.
type Tabs struct {
	src    *item.SliceSource
	reg    *selection.Registry
	router *interaction.Router
	stream *event.Stream
	sync   *viewsync.Scheduler

	keyMap KeyMap
	styles styles.Styles

	variant     Variant
	manual      bool
	width       int
	maxTabWidth int

	content map[string]string

	focused   bool
	barOffset int

	queued []event.Event
}

// Option configures a [Tabs].
type Option func(*Tabs)

// WithVariant sets the visual flavor.
func WithVariant(v Variant) Option {
	return func(m *Tabs) { m.variant = v }
}

// WithManualActivation makes arrow keys move only the highlight; enter or
// space activates.
func WithManualActivation() Option {
	return func(m *Tabs) { m.manual = true }
}

// WithWidth sets the rendered width of bar and panel.
func WithWidth(w int) Option {
	return func(m *Tabs) { m.width = w }
}

// WithMaxTabWidth caps a single tab's label width before truncation.
func WithMaxTabWidth(w int) Option {
	return func(m *Tabs) { m.maxTabWidth = w }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Tabs) { m.keyMap = k }
}

// WithStyles replaces the default styles.
func WithStyles(s styles.Styles) Option {
	return func(m *Tabs) { m.styles = s }
}

// New creates a tab bar. The first enabled tab starts active.
func New(defs []Tab, opts ...Option) *Tabs {
	items := make([]*item.Item, 0, len(defs))
	content := make(map[string]string, len(defs))
	for _, d := range defs {
		it := item.New(d.Value, d.Label)
		it.SetDisabled(d.Disabled)
		items = append(items, it)
		content[it.Value()] = d.Content
	}

	src := item.NewSliceSource(items...)
	stream := event.NewStream()
	reg := selection.NewRegistry(src, stream)

	m := &Tabs{
		src:    src,
		reg:    reg,
		stream: stream,
		sync:   viewsync.NewScheduler(),

		keyMap: DefaultKeyMap(),
		styles: styles.DefaultStyles(),

		width:       defaultWidth,
		maxTabWidth: defaultMaxTabWidth,
		content:     content,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.router = interaction.NewRouter(interaction.Config{
		Registry:      reg,
		SelectOnFocus: !m.manual,
	})

	// The default tab settles before anyone can subscribe, so the initial
	// selection never reaches the host.
	for i, it := range items {
		if !it.Disabled() {
			reg.Select(it)
			it.SetActive(true)
			m.revealTab(i)
			break
		}
	}
	m.sync.Flush()

	stream.Subscribe(func(ev event.Event) {
		m.queued = append(m.queued, ev)
	})

	return m
}

// Init implements [tea.Model].
func (m *Tabs) Init() tea.Cmd {
	return nil
}

// Focus gives the bar keyboard focus.
func (m *Tabs) Focus() {
	m.focused = true
	if _, idx, ok := m.reg.Selected(); ok {
		m.revealTab(idx)
		m.sync.Flush()
	}
}

// Blur removes keyboard focus and drops any unactivated highlight.
func (m *Tabs) Blur() {
	m.focused = false
	m.router.Dismiss()
	if sel, _, ok := m.reg.Selected(); ok {
		sel.SetActive(true)
	}
}

// Focused reports whether the bar has keyboard focus.
func (m *Tabs) Focused() bool { return m.focused }

// Update implements the Bubble Tea update loop for the widget.
func (m *Tabs) Update(msg tea.Msg) (*Tabs, tea.Cmd) {
	m.reg.Sync()

	if msg, ok := msg.(tea.KeyPressMsg); ok && m.focused {
		m.handleKey(msg)
	}

	m.sync.Flush()
	return m, m.drainCmd()
}

func (m *Tabs) handleKey(msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, m.keyMap.Prev):
		m.revealTab(m.router.Navigate(-1))
	case key.Matches(msg, m.keyMap.Next):
		m.revealTab(m.router.Navigate(1))
	case key.Matches(msg, m.keyMap.Home):
		m.revealTab(m.router.Home())
	case key.Matches(msg, m.keyMap.End):
		m.revealTab(m.router.End())
	case key.Matches(msg, m.keyMap.Activate):
		idx := m.router.ActiveIndex()
		if idx < 0 {
			idx = m.reg.SelectedIndex()
		}
		if idx >= 0 {
			m.router.Confirm(idx, interaction.SourceKeyboard)
		}
	}
}

// HandleClick routes a pointer press at widget-local coordinates. Clicks on
// the bar activate the tab under the pointer regardless of activation mode.
func (m *Tabs) HandleClick(x, y int) {
	if y != 0 || x < 0 {
		return
	}
	col := x + m.barOffset
	for i, w := range m.cellWidths() {
		if col < w {
			m.router.Confirm(i, interaction.SourcePointer)
			m.revealTab(i)
			m.sync.Flush()
			return
		}
		col -= w
	}
}

// revealTab schedules a horizontal scroll that brings the tab into view.
// Repeated moves within one update coalesce into a single reveal.
func (m *Tabs) revealTab(idx int) {
	if idx < 0 {
		return
	}
	m.sync.Schedule("reveal", func() {
		widths := m.cellWidths()
		start := 0
		for i := 0; i < idx && i < len(widths); i++ {
			start += widths[i]
		}
		end := start
		if idx < len(widths) {
			end += widths[idx]
		}
		total := 0
		for _, w := range widths {
			total += w
		}
		m.barOffset = viewsync.RevealOffset(m.barOffset, m.width, total, start, end)
	})
}

func (m *Tabs) drainCmd() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}
	evs := m.queued
	m.queued = nil

	var msgs []tea.Msg
	for _, ev := range evs {
		switch ev.Type {
		case event.Input:
			msgs = append(msgs, TabInputMsg{Item: ev.Item, Index: ev.Index, Value: ev.Value})
		case event.Change:
			msgs = append(msgs, TabChangeMsg{Item: ev.Item, Index: ev.Index, Value: ev.Value})
		}
	}
	return uiutil.Sequenced(msgs...)
}

// View renders the bar and the active tab's panel.
func (m *Tabs) View() string {
	parts := []string{m.BarView()}
	if m.variant == Primary {
		parts = append(parts, m.indicatorView())
	}
	if panel := m.PanelView(); panel != "" {
		parts = append(parts, panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// BarView renders only the tab bar row.
func (m *Tabs) BarView() string {
	items := m.reg.Items()
	cells := make([]string, len(items))
	for i, it := range items {
		cells[i] = m.cellView(it)
	}
	bar := strings.Join(cells, "")
	return m.styles.Tabs.Bar.Render(m.clip(bar))
}

func (m *Tabs) cellView(it *item.Item) string {
	s := m.styles.Tabs

	style := s.Tab
	switch {
	case it.Disabled():
		style = s.TabDisabled
	case it.Active() && !it.Selected():
		style = s.TabActive
	case it.Selected():
		style = s.TabSelected
		if m.variant == Secondary {
			style = style.Reverse(true)
		}
	}
	return style.Render(ansi.Truncate(it.Label(), m.maxTabWidth, "…"))
}

// indicatorView renders the underline row marking the active tab.
func (m *Tabs) indicatorView() string {
	s := m.styles.Tabs
	selIdx := m.reg.SelectedIndex()

	var b strings.Builder
	for i, w := range m.cellWidths() {
		seg := strings.Repeat("─", w)
		if i == selIdx {
			b.WriteString(s.IndicatorOn.Render(seg))
		} else {
			b.WriteString(s.IndicatorOff.Render(seg))
		}
	}
	return m.clip(b.String())
}

// clip windows a bar row to the visible columns.
func (m *Tabs) clip(row string) string {
	if m.barOffset > 0 {
		row = ansi.TruncateLeft(row, m.barOffset, "")
	}
	return ansi.Truncate(row, m.width, "")
}

// PanelView renders the active tab's content.
func (m *Tabs) PanelView() string {
	body, ok := m.content[m.reg.Value()]
	if !ok || body == "" {
		return ""
	}
	return m.styles.Tabs.Panel.Width(m.width).Render(body)
}

func (m *Tabs) cellWidths() []int {
	items := m.reg.Items()
	widths := make([]int, len(items))
	for i, it := range items {
		widths[i] = lipgloss.Width(m.cellView(it))
	}
	return widths
}

// Value returns the active tab's value.
func (m *Tabs) Value() string { return m.reg.Value() }

// Label returns the active tab's label.
func (m *Tabs) Label() string { return m.reg.Label() }

// SelectedIndex returns the active tab's index, -1 when none.
func (m *Tabs) SelectedIndex() int { return m.reg.SelectedIndex() }

// ActiveIndex returns the index carrying the focus highlight, -1 when none.
func (m *Tabs) ActiveIndex() int { return m.router.ActiveIndex() }

// SetValue activates the tab with the given value. A value with no match
// yet is remembered and applied when a matching tab appears.
func (m *Tabs) SetValue(v string) { m.reg.SelectValue(v) }

// SetSelectedIndex activates the tab at idx. An out-of-range index is
// remembered and applied when the tabs grow to cover it.
func (m *Tabs) SetSelectedIndex(idx int) { m.reg.SelectIndex(idx) }

// Items returns a snapshot of the tab items.
func (m *Tabs) Items() []*item.Item { return m.src.Items() }

// Append adds tabs to the end of the bar.
func (m *Tabs) Append(defs ...Tab) {
	for _, d := range defs {
		it := item.New(d.Value, d.Label)
		it.SetDisabled(d.Disabled)
		m.src.Append(it)
		m.content[it.Value()] = d.Content
	}
	m.reg.Sync()
}

// SetContent replaces one tab's panel content.
func (m *Tabs) SetContent(value, body string) {
	m.content[value] = body
}

// Intercept registers a confirm interceptor. See [interaction.Router].
func (m *Tabs) Intercept(fn interaction.Interceptor) (remove func()) {
	return m.router.Intercept(fn)
}

// Subscribe attaches a listener to the widget's event stream.
func (m *Tabs) Subscribe(fn event.Listener) (unsubscribe func()) {
	return m.stream.Subscribe(fn)
}

// ShortHelp implements [help.KeyMap].
func (m *Tabs) ShortHelp() []key.Binding { return m.keyMap.ShortHelp() }

// FullHelp implements [help.KeyMap].
func (m *Tabs) FullHelp() [][]key.Binding { return m.keyMap.FullHelp() }
