package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/google/uuid"

	"github.com/charmbracelet/velvet/dropdown"
	"github.com/charmbracelet/velvet/internal/csync"
	"github.com/charmbracelet/velvet/item"
	"github.com/charmbracelet/velvet/overlay"
	"github.com/charmbracelet/velvet/tabs"
)

// Screen offsets of the widgets, used to translate mouse coordinates and to
// anchor the menu overlay.
const (
	padX   = 2
	padY   = 1
	fieldY = padY + 2
	menuY  = fieldY + 3
	tabsY  = menuY + 1
)

const maxEventLog = 4

type section int

const (
	sectionDropdown section = iota
	sectionTabs
)

type galleryOptions struct {
	QuickMotion bool
	ManualTabs  bool
}

type galleryKeyMap struct {
	Section key.Binding
	Load    key.Binding
	Quit    key.Binding
}

func defaultGalleryKeyMap() galleryKeyMap {
	return galleryKeyMap{
		Section: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch section"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "fetch more themes"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type themesLoadedMsg struct {
	items []*item.Item
}

type gallery struct {
	sel  *dropdown.Select
	tabs *tabs.Tabs

	keyMap galleryKeyMap
	help   help.Model
	spin   spinner.Model

	section  section
	loading  bool
	loads    *csync.Value[int]
	eventLog []string

	width, height int
}

func newGallery(opts galleryOptions) *gallery {
	selOpts := []dropdown.Option{
		dropdown.WithPlaceholder("Pick a theme"),
		dropdown.WithMaxHeight(6),
	}
	if opts.QuickMotion {
		selOpts = append(selOpts, dropdown.WithQuickMotion())
	}

	sel := dropdown.New([]*item.Item{
		item.New("charple", "Charple"),
		item.New("dolly", "Dolly"),
		item.New("julep", "Julep"),
		item.New("malibu", "Malibu"),
		item.NewDisabled("classified", "Classified"),
		item.New("sardine", "Sardine"),
		item.New("zest", "Zest"),
	}, selOpts...)
	sel.Focus()

	tabOpts := []tabs.Option{tabs.WithWidth(46)}
	if opts.ManualTabs {
		tabOpts = append(tabOpts, tabs.WithManualActivation())
	}

	tb := tabs.New([]tabs.Tab{
		{Value: "appearance", Label: "Appearance", Content: "Colors, fonts and motion preferences."},
		{Value: "keys", Label: "Keys", Content: "Key bindings for every widget."},
		{Value: "sync", Label: "Sync", Content: "Where settings are stored and synced.", Disabled: true},
		{Value: "about", Label: "About", Content: "Velvet, a selection widget library."},
	}, tabOpts...)

	return &gallery{
		sel:    sel,
		tabs:   tb,
		keyMap: defaultGalleryKeyMap(),
		help:   help.New(),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(charmtone.Charple)),
		),
		loads: csync.NewValue(0),
	}
}

func (m *gallery) Init() tea.Cmd {
	return nil
}

func (m *gallery) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width - 2*padX)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case themesLoadedMsg:
		m.loading = false
		m.sel.AppendOptions(msg.items...)
		slog.Info("themes loaded", "count", len(msg.items))
		return m, nil

	case dropdown.SelectionInputMsg:
		slog.Debug("theme input", "value", msg.Value, "index", msg.Index)
		return m, nil
	case dropdown.SelectionChangeMsg:
		m.logEvent(fmt.Sprintf("theme → %s", msg.Item.Label()))
		slog.Info("theme changed", "value", msg.Value)
		return m, nil
	case dropdown.OpenedMsg:
		slog.Debug("menu opened")
		return m, nil
	case dropdown.ClosedMsg:
		slog.Debug("menu closed", "reason", msg.Reason)
		return m, nil
	case tabs.TabChangeMsg:
		m.logEvent(fmt.Sprintf("tab → %s", msg.Item.Label()))
		slog.Info("tab changed", "value", msg.Value)
		return m, nil

	case tea.MouseClickMsg:
		return m, m.handleClick(msg.X, msg.Y)

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Section) && m.sel.Phase() == overlay.Closed:
			cmds = append(cmds, m.switchSection())
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keyMap.Load):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.loadThemes())
		}
	}

	// Everything else belongs to the widgets. Keys go to the focused one;
	// ticks and other messages go to both.
	_, isKey := msg.(tea.KeyPressMsg)
	if !isKey || m.section == sectionDropdown {
		var cmd tea.Cmd
		m.sel, cmd = m.sel.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.section == sectionTabs {
		var cmd tea.Cmd
		m.tabs, cmd = m.tabs.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *gallery) switchSection() tea.Cmd {
	if m.section == sectionDropdown {
		m.section = sectionTabs
		m.tabs.Focus()
		return m.sel.Blur()
	}
	m.section = sectionDropdown
	m.tabs.Blur()
	m.sel.Focus()
	return nil
}

func (m *gallery) handleClick(x, y int) tea.Cmd {
	// An open menu claims the pointer wherever it lands.
	if m.sel.Phase() != overlay.Closed {
		return m.sel.HandleClick(x-padX, y-fieldY)
	}
	switch {
	case y >= fieldY && y < fieldY+3:
		if m.section != sectionDropdown {
			m.switchSection()
		}
		return m.sel.HandleClick(x-padX, y-fieldY)
	case y == tabsY:
		if m.section != sectionTabs {
			m.switchSection()
		}
		m.tabs.HandleClick(x-padX, 0)
	}
	return nil
}

func (m *gallery) loadThemes() tea.Cmd {
	loads := m.loads
	return func() tea.Msg {
		time.Sleep(600 * time.Millisecond)
		loads.Set(loads.Get() + 1)

		names := []string{"Rosé Quartz", "Gruvbox", "Nordfjord", "Catppuccin"}
		items := make([]*item.Item, len(names))
		for i, name := range names {
			items[i] = item.New(uuid.NewString(), name)
		}
		return themesLoadedMsg{items: items}
	}
}

func (m *gallery) logEvent(s string) {
	m.eventLog = append(m.eventLog, s)
	if len(m.eventLog) > maxEventLog {
		m.eventLog = m.eventLog[len(m.eventLog)-maxEventLog:]
	}
}

func (m *gallery) View() tea.View {
	layers := []*lipgloss.Layer{lipgloss.NewLayer(m.contentView())}
	if menu := m.sel.MenuView(); menu != "" {
		layers = append(layers, lipgloss.NewLayer(menu).X(padX).Y(menuY))
	}

	var v tea.View
	v.Content = lipgloss.NewCanvas(layers...)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *gallery) contentView() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(charmtone.Charple)
	mutedStyle := lipgloss.NewStyle().Foreground(charmtone.Squid)

	var helpView string
	switch m.section {
	case sectionDropdown:
		helpView = m.help.View(m.sel)
	case sectionTabs:
		helpView = m.help.View(m.tabs)
	}

	var status string
	switch {
	case m.loading:
		status = m.spin.View() + " fetching themes…"
	case len(m.eventLog) > 0:
		status = mutedStyle.Render(strings.Join(m.eventLog, " · "))
	default:
		status = mutedStyle.Render(fmt.Sprintf("%d theme loads", m.loads.Get()))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Velvet"),
		"",
		m.sel.FieldView(),
		"",
		m.tabs.View(),
		"",
		status,
		helpView,
	)
	return lipgloss.NewStyle().Padding(padY, padX).Render(content)
}
