// Package styles holds the shared look of velvet's widgets.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/lucasb-eyer/go-colorful"
)

// Icons used by the widgets.
const (
	ArrowCollapsed = "▾"
	ArrowExpanded  = "▴"
	CheckIcon      = "✓"
)

// Styles bundles every style the widgets need.
type Styles struct {
	// Base text styles.
	Base  lipgloss.Style
	Muted lipgloss.Style

	// Dropdown field and menu.
	Dropdown struct {
		FieldBlurred lipgloss.Style
		FieldFocused lipgloss.Style
		Placeholder  lipgloss.Style
		Arrow        lipgloss.Style

		Menu           lipgloss.Style
		MenuOpening    lipgloss.Style
		Option         lipgloss.Style
		OptionActive   lipgloss.Style
		OptionSelected lipgloss.Style
		OptionDisabled lipgloss.Style

		Announcement lipgloss.Style
	}

	// Tab bar and panel.
	Tabs struct {
		Bar          lipgloss.Style
		Tab          lipgloss.Style
		TabActive    lipgloss.Style
		TabSelected  lipgloss.Style
		TabDisabled  lipgloss.Style
		IndicatorOn  lipgloss.Style
		IndicatorOff lipgloss.Style
		Panel        lipgloss.Style
	}
}

// DefaultStyles returns the default charmtone look.
func DefaultStyles() Styles {
	var (
		primary = charmtone.Charple
		accent  = charmtone.Dolly

		bgBase    = charmtone.Pepper
		bgOverlay = charmtone.Iron

		fgBase   = charmtone.Ash
		fgMuted  = charmtone.Squid
		fgSubtle = charmtone.Oyster

		border      = charmtone.Charcoal
		borderFocus = charmtone.Charple
	)

	base := lipgloss.NewStyle().Foreground(fgBase)

	var s Styles
	s.Base = base
	s.Muted = base.Foreground(fgMuted)

	s.Dropdown.FieldBlurred = base.
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
	s.Dropdown.FieldFocused = s.Dropdown.FieldBlurred.
		BorderForeground(borderFocus)
	s.Dropdown.Placeholder = base.Foreground(fgSubtle)
	s.Dropdown.Arrow = base.Foreground(fgMuted)

	s.Dropdown.Menu = lipgloss.NewStyle().
		Background(bgOverlay).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
	s.Dropdown.MenuOpening = s.Dropdown.Menu.
		BorderForeground(blend(border, borderFocus, 0.5))

	s.Dropdown.Option = base.Padding(0, 1)
	s.Dropdown.OptionActive = s.Dropdown.Option.
		Foreground(charmtone.Butter).
		Background(blend(bgOverlay, primary, 0.4)).
		Bold(true)
	s.Dropdown.OptionSelected = s.Dropdown.Option.Foreground(accent)
	s.Dropdown.OptionDisabled = s.Dropdown.Option.Foreground(fgSubtle)

	s.Dropdown.Announcement = base.Foreground(fgMuted).Italic(true)

	s.Tabs.Bar = lipgloss.NewStyle().Background(bgBase)
	s.Tabs.Tab = base.Padding(0, 2).Foreground(fgMuted)
	s.Tabs.TabActive = s.Tabs.Tab.
		Foreground(charmtone.Butter).
		Bold(true)
	s.Tabs.TabSelected = s.Tabs.Tab.Foreground(accent).Bold(true)
	s.Tabs.TabDisabled = s.Tabs.Tab.Foreground(blend(bgBase, fgSubtle, 0.6))
	s.Tabs.IndicatorOn = lipgloss.NewStyle().Foreground(primary)
	s.Tabs.IndicatorOff = lipgloss.NewStyle().Foreground(border)
	s.Tabs.Panel = base.Padding(1, 2)

	return s
}

// blend mixes two colors in Luv space.
func blend(a, b color.Color, t float64) color.Color {
	ca, okA := colorful.MakeColor(a)
	cb, okB := colorful.MakeColor(b)
	if !okA || !okB {
		return a
	}
	return ca.BlendLuv(cb, t).Clamped()
}
