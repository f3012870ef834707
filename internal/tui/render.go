package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/7ntys/chaos-lab/internal/menu"
	"github.com/7ntys/chaos-lab/internal/view"
)

// Copy shown on every page.
const (
	heroKicker  = "Chaos Engineering Playground"
	heroTitle   = "Chaos Cafe"
	heroTagline = "A production-like cafe app stack with a Go backend, a terminal client and a load balancer in between."

	loadingText     = "Loading menu..."
	specialsHeading = "Today's Specials"
	menuHeading     = "Menu"
	noSpecialsText  = "No specials today."
	emptyMenuText   = "The menu is empty."
)

// RenderStyled renders the full page for s using Lip Gloss.
// grouped must be derived from s.Items().
func RenderStyled(s view.State, grouped menu.Grouped, width int) string {
	if width < minWidth {
		width = minWidth
	}

	sections := []string{renderHero(width)}
	sections = append(sections, renderStatus(s)...)
	if s.Phase() == view.PhaseLoaded {
		sections = append(sections,
			PanelStyle.Render(renderSpecials(s.Specials(), width)),
			PanelStyle.Render(renderMenu(grouped, width)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func renderHero(width int) string {
	tagline := SubtleStyle.Width(width - borderPadding).Render(heroTagline)
	return lipgloss.JoinVertical(lipgloss.Left,
		KickerStyle.Render(strings.ToUpper(heroKicker)),
		TitleStyle.Render(heroTitle),
		tagline,
	)
}

// renderStatus returns the loading or error line, if any.
func renderStatus(s view.State) []string {
	if s.IsLoading() {
		return []string{StatusStyle.Render(loadingText)}
	}
	if msg, failed := s.Error(); failed {
		return []string{ErrorStyle.Render(msg)}
	}
	return nil
}

func renderSpecials(specials []menu.Special, width int) string {
	lines := []string{HeaderStyle.Render(specialsHeading)}
	if len(specials) == 0 {
		lines = append(lines, SubtleStyle.Render(noSpecialsText))
	}

	cardWidth := width - borderPadding*2
	for _, special := range specials {
		body := lipgloss.JoinVertical(lipgloss.Left,
			CategoryStyle.Render(special.Title),
			special.Description,
		)
		lines = append(lines, CardStyle.Width(cardWidth).Render(body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMenu(grouped menu.Grouped, width int) string {
	lines := []string{HeaderStyle.Render(menuHeading)}
	if len(grouped) == 0 {
		lines = append(lines, SubtleStyle.Render(emptyMenuText))
	}

	for _, category := range grouped {
		lines = append(lines, "", CategoryStyle.Render(category.Name))
		for _, item := range category.Items {
			lines = append(lines, renderMenuItem(item, width))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMenuItem(item menu.Item, width int) string {
	price := PriceStyle.Render(FormatPrice(item.PriceCents))
	name := lipgloss.NewStyle().Bold(true).Render(item.Name)

	gap := width - borderPadding - lipgloss.Width(name) - lipgloss.Width(price)
	if gap < 1 {
		gap = 1
	}
	header := "  " + name + strings.Repeat(" ", gap) + price

	if item.Description == "" {
		return header
	}
	desc := SubtleStyle.Width(width - borderPadding*2).Render(item.Description)
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.NewStyle().PaddingLeft(4).Render(desc))
}

// RenderPlain renders the page as unstyled text suitable for pipes and logs.
func RenderPlain(s view.State, grouped menu.Grouped) string {
	var b strings.Builder

	fmt.Fprintln(&b, heroKicker)
	fmt.Fprintln(&b, heroTitle)
	fmt.Fprintln(&b, heroTagline)
	fmt.Fprintln(&b)

	if s.IsLoading() {
		fmt.Fprintln(&b, loadingText)
		return b.String()
	}
	if msg, failed := s.Error(); failed {
		fmt.Fprintln(&b, msg)
		return b.String()
	}

	fmt.Fprintln(&b, specialsHeading)
	if len(s.Specials()) == 0 {
		fmt.Fprintln(&b, noSpecialsText)
	}
	for _, special := range s.Specials() {
		fmt.Fprintf(&b, "- %s: %s\n", special.Title, special.Description)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, menuHeading)
	if len(grouped) == 0 {
		fmt.Fprintln(&b, emptyMenuText)
	}
	for _, category := range grouped {
		fmt.Fprintln(&b, category.Name)
		for _, item := range category.Items {
			fmt.Fprintf(&b, "  %s  %s\n", item.Name, FormatPrice(item.PriceCents))
			if item.Description != "" {
				fmt.Fprintf(&b, "    %s\n", item.Description)
			}
		}
	}

	return b.String()
}
