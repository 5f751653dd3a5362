package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harlow-hs/paydash/internal/tui/components"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.view {
	case ViewTransactions:
		b.WriteString(m.stats.View())
		b.WriteString("\n")
		if m.searching {
			b.WriteString(m.searchInput.View())
			b.WriteString("\n")
		}
		b.WriteString(m.table.View())

	case ViewDetail:
		if m.detail != nil {
			b.WriteString(components.RenderDetail(m.theme, *m.detail, m.width))
			b.WriteString("\n")
			b.WriteString(m.theme.Help.Render("Esc to go back"))
		}

	case ViewLookup:
		b.WriteString(m.lookup.View())

	case ViewHelp:
		b.WriteString(m.helpView())
	}

	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

func (m Model) header() string {
	title := m.theme.Title.Render("paydash")

	subtitle := "school payments"
	if m.cfg.SchoolID != "" {
		subtitle = "school " + m.cfg.SchoolID
	}
	if m.cfg.Session != nil && m.cfg.Session.User() != nil {
		subtitle += " · " + m.cfg.Session.User().Email
	}

	loading := ""
	if m.loading {
		loading = " " + m.spinner.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ",
		m.theme.Subtitle.Render(subtitle),
		loading,
	)
}

func (m Model) footer() string {
	if m.errorText != "" {
		return m.theme.ErrorLine.Render(m.errorText) +
			m.theme.Help.Render("  ·  r to retry")
	}
	if m.statusText != "" {
		return m.theme.StatusLine.Render(m.statusText)
	}

	parts := make([]string, 0, 8)
	for _, binding := range m.keymap.ShortHelp() {
		parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
	}
	return m.theme.Help.Render(strings.Join(parts, " · "))
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Keys"))
	b.WriteString("\n\n")

	for _, group := range m.keymap.FullHelp() {
		for _, binding := range group {
			b.WriteString(m.theme.Bold.Render(padRight(binding.Help().Key, 10)))
			b.WriteString(m.theme.Normal.Render(binding.Help().Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render("Esc to go back"))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
