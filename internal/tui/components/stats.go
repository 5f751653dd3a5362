package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/tui/themes"
	"github.com/harlow-hs/paydash/internal/tui/viewmodel"
)

// StatsPanelModel renders the stat cards above the transaction table.
type StatsPanelModel struct {
	theme themes.Theme
	stats viewmodel.Stats
}

// NewStatsPanel creates an empty stats panel.
func NewStatsPanel(theme themes.Theme) StatsPanelModel {
	return StatsPanelModel{theme: theme}
}

// SetData recomputes the cards from the loaded page.
func (m *StatsPanelModel) SetData(txns []model.Transaction, meta model.PaginationMeta) {
	m.stats = viewmodel.BuildStats(txns, meta)
}

// View renders the cards in a row.
func (m StatsPanelModel) View() string {
	totalCard := m.card("Total",
		fmt.Sprintf("%d", m.stats.TotalCount),
		viewmodel.FormatAmount(m.stats.PageAmount)+" on page",
		m.theme.Normal)

	cards := []string{totalCard}
	statusStyles := map[model.Status]lipgloss.Style{
		model.StatusSuccess:   m.theme.StatusSuccess,
		model.StatusPending:   m.theme.StatusPending,
		model.StatusFailed:    m.theme.StatusFailed,
		model.StatusCancelled: m.theme.StatusCancelled,
	}

	for _, status := range model.KnownStatuses {
		stat := m.stats.ByStatus[status]
		cards = append(cards, m.card(
			viewmodel.StatusLabel(status),
			fmt.Sprintf("%d", stat.Count),
			viewmodel.FormatAmount(stat.Amount),
			statusStyles[status],
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m StatsPanelModel) card(label, value, sub string, valueStyle lipgloss.Style) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.CardLabel.Render(label),
		valueStyle.Bold(true).Render(value),
		m.theme.Muted.Render(sub),
	)
	return m.theme.Card.Render(content)
}
