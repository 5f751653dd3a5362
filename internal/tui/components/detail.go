package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/tui/themes"
	"github.com/harlow-hs/paydash/internal/tui/viewmodel"
)

// RenderDetail renders one transaction as a labelled field box, shared by the
// lookup view and the table's detail overlay.
func RenderDetail(theme themes.Theme, txn model.Transaction, width int) string {
	statusStyle := theme.Normal
	switch txn.Status {
	case model.StatusSuccess:
		statusStyle = theme.StatusSuccess
	case model.StatusPending:
		statusStyle = theme.StatusPending
	case model.StatusFailed:
		statusStyle = theme.StatusFailed
	case model.StatusCancelled:
		statusStyle = theme.StatusCancelled
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			theme.CardLabel.Width(16).Render(label),
			theme.Normal.Render(value),
		)
	}

	lines := []string{
		row("Order ID", viewmodel.Fallback(txn.CustomOrderID, "—")),
		row("Collect ID", viewmodel.Fallback(txn.CollectID, "—")),
		row("School", viewmodel.Fallback(txn.SchoolID, "—")),
		row("Gateway", viewmodel.Fallback(txn.Gateway, "—")),
		row("Order amount", viewmodel.FormatAmount(txn.OrderAmount)),
		row("Txn amount", viewmodel.FormatAmount(txn.TransactionAmount)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			theme.CardLabel.Width(16).Render("Status"),
			statusStyle.Render(viewmodel.StatusLabel(txn.Status)),
		),
		row("Payment time", viewmodel.FormatTime(txn.PaymentTime)),
		row("Payment mode", viewmodel.Fallback(txn.PaymentMode, "—")),
		row("Bank reference", viewmodel.Fallback(txn.BankReference, "—")),
	}

	if txn.ErrorMessage != "" {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			theme.CardLabel.Width(16).Render("Error"),
			theme.ErrorLine.Render(txn.ErrorMessage),
		))
	}

	if txn.Student != nil {
		lines = append(lines,
			"",
			theme.Subtitle.Render("Student"),
			row("Name", viewmodel.Fallback(txn.Student.Name, "—")),
			row("ID", viewmodel.Fallback(txn.Student.ID, "—")),
			row("Email", viewmodel.Fallback(txn.Student.Email, "—")),
		)
	}

	boxWidth := min(width-4, 64)
	return theme.Box.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
