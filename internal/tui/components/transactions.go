// Package components contains the individual views composed into the
// dashboard: the transaction table, the stat cards, and the status lookup.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/tui/themes"
	"github.com/harlow-hs/paydash/internal/tui/viewmodel"
)

// TransactionSelectedMsg is sent when a row is chosen for detail view.
type TransactionSelectedMsg struct {
	Transaction model.Transaction
}

// TransactionTableModel renders one page of transactions with a pagination
// footer driven by server metadata.
type TransactionTableModel struct {
	theme        themes.Theme
	transactions []model.Transaction
	table        table.Model
	meta         model.PaginationMeta
	sortBy       string
	sortAsc      bool
	width        int
	height       int
}

// NewTransactionTable creates an empty transaction table.
func NewTransactionTable(theme themes.Theme) TransactionTableModel {
	columns := []table.Column{
		{Title: "Order ID", Width: 14},
		{Title: "School", Width: 14},
		{Title: "Gateway", Width: 10},
		{Title: "Order Amt", Width: 12},
		{Title: "Txn Amt", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Payment Time", Width: 17},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return TransactionTableModel{
		theme:  theme,
		table:  t,
		width:  80,
		height: 24,
	}
}

// SetData replaces the rendered page and its pagination metadata.
func (m *TransactionTableModel) SetData(txns []model.Transaction, meta model.PaginationMeta) {
	m.transactions = txns
	m.meta = meta

	rows := make([]table.Row, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, table.Row{
			viewmodel.Fallback(txn.CustomOrderID, txn.CollectID),
			viewmodel.Truncate(txn.SchoolID, 14),
			viewmodel.Fallback(txn.Gateway, "—"),
			viewmodel.FormatAmount(txn.OrderAmount),
			viewmodel.FormatAmount(txn.TransactionAmount),
			viewmodel.StatusLabel(txn.Status),
			viewmodel.FormatTime(txn.PaymentTime),
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

// SetSort records the active sort for the header hint.
func (m *TransactionTableModel) SetSort(field string, ascending bool) {
	m.sortBy = field
	m.sortAsc = ascending
}

// Meta returns the current pagination metadata.
func (m TransactionTableModel) Meta() model.PaginationMeta {
	return m.meta
}

// Selected returns the transaction under the cursor.
func (m TransactionTableModel) Selected() (model.Transaction, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.transactions) {
		return model.Transaction{}, false
	}
	return m.transactions[cursor], true
}

// Update handles messages.
func (m TransactionTableModel) Update(msg tea.Msg) (TransactionTableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, m.height-12))

	case tea.KeyMsg:
		if msg.String() == "enter" {
			if txn, ok := m.Selected(); ok {
				return m, func() tea.Msg {
					return TransactionSelectedMsg{Transaction: txn}
				}
			}
			return m, nil
		}
	}

	newTable, cmd := m.table.Update(msg)
	m.table = newTable
	return m, cmd
}

// View renders the table with its pagination footer.
func (m TransactionTableModel) View() string {
	var b strings.Builder

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

func (m TransactionTableModel) footer() string {
	controls := viewmodel.Controls(m.meta)

	prev := m.theme.Muted.Render("‹ prev")
	if controls.PrevEnabled {
		prev = m.theme.Bold.Render("‹ prev")
	}
	next := m.theme.Muted.Render("next ›")
	if controls.NextEnabled {
		next = m.theme.Bold.Render("next ›")
	}

	sortHint := ""
	if m.sortBy != "" {
		arrow := "↓"
		if m.sortAsc {
			arrow = "↑"
		}
		sortHint = m.theme.Muted.Render("  sort: " + m.sortBy + " " + arrow)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		prev, "  ",
		m.theme.StatusLine.Render(viewmodel.PageLabel(m.meta)), "  ",
		next,
		sortHint,
	)
}
