package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/tui/themes"
)

// LookupRequestedMsg asks the controller to fetch one transaction by its
// custom order id. The id is already validated as non-empty.
type LookupRequestedMsg struct {
	OrderID string
}

// LookupModel is the single-transaction lookup view: an order-id input plus
// the fetched record or an error.
type LookupModel struct {
	theme      themes.Theme
	input      textinput.Model
	result     *model.Transaction
	errText    string
	validation string
	loading    bool
	width      int
}

// NewLookup creates the lookup view.
func NewLookup(theme themes.Theme) LookupModel {
	input := textinput.New()
	input.Placeholder = "Enter a custom order id..."
	input.CharLimit = 64
	input.Focus()

	return LookupModel{
		theme: theme,
		input: input,
		width: 80,
	}
}

// Focus gives keyboard focus to the input.
func (m *LookupModel) Focus() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

// SetLoading marks a lookup as in flight.
func (m *LookupModel) SetLoading() {
	m.loading = true
	m.result = nil
	m.errText = ""
}

// SetResult shows a fetched transaction.
func (m *LookupModel) SetResult(txn model.Transaction) {
	m.loading = false
	m.result = &txn
	m.errText = ""
}

// SetError shows a lookup failure, sourced from the server's message.
func (m *LookupModel) SetError(text string) {
	m.loading = false
	m.result = nil
	m.errText = text
}

// Update handles messages.
func (m LookupModel) Update(msg tea.Msg) (LookupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "enter" {
			id := strings.TrimSpace(m.input.Value())
			if id == "" {
				// Validation failure: no request leaves the client.
				m.validation = "Enter an order id to look up."
				return m, nil
			}
			m.validation = ""
			return m, func() tea.Msg {
				return LookupRequestedMsg{OrderID: id}
			}
		}
	}

	newInput, cmd := m.input.Update(msg)
	m.input = newInput
	return m, cmd
}

// View renders the lookup form and the current result.
func (m LookupModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Transaction status lookup"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.validation != "":
		b.WriteString(m.theme.ErrorLine.Render(m.validation))
	case m.loading:
		b.WriteString(m.theme.Muted.Render("Looking up..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorLine.Render(m.errText))
	case m.result != nil:
		b.WriteString(RenderDetail(m.theme, *m.result, m.width))
	default:
		b.WriteString(m.theme.Muted.Render("Press enter to look up an order."))
	}

	return b.String()
}
