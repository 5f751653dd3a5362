// Package tui implements the interactive transaction dashboard.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harlow-hs/paydash/internal/common"
	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/query"
	"github.com/harlow-hs/paydash/internal/tui/components"
	"github.com/harlow-hs/paydash/internal/tui/themes"
)

// View represents the current view mode.
type View int

// Views.
const (
	ViewTransactions View = iota
	ViewDetail
	ViewLookup
	ViewHelp
)

// sortFields is the cycle order for the sort-column key.
var sortFields = []string{"payment_time", "order_amount", "transaction_amount", "status", "gateway"}

// statusCycle is the cycle order for the status-filter key; index 0 is
// "no status filter".
var statusCycle = []string{"", "success", "pending", "failed", "cancelled"}

// controller collects change events emitted by the query store so the update
// loop can turn each one into exactly one fetch command.
type controller struct {
	pending []fetchRequest
}

func (c *controller) record(s query.State, seq uint64) {
	c.pending = append(c.pending, fetchRequest{state: s, seq: seq})
}

func (c *controller) drain() []fetchRequest {
	reqs := c.pending
	c.pending = nil
	return reqs
}

// Model holds the dashboard state.
type Model struct {
	cfg         Config
	keymap      KeyMap
	theme       themes.Theme
	store       *query.Store
	ctrl        *controller
	table       components.TransactionTableModel
	stats       components.StatsPanelModel
	lookup      components.LookupModel
	searchInput textinput.Model
	spinner     spinner.Model
	detail      *model.Transaction
	lastTxns    []model.Transaction
	lastMeta    model.PaginationMeta
	statusText  string
	errorText   string
	view        View
	statusIdx   int
	width       int
	height      int
	searching   bool
	loading     bool
	expired     bool
	quitting    bool
}

// newModel creates a dashboard model from the given configuration.
func newModel(cfg Config) Model {
	theme := cfg.Theme

	initial := query.DefaultState()
	if cfg.InitialQuery != "" {
		if params, err := url.ParseQuery(cfg.InitialQuery); err == nil {
			initial = query.Decode(params)
		}
	}

	store := query.NewStore(initial)
	ctrl := &controller{}
	store.Subscribe(ctrl.record)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search transactions..."
	searchInput.CharLimit = 80
	searchInput.SetValue(initial.Search)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := Model{
		cfg:         cfg,
		keymap:      DefaultKeyMap(),
		theme:       theme,
		store:       store,
		ctrl:        ctrl,
		table:       components.NewTransactionTable(theme),
		stats:       components.NewStatsPanel(theme),
		lookup:      components.NewLookup(theme),
		searchInput: searchInput,
		spinner:     sp,
		view:        ViewTransactions,
		width:       80,
		height:      24,
	}
	m.statusIdx = initialStatusIndex(initial)

	return m
}

func initialStatusIndex(s query.State) int {
	if len(s.Statuses) != 1 {
		return 0
	}
	for i, status := range statusCycle {
		if status == s.Statuses[0] {
			return i
		}
	}
	return 0
}

// Init triggers the first fetch.
func (m Model) Init() tea.Cmd {
	m.store.Reload()
	return tea.Batch(append(m.pendingFetches(), m.spinner.Tick)...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table, _ = m.table.Update(msg)
		m.lookup, _ = m.lookup.Update(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case transactionsLoadedMsg:
		return m.handleTransactionsLoaded(msg)

	case lookupResultMsg:
		return m.handleLookupResult(msg)

	case components.TransactionSelectedMsg:
		txn := msg.Transaction
		m.detail = &txn
		m.view = ViewDetail

	case components.LookupRequestedMsg:
		m.lookup.SetLoading()
		cmds = append(cmds, m.lookupCmd(msg.OrderID), m.spinner.Tick)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch m.view {
	case ViewLookup:
		return m.handleLookupKey(msg)
	case ViewDetail, ViewHelp:
		if key.Matches(msg, m.keymap.Back) || key.Matches(msg, m.keymap.Quit) {
			m.view = ViewTransactions
			m.detail = nil
			return m, nil
		}
		return m, nil
	}

	return m.handleListKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		term := strings.TrimSpace(m.searchInput.Value())
		m.store.SetFilter(query.Filter{Search: &term})
		return m.startFetches()
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue(m.store.State().Search)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleLookupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ToggleView) {
		m.view = ViewTransactions
		return m, nil
	}

	var cmd tea.Cmd
	m.lookup, cmd = m.lookup.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keymap := m.keymap

	switch {
	case key.Matches(msg, keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keymap.Help):
		m.view = ViewHelp
		return m, nil

	case key.Matches(msg, keymap.ToggleView):
		m.view = ViewLookup
		return m, m.lookup.Focus()

	case key.Matches(msg, keymap.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keymap.NextPage):
		if m.table.Meta().HasNextPage {
			m.store.SetPage(m.store.State().Page + 1)
			return m.startFetches()
		}
		return m, nil

	case key.Matches(msg, keymap.PrevPage):
		if m.table.Meta().HasPrevPage {
			m.store.SetPage(m.store.State().Page - 1)
			return m.startFetches()
		}
		return m, nil

	case key.Matches(msg, keymap.CycleStatus):
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		statuses := []string{}
		if statusCycle[m.statusIdx] != "" {
			statuses = []string{statusCycle[m.statusIdx]}
		}
		m.store.SetFilter(query.Filter{Statuses: &statuses})
		return m.startFetches()

	case key.Matches(msg, keymap.CycleSort):
		m.store.SetSort(nextSortField(m.store.State().SortBy))
		return m.startFetches()

	case key.Matches(msg, keymap.FlipOrder):
		m.store.SetSort(m.store.State().SortBy)
		return m.startFetches()

	case key.Matches(msg, keymap.ClearAll):
		m.statusIdx = 0
		m.searchInput.SetValue("")
		m.store.Clear()
		return m.startFetches()

	case key.Matches(msg, keymap.Refresh):
		m.store.Reload()
		return m.startFetches()

	case key.Matches(msg, keymap.Share):
		share := query.Encode(m.store.State()).Encode()
		if share == "" {
			share = "(default view)"
		}
		m.statusText = "Share query: " + share
		return m, nil

	case key.Matches(msg, keymap.Theme):
		return m.toggleTheme()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func nextSortField(current string) string {
	for i, field := range sortFields {
		if field == current {
			return sortFields[(i+1)%len(sortFields)]
		}
	}
	return sortFields[0]
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	if m.theme.Name == "light" {
		m.theme = themes.Dark
	} else {
		m.theme = themes.Light
	}

	if m.cfg.Session != nil {
		if err := m.cfg.Session.SetTheme(m.theme.Name); err != nil {
			slog.Warn("Failed to persist theme preference", "error", err)
		}
	}

	// Components carry their theme, so rebuild them with the data kept.
	m.table = components.NewTransactionTable(m.theme)
	m.table.SetData(m.lastTxns, m.lastMeta)
	m.applySortHint()
	m.stats = components.NewStatsPanel(m.theme)
	m.stats.SetData(m.lastTxns, m.lastMeta)
	m.lookup = components.NewLookup(m.theme)

	return m, nil
}

// startFetches converts every change event recorded since the last update
// into one fetch command each.
func (m Model) startFetches() (tea.Model, tea.Cmd) {
	cmds := m.pendingFetches()
	if len(cmds) == 0 {
		return m, nil
	}
	m.loading = true
	cmds = append(cmds, m.spinner.Tick)
	return m, tea.Batch(cmds...)
}

func (m Model) pendingFetches() []tea.Cmd {
	reqs := m.ctrl.drain()
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, m.fetchCmd(req))
	}
	return cmds
}

func (m Model) fetchCmd(req fetchRequest) tea.Cmd {
	client := m.cfg.Client
	schoolID := m.cfg.SchoolID

	return func() tea.Msg {
		var (
			txns []model.Transaction
			meta model.PaginationMeta
			err  error
		)
		if schoolID != "" {
			txns, meta, err = client.ListSchoolTransactions(context.Background(), schoolID, req.state)
		} else {
			txns, meta, err = client.ListTransactions(context.Background(), req.state)
		}
		return transactionsLoadedMsg{seq: req.seq, transactions: txns, meta: meta, err: err}
	}
}

func (m Model) lookupCmd(orderID string) tea.Cmd {
	client := m.cfg.Client

	return func() tea.Msg {
		txn, err := client.LookupStatus(context.Background(), orderID)
		return lookupResultMsg{orderID: orderID, txn: txn, err: err}
	}
}

func (m Model) handleTransactionsLoaded(msg transactionsLoadedMsg) (tea.Model, tea.Cmd) {
	// A response for an older state lost the race with a newer change;
	// discard it so the latest state always wins.
	if m.store.Stale(msg.seq) {
		common.LogDebug("Discarding stale transaction page", common.Fields{
			"seq":     msg.seq,
			"current": m.store.Seq(),
		})
		return m, nil
	}

	m.loading = false

	if msg.err != nil {
		if errors.Is(msg.err, common.ErrUnauthorized) {
			m.expired = true
			m.quitting = true
			return m, tea.Quit
		}
		// Keep the previously rendered rows; the user can refresh.
		m.errorText = "Failed to load transactions"
		common.LogDebug("Transaction fetch failed", common.Fields{"error": msg.err})
		return m, nil
	}

	m.errorText = ""
	m.statusText = ""
	m.lastTxns = msg.transactions
	m.lastMeta = msg.meta
	m.table.SetData(msg.transactions, msg.meta)
	m.applySortHint()
	m.stats.SetData(msg.transactions, msg.meta)

	return m, nil
}

func (m *Model) applySortHint() {
	state := m.store.State()
	m.table.SetSort(state.SortBy, state.SortOrder == query.SortAsc)
}

func (m Model) handleLookupResult(msg lookupResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, common.ErrUnauthorized) {
			m.expired = true
			m.quitting = true
			return m, tea.Quit
		}
		// The server's own message distinguishes not-found from other
		// failures; pass it through.
		m.lookup.SetError(common.UserMessage(msg.err))
		return m, nil
	}

	m.lookup.SetResult(msg.txn)
	return m, nil
}
