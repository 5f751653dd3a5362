package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/harlow-hs/paydash/internal/common"
	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/query"
	"github.com/harlow-hs/paydash/internal/tui/viewmodel"
)

// listFlags collects the query-state flags shared by list and export.
type listFlags struct {
	page      int
	limit     int
	sortBy    string
	sortOrder string
	statuses  []string
	schools   []string
	search    string
	dateFrom  string
	dateTo    string
	rawQuery  string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.limit, "limit", query.DefaultLimit, "page size")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", query.DefaultSortBy, "sort column")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", string(query.DefaultSortOrder), "sort direction (asc, desc)")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "filter by status (repeatable)")
	cmd.Flags().StringSliceVar(&f.schools, "school", nil, "filter by school id (repeatable)")
	cmd.Flags().StringVar(&f.search, "search", "", "free-text search")
	cmd.Flags().StringVar(&f.dateFrom, "from", "", "payment date lower bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.dateTo, "to", "", "payment date upper bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.rawQuery, "query", "", "shared query string, e.g. 'page=2&status=failed' (other flags override it)")
}

// state resolves the flags into a query state. A --query string seeds the
// state; explicitly set flags override it field by field.
func (f *listFlags) state(cmd *cobra.Command) (query.State, error) {
	st := query.DefaultState()

	if f.rawQuery != "" {
		params, err := url.ParseQuery(f.rawQuery)
		if err != nil {
			return st, fmt.Errorf("invalid --query string: %w", err)
		}
		st = query.Decode(params)
	}

	flags := cmd.Flags()
	if flags.Changed("page") {
		st.Page = f.page
	}
	if flags.Changed("limit") {
		st.Limit = f.limit
	}
	if flags.Changed("sort-by") {
		st.SortBy = f.sortBy
	}
	if flags.Changed("sort-order") {
		switch query.SortOrder(f.sortOrder) {
		case query.SortAsc, query.SortDesc:
			st.SortOrder = query.SortOrder(f.sortOrder)
		default:
			return st, fmt.Errorf("invalid sort order %q: use asc or desc", f.sortOrder)
		}
	}
	if flags.Changed("status") {
		st.Statuses = f.statuses
	}
	if flags.Changed("school") {
		st.SchoolIDs = f.schools
	}
	if flags.Changed("search") {
		st.Search = f.search
	}
	if flags.Changed("from") {
		st.DateFrom = f.dateFrom
	}
	if flags.Changed("to") {
		st.DateTo = f.dateTo
	}

	if st.Page < 1 || st.Limit < 1 {
		return st, fmt.Errorf("page and limit must be positive")
	}

	return st, nil
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Query payment transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsStatusCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	var flags listFlags
	var scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of transactions",
		Long: `Fetch one page of transactions with the given filters and sorting.

Pass --scope to use the per-school endpoint instead of a school filter, and
--query to reuse a shared dashboard query string.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := initAuthenticated()
			if err != nil {
				return err
			}

			st, err := flags.state(cmd)
			if err != nil {
				return err
			}

			var (
				txns []model.Transaction
				meta model.PaginationMeta
			)
			if scope != "" {
				txns, meta, err = client.ListSchoolTransactions(cmd.Context(), scope, st)
			} else {
				txns, meta, err = client.ListTransactions(cmd.Context(), st)
			}
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			renderTransactionTable(txns, meta)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&scope, "scope", "", "scope the request to one school id")

	return cmd
}

func renderTransactionTable(txns []model.Transaction, meta model.PaginationMeta) {
	if len(txns) == 0 {
		fmt.Println("No transactions found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			common.LogError(flushErr, "failed to flush table writer", nil)
		}
	}()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("Order ID"),
		headerStyle.Render("School"),
		headerStyle.Render("Gateway"),
		headerStyle.Render("Order Amt"),
		headerStyle.Render("Txn Amt"),
		headerStyle.Render("Status"),
		headerStyle.Render("Payment Time"))

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 14),
		strings.Repeat("─", 14),
		strings.Repeat("─", 10),
		strings.Repeat("─", 12),
		strings.Repeat("─", 12),
		strings.Repeat("─", 10),
		strings.Repeat("─", 17))

	for _, txn := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			viewmodel.Fallback(txn.CustomOrderID, txn.CollectID),
			txn.SchoolID,
			viewmodel.Fallback(txn.Gateway, "—"),
			viewmodel.FormatAmount(txn.OrderAmount),
			viewmodel.FormatAmount(txn.TransactionAmount),
			viewmodel.StatusLabel(txn.Status),
			viewmodel.FormatTime(txn.PaymentTime))
	}

	fmt.Fprintf(w, "\n%s\n", viewmodel.PageLabel(meta))
}

func transactionsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id>",
		Short: "Look up one transaction by its custom order id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := initAuthenticated()
			if err != nil {
				return err
			}

			txn, err := client.LookupStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderTransactionDetail(txn)
			return nil
		},
	}
}

func renderTransactionDetail(txn model.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			common.LogError(flushErr, "failed to flush table writer", nil)
		}
	}()

	row := func(label, value string) {
		fmt.Fprintf(w, "%s\t%s\n", label, value)
	}

	row("Order ID", viewmodel.Fallback(txn.CustomOrderID, "—"))
	row("Collect ID", viewmodel.Fallback(txn.CollectID, "—"))
	row("School", viewmodel.Fallback(txn.SchoolID, "—"))
	row("Gateway", viewmodel.Fallback(txn.Gateway, "—"))
	row("Order amount", viewmodel.FormatAmount(txn.OrderAmount))
	row("Txn amount", viewmodel.FormatAmount(txn.TransactionAmount))
	row("Status", viewmodel.StatusLabel(txn.Status))
	row("Payment time", viewmodel.FormatTime(txn.PaymentTime))
	row("Payment mode", viewmodel.Fallback(txn.PaymentMode, "—"))
	row("Bank reference", viewmodel.Fallback(txn.BankReference, "—"))
	if txn.ErrorMessage != "" {
		row("Error", txn.ErrorMessage)
	}
	if txn.Student != nil {
		row("Student", fmt.Sprintf("%s (%s) %s", txn.Student.Name, txn.Student.ID, txn.Student.Email))
	}
}
