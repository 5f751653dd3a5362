package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/harlow-hs/paydash/internal/api"
	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/query"
	"github.com/harlow-hs/paydash/internal/tui/viewmodel"
)

// exportPageLimit is the page size used when walking all pages.
const exportPageLimit = 100

// exportConcurrency bounds the parallel page fetches after page one.
const exportConcurrency = 4

func exportCmd() *cobra.Command {
	var flags listFlags
	var format, output, scope string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all matching transactions to a file",
		Long: `Walk every page of the filtered transaction list and write the full result
to a csv, json, or xlsx file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := initAuthenticated()
			if err != nil {
				return err
			}

			st, err := flags.state(cmd)
			if err != nil {
				return err
			}
			st.Page = 1
			st.Limit = exportPageLimit

			txns, err := fetchAllPages(cmd.Context(), client, scope, st)
			if err != nil {
				return err
			}

			if output == "" {
				output = "transactions." + format
			}

			switch format {
			case "csv":
				err = writeCSV(output, txns)
			case "json":
				err = writeJSON(output, txns)
			case "xlsx":
				err = writeXLSX(output, txns)
			default:
				return fmt.Errorf("invalid format %q: use csv, json, or xlsx", format)
			}
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Printf("Exported %d transactions to %s\n", len(txns), output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json, xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: transactions.<format>)")
	cmd.Flags().StringVar(&scope, "scope", "", "scope the export to one school id")

	return cmd
}

// fetchAllPages retrieves page one to learn the page count, then fetches the
// remaining pages with bounded concurrency, preserving page order.
func fetchAllPages(ctx context.Context, client *api.Client, scope string, st query.State) ([]model.Transaction, error) {
	fetch := func(ctx context.Context, st query.State) ([]model.Transaction, model.PaginationMeta, error) {
		if scope != "" {
			return client.ListSchoolTransactions(ctx, scope, st)
		}
		return client.ListTransactions(ctx, st)
	}

	first, meta, err := fetch(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if meta.TotalPages <= 1 {
		return first, nil
	}

	bar := progressbar.Default(int64(meta.TotalPages), "fetching pages")
	_ = bar.Add(1)

	pages := make([][]model.Transaction, meta.TotalPages)
	pages[0] = first

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)

	for page := 2; page <= meta.TotalPages; page++ {
		page := page
		g.Go(func() error {
			pageState := st
			pageState.Page = page

			txns, _, fetchErr := fetch(gctx, pageState)
			if fetchErr != nil {
				return fmt.Errorf("failed to load page %d: %w", page, fetchErr)
			}

			pages[page-1] = txns
			_ = bar.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Transaction
	for _, page := range pages {
		all = append(all, page...)
	}

	return all, nil
}

var exportHeader = []string{
	"custom_order_id", "collect_id", "school_id", "gateway",
	"order_amount", "transaction_amount", "status",
	"payment_time", "payment_mode", "bank_reference", "error_message",
	"student_name", "student_id", "student_email",
}

func exportRow(txn model.Transaction) []string {
	var studentName, studentID, studentEmail string
	if txn.Student != nil {
		studentName = txn.Student.Name
		studentID = txn.Student.ID
		studentEmail = txn.Student.Email
	}

	paymentTime := ""
	if txn.PaymentTime != nil {
		paymentTime = txn.PaymentTime.Format("2006-01-02T15:04:05Z07:00")
	}

	return []string{
		txn.CustomOrderID, txn.CollectID, txn.SchoolID, txn.Gateway,
		strconv.FormatFloat(txn.OrderAmount, 'f', 2, 64),
		strconv.FormatFloat(txn.TransactionAmount, 'f', 2, 64),
		viewmodel.StatusLabel(txn.Status),
		paymentTime, txn.PaymentMode, txn.BankReference, txn.ErrorMessage,
		studentName, studentID, studentEmail,
	}
}

func writeCSV(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, txn := range txns {
		if err := w.Write(exportRow(txn)); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

func writeJSON(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(txns)
}

func writeXLSX(path string, txns []model.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, txn := range txns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRow(txn)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
