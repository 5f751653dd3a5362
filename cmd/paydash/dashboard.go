package main

import (
	"github.com/spf13/cobra"

	"github.com/harlow-hs/paydash/internal/tui"
	"github.com/harlow-hs/paydash/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	var school, rawQuery string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive transaction dashboard",
		Long: `Open the full-screen dashboard: a filterable, sortable, paged transaction
table with stat cards and a status-lookup view.

Pass --query to open the dashboard on a shared view, e.g.
'paydash dashboard --query "page=2&status=failed"'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, sess, err := initAuthenticated()
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), tui.Config{
				Client:       client,
				Session:      sess,
				Theme:        themes.ByName(sess.Theme()),
				SchoolID:     school,
				InitialQuery: rawQuery,
			})
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "scope the dashboard to one school id")
	cmd.Flags().StringVar(&rawQuery, "query", "", "shared query string to open with")

	return cmd
}
