package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tasklogger/internal/store"
)

// historyFlags flags of the history command
type historyFlags struct {
	sheet  string
	limit  int
	format string // table, json, yaml
}

func (a *app) historyCmd() *cobra.Command {
	flags := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded updates, newest first",
		Long: `Show updates recorded in the local history database, newest first.

Examples:
  # Last 50 updates
  tasklogger history

  # Last 10 updates for Kevin as YAML
  tasklogger history --sheet Kevin --limit 10 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch flags.format {
			case "table", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want table, json or yaml)", flags.format)
			}

			sess, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			st, err := sess.history()
			if err != nil {
				return err
			}
			logs, err := st.ListUpdateLogs(store.UpdateLogQuery{SheetName: flags.sheet, Limit: flags.limit})
			if err != nil {
				return err
			}
			if logs == nil {
				logs = []store.UpdateLog{}
			}

			out := cmd.OutOrStdout()
			switch flags.format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(logs)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(logs); err != nil {
					return err
				}
				return enc.Close()
			default:
				renderHistory(out, logs)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "only updates for this sheet")
	cmd.Flags().IntVar(&flags.limit, "limit", 50, "maximum number of updates")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json or yaml")
	return cmd
}
