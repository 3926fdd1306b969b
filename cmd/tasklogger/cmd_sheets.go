package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasklogger/internal/config"
	"tasklogger/internal/util"
)

func (a *app) sheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List, create or open employee sheets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sheet titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			titles, err := sess.dispatcher.Logger().Titles(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range titles {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <Name>",
		Short: "Create a sheet with the update header row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.dispatcher.Logger().CreateSheet(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓"), fmt.Sprintf("Sheet '%s' created.", args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "open",
		Short: "Open the spreadsheet in the browser, or the workbook in its default app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := a.openTarget()
			if target == "" {
				return fmt.Errorf("nothing to open: no spreadsheet id configured")
			}
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("opening"), target)
			return util.Open(target)
		},
	})

	return cmd
}

// openTarget URL or file of the configured backend
func (a *app) openTarget() string {
	sc := a.cfg.Sheets
	if sc.Backend == config.BackendWorkbook {
		return config.ResolvePath(a.baseDir, sc.WorkbookPath)
	}
	if sc.SpreadsheetID == "" {
		return ""
	}
	return util.SpreadsheetURL(sc.SpreadsheetID)
}
