package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"tasklogger/internal/dispatcher"
	"tasklogger/internal/model"
	"tasklogger/internal/parser"
)

func (a *app) logCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   `log ["Update for <Name>: ..."]`,
		Short: "Log a natural language daily update",
		Long: `Log a natural language daily update. The text is read from stdin when no
argument is given.

Examples:
  tasklogger log "Update for Kevin: worked on Daily Task Logger project from home, 2 hours worked, no blockers"
  echo "Update for Siva: Project: Billing. Hours: 4" | tasklogger log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				prompt = string(data)
			}
			prompt = strings.TrimSpace(prompt)
			if prompt == "" {
				return errors.New("empty update")
			}

			out := cmd.OutOrStdout()
			if dryRun {
				if _, err := dispatcher.ParseSheetName(prompt); err != nil {
					return renderResult(out, model.Failure(err))
				}
				renderEntry(out, parser.Extract(prompt))
				return nil
			}

			sess, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			return renderResult(out, sess.dispatcher.Handle(cmd.Context(), prompt))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the extracted row without writing it")
	return cmd
}

func (a *app) appendCmd() *cobra.Command {
	var (
		name   string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "append --name <Name> --field Key=Value...",
		Short: "Log an already structured daily update",
		Long: `Append one row to the sheet <Name>. Keys are column names; missing
columns stay empty.

Columns: ` + strings.Join(model.Columns, ", ") + `

Example:
  tasklogger append --name Kevin --field "Date=2025-06-30" --field "Hours Worked=2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := parseFields(fields)
			if err != nil {
				return err
			}

			sess, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			return renderResult(cmd.OutOrStdout(), sess.dispatcher.LogStructured(cmd.Context(), name, entry))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "sheet (employee) name")
	cmd.Flags().StringArrayVar(&fields, "field", nil, `column value as "Key=Value", repeatable`)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// parseFields parses "Key=Value" pairs keyed by column name.
func parseFields(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: want Key=Value", p)
		}
		if !slices.Contains(model.Columns, key) {
			return nil, fmt.Errorf("unknown column %q", key)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
