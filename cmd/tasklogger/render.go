package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tasklogger/internal/model"
	"tasklogger/internal/store"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// renderResult prints res; a failed result yields errReported.
func renderResult(w io.Writer, res model.Result) error {
	if res.OK() {
		fmt.Fprintln(w, successStyle.Render("✓"), res.Report)
		return nil
	}
	fmt.Fprintln(w, errorStyle.Render("✗"), res.ErrorMessage)
	return errReported
}

// renderEntry prints the row that would be logged, one column per line.
func renderEntry(w io.Writer, entry model.UpdateEntry) {
	row := entry.Row()
	width := 0
	for _, col := range model.Columns {
		width = max(width, len(col))
	}
	for i, col := range model.Columns {
		fmt.Fprintf(w, "%s  %s\n", labelStyle.Render(fmt.Sprintf("%-*s", width, col)), row[i])
	}
}

func renderHistory(w io.Writer, logs []store.UpdateLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, labelStyle.Render("no updates recorded"))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "SHEET", "SOURCE", "STATUS", "DATE", "MESSAGE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, l := range logs {
		date := ""
		if len(l.Row) > 0 {
			date = l.Row[0]
		}
		t.Row(l.ID, l.SheetName, l.Source, l.Status, date, truncate(l.Message, 60))
	}
	fmt.Fprintln(w, t.Render())
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
