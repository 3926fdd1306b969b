package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookBackend local .xlsx workbook used as the spreadsheet
type WorkbookBackend struct {
	path string
	mu   sync.Mutex
}

// NewWorkbookBackend creates a backend for the workbook at path.
// The file is opened per call, so edits made elsewhere are picked up.
func NewWorkbookBackend(path string) *WorkbookBackend {
	return &WorkbookBackend{path: path}
}

// Path returns the workbook path.
func (b *WorkbookBackend) Path() string {
	return b.path
}

// SheetTitles lists the workbook sheets in tab order; a missing workbook has none.
func (b *WorkbookBackend) SheetTitles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	// the workbook is created by the first CreateSheet
	if _, err := os.Stat(b.path); errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// AppendRow writes row below the last non-empty row of sheet and saves the workbook.
func (b *WorkbookBackend) AppendRow(ctx context.Context, sheet string, row []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx == -1 {
		return &SheetNotFoundError{Name: sheet}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}

	cells := toCells(row)
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return f.Save()
}

// CreateSheet adds a sheet with header as its first row.
// A missing workbook is created, replacing excelize's default sheet.
func (b *WorkbookBackend) CreateSheet(ctx context.Context, name string, header []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var f *excelize.File
	_, err := os.Stat(b.path)
	fresh := errors.Is(err, fs.ErrNotExist)
	if fresh {
		f = excelize.NewFile()
	} else if f, err = excelize.OpenFile(b.path); err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if fresh {
		// a new file holds one default sheet; it becomes name
		if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), name); err != nil {
			return err
		}
	} else {
		// sheet names are case-insensitive in excelize: "kevin" would reuse "Kevin"
		idx, err := f.GetSheetIndex(name)
		if err != nil {
			return err
		}
		if idx != -1 {
			return &SheetExistsError{Name: name}
		}
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	cells := toCells(header)
	if err := f.SetSheetRow(name, "A1", &cells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if !fresh {
		return f.Save()
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("failed to create workbook directory: %w", err)
	}
	return f.SaveAs(b.path)
}
