package sheets

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"tasklogger/internal/model"
)

// Backend spreadsheet the logger appends to
type Backend interface {
	// SheetTitles lists the worksheet titles of the spreadsheet.
	SheetTitles(ctx context.Context) ([]string, error)
	// AppendRow inserts one row after the last row of sheet.
	AppendRow(ctx context.Context, sheet string, row []string) error
}

// Provisioner backends that can create worksheets
type Provisioner interface {
	CreateSheet(ctx context.Context, name string, header []string) error
}

// Logger appends daily updates to existing worksheets
type Logger struct {
	backend Backend
	log     *zap.Logger
}

// NewLogger creates a logger on top of backend.
func NewLogger(backend Backend, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{backend: backend, log: log}
}

// Backend returns the underlying backend.
func (l *Logger) Backend() Backend {
	return l.backend
}

// Titles lists the existing worksheet titles.
func (l *Logger) Titles(ctx context.Context) ([]string, error) {
	return l.backend.SheetTitles(ctx)
}

// Append writes entry as one new row of sheetName.
// The sheet must already exist; backend errors are returned unchanged.
func (l *Logger) Append(ctx context.Context, sheetName string, entry model.UpdateEntry) (string, error) {
	name := strings.TrimSpace(sheetName)

	titles, err := l.backend.SheetTitles(ctx)
	if err != nil {
		l.log.Warn("list sheets failed", zap.String("sheet", name), zap.Error(err))
		return "", err
	}
	if !slices.Contains(titles, name) {
		l.log.Info("sheet not found", zap.String("sheet", name), zap.Strings("existing", titles))
		return "", &SheetNotFoundError{Name: name}
	}

	if err := l.backend.AppendRow(ctx, name, entry.Row()); err != nil {
		l.log.Warn("append row failed", zap.String("sheet", name), zap.Error(err))
		return "", err
	}

	l.log.Info("row appended", zap.String("sheet", name), zap.String("date", entry.Date))
	return fmt.Sprintf("Daily update added to sheet '%s'.", name), nil
}

// CreateSheet provisions sheetName with the update header row.
func (l *Logger) CreateSheet(ctx context.Context, sheetName string) error {
	p, ok := l.backend.(Provisioner)
	if !ok {
		return ErrProvisionUnsupported
	}

	name := strings.TrimSpace(sheetName)
	if name == "" {
		return ErrEmptySheetName
	}

	titles, err := l.backend.SheetTitles(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(titles, name) {
		return &SheetExistsError{Name: name}
	}

	if err := p.CreateSheet(ctx, name, model.Columns); err != nil {
		return err
	}
	l.log.Info("sheet created", zap.String("sheet", name))
	return nil
}
