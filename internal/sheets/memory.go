package sheets

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend in-memory spreadsheet, for demos and tests
type MemoryBackend struct {
	mu     sync.RWMutex
	titles []string
	rows   map[string][][]string
}

// NewMemoryBackend creates a memory backend holding the given empty sheets.
func NewMemoryBackend(titles ...string) *MemoryBackend {
	b := &MemoryBackend{rows: make(map[string][][]string)}
	for _, t := range titles {
		b.titles = append(b.titles, t)
		b.rows[t] = nil
	}
	return b
}

// SheetTitles sheet titles in creation order
func (b *MemoryBackend) SheetTitles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.titles), nil
}

// AppendRow appends a copy of row to sheet.
func (b *MemoryBackend) AppendRow(ctx context.Context, sheet string, row []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.rows[sheet]; !ok {
		return &SheetNotFoundError{Name: sheet}
	}
	b.rows[sheet] = append(b.rows[sheet], slices.Clone(row))
	return nil
}

// CreateSheet adds sheet with header as its first row.
func (b *MemoryBackend) CreateSheet(ctx context.Context, name string, header []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.rows[name]; ok {
		return &SheetExistsError{Name: name}
	}
	b.titles = append(b.titles, name)
	b.rows[name] = [][]string{slices.Clone(header)}
	return nil
}

// Rows returns a copy of the rows of sheet, header included.
func (b *MemoryBackend) Rows(sheet string) [][]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([][]string, 0, len(b.rows[sheet]))
	for _, r := range b.rows[sheet] {
		out = append(out, slices.Clone(r))
	}
	return out
}
