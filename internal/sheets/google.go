package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleConfig Google Sheets backend settings
type GoogleConfig struct {
	SpreadsheetID   string
	CredentialsFile string // service account JSON; empty uses application default credentials

	// Test hooks: when HTTPClient is set no credentials are loaded.
	Endpoint   string
	HTTPClient *http.Client
}

// GoogleBackend Google Sheets v4 spreadsheet
type GoogleBackend struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleBackend builds a Sheets client for one spreadsheet.
func NewGoogleBackend(ctx context.Context, cfg GoogleConfig) (*GoogleBackend, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}

	var opts []option.ClientOption
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	} else {
		opts = append(opts, option.WithScopes(sheetsapi.SpreadsheetsScope))
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleBackend{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// SpreadsheetID returns the configured spreadsheet id.
func (b *GoogleBackend) SpreadsheetID() string {
	return b.spreadsheetID
}

// SheetTitles fetches the spreadsheet metadata and returns the sheet titles.
func (b *GoogleBackend) SheetTitles(ctx context.Context) ([]string, error) {
	ss, err := b.svc.Spreadsheets.Get(b.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// AppendRow appends row with RAW input and INSERT_ROWS, so no existing row is overwritten.
func (b *GoogleBackend) AppendRow(ctx context.Context, sheet string, row []string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := b.svc.Spreadsheets.Values.Append(b.spreadsheetID, a1Sheet(sheet), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// CreateSheet adds a worksheet and writes header into its first row.
func (b *GoogleBackend) CreateSheet(ctx context.Context, name string, header []string) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := b.svc.Spreadsheets.BatchUpdate(b.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return err
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(header)}}
	_, err := b.svc.Spreadsheets.Values.Update(b.spreadsheetID, a1Sheet(name)+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// a1Sheet quotes a sheet title for A1 notation: My Sheet -> 'My Sheet'.
func a1Sheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
