package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Update sources
const (
	SourceNatural    = "natural"
	SourceStructured = "structured"
	SourceAgent      = "agent"
)

// UpdateLog one dispatched update and its outcome
type UpdateLog struct {
	ID        string    `json:"id" yaml:"id"`
	SheetName string    `json:"sheetName" yaml:"sheet_name"`
	Source    string    `json:"source" yaml:"source"`
	Prompt    string    `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Row       []string  `json:"row" yaml:"row"`
	Status    string    `json:"status" yaml:"status"`
	Message   string    `json:"message" yaml:"message"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// UpdateLogQuery filters for ListUpdateLogs
type UpdateLogQuery struct {
	SheetName string // exact match; empty means all sheets
	Limit     int    // <= 0 means 50
}

// InsertUpdateLog stores rec, filling ID and CreatedAt when empty.
func (s *Store) InsertUpdateLog(rec *UpdateLog) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	if rec.ID == "" {
		rec.ID = s.newID(rec.CreatedAt)
	}
	if rec.Row == nil {
		rec.Row = []string{}
	}

	rowJSON, err := json.Marshal(rec.Row)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO update_logs (id, sheet_name, source, prompt, row_json, status, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SheetName, rec.Source, rec.Prompt, string(rowJSON), rec.Status, rec.Message,
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert update log: %w", err)
	}
	return nil
}

// ListUpdateLogs returns logs newest first.
func (s *Store) ListUpdateLogs(q UpdateLogQuery) ([]UpdateLog, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	var (
		where []string
		args  []interface{}
	)
	if q.SheetName != "" {
		where = append(where, "sheet_name = ?")
		args = append(args, q.SheetName)
	}

	query := `SELECT id, sheet_name, source, prompt, row_json, status, message, created_at FROM update_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query update logs failed: %w", err)
	}
	defer rows.Close()

	var out []UpdateLog
	for rows.Next() {
		var (
			it        UpdateLog
			rowJSON   string
			createdAt string
		)
		if err := rows.Scan(&it.ID, &it.SheetName, &it.Source, &it.Prompt, &rowJSON, &it.Status, &it.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan update log failed: %w", err)
		}
		if err := json.Unmarshal([]byte(rowJSON), &it.Row); err != nil {
			return nil, fmt.Errorf("decode row of %s failed: %w", it.ID, err)
		}
		if it.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of %s failed: %w", it.ID, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate update logs failed: %w", err)
	}
	return out, nil
}
