package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tasklogger/internal/config"
	"tasklogger/internal/dispatcher"
	"tasklogger/internal/sheets"
	"tasklogger/internal/store"
)

// session wired components for one command run
type session struct {
	backend    sheets.Backend
	target     string
	store      *store.Store // nil when history is disabled
	dispatcher *dispatcher.Dispatcher
}

// open builds the sheets backend, history store and dispatcher from config.
func (a *app) open(ctx context.Context) (*session, error) {
	backend, target, err := a.newBackend(ctx)
	if err != nil {
		return nil, err
	}

	sess := &session{backend: backend, target: target}
	opts := []dispatcher.Option{dispatcher.WithLogger(a.log)}

	if a.cfg.Data.History {
		dataDir, err := config.EnsureDataDir(a.baseDir, a.cfg)
		if err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		st, err := store.New(config.HistoryDBPath(dataDir))
		if err != nil {
			return nil, err
		}
		sess.store = st
		opts = append(opts, dispatcher.WithHistory(st))
	}

	sess.dispatcher = dispatcher.New(sheets.NewLogger(backend, a.log), opts...)
	return sess, nil
}

func (a *app) newBackend(ctx context.Context) (sheets.Backend, string, error) {
	sc := a.cfg.Sheets
	switch sc.Backend {
	case config.BackendWorkbook:
		path := config.ResolvePath(a.baseDir, sc.WorkbookPath)
		a.log.Debug("using workbook backend", zap.String("path", path))
		return sheets.NewWorkbookBackend(path), path, nil
	case config.BackendMemory:
		a.log.Warn("using memory backend; rows are not persisted")
		return sheets.NewMemoryBackend(sc.MemorySheets...), "memory", nil
	case config.BackendGoogle, "":
		if sc.SpreadsheetID == "" {
			return nil, "", errors.New("spreadsheet id is required: set SPREADSHEET_ID, sheets.spreadsheet_id or --spreadsheet-id")
		}
		b, err := sheets.NewGoogleBackend(ctx, sheets.GoogleConfig{
			SpreadsheetID:   sc.SpreadsheetID,
			CredentialsFile: config.ResolvePath(a.baseDir, sc.CredentialsFile),
		})
		if err != nil {
			return nil, "", err
		}
		return b, sc.SpreadsheetID, nil
	default:
		return nil, "", fmt.Errorf("unknown sheets backend %q (want %q, %q or %q)", sc.Backend, config.BackendGoogle, config.BackendWorkbook, config.BackendMemory)
	}
}

// history returns the history store, or an error when history is disabled.
func (s *session) history() (*store.Store, error) {
	if s.store == nil {
		return nil, errors.New("update history is disabled (data.history = false)")
	}
	return s.store, nil
}

func (s *session) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
