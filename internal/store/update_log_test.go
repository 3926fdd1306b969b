package store

import (
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "tasklogger.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestUpdateLogs_InsertAndList(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	base := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	tick := 0
	st.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	recs := []*UpdateLog{
		{SheetName: "Kevin", Source: SourceNatural, Prompt: "Update for Kevin: ...", Row: []string{"2025-06-30", "x"}, Status: "success", Message: "ok"},
		{SheetName: "Siva", Source: SourceStructured, Status: "error", Message: "Sheet 'Siva' does not exist. Cannot add entry."},
		{SheetName: "Kevin", Source: SourceAgent, Row: []string{"2025-07-01"}, Status: "success"},
	}
	for _, r := range recs {
		if err := st.InsertUpdateLog(r); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if r.ID == "" {
			t.Fatalf("id not assigned")
		}
	}

	all, err := st.ListUpdateLogs(UpdateLogQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(all))
	}
	if all[0].ID != recs[2].ID || all[2].ID != recs[0].ID {
		t.Fatalf("expected newest first, got %s %s %s", all[0].ID, all[1].ID, all[2].ID)
	}
	if !slices.Equal(all[2].Row, []string{"2025-06-30", "x"}) {
		t.Fatalf("row=%v", all[2].Row)
	}
	if len(all[1].Row) != 0 {
		t.Fatalf("nil row should round trip as empty, got %v", all[1].Row)
	}
	if !all[2].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("created_at=%v", all[2].CreatedAt)
	}

	kevin, err := st.ListUpdateLogs(UpdateLogQuery{SheetName: "Kevin", Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(kevin) != 1 || kevin[0].Source != SourceAgent {
		t.Fatalf("unexpected filtered logs: %+v", kevin)
	}
}

func TestUpdateLogs_Empty(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	logs, err := st.ListUpdateLogs(UpdateLogQuery{SheetName: "Nobody"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected no logs, got %d", len(logs))
	}
}
