package dispatcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tasklogger/internal/model"
	"tasklogger/internal/parser"
	"tasklogger/internal/sheets"
	"tasklogger/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const kevinPrompt = "Update for Kevin: worked on Daily Task Logger project from home, completed Google Sheets logging integration, 2 hours worked, no blockers, tomorrow will work on email feature. Today's date is 30th June 2025. Note: All modules integrated successfully."

type fakeBackend struct {
	titles    []string
	listCalls int
	appended  map[string][][]string
	err       error
}

func newFakeBackend(titles ...string) *fakeBackend {
	return &fakeBackend{titles: titles, appended: map[string][][]string{}}
}

func (f *fakeBackend) SheetTitles(context.Context) ([]string, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.titles, nil
}

func (f *fakeBackend) AppendRow(_ context.Context, sheet string, row []string) error {
	f.appended[sheet] = append(f.appended[sheet], row)
	return nil
}

type memHistory struct {
	logs []store.UpdateLog
}

func (h *memHistory) InsertUpdateLog(rec *store.UpdateLog) error {
	h.logs = append(h.logs, *rec)
	return nil
}

func TestHandle_KevinEndToEnd(t *testing.T) {
	backend := newFakeBackend("Siva", "Kevin")
	hist := &memHistory{}
	d := New(sheets.NewLogger(backend, nil), WithHistory(hist))

	res := d.Handle(context.Background(), kevinPrompt)

	require.Equal(t, model.StatusSuccess, res.Status, res.ErrorMessage)
	assert.Equal(t, "Daily update added to sheet 'Kevin'.", res.Report)
	require.Len(t, backend.appended["Kevin"], 1)
	assert.Equal(t, []string{
		"2025-06-30",
		"Daily Task Logger project",
		"WFH",
		"Google Sheets logging integration",
		"2",
		"no blockers",
		"work on email feature",
		"All modules integrated successfully.",
		"2025-06-30",
	}, backend.appended["Kevin"][0])

	require.Len(t, hist.logs, 1)
	assert.Equal(t, store.SourceNatural, hist.logs[0].Source)
	assert.Equal(t, "Kevin", hist.logs[0].SheetName)
	assert.Equal(t, model.StatusSuccess, hist.logs[0].Status)
}

func TestHandle_MissingSheet(t *testing.T) {
	backend := newFakeBackend("Siva")
	d := New(sheets.NewLogger(backend, nil))

	res := d.Handle(context.Background(), kevinPrompt)

	assert.Equal(t, model.StatusError, res.Status)
	assert.Contains(t, res.ErrorMessage, "Kevin")
	assert.Equal(t, "Sheet 'Kevin' does not exist. Cannot add entry.", res.ErrorMessage)
	assert.Empty(t, backend.appended)
}

func TestHandle_NoPrefix(t *testing.T) {
	backend := newFakeBackend("Kevin")
	hist := &memHistory{}
	d := New(sheets.NewLogger(backend, nil), WithHistory(hist))
	extracted := false
	d.analyze = func(text string) parser.Extraction {
		extracted = true
		return parser.Analyze(text)
	}

	for _, prompt := range []string{
		"Please log my day",
		"Kevin: worked on stuff",
		"Update for : nothing",
		"Update Kevin: nope",
		"Update for Kevin Smith: two words",
	} {
		res := d.Handle(context.Background(), prompt)
		assert.Equal(t, model.StatusError, res.Status, prompt)
		assert.Equal(t, UsageHint, res.ErrorMessage, prompt)
	}

	assert.False(t, extracted, "extractor must not run without the prefix")
	assert.Zero(t, backend.listCalls, "backend must not be called without the prefix")
	require.Len(t, hist.logs, 5)
	assert.Equal(t, model.StatusError, hist.logs[0].Status)
}

func TestHandle_PrefixIsCaseInsensitiveAndTrimmed(t *testing.T) {
	backend := newFakeBackend("asha_2")
	d := New(sheets.NewLogger(backend, nil))

	res := d.Handle(context.Background(), "   UPDATE FOR asha_2: Hours: 3")

	require.True(t, res.OK(), res.ErrorMessage)
	require.Len(t, backend.appended["asha_2"], 1)
	assert.Equal(t, "3", backend.appended["asha_2"][0][4])
}

func TestHandle_TransportError(t *testing.T) {
	backend := newFakeBackend("Kevin")
	backend.err = errors.New("dial tcp: lookup sheets.googleapis.com: no such host")
	d := New(sheets.NewLogger(backend, nil))

	res := d.Handle(context.Background(), kevinPrompt)

	assert.Equal(t, model.StatusError, res.Status)
	assert.Equal(t, "dial tcp: lookup sheets.googleapis.com: no such host", res.ErrorMessage)
}

func TestLogStructured(t *testing.T) {
	backend := newFakeBackend("Kevin")
	hist := &memHistory{}
	d := New(sheets.NewLogger(backend, nil), WithHistory(hist))

	res := d.LogStructured(context.Background(), " Kevin ", map[string]string{
		model.ColumnDate:        "2025-06-30",
		model.ColumnHoursWorked: "4",
		model.ColumnBlockers:    model.NoBlockers,
	})

	require.True(t, res.OK(), res.ErrorMessage)
	require.Len(t, backend.appended["Kevin"], 1)
	row := backend.appended["Kevin"][0]
	assert.Equal(t, "2025-06-30", row[0])
	assert.Equal(t, "", row[1])
	assert.Equal(t, "4", row[4])
	assert.Equal(t, "", row[8])

	require.Len(t, hist.logs, 1)
	assert.Equal(t, store.SourceStructured, hist.logs[0].Source)

	res = d.As(store.SourceAgent).LogStructured(context.Background(), "Nobody", nil)
	assert.Equal(t, model.StatusError, res.Status)
	require.Len(t, hist.logs, 2)
	assert.Equal(t, store.SourceAgent, hist.logs[1].Source)
}

func TestHandle_RecordsToSQLite(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "tasklogger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	d := New(sheets.NewLogger(newFakeBackend("Kevin"), nil), WithHistory(st))
	require.True(t, d.Handle(context.Background(), kevinPrompt).OK())
	require.False(t, d.Handle(context.Background(), "Please log my day").OK())

	logs, err := st.ListUpdateLogs(store.UpdateLogQuery{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.StatusError, logs[0].Status)
	assert.Equal(t, UsageHint, logs[0].Message)
	assert.Equal(t, "2025-06-30", logs[1].Row[0])
}

func TestParseSheetName(t *testing.T) {
	name, err := ParseSheetName("update for Priya: all done")
	require.NoError(t, err)
	assert.Equal(t, "Priya", name)

	_, err = ParseSheetName("Please log my day")
	assert.ErrorIs(t, err, ErrBadPrefix)
}
