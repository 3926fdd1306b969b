package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"tasklogger/internal/agent"
	"tasklogger/internal/dispatcher"
	"tasklogger/internal/model"
	"tasklogger/internal/sheets"
	"tasklogger/internal/store"
)

type memBackend struct {
	titles   []string
	appended map[string][][]string
}

func (b *memBackend) SheetTitles(context.Context) ([]string, error) {
	return b.titles, nil
}

func (b *memBackend) AppendRow(_ context.Context, sheet string, row []string) error {
	b.appended[sheet] = append(b.appended[sheet], row)
	return nil
}

// provisioningBackend also creates sheets
type provisioningBackend struct {
	memBackend
}

func (b *provisioningBackend) CreateSheet(_ context.Context, name string, _ []string) error {
	b.titles = append(b.titles, name)
	return nil
}

type stubAgent struct {
	reply agent.Reply
	err   error
	got   string
}

func (a *stubAgent) Run(_ context.Context, message string) (agent.Reply, error) {
	a.got = message
	return a.reply, a.err
}

func newTestRouter(t *testing.T, backend sheets.Backend, runner AgentRunner) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "tasklogger.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	d := dispatcher.New(sheets.NewLogger(backend, nil), dispatcher.WithHistory(st))
	h := NewHandler(Deps{
		Dispatcher: d,
		History:    st,
		Agent:      runner,
		Backend:    "workbook",
		Target:     "updates.xlsx",
	})
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r, st
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return v
}

func newMem(titles ...string) *memBackend {
	return &memBackend{titles: titles, appended: map[string][][]string{}}
}

func TestLogNatural(t *testing.T) {
	backend := newMem("Kevin")
	r, _ := newTestRouter(t, backend, nil)

	w := do(t, r, http.MethodPost, "/api/updates/natural",
		`{"prompt":"Update for Kevin: Project: Billing. Hours: 4. Blockers: none"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	res := decode[model.Result](t, w)
	if res.Status != model.StatusSuccess || res.Report != "Daily update added to sheet 'Kevin'." {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := backend.appended["Kevin"]; len(got) != 1 || got[0][1] != "Billing" || got[0][4] != "4" {
		t.Fatalf("unexpected rows: %v", got)
	}
}

func TestLogNatural_ErrorsAreOK(t *testing.T) {
	r, _ := newTestRouter(t, newMem("Kevin"), nil)

	w := do(t, r, http.MethodPost, "/api/updates/natural", `{"prompt":"worked 2 hours"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	res := decode[model.Result](t, w)
	if res.Status != model.StatusError || res.ErrorMessage != dispatcher.UsageHint {
		t.Fatalf("unexpected result: %+v", res)
	}

	w = do(t, r, http.MethodPost, "/api/updates/natural", `{"prompt":"Update for Siva: done"}`)
	res = decode[model.Result](t, w)
	if res.ErrorMessage != "Sheet 'Siva' does not exist. Cannot add entry." {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLogNatural_MalformedJSON(t *testing.T) {
	r, _ := newTestRouter(t, newMem("Kevin"), nil)

	w := do(t, r, http.MethodPost, "/api/updates/natural", `{"prompt":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	res := decode[model.Result](t, w)
	if res.Status != model.StatusError || res.ErrorMessage == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLogStructured(t *testing.T) {
	backend := newMem("Kevin")
	r, _ := newTestRouter(t, backend, nil)

	w := do(t, r, http.MethodPost, "/api/updates/structured",
		`{"name":"Kevin","entry":{"Date":"2025-06-30","Hours Worked":2,"Leave/WFH":"WFH"}}`)
	res := decode[model.Result](t, w)
	if !res.OK() {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := []string{"2025-06-30", "", "WFH", "", "2", "", "", "", ""}
	got := backend.appended["Kevin"]
	if len(got) != 1 {
		t.Fatalf("unexpected rows: %v", got)
	}
	for i := range want {
		if got[0][i] != want[i] {
			t.Fatalf("column %d: got %q want %q", i, got[0][i], want[i])
		}
	}
}

func TestListUpdates(t *testing.T) {
	r, _ := newTestRouter(t, newMem("Kevin", "Siva"), nil)

	do(t, r, http.MethodPost, "/api/updates/natural", `{"prompt":"Update for Kevin: Hours: 1"}`)
	do(t, r, http.MethodPost, "/api/updates/natural", `{"prompt":"Update for Siva: Hours: 2"}`)
	do(t, r, http.MethodPost, "/api/updates/natural", `{"prompt":"Update for Kevin: Hours: 3"}`)

	w := do(t, r, http.MethodGet, "/api/updates?sheet=Kevin&limit=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	resp := decode[updatesResponse](t, w)
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	if it := resp.Items[0]; it.SheetName != "Kevin" || it.Row[4] != "3" || it.Source != store.SourceNatural {
		t.Fatalf("unexpected item: %+v", it)
	}

	w = do(t, r, http.MethodGet, "/api/updates?limit=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for bad limit: %d", w.Code)
	}
}

func TestListUpdates_HistoryDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(Deps{Dispatcher: dispatcher.New(sheets.NewLogger(newMem(), nil))})
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))

	w := do(t, r, http.MethodGet, "/api/updates", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestSheets(t *testing.T) {
	backend := &provisioningBackend{memBackend: *newMem("Kevin")}
	r, _ := newTestRouter(t, backend, nil)

	w := do(t, r, http.MethodPost, "/api/sheets", `{"name":"Siva"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/api/sheets", `{"name":"Siva"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/sheets", `{"name":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/sheets", "")
	resp := decode[sheetsResponse](t, w)
	if len(resp.Sheets) != 2 || resp.Sheets[1] != "Siva" {
		t.Fatalf("unexpected sheets: %v", resp.Sheets)
	}
}

func TestCreateSheet_Unsupported(t *testing.T) {
	r, _ := newTestRouter(t, newMem("Kevin"), nil)

	w := do(t, r, http.MethodPost, "/api/sheets", `{"name":"Siva"}`)
	if w.Code != http.StatusNotImplemented {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestStatus(t *testing.T) {
	r, _ := newTestRouter(t, newMem(), nil)

	resp := decode[StatusResponse](t, do(t, r, http.MethodGet, "/api/status", ""))
	want := StatusResponse{Backend: "workbook", Target: "updates.xlsx", HistoryEnabled: true}
	if resp != want {
		t.Fatalf("unexpected status: %+v", resp)
	}
}

func TestRunAgent(t *testing.T) {
	runner := &stubAgent{reply: agent.Reply{Text: "Logged."}}
	r, _ := newTestRouter(t, newMem(), runner)

	w := do(t, r, http.MethodPost, "/api/agent", `{"message":"log my day"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if reply := decode[agent.Reply](t, w); reply.Text != "Logged." {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if runner.got != "log my day" {
		t.Fatalf("agent got %q", runner.got)
	}

	runner.err = errors.New("quota exceeded")
	w = do(t, r, http.MethodPost, "/api/agent", `{"message":"again"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/agent", `{"message":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestRunAgent_NotConfigured(t *testing.T) {
	r, _ := newTestRouter(t, newMem(), nil)

	w := do(t, r, http.MethodPost, "/api/agent", `{"message":"hi"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}
