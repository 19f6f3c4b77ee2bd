package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/async"
	"github.com/gdg-fisk/content-pipeline/internal/export"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
)

type stubQueue struct {
	jobs []async.Job
}

func (q *stubQueue) Enqueue(_ context.Context, job async.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *stubQueue) Shutdown(context.Context) {}

func newTestRouter(t *testing.T) (*gin.Engine, *stubQueue) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	backend, err := pages.OpenSQLite(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := pages.NewStore(context.Background(), backend, pages.DefaultCatalog(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	queue := &stubQueue{}
	exporter := export.NewService(store, nil)
	return NewRouter(NewHandler(queue, store, exporter, nil)), queue
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestPublishEnqueues(t *testing.T) {
	router, queue := newTestRouter(t)

	body := strings.NewReader(`{"kind": "projects", "fileName": "Fisk App"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/publish", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["traceId"] == "" {
		t.Error("response carries no traceId")
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("enqueued %d jobs, want 1", len(queue.jobs))
	}
	job := queue.jobs[0]
	if string(job.Request.Kind) != "projects" || job.Request.FileName != "Fisk App" {
		t.Errorf("job = %+v", job.Request)
	}
	if job.TraceID != resp["traceId"] {
		t.Error("job trace id does not match the acknowledged one")
	}
}

func TestPublishRejectsBadRequests(t *testing.T) {
	router, queue := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing file name", `{"kind": "projects"}`},
		{"unknown kind", `{"kind": "events", "fileName": "Doc"}`},
		{"not json", `nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/publish", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
	if len(queue.jobs) != 0 {
		t.Errorf("enqueued %d jobs from invalid requests", len(queue.jobs))
	}
}

func TestGetPage(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/"+constants.HomePageDoc, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var fields map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if fields["homeVideoUrl"] != pages.DefaultHomeVideoURL {
		t.Errorf("homeVideoUrl = %v, want bootstrap default", fields["homeVideoUrl"])
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages/NoSuchPage", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d for unknown page, want 404", w.Code)
	}
}

func TestExportPages(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pages.xlsx", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("export returned an empty workbook")
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "pages.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}
}
