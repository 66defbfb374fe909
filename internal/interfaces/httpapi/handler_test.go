package httpapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/leaguedesk/cardimport/internal/infrastructure/repository/memory"
	"github.com/leaguedesk/cardimport/internal/infrastructure/repository/postgres"
	"github.com/leaguedesk/cardimport/internal/platform/id"
	"github.com/leaguedesk/cardimport/internal/usecase"
)

const testAdminToken = "test-admin-token"

const sampleCSV = "Player Name,Team Name,Card Type,Reason,Game Date\n" +
	"John Smith,GreenAchers,YELLOW,Sliding,3/4/2024\n" +
	"Jane Doe,Stingrays ReUtd,RED,Dissent,3/4/2024\n"

func newTestRouter(t *testing.T) (http.Handler, *memory.CardRepository) {
	t.Helper()

	rosterRepo := memory.NewRosterRepository(memory.SeedTeams(), memory.SeedPlayers())
	cardRepo := memory.NewCardRepository(100)
	runRepo := memory.NewImportRunRepository()

	service := usecase.NewCardImportService(
		rosterRepo,
		cardRepo,
		postgres.NewPreviewRenderer(),
		runRepo,
		id.NewUUIDGenerator(),
		nil,
		"",
		nil,
	)

	handler := NewHandler(service, nil)
	return NewRouter(handler, nil, testAdminToken, nil), cardRepo
}

func multipartImportRequest(t *testing.T, fields map[string]string, csvBody string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if csvBody != "" {
		part, err := writer.CreateFormFile("file", "cards.csv")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(csvBody)); err != nil {
			t.Fatalf("write csv body: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/card-imports", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Admin-Token", testAdminToken)
	return req
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRunCardImport_RequiresAdminToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "import"}, sampleCSV)
	req.Header.Del("X-Admin-Token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRunCardImport_PreviewSQL(t *testing.T) {
	router, cardRepo := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "preview_sql"}, sampleCSV)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("unexpected Content-Type: %q", got)
	}
	body := rec.Body.String()
	for _, fragment := range []string{"BEGIN;", "DELETE FROM cards;", "COMMIT;"} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("preview missing %q:\n%s", fragment, body)
		}
	}
	if records := cardRepo.Records(); len(records) != 0 {
		t.Fatalf("preview must not touch state, found %d records", len(records))
	}
}

func TestRunCardImport_DryRun(t *testing.T) {
	router, cardRepo := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "import", "dry_run": "true"}, sampleCSV)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var report usecase.ImportReport
	if err := sonic.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Success {
		t.Fatalf("expected success report, got %+v", report)
	}
	if !report.DryRun {
		t.Fatalf("expected dry_run report, got %+v", report)
	}
	if report.RecordsProcessed != 2 || report.RecordsImported != 2 {
		t.Fatalf("unexpected counters: %+v", report)
	}
	if records := cardRepo.Records(); len(records) != 0 {
		t.Fatalf("dry run must not touch state, found %d records", len(records))
	}
}

func TestRunCardImport_Commit(t *testing.T) {
	router, cardRepo := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "import"}, sampleCSV)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var report usecase.ImportReport
	if err := sonic.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.RunID == "" {
		t.Fatalf("expected run id in committed report, got %+v", report)
	}
	if report.PlayersAdded != 1 {
		t.Fatalf("expected one pending player (Jane Doe), got %+v", report)
	}
	if records := cardRepo.Records(); len(records) != 2 {
		t.Fatalf("expected 2 committed records, got %d", len(records))
	}
}

func TestRunCardImport_RejectsUnknownAction(t *testing.T) {
	router, _ := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "drop_everything"}, sampleCSV)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var body errorResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(body.Errors) == 0 {
		t.Fatalf("expected errors array, got %s", rec.Body.String())
	}
}

func TestRunCardImport_RequiresAction(t *testing.T) {
	router, cardRepo := newTestRouter(t)

	// A CSV upload alone must never run an import; action is required and
	// has no default.
	req := multipartImportRequest(t, nil, sampleCSV)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, rec.Code, rec.Body.String())
	}

	var body errorResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(body.Errors) == 0 {
		t.Fatalf("expected errors array, got %s", rec.Body.String())
	}
	if records := cardRepo.Records(); len(records) != 0 {
		t.Fatalf("rejected request must not touch state, found %d records", len(records))
	}
}

func TestRunCardImport_RejectsBadDryRunFlag(t *testing.T) {
	router, _ := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "import", "dry_run": "maybe"}, sampleCSV)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestRunCardImport_MissingUploadWithoutFallback(t *testing.T) {
	router, _ := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "import"}, "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, rec.Code, rec.Body.String())
	}
}

func TestImportRunEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	req := multipartImportRequest(t, map[string]string{"action": "import", "dry_run": "true"}, sampleCSV)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed import failed with status %d: %s", rec.Code, rec.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/admin/card-imports/runs", nil)
	listReq.Header.Set("X-Admin-Token", testAdminToken)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)

	if listRec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, listRec.Code)
	}
	var runs []importRunDTO
	if err := sonic.Unmarshal(listRec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/admin/card-imports/runs/"+runs[0].ID, nil)
	getReq.Header.Set("X-Admin-Token", testAdminToken)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, getRec.Code)
	}

	missingReq := httptest.NewRequest(http.MethodGet, "/v1/admin/card-imports/runs/no-such-run", nil)
	missingReq.Header.Set("X-Admin-Token", testAdminToken)
	missingRec := httptest.NewRecorder()
	router.ServeHTTP(missingRec, missingReq)

	if missingRec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, missingRec.Code)
	}
}
