package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/leaguedesk/cardimport/internal/domain/importrun"
	"github.com/leaguedesk/cardimport/internal/platform/logging"
	"github.com/leaguedesk/cardimport/internal/usecase"
)

const maxImportUploadBytes = 10 << 20

type Handler struct {
	importService *usecase.CardImportService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(importService *usecase.CardImportService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		importService: importService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// RunCardImport drives one import invocation. The form carries an action
// (import or preview_sql), an optional dry_run flag, and an optional CSV
// upload; without an upload the service falls back to its configured
// server-side file.
func (h *Handler) RunCardImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCardImport")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxImportUploadBytes)

	csvInput, cleanup, err := h.parseImportForm(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer cleanup()

	action := strings.TrimSpace(r.FormValue("action"))
	if err := h.validateRequest(ctx, runImportRequest{Action: action}); err != nil {
		writeError(ctx, w, err)
		return
	}

	dryRun := false
	if raw := strings.TrimSpace(r.FormValue("dry_run")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: dry_run must be a boolean, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		dryRun = parsed
	}

	switch action {
	case importrun.ActionPreview:
		sqlText, err := h.importService.PreviewSQL(ctx, csvInput)
		if err != nil {
			h.logger.WarnContext(ctx, "preview sql failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, sqlText)

	case importrun.ActionImport:
		report, err := h.importService.Import(ctx, csvInput, dryRun)
		if err != nil {
			h.logger.ErrorContext(ctx, "card import failed", "dry_run", dryRun, "error", err)
			if report.RecordsProcessed == 0 && !report.Success {
				// Planning never started; a structural problem, not a
				// failed commit.
				writeError(ctx, w, err)
				return
			}
			writeJSON(ctx, w, http.StatusInternalServerError, report)
			return
		}
		writeJSON(ctx, w, http.StatusOK, report)
	}
}

func (h *Handler) ListImportRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListImportRuns")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		limit = parsed
	}

	runs, err := h.importService.ListRuns(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list import runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]importRunDTO, 0, len(runs))
	for _, run := range runs {
		items = append(items, runToDTO(ctx, run))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetImportRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetImportRun")
	defer span.End()

	runID := r.PathValue("runID")
	run, err := h.importService.GetRun(ctx, runID)
	if err != nil {
		h.logger.WarnContext(ctx, "get import run failed", "run_id", runID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, runToDTO(ctx, run))
}

// parseImportForm parses the request form and extracts the optional CSV
// upload. The returned cleanup closes the upload and is always non-nil.
func (h *Handler) parseImportForm(ctx context.Context, r *http.Request) (io.Reader, func(), error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.parseImportForm")
	defer span.End()

	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseForm(); err != nil {
			return nil, noop, fmt.Errorf("%w: parse form: %v", usecase.ErrInvalidInput, err)
		}
		return nil, noop, nil
	}

	if err := r.ParseMultipartForm(maxImportUploadBytes); err != nil {
		return nil, noop, fmt.Errorf("%w: parse multipart form: %v", usecase.ErrInvalidInput, err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("%w: read csv upload: %v", usecase.ErrInvalidInput, err)
	}

	return file, func() { _ = file.Close() }, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type runImportRequest struct {
	Action string `validate:"required,oneof=import preview_sql"`
}

type importRunDTO struct {
	ID              string          `json:"id"`
	Action          string          `json:"action"`
	DryRun          bool            `json:"dry_run"`
	RowsProcessed   int             `json:"rows_processed"`
	RecordsImported int             `json:"records_imported"`
	RecordsSkipped  int             `json:"records_skipped"`
	PlayersAdded    int             `json:"players_added"`
	Report          json.RawMessage `json:"report,omitempty"`
	CreatedAtUTC    string          `json:"created_at_utc"`
}

func runToDTO(ctx context.Context, run importrun.Run) importRunDTO {
	ctx, span := startSpan(ctx, "httpapi.runToDTO")
	defer span.End()

	return importRunDTO{
		ID:              run.ID,
		Action:          run.Action,
		DryRun:          run.DryRun,
		RowsProcessed:   run.RowsProcessed,
		RecordsImported: run.RecordsImported,
		RecordsSkipped:  run.RecordsSkipped,
		PlayersAdded:    run.PlayersAdded,
		Report:          json.RawMessage(run.Report),
		CreatedAtUTC:    run.CreatedAt.UTC().Format(time.RFC3339),
	}
}
