package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/sourcegraph/conc/pool"

	"github.com/leaguedesk/cardimport/internal/domain/cardimport"
	"github.com/leaguedesk/cardimport/internal/domain/importrun"
	"github.com/leaguedesk/cardimport/internal/domain/roster"
	"github.com/leaguedesk/cardimport/internal/platform/id"
	"github.com/leaguedesk/cardimport/internal/platform/logging"
)

// PlanApplier commits a change plan against the card store. The contract is
// all-or-nothing: a failed apply must leave players and cards untouched.
type PlanApplier interface {
	ApplyPlan(ctx context.Context, plan cardimport.Plan) error
}

// PlanRenderer renders a change plan as reviewable SQL text.
type PlanRenderer interface {
	RenderPlanSQL(plan cardimport.Plan) string
}

// ImportReport is the operator-facing outcome of an import run. Field names
// are part of the invocation contract.
type ImportReport struct {
	Success          bool                             `json:"success"`
	RecordsProcessed int                              `json:"records_processed"`
	RecordsImported  int                              `json:"records_imported"`
	RecordsSkipped   int                              `json:"records_skipped"`
	PlayersAdded     int                              `json:"players_added"`
	Errors           []string                         `json:"errors"`
	Warnings         []string                         `json:"warnings"`
	DryRun           bool                             `json:"dry_run"`
	SkippedDetails   []cardimport.SkipDetail          `json:"skipped_details"`
	TeamStats        map[string]*cardimport.TeamStats `json:"team_stats"`
	RunID            string                           `json:"run_id,omitempty"`
}

// CardImportService runs the disciplinary-card import pipeline: snapshot
// load, planning, and either SQL preview or transactional commit. Preview and
// commit consume the same plan so the two modes cannot diverge.
type CardImportService struct {
	rosterRepo roster.Repository
	cards      PlanApplier
	renderer   PlanRenderer
	runs       importrun.Repository
	idGen      id.Generator
	planner    *cardimport.Planner
	csvPath    string
	logger     *logging.Logger
}

func NewCardImportService(
	rosterRepo roster.Repository,
	cards PlanApplier,
	renderer PlanRenderer,
	runs importrun.Repository,
	idGen id.Generator,
	planner *cardimport.Planner,
	csvPath string,
	logger *logging.Logger,
) *CardImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if planner == nil {
		planner = cardimport.NewPlanner(nil, "csv_import")
	}

	return &CardImportService{
		rosterRepo: rosterRepo,
		cards:      cards,
		renderer:   renderer,
		runs:       runs,
		idGen:      idGen,
		planner:    planner,
		csvPath:    csvPath,
		logger:     logger,
	}
}

// PreviewSQL plans the import and renders it as SQL text for manual review.
// No live state is touched.
func (s *CardImportService) PreviewSQL(ctx context.Context, csvInput io.Reader) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardImportService.PreviewSQL")
	defer span.End()

	plan, err := s.buildPlan(ctx, csvInput)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderPlanSQL(plan), nil
}

// Import plans the import and, unless dryRun is set, applies it in a single
// transaction. The returned report is populated in both cases; a non-nil
// error alongside a report means the commit failed and no changes were made.
func (s *CardImportService) Import(ctx context.Context, csvInput io.Reader, dryRun bool) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardImportService.Import")
	defer span.End()

	plan, err := s.buildPlan(ctx, csvInput)
	if err != nil {
		return ImportReport{}, err
	}

	report := reportFromPlan(plan, dryRun)

	if !dryRun {
		if err := s.cards.ApplyPlan(ctx, plan); err != nil {
			report.Success = false
			report.Errors = append(report.Errors, err.Error())
			s.recordRun(ctx, &report)
			return report, fmt.Errorf("apply import plan: %w", err)
		}
	}

	s.recordRun(ctx, &report)
	s.logger.InfoContext(ctx, "card import finished",
		"dry_run", dryRun,
		"rows_processed", report.RecordsProcessed,
		"records_imported", report.RecordsImported,
		"records_skipped", report.RecordsSkipped,
		"players_added", report.PlayersAdded,
		"run_id", report.RunID,
	)

	return report, nil
}

func (s *CardImportService) GetRun(ctx context.Context, runID string) (importrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardImportService.GetRun")
	defer span.End()

	runID = strings.TrimSpace(runID)
	if runID == "" {
		return importrun.Run{}, fmt.Errorf("%w: run id is required", ErrInvalidInput)
	}

	run, ok, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return importrun.Run{}, fmt.Errorf("get import run: %w", err)
	}
	if !ok {
		return importrun.Run{}, fmt.Errorf("%w: import run %s", ErrNotFound, runID)
	}
	return run, nil
}

func (s *CardImportService) ListRuns(ctx context.Context, limit int) ([]importrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardImportService.ListRuns")
	defer span.End()

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	return runs, nil
}

// buildPlan loads the roster snapshot and the CSV, then plans. A nil reader
// falls back to the configured server-side CSV path.
func (s *CardImportService) buildPlan(ctx context.Context, csvInput io.Reader) (cardimport.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardImportService.buildPlan")
	defer span.End()

	if csvInput == nil {
		if strings.TrimSpace(s.csvPath) == "" {
			return cardimport.Plan{}, fmt.Errorf("%w: no csv file attached and no default path configured", ErrInvalidInput)
		}
		f, err := os.Open(s.csvPath)
		if err != nil {
			return cardimport.Plan{}, fmt.Errorf("%w: open csv %s: %v", ErrInvalidInput, s.csvPath, err)
		}
		defer f.Close()
		csvInput = f
	}

	rows, err := cardimport.ReadRows(csvInput)
	if err != nil {
		return cardimport.Plan{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return cardimport.Plan{}, err
	}

	return s.planner.BuildPlan(rows, snapshot), nil
}

// loadSnapshot takes the read-once roster copy for this run, fetching teams
// and players in parallel.
func (s *CardImportService) loadSnapshot(ctx context.Context) (*roster.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardImportService.loadSnapshot")
	defer span.End()

	var (
		teams   []roster.Team
		players []roster.Player
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		listed, err := s.rosterRepo.ListTeams(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teams = listed
		return nil
	})
	p.Go(func(ctx context.Context) error {
		listed, err := s.rosterRepo.ListPlayers(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		players = listed
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("load roster snapshot: %w", err)
	}

	return roster.NewSnapshot(teams, players), nil
}

func (s *CardImportService) recordRun(ctx context.Context, report *ImportReport) {
	if s.runs == nil || s.idGen == nil {
		return
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		s.logger.WarnContext(ctx, "generate run id", "error", err)
		return
	}
	report.RunID = runID

	blob, err := sonic.Marshal(report)
	if err != nil {
		s.logger.WarnContext(ctx, "marshal run report", "error", err)
		blob = nil
	}

	run := importrun.Run{
		ID:              runID,
		Action:          importrun.ActionImport,
		DryRun:          report.DryRun,
		RowsProcessed:   report.RecordsProcessed,
		RecordsImported: report.RecordsImported,
		RecordsSkipped:  report.RecordsSkipped,
		PlayersAdded:    report.PlayersAdded,
		Report:          blob,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.runs.Record(ctx, run); err != nil {
		// The import itself already succeeded or failed on its own terms;
		// a missing audit row is only worth a warning.
		s.logger.WarnContext(ctx, "record import run", "error", err, "run_id", runID)
	}
}

func reportFromPlan(plan cardimport.Plan, dryRun bool) ImportReport {
	report := ImportReport{
		Success:          true,
		RecordsProcessed: plan.Stats.RowsProcessed,
		RecordsImported:  plan.Stats.RecordsToAdd,
		RecordsSkipped:   plan.Stats.RowsSkipped,
		PlayersAdded:     plan.Stats.PlayersToAdd,
		Errors:           []string{},
		Warnings:         append([]string{}, plan.Warnings...),
		DryRun:           dryRun,
		SkippedDetails:   append([]cardimport.SkipDetail{}, plan.Stats.SkipDetails...),
		TeamStats:        plan.Stats.TeamStats,
	}
	if report.TeamStats == nil {
		report.TeamStats = map[string]*cardimport.TeamStats{}
	}
	return report
}
