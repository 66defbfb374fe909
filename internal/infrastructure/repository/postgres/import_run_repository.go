package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leaguedesk/cardimport/internal/domain/importrun"
	qb "github.com/leaguedesk/cardimport/internal/platform/querybuilder"
)

type ImportRunRepository struct {
	db *sqlx.DB
}

type importRunTableModel struct {
	ID              string    `db:"id"`
	Action          string    `db:"action"`
	DryRun          bool      `db:"dry_run"`
	RowsProcessed   int       `db:"rows_processed"`
	RecordsImported int       `db:"records_imported"`
	RecordsSkipped  int       `db:"records_skipped"`
	PlayersAdded    int       `db:"players_added"`
	Report          []byte    `db:"report"`
	CreatedAt       time.Time `db:"created_at"`
}

var importRunSelectColumns = []string{
	"id",
	"action",
	"dry_run",
	"rows_processed",
	"records_imported",
	"records_skipped",
	"players_added",
	"report",
	"created_at",
}

func NewImportRunRepository(db *sqlx.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Record(ctx context.Context, run importrun.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validate import run: %w", err)
	}

	report := run.Report
	if len(report) == 0 {
		report = []byte("{}")
	}

	query, args, err := qb.InsertInto("import_runs").
		Columns("id", "action", "dry_run", "rows_processed", "records_imported", "records_skipped", "players_added", "report", "created_at").
		Values(run.ID, run.Action, run.DryRun, run.RowsProcessed, run.RecordsImported, run.RecordsSkipped, run.PlayersAdded, report, run.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert import run query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) GetByID(ctx context.Context, id string) (importrun.Run, bool, error) {
	query, args, err := qb.Select(importRunSelectColumns...).From("import_runs").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return importrun.Run{}, false, fmt.Errorf("build select import run query: %w", err)
	}

	var row importRunTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return importrun.Run{}, false, nil
		}
		return importrun.Run{}, false, fmt.Errorf("get import run: %w", err)
	}

	return runFromTableModel(row), true, nil
}

func (r *ImportRunRepository) List(ctx context.Context, limit int) ([]importrun.Run, error) {
	query, args, err := qb.Select(importRunSelectColumns...).From("import_runs").
		OrderBy("created_at DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select import runs query: %w", err)
	}

	var rows []importRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select import runs: %w", err)
	}

	out := make([]importrun.Run, 0, len(rows))
	for _, row := range rows {
		out = append(out, runFromTableModel(row))
	}
	return out, nil
}

func runFromTableModel(row importRunTableModel) importrun.Run {
	return importrun.Run{
		ID:              row.ID,
		Action:          row.Action,
		DryRun:          row.DryRun,
		RowsProcessed:   row.RowsProcessed,
		RecordsImported: row.RecordsImported,
		RecordsSkipped:  row.RecordsSkipped,
		PlayersAdded:    row.PlayersAdded,
		Report:          row.Report,
		CreatedAt:       row.CreatedAt,
	}
}
