package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/leaguedesk/cardimport/internal/domain/roster"
	qb "github.com/leaguedesk/cardimport/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"name",
	"created_at",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListTeams(ctx context.Context) ([]roster.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Team{
			ID:   row.ID,
			Name: row.Name,
		})
	}

	return out, nil
}

func (r *RosterRepository) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	// Joined team name feeds the matcher directly; no second lookup per row.
	query, args, err := qb.Select(
		"p.id",
		"p.name",
		"p.team_id",
		"t.name AS team_name",
		"p.is_active",
		"p.created_at",
		"p.updated_at",
	).From("players p JOIN teams t ON t.id = p.team_id").
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Player{
			ID:       row.ID,
			Name:     row.Name,
			TeamID:   row.TeamID,
			TeamName: row.TeamName.String,
			Active:   row.IsActive,
		})
	}

	return out, nil
}
