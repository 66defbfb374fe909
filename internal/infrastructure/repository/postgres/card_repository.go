package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/leaguedesk/cardimport/internal/domain/cardimport"
)

// CardRepository owns the disciplinary-record store. Imports are
// full-replace: every committed run deletes all existing records before
// reinserting, so the final set exactly reflects the latest CSV.
type CardRepository struct {
	db *sqlx.DB
}

func NewCardRepository(db *sqlx.DB) *CardRepository {
	return &CardRepository{db: db}
}

// ApplyPlan executes a change plan inside a single transaction: delete all
// cards, insert pending players capturing their generated ids, insert every
// record. Any failure rolls the whole run back; a failed apply leaves players
// and cards exactly as they were.
func (r *CardRepository) ApplyPlan(ctx context.Context, plan cardimport.Plan) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for card import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("delete existing cards: %w", err)
	}

	const insertPlayerQuery = `
INSERT INTO players (name, team_id, is_active)
VALUES ($1, $2, $3)
RETURNING id`

	playerIDByKey := make(map[string]int64, len(plan.PendingPlayers))
	for _, pending := range plan.PendingPlayers {
		var playerID int64
		if err := tx.QueryRowxContext(ctx, insertPlayerQuery, pending.Name, pending.TeamID, pending.Active).Scan(&playerID); err != nil {
			return fmt.Errorf("insert player %s: %w", pending.Name, err)
		}
		playerIDByKey[pending.Key] = playerID
	}

	const insertCardQuery = `
INSERT INTO cards (player_id, card_type, reason, incident_date, notes)
VALUES ($1, $2, $3, $4, $5)`

	for i, record := range plan.Records {
		playerID := record.PlayerID
		if playerID == 0 {
			resolved, ok := playerIDByKey[record.PendingKey]
			if !ok {
				return fmt.Errorf("record %d references unknown pending player %q", i, record.PendingKey)
			}
			playerID = resolved
		}

		notes, err := sonic.Marshal(record.Notes)
		if err != nil {
			return fmt.Errorf("marshal notes for record %d: %w", i, err)
		}

		if _, err := tx.ExecContext(ctx, insertCardQuery, playerID, string(record.Kind), record.Reason, record.IncidentDate, notes); err != nil {
			return fmt.Errorf("insert card %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit card import: %w", err)
	}

	return nil
}
