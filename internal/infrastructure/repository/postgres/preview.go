package postgres

import (
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/leaguedesk/cardimport/internal/domain/card"
	"github.com/leaguedesk/cardimport/internal/domain/cardimport"
	qb "github.com/leaguedesk/cardimport/internal/platform/querybuilder"
)

// PreviewRenderer turns a change plan into the SQL script a committed run
// would execute, for manual review. Records referencing a player inserted
// earlier in the same script resolve the id with a correlated subquery, so
// the script is runnable as-is.
type PreviewRenderer struct{}

func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{}
}

func (p *PreviewRenderer) RenderPlanSQL(plan cardimport.Plan) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("-- disciplinary card import\n")
	_, _ = buf.WriteString("-- full-replace: existing records are deleted before reinsertion\n\n")
	_, _ = buf.WriteString("BEGIN;\n\n")
	_, _ = buf.WriteString("DELETE FROM cards;\n\n")

	for _, pending := range plan.PendingPlayers {
		_, _ = buf.WriteString("INSERT INTO players (name, team_id, is_active) VALUES (")
		_, _ = buf.WriteString(qb.QuoteLiteral(pending.Name))
		_, _ = buf.WriteString(", ")
		_, _ = buf.WriteString(strconv.FormatInt(pending.TeamID, 10))
		_, _ = buf.WriteString(", ")
		_, _ = buf.WriteString(boolLiteral(pending.Active))
		_, _ = buf.WriteString(");\n")
	}
	if len(plan.PendingPlayers) > 0 {
		_ = buf.WriteByte('\n')
	}

	pendingByKey := make(map[string]cardimport.PendingPlayer, len(plan.PendingPlayers))
	for _, pending := range plan.PendingPlayers {
		pendingByKey[pending.Key] = pending
	}

	for _, record := range plan.Records {
		_, _ = buf.WriteString("INSERT INTO cards (player_id, card_type, reason, incident_date, notes) VALUES (")

		if record.PlayerID > 0 {
			_, _ = buf.WriteString(strconv.FormatInt(record.PlayerID, 10))
		} else {
			pending := pendingByKey[record.PendingKey]
			_, _ = buf.WriteString("(SELECT id FROM players WHERE LOWER(name) = LOWER(")
			_, _ = buf.WriteString(qb.QuoteLiteral(pending.Name))
			_, _ = buf.WriteString(") AND team_id = ")
			_, _ = buf.WriteString(strconv.FormatInt(pending.TeamID, 10))
			_, _ = buf.WriteString(" LIMIT 1)")
		}

		_, _ = buf.WriteString(", ")
		_, _ = buf.WriteString(qb.QuoteLiteral(string(record.Kind)))
		_, _ = buf.WriteString(", ")
		_, _ = buf.WriteString(qb.QuoteLiteral(record.Reason))
		_, _ = buf.WriteString(", ")
		if record.IncidentDate != nil {
			_, _ = buf.WriteString(strconv.FormatInt(*record.IncidentDate, 10))
		} else {
			_, _ = buf.WriteString("NULL")
		}
		_, _ = buf.WriteString(", ")
		_, _ = buf.WriteString(notesLiteral(record.Notes))
		_, _ = buf.WriteString(");\n")
	}

	_, _ = buf.WriteString("\nCOMMIT;\n\n")
	_, _ = buf.WriteString(fmt.Sprintf("-- rows processed:     %d\n", plan.Stats.RowsProcessed))
	_, _ = buf.WriteString(fmt.Sprintf("-- records to import:  %d\n", plan.Stats.RecordsToAdd))
	_, _ = buf.WriteString(fmt.Sprintf("-- rows skipped:       %d\n", plan.Stats.RowsSkipped))
	_, _ = buf.WriteString(fmt.Sprintf("-- new players:        %d\n", plan.Stats.PlayersToAdd))

	return buf.String()
}

func boolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func notesLiteral(notes card.Notes) string {
	blob, err := sonic.Marshal(notes)
	if err != nil {
		return "'{}'"
	}
	return qb.QuoteLiteral(string(blob))
}
