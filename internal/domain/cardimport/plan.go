package cardimport

import "github.com/leaguedesk/cardimport/internal/domain/card"

// PendingPlayer is a player referenced by the CSV but absent from the
// snapshot. Pending players are deduplicated across rows by Key and imported
// inactive: historical sheet appearances say nothing about current rosters.
type PendingPlayer struct {
	Key      string
	Name     string
	TeamID   int64
	TeamName string
	Active   bool
}

// RecordInsert is one disciplinary record the plan will create. It references
// either an existing player by id or a pending player by key, never both.
type RecordInsert struct {
	PlayerID     int64
	PendingKey   string
	Kind         card.Kind
	Reason       string
	IncidentDate *int64
	Notes        card.Notes
}

// SkipDetail explains one excluded row.
type SkipDetail struct {
	Player   string `json:"player"`
	Team     string `json:"team"`
	Date     string `json:"date"`
	CardType string `json:"card_type"`
	Reason   string `json:"reason"`
}

// TeamStats aggregates outcomes per team.
type TeamStats struct {
	Total       int            `json:"total"`
	Imported    int            `json:"imported"`
	Skipped     int            `json:"skipped"`
	SkipReasons map[string]int `json:"skip_reasons"`
}

// Stats are the aggregate counters accumulated alongside a plan.
type Stats struct {
	RowsProcessed int
	RecordsToAdd  int
	RowsSkipped   int
	PlayersToAdd  int
	SkipDetails   []SkipDetail
	TeamStats     map[string]*TeamStats
}

// Plan is the complete, side-effect-free output of planning: everything the
// executor needs to preview or commit a run, in row order.
type Plan struct {
	PendingPlayers []PendingPlayer
	Records        []RecordInsert
	Stats          Stats
	Warnings       []string
}
