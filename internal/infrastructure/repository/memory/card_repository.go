package memory

import (
	"context"
	"sync"

	"github.com/leaguedesk/cardimport/internal/domain/cardimport"
	"github.com/leaguedesk/cardimport/internal/domain/roster"
)

// CardRepository applies change plans against in-process state. Apply is
// all-or-nothing: state mutates only after every insert succeeds, matching
// the transactional behavior of the SQL-backed repository.
type CardRepository struct {
	mu      sync.RWMutex
	records []cardimport.RecordInsert
	players []roster.Player
	nextID  int64

	// FailApply, when set, is consulted before any state changes and its
	// error aborts the whole apply.
	FailApply func(plan cardimport.Plan) error
}

func NewCardRepository(nextPlayerID int64) *CardRepository {
	return &CardRepository{nextID: nextPlayerID}
}

func (r *CardRepository) ApplyPlan(_ context.Context, plan cardimport.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailApply != nil {
		if err := r.FailApply(plan); err != nil {
			return err
		}
	}

	inserted := make([]roster.Player, 0, len(plan.PendingPlayers))
	idByKey := make(map[string]int64, len(plan.PendingPlayers))
	nextID := r.nextID
	for _, pending := range plan.PendingPlayers {
		p := roster.Player{
			ID:       nextID,
			Name:     pending.Name,
			TeamID:   pending.TeamID,
			TeamName: pending.TeamName,
			Active:   pending.Active,
		}
		nextID++
		inserted = append(inserted, p)
		idByKey[pending.Key] = p.ID
	}

	records := make([]cardimport.RecordInsert, 0, len(plan.Records))
	for _, record := range plan.Records {
		if record.PlayerID == 0 {
			record.PlayerID = idByKey[record.PendingKey]
		}
		records = append(records, record)
	}

	// full replace
	r.records = records
	r.players = append(r.players, inserted...)
	r.nextID = nextID

	return nil
}

func (r *CardRepository) Records() []cardimport.RecordInsert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cardimport.RecordInsert, 0, len(r.records))
	out = append(out, r.records...)

	return out
}

func (r *CardRepository) InsertedPlayers() []roster.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out
}
