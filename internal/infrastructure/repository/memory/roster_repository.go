package memory

import (
	"context"
	"sync"

	"github.com/leaguedesk/cardimport/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	teams   []roster.Team
	players []roster.Player
}

func NewRosterRepository(teams []roster.Team, players []roster.Player) *RosterRepository {
	return &RosterRepository{
		teams:   teams,
		players: players,
	}
}

func (r *RosterRepository) ListTeams(_ context.Context) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}

func (r *RosterRepository) ListPlayers(_ context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

// AddPlayers mirrors a committed import for tests that rebuild the snapshot
// after an apply.
func (r *RosterRepository) AddPlayers(players []roster.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players = append(r.players, players...)
}
