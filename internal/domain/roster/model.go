package roster

import (
	"sort"
	"strings"
)

// Team is a league team as known to the live roster.
type Team struct {
	ID   int64
	Name string
}

// Player is an existing roster member.
type Player struct {
	ID       int64
	Name     string
	TeamID   int64
	TeamName string
	Active   bool
}

// Snapshot is the read-once copy of the current roster an import run matches
// against. It is never refreshed mid-run; concurrent roster edits during a
// run are an accepted race.
type Snapshot struct {
	players     []Player
	teamsByName map[string]Team
}

// NewSnapshot builds a snapshot from the raw team and player listings.
// Players are ordered by id so matching scans resolve ties deterministically.
func NewSnapshot(teams []Team, players []Player) *Snapshot {
	ordered := append([]Player(nil), players...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	byName := make(map[string]Team, len(teams))
	for _, t := range teams {
		byName[strings.ToLower(strings.TrimSpace(t.Name))] = t
	}

	return &Snapshot{players: ordered, teamsByName: byName}
}

// Players returns all snapshot players ordered by ascending id.
func (s *Snapshot) Players() []Player {
	if s == nil {
		return nil
	}
	return s.players
}

// TeamByName resolves a team case-insensitively.
func (s *Snapshot) TeamByName(name string) (Team, bool) {
	if s == nil {
		return Team{}, false
	}
	t, ok := s.teamsByName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}
