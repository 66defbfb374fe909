package cardimport

import (
	"strings"

	"github.com/leaguedesk/cardimport/internal/domain/roster"
)

// MatchTier identifies which matching strategy resolved a player.
type MatchTier int

const (
	TierNone MatchTier = iota
	// TierExact: case-insensitive match on both name and team.
	TierExact
	// TierNameOnly: case-insensitive match on name alone, tolerating team
	// reassignment between seasons.
	TierNameOnly
	// TierFuzzy: token-overlap match restricted to the given team.
	TierFuzzy
)

// Matcher resolves a normalized (player name, team name) pair against a
// roster snapshot, tolerating real-world data entry inconsistency. Snapshot
// players are ordered by id, so within a tier the lowest id wins and matching
// is deterministic under ties.
type Matcher struct {
	snapshot *roster.Snapshot
}

func NewMatcher(snapshot *roster.Snapshot) *Matcher {
	return &Matcher{snapshot: snapshot}
}

// Match tries each tier in order and returns the first accepted player.
func (m *Matcher) Match(name, teamName string) (roster.Player, MatchTier, bool) {
	wantName := strings.ToLower(strings.TrimSpace(name))
	wantTeam := strings.ToLower(strings.TrimSpace(teamName))
	if wantName == "" {
		return roster.Player{}, TierNone, false
	}

	for _, p := range m.snapshot.Players() {
		if strings.ToLower(p.Name) == wantName && strings.ToLower(p.TeamName) == wantTeam {
			return p, TierExact, true
		}
	}

	for _, p := range m.snapshot.Players() {
		if strings.ToLower(p.Name) == wantName {
			return p, TierNameOnly, true
		}
	}

	csvTokens := nameTokens(wantName)
	for _, p := range m.snapshot.Players() {
		if strings.ToLower(p.TeamName) != wantTeam {
			continue
		}
		if fuzzyNameMatch(csvTokens, nameTokens(strings.ToLower(p.Name))) {
			return p, TierFuzzy, true
		}
	}

	return roster.Player{}, TierNone, false
}

func nameTokens(name string) []string {
	return strings.Fields(name)
}

// fuzzyNameMatch accepts a candidate when at least half the CSV name's tokens
// (rounded down, minimum one) overlap a candidate token by substring
// containment. Tokens of one or two characters never count, keeping initials
// and particles from producing spurious overlaps.
func fuzzyNameMatch(csvTokens, candidateTokens []string) bool {
	if len(csvTokens) == 0 {
		return false
	}

	matches := 0
	for _, ct := range csvTokens {
		if len(ct) <= 2 {
			continue
		}
		for _, pt := range candidateTokens {
			if len(pt) <= 2 {
				continue
			}
			if strings.Contains(ct, pt) || strings.Contains(pt, ct) {
				matches++
				break
			}
		}
	}

	threshold := len(csvTokens) / 2
	if threshold < 1 {
		threshold = 1
	}
	return matches >= threshold
}
