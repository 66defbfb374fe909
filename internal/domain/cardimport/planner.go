package cardimport

import (
	"fmt"
	"strings"

	"github.com/leaguedesk/cardimport/internal/domain/card"
	"github.com/leaguedesk/cardimport/internal/domain/roster"
)

const unknownTeamKey = "(unknown)"

// Planner classifies CSV rows into a change plan. Planning is pure: given the
// same rows and snapshot it always produces the identical plan, and it never
// touches the database.
type Planner struct {
	normalizer *Normalizer
	sourceTag  string
}

func NewPlanner(normalizer *Normalizer, sourceTag string) *Planner {
	if normalizer == nil {
		normalizer = NewNormalizer(nil, nil, false)
	}
	return &Planner{normalizer: normalizer, sourceTag: sourceTag}
}

// BuildPlan walks the rows in file order, normalizing and matching each one.
// Row-level problems degrade to recorded skips; they never abort planning.
func (p *Planner) BuildPlan(rows []Row, snapshot *roster.Snapshot) Plan {
	plan := Plan{
		Stats: Stats{
			TeamStats: make(map[string]*TeamStats),
		},
	}
	matcher := NewMatcher(snapshot)
	pending := make(map[string]int)

	for i, row := range rows {
		line := i + 2
		plan.Stats.RowsProcessed++

		playerName := NormalizePlayerName(row.Get(ColPlayerName))
		teamName := p.normalizer.NormalizeTeamName(row.Get(ColTeamName))
		stats := p.teamStatsFor(&plan, teamName)
		stats.Total++

		kind, defaulted, kindOK := p.normalizer.NormalizeCardType(row.Get(ColCardType))
		switch {
		case !kindOK && strings.EqualFold(strings.TrimSpace(row.Get(ColCardType)), "N/A"):
			p.skip(&plan, stats, row, playerName, teamName, "Invalid card type (N/A)")
			continue
		case !kindOK:
			p.skip(&plan, stats, row, playerName, teamName,
				fmt.Sprintf("Unrecognized card type (%s)", strings.TrimSpace(row.Get(ColCardType))))
			continue
		case playerName == "":
			p.skip(&plan, stats, row, playerName, teamName, "Missing player name")
			continue
		case teamName == "":
			p.skip(&plan, stats, row, playerName, teamName, "Missing team name")
			continue
		}

		team, ok := snapshot.TeamByName(teamName)
		if !ok {
			p.skip(&plan, stats, row, playerName, teamName, "Unknown team: "+teamName)
			continue
		}

		if defaulted {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf(
				"line %d: unrecognized card type %q for %s imported as yellow",
				line, strings.TrimSpace(row.Get(ColCardType)), playerName))
		}

		record := RecordInsert{
			Kind:   kind,
			Reason: p.normalizer.NormalizeReason(row.Get(ColReason)),
			Notes: card.Notes{
				Season:   strings.TrimSpace(row.Get(ColSeason)),
				Division: strings.TrimSpace(row.Get(ColDivision)),
				Comments: strings.TrimSpace(row.Get(ColComments)),
				Official: strings.TrimSpace(row.Get(ColOfficial)),
				Source:   p.sourceTag,
			},
		}
		if epoch, ok := ParseGameDate(row.Get(ColGameDate)); ok {
			record.IncidentDate = &epoch
		}

		key := pendingKey(playerName, teamName)
		if matched, tier, ok := matcher.Match(playerName, teamName); ok {
			record.PlayerID = matched.ID
			if tier == TierFuzzy {
				plan.Warnings = append(plan.Warnings, fmt.Sprintf(
					"line %d: fuzzy matched %q to roster player %q (id %d) on %s",
					line, playerName, matched.Name, matched.ID, teamName))
			}
		} else {
			if _, queued := pending[key]; !queued {
				pending[key] = len(plan.PendingPlayers)
				plan.PendingPlayers = append(plan.PendingPlayers, PendingPlayer{
					Key:      key,
					Name:     playerName,
					TeamID:   team.ID,
					TeamName: teamName,
					Active:   false,
				})
				plan.Stats.PlayersToAdd++
			}
			record.PendingKey = key
		}

		plan.Records = append(plan.Records, record)
		plan.Stats.RecordsToAdd++
		stats.Imported++
	}

	return plan
}

func (p *Planner) teamStatsFor(plan *Plan, teamName string) *TeamStats {
	key := teamName
	if key == "" {
		key = unknownTeamKey
	}
	stats, ok := plan.Stats.TeamStats[key]
	if !ok {
		stats = &TeamStats{SkipReasons: make(map[string]int)}
		plan.Stats.TeamStats[key] = stats
	}
	return stats
}

func (p *Planner) skip(plan *Plan, stats *TeamStats, row Row, playerName, teamName, reason string) {
	plan.Stats.RowsSkipped++
	stats.Skipped++
	stats.SkipReasons[reason]++
	plan.Stats.SkipDetails = append(plan.Stats.SkipDetails, SkipDetail{
		Player:   playerName,
		Team:     teamName,
		Date:     strings.TrimSpace(row.Get(ColGameDate)),
		CardType: strings.TrimSpace(row.Get(ColCardType)),
		Reason:   reason,
	})
}

func pendingKey(playerName, teamName string) string {
	return strings.ToLower(playerName) + "|" + strings.ToLower(teamName)
}
