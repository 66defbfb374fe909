package cardimport

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leaguedesk/cardimport/internal/domain/card"
)

func plannerRows() []Row {
	return []Row{
		{
			ColPlayerName: "Smith, John (Male)",
			ColTeamName:   "Green Achers (B Division)",
			ColCardType:   "YELLOW",
			ColReason:     "UB-Sliding",
			ColGameDate:   "3/4/2024",
			ColSeason:     "Spring 2024",
		},
		{
			ColPlayerName: "Doe, Jane (Female)",
			ColTeamName:   "Stingrays ReUtd",
			ColCardType:   "RED",
			ColReason:     "VC",
			ColGameDate:   "3/4/2024",
		},
		{
			ColPlayerName: "Jane Doe",
			ColTeamName:   "Stingrays ReUtd",
			ColCardType:   "YELLOW",
			ColReason:     "Dissent",
			ColGameDate:   "3/11/2024",
		},
		{
			ColPlayerName: "Sam Spade",
			ColTeamName:   "GreenAchers",
			ColCardType:   "N/A",
			ColReason:     "NA",
		},
		{
			ColPlayerName: "",
			ColTeamName:   "GreenAchers",
			ColCardType:   "YELLOW",
		},
		{
			ColPlayerName: "Someone Else",
			ColTeamName:   "Phantom United",
			ColCardType:   "RED",
		},
	}
}

func TestBuildPlan(t *testing.T) {
	planner := NewPlanner(nil, "csv_import")
	plan := planner.BuildPlan(plannerRows(), testSnapshot())

	if plan.Stats.RowsProcessed != 6 {
		t.Fatalf("rows processed = %d, want 6", plan.Stats.RowsProcessed)
	}
	if plan.Stats.RecordsToAdd != 3 {
		t.Fatalf("records to add = %d, want 3", plan.Stats.RecordsToAdd)
	}
	if plan.Stats.RowsSkipped != 3 {
		t.Fatalf("rows skipped = %d, want 3", plan.Stats.RowsSkipped)
	}
	if plan.Stats.PlayersToAdd != 1 {
		t.Fatalf("players to add = %d, want 1", plan.Stats.PlayersToAdd)
	}

	// Row 1: John Smith resolves against the roster.
	first := plan.Records[0]
	if first.PlayerID != 1 {
		t.Fatalf("first record player id = %d, want 1", first.PlayerID)
	}
	if first.Kind != card.KindYellow || first.Reason != "Sliding" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.IncidentDate == nil || *first.IncidentDate != 1709510400 {
		t.Fatalf("unexpected first record date: %v", first.IncidentDate)
	}
	if first.Notes.Season != "Spring 2024" || first.Notes.Source != "csv_import" {
		t.Fatalf("unexpected first record notes: %+v", first.Notes)
	}

	// Rows 2 and 3: Jane Doe is unknown; one pending player, two records
	// sharing its key.
	if len(plan.PendingPlayers) != 1 {
		t.Fatalf("pending players = %d, want 1", len(plan.PendingPlayers))
	}
	pending := plan.PendingPlayers[0]
	if pending.Name != "Jane Doe" || pending.TeamName != "Stingrays ReUnited" || pending.TeamID != 2 {
		t.Fatalf("unexpected pending player: %+v", pending)
	}
	if pending.Active {
		t.Fatalf("players added by import must start inactive")
	}
	if plan.Records[1].PendingKey != pending.Key || plan.Records[2].PendingKey != pending.Key {
		t.Fatalf("records must share the pending key: %+v", plan.Records[1:])
	}
	if plan.Records[1].Reason != "Violent conduct" {
		t.Fatalf("unexpected second record reason: %q", plan.Records[1].Reason)
	}

	// Skip reasons land in team-scoped histograms.
	green := plan.Stats.TeamStats["GreenAchers"]
	if green == nil {
		t.Fatalf("missing GreenAchers team stats")
	}
	if green.SkipReasons["Invalid card type (N/A)"] != 1 {
		t.Fatalf("unexpected GreenAchers skip reasons: %+v", green.SkipReasons)
	}
	if green.SkipReasons["Missing player name"] != 1 {
		t.Fatalf("unexpected GreenAchers skip reasons: %+v", green.SkipReasons)
	}
	phantom := plan.Stats.TeamStats["Phantom United"]
	if phantom == nil || phantom.SkipReasons["Unknown team: Phantom United"] != 1 {
		t.Fatalf("unexpected Phantom United stats: %+v", phantom)
	}

	if len(plan.Stats.SkipDetails) != 3 {
		t.Fatalf("skip details = %d, want 3", len(plan.Stats.SkipDetails))
	}
}

func TestBuildPlanIsDeterministic(t *testing.T) {
	planner := NewPlanner(nil, "csv_import")
	snapshot := testSnapshot()

	a := planner.BuildPlan(plannerRows(), snapshot)
	b := planner.BuildPlan(plannerRows(), snapshot)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("plans differ across identical inputs:\n%+v\n%+v", a, b)
	}
}

func TestBuildPlanLenientCardTypeWarning(t *testing.T) {
	planner := NewPlanner(NewNormalizer(nil, nil, false), "csv_import")
	rows := []Row{{
		ColPlayerName: "John Smith",
		ColTeamName:   "GreenAchers",
		ColCardType:   "ORANGE",
	}}

	plan := planner.BuildPlan(rows, testSnapshot())

	if plan.Stats.RecordsToAdd != 1 {
		t.Fatalf("lenient mode must import the row, got %+v", plan.Stats)
	}
	if plan.Records[0].Kind != card.KindYellow {
		t.Fatalf("unexpected kind: %v", plan.Records[0].Kind)
	}
	if len(plan.Warnings) != 1 || !strings.Contains(plan.Warnings[0], "ORANGE") {
		t.Fatalf("expected reclassification warning, got %v", plan.Warnings)
	}
}

func TestBuildPlanStrictCardTypeSkip(t *testing.T) {
	planner := NewPlanner(NewNormalizer(nil, nil, true), "csv_import")
	rows := []Row{{
		ColPlayerName: "John Smith",
		ColTeamName:   "GreenAchers",
		ColCardType:   "ORANGE",
	}}

	plan := planner.BuildPlan(rows, testSnapshot())

	if plan.Stats.RowsSkipped != 1 || plan.Stats.RecordsToAdd != 0 {
		t.Fatalf("strict mode must skip the row, got %+v", plan.Stats)
	}
	if plan.Stats.TeamStats["GreenAchers"].SkipReasons["Unrecognized card type (ORANGE)"] != 1 {
		t.Fatalf("unexpected skip reasons: %+v", plan.Stats.TeamStats["GreenAchers"].SkipReasons)
	}
}

func TestBuildPlanFuzzyMatchWarning(t *testing.T) {
	planner := NewPlanner(nil, "csv_import")
	rows := []Row{{
		ColPlayerName: "Alexandra Jonson",
		ColTeamName:   "Blue Jays",
		ColCardType:   "YELLOW",
	}}

	plan := planner.BuildPlan(rows, testSnapshot())

	if plan.Stats.RecordsToAdd != 1 || plan.Records[0].PlayerID != 5 {
		t.Fatalf("expected fuzzy match to player 5, got %+v", plan.Records)
	}
	if len(plan.Warnings) != 1 || !strings.Contains(plan.Warnings[0], "fuzzy matched") {
		t.Fatalf("expected fuzzy match warning, got %v", plan.Warnings)
	}
}
