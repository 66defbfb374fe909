package memory

import (
	"github.com/leaguedesk/cardimport/internal/domain/roster"
)

const (
	TeamIDGreenAchers = int64(1)
	TeamIDStingrays   = int64(2)
	TeamIDBlueJays    = int64(3)
)

func SeedTeams() []roster.Team {
	return []roster.Team{
		{ID: TeamIDGreenAchers, Name: "GreenAchers"},
		{ID: TeamIDStingrays, Name: "Stingrays ReUnited"},
		{ID: TeamIDBlueJays, Name: "Blue Jays"},
	}
}

func SeedPlayers() []roster.Player {
	return []roster.Player{
		{ID: 1, Name: "John Smith", TeamID: TeamIDGreenAchers, TeamName: "GreenAchers", Active: true},
		{ID: 2, Name: "Maria Garcia", TeamID: TeamIDGreenAchers, TeamName: "GreenAchers", Active: true},
		{ID: 3, Name: "Pat O'Brien", TeamID: TeamIDStingrays, TeamName: "Stingrays ReUnited", Active: true},
		{ID: 4, Name: "John Smith", TeamID: TeamIDBlueJays, TeamName: "Blue Jays", Active: true},
		{ID: 5, Name: "Alexandra Johnson", TeamID: TeamIDBlueJays, TeamName: "Blue Jays", Active: false},
	}
}
