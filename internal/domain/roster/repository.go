package roster

import "context"

// Repository describes roster reads needed to build a run snapshot.
type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
	ListPlayers(ctx context.Context) ([]Player, error)
}
