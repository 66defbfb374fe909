package importrun

import "context"

// Repository describes run-audit persistence needs from use cases.
type Repository interface {
	Record(ctx context.Context, run Run) error
	GetByID(ctx context.Context, id string) (Run, bool, error)
	List(ctx context.Context, limit int) ([]Run, error)
}
