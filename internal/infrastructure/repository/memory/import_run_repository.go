package memory

import (
	"context"
	"sync"

	"github.com/leaguedesk/cardimport/internal/domain/importrun"
)

type ImportRunRepository struct {
	mu   sync.RWMutex
	runs []importrun.Run
	byID map[string]importrun.Run
}

func NewImportRunRepository() *ImportRunRepository {
	return &ImportRunRepository{byID: make(map[string]importrun.Run)}
}

func (r *ImportRunRepository) Record(_ context.Context, run importrun.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs = append(r.runs, run)
	r.byID[run.ID] = run

	return nil
}

func (r *ImportRunRepository) GetByID(_ context.Context, id string) (importrun.Run, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.byID[id]

	return run, ok, nil
}

func (r *ImportRunRepository) List(_ context.Context, limit int) ([]importrun.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]importrun.Run, 0, limit)
	for i := len(r.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.runs[i])
	}

	return out, nil
}
