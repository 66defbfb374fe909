package importrun

import (
	"fmt"
	"time"
)

const (
	ActionImport  = "import"
	ActionPreview = "preview_sql"
)

// Run is the audit record of one executed import, dry or committed.
type Run struct {
	ID              string
	Action          string
	DryRun          bool
	RowsProcessed   int
	RecordsImported int
	RecordsSkipped  int
	PlayersAdded    int
	Report          []byte
	CreatedAt       time.Time
}

func (r Run) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("run id is required")
	}
	if r.Action != ActionImport && r.Action != ActionPreview {
		return fmt.Errorf("invalid run action: %s", r.Action)
	}
	return nil
}
