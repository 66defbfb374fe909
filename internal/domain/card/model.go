package card

import (
	"fmt"
	"time"
)

// Kind is the controlled vocabulary for disciplinary cards.
type Kind string

const (
	KindYellow Kind = "yellow"
	KindRed    Kind = "red"
)

func (k Kind) Valid() bool {
	return k == KindYellow || k == KindRed
}

// Notes carries the free-form context preserved alongside an imported card.
// It is persisted as a JSON blob on the record.
type Notes struct {
	Season   string `json:"season,omitempty"`
	Division string `json:"division,omitempty"`
	Comments string `json:"comments,omitempty"`
	Official string `json:"official,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Record is one disciplinary card held against a player.
type Record struct {
	ID           int64
	PlayerID     int64
	Kind         Kind
	Reason       string
	IncidentDate *int64
	Notes        Notes
	CreatedAt    time.Time
}

func (r Record) Validate() error {
	if r.PlayerID <= 0 {
		return fmt.Errorf("card player id is required")
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("invalid card kind: %s", r.Kind)
	}
	return nil
}
