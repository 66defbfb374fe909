package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type playerTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	TeamID    int64          `db:"team_id"`
	TeamName  sql.NullString `db:"team_name"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
