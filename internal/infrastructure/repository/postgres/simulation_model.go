package postgres

import (
	"time"

	"github.com/claudynachos/LHL/internal/domain/simulation"
)

type simulationTableModel struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	NumTeams        int       `db:"num_teams"`
	YearLength      int       `db:"year_length"`
	CurrentSeason   int       `db:"current_season"`
	DraftPickCursor int       `db:"draft_pick_cursor"`
	Status          string    `db:"status"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
}

func (m simulationTableModel) toDomain() simulation.Simulation {
	return simulation.Simulation{
		ID:              m.ID,
		Name:            m.Name,
		NumTeams:        m.NumTeams,
		YearLength:      m.YearLength,
		CurrentSeason:   m.CurrentSeason,
		DraftPickCursor: m.DraftPickCursor,
		Status:          m.Status,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
	}
}
