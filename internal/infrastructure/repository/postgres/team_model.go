package postgres

import "github.com/claudynachos/LHL/internal/domain/team"

type teamTableModel struct {
	ID             int64  `db:"id"`
	SimulationID   int64  `db:"simulation_id"`
	Name           string `db:"name"`
	City           string `db:"city"`
	Conference     string `db:"conference"`
	UserControlled bool   `db:"user_controlled"`
	CoachID        *int64 `db:"coach_id"`
	PlayStyle      string `db:"play_style"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:             m.ID,
		SimulationID:   m.SimulationID,
		Name:           m.Name,
		City:           m.City,
		Conference:     m.Conference,
		UserControlled: m.UserControlled,
		CoachID:        m.CoachID,
		PlayStyle:      m.PlayStyle,
	}
}
