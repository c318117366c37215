package postgres

import "github.com/claudynachos/LHL/internal/domain/player"

type playerTableModel struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Off      int    `db:"off"`
	Def      int    `db:"def"`
	Phys     int    `db:"phys"`
	Lead     int    `db:"lead"`
	Const    int    `db:"const"`
	IsGoalie bool   `db:"is_goalie"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.ID,
		Name:     m.Name,
		Position: m.Position,
		Off:      m.Off,
		Def:      m.Def,
		Phys:     m.Phys,
		Lead:     m.Lead,
		Const:    m.Const,
		IsGoalie: m.IsGoalie,
	}
}

type coachTableModel struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Rating    int    `db:"rating"`
	CoachType string `db:"coach_type"`
}

func (m coachTableModel) toDomain() player.Coach {
	return player.Coach{
		ID:        m.ID,
		Name:      m.Name,
		Rating:    m.Rating,
		CoachType: m.CoachType,
	}
}
