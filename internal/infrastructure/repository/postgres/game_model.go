package postgres

import (
	"time"

	"github.com/claudynachos/LHL/internal/domain/game"
)

type gameTableModel struct {
	ID           int64     `db:"id"`
	SimulationID int64     `db:"simulation_id"`
	Season       int       `db:"season"`
	Date         time.Time `db:"game_date"`
	HomeTeamID   int64     `db:"home_team_id"`
	AwayTeamID   int64     `db:"away_team_id"`
	HomeScore    *int      `db:"home_score"`
	AwayScore    *int      `db:"away_score"`
	IsPlayoff    bool      `db:"is_playoff"`
	PlayoffRound *int      `db:"playoff_round"`
	SeriesID     *int64    `db:"series_id"`
	Simulated    bool      `db:"simulated"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:           m.ID,
		SimulationID: m.SimulationID,
		Season:       m.Season,
		Date:         m.Date,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
		IsPlayoff:    m.IsPlayoff,
		PlayoffRound: m.PlayoffRound,
		SeriesID:     m.SeriesID,
		Simulated:    m.Simulated,
	}
}

type playerStatTableModel struct {
	ID           int64 `db:"id"`
	GameID       int64 `db:"game_id"`
	TeamID       int64 `db:"team_id"`
	PlayerID     int64 `db:"player_id"`
	Goals        int   `db:"goals"`
	Assists      int   `db:"assists"`
	Shots        int   `db:"shots"`
	Hits         int   `db:"hits"`
	Blocks       int   `db:"blocks"`
	PlusMinus    int   `db:"plus_minus"`
	TOISeconds   int   `db:"toi_seconds"`
	Takeaways    int   `db:"takeaways"`
	Giveaways    int   `db:"giveaways"`
	Saves        int   `db:"saves"`
	GoalsAgainst int   `db:"goals_against"`
	ShotsAgainst int   `db:"shots_against"`
}

func (m playerStatTableModel) toDomain() game.PlayerStat {
	return game.PlayerStat{
		ID:       m.ID,
		GameID:   m.GameID,
		TeamID:   m.TeamID,
		PlayerID: m.PlayerID,
		Line: game.PlayerLine{
			PlayerID:     m.PlayerID,
			Goals:        m.Goals,
			Assists:      m.Assists,
			Shots:        m.Shots,
			Hits:         m.Hits,
			Blocks:       m.Blocks,
			PlusMinus:    m.PlusMinus,
			TOISeconds:   m.TOISeconds,
			Takeaways:    m.Takeaways,
			Giveaways:    m.Giveaways,
			Saves:        m.Saves,
			GoalsAgainst: m.GoalsAgainst,
			ShotsAgainst: m.ShotsAgainst,
		},
	}
}
