package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/standings"
)

type standingTableModel struct {
	ID           int64 `db:"id"`
	SimulationID int64 `db:"simulation_id"`
	Season       int   `db:"season"`
	TeamID       int64 `db:"team_id"`
	Wins         int   `db:"wins"`
	Losses       int   `db:"losses"`
	OTLosses     int   `db:"ot_losses"`
	Points       int   `db:"points"`
	GoalsFor     int   `db:"goals_for"`
	GoalsAgainst int   `db:"goals_against"`
}

func (m standingTableModel) toDomain() standings.Standing {
	return standings.Standing{
		ID:           m.ID,
		SimulationID: m.SimulationID,
		Season:       m.Season,
		TeamID:       m.TeamID,
		Wins:         m.Wins,
		Losses:       m.Losses,
		OTLosses:     m.OTLosses,
		Points:       m.Points,
		GoalsFor:     m.GoalsFor,
		GoalsAgainst: m.GoalsAgainst,
	}
}

type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) InitTeam(ctx context.Context, simulationID int64, season int, teamID int64) error {
	const query = `
		INSERT INTO standings (simulation_id, season, team_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (simulation_id, season, team_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, simulationID, season, teamID); err != nil {
		return fmt.Errorf("init standings row: %w", err)
	}
	return nil
}

func (r *StandingsRepository) Get(ctx context.Context, simulationID int64, season int, teamID int64) (standings.Standing, bool, error) {
	const query = `SELECT * FROM standings WHERE simulation_id = $1 AND season = $2 AND team_id = $3`

	var row standingTableModel
	if err := r.db.GetContext(ctx, &row, query, simulationID, season, teamID); err != nil {
		if isNotFound(err) {
			return standings.Standing{}, false, nil
		}
		return standings.Standing{}, false, fmt.Errorf("get standings row: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *StandingsRepository) ListBySeason(ctx context.Context, simulationID int64, season int) ([]standings.Standing, error) {
	const query = `
		SELECT * FROM standings
		WHERE simulation_id = $1 AND season = $2
		ORDER BY points DESC, wins DESC, goals_for DESC, team_id`

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID, season); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	out := make([]standings.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingsRepository) Apply(ctx context.Context, simulationID int64, season int, teamID int64, delta standings.Delta) error {
	const query = `
		UPDATE standings SET
			wins = wins + $4,
			losses = losses + $5,
			ot_losses = ot_losses + $6,
			points = points + $7,
			goals_for = goals_for + $8,
			goals_against = goals_against + $9
		WHERE simulation_id = $1 AND season = $2 AND team_id = $3`

	res, err := r.db.ExecContext(ctx, query, simulationID, season, teamID,
		delta.Wins, delta.Losses, delta.OTLosses, delta.Points, delta.GoalsFor, delta.GoalsAgainst)
	if err != nil {
		return fmt.Errorf("apply standings delta: %w", err)
	}
	return requireRow(res, "standings row for team", teamID)
}

func (r *StandingsRepository) DeleteBySimulation(ctx context.Context, simulationID int64) error {
	const query = `DELETE FROM standings WHERE simulation_id = $1`

	if _, err := r.db.ExecContext(ctx, query, simulationID); err != nil {
		return fmt.Errorf("delete standings: %w", err)
	}
	return nil
}
