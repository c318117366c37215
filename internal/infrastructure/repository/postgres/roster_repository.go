package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/roster"
)

type rosterTableModel struct {
	ID             int64 `db:"id"`
	SimulationID   int64 `db:"simulation_id"`
	TeamID         int64 `db:"team_id"`
	PlayerID       int64 `db:"player_id"`
	SeasonAcquired int   `db:"season_acquired"`
}

func (m rosterTableModel) toDomain() roster.Assignment {
	return roster.Assignment{
		ID:             m.ID,
		SimulationID:   m.SimulationID,
		TeamID:         m.TeamID,
		PlayerID:       m.PlayerID,
		SeasonAcquired: m.SeasonAcquired,
	}
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Create leans on the unique index over (simulation_id, player_id):
// the second of two racing picks for the same player fails with
// roster.ErrDuplicatePlayer.
func (r *RosterRepository) Create(ctx context.Context, assignment roster.Assignment) (roster.Assignment, error) {
	const query = `
		INSERT INTO roster_assignments (simulation_id, team_id, player_id, season_acquired)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		assignment.SimulationID, assignment.TeamID, assignment.PlayerID, assignment.SeasonAcquired,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return roster.Assignment{}, roster.ErrDuplicatePlayer
		}
		return roster.Assignment{}, fmt.Errorf("insert roster assignment: %w", err)
	}
	assignment.ID = id
	return assignment, nil
}

func (r *RosterRepository) DeleteByID(ctx context.Context, assignmentID int64) error {
	const query = `DELETE FROM roster_assignments WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, assignmentID)
	if err != nil {
		return fmt.Errorf("delete roster assignment: %w", err)
	}
	return requireRow(res, "roster assignment", assignmentID)
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID int64) ([]roster.Assignment, error) {
	const query = `SELECT * FROM roster_assignments WHERE team_id = $1 ORDER BY id`

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("list roster by team: %w", err)
	}
	out := make([]roster.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) ListBySimulation(ctx context.Context, simulationID int64) ([]roster.Assignment, error) {
	const query = `SELECT * FROM roster_assignments WHERE simulation_id = $1 ORDER BY id`

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID); err != nil {
		return nil, fmt.Errorf("list roster by simulation: %w", err)
	}
	out := make([]roster.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) CountByTeam(ctx context.Context, teamID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM roster_assignments WHERE team_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, teamID); err != nil {
		return 0, fmt.Errorf("count roster by team: %w", err)
	}
	return count, nil
}

func (r *RosterRepository) DeleteBySimulation(ctx context.Context, simulationID int64) error {
	const query = `DELETE FROM roster_assignments WHERE simulation_id = $1`

	if _, err := r.db.ExecContext(ctx, query, simulationID); err != nil {
		return fmt.Errorf("delete roster assignments: %w", err)
	}
	return nil
}
