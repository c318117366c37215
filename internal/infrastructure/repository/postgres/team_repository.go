package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListBySimulation(ctx context.Context, simulationID int64) ([]team.Team, error) {
	const query = `SELECT * FROM teams WHERE simulation_id = $1 ORDER BY id`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	const query = `SELECT * FROM teams WHERE id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) CreateBatch(ctx context.Context, teams []team.Team) ([]team.Team, error) {
	const query = `
		INSERT INTO teams (simulation_id, name, city, conference, user_controlled, coach_id, play_style)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	out := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		var id int64
		err := r.db.QueryRowxContext(ctx, query,
			t.SimulationID, t.Name, t.City, t.Conference, t.UserControlled, t.CoachID, t.PlayStyle,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert team %s: %w", t.Name, err)
		}
		t.ID = id
		out = append(out, t)
	}
	return out, nil
}

// AssignCoach relies on two guards in one statement: the row update is
// conditional on coach_id being empty, and the partial unique index on
// (simulation_id, coach_id) rejects a coach already held elsewhere.
func (r *TeamRepository) AssignCoach(ctx context.Context, teamID, coachID int64) error {
	const query = `UPDATE teams SET coach_id = $2 WHERE id = $1 AND coach_id IS NULL`

	res, err := r.db.ExecContext(ctx, query, teamID, coachID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("coach %d already taken", coachID)
		}
		return fmt.Errorf("assign coach: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign coach rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("team %d already has a coach", teamID)
	}
	return nil
}

func (r *TeamRepository) SetPlayStyle(ctx context.Context, teamID int64, playStyle string) error {
	const query = `UPDATE teams SET play_style = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, teamID, playStyle)
	if err != nil {
		return fmt.Errorf("set play style: %w", err)
	}
	return requireRow(res, "team", teamID)
}

func (r *TeamRepository) SetUserControlled(ctx context.Context, teamID int64) error {
	const query = `UPDATE teams SET user_controlled = TRUE WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, teamID)
	if err != nil {
		return fmt.Errorf("set user controlled: %w", err)
	}
	return requireRow(res, "team", teamID)
}

func (r *TeamRepository) DeleteBySimulation(ctx context.Context, simulationID int64) error {
	const query = `DELETE FROM teams WHERE simulation_id = $1`

	if _, err := r.db.ExecContext(ctx, query, simulationID); err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}
	return nil
}
