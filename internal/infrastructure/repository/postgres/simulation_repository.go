package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/simulation"
)

type SimulationRepository struct {
	db *sqlx.DB
}

func NewSimulationRepository(db *sqlx.DB) *SimulationRepository {
	return &SimulationRepository{db: db}
}

func (r *SimulationRepository) Create(ctx context.Context, sim simulation.Simulation) (simulation.Simulation, error) {
	const query = `
		INSERT INTO simulations (name, num_teams, year_length, current_season, draft_pick_cursor, status, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		sim.Name, sim.NumTeams, sim.YearLength, sim.CurrentSeason,
		sim.DraftPickCursor, sim.Status, sim.IsActive, sim.CreatedAt,
	).Scan(&id)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("insert simulation: %w", err)
	}
	sim.ID = id
	return sim, nil
}

func (r *SimulationRepository) GetByID(ctx context.Context, simulationID int64) (simulation.Simulation, bool, error) {
	const query = `SELECT * FROM simulations WHERE id = $1`

	var row simulationTableModel
	if err := r.db.GetContext(ctx, &row, query, simulationID); err != nil {
		if isNotFound(err) {
			return simulation.Simulation{}, false, nil
		}
		return simulation.Simulation{}, false, fmt.Errorf("get simulation: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SimulationRepository) List(ctx context.Context) ([]simulation.Simulation, error) {
	const query = `SELECT * FROM simulations ORDER BY id`

	var rows []simulationTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	out := make([]simulation.Simulation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SimulationRepository) UpdateStatus(ctx context.Context, simulationID int64, status string) error {
	const query = `UPDATE simulations SET status = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, simulationID, status)
	if err != nil {
		return fmt.Errorf("update simulation status: %w", err)
	}
	return requireRow(res, "simulation", simulationID)
}

// AdvanceDraftCursor is a conditional update: the WHERE clause pins
// the cursor the caller saw, so two racing pick commits cannot both
// advance.
func (r *SimulationRepository) AdvanceDraftCursor(ctx context.Context, simulationID int64, from, to int) error {
	const query = `UPDATE simulations SET draft_pick_cursor = $3 WHERE id = $1 AND draft_pick_cursor = $2`

	res, err := r.db.ExecContext(ctx, query, simulationID, from, to)
	if err != nil {
		return fmt.Errorf("advance draft cursor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("advance draft cursor rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("draft cursor moved past %d for simulation %d", from, simulationID)
	}
	return nil
}

func (r *SimulationRepository) AdvanceSeason(ctx context.Context, simulationID int64, fromSeason int, status string) error {
	const query = `
		UPDATE simulations SET current_season = current_season + 1, status = $3
		WHERE id = $1 AND current_season = $2`

	res, err := r.db.ExecContext(ctx, query, simulationID, fromSeason, status)
	if err != nil {
		return fmt.Errorf("advance season: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("advance season rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("season moved past %d for simulation %d", fromSeason, simulationID)
	}
	return nil
}

func (r *SimulationRepository) Delete(ctx context.Context, simulationID int64) error {
	const query = `DELETE FROM simulations WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, simulationID); err != nil {
		return fmt.Errorf("delete simulation: %w", err)
	}
	return nil
}
