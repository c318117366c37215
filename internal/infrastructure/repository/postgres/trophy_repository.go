package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/trophy"
)

type trophyTableModel struct {
	ID           int64  `db:"id"`
	SimulationID int64  `db:"simulation_id"`
	Season       int    `db:"season"`
	Name         string `db:"name"`
	Kind         string `db:"kind"`
	TeamID       *int64 `db:"team_id"`
	PlayerID     *int64 `db:"player_id"`
}

func (m trophyTableModel) toDomain() trophy.Trophy {
	return trophy.Trophy{
		ID:           m.ID,
		SimulationID: m.SimulationID,
		Season:       m.Season,
		Name:         m.Name,
		Kind:         m.Kind,
		TeamID:       m.TeamID,
		PlayerID:     m.PlayerID,
	}
}

type TrophyRepository struct {
	db *sqlx.DB
}

func NewTrophyRepository(db *sqlx.DB) *TrophyRepository {
	return &TrophyRepository{db: db}
}

func (r *TrophyRepository) ListBySeason(ctx context.Context, simulationID int64, season int) ([]trophy.Trophy, error) {
	const query = `SELECT * FROM trophies WHERE simulation_id = $1 AND season = $2 ORDER BY id`

	var rows []trophyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID, season); err != nil {
		return nil, fmt.Errorf("list trophies: %w", err)
	}
	out := make([]trophy.Trophy, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TrophyRepository) ExistsForSeason(ctx context.Context, simulationID int64, season int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM trophies WHERE simulation_id = $1 AND season = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, simulationID, season); err != nil {
		return false, fmt.Errorf("check trophies: %w", err)
	}
	return exists, nil
}

func (r *TrophyRepository) CreateBatch(ctx context.Context, trophies []trophy.Trophy) error {
	const query = `
		INSERT INTO trophies (simulation_id, season, name, kind, team_id, player_id)
		VALUES ($1, $2, $3, $4, $5, $6)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create trophies: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range trophies {
		if _, err := tx.ExecContext(ctx, query, t.SimulationID, t.Season, t.Name, t.Kind, t.TeamID, t.PlayerID); err != nil {
			return fmt.Errorf("insert trophy %s: %w", t.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create trophies: %w", err)
	}
	return nil
}

func (r *TrophyRepository) DeleteBySimulation(ctx context.Context, simulationID int64) error {
	const query = `DELETE FROM trophies WHERE simulation_id = $1`

	if _, err := r.db.ExecContext(ctx, query, simulationID); err != nil {
		return fmt.Errorf("delete trophies: %w", err)
	}
	return nil
}
