package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	const query = `SELECT * FROM players ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	const query = `SELECT * FROM players WHERE id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListCoaches(ctx context.Context) ([]player.Coach, error) {
	const query = `SELECT * FROM coaches ORDER BY id`

	var rows []coachTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	out := make([]player.Coach, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetCoachByID(ctx context.Context, coachID int64) (player.Coach, bool, error) {
	const query = `SELECT * FROM coaches WHERE id = $1`

	var row coachTableModel
	if err := r.db.GetContext(ctx, &row, query, coachID); err != nil {
		if isNotFound(err) {
			return player.Coach{}, false, nil
		}
		return player.Coach{}, false, fmt.Errorf("get coach: %w", err)
	}
	return row.toDomain(), true, nil
}
