package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/player"
)

// SeedCatalog loads the shared player and coach catalogs into an
// empty database. A database that already has players is left alone.
func SeedCatalog(ctx context.Context, db *sqlx.DB, players []player.Player, coaches []player.Coach) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM players`); err != nil {
		return fmt.Errorf("count players: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx seed catalog: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const playerQuery = `
		INSERT INTO players (id, name, position, off, def, phys, lead, const, is_goalie)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, p := range players {
		if _, err := tx.ExecContext(ctx, playerQuery,
			p.ID, p.Name, p.Position, p.Off, p.Def, p.Phys, p.Lead, p.Const, p.IsGoalie); err != nil {
			return fmt.Errorf("seed player %d: %w", p.ID, err)
		}
	}

	const coachQuery = `INSERT INTO coaches (id, name, rating, coach_type) VALUES ($1, $2, $3, $4)`
	for _, c := range coaches {
		if _, err := tx.ExecContext(ctx, coachQuery, c.ID, c.Name, c.Rating, c.CoachType); err != nil {
			return fmt.Errorf("seed coach %d: %w", c.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('players', 'id'), (SELECT MAX(id) FROM players))`); err != nil {
		return fmt.Errorf("bump players sequence: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('coaches', 'id'), (SELECT MAX(id) FROM coaches))`); err != nil {
		return fmt.Errorf("bump coaches sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed catalog: %w", err)
	}
	return nil
}
