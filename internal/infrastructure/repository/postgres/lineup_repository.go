package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/lineup"
)

type lineupTableModel struct {
	ID         int64  `db:"id"`
	TeamID     int64  `db:"team_id"`
	PlayerID   int64  `db:"player_id"`
	LineType   string `db:"line_type"`
	LineNumber int    `db:"line_number"`
	Position   string `db:"position"`
}

func (m lineupTableModel) toDomain() lineup.Assignment {
	return lineup.Assignment{
		ID:         m.ID,
		TeamID:     m.TeamID,
		PlayerID:   m.PlayerID,
		LineType:   m.LineType,
		LineNumber: m.LineNumber,
		Position:   m.Position,
	}
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) ListByTeam(ctx context.Context, teamID int64) ([]lineup.Assignment, error) {
	const query = `SELECT * FROM lineup_assignments WHERE team_id = $1 ORDER BY line_type, line_number, position`

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("list lineup: %w", err)
	}
	out := make([]lineup.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LineupRepository) CountByTeam(ctx context.Context, teamID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM lineup_assignments WHERE team_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, teamID); err != nil {
		return 0, fmt.Errorf("count lineup: %w", err)
	}
	return count, nil
}

func (r *LineupRepository) CreateBatch(ctx context.Context, assignments []lineup.Assignment) error {
	const query = `
		INSERT INTO lineup_assignments (team_id, player_id, line_type, line_number, position)
		VALUES ($1, $2, $3, $4, $5)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create lineup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, query, a.TeamID, a.PlayerID, a.LineType, a.LineNumber, a.Position); err != nil {
			return fmt.Errorf("insert lineup assignment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create lineup: %w", err)
	}
	return nil
}

func (r *LineupRepository) DeleteByTeam(ctx context.Context, teamID int64) error {
	const query = `DELETE FROM lineup_assignments WHERE team_id = $1`

	if _, err := r.db.ExecContext(ctx, query, teamID); err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	return nil
}
