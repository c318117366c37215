package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/series"
)

type seriesTableModel struct {
	ID             int64  `db:"id"`
	SimulationID   int64  `db:"simulation_id"`
	Season         int    `db:"season"`
	Round          int    `db:"round"`
	HigherSeedID   int64  `db:"higher_seed_id"`
	LowerSeedID    int64  `db:"lower_seed_id"`
	HigherWins     int    `db:"higher_wins"`
	LowerWins      int    `db:"lower_wins"`
	Status         string `db:"status"`
	NextGameNumber int    `db:"next_game_number"`
	WinnerID       *int64 `db:"winner_id"`
}

func (m seriesTableModel) toDomain() series.Series {
	return series.Series{
		ID:             m.ID,
		SimulationID:   m.SimulationID,
		Season:         m.Season,
		Round:          m.Round,
		HigherSeedID:   m.HigherSeedID,
		LowerSeedID:    m.LowerSeedID,
		HigherWins:     m.HigherWins,
		LowerWins:      m.LowerWins,
		Status:         m.Status,
		NextGameNumber: m.NextGameNumber,
		WinnerID:       m.WinnerID,
	}
}

type SeriesRepository struct {
	db *sqlx.DB
}

func NewSeriesRepository(db *sqlx.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) Create(ctx context.Context, s series.Series) (series.Series, error) {
	const query = `
		INSERT INTO playoff_series (simulation_id, season, round, higher_seed_id, lower_seed_id, higher_wins, lower_wins, status, next_game_number, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		s.SimulationID, s.Season, s.Round, s.HigherSeedID, s.LowerSeedID,
		s.HigherWins, s.LowerWins, s.Status, s.NextGameNumber, s.WinnerID,
	).Scan(&id)
	if err != nil {
		return series.Series{}, fmt.Errorf("insert series: %w", err)
	}
	s.ID = id
	return s, nil
}

func (r *SeriesRepository) GetByID(ctx context.Context, seriesID int64) (series.Series, bool, error) {
	const query = `SELECT * FROM playoff_series WHERE id = $1`

	var row seriesTableModel
	if err := r.db.GetContext(ctx, &row, query, seriesID); err != nil {
		if isNotFound(err) {
			return series.Series{}, false, nil
		}
		return series.Series{}, false, fmt.Errorf("get series: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeriesRepository) ListBySeason(ctx context.Context, simulationID int64, season int) ([]series.Series, error) {
	const query = `SELECT * FROM playoff_series WHERE simulation_id = $1 AND season = $2 ORDER BY round, id`

	var rows []seriesTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID, season); err != nil {
		return nil, fmt.Errorf("list season series: %w", err)
	}
	return mapSeries(rows), nil
}

func (r *SeriesRepository) ListByRound(ctx context.Context, simulationID int64, season, round int) ([]series.Series, error) {
	const query = `SELECT * FROM playoff_series WHERE simulation_id = $1 AND season = $2 AND round = $3 ORDER BY id`

	var rows []seriesTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID, season, round); err != nil {
		return nil, fmt.Errorf("list round series: %w", err)
	}
	return mapSeries(rows), nil
}

func (r *SeriesRepository) Update(ctx context.Context, s series.Series) error {
	const query = `
		UPDATE playoff_series SET
			higher_wins = $2, lower_wins = $3, status = $4, next_game_number = $5, winner_id = $6
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, s.ID, s.HigherWins, s.LowerWins, s.Status, s.NextGameNumber, s.WinnerID)
	if err != nil {
		return fmt.Errorf("update series: %w", err)
	}
	return requireRow(res, "series", s.ID)
}

func mapSeries(rows []seriesTableModel) []series.Series {
	out := make([]series.Series, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func (r *SeriesRepository) DeleteBySimulation(ctx context.Context, simulationID int64) error {
	const query = `DELETE FROM playoff_series WHERE simulation_id = $1`

	if _, err := r.db.ExecContext(ctx, query, simulationID); err != nil {
		return fmt.Errorf("delete playoff series: %w", err)
	}
	return nil
}
