package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/claudynachos/LHL/internal/domain/game"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) CreateBatch(ctx context.Context, games []game.Game) ([]game.Game, error) {
	const query = `
		INSERT INTO games (simulation_id, season, game_date, home_team_id, away_team_id, is_playoff, playoff_round, series_id, simulated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
		RETURNING id`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx create games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		var id int64
		err := tx.QueryRowxContext(ctx, query,
			g.SimulationID, g.Season, g.Date, g.HomeTeamID, g.AwayTeamID,
			g.IsPlayoff, g.PlayoffRound, g.SeriesID,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert game: %w", err)
		}
		g.ID = id
		out = append(out, g)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create games: %w", err)
	}
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	const query = `SELECT * FROM games WHERE id = $1`

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, gameID); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) ListSeason(ctx context.Context, simulationID int64, season int, includePlayoffs bool) ([]game.Game, error) {
	query := `SELECT * FROM games WHERE simulation_id = $1 AND season = $2`
	if !includePlayoffs {
		query += ` AND is_playoff = FALSE`
	}
	query += ` ORDER BY game_date, id`

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID, season); err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}
	return mapGames(rows), nil
}

func (r *GameRepository) ListUnsimulated(ctx context.Context, simulationID int64, season int, playoff bool) ([]game.Game, error) {
	const query = `
		SELECT * FROM games
		WHERE simulation_id = $1 AND season = $2 AND is_playoff = $3 AND simulated = FALSE
		ORDER BY game_date, id`

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID, season, playoff); err != nil {
		return nil, fmt.Errorf("list unsimulated games: %w", err)
	}
	return mapGames(rows), nil
}

func (r *GameRepository) CountUnsimulated(ctx context.Context, simulationID int64, season int, playoff bool) (int, error) {
	const query = `
		SELECT COUNT(*) FROM games
		WHERE simulation_id = $1 AND season = $2 AND is_playoff = $3 AND simulated = FALSE`

	var count int
	if err := r.db.GetContext(ctx, &count, query, simulationID, season, playoff); err != nil {
		return 0, fmt.Errorf("count unsimulated games: %w", err)
	}
	return count, nil
}

func (r *GameRepository) ListBySeries(ctx context.Context, seriesID int64) ([]game.Game, error) {
	const query = `SELECT * FROM games WHERE series_id = $1 ORDER BY game_date, id`

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, seriesID); err != nil {
		return nil, fmt.Errorf("list series games: %w", err)
	}
	return mapGames(rows), nil
}

// ApplyResult writes the score, flips the simulated flag and inserts
// every stat line in one transaction. The conditional UPDATE makes a
// repeat application fail instead of double counting.
func (r *GameRepository) ApplyResult(ctx context.Context, gameID int64, result game.Result) error {
	const updateQuery = `
		UPDATE games SET home_score = $2, away_score = $3, simulated = TRUE
		WHERE id = $1 AND simulated = FALSE
		RETURNING home_team_id, away_team_id`
	const statQuery = `
		INSERT INTO player_stats (game_id, team_id, player_id, goals, assists, shots, hits, blocks, plus_minus, toi_seconds, takeaways, giveaways, saves, goals_against, shots_against)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply result: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var homeTeamID, awayTeamID int64
	err = tx.QueryRowxContext(ctx, updateQuery, gameID, result.HomeScore, result.AwayScore).
		Scan(&homeTeamID, &awayTeamID)
	if err != nil {
		if isNotFound(err) {
			return game.ErrAlreadySimulated
		}
		return fmt.Errorf("apply game result: %w", err)
	}

	insert := func(teamID int64, lines []game.PlayerLine) error {
		for _, line := range lines {
			_, err := tx.ExecContext(ctx, statQuery,
				gameID, teamID, line.PlayerID, line.Goals, line.Assists, line.Shots,
				line.Hits, line.Blocks, line.PlusMinus, line.TOISeconds,
				line.Takeaways, line.Giveaways, line.Saves, line.GoalsAgainst, line.ShotsAgainst,
			)
			if err != nil {
				return fmt.Errorf("insert player stat: %w", err)
			}
		}
		return nil
	}
	if err := insert(homeTeamID, result.HomeStats); err != nil {
		return err
	}
	if err := insert(awayTeamID, result.AwayStats); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply result: %w", err)
	}
	return nil
}

func (r *GameRepository) ListStatsBySeason(ctx context.Context, simulationID int64, season int, playoff bool) ([]game.PlayerStat, error) {
	const query = `
		SELECT ps.* FROM player_stats ps
		JOIN games g ON g.id = ps.game_id
		WHERE g.simulation_id = $1 AND g.season = $2 AND g.is_playoff = $3
		ORDER BY ps.id`

	var rows []playerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, simulationID, season, playoff); err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	out := make([]game.PlayerStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func mapGames(rows []gameTableModel) []game.Game {
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

// DeleteBySimulation removes the simulation's games. Box score rows go
// with them through the player_stats FK cascade.
func (r *GameRepository) DeleteBySimulation(ctx context.Context, simulationID int64) error {
	const query = `DELETE FROM games WHERE simulation_id = $1`

	if _, err := r.db.ExecContext(ctx, query, simulationID); err != nil {
		return fmt.Errorf("delete games: %w", err)
	}
	return nil
}
