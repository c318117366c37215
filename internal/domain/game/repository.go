package game

import (
	"context"
	"errors"
)

// ErrAlreadySimulated is returned by ApplyResult when the game has a
// result applied already. Results apply exactly once.
var ErrAlreadySimulated = errors.New("game already simulated")

// Repository persists games and their box scores.
type Repository interface {
	CreateBatch(ctx context.Context, games []Game) ([]Game, error)
	GetByID(ctx context.Context, gameID int64) (Game, bool, error)
	// ListSeason returns all games for a season, playoff games
	// included when includePlayoffs is true.
	ListSeason(ctx context.Context, simulationID int64, season int, includePlayoffs bool) ([]Game, error)
	ListUnsimulated(ctx context.Context, simulationID int64, season int, playoff bool) ([]Game, error)
	CountUnsimulated(ctx context.Context, simulationID int64, season int, playoff bool) (int, error)
	ListBySeries(ctx context.Context, seriesID int64) ([]Game, error)
	// ApplyResult writes the score, per-player stats and the
	// simulated flag in one shot. Fails with ErrAlreadySimulated on a
	// second application.
	ApplyResult(ctx context.Context, gameID int64, result Result) error
	ListStatsBySeason(ctx context.Context, simulationID int64, season int, playoff bool) ([]PlayerStat, error)
	DeleteBySimulation(ctx context.Context, simulationID int64) error
}
