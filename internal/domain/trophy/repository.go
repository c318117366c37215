package trophy

import "context"

// Repository persists season awards.
type Repository interface {
	ListBySeason(ctx context.Context, simulationID int64, season int) ([]Trophy, error)
	// ExistsForSeason reports whether any trophy has been awarded for
	// the season. Awarding is all-or-nothing, so one row is enough to
	// make a retry a no-op.
	ExistsForSeason(ctx context.Context, simulationID int64, season int) (bool, error)
	CreateBatch(ctx context.Context, trophies []Trophy) error
	DeleteBySimulation(ctx context.Context, simulationID int64) error
}
