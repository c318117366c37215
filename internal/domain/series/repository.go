package series

import "context"

// Repository persists playoff series.
type Repository interface {
	Create(ctx context.Context, s Series) (Series, error)
	GetByID(ctx context.Context, seriesID int64) (Series, bool, error)
	ListBySeason(ctx context.Context, simulationID int64, season int) ([]Series, error)
	ListByRound(ctx context.Context, simulationID int64, season, round int) ([]Series, error)
	Update(ctx context.Context, s Series) error
	DeleteBySimulation(ctx context.Context, simulationID int64) error
}
