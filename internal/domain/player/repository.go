package player

import "context"

// Repository reads the shared player and coach catalogs.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListCoaches(ctx context.Context) ([]Coach, error)
	GetCoachByID(ctx context.Context, coachID int64) (Coach, bool, error)
}
