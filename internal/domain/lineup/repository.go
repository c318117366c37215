package lineup

import "context"

// Repository persists lineup assignments.
type Repository interface {
	ListByTeam(ctx context.Context, teamID int64) ([]Assignment, error)
	CountByTeam(ctx context.Context, teamID int64) (int, error)
	CreateBatch(ctx context.Context, assignments []Assignment) error
	DeleteByTeam(ctx context.Context, teamID int64) error
}
