package roster

import (
	"context"
	"errors"
)

// ErrDuplicatePlayer is returned by Create when the player already has
// an assignment in the same simulation. Implementations must detect
// this atomically at write time, not by a prior read.
var ErrDuplicatePlayer = errors.New("player already assigned in this simulation")

// Repository persists roster assignments.
type Repository interface {
	// Create enforces the at-most-one-assignment-per-(simulation,
	// player) invariant and fails with ErrDuplicatePlayer on
	// violation.
	Create(ctx context.Context, assignment Assignment) (Assignment, error)
	DeleteByID(ctx context.Context, assignmentID int64) error
	ListByTeam(ctx context.Context, teamID int64) ([]Assignment, error)
	ListBySimulation(ctx context.Context, simulationID int64) ([]Assignment, error)
	CountByTeam(ctx context.Context, teamID int64) (int, error)
	DeleteBySimulation(ctx context.Context, simulationID int64) error
}
