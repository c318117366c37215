package team

import "context"

// Repository exposes team reads and the small set of mutations the
// progression engine needs.
type Repository interface {
	ListBySimulation(ctx context.Context, simulationID int64) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	CreateBatch(ctx context.Context, teams []Team) ([]Team, error)
	// AssignCoach links a coach to a team, first-write-wins: it fails
	// when the team already has a coach or when the coach is already
	// held by any team in the same simulation. Both checks happen
	// under the repository's write lock / transaction.
	AssignCoach(ctx context.Context, teamID, coachID int64) error
	SetPlayStyle(ctx context.Context, teamID int64, playStyle string) error
	SetUserControlled(ctx context.Context, teamID int64) error
	DeleteBySimulation(ctx context.Context, simulationID int64) error
}
