package standings

import "context"

// Delta is the per-team increment one completed game contributes.
type Delta struct {
	Wins         int
	Losses       int
	OTLosses     int
	Points       int
	GoalsFor     int
	GoalsAgainst int
}

// Repository persists standings rows.
type Repository interface {
	// InitTeam creates a zeroed row unless one exists already.
	InitTeam(ctx context.Context, simulationID int64, season int, teamID int64) error
	Get(ctx context.Context, simulationID int64, season int, teamID int64) (Standing, bool, error)
	// ListBySeason returns rows ordered by points, wins, goals for
	// descending.
	ListBySeason(ctx context.Context, simulationID int64, season int) ([]Standing, error)
	Apply(ctx context.Context, simulationID int64, season int, teamID int64, delta Delta) error
	DeleteBySimulation(ctx context.Context, simulationID int64) error
}
