package simulation

import "context"

// Repository describes simulation persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, sim Simulation) (Simulation, error)
	GetByID(ctx context.Context, simulationID int64) (Simulation, bool, error)
	List(ctx context.Context) ([]Simulation, error)
	UpdateStatus(ctx context.Context, simulationID int64, status string) error
	// AdvanceDraftCursor moves the cursor from exactly `from` to `to`.
	// It fails when the stored cursor no longer equals `from`, which
	// closes the race between two concurrent pick commits.
	AdvanceDraftCursor(ctx context.Context, simulationID int64, from, to int) error
	// AdvanceSeason bumps CurrentSeason from exactly `fromSeason` and
	// sets the given status. A mismatch means another caller already
	// rolled the season over.
	AdvanceSeason(ctx context.Context, simulationID int64, fromSeason int, status string) error
	Delete(ctx context.Context, simulationID int64) error
}
