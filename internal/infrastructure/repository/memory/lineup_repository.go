package memory

import (
	"context"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/lineup"
)

type LineupRepository struct {
	mu     sync.RWMutex
	byTeam map[int64][]lineup.Assignment
	nextID int64
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{byTeam: make(map[int64][]lineup.Assignment)}
}

func (r *LineupRepository) ListByTeam(_ context.Context, teamID int64) ([]lineup.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byTeam[teamID]
	out := make([]lineup.Assignment, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *LineupRepository) CountByTeam(_ context.Context, teamID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byTeam[teamID]), nil
}

func (r *LineupRepository) CreateBatch(_ context.Context, assignments []lineup.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range assignments {
		r.nextID++
		a.ID = r.nextID
		r.byTeam[a.TeamID] = append(r.byTeam[a.TeamID], a)
	}
	return nil
}

func (r *LineupRepository) DeleteByTeam(_ context.Context, teamID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byTeam, teamID)
	return nil
}
