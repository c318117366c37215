package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[int64]team.Team
	orders []int64
	nextID int64
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[int64]team.Team)}
}

func (r *TeamRepository) ListBySimulation(_ context.Context, simulationID int64) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []team.Team
	for _, id := range r.orders {
		t, ok := r.items[id]
		if ok && t.SimulationID == simulationID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[teamID]
	return t, ok, nil
}

func (r *TeamRepository) CreateBatch(_ context.Context, teams []team.Team) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		r.nextID++
		t.ID = r.nextID
		r.items[t.ID] = t
		r.orders = append(r.orders, t.ID)
		out = append(out, t)
	}
	return out, nil
}

// AssignCoach enforces first-write-wins under the repository lock: the
// team must be coachless and no team in the same simulation may hold
// the coach already.
func (r *TeamRepository) AssignCoach(_ context.Context, teamID, coachID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return fmt.Errorf("team %d not found", teamID)
	}
	if t.CoachID != nil {
		return fmt.Errorf("team %d already has a coach", teamID)
	}
	for _, other := range r.items {
		if other.SimulationID == t.SimulationID && other.CoachID != nil && *other.CoachID == coachID {
			return fmt.Errorf("coach %d already taken in simulation %d", coachID, t.SimulationID)
		}
	}
	t.CoachID = &coachID
	r.items[teamID] = t
	return nil
}

func (r *TeamRepository) SetPlayStyle(_ context.Context, teamID int64, playStyle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return fmt.Errorf("team %d not found", teamID)
	}
	t.PlayStyle = playStyle
	r.items[teamID] = t
	return nil
}

func (r *TeamRepository) SetUserControlled(_ context.Context, teamID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return fmt.Errorf("team %d not found", teamID)
	}
	t.UserControlled = true
	r.items[teamID] = t
	return nil
}

func (r *TeamRepository) DeleteBySimulation(_ context.Context, simulationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, id := range r.orders {
		if t, ok := r.items[id]; ok && t.SimulationID == simulationID {
			delete(r.items, id)
			continue
		}
		kept = append(kept, id)
	}
	r.orders = kept
	return nil
}
