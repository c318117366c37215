package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/roster"
)

type rosterKey struct {
	simulationID int64
	playerID     int64
}

type RosterRepository struct {
	mu     sync.RWMutex
	items  map[int64]roster.Assignment
	taken  map[rosterKey]bool
	orders []int64
	nextID int64
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		items: make(map[int64]roster.Assignment),
		taken: make(map[rosterKey]bool),
	}
}

// Create checks and claims the (simulation, player) slot under one
// lock acquisition, which is what makes concurrent duplicate picks
// lose cleanly.
func (r *RosterRepository) Create(_ context.Context, assignment roster.Assignment) (roster.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rosterKey{simulationID: assignment.SimulationID, playerID: assignment.PlayerID}
	if r.taken[key] {
		return roster.Assignment{}, roster.ErrDuplicatePlayer
	}

	r.nextID++
	assignment.ID = r.nextID
	r.items[assignment.ID] = assignment
	r.taken[key] = true
	r.orders = append(r.orders, assignment.ID)
	return assignment, nil
}

func (r *RosterRepository) DeleteByID(_ context.Context, assignmentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[assignmentID]
	if !ok {
		return fmt.Errorf("roster assignment %d not found", assignmentID)
	}
	delete(r.items, assignmentID)
	delete(r.taken, rosterKey{simulationID: a.SimulationID, playerID: a.PlayerID})
	for i, id := range r.orders {
		if id == assignmentID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID int64) ([]roster.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.Assignment
	for _, id := range r.orders {
		a, ok := r.items[id]
		if ok && a.TeamID == teamID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *RosterRepository) ListBySimulation(_ context.Context, simulationID int64) ([]roster.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.Assignment
	for _, id := range r.orders {
		a, ok := r.items[id]
		if ok && a.SimulationID == simulationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *RosterRepository) CountByTeam(_ context.Context, teamID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, a := range r.items {
		if a.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (r *RosterRepository) DeleteBySimulation(_ context.Context, simulationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, id := range r.orders {
		if a, ok := r.items[id]; ok && a.SimulationID == simulationID {
			delete(r.items, id)
			delete(r.taken, rosterKey{simulationID: a.SimulationID, playerID: a.PlayerID})
			continue
		}
		kept = append(kept, id)
	}
	r.orders = kept
	return nil
}
