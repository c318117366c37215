package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/simulation"
)

type SimulationRepository struct {
	mu     sync.RWMutex
	items  map[int64]simulation.Simulation
	orders []int64
	nextID int64
}

func NewSimulationRepository() *SimulationRepository {
	return &SimulationRepository{items: make(map[int64]simulation.Simulation)}
}

func (r *SimulationRepository) Create(_ context.Context, sim simulation.Simulation) (simulation.Simulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sim.ID = r.nextID
	r.items[sim.ID] = sim
	r.orders = append(r.orders, sim.ID)
	return sim, nil
}

func (r *SimulationRepository) GetByID(_ context.Context, simulationID int64) (simulation.Simulation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sim, ok := r.items[simulationID]
	return sim, ok, nil
}

func (r *SimulationRepository) List(_ context.Context) ([]simulation.Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]simulation.Simulation, 0, len(r.orders))
	for _, id := range r.orders {
		if sim, ok := r.items[id]; ok {
			out = append(out, sim)
		}
	}
	return out, nil
}

func (r *SimulationRepository) UpdateStatus(_ context.Context, simulationID int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sim, ok := r.items[simulationID]
	if !ok {
		return fmt.Errorf("simulation %d not found", simulationID)
	}
	sim.Status = status
	r.items[simulationID] = sim
	return nil
}

func (r *SimulationRepository) AdvanceDraftCursor(_ context.Context, simulationID int64, from, to int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sim, ok := r.items[simulationID]
	if !ok {
		return fmt.Errorf("simulation %d not found", simulationID)
	}
	if sim.DraftPickCursor != from {
		return fmt.Errorf("draft cursor moved: have %d, expected %d", sim.DraftPickCursor, from)
	}
	sim.DraftPickCursor = to
	r.items[simulationID] = sim
	return nil
}

func (r *SimulationRepository) AdvanceSeason(_ context.Context, simulationID int64, fromSeason int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sim, ok := r.items[simulationID]
	if !ok {
		return fmt.Errorf("simulation %d not found", simulationID)
	}
	if sim.CurrentSeason != fromSeason {
		return fmt.Errorf("season moved: have %d, expected %d", sim.CurrentSeason, fromSeason)
	}
	sim.CurrentSeason++
	sim.Status = status
	r.items[simulationID] = sim
	return nil
}

func (r *SimulationRepository) Delete(_ context.Context, simulationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, simulationID)
	for i, id := range r.orders {
		if id == simulationID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
