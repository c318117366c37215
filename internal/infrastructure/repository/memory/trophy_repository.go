package memory

import (
	"context"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/trophy"
)

type TrophyRepository struct {
	mu     sync.RWMutex
	items  []trophy.Trophy
	nextID int64
}

func NewTrophyRepository() *TrophyRepository {
	return &TrophyRepository{}
}

func (r *TrophyRepository) ListBySeason(_ context.Context, simulationID int64, season int) ([]trophy.Trophy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []trophy.Trophy
	for _, t := range r.items {
		if t.SimulationID == simulationID && t.Season == season {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TrophyRepository) ExistsForSeason(_ context.Context, simulationID int64, season int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.SimulationID == simulationID && t.Season == season {
			return true, nil
		}
	}
	return false, nil
}

func (r *TrophyRepository) CreateBatch(_ context.Context, trophies []trophy.Trophy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range trophies {
		r.nextID++
		t.ID = r.nextID
		r.items = append(r.items, t)
	}
	return nil
}

func (r *TrophyRepository) DeleteBySimulation(_ context.Context, simulationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, t := range r.items {
		if t.SimulationID != simulationID {
			kept = append(kept, t)
		}
	}
	r.items = kept
	return nil
}
