package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/series"
)

type SeriesRepository struct {
	mu     sync.RWMutex
	items  map[int64]series.Series
	orders []int64
	nextID int64
}

func NewSeriesRepository() *SeriesRepository {
	return &SeriesRepository{items: make(map[int64]series.Series)}
}

func (r *SeriesRepository) Create(_ context.Context, s series.Series) (series.Series, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	s.ID = r.nextID
	r.items[s.ID] = s
	r.orders = append(r.orders, s.ID)
	return s, nil
}

func (r *SeriesRepository) GetByID(_ context.Context, seriesID int64) (series.Series, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seriesID]
	return s, ok, nil
}

func (r *SeriesRepository) ListBySeason(_ context.Context, simulationID int64, season int) ([]series.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []series.Series
	for _, id := range r.orders {
		s, ok := r.items[id]
		if ok && s.SimulationID == simulationID && s.Season == season {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SeriesRepository) ListByRound(_ context.Context, simulationID int64, season, round int) ([]series.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []series.Series
	for _, id := range r.orders {
		s, ok := r.items[id]
		if ok && s.SimulationID == simulationID && s.Season == season && s.Round == round {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SeriesRepository) Update(_ context.Context, s series.Series) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[s.ID]; !ok {
		return fmt.Errorf("series %d not found", s.ID)
	}
	r.items[s.ID] = s
	return nil
}

func (r *SeriesRepository) DeleteBySimulation(_ context.Context, simulationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, id := range r.orders {
		if s, ok := r.items[id]; ok && s.SimulationID == simulationID {
			delete(r.items, id)
			continue
		}
		kept = append(kept, id)
	}
	r.orders = kept
	return nil
}
