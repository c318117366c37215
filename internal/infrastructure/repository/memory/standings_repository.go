package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/standings"
)

type standingKey struct {
	simulationID int64
	season       int
	teamID       int64
}

type StandingsRepository struct {
	mu     sync.RWMutex
	items  map[standingKey]standings.Standing
	nextID int64
}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{items: make(map[standingKey]standings.Standing)}
}

func (r *StandingsRepository) InitTeam(_ context.Context, simulationID int64, season int, teamID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := standingKey{simulationID: simulationID, season: season, teamID: teamID}
	if _, ok := r.items[key]; ok {
		return nil
	}
	r.nextID++
	r.items[key] = standings.Standing{
		ID:           r.nextID,
		SimulationID: simulationID,
		Season:       season,
		TeamID:       teamID,
	}
	return nil
}

func (r *StandingsRepository) Get(_ context.Context, simulationID int64, season int, teamID int64) (standings.Standing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[standingKey{simulationID: simulationID, season: season, teamID: teamID}]
	return s, ok, nil
}

func (r *StandingsRepository) ListBySeason(_ context.Context, simulationID int64, season int) ([]standings.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []standings.Standing
	for key, s := range r.items {
		if key.simulationID == simulationID && key.season == season {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if standings.Better(out[i], out[j]) {
			return true
		}
		if standings.Better(out[j], out[i]) {
			return false
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

func (r *StandingsRepository) Apply(_ context.Context, simulationID int64, season int, teamID int64, delta standings.Delta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := standingKey{simulationID: simulationID, season: season, teamID: teamID}
	s, ok := r.items[key]
	if !ok {
		return fmt.Errorf("standings row for team %d season %d not found", teamID, season)
	}
	s.Wins += delta.Wins
	s.Losses += delta.Losses
	s.OTLosses += delta.OTLosses
	s.Points += delta.Points
	s.GoalsFor += delta.GoalsFor
	s.GoalsAgainst += delta.GoalsAgainst
	r.items[key] = s
	return nil
}

func (r *StandingsRepository) DeleteBySimulation(_ context.Context, simulationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.items {
		if key.simulationID == simulationID {
			delete(r.items, key)
		}
	}
	return nil
}
