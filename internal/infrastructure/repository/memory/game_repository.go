package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/game"
)

type GameRepository struct {
	mu         sync.RWMutex
	items      map[int64]game.Game
	stats      map[int64][]game.PlayerStat
	orders     []int64
	nextID     int64
	nextStatID int64
}

func NewGameRepository() *GameRepository {
	return &GameRepository{
		items: make(map[int64]game.Game),
		stats: make(map[int64][]game.PlayerStat),
	}
}

func (r *GameRepository) CreateBatch(_ context.Context, games []game.Game) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		r.nextID++
		g.ID = r.nextID
		r.items[g.ID] = g
		r.orders = append(r.orders, g.ID)
		out = append(out, g)
	}
	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gameID]
	return g, ok, nil
}

func (r *GameRepository) ListSeason(_ context.Context, simulationID int64, season int, includePlayoffs bool) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.Game
	for _, id := range r.orders {
		g, ok := r.items[id]
		if !ok || g.SimulationID != simulationID || g.Season != season {
			continue
		}
		if g.IsPlayoff && !includePlayoffs {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *GameRepository) ListUnsimulated(_ context.Context, simulationID int64, season int, playoff bool) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.Game
	for _, id := range r.orders {
		g, ok := r.items[id]
		if ok && g.SimulationID == simulationID && g.Season == season && g.IsPlayoff == playoff && !g.Simulated {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *GameRepository) CountUnsimulated(_ context.Context, simulationID int64, season int, playoff bool) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, g := range r.items {
		if g.SimulationID == simulationID && g.Season == season && g.IsPlayoff == playoff && !g.Simulated {
			count++
		}
	}
	return count, nil
}

func (r *GameRepository) ListBySeries(_ context.Context, seriesID int64) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.Game
	for _, id := range r.orders {
		g, ok := r.items[id]
		if ok && g.SeriesID != nil && *g.SeriesID == seriesID {
			out = append(out, g)
		}
	}
	return out, nil
}

// ApplyResult writes the score, both stat lines and the simulated flag
// in one locked step. Exactly-once: a second application fails.
func (r *GameRepository) ApplyResult(_ context.Context, gameID int64, result game.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[gameID]
	if !ok {
		return fmt.Errorf("game %d not found", gameID)
	}
	if g.Simulated {
		return game.ErrAlreadySimulated
	}

	home, away := result.HomeScore, result.AwayScore
	g.HomeScore = &home
	g.AwayScore = &away
	g.Simulated = true
	r.items[gameID] = g

	appendStats := func(teamID int64, lines []game.PlayerLine) {
		for _, line := range lines {
			r.nextStatID++
			r.stats[gameID] = append(r.stats[gameID], game.PlayerStat{
				ID:       r.nextStatID,
				GameID:   gameID,
				TeamID:   teamID,
				PlayerID: line.PlayerID,
				Line:     line,
			})
		}
	}
	appendStats(g.HomeTeamID, result.HomeStats)
	appendStats(g.AwayTeamID, result.AwayStats)
	return nil
}

func (r *GameRepository) ListStatsBySeason(_ context.Context, simulationID int64, season int, playoff bool) ([]game.PlayerStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.PlayerStat
	for _, id := range r.orders {
		g, ok := r.items[id]
		if !ok || g.SimulationID != simulationID || g.Season != season || g.IsPlayoff != playoff {
			continue
		}
		out = append(out, r.stats[id]...)
	}
	return out, nil
}

func (r *GameRepository) DeleteBySimulation(_ context.Context, simulationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, id := range r.orders {
		if g, ok := r.items[id]; ok && g.SimulationID == simulationID {
			delete(r.items, id)
			delete(r.stats, id)
			continue
		}
		kept = append(kept, id)
	}
	r.orders = kept
	return nil
}
