package memory

import (
	"context"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/player"
)

// PlayerRepository serves the immutable player and coach catalogs.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]player.Player
	coaches map[int64]player.Coach
	orders  []int64
	corders []int64
}

func NewPlayerRepository(players []player.Player, coaches []player.Coach) *PlayerRepository {
	r := &PlayerRepository{
		players: make(map[int64]player.Player, len(players)),
		coaches: make(map[int64]player.Coach, len(coaches)),
	}
	for _, p := range players {
		r.players[p.ID] = p
		r.orders = append(r.orders, p.ID)
	}
	for _, c := range coaches {
		r.coaches[c.ID] = c
		r.corders = append(r.corders, c.ID)
	}
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.players[id])
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) ListCoaches(_ context.Context) ([]player.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Coach, 0, len(r.corders))
	for _, id := range r.corders {
		out = append(out, r.coaches[id])
	}
	return out, nil
}

func (r *PlayerRepository) GetCoachByID(_ context.Context, coachID int64) (player.Coach, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.coaches[coachID]
	return c, ok, nil
}
