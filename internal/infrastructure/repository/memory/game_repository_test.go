package memory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/claudynachos/LHL/internal/domain/game"
)

func TestGameRepository_ApplyResult_ExactlyOnce(t *testing.T) {
	repo := NewGameRepository()
	created, err := repo.CreateBatch(t.Context(), []game.Game{
		{SimulationID: 1, Season: 1, Date: time.Date(1980, 10, 1, 0, 0, 0, 0, time.UTC), HomeTeamID: 1, AwayTeamID: 2},
	})
	if err != nil {
		t.Fatalf("create games: %v", err)
	}
	gameID := created[0].ID

	result := game.Result{
		HomeScore: 4,
		AwayScore: 2,
		HomeStats: []game.PlayerLine{{PlayerID: 11, Goals: 2}},
		AwayStats: []game.PlayerLine{{PlayerID: 21, Goals: 1}},
	}
	if err := repo.ApplyResult(t.Context(), gameID, result); err != nil {
		t.Fatalf("apply result: %v", err)
	}
	if err := repo.ApplyResult(t.Context(), gameID, result); !errors.Is(err, game.ErrAlreadySimulated) {
		t.Fatalf("second apply returned %v, want ErrAlreadySimulated", err)
	}

	got, ok, err := repo.GetByID(t.Context(), gameID)
	if err != nil || !ok {
		t.Fatalf("get game: ok=%t err=%v", ok, err)
	}
	if !got.Simulated || got.HomeScore == nil || *got.HomeScore != 4 || got.AwayScore == nil || *got.AwayScore != 2 {
		t.Fatalf("game after apply = %+v", got)
	}

	stats, err := repo.ListStatsBySeason(t.Context(), 1, 1, false)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stat rows = %d, want 2", len(stats))
	}
}

func TestGameRepository_ApplyResult_ConcurrentSingleWriter(t *testing.T) {
	repo := NewGameRepository()
	created, err := repo.CreateBatch(t.Context(), []game.Game{
		{SimulationID: 1, Season: 1, HomeTeamID: 1, AwayTeamID: 2},
	})
	if err != nil {
		t.Fatalf("create games: %v", err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.ApplyResult(t.Context(), created[0].ID, game.Result{HomeScore: 3, AwayScore: 1})
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, err := range errs {
		if err == nil {
			applied++
		}
	}
	if applied != 1 {
		t.Fatalf("result applied %d times, want exactly once", applied)
	}
}

func TestGameRepository_SeasonFilters(t *testing.T) {
	repo := NewGameRepository()
	round := 1
	_, err := repo.CreateBatch(t.Context(), []game.Game{
		{SimulationID: 1, Season: 1, HomeTeamID: 1, AwayTeamID: 2},
		{SimulationID: 1, Season: 1, HomeTeamID: 2, AwayTeamID: 1},
		{SimulationID: 1, Season: 1, HomeTeamID: 1, AwayTeamID: 2, IsPlayoff: true, PlayoffRound: &round},
		{SimulationID: 1, Season: 2, HomeTeamID: 1, AwayTeamID: 2},
		{SimulationID: 2, Season: 1, HomeTeamID: 3, AwayTeamID: 4},
	})
	if err != nil {
		t.Fatalf("create games: %v", err)
	}

	regular, err := repo.ListSeason(t.Context(), 1, 1, false)
	if err != nil {
		t.Fatalf("list season: %v", err)
	}
	if len(regular) != 2 {
		t.Fatalf("regular games = %d, want 2", len(regular))
	}

	all, err := repo.ListSeason(t.Context(), 1, 1, true)
	if err != nil {
		t.Fatalf("list season with playoffs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all games = %d, want 3", len(all))
	}

	count, err := repo.CountUnsimulated(t.Context(), 1, 1, true)
	if err != nil {
		t.Fatalf("count unsimulated: %v", err)
	}
	if count != 1 {
		t.Fatalf("unsimulated playoff games = %d, want 1", count)
	}
}
