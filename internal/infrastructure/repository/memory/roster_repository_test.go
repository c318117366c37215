package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/claudynachos/LHL/internal/domain/roster"
)

func TestRosterRepository_Create_DuplicatePlayer(t *testing.T) {
	repo := NewRosterRepository()

	first, err := repo.Create(t.Context(), roster.Assignment{SimulationID: 1, TeamID: 1, PlayerID: 50, SeasonAcquired: 1})
	if err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("assignment id not set")
	}

	_, err = repo.Create(t.Context(), roster.Assignment{SimulationID: 1, TeamID: 2, PlayerID: 50, SeasonAcquired: 1})
	if !errors.Is(err, roster.ErrDuplicatePlayer) {
		t.Fatalf("duplicate in same simulation returned %v, want ErrDuplicatePlayer", err)
	}

	if _, err := repo.Create(t.Context(), roster.Assignment{SimulationID: 2, TeamID: 3, PlayerID: 50, SeasonAcquired: 1}); err != nil {
		t.Fatalf("same player in another simulation: %v", err)
	}
}

func TestRosterRepository_Create_ConcurrentSingleWinner(t *testing.T) {
	repo := NewRosterRepository()

	const contenders = 10
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(t.Context(), roster.Assignment{SimulationID: 1, TeamID: int64(i + 1), PlayerID: 99, SeasonAcquired: 1})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("player 99 assigned %d times, want exactly once", winners)
	}
}

func TestRosterRepository_DeleteReleasesSlot(t *testing.T) {
	repo := NewRosterRepository()

	created, err := repo.Create(t.Context(), roster.Assignment{SimulationID: 1, TeamID: 1, PlayerID: 5, SeasonAcquired: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteByID(t.Context(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Create(t.Context(), roster.Assignment{SimulationID: 1, TeamID: 2, PlayerID: 5, SeasonAcquired: 1}); err != nil {
		t.Fatalf("re-create after delete: %v", err)
	}
}
