package memory

import (
	"testing"

	"github.com/claudynachos/LHL/internal/domain/simulation"
)

func TestSimulationRepository_AdvanceDraftCursor_StaleCursor(t *testing.T) {
	repo := NewSimulationRepository()
	sim, err := repo.Create(t.Context(), simulation.Simulation{Name: "test", NumTeams: 4, YearLength: 20, CurrentSeason: 1, Status: simulation.StatusDrafting})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.AdvanceDraftCursor(t.Context(), sim.ID, 0, 1); err != nil {
		t.Fatalf("advance 0 -> 1: %v", err)
	}
	if err := repo.AdvanceDraftCursor(t.Context(), sim.ID, 0, 1); err == nil {
		t.Fatal("expected stale cursor error")
	}

	got, ok, err := repo.GetByID(t.Context(), sim.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%t err=%v", ok, err)
	}
	if got.DraftPickCursor != 1 {
		t.Fatalf("cursor = %d, want 1", got.DraftPickCursor)
	}
}

func TestSimulationRepository_AdvanceSeason(t *testing.T) {
	repo := NewSimulationRepository()
	sim, err := repo.Create(t.Context(), simulation.Simulation{Name: "test", NumTeams: 4, YearLength: 20, CurrentSeason: 1, Status: simulation.StatusSeasonEnd})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.AdvanceSeason(t.Context(), sim.ID, 1, simulation.StatusSeason); err != nil {
		t.Fatalf("advance season: %v", err)
	}
	if err := repo.AdvanceSeason(t.Context(), sim.ID, 1, simulation.StatusSeason); err == nil {
		t.Fatal("expected stale season error")
	}

	got, _, err := repo.GetByID(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentSeason != 2 || got.Status != simulation.StatusSeason {
		t.Fatalf("after advance: season=%d status=%s", got.CurrentSeason, got.Status)
	}
}

func TestSeedCatalogsAreDeterministic(t *testing.T) {
	a, b := SeedPlayers(), SeedPlayers()
	if len(a) != 300 {
		t.Fatalf("player catalog size = %d, want 300", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("player %d differs between seedings: %+v vs %+v", i, a[i], b[i])
		}
	}

	coaches := SeedCoaches()
	if len(coaches) != 16 {
		t.Fatalf("coach catalog size = %d, want 16", len(coaches))
	}

	byPosition := make(map[string]int)
	for _, p := range a {
		byPosition[p.Position]++
	}
	want := map[string]int{"C": 60, "LW": 60, "RW": 60, "LD": 45, "RD": 45, "G": 30}
	for position, count := range want {
		if byPosition[position] != count {
			t.Fatalf("%s count = %d, want %d", position, byPosition[position], count)
		}
	}
}
