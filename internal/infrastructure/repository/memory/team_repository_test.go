package memory

import (
	"sync"
	"testing"

	"github.com/claudynachos/LHL/internal/domain/team"
)

func TestTeamRepository_AssignCoach_FirstWriteWins(t *testing.T) {
	repo := NewTeamRepository()
	teams, err := repo.CreateBatch(t.Context(), []team.Team{
		{SimulationID: 1, Name: "MTL", City: "Montreal", Conference: team.ConferenceEast},
		{SimulationID: 1, Name: "BOS", City: "Boston", Conference: team.ConferenceEast},
	})
	if err != nil {
		t.Fatalf("create teams: %v", err)
	}

	if err := repo.AssignCoach(t.Context(), teams[0].ID, 7); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if err := repo.AssignCoach(t.Context(), teams[0].ID, 8); err == nil {
		t.Fatal("expected error: team already has a coach")
	}
	if err := repo.AssignCoach(t.Context(), teams[1].ID, 7); err == nil {
		t.Fatal("expected error: coach already held in simulation")
	}

	got, ok, err := repo.GetByID(t.Context(), teams[0].ID)
	if err != nil || !ok {
		t.Fatalf("get team: ok=%t err=%v", ok, err)
	}
	if got.CoachID == nil || *got.CoachID != 7 {
		t.Fatalf("coach id = %v, want 7", got.CoachID)
	}
}

func TestTeamRepository_AssignCoach_CoachSharedAcrossSimulations(t *testing.T) {
	repo := NewTeamRepository()
	teams, err := repo.CreateBatch(t.Context(), []team.Team{
		{SimulationID: 1, Name: "MTL", Conference: team.ConferenceEast},
		{SimulationID: 2, Name: "MTL", Conference: team.ConferenceEast},
	})
	if err != nil {
		t.Fatalf("create teams: %v", err)
	}

	if err := repo.AssignCoach(t.Context(), teams[0].ID, 7); err != nil {
		t.Fatalf("assign in simulation 1: %v", err)
	}
	if err := repo.AssignCoach(t.Context(), teams[1].ID, 7); err != nil {
		t.Fatalf("assign same coach in simulation 2: %v", err)
	}
}

func TestTeamRepository_AssignCoach_ConcurrentSingleWinner(t *testing.T) {
	repo := NewTeamRepository()
	created, err := repo.CreateBatch(t.Context(), []team.Team{
		{SimulationID: 1, Name: "MTL", Conference: team.ConferenceEast},
		{SimulationID: 1, Name: "BOS", Conference: team.ConferenceEast},
		{SimulationID: 1, Name: "DET", Conference: team.ConferenceWest},
		{SimulationID: 1, Name: "CHI", Conference: team.ConferenceWest},
	})
	if err != nil {
		t.Fatalf("create teams: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(created))
	for i, tm := range created {
		wg.Add(1)
		go func(i int, teamID int64) {
			defer wg.Done()
			errs[i] = repo.AssignCoach(t.Context(), teamID, 42)
		}(i, tm.ID)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("coach 42 assigned %d times, want exactly once", winners)
	}
}
