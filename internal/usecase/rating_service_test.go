package usecase

import (
	"testing"

	"github.com/claudynachos/LHL/internal/domain/lineup"
	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/infrastructure/repository/memory"
)

func TestRatingService_TeamOverall_SingleLine(t *testing.T) {
	// Three identical 80-rated forwards with baseline leadership rate
	// exactly 80 regardless of the attribute weighting.
	players := []player.Player{
		{ID: 1, Position: player.PositionCenter, Off: 80, Def: 80, Phys: 80, Lead: 75, Const: 80},
		{ID: 2, Position: player.PositionLeftWing, Off: 80, Def: 80, Phys: 80, Lead: 75, Const: 80},
		{ID: 3, Position: player.PositionRightWing, Off: 80, Def: 80, Phys: 80, Lead: 75, Const: 80},
	}
	playerRepo := memory.NewPlayerRepository(players, nil)
	teamRepo := memory.NewTeamRepository()
	lineupRepo := memory.NewLineupRepository()

	teams, err := teamRepo.CreateBatch(t.Context(), []team.Team{{SimulationID: 1, Name: "MTL", Conference: team.ConferenceEast}})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	teamID := teams[0].ID

	err = lineupRepo.CreateBatch(t.Context(), []lineup.Assignment{
		{TeamID: teamID, PlayerID: 1, LineType: lineup.LineTypeForward, LineNumber: 1, Position: player.PositionCenter},
		{TeamID: teamID, PlayerID: 2, LineType: lineup.LineTypeForward, LineNumber: 1, Position: player.PositionLeftWing},
		{TeamID: teamID, PlayerID: 3, LineType: lineup.LineTypeForward, LineNumber: 1, Position: player.PositionRightWing},
	})
	if err != nil {
		t.Fatalf("create lineup: %v", err)
	}

	service := NewRatingService(teamRepo, playerRepo, lineupRepo)
	rating, err := service.TeamOverall(t.Context(), teamID)
	if err != nil {
		t.Fatalf("team overall: %v", err)
	}
	if rating == nil {
		t.Fatal("expected a rating for a team with a lineup")
	}
	if *rating != 80.0 {
		t.Fatalf("rating = %.2f, want 80.0", *rating)
	}
}

func TestRatingService_TeamOverall_NoLineup(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(nil, nil)
	teamRepo := memory.NewTeamRepository()

	teams, err := teamRepo.CreateBatch(t.Context(), []team.Team{{SimulationID: 1, Name: "MTL", Conference: team.ConferenceEast}})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	service := NewRatingService(teamRepo, playerRepo, memory.NewLineupRepository())
	rating, err := service.TeamOverall(t.Context(), teams[0].ID)
	if err != nil {
		t.Fatalf("team overall: %v", err)
	}
	if rating != nil {
		t.Fatalf("rating = %v, want nil for a team without a lineup", *rating)
	}
}

func TestRatingService_CoachModifier(t *testing.T) {
	f := newFixture(deterministicEngine(1))
	sim := newDraftedSimulation(t, f, 4, 20)

	teams, err := f.teamRepo.ListBySimulation(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	for _, tm := range teams {
		rating, err := f.ratings.TeamOverall(t.Context(), tm.ID)
		if err != nil {
			t.Fatalf("team overall for %s: %v", tm.Name, err)
		}
		if rating == nil {
			t.Fatalf("team %s has no rating after the draft", tm.Name)
		}
		if *rating < 40 || *rating > 110 {
			t.Fatalf("team %s rating %.1f outside the plausible band", tm.Name, *rating)
		}
	}
}
