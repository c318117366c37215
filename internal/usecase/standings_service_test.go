package usecase

import (
	"errors"
	"testing"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/team"
)

func TestStandingsService_ApplyResult_PointsRules(t *testing.T) {
	f := newFixture(deterministicEngine(1))
	created, err := f.league.CreateSimulation(t.Context(), CreateSimulationInput{NumTeams: 4, YearLength: 20})
	if err != nil {
		t.Fatalf("create simulation: %v", err)
	}
	simID := created.Simulation.ID
	if err := f.standings.InitializeStandings(t.Context(), simID, 1); err != nil {
		t.Fatalf("initialize standings: %v", err)
	}
	home, away := created.Teams[0], created.Teams[1]

	fixture := game.Game{SimulationID: simID, Season: 1, HomeTeamID: home.ID, AwayTeamID: away.ID}

	// Regulation home win: 2 points vs 0.
	if err := f.standings.ApplyResult(t.Context(), fixture, game.Result{HomeScore: 4, AwayScore: 1}); err != nil {
		t.Fatalf("apply regulation win: %v", err)
	}
	// Overtime away win: 2 points vs 1.
	if err := f.standings.ApplyResult(t.Context(), fixture, game.Result{HomeScore: 2, AwayScore: 3, Overtime: true}); err != nil {
		t.Fatalf("apply overtime loss: %v", err)
	}
	// Shootout home win: loser still gets the single point.
	if err := f.standings.ApplyResult(t.Context(), fixture, game.Result{HomeScore: 2, AwayScore: 1, Overtime: true, Shootout: true}); err != nil {
		t.Fatalf("apply shootout win: %v", err)
	}

	homeRow, ok, err := f.standingsRepo.Get(t.Context(), simID, 1, home.ID)
	if err != nil || !ok {
		t.Fatalf("home standings: ok=%t err=%v", ok, err)
	}
	awayRow, ok, err := f.standingsRepo.Get(t.Context(), simID, 1, away.ID)
	if err != nil || !ok {
		t.Fatalf("away standings: ok=%t err=%v", ok, err)
	}

	if homeRow.Wins != 2 || homeRow.Losses != 0 || homeRow.OTLosses != 1 || homeRow.Points != 5 {
		t.Fatalf("home row = %+v, want 2-0-1 for 5 points", homeRow)
	}
	if homeRow.GoalsFor != 8 || homeRow.GoalsAgainst != 5 {
		t.Fatalf("home goals = %d/%d, want 8/5", homeRow.GoalsFor, homeRow.GoalsAgainst)
	}
	if awayRow.Wins != 1 || awayRow.Losses != 1 || awayRow.OTLosses != 1 || awayRow.Points != 3 {
		t.Fatalf("away row = %+v, want 1-1-1 for 3 points", awayRow)
	}
}

func TestStandingsService_ApplyResult_RejectsTies(t *testing.T) {
	f := newFixture(deterministicEngine(1))
	created, err := f.league.CreateSimulation(t.Context(), CreateSimulationInput{NumTeams: 4, YearLength: 20})
	if err != nil {
		t.Fatalf("create simulation: %v", err)
	}
	fixture := game.Game{SimulationID: created.Simulation.ID, Season: 1, HomeTeamID: created.Teams[0].ID, AwayTeamID: created.Teams[1].ID}

	err = f.standings.ApplyResult(t.Context(), fixture, game.Result{HomeScore: 2, AwayScore: 2})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("tied result returned %v, want ErrInvalidInput", err)
	}
}

func TestStandingsService_ApplyResult_IgnoresPlayoffGames(t *testing.T) {
	f := newFixture(deterministicEngine(1))
	created, err := f.league.CreateSimulation(t.Context(), CreateSimulationInput{NumTeams: 4, YearLength: 20})
	if err != nil {
		t.Fatalf("create simulation: %v", err)
	}
	simID := created.Simulation.ID
	if err := f.standings.InitializeStandings(t.Context(), simID, 1); err != nil {
		t.Fatalf("initialize standings: %v", err)
	}

	fixture := game.Game{SimulationID: simID, Season: 1, HomeTeamID: created.Teams[0].ID, AwayTeamID: created.Teams[1].ID, IsPlayoff: true}
	if err := f.standings.ApplyResult(t.Context(), fixture, game.Result{HomeScore: 5, AwayScore: 0}); err != nil {
		t.Fatalf("apply playoff result: %v", err)
	}

	row, ok, err := f.standingsRepo.Get(t.Context(), simID, 1, created.Teams[0].ID)
	if err != nil || !ok {
		t.Fatalf("standings row: ok=%t err=%v", ok, err)
	}
	if row.Points != 0 || row.Wins != 0 || row.GoalsFor != 0 {
		t.Fatalf("playoff game leaked into standings: %+v", row)
	}
}

func TestStandingsService_ConferenceStandings(t *testing.T) {
	f := newFixture(deterministicEngine(1))
	sim := newDraftedSimulation(t, f, 8, 20)

	east, west, err := f.standings.ConferenceStandings(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("conference standings: %v", err)
	}
	if len(east) != 4 || len(west) != 4 {
		t.Fatalf("conference split = %d/%d, want 4/4", len(east), len(west))
	}
	for _, ts := range east {
		if ts.Team.Conference != team.ConferenceEast {
			t.Fatalf("team %s listed in the wrong conference", ts.Team.Name)
		}
	}
}
