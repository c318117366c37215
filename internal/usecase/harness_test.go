package usecase

import (
	"context"
	"math/rand"
	"testing"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/infrastructure/repository/memory"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// scriptedEngine lets a test control game outcomes directly.
type scriptedEngine struct {
	fn func(home, away TeamSheet, isPlayoff bool) (game.Result, error)
}

func (e scriptedEngine) SimulateGame(_ context.Context, home, away TeamSheet, isPlayoff bool) (game.Result, error) {
	return e.fn(home, away, isPlayoff)
}

// deterministicEngine produces varied but decisive results from a
// fixed seed. Roughly one game in five goes to overtime.
func deterministicEngine(seed int64) GameEngine {
	rng := rand.New(rand.NewSource(seed))
	return scriptedEngine{fn: func(home, away TeamSheet, isPlayoff bool) (game.Result, error) {
		winner := 1 + rng.Intn(5)
		loser := rng.Intn(winner)
		result := game.Result{HomeScore: winner, AwayScore: loser}
		if rng.Intn(2) == 0 {
			result.HomeScore, result.AwayScore = loser, winner
		}
		if winner-loser == 1 && rng.Intn(5) == 0 {
			result.Overtime = true
			if !isPlayoff && rng.Intn(3) == 0 {
				result.Shootout = true
			}
		}
		return result, nil
	}}
}

type fixture struct {
	simRepo       *memory.SimulationRepository
	teamRepo      *memory.TeamRepository
	playerRepo    *memory.PlayerRepository
	rosterRepo    *memory.RosterRepository
	gameRepo      *memory.GameRepository
	seriesRepo    *memory.SeriesRepository
	standingsRepo *memory.StandingsRepository
	lineupRepo    *memory.LineupRepository
	trophyRepo    *memory.TrophyRepository

	league    *LeagueService
	draft     *DraftService
	lines     *LinesService
	schedule  *ScheduleService
	standings *StandingsService
	ratings   *RatingService
	trophies  *TrophyService
	playoffs  *PlayoffService
	seasons   *SeasonService
}

func newFixture(engine GameEngine) *fixture {
	f := &fixture{
		simRepo:       memory.NewSimulationRepository(),
		teamRepo:      memory.NewTeamRepository(),
		playerRepo:    memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedCoaches()),
		rosterRepo:    memory.NewRosterRepository(),
		gameRepo:      memory.NewGameRepository(),
		seriesRepo:    memory.NewSeriesRepository(),
		standingsRepo: memory.NewStandingsRepository(),
		lineupRepo:    memory.NewLineupRepository(),
		trophyRepo:    memory.NewTrophyRepository(),
	}

	logger := logging.NewNop()

	f.standings = NewStandingsService(f.standingsRepo, f.teamRepo, logger)
	f.lines = NewLinesService(f.teamRepo, f.rosterRepo, f.playerRepo, f.lineupRepo, logger)
	f.schedule = NewScheduleService(f.simRepo, f.teamRepo, f.gameRepo, logger)
	f.ratings = NewRatingService(f.teamRepo, f.playerRepo, f.lineupRepo)
	f.trophies = NewTrophyService(f.simRepo, f.playerRepo, f.gameRepo, f.seriesRepo, f.standings, f.trophyRepo, logger)

	picker := NewAutoPicker(f.playerRepo, f.rosterRepo, f.teamRepo, logger)

	f.league = NewLeagueService(f.simRepo, f.teamRepo, f.rosterRepo, f.lineupRepo, f.gameRepo, f.seriesRepo, f.standingsRepo, f.trophyRepo, logger)
	f.draft = NewDraftService(f.simRepo, f.teamRepo, f.playerRepo, f.rosterRepo, picker, f.lines, f.schedule, f.standings, logger)
	f.playoffs = NewPlayoffService(f.simRepo, f.teamRepo, f.gameRepo, f.seriesRepo, f.standings, f.lines, engine, f.trophies, f.schedule, logger)
	f.seasons = NewSeasonService(f.simRepo, f.gameRepo, f.seriesRepo, f.standings, f.lines, engine, f.playoffs, logger)

	return f
}

// newDraftedSimulation creates a league and auto-drafts every pick, so
// the returned simulation sits at the start of season one.
func newDraftedSimulation(t *testing.T, f *fixture, numTeams, yearLength int) simulation.Simulation {
	t.Helper()

	created, err := f.league.CreateSimulation(t.Context(), CreateSimulationInput{
		Name:       "test league",
		NumTeams:   numTeams,
		YearLength: yearLength,
	})
	if err != nil {
		t.Fatalf("create simulation: %v", err)
	}

	for {
		result, err := f.draft.MakePick(t.Context(), created.Simulation.ID, MakePickInput{})
		if err != nil {
			t.Fatalf("auto draft pick: %v", err)
		}
		if result.DraftComplete {
			break
		}
	}

	sim, exists, err := f.simRepo.GetByID(t.Context(), created.Simulation.ID)
	if err != nil || !exists {
		t.Fatalf("reload simulation: exists=%t err=%v", exists, err)
	}
	if sim.Status != simulation.StatusSeason {
		t.Fatalf("status after draft = %s, want %s", sim.Status, simulation.StatusSeason)
	}
	return sim
}
