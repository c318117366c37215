package usecase

import (
	"sync"
	"testing"

	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/domain/team"
)

func TestGamesPerTeamTarget(t *testing.T) {
	targets := map[int]int{4: 24, 6: 40, 8: 56, 10: 72, 12: 82}
	for numTeams, want := range targets {
		if got := GamesPerTeamTarget(numTeams); got != want {
			t.Errorf("target for %d teams = %d, want %d", numTeams, got, want)
		}
	}
}

func TestBuildFixtures_ExactPerTeamCounts(t *testing.T) {
	for numTeams, target := range map[int]int{4: 24, 6: 40, 8: 56, 10: 72, 12: 82} {
		teams := make([]team.Team, 0, numTeams)
		for i := 0; i < numTeams; i++ {
			conference := team.ConferenceEast
			if i >= numTeams/2 {
				conference = team.ConferenceWest
			}
			teams = append(teams, team.Team{ID: int64(i + 1), Conference: conference})
		}

		fixtures := buildFixtures(teams, target)
		counts := make(map[int64]int, numTeams)
		for _, f := range fixtures {
			if f.home == f.away {
				t.Fatalf("%d teams: fixture pairs a team with itself", numTeams)
			}
			counts[f.home]++
			counts[f.away]++
		}
		for _, tm := range teams {
			if counts[tm.ID] != target {
				t.Fatalf("%d teams: team %d plays %d games, want %d", numTeams, tm.ID, counts[tm.ID], target)
			}
		}
		if want := numTeams * target / 2; len(fixtures) != want {
			t.Fatalf("%d teams: total fixtures = %d, want %d", numTeams, len(fixtures), want)
		}
	}
}

func TestBuildFixtures_ConferenceWeighting(t *testing.T) {
	// The 82-game schedule does not divide evenly across 11 opponents;
	// the remainder goes to conference rivals.
	teams := make([]team.Team, 0, 12)
	for i := 0; i < 12; i++ {
		conference := team.ConferenceEast
		if i >= 6 {
			conference = team.ConferenceWest
		}
		teams = append(teams, team.Team{ID: int64(i + 1), Conference: conference})
	}
	conferenceOf := make(map[int64]string, len(teams))
	for _, tm := range teams {
		conferenceOf[tm.ID] = tm.Conference
	}

	type pair struct{ a, b int64 }
	meetings := make(map[pair]int)
	for _, f := range buildFixtures(teams, 82) {
		home, away := f.home, f.away
		if home > away {
			home, away = away, home
		}
		meetings[pair{home, away}]++
	}

	minIntra, maxInter := 1<<30, 0
	for p, n := range meetings {
		if conferenceOf[p.a] == conferenceOf[p.b] {
			if n < minIntra {
				minIntra = n
			}
		} else if n > maxInter {
			maxInter = n
		}
	}
	if minIntra <= maxInter {
		t.Fatalf("intra-conference pairs meet %d times, inter-conference pairs %d; conference rivals should meet more often", minIntra, maxInter)
	}
}

func TestScheduleService_GenerateSeasonSchedule(t *testing.T) {
	f := newFixture(deterministicEngine(1))
	sim := newDraftedSimulation(t, f, 6, 20)

	// The draft already generated season one; a second call must not
	// add games.
	count, err := f.schedule.GenerateSeasonSchedule(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	games, err := f.gameRepo.ListSeason(t.Context(), sim.ID, 1, false)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if want := 6 * GamesPerTeamTarget(6) / 2; count != want || len(games) != want {
		t.Fatalf("games after regenerate = %d (reported %d), want %d", len(games), count, want)
	}

	for i := 1; i < len(games); i++ {
		if games[i].Date.Before(games[i-1].Date) {
			t.Fatalf("game dates not ascending at index %d", i)
		}
	}
	if games[0].Date.Year() != 1980 {
		t.Fatalf("season one starts in %d, want 1980", games[0].Date.Year())
	}
}

func TestScheduleService_ConcurrentGeneration(t *testing.T) {
	f := newFixture(deterministicEngine(1))
	created, err := f.league.CreateSimulation(t.Context(), CreateSimulationInput{NumTeams: 4, YearLength: 20})
	if err != nil {
		t.Fatalf("create simulation: %v", err)
	}
	simID := created.Simulation.ID
	if err := f.simRepo.UpdateStatus(t.Context(), simID, simulation.StatusSeason); err != nil {
		t.Fatalf("set status: %v", err)
	}

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.schedule.GenerateSeasonSchedule(t.Context(), simID, 1); err != nil {
				t.Errorf("concurrent generate: %v", err)
			}
		}()
	}
	wg.Wait()

	games, err := f.gameRepo.ListSeason(t.Context(), simID, 1, false)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if want := 4 * GamesPerTeamTarget(4) / 2; len(games) != want {
		t.Fatalf("games after %d concurrent calls = %d, want %d", callers, len(games), want)
	}
}
