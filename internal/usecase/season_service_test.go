package usecase

import (
	"testing"

	"github.com/claudynachos/LHL/internal/domain/simulation"
)

func TestSeasonService_SimulateNextGame(t *testing.T) {
	f := newFixture(deterministicEngine(7))
	sim := newDraftedSimulation(t, f, 4, 20)

	g, result, err := f.seasons.SimulateNextGame(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("simulate next game: %v", err)
	}
	if result.Tied() {
		t.Fatal("regular-season result is tied")
	}

	stored, ok, err := f.gameRepo.GetByID(t.Context(), g.ID)
	if err != nil || !ok {
		t.Fatalf("reload game: ok=%t err=%v", ok, err)
	}
	if !stored.Simulated {
		t.Fatal("game not marked simulated")
	}

	rows, err := f.standings.SeasonStandings(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	totalPoints := 0
	for _, row := range rows {
		totalPoints += row.Standing.Points
	}
	if totalPoints != 2 && totalPoints != 3 {
		t.Fatalf("points after one game = %d, want 2 or 3", totalPoints)
	}
}

func TestSeasonService_SimulateToPlayoffs(t *testing.T) {
	f := newFixture(deterministicEngine(7))
	sim := newDraftedSimulation(t, f, 4, 20)

	if err := f.seasons.SimulateToPlayoffs(t.Context(), sim.ID); err != nil {
		t.Fatalf("simulate to playoffs: %v", err)
	}

	remaining, err := f.gameRepo.CountUnsimulated(t.Context(), sim.ID, 1, false)
	if err != nil {
		t.Fatalf("count unsimulated: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("%d regular-season games left after SimulateToPlayoffs", remaining)
	}

	reloaded, _, err := f.simRepo.GetByID(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("reload simulation: %v", err)
	}
	if reloaded.Status != simulation.StatusPlayoffs {
		t.Fatalf("status = %s, want %s", reloaded.Status, simulation.StatusPlayoffs)
	}

	bracket, err := f.seriesRepo.ListBySeason(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("list series: %v", err)
	}
	if len(bracket) != 2 {
		t.Fatalf("opening round series = %d, want 2 for a four-team field", len(bracket))
	}

	conferenceOf := map[int64]string{}
	teams, err := f.teamRepo.ListBySimulation(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	for _, tm := range teams {
		conferenceOf[tm.ID] = tm.Conference
	}
	for _, sr := range bracket {
		if sr.Round != 1 {
			t.Fatalf("series round = %d, want 1", sr.Round)
		}
		if conferenceOf[sr.HigherSeedID] != conferenceOf[sr.LowerSeedID] {
			t.Fatal("round one pairs teams across conferences")
		}
	}

	// Re-entry returns the existing bracket.
	if err := f.seasons.SimulateToPlayoffs(t.Context(), sim.ID); err != nil {
		t.Fatalf("second SimulateToPlayoffs: %v", err)
	}
	again, err := f.seriesRepo.ListBySeason(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("list series again: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("re-entry grew the bracket to %d series", len(again))
	}
}

func TestSeasonService_SimulateRound(t *testing.T) {
	f := newFixture(deterministicEngine(7))
	sim := newDraftedSimulation(t, f, 4, 20)
	if err := f.seasons.SimulateToPlayoffs(t.Context(), sim.ID); err != nil {
		t.Fatalf("simulate to playoffs: %v", err)
	}

	steps, err := f.seasons.SimulateRound(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("simulate round: %v", err)
	}
	if len(steps) < 8 {
		t.Fatalf("round one took %d games, want at least 8 (two best-of-sevens)", len(steps))
	}
	for _, step := range steps {
		if step.Series.Round != 1 {
			t.Fatalf("round one step played a round-%d game", step.Series.Round)
		}
		if step.Result.Tied() {
			t.Fatal("playoff step produced a tie")
		}
	}

	open, err := f.seriesRepo.ListBySeason(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("list series: %v", err)
	}
	finals := 0
	for _, sr := range open {
		if sr.Round == 2 {
			finals++
		}
	}
	if finals != 1 {
		t.Fatalf("round-two series = %d, want exactly one final", finals)
	}
}

func TestSeasonService_PlayoffsToChampion(t *testing.T) {
	f := newFixture(deterministicEngine(7))
	sim := newDraftedSimulation(t, f, 4, 20)
	if err := f.seasons.SimulateToPlayoffs(t.Context(), sim.ID); err != nil {
		t.Fatalf("simulate to playoffs: %v", err)
	}

	final, err := f.seasons.SimulatePlayoffs(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("simulate playoffs: %v", err)
	}
	if final == nil || !final.SeasonComplete || final.ChampionID == nil {
		t.Fatalf("playoffs did not produce a champion: %+v", final)
	}

	bracket, err := f.seriesRepo.ListBySeason(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("list series: %v", err)
	}
	if len(bracket) != 3 {
		t.Fatalf("four-team bracket ran %d series, want 3", len(bracket))
	}
	conferenceOf := map[int64]string{}
	teams, err := f.teamRepo.ListBySimulation(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	for _, tm := range teams {
		conferenceOf[tm.ID] = tm.Conference
	}
	for _, sr := range bracket {
		if !sr.Complete() {
			t.Fatalf("series %d still open after the champion was crowned", sr.ID)
		}
		if sr.Round == 2 {
			if conferenceOf[sr.HigherSeedID] == conferenceOf[sr.LowerSeedID] {
				t.Fatal("the final should cross conferences")
			}
			if *sr.WinnerID != *final.ChampionID {
				t.Fatalf("final winner %d does not match champion %d", *sr.WinnerID, *final.ChampionID)
			}
		}
	}

	reloaded, _, err := f.simRepo.GetByID(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("reload simulation: %v", err)
	}
	if reloaded.Status != simulation.StatusSeasonEnd {
		t.Fatalf("status = %s, want %s", reloaded.Status, simulation.StatusSeasonEnd)
	}
}

func TestSeasonService_EightTeamBracket(t *testing.T) {
	f := newFixture(deterministicEngine(11))
	sim := newDraftedSimulation(t, f, 8, 20)

	if _, err := f.seasons.SimulateFullSeason(t.Context(), sim.ID); err != nil {
		t.Fatalf("simulate full season: %v", err)
	}

	bracket, err := f.seriesRepo.ListBySeason(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("list series: %v", err)
	}
	rounds := map[int]int{}
	for _, sr := range bracket {
		rounds[sr.Round]++
	}
	if rounds[1] != 4 || rounds[2] != 2 || rounds[3] != 1 {
		t.Fatalf("eight-team bracket rounds = %v, want 4/2/1", rounds)
	}
}

func TestSeasonService_SeasonRollover(t *testing.T) {
	f := newFixture(deterministicEngine(7))
	sim := newDraftedSimulation(t, f, 4, 20)

	after, err := f.seasons.SimulateFullSeason(t.Context(), sim.ID)
	if err != nil {
		t.Fatalf("simulate full season: %v", err)
	}
	if after.CurrentSeason != 2 || after.Status != simulation.StatusSeason {
		t.Fatalf("after rollover: season=%d status=%s, want 2/%s", after.CurrentSeason, after.Status, simulation.StatusSeason)
	}

	trophies, err := f.trophies.SeasonTrophies(t.Context(), sim.ID, 1)
	if err != nil {
		t.Fatalf("season trophies: %v", err)
	}
	if len(trophies) == 0 {
		t.Fatal("no trophies awarded for the finished season")
	}

	games, err := f.gameRepo.ListSeason(t.Context(), sim.ID, 2, false)
	if err != nil {
		t.Fatalf("list season two games: %v", err)
	}
	if want := 4 * GamesPerTeamTarget(4) / 2; len(games) != want {
		t.Fatalf("season two schedule = %d games, want %d", len(games), want)
	}
	if games[0].Date.Year() != 1981 {
		t.Fatalf("season two starts in %d, want 1981", games[0].Date.Year())
	}

	rows, err := f.standings.SeasonStandings(t.Context(), sim.ID, 2)
	if err != nil {
		t.Fatalf("season two standings: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("season two standings rows = %d, want 4", len(rows))
	}
	for _, row := range rows {
		if row.Standing.Points != 0 {
			t.Fatalf("season two opens with points on the board: %+v", row.Standing)
		}
	}
}

func TestSeasonService_RunsToCompletion(t *testing.T) {
	f := newFixture(deterministicEngine(7))
	sim := newDraftedSimulation(t, f, 4, 20)

	var last simulation.Simulation
	for i := 0; i < 25; i++ {
		after, err := f.seasons.SimulateFullSeason(t.Context(), sim.ID)
		if err != nil {
			t.Fatalf("season %d: %v", i+1, err)
		}
		last = after
		if after.Status == simulation.StatusCompleted {
			break
		}
	}
	if last.Status != simulation.StatusCompleted {
		t.Fatalf("simulation never completed: %+v", last)
	}
	if last.CurrentSeason != 20 {
		t.Fatalf("completed at season %d, want 20", last.CurrentSeason)
	}

	for season := 1; season <= 20; season++ {
		trophies, err := f.trophies.SeasonTrophies(t.Context(), sim.ID, season)
		if err != nil {
			t.Fatalf("trophies for season %d: %v", season, err)
		}
		if len(trophies) == 0 {
			t.Fatalf("season %d has no trophies", season)
		}
	}
}
