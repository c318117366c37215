package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/platform/logging"
	"github.com/claudynachos/LHL/internal/platform/resilience"
)

// gamesPerTeam fixes the regular-season length by league size; 82 is
// the full-size schedule, smaller leagues scale down.
var gamesPerTeam = map[int]int{
	4:  24,
	6:  40,
	8:  56,
	10: 72,
	12: 82,
}

const defaultGamesPerTeam = 82

// seasonStartYear anchors season one in October of this year.
const seasonStartYear = 1980

// GamesPerTeamTarget returns the exact per-team schedule length for a
// league size.
func GamesPerTeamTarget(numTeams int) int {
	if target, ok := gamesPerTeam[numTeams]; ok {
		return target
	}
	return defaultGamesPerTeam
}

// ScheduleService builds regular-season fixture lists with exact
// per-team game counts and a conference-weighted opponent mix.
type ScheduleService struct {
	simRepo  simulation.Repository
	teamRepo team.Repository
	gameRepo game.Repository
	flight   resilience.SingleFlight[int]
	logger   *logging.Logger
}

func NewScheduleService(simRepo simulation.Repository, teamRepo team.Repository, gameRepo game.Repository, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
		simRepo:  simRepo,
		teamRepo: teamRepo,
		gameRepo: gameRepo,
		logger:   logger,
	}
}

// GenerateSeasonSchedule creates the season's fixtures and returns how
// many games exist for the season afterwards. Idempotent: an existing
// schedule is left untouched, and concurrent calls for the same
// season collapse into one generation.
func (s *ScheduleService) GenerateSeasonSchedule(ctx context.Context, simulationID int64, season int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GenerateSeasonSchedule")
	defer span.End()

	key := fmt.Sprintf("schedule:%d:%d", simulationID, season)
	count, err, _ := s.flight.Do(key, func() (int, error) {
		return s.generateOnce(ctx, simulationID, season)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *ScheduleService) generateOnce(ctx context.Context, simulationID int64, season int) (int, error) {
	existing, err := s.gameRepo.ListSeason(ctx, simulationID, season, false)
	if err != nil {
		return 0, fmt.Errorf("list season games: %w", err)
	}
	if len(existing) > 0 {
		return len(existing), nil
	}

	sim, exists, err := s.simRepo.GetByID(ctx, simulationID)
	if err != nil {
		return 0, fmt.Errorf("get simulation: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: simulation=%d", ErrNotFound, simulationID)
	}

	teams, err := s.teamRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) < 2 {
		return 0, fmt.Errorf("%w: need at least two teams to schedule", ErrInvalidInput)
	}

	target := GamesPerTeamTarget(sim.NumTeams)
	fixtures := buildFixtures(teams, target)

	// Stable seed keeps a regenerated season identical, which makes
	// partial-failure retries safe to reason about.
	rng := rand.New(rand.NewSource(simulationID*1000 + int64(season)))
	rng.Shuffle(len(fixtures), func(i, j int) {
		fixtures[i], fixtures[j] = fixtures[j], fixtures[i]
	})

	games := make([]game.Game, 0, len(fixtures))
	date := time.Date(seasonStartYear+season-1, time.October, 1, 0, 0, 0, 0, time.UTC)
	for _, f := range fixtures {
		games = append(games, game.Game{
			SimulationID: simulationID,
			Season:       season,
			Date:         date,
			HomeTeamID:   f.home,
			AwayTeamID:   f.away,
		})
		date = date.AddDate(0, 0, 2+rng.Intn(3))
	}

	if _, err := s.gameRepo.CreateBatch(ctx, games); err != nil {
		return 0, fmt.Errorf("create season games: %w", err)
	}

	s.logger.InfoContext(ctx, "season schedule generated",
		"simulation_id", simulationID,
		"season", season,
		"games", len(games),
		"games_per_team", target,
	)
	return len(games), nil
}

type fixturePair struct {
	home int64
	away int64
}

// buildFixtures creates the pairing list: a conference-weighted base
// allocation followed by a bounded top-up pass that brings every team
// to the exact target.
func buildFixtures(teams []team.Team, target int) []fixturePair {
	east := make([]team.Team, 0, len(teams)/2)
	west := make([]team.Team, 0, len(teams)/2)
	for _, t := range teams {
		if t.Conference == team.ConferenceEast {
			east = append(east, t)
		} else {
			west = append(west, t)
		}
	}

	numTeams := len(teams)
	intraOpponents := len(east) - 1 // conferences are equal-sized

	// Even split per opponent, remainder handed to intra-conference
	// pairings first.
	base := target / (numTeams - 1)
	remainder := target % (numTeams - 1)
	intraGames := base
	interGames := base
	if intraOpponents > 0 && remainder > 0 {
		intraGames += remainder / intraOpponents
	}

	var fixtures []fixturePair
	counts := make(map[int64]int, numTeams)

	addPair := func(a, b int64, k int) {
		// Alternate hosting by meeting parity to balance home games.
		if k%2 == 0 {
			fixtures = append(fixtures, fixturePair{home: a, away: b})
		} else {
			fixtures = append(fixtures, fixturePair{home: b, away: a})
		}
		counts[a]++
		counts[b]++
	}

	forEachPair := func(group []team.Team, games int) {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				for k := 0; k < games; k++ {
					addPair(group[i].ID, group[j].ID, k)
				}
			}
		}
	}

	forEachPair(east, intraGames)
	forEachPair(west, intraGames)
	for i := range east {
		for j := range west {
			for k := 0; k < interGames; k++ {
				addPair(east[i].ID, west[j].ID, k)
			}
		}
	}

	// Rounding can leave teams short; add fixtures between under-
	// target teams, same-conference first. The pass is bounded so a
	// single odd team out cannot loop forever.
	conferenceOf := make(map[int64]string, numTeams)
	for _, t := range teams {
		conferenceOf[t.ID] = t.Conference
	}

	maxTopUps := numTeams * target
	for iter := 0; iter < maxTopUps; iter++ {
		var under []int64
		for _, t := range teams {
			if counts[t.ID] < target {
				under = append(under, t.ID)
			}
		}
		if len(under) < 2 {
			break
		}

		a := under[0]
		b := int64(-1)
		for _, candidate := range under[1:] {
			if conferenceOf[candidate] == conferenceOf[a] {
				b = candidate
				break
			}
		}
		if b < 0 {
			b = under[1]
		}
		addPair(a, b, counts[a])
	}

	return fixtures
}
