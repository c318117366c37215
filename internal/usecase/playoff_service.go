package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/series"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// sheetBuilder is the slice of LinesService the playoff engine needs.
type sheetBuilder interface {
	BuildTeamSheet(ctx context.Context, teamID int64) (TeamSheet, error)
}

// trophyAwarder hands out season awards at the rollover checkpoint.
type trophyAwarder interface {
	AwardTrophies(ctx context.Context, simulationID int64, season int) error
}

// PlayoffStep reports what one playoff game changed: the game itself,
// series progress, and whether the step ended the round or crowned a
// champion. SeasonComplete means the caller must follow up with
// CompleteSeason to roll the simulation over; nothing advances the
// season implicitly.
type PlayoffStep struct {
	Game           game.Game
	Result         game.Result
	Series         series.Series
	SeriesComplete bool
	RoundComplete  bool
	SeasonComplete bool
	ChampionID     *int64
}

// PlayoffService runs the best-of-seven bracket: seeding, per-game
// series progression, round advancement and the explicit
// end-of-season checkpoint.
type PlayoffService struct {
	simRepo    simulation.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
	seriesRepo series.Repository
	standings  *StandingsService
	sheets     sheetBuilder
	engine     GameEngine
	trophies   trophyAwarder
	schedule   scheduleGenerator
	logger     *logging.Logger
}

func NewPlayoffService(
	simRepo simulation.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	seriesRepo series.Repository,
	standings *StandingsService,
	sheets sheetBuilder,
	engine GameEngine,
	trophies trophyAwarder,
	schedule scheduleGenerator,
	logger *logging.Logger,
) *PlayoffService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayoffService{
		simRepo:    simRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		seriesRepo: seriesRepo,
		standings:  standings,
		sheets:     sheets,
		engine:     engine,
		trophies:   trophies,
		schedule:   schedule,
		logger:     logger,
	}
}

// EnterPlayoffs seeds the opening round once every regular-season game
// has been simulated: the top half of the playoff field from each
// conference, paired best against worst. Calling it again returns the
// existing bracket.
func (s *PlayoffService) EnterPlayoffs(ctx context.Context, simulationID int64) ([]series.Series, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayoffService.EnterPlayoffs")
	defer span.End()

	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.seriesRepo.ListBySeason(ctx, simulationID, sim.CurrentSeason)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	remaining, err := s.gameRepo.CountUnsimulated(ctx, simulationID, sim.CurrentSeason, false)
	if err != nil {
		return nil, fmt.Errorf("count unsimulated: %w", err)
	}
	if remaining > 0 {
		return nil, fmt.Errorf("%w: %d regular-season games left to simulate", ErrInvalidInput, remaining)
	}

	east, west, err := s.standings.ConferenceStandings(ctx, simulationID, sim.CurrentSeason)
	if err != nil {
		return nil, err
	}

	perConference := PlayoffFieldSize(sim.NumTeams) / 2
	if len(east) < perConference || len(west) < perConference {
		return nil, fmt.Errorf("%w: not enough teams to fill the playoff field", ErrInvalidInput)
	}

	var created []series.Series
	for _, seeds := range [][]TeamStanding{east[:perConference], west[:perConference]} {
		for i := 0; i < len(seeds)/2; i++ {
			sr, err := s.seriesRepo.Create(ctx, series.Series{
				SimulationID:   simulationID,
				Season:         sim.CurrentSeason,
				Round:          1,
				HigherSeedID:   seeds[i].Team.ID,
				LowerSeedID:    seeds[len(seeds)-1-i].Team.ID,
				Status:         series.StatusInProgress,
				NextGameNumber: 1,
			})
			if err != nil {
				return nil, fmt.Errorf("create series: %w", err)
			}
			created = append(created, sr)
		}
	}

	if err := s.simRepo.UpdateStatus(ctx, simulationID, simulation.StatusPlayoffs); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.logger.InfoContext(ctx, "playoffs seeded",
		"simulation_id", simulationID,
		"season", sim.CurrentSeason,
		"series", len(created),
	)
	return created, nil
}

// SimulateNextGame plays the next game of a series: creates the
// fixture with 2-2-1-1-1 hosting, runs the engine, records the win and
// advances the bracket when the series or round finishes.
func (s *PlayoffService) SimulateNextGame(ctx context.Context, seriesID int64) (PlayoffStep, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayoffService.SimulateNextGame")
	defer span.End()

	sr, exists, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return PlayoffStep{}, fmt.Errorf("get series: %w", err)
	}
	if !exists {
		return PlayoffStep{}, fmt.Errorf("%w: series=%d", ErrNotFound, seriesID)
	}
	if sr.Complete() {
		return PlayoffStep{}, fmt.Errorf("%w: series %d is already decided", ErrInvalidInput, seriesID)
	}

	homeID, awayID := sr.LowerSeedID, sr.HigherSeedID
	if series.HigherSeedHosts(sr.NextGameNumber) {
		homeID, awayID = sr.HigherSeedID, sr.LowerSeedID
	}

	date, err := s.nextGameDate(ctx, sr.SimulationID, sr.Season)
	if err != nil {
		return PlayoffStep{}, err
	}
	round := sr.Round
	created, err := s.gameRepo.CreateBatch(ctx, []game.Game{{
		SimulationID: sr.SimulationID,
		Season:       sr.Season,
		Date:         date,
		HomeTeamID:   homeID,
		AwayTeamID:   awayID,
		IsPlayoff:    true,
		PlayoffRound: &round,
		SeriesID:     &sr.ID,
	}})
	if err != nil {
		return PlayoffStep{}, fmt.Errorf("create playoff game: %w", err)
	}
	g := created[0]

	homeSheet, err := s.sheets.BuildTeamSheet(ctx, homeID)
	if err != nil {
		return PlayoffStep{}, err
	}
	awaySheet, err := s.sheets.BuildTeamSheet(ctx, awayID)
	if err != nil {
		return PlayoffStep{}, err
	}

	result, err := s.engine.SimulateGame(ctx, homeSheet, awaySheet, true)
	if err != nil {
		return PlayoffStep{}, fmt.Errorf("simulate playoff game: %w", err)
	}
	if result.Tied() {
		// Playoff games never end drawn. Engines should not produce
		// ties here, but when one does the home side takes sudden
		// death rather than aborting the bracket.
		result.HomeScore++
		result.Overtime = true
		s.logger.WarnContext(ctx, "tied playoff result forced to a winner",
			"simulation_id", sr.SimulationID,
			"series_id", sr.ID,
			"game_number", sr.NextGameNumber,
		)
	}

	if err := s.gameRepo.ApplyResult(ctx, g.ID, result); err != nil {
		return PlayoffStep{}, fmt.Errorf("apply result: %w", err)
	}

	winnerID := awayID
	if result.HomeWon() {
		winnerID = homeID
	}
	if err := sr.RecordWin(winnerID); err != nil {
		return PlayoffStep{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.seriesRepo.Update(ctx, sr); err != nil {
		return PlayoffStep{}, fmt.Errorf("update series: %w", err)
	}

	step := PlayoffStep{
		Game:           g,
		Result:         result,
		Series:         sr,
		SeriesComplete: sr.Complete(),
	}
	if !sr.Complete() {
		return step, nil
	}

	s.logger.InfoContext(ctx, "series decided",
		"simulation_id", sr.SimulationID,
		"season", sr.Season,
		"round", sr.Round,
		"winner_team_id", *sr.WinnerID,
	)

	advanced, champion, err := s.maybeAdvanceRound(ctx, sr.SimulationID, sr.Season, sr.Round)
	if err != nil {
		return PlayoffStep{}, err
	}
	step.RoundComplete = advanced
	if champion != nil {
		step.SeasonComplete = true
		step.ChampionID = champion
		if err := s.simRepo.UpdateStatus(ctx, sr.SimulationID, simulation.StatusSeasonEnd); err != nil {
			return PlayoffStep{}, fmt.Errorf("update status: %w", err)
		}
	}
	return step, nil
}

// maybeAdvanceRound creates the next round once every series in the
// current round is decided. Winners re-pair best against worst inside
// each conference while a conference still has two or more alive; the
// final crosses conferences when exactly two teams remain. Returns the
// champion's team id once one team is left standing.
//
// The round is compared against the bracket size it should hold, so a
// partial create failure in an earlier call heals on the next one: a
// short round is filled back in from the previous round's winners, and
// already-created pairings are never duplicated. A champion is only
// crowned out of a full final.
func (s *PlayoffService) maybeAdvanceRound(ctx context.Context, simulationID int64, season, round int) (bool, *int64, error) {
	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return false, nil, err
	}
	expected := PlayoffFieldSize(sim.NumTeams) >> round

	roundSeries, err := s.seriesRepo.ListByRound(ctx, simulationID, season, round)
	if err != nil {
		return false, nil, fmt.Errorf("list round series: %w", err)
	}
	if len(roundSeries) < expected && round > 1 {
		if err := s.fillRound(ctx, simulationID, season, round); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	winners := make([]int64, 0, len(roundSeries))
	for _, sr := range roundSeries {
		if !sr.Complete() {
			return false, nil, nil
		}
		winners = append(winners, *sr.WinnerID)
	}

	if expected == 1 && len(winners) == 1 {
		return true, &winners[0], nil
	}

	pairs, err := s.pairWinners(ctx, simulationID, season, winners)
	if err != nil {
		return false, nil, err
	}
	created, err := s.createMissingSeries(ctx, simulationID, season, round+1, pairs)
	if err != nil {
		return false, nil, err
	}

	s.logger.InfoContext(ctx, "playoff round advanced",
		"simulation_id", simulationID,
		"season", season,
		"next_round", round+1,
		"series", created,
	)
	return true, nil, nil
}

// fillRound rebuilds a round that came up short of its bracket size by
// re-pairing the previous round's winners. Pairings already on file
// stay put.
func (s *PlayoffService) fillRound(ctx context.Context, simulationID int64, season, round int) error {
	previous, err := s.seriesRepo.ListByRound(ctx, simulationID, season, round-1)
	if err != nil {
		return fmt.Errorf("list previous round: %w", err)
	}
	winners := make([]int64, 0, len(previous))
	for _, sr := range previous {
		if !sr.Complete() {
			return nil
		}
		winners = append(winners, *sr.WinnerID)
	}

	pairs, err := s.pairWinners(ctx, simulationID, season, winners)
	if err != nil {
		return err
	}
	created, err := s.createMissingSeries(ctx, simulationID, season, round, pairs)
	if err != nil {
		return err
	}
	if created > 0 {
		s.logger.WarnContext(ctx, "rebuilt short playoff round",
			"simulation_id", simulationID,
			"season", season,
			"round", round,
			"series", created,
		)
	}
	return nil
}

// pairWinners seeds the surviving teams and pairs them best against
// worst inside each conference, crossing conferences only for the
// final.
func (s *PlayoffService) pairWinners(ctx context.Context, simulationID int64, season int, winners []int64) ([][2]int64, error) {
	seeded, err := s.seedWinners(ctx, simulationID, season, winners)
	if err != nil {
		return nil, err
	}

	var east, west []int64
	for _, w := range seeded {
		if w.conference == team.ConferenceEast {
			east = append(east, w.teamID)
		} else {
			west = append(west, w.teamID)
		}
	}

	var pairs [][2]int64
	if len(east) == 1 && len(west) == 1 {
		// Cross-conference final; the better record is the higher seed
		// and seeded is already in league order.
		pairs = append(pairs, [2]int64{seeded[0].teamID, seeded[1].teamID})
	} else {
		for _, conference := range [][]int64{east, west} {
			for i := 0; i < len(conference)/2; i++ {
				pairs = append(pairs, [2]int64{conference[i], conference[len(conference)-1-i]})
			}
		}
	}
	return pairs, nil
}

// createMissingSeries writes the given pairings into the round,
// skipping any team already placed there. Pairing is deterministic, so
// retrying after a partial failure only fills the gaps.
func (s *PlayoffService) createMissingSeries(ctx context.Context, simulationID int64, season, round int, pairs [][2]int64) (int, error) {
	existing, err := s.seriesRepo.ListByRound(ctx, simulationID, season, round)
	if err != nil {
		return 0, fmt.Errorf("list round series: %w", err)
	}
	placed := make(map[int64]bool, 2*len(existing))
	for _, sr := range existing {
		placed[sr.HigherSeedID] = true
		placed[sr.LowerSeedID] = true
	}

	created := 0
	for _, p := range pairs {
		if placed[p[0]] || placed[p[1]] {
			continue
		}
		if _, err := s.seriesRepo.Create(ctx, series.Series{
			SimulationID:   simulationID,
			Season:         season,
			Round:          round,
			HigherSeedID:   p[0],
			LowerSeedID:    p[1],
			Status:         series.StatusInProgress,
			NextGameNumber: 1,
		}); err != nil {
			return created, fmt.Errorf("create series: %w", err)
		}
		created++
	}
	return created, nil
}

type seededWinner struct {
	teamID     int64
	conference string
}

// seedWinners orders surviving teams by their regular-season record.
func (s *PlayoffService) seedWinners(ctx context.Context, simulationID int64, season int, winners []int64) ([]seededWinner, error) {
	table, err := s.standings.SeasonStandings(ctx, simulationID, season)
	if err != nil {
		return nil, err
	}
	alive := make(map[int64]bool, len(winners))
	for _, id := range winners {
		alive[id] = true
	}
	seeded := make([]seededWinner, 0, len(winners))
	for _, row := range table {
		if alive[row.Team.ID] {
			seeded = append(seeded, seededWinner{teamID: row.Team.ID, conference: row.Team.Conference})
		}
	}
	if len(seeded) != len(winners) {
		return nil, fmt.Errorf("%w: playoff winner missing from standings", ErrNotFound)
	}
	return seeded, nil
}

// CompleteSeason is the explicit rollover checkpoint after a champion
// is crowned: award trophies, then either finish the simulation or
// advance to the next season and stage its schedule and standings.
// Safe to retry; a season that already rolled over is left alone.
func (s *PlayoffService) CompleteSeason(ctx context.Context, simulationID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayoffService.CompleteSeason")
	defer span.End()

	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return err
	}
	if sim.Status != simulation.StatusSeasonEnd {
		if sim.Status == simulation.StatusSeason || sim.Status == simulation.StatusCompleted {
			return nil
		}
		return fmt.Errorf("%w: season %d is not finished", ErrInvalidInput, sim.CurrentSeason)
	}

	if err := s.trophies.AwardTrophies(ctx, simulationID, sim.CurrentSeason); err != nil {
		return fmt.Errorf("award trophies: %w", err)
	}

	if sim.CurrentSeason >= sim.YearLength {
		if err := s.simRepo.UpdateStatus(ctx, simulationID, simulation.StatusCompleted); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		s.logger.InfoContext(ctx, "simulation completed",
			"simulation_id", simulationID,
			"seasons", sim.CurrentSeason,
		)
		return nil
	}

	if err := s.simRepo.AdvanceSeason(ctx, simulationID, sim.CurrentSeason, simulation.StatusSeason); err != nil {
		return fmt.Errorf("advance season: %w", err)
	}

	nextSeason := sim.CurrentSeason + 1
	if _, err := s.schedule.GenerateSeasonSchedule(ctx, simulationID, nextSeason); err != nil {
		return fmt.Errorf("generate next-season schedule: %w", err)
	}
	if err := s.standings.InitializeStandings(ctx, simulationID, nextSeason); err != nil {
		return fmt.Errorf("initialize next-season standings: %w", err)
	}

	s.logger.InfoContext(ctx, "season rolled over",
		"simulation_id", simulationID,
		"season", nextSeason,
	)
	return nil
}

// nextGameDate schedules a playoff game two days after the latest
// fixture of the season.
func (s *PlayoffService) nextGameDate(ctx context.Context, simulationID int64, season int) (time.Time, error) {
	games, err := s.gameRepo.ListSeason(ctx, simulationID, season, true)
	if err != nil {
		return time.Time{}, fmt.Errorf("list season games: %w", err)
	}
	latest := time.Date(seasonStartYear+season-1, time.October, 1, 0, 0, 0, 0, time.UTC)
	for _, g := range games {
		if g.Date.After(latest) {
			latest = g.Date
		}
	}
	return latest.AddDate(0, 0, 2), nil
}

func (s *PlayoffService) getSimulation(ctx context.Context, simulationID int64) (simulation.Simulation, error) {
	sim, exists, err := s.simRepo.GetByID(ctx, simulationID)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("get simulation: %w", err)
	}
	if !exists {
		return simulation.Simulation{}, fmt.Errorf("%w: simulation=%d", ErrNotFound, simulationID)
	}
	return sim, nil
}
