package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/series"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// maxPlayoffSteps bounds a full playoff run: an eight-team bracket is
// at most seven series of seven games.
const maxPlayoffSteps = 7 * series.MaxGames

// SeasonService drives whole seasons forward. All mutating entry
// points serialize on a per-simulation mutex, so at most one writer
// ever advances a given simulation.
type SeasonService struct {
	simRepo    simulation.Repository
	gameRepo   game.Repository
	seriesRepo series.Repository
	standings  *StandingsService
	sheets     sheetBuilder
	engine     GameEngine
	playoffs   *PlayoffService
	logger     *logging.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewSeasonService(
	simRepo simulation.Repository,
	gameRepo game.Repository,
	seriesRepo series.Repository,
	standings *StandingsService,
	sheets sheetBuilder,
	engine GameEngine,
	playoffs *PlayoffService,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{
		simRepo:    simRepo,
		gameRepo:   gameRepo,
		seriesRepo: seriesRepo,
		standings:  standings,
		sheets:     sheets,
		engine:     engine,
		playoffs:   playoffs,
		logger:     logger,
		locks:      make(map[int64]*sync.Mutex),
	}
}

func (s *SeasonService) lockFor(simulationID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[simulationID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[simulationID] = l
	}
	return l
}

// SimulateNextGame plays the earliest unsimulated regular-season game
// and folds it into the standings.
func (s *SeasonService) SimulateNextGame(ctx context.Context, simulationID int64) (game.Game, game.Result, error) {
	lock := s.lockFor(simulationID)
	lock.Lock()
	defer lock.Unlock()

	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SimulateNextGame")
	defer span.End()

	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return game.Game{}, game.Result{}, err
	}
	if sim.Status != simulation.StatusSeason {
		return game.Game{}, game.Result{}, fmt.Errorf("%w: simulation is %s, not in season", ErrInvalidInput, sim.Status)
	}

	pending, err := s.gameRepo.ListUnsimulated(ctx, simulationID, sim.CurrentSeason, false)
	if err != nil {
		return game.Game{}, game.Result{}, fmt.Errorf("list unsimulated: %w", err)
	}
	if len(pending) == 0 {
		return game.Game{}, game.Result{}, fmt.Errorf("%w: no regular-season games left", ErrInvalidInput)
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Date.Before(pending[j].Date) })

	g := pending[0]
	result, err := s.playRegularSeasonGame(ctx, g)
	if err != nil {
		return game.Game{}, game.Result{}, err
	}
	return g, result, nil
}

// SimulateToPlayoffs plays out every remaining regular-season game and
// seeds the bracket. Resumable: already simulated games are never
// replayed, so a failed run picks up where it stopped.
func (s *SeasonService) SimulateToPlayoffs(ctx context.Context, simulationID int64) error {
	lock := s.lockFor(simulationID)
	lock.Lock()
	defer lock.Unlock()

	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SimulateToPlayoffs")
	defer span.End()

	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return err
	}
	switch sim.Status {
	case simulation.StatusSeason:
	case simulation.StatusPlayoffs, simulation.StatusSeasonEnd:
		return nil
	default:
		return fmt.Errorf("%w: simulation is %s, not in season", ErrInvalidInput, sim.Status)
	}

	pending, err := s.gameRepo.ListUnsimulated(ctx, simulationID, sim.CurrentSeason, false)
	if err != nil {
		return fmt.Errorf("list unsimulated: %w", err)
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Date.Before(pending[j].Date) })

	for _, g := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.playRegularSeasonGame(ctx, g); err != nil {
			return err
		}
	}

	if _, err := s.playoffs.EnterPlayoffs(ctx, simulationID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "regular season finished",
		"simulation_id", simulationID,
		"season", sim.CurrentSeason,
		"games_played", len(pending),
	)
	return nil
}

// SimulateRound plays the current playoff round to completion and
// returns the per-game steps. The following round is seeded
// automatically when the last series ends.
func (s *SeasonService) SimulateRound(ctx context.Context, simulationID int64) ([]PlayoffStep, error) {
	lock := s.lockFor(simulationID)
	lock.Lock()
	defer lock.Unlock()

	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SimulateRound")
	defer span.End()

	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if sim.Status != simulation.StatusPlayoffs {
		return nil, fmt.Errorf("%w: simulation is %s, not in playoffs", ErrInvalidInput, sim.Status)
	}

	open, err := s.openSeries(ctx, simulationID, sim.CurrentSeason)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, fmt.Errorf("%w: no playoff series in progress", ErrInvalidInput)
	}
	round := open[0].Round

	var steps []PlayoffStep
	for i := 0; i < maxPlayoffSteps; i++ {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		var next *series.Series
		for idx := range open {
			if open[idx].Round == round && !open[idx].Complete() {
				next = &open[idx]
				break
			}
		}
		if next == nil {
			return steps, nil
		}
		step, err := s.playoffs.SimulateNextGame(ctx, next.ID)
		if err != nil {
			return steps, err
		}
		steps = append(steps, step)
		if step.SeriesComplete {
			open, err = s.openSeries(ctx, simulationID, sim.CurrentSeason)
			if err != nil {
				return steps, err
			}
		} else {
			*next = step.Series
		}
	}
	return steps, fmt.Errorf("playoff round exceeded %d games without finishing", maxPlayoffSteps)
}

// SimulatePlayoffs plays from the current bracket state to a champion.
func (s *SeasonService) SimulatePlayoffs(ctx context.Context, simulationID int64) (*PlayoffStep, error) {
	lock := s.lockFor(simulationID)
	lock.Lock()
	defer lock.Unlock()

	return s.simulatePlayoffsLocked(ctx, simulationID)
}

func (s *SeasonService) simulatePlayoffsLocked(ctx context.Context, simulationID int64) (*PlayoffStep, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SimulatePlayoffs")
	defer span.End()

	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if sim.Status == simulation.StatusSeasonEnd {
		return nil, nil
	}
	if sim.Status != simulation.StatusPlayoffs {
		return nil, fmt.Errorf("%w: simulation is %s, not in playoffs", ErrInvalidInput, sim.Status)
	}

	for i := 0; i < maxPlayoffSteps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		open, err := s.openSeries(ctx, simulationID, sim.CurrentSeason)
		if err != nil {
			return nil, err
		}
		if len(open) == 0 {
			return nil, fmt.Errorf("%w: playoffs have no series in progress", ErrInvalidInput)
		}
		step, err := s.playoffs.SimulateNextGame(ctx, open[0].ID)
		if err != nil {
			return nil, err
		}
		if step.SeasonComplete {
			return &step, nil
		}
	}
	return nil, fmt.Errorf("playoffs exceeded %d games without a champion", maxPlayoffSteps)
}

// SimulateFullSeason runs the rest of the season end to end: remaining
// regular-season games, the full playoff bracket and the season
// rollover. Returns the simulation as it stands afterwards.
func (s *SeasonService) SimulateFullSeason(ctx context.Context, simulationID int64) (simulation.Simulation, error) {
	if err := s.SimulateToPlayoffs(ctx, simulationID); err != nil {
		return simulation.Simulation{}, err
	}

	lock := s.lockFor(simulationID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.simulatePlayoffsLocked(ctx, simulationID); err != nil {
		return simulation.Simulation{}, err
	}
	if err := s.playoffs.CompleteSeason(ctx, simulationID); err != nil {
		return simulation.Simulation{}, err
	}
	return s.getSimulation(ctx, simulationID)
}

func (s *SeasonService) playRegularSeasonGame(ctx context.Context, g game.Game) (game.Result, error) {
	homeSheet, err := s.sheets.BuildTeamSheet(ctx, g.HomeTeamID)
	if err != nil {
		return game.Result{}, err
	}
	awaySheet, err := s.sheets.BuildTeamSheet(ctx, g.AwayTeamID)
	if err != nil {
		return game.Result{}, err
	}

	result, err := s.engine.SimulateGame(ctx, homeSheet, awaySheet, false)
	if err != nil {
		return game.Result{}, fmt.Errorf("simulate game %d: %w", g.ID, err)
	}
	if result.Tied() {
		return game.Result{}, fmt.Errorf("%w: engine returned a tied result for game %d", ErrInvalidInput, g.ID)
	}

	if err := s.gameRepo.ApplyResult(ctx, g.ID, result); err != nil {
		return game.Result{}, fmt.Errorf("apply result for game %d: %w", g.ID, err)
	}
	if err := s.standings.ApplyResult(ctx, g, result); err != nil {
		return game.Result{}, err
	}
	return result, nil
}

// openSeries returns the season's in-progress series ordered by round.
func (s *SeasonService) openSeries(ctx context.Context, simulationID int64, season int) ([]series.Series, error) {
	all, err := s.seriesRepo.ListBySeason(ctx, simulationID, season)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	var open []series.Series
	for _, sr := range all {
		if !sr.Complete() {
			open = append(open, sr)
		}
	}
	sort.SliceStable(open, func(i, j int) bool { return open[i].Round < open[j].Round })
	return open, nil
}

func (s *SeasonService) getSimulation(ctx context.Context, simulationID int64) (simulation.Simulation, error) {
	sim, exists, err := s.simRepo.GetByID(ctx, simulationID)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("get simulation: %w", err)
	}
	if !exists {
		return simulation.Simulation{}, fmt.Errorf("%w: simulation=%d", ErrNotFound, simulationID)
	}
	return sim, nil
}
