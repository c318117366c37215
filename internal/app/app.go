// Package app assembles the simulator from its parts: storage driver,
// game engine and the usecase services, all picked by configuration.
package app

import (
	"context"
	"fmt"

	"github.com/claudynachos/LHL/internal/config"
	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/lineup"
	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/roster"
	"github.com/claudynachos/LHL/internal/domain/series"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/domain/standings"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/domain/trophy"
	"github.com/claudynachos/LHL/internal/infrastructure/engine/process"
	"github.com/claudynachos/LHL/internal/infrastructure/engine/rated"
	"github.com/claudynachos/LHL/internal/infrastructure/repository/memory"
	"github.com/claudynachos/LHL/internal/infrastructure/repository/postgres"
	"github.com/claudynachos/LHL/internal/platform/logging"
	"github.com/claudynachos/LHL/internal/usecase"
)

type repositories struct {
	simulations simulation.Repository
	teams       team.Repository
	players     player.Repository
	rosters     roster.Repository
	games       game.Repository
	series      series.Repository
	standings   standings.Repository
	lineups     lineup.Repository
	trophies    trophy.Repository
}

// App wires every service the simulator exposes. Close releases the
// storage driver when one was opened.
type App struct {
	Config config.Config
	Logger *logging.Logger

	League    *usecase.LeagueService
	Draft     *usecase.DraftService
	Lines     *usecase.LinesService
	Schedule  *usecase.ScheduleService
	Standings *usecase.StandingsService
	Ratings   *usecase.RatingService
	Trophies  *usecase.TrophyService
	Playoffs  *usecase.PlayoffService
	Seasons   *usecase.SeasonService

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{
		Config: cfg,
		Logger: logger,
	}

	repos, err := a.buildRepositories(ctx, cfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	a.Standings = usecase.NewStandingsService(repos.standings, repos.teams, logger)
	a.Lines = usecase.NewLinesService(repos.teams, repos.rosters, repos.players, repos.lineups, logger)
	a.Schedule = usecase.NewScheduleService(repos.simulations, repos.teams, repos.games, logger)
	a.Ratings = usecase.NewRatingService(repos.teams, repos.players, repos.lineups)
	a.Trophies = usecase.NewTrophyService(repos.simulations, repos.players, repos.games, repos.series, a.Standings, repos.trophies, logger)

	picker := usecase.NewAutoPicker(repos.players, repos.rosters, repos.teams, logger)

	a.League = usecase.NewLeagueService(
		repos.simulations,
		repos.teams,
		repos.rosters,
		repos.lineups,
		repos.games,
		repos.series,
		repos.standings,
		repos.trophies,
		logger,
	)
	a.Draft = usecase.NewDraftService(
		repos.simulations,
		repos.teams,
		repos.players,
		repos.rosters,
		picker,
		a.Lines,
		a.Schedule,
		a.Standings,
		logger,
	)
	a.Playoffs = usecase.NewPlayoffService(
		repos.simulations,
		repos.teams,
		repos.games,
		repos.series,
		a.Standings,
		a.Lines,
		engine,
		a.Trophies,
		a.Schedule,
		logger,
	)
	a.Seasons = usecase.NewSeasonService(
		repos.simulations,
		repos.games,
		repos.series,
		a.Standings,
		a.Lines,
		engine,
		a.Playoffs,
		logger,
	)

	return a, nil
}

// Close shuts down storage in reverse open order.
func (a *App) Close() error {
	return a.close()
}

func (a *App) close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage driver selected", "driver", config.StorageMemory)
		return repositories{
			simulations: memory.NewSimulationRepository(),
			teams:       memory.NewTeamRepository(),
			players:     memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedCoaches()),
			rosters:     memory.NewRosterRepository(),
			games:       memory.NewGameRepository(),
			series:      memory.NewSeriesRepository(),
			standings:   memory.NewStandingsRepository(),
			lineups:     memory.NewLineupRepository(),
			trophies:    memory.NewTrophyRepository(),
		}, nil

	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := postgres.SeedCatalog(ctx, db, memory.SeedPlayers(), memory.SeedCoaches()); err != nil {
			return repositories{}, fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("storage driver selected", "driver", config.StoragePostgres, "database", dbNameFromURL(cfg.DBURL))

		return repositories{
			simulations: postgres.NewSimulationRepository(db),
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			rosters:     postgres.NewRosterRepository(db),
			games:       postgres.NewGameRepository(db),
			series:      postgres.NewSeriesRepository(db),
			standings:   postgres.NewStandingsRepository(db),
			lineups:     postgres.NewLineupRepository(db),
			trophies:    postgres.NewTrophyRepository(db),
		}, nil

	default:
		return repositories{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func buildEngine(cfg config.Config, logger *logging.Logger) (usecase.GameEngine, error) {
	switch cfg.EngineMode {
	case config.EngineRated:
		logger.Info("engine selected", "mode", config.EngineRated, "seed", cfg.EngineSeed)
		return rated.New(cfg.EngineSeed), nil

	case config.EngineProcess:
		logger.Info("engine selected", "mode", config.EngineProcess, "binary", cfg.EngineBinaryPath)
		return process.NewEngine(process.EngineConfig{
			BinaryPath: cfg.EngineBinaryPath,
			Timeout:    cfg.EngineTimeout,
			Logger:     logger,
		})

	default:
		return nil, fmt.Errorf("unknown engine mode %q", cfg.EngineMode)
	}
}
