package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claudynachos/LHL/internal/app"
	"github.com/claudynachos/LHL/internal/config"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/observability"
	"github.com/claudynachos/LHL/internal/platform/logging"
	"github.com/claudynachos/LHL/internal/usecase"
)

func main() {
	name := flag.String("name", "League Simulation", "simulation name")
	teams := flag.Int("teams", 8, "league size (4, 6, 8, 10 or 12)")
	years := flag.Int("years", 20, "seasons before the simulation completes (20-25)")
	userTeam := flag.String("team", "", "franchise controlled by the user (default: first East team)")
	seasons := flag.Int("seasons", 1, "seasons to simulate before exiting (0 runs every season)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Error("stop profiler", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	if err := run(ctx, a, *name, *teams, *years, *userTeam, *seasons); err != nil {
		logger.Error("simulation run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, name string, teams, years int, userTeam string, seasons int) error {
	created, err := a.League.CreateSimulation(ctx, usecase.CreateSimulationInput{
		Name:       name,
		NumTeams:   teams,
		YearLength: years,
		UserTeam:   userTeam,
	})
	if err != nil {
		return fmt.Errorf("create simulation: %w", err)
	}
	sim := created.Simulation
	fmt.Printf("created %q: %d teams, %d seasons, simulation id %d\n", sim.Name, teams, years, sim.ID)

	if err := runDraft(ctx, a, sim.ID); err != nil {
		return err
	}

	for played := 0; seasons == 0 || played < seasons; played++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		current, _, err := a.League.GetSimulation(ctx, sim.ID)
		if err != nil {
			return fmt.Errorf("load simulation: %w", err)
		}
		if current.Status == simulation.StatusCompleted {
			fmt.Println("simulation complete")
			return nil
		}
		season := current.CurrentSeason

		after, err := a.Seasons.SimulateFullSeason(ctx, sim.ID)
		if err != nil {
			return fmt.Errorf("simulate season %d: %w", season, err)
		}

		if err := printSeasonReport(ctx, a, sim.ID, season); err != nil {
			return err
		}
		if after.Status == simulation.StatusCompleted {
			fmt.Println("simulation complete")
			return nil
		}
	}

	return nil
}

// runDraft auto-resolves every pick. Explicit choices come through the
// same MakePick call; the demo just lets the heuristic run.
func runDraft(ctx context.Context, a *app.App, simulationID int64) error {
	picks := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := a.Draft.MakePick(ctx, simulationID, usecase.MakePickInput{})
		if err != nil {
			return fmt.Errorf("draft pick: %w", err)
		}
		picks++
		if result.DraftComplete {
			break
		}
	}
	fmt.Printf("draft complete after %d picks\n", picks)
	return nil
}

func printSeasonReport(ctx context.Context, a *app.App, simulationID int64, season int) error {
	rows, err := a.Standings.SeasonStandings(ctx, simulationID, season)
	if err != nil {
		return fmt.Errorf("season standings: %w", err)
	}

	fmt.Printf("\nseason %d final standings\n", season)
	for i, row := range rows {
		overall := ""
		if rating, err := a.Ratings.TeamOverall(ctx, row.Team.ID); err == nil && rating != nil {
			overall = fmt.Sprintf("  ovr %.1f", *rating)
		}
		fmt.Printf("%2d. %-22s %3d pts  %d-%d (OTL %d)  GF %d GA %d%s\n",
			i+1, row.Team.City+" "+row.Team.Name,
			row.Standing.Points, row.Standing.Wins, row.Standing.Losses, row.Standing.OTLosses,
			row.Standing.GoalsFor, row.Standing.GoalsAgainst, overall)
	}

	trophies, err := a.Trophies.SeasonTrophies(ctx, simulationID, season)
	if err != nil {
		return fmt.Errorf("season trophies: %w", err)
	}
	if len(trophies) > 0 {
		fmt.Printf("\nseason %d awards\n", season)
		for _, t := range trophies {
			switch {
			case t.TeamID != nil:
				fmt.Printf("%-20s team %d\n", t.Name, *t.TeamID)
			case t.PlayerID != nil:
				fmt.Printf("%-20s player %d\n", t.Name, *t.PlayerID)
			}
		}
	}

	return nil
}
