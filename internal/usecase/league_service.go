package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/lineup"
	"github.com/claudynachos/LHL/internal/domain/roster"
	"github.com/claudynachos/LHL/internal/domain/series"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/domain/standings"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/domain/trophy"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

type teamConfig struct {
	name       string
	city       string
	conference string
}

// teamConfigs fixes the franchise set for each supported league size.
// The first half of each slice is the East conference.
var teamConfigs = map[int][]teamConfig{
	4: {
		{"MTL", "Montreal", team.ConferenceEast},
		{"BOS", "Boston", team.ConferenceEast},
		{"DET", "Detroit", team.ConferenceWest},
		{"CHI", "Chicago", team.ConferenceWest},
	},
	6: {
		{"MTL", "Montreal", team.ConferenceEast},
		{"BOS", "Boston", team.ConferenceEast},
		{"TOR", "Toronto", team.ConferenceEast},
		{"DET", "Detroit", team.ConferenceWest},
		{"CHI", "Chicago", team.ConferenceWest},
		{"NYR", "New York", team.ConferenceWest},
	},
	8: {
		{"MTL", "Montreal", team.ConferenceEast},
		{"BOS", "Boston", team.ConferenceEast},
		{"TOR", "Toronto", team.ConferenceEast},
		{"PHI", "Philadelphia", team.ConferenceEast},
		{"DET", "Detroit", team.ConferenceWest},
		{"CHI", "Chicago", team.ConferenceWest},
		{"NYR", "New York", team.ConferenceWest},
		{"LA", "Los Angeles", team.ConferenceWest},
	},
	10: {
		{"MTL", "Montreal", team.ConferenceEast},
		{"BOS", "Boston", team.ConferenceEast},
		{"TOR", "Toronto", team.ConferenceEast},
		{"PHI", "Philadelphia", team.ConferenceEast},
		{"PIT", "Pittsburgh", team.ConferenceEast},
		{"DET", "Detroit", team.ConferenceWest},
		{"CHI", "Chicago", team.ConferenceWest},
		{"NYR", "New York", team.ConferenceWest},
		{"LA", "Los Angeles", team.ConferenceWest},
		{"EDM", "Edmonton", team.ConferenceWest},
	},
	12: {
		{"MTL", "Montreal", team.ConferenceEast},
		{"BOS", "Boston", team.ConferenceEast},
		{"TOR", "Toronto", team.ConferenceEast},
		{"PHI", "Philadelphia", team.ConferenceEast},
		{"PIT", "Pittsburgh", team.ConferenceEast},
		{"QC", "Quebec", team.ConferenceEast},
		{"DET", "Detroit", team.ConferenceWest},
		{"CHI", "Chicago", team.ConferenceWest},
		{"NYR", "New York", team.ConferenceWest},
		{"LA", "Los Angeles", team.ConferenceWest},
		{"EDM", "Edmonton", team.ConferenceWest},
		{"NYI", "New York Islanders", team.ConferenceWest},
	},
}

// PlayoffFieldSize returns how many teams enter the playoffs for a
// given league size.
func PlayoffFieldSize(numTeams int) int {
	if numTeams <= 6 {
		return 4
	}
	return 8
}

type CreateSimulationInput struct {
	Name       string `validate:"max=100"`
	NumTeams   int    `validate:"required,oneof=4 6 8 10 12"`
	YearLength int    `validate:"required,min=20,max=25"`
	// UserTeam is the franchise name the user controls. Empty picks
	// the first East team.
	UserTeam string
}

type CreateSimulationResult struct {
	Simulation simulation.Simulation
	Teams      []team.Team
}

// LeagueService bootstraps and removes league simulations.
type LeagueService struct {
	simRepo       simulation.Repository
	teamRepo      team.Repository
	rosterRepo    roster.Repository
	lineupRepo    lineup.Repository
	gameRepo      game.Repository
	seriesRepo    series.Repository
	standingsRepo standings.Repository
	trophyRepo    trophy.Repository
	validate      *validator.Validate
	logger        *logging.Logger
	now           func() time.Time
}

func NewLeagueService(
	simRepo simulation.Repository,
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	lineupRepo lineup.Repository,
	gameRepo game.Repository,
	seriesRepo series.Repository,
	standingsRepo standings.Repository,
	trophyRepo trophy.Repository,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		simRepo:       simRepo,
		teamRepo:      teamRepo,
		rosterRepo:    rosterRepo,
		lineupRepo:    lineupRepo,
		gameRepo:      gameRepo,
		seriesRepo:    seriesRepo,
		standingsRepo: standingsRepo,
		trophyRepo:    trophyRepo,
		validate:      validator.New(),
		logger:        logger,
		now:           time.Now,
	}
}

// CreateSimulation creates a simulation in drafting status together
// with its fixed franchise set. Exactly one team ends up
// user-controlled.
func (s *LeagueService) CreateSimulation(ctx context.Context, input CreateSimulationInput) (CreateSimulationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateSimulation")
	defer span.End()

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return CreateSimulationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	configs, ok := teamConfigs[input.NumTeams]
	if !ok {
		return CreateSimulationResult{}, fmt.Errorf("%w: unsupported league size %d", ErrInvalidInput, input.NumTeams)
	}

	sim, err := s.simRepo.Create(ctx, simulation.Simulation{
		Name:          strings.TrimSpace(input.Name),
		NumTeams:      input.NumTeams,
		YearLength:    input.YearLength,
		CurrentSeason: 1,
		Status:        simulation.StatusDrafting,
		IsActive:      true,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		return CreateSimulationResult{}, fmt.Errorf("create simulation: %w", err)
	}

	teams := make([]team.Team, 0, len(configs))
	for _, cfg := range configs {
		teams = append(teams, team.Team{
			SimulationID: sim.ID,
			Name:         cfg.name,
			City:         cfg.city,
			Conference:   cfg.conference,
			PlayStyle:    team.PlayStyleAuto,
		})
	}

	created, err := s.teamRepo.CreateBatch(ctx, teams)
	if err != nil {
		return CreateSimulationResult{}, fmt.Errorf("create teams: %w", err)
	}

	userTeam := strings.TrimSpace(input.UserTeam)
	userIdx := 0
	if userTeam != "" {
		found := false
		for idx, t := range created {
			if strings.EqualFold(t.Name, userTeam) {
				userIdx = idx
				found = true
				break
			}
		}
		if !found {
			return CreateSimulationResult{}, fmt.Errorf("%w: unknown franchise %q for %d-team league", ErrInvalidInput, userTeam, input.NumTeams)
		}
	}

	if err := s.teamRepo.SetUserControlled(ctx, created[userIdx].ID); err != nil {
		return CreateSimulationResult{}, fmt.Errorf("mark user team: %w", err)
	}
	created[userIdx].UserControlled = true

	s.logger.InfoContext(ctx, "simulation created",
		"simulation_id", sim.ID,
		"num_teams", sim.NumTeams,
		"year_length", sim.YearLength,
		"user_team", created[userIdx].Name,
	)

	return CreateSimulationResult{Simulation: sim, Teams: created}, nil
}

func (s *LeagueService) GetSimulation(ctx context.Context, simulationID int64) (simulation.Simulation, []team.Team, error) {
	sim, exists, err := s.simRepo.GetByID(ctx, simulationID)
	if err != nil {
		return simulation.Simulation{}, nil, fmt.Errorf("get simulation: %w", err)
	}
	if !exists {
		return simulation.Simulation{}, nil, fmt.Errorf("%w: simulation=%d", ErrNotFound, simulationID)
	}

	teams, err := s.teamRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return simulation.Simulation{}, nil, fmt.Errorf("list teams: %w", err)
	}

	return sim, teams, nil
}

// DeleteSimulation removes the simulation and everything it owns:
// games and their box scores, playoff series, standings, trophies,
// roster and lineup assignments, and the teams themselves. Foreign
// keys require games to go before series and teams to go last.
func (s *LeagueService) DeleteSimulation(ctx context.Context, simulationID int64) error {
	_, exists, err := s.simRepo.GetByID(ctx, simulationID)
	if err != nil {
		return fmt.Errorf("get simulation: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: simulation=%d", ErrNotFound, simulationID)
	}

	teams, err := s.teamRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	for _, t := range teams {
		if err := s.lineupRepo.DeleteByTeam(ctx, t.ID); err != nil {
			return fmt.Errorf("delete lineups for team %d: %w", t.ID, err)
		}
	}

	if err := s.gameRepo.DeleteBySimulation(ctx, simulationID); err != nil {
		return fmt.Errorf("delete games: %w", err)
	}
	if err := s.seriesRepo.DeleteBySimulation(ctx, simulationID); err != nil {
		return fmt.Errorf("delete series: %w", err)
	}
	if err := s.standingsRepo.DeleteBySimulation(ctx, simulationID); err != nil {
		return fmt.Errorf("delete standings: %w", err)
	}
	if err := s.trophyRepo.DeleteBySimulation(ctx, simulationID); err != nil {
		return fmt.Errorf("delete trophies: %w", err)
	}
	if err := s.rosterRepo.DeleteBySimulation(ctx, simulationID); err != nil {
		return fmt.Errorf("delete rosters: %w", err)
	}
	if err := s.teamRepo.DeleteBySimulation(ctx, simulationID); err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}

	if err := s.simRepo.Delete(ctx, simulationID); err != nil {
		return fmt.Errorf("delete simulation: %w", err)
	}

	s.logger.InfoContext(ctx, "simulation deleted", "simulation_id", simulationID)
	return nil
}
