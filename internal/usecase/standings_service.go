package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/standings"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// StandingsService maintains the points table. Wins are worth two
// points and an overtime or shootout loss earns one; playoff games
// never touch the table.
type StandingsService struct {
	standingsRepo standings.Repository
	teamRepo      team.Repository
	logger        *logging.Logger
}

func NewStandingsService(standingsRepo standings.Repository, teamRepo team.Repository, logger *logging.Logger) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		standingsRepo: standingsRepo,
		teamRepo:      teamRepo,
		logger:        logger,
	}
}

// InitializeStandings creates a zeroed row per team for the season.
// Re-running it is a no-op for teams that already have a row.
func (s *StandingsService) InitializeStandings(ctx context.Context, simulationID int64, season int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.InitializeStandings")
	defer span.End()

	teams, err := s.teamRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	for _, t := range teams {
		if err := s.standingsRepo.InitTeam(ctx, simulationID, season, t.ID); err != nil {
			return fmt.Errorf("init standings for team %d: %w", t.ID, err)
		}
	}
	return nil
}

// ApplyResult folds one simulated regular-season game into the table.
func (s *StandingsService) ApplyResult(ctx context.Context, g game.Game, result game.Result) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ApplyResult")
	defer span.End()

	if g.IsPlayoff {
		return nil
	}
	if result.Tied() {
		return fmt.Errorf("%w: game %d finished tied", ErrInvalidInput, g.ID)
	}

	homeDelta := standings.Delta{GoalsFor: result.HomeScore, GoalsAgainst: result.AwayScore}
	awayDelta := standings.Delta{GoalsFor: result.AwayScore, GoalsAgainst: result.HomeScore}

	extraTime := result.Overtime || result.Shootout
	if result.HomeWon() {
		homeDelta.Wins, homeDelta.Points = 1, 2
		if extraTime {
			awayDelta.OTLosses, awayDelta.Points = 1, 1
		} else {
			awayDelta.Losses = 1
		}
	} else {
		awayDelta.Wins, awayDelta.Points = 1, 2
		if extraTime {
			homeDelta.OTLosses, homeDelta.Points = 1, 1
		} else {
			homeDelta.Losses = 1
		}
	}

	if err := s.standingsRepo.Apply(ctx, g.SimulationID, g.Season, g.HomeTeamID, homeDelta); err != nil {
		return fmt.Errorf("apply home standings: %w", err)
	}
	if err := s.standingsRepo.Apply(ctx, g.SimulationID, g.Season, g.AwayTeamID, awayDelta); err != nil {
		return fmt.Errorf("apply away standings: %w", err)
	}
	return nil
}

// TeamStanding pairs a points-table row with its team for display and
// seeding.
type TeamStanding struct {
	Team     team.Team
	Standing standings.Standing
}

// SeasonStandings returns all rows for the season ordered best first.
func (s *StandingsService) SeasonStandings(ctx context.Context, simulationID int64, season int) ([]TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.SeasonStandings")
	defer span.End()

	rows, err := s.standingsRepo.ListBySeason(ctx, simulationID, season)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	teams, err := s.teamRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	byID := make(map[int64]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	out := make([]TeamStanding, 0, len(rows))
	for _, row := range rows {
		t, ok := byID[row.TeamID]
		if !ok {
			return nil, fmt.Errorf("%w: standings row for unknown team %d", ErrNotFound, row.TeamID)
		}
		out = append(out, TeamStanding{Team: t, Standing: row})
	}
	sortStandings(out)
	return out, nil
}

// ConferenceStandings splits the season table by conference, each side
// ordered best first.
func (s *StandingsService) ConferenceStandings(ctx context.Context, simulationID int64, season int) (east, west []TeamStanding, err error) {
	all, err := s.SeasonStandings(ctx, simulationID, season)
	if err != nil {
		return nil, nil, err
	}
	for _, ts := range all {
		if ts.Team.Conference == team.ConferenceEast {
			east = append(east, ts)
		} else {
			west = append(west, ts)
		}
	}
	return east, west, nil
}

func sortStandings(rows []TeamStanding) {
	sort.SliceStable(rows, func(i, j int) bool {
		return standings.Better(rows[i].Standing, rows[j].Standing)
	})
}
