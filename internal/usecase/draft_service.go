package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/roster"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// TotalDraftRounds is the roster target plus one trailing coach round.
const TotalDraftRounds = roster.TargetSize + 1

// LotteryOrder permutes teams deterministically from a seed. The same
// seed always yields the same round-one order, which is what makes
// draft replays and tests reproducible. Input order must itself be
// stable (teams sorted by id).
func LotteryOrder(teams []team.Team, seed int64) []team.Team {
	out := make([]team.Team, len(teams))
	copy(out, teams)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// PickInfo describes the pick the draft cursor currently points at.
type PickInfo struct {
	Round      int
	Pick       int // 1-based overall pick number
	TotalPicks int
	TeamID     int64
	TeamName   string
	IsUserTeam bool
	// MustPickCoach is set in the final round for teams that still
	// lack a coach; the pick cannot resolve to a player.
	MustPickCoach bool
}

type MakePickInput struct {
	PlayerID *int64
	CoachID  *int64
}

type PickResult struct {
	Pick          PickInfo
	PlayerID      *int64
	CoachID       *int64
	NextPick      *PickInfo
	DraftComplete bool
}

// Collaborators invoked once when the last pick lands.
type linesPopulator interface {
	AutoPopulateAll(ctx context.Context, simulationID int64) error
}

type scheduleGenerator interface {
	GenerateSeasonSchedule(ctx context.Context, simulationID int64, season int) (int, error)
}

type standingsInitializer interface {
	InitializeStandings(ctx context.Context, simulationID int64, season int) error
}

// DraftService sequences the lottery-seeded snake draft and commits
// picks atomically.
type DraftService struct {
	simRepo    simulation.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	picker     *AutoPicker
	lines      linesPopulator
	schedule   scheduleGenerator
	standings  standingsInitializer
	logger     *logging.Logger
	now        func() time.Time
}

func NewDraftService(
	simRepo simulation.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	picker *AutoPicker,
	lines linesPopulator,
	schedule scheduleGenerator,
	standings standingsInitializer,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftService{
		simRepo:    simRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		picker:     picker,
		lines:      lines,
		schedule:   schedule,
		standings:  standings,
		logger:     logger,
		now:        time.Now,
	}
}

// CurrentPickInfo returns the pending pick, or nil when every pick has
// been made.
func (s *DraftService) CurrentPickInfo(ctx context.Context, simulationID int64) (*PickInfo, error) {
	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	return s.pickInfoAt(ctx, sim, sim.DraftPickCursor)
}

// pickInfoAt derives (round, team) for an arbitrary cursor value.
func (s *DraftService) pickInfoAt(ctx context.Context, sim simulation.Simulation, cursor int) (*PickInfo, error) {
	teams, err := s.teamRepo.ListBySimulation(ctx, sim.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: simulation %d has no teams", ErrNotFound, sim.ID)
	}

	numTeams := len(teams)
	totalPicks := numTeams * TotalDraftRounds
	if cursor >= totalPicks {
		return nil, nil
	}

	order := LotteryOrder(teams, sim.ID)

	round := cursor/numTeams + 1
	offset := cursor % numTeams
	if round%2 == 0 {
		// Even rounds snake back through the lottery order.
		offset = numTeams - 1 - offset
	}
	picked := order[offset]

	info := &PickInfo{
		Round:      round,
		Pick:       cursor + 1,
		TotalPicks: totalPicks,
		TeamID:     picked.ID,
		TeamName:   picked.Name,
		IsUserTeam: picked.UserControlled,
	}
	if round == TotalDraftRounds && !picked.HasCoach() {
		info.MustPickCoach = true
	}
	return info, nil
}

// MakePick validates and commits one draft pick as a single atomic
// step: the roster or coach write, then the cursor advance. A failure
// at any point leaves the draft exactly where it was.
func (s *DraftService) MakePick(ctx context.Context, simulationID int64, input MakePickInput) (PickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MakePick")
	defer span.End()

	sim, err := s.getSimulation(ctx, simulationID)
	if err != nil {
		return PickResult{}, err
	}
	if sim.Status != simulation.StatusDrafting {
		return PickResult{}, fmt.Errorf("%w: simulation %d is not drafting (status=%s)", ErrInvalidInput, sim.ID, sim.Status)
	}

	info, err := s.pickInfoAt(ctx, sim, sim.DraftPickCursor)
	if err != nil {
		return PickResult{}, err
	}
	if info == nil {
		return PickResult{}, ErrDraftComplete
	}

	picked, err := s.resolveChoice(ctx, sim, *info, input)
	if err != nil {
		return PickResult{}, err
	}

	result := PickResult{Pick: *info}
	var undo func()

	switch choice := picked.(type) {
	case CoachPick:
		if err := s.commitCoach(ctx, sim, *info, choice.CoachID); err != nil {
			return PickResult{}, err
		}
		result.CoachID = &choice.CoachID
		// Coach links are released only with the simulation, so a
		// failed cursor advance below has nothing to unwind beyond
		// reporting the stale cursor.
	case PlayerPick:
		assignment, err := s.commitPlayer(ctx, sim, *info, choice.PlayerID, input.PlayerID != nil)
		if err != nil {
			return PickResult{}, err
		}
		result.PlayerID = &choice.PlayerID
		undo = func() {
			if delErr := s.rosterRepo.DeleteByID(ctx, assignment.ID); delErr != nil {
				s.logger.ErrorContext(ctx, "rollback of roster assignment failed",
					"assignment_id", assignment.ID, "error", delErr)
			}
		}
	default:
		return PickResult{}, fmt.Errorf("%w: no pick resolved", ErrInvalidInput)
	}

	if err := s.simRepo.AdvanceDraftCursor(ctx, sim.ID, sim.DraftPickCursor, sim.DraftPickCursor+1); err != nil {
		if undo != nil {
			undo()
		}
		return PickResult{}, fmt.Errorf("%w: %v", ErrStaleCursor, err)
	}

	next, err := s.pickInfoAt(ctx, sim, sim.DraftPickCursor+1)
	if err != nil {
		return PickResult{}, err
	}
	result.NextPick = next

	if next == nil {
		result.DraftComplete = true
		if err := s.completeDraft(ctx, sim); err != nil {
			return PickResult{}, err
		}
	}

	return result, nil
}

// resolveChoice turns the caller's (possibly empty) input into a
// validated PickChoice.
func (s *DraftService) resolveChoice(ctx context.Context, sim simulation.Simulation, info PickInfo, input MakePickInput) (PickChoice, error) {
	if info.MustPickCoach && input.PlayerID != nil {
		return nil, fmt.Errorf("%w: coach selection mandatory for last pick", ErrInvalidInput)
	}

	switch {
	case input.CoachID != nil:
		return CoachPick{CoachID: *input.CoachID}, nil
	case input.PlayerID != nil:
		return PlayerPick{PlayerID: *input.PlayerID}, nil
	}

	if info.MustPickCoach {
		// The last round must yield a coach; skip the player/coach
		// competition and take the best coach on the board.
		coach, found, err := s.picker.bestAvailableCoach(ctx, sim.ID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: coach selection mandatory for last pick", ErrInvalidInput)
		}
		return CoachPick{CoachID: coach.ID}, nil
	}

	// Auto path: delegate to the heuristic.
	t, exists, err := s.teamRepo.GetByID(ctx, info.TeamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%d", ErrNotFound, info.TeamID)
	}

	return s.picker.ChooseBestOption(ctx, t, info.Round)
}

func (s *DraftService) commitCoach(ctx context.Context, sim simulation.Simulation, info PickInfo, coachID int64) error {
	if _, exists, err := s.playerRepo.GetCoachByID(ctx, coachID); err != nil {
		return fmt.Errorf("get coach: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: coach=%d", ErrNotFound, coachID)
	}

	// AssignCoach re-checks team-has-no-coach and coach-not-taken
	// under its own lock, so a concurrent pick cannot double-assign.
	if err := s.teamRepo.AssignCoach(ctx, info.TeamID, coachID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.InfoContext(ctx, "draft pick committed",
		"simulation_id", sim.ID,
		"round", info.Round,
		"pick", info.Pick,
		"team", info.TeamName,
		"coach_id", coachID,
	)
	return nil
}

func (s *DraftService) commitPlayer(ctx context.Context, sim simulation.Simulation, info PickInfo, playerID int64, explicit bool) (roster.Assignment, error) {
	pl, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return roster.Assignment{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	// Capacity is a hard rule for explicit picks only; the auto
	// picker is allowed to relax it to keep the draft moving.
	if explicit {
		teamPlayers, err := s.teamRoster(ctx, info.TeamID)
		if err != nil {
			return roster.Assignment{}, err
		}
		capacity := roster.NewCapacityModel(teamPlayers)
		if capacity.AtCapacity(pl.Position) {
			return roster.Assignment{}, fmt.Errorf("%w: position %s is at capacity", ErrInvalidInput, pl.Position)
		}
	}

	assignment, err := s.rosterRepo.Create(ctx, roster.Assignment{
		SimulationID:   sim.ID,
		TeamID:         info.TeamID,
		PlayerID:       playerID,
		SeasonAcquired: sim.CurrentSeason,
	})
	if err != nil {
		if errors.Is(err, roster.ErrDuplicatePlayer) {
			return roster.Assignment{}, fmt.Errorf("%w: player %d already drafted", ErrInvalidInput, playerID)
		}
		return roster.Assignment{}, fmt.Errorf("create roster assignment: %w", err)
	}

	s.logger.InfoContext(ctx, "draft pick committed",
		"simulation_id", sim.ID,
		"round", info.Round,
		"pick", info.Pick,
		"team", info.TeamName,
		"player_id", playerID,
	)
	return assignment, nil
}

// completeDraft runs the one-time transition out of drafting: season
// status, lineups for every team, the opening schedule and zeroed
// standings rows.
func (s *DraftService) completeDraft(ctx context.Context, sim simulation.Simulation) error {
	if err := s.simRepo.UpdateStatus(ctx, sim.ID, simulation.StatusSeason); err != nil {
		return fmt.Errorf("transition to season: %w", err)
	}

	if err := s.lines.AutoPopulateAll(ctx, sim.ID); err != nil {
		return fmt.Errorf("auto populate lines: %w", err)
	}
	if _, err := s.schedule.GenerateSeasonSchedule(ctx, sim.ID, sim.CurrentSeason); err != nil {
		return fmt.Errorf("generate opening schedule: %w", err)
	}
	if err := s.standings.InitializeStandings(ctx, sim.ID, sim.CurrentSeason); err != nil {
		return fmt.Errorf("initialize standings: %w", err)
	}

	s.logger.InfoContext(ctx, "draft complete", "simulation_id", sim.ID)
	return nil
}

func (s *DraftService) teamRoster(ctx context.Context, teamID int64) ([]player.Player, error) {
	assignments, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team roster: %w", err)
	}

	players := make([]player.Player, 0, len(assignments))
	for _, a := range assignments {
		pl, exists, err := s.playerRepo.GetByID(ctx, a.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get rostered player: %w", err)
		}
		if exists {
			players = append(players, pl)
		}
	}
	return players, nil
}

func (s *DraftService) getSimulation(ctx context.Context, simulationID int64) (simulation.Simulation, error) {
	sim, exists, err := s.simRepo.GetByID(ctx, simulationID)
	if err != nil {
		return simulation.Simulation{}, fmt.Errorf("get simulation: %w", err)
	}
	if !exists {
		return simulation.Simulation{}, fmt.Errorf("%w: simulation=%d", ErrNotFound, simulationID)
	}
	return sim, nil
}
