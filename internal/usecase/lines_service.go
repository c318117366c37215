package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/claudynachos/LHL/internal/domain/lineup"
	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/roster"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// lineupPoolSize caps the workers used when populating every team's
// lineup after the draft.
const lineupPoolSize = 8

// LinesService assigns rostered players to forward lines, defense
// pairs and goalie slots, and builds the sheets handed to the game
// engine.
type LinesService struct {
	teamRepo   team.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	logger     *logging.Logger
}

func NewLinesService(teamRepo team.Repository, rosterRepo roster.Repository, playerRepo player.Repository, lineupRepo lineup.Repository, logger *logging.Logger) *LinesService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LinesService{
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		logger:     logger,
	}
}

// AutoPopulateLines fills a team's lineup from its roster, best
// overall first at every position: line one gets the best center, best
// left wing and best right wing, and so on down. A team that already
// has a lineup is left alone.
func (s *LinesService) AutoPopulateLines(ctx context.Context, teamID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinesService.AutoPopulateLines")
	defer span.End()

	existing, err := s.lineupRepo.CountByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("count lineup: %w", err)
	}
	if existing > 0 {
		return nil
	}

	players, err := s.teamPlayers(ctx, teamID)
	if err != nil {
		return err
	}

	assignments := buildLineAssignments(teamID, players)
	if err := s.lineupRepo.CreateBatch(ctx, assignments); err != nil {
		return fmt.Errorf("create lineup: %w", err)
	}

	s.logger.DebugContext(ctx, "lineup populated",
		"team_id", teamID,
		"assignments", len(assignments),
	)
	return nil
}

// AutoPopulateAll populates every team's lineup for a simulation,
// fanning the per-team work out over a worker pool.
func (s *LinesService) AutoPopulateAll(ctx context.Context, simulationID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinesService.AutoPopulateAll")
	defer span.End()

	teams, err := s.teamRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	pool, err := ants.NewPool(lineupPoolSize)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, t := range teams {
		teamID := t.ID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := s.AutoPopulateLines(ctx, teamID); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("populate lines for team %d: %w", teamID, err)
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			return fmt.Errorf("submit lineup task: %w", submitErr)
		}
	}
	wg.Wait()
	return firstErr
}

// BuildTeamSheet assembles the engine-facing view of a team: resolved
// lineup, coach and effective play style. Populates the lineup first
// when the team has none.
func (s *LinesService) BuildTeamSheet(ctx context.Context, teamID int64) (TeamSheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinesService.BuildTeamSheet")
	defer span.End()

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamSheet{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamSheet{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	if err := s.AutoPopulateLines(ctx, teamID); err != nil {
		return TeamSheet{}, err
	}
	assignments, err := s.lineupRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return TeamSheet{}, fmt.Errorf("list lineup: %w", err)
	}

	var coach *player.Coach
	if t.HasCoach() {
		c, found, err := s.playerRepo.GetCoachByID(ctx, *t.CoachID)
		if err != nil {
			return TeamSheet{}, fmt.Errorf("get coach: %w", err)
		}
		if found {
			coach = &c
		}
	}

	slots := make([]LineSlot, 0, len(assignments))
	for _, a := range assignments {
		p, found, err := s.playerRepo.GetByID(ctx, a.PlayerID)
		if err != nil {
			return TeamSheet{}, fmt.Errorf("get player %d: %w", a.PlayerID, err)
		}
		if !found {
			return TeamSheet{}, fmt.Errorf("%w: lineup references unknown player %d", ErrNotFound, a.PlayerID)
		}
		slots = append(slots, LineSlot{
			LineType:   a.LineType,
			LineNumber: a.LineNumber,
			Position:   a.Position,
			Player:     p,
		})
	}

	return TeamSheet{
		TeamID:    t.ID,
		Name:      t.Name,
		City:      t.City,
		PlayStyle: effectivePlayStyle(t, coach),
		Coach:     coach,
		Slots:     slots,
	}, nil
}

func (s *LinesService) teamPlayers(ctx context.Context, teamID int64) ([]player.Player, error) {
	assignments, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	players := make([]player.Player, 0, len(assignments))
	for _, a := range assignments {
		p, found, err := s.playerRepo.GetByID(ctx, a.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get player %d: %w", a.PlayerID, err)
		}
		if !found {
			return nil, fmt.Errorf("%w: roster references unknown player %d", ErrNotFound, a.PlayerID)
		}
		players = append(players, p)
	}
	return players, nil
}

// buildLineAssignments distributes players to slots by position, best
// overall first. Slots a short roster cannot fill stay empty.
func buildLineAssignments(teamID int64, players []player.Player) []lineup.Assignment {
	byPosition := make(map[string][]player.Player)
	for _, p := range players {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}
	for pos := range byPosition {
		group := byPosition[pos]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Overall() > group[j].Overall()
		})
	}

	take := func(pos string, index int) (player.Player, bool) {
		group := byPosition[pos]
		if index >= len(group) {
			return player.Player{}, false
		}
		return group[index], true
	}

	var assignments []lineup.Assignment
	add := func(lineType string, lineNumber int, pos string, index int) {
		p, ok := take(pos, index)
		if !ok {
			return
		}
		assignments = append(assignments, lineup.Assignment{
			TeamID:     teamID,
			PlayerID:   p.ID,
			LineType:   lineType,
			LineNumber: lineNumber,
			Position:   pos,
		})
	}

	for line := 1; line <= lineup.ForwardLines; line++ {
		add(lineup.LineTypeForward, line, player.PositionCenter, line-1)
		add(lineup.LineTypeForward, line, player.PositionLeftWing, line-1)
		add(lineup.LineTypeForward, line, player.PositionRightWing, line-1)
	}
	for pair := 1; pair <= lineup.DefensePairs; pair++ {
		add(lineup.LineTypeDefense, pair, player.PositionLeftDefense, pair-1)
		add(lineup.LineTypeDefense, pair, player.PositionRightDefense, pair-1)
	}
	for slot := 1; slot <= lineup.GoalieSlots; slot++ {
		add(lineup.LineTypeGoalie, slot, player.PositionGoalie, slot-1)
	}
	return assignments
}

// effectivePlayStyle resolves "auto" through the coach's type, falling
// back to possession when the team has no coach or the coach's type is
// not a known style.
func effectivePlayStyle(t team.Team, coach *player.Coach) string {
	if t.PlayStyle != "" && t.PlayStyle != team.PlayStyleAuto {
		return t.PlayStyle
	}
	if coach != nil {
		switch coach.CoachType {
		case team.PlayStylePossession, team.PlayStyleTrap, team.PlayStyleDumpChase,
			team.PlayStyleRush, team.PlayStyleShootCrash:
			return coach.CoachType
		}
	}
	return team.PlayStylePossession
}
