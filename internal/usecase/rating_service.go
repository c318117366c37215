package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/claudynachos/LHL/internal/domain/lineup"
	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/team"
)

// Ice-time shares per forward line and defense pair. The starting
// goalie carries a fixed 0.3 weight.
var (
	forwardLineTime = []float64{0.35, 0.30, 0.20, 0.15}
	defenseLineTime = []float64{0.45, 0.35, 0.20}
)

// Attribute weights per line, ordered offense, defense, physical. Top
// lines skew offensive, bottom lines defensive.
var (
	forwardWeights = [][3]float64{
		{0.50, 0.30, 0.20},
		{0.40, 0.40, 0.20},
		{0.25, 0.50, 0.25},
		{0.20, 0.40, 0.40},
	}
	defenseWeights = [][3]float64{
		{0.40, 0.30, 0.30},
		{0.30, 0.40, 0.30},
		{0.10, 0.50, 0.40},
	}
)

const goalieTimeWeight = 0.3

// RatingService computes ice-time-weighted team ratings from lineup
// assignments.
type RatingService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
}

func NewRatingService(teamRepo team.Repository, playerRepo player.Repository, lineupRepo lineup.Repository) *RatingService {
	return &RatingService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
	}
}

// TeamOverall rates a team from its dressed lineup: each line's
// attribute-weighted rating scaled by ice time, a leadership
// multiplier per line, the starting goalie at fixed weight and a coach
// modifier worth at most five percent either way. Returns nil when the
// team has no lineup.
func (s *RatingService) TeamOverall(ctx context.Context, teamID int64) (*float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.TeamOverall")
	defer span.End()

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	assignments, err := s.lineupRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list lineup: %w", err)
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	players := make(map[int64]player.Player, len(assignments))
	for _, a := range assignments {
		if _, ok := players[a.PlayerID]; ok {
			continue
		}
		p, found, err := s.playerRepo.GetByID(ctx, a.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get player %d: %w", a.PlayerID, err)
		}
		if found {
			players[a.PlayerID] = p
		}
	}

	lineFor := func(lineType string, lineNumber int) []player.Player {
		var out []player.Player
		for _, a := range assignments {
			if a.LineType != lineType || a.LineNumber != lineNumber {
				continue
			}
			if p, ok := players[a.PlayerID]; ok {
				out = append(out, p)
			}
		}
		return out
	}

	var totalRating, weightSum float64
	for line := 1; line <= lineup.ForwardLines; line++ {
		group := lineFor(lineup.LineTypeForward, line)
		if len(group) == 0 {
			continue
		}
		totalRating += lineRating(group, forwardWeights[line-1]) * forwardLineTime[line-1]
		weightSum += forwardLineTime[line-1]
	}
	for pair := 1; pair <= lineup.DefensePairs; pair++ {
		group := lineFor(lineup.LineTypeDefense, pair)
		if len(group) == 0 {
			continue
		}
		totalRating += lineRating(group, defenseWeights[pair-1]) * defenseLineTime[pair-1]
		weightSum += defenseLineTime[pair-1]
	}
	if starters := lineFor(lineup.LineTypeGoalie, 1); len(starters) > 0 {
		g := starters[0]
		goalieRating := float64(g.Off+g.Def+g.Phys) / 3.0
		totalRating += goalieRating * goalieTimeWeight
		weightSum += goalieTimeWeight
	}

	if weightSum == 0 {
		return nil, nil
	}
	rating := totalRating / weightSum

	if t.HasCoach() {
		coach, found, err := s.playerRepo.GetCoachByID(ctx, *t.CoachID)
		if err != nil {
			return nil, fmt.Errorf("get coach: %w", err)
		}
		if found {
			rating *= 1.0 + (float64(coach.Rating)-75.0)/500.0
		}
	}

	rounded := math.Round(rating*10) / 10
	return &rounded, nil
}

// lineRating averages the line's attribute-weighted player ratings and
// applies a small leadership multiplier around the 75 baseline.
func lineRating(group []player.Player, weights [3]float64) float64 {
	if len(group) == 0 {
		return 50.0
	}
	var total, leadership float64
	for _, p := range group {
		total += float64(p.Off)*weights[0] + float64(p.Def)*weights[1] + float64(p.Phys)*weights[2]
		leadership += float64(p.Lead)
	}
	avgLeadership := leadership / float64(len(group))
	multiplier := 1.0 + (avgLeadership-75.0)/1000.0
	return total / float64(len(group)) * multiplier
}
