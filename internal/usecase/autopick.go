package usecase

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/roster"
	"github.com/claudynachos/LHL/internal/domain/team"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// PickChoice is the auto picker's decision: a player or a coach.
type PickChoice interface {
	pickChoice()
}

type PlayerPick struct {
	PlayerID int64
}

type CoachPick struct {
	CoachID int64
}

func (PlayerPick) pickChoice() {}
func (CoachPick) pickChoice()  {}

// Candidate pool relaxation stages, applied in order until one yields
// a pick. The draft must always make forward progress, so the last
// stage ignores roster capacity entirely.
const (
	stageCapacityFiltered = "capacity-filtered"
	stagePositionRelaxed  = "position-relaxed"
	stageFullyRelaxed     = "fully-relaxed"
)

// eliteDelta is the per-round overall band, below the best available
// player, that early rounds draw candidates from.
var eliteDelta = map[int]float64{1: 3, 2: 4, 3: 5}

const (
	needPerDeficitForward = 3.0
	needPerDeficitDefense = 5.0
	// trailingPenalty discourages passing on a clearly superior
	// player for a positional-need pick.
	trailingPenalty       = 10.0
	trailingThreshold     = 4.0
	balanceBonusPerPoint  = 0.25
)

// AutoPicker selects the best available player or coach for an
// AI-controlled team's draft turn.
type AutoPicker struct {
	playerRepo player.Repository
	rosterRepo roster.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
	// randIntn is swappable so tests can pin the early-round draw.
	randIntn func(n int) int
}

func NewAutoPicker(playerRepo player.Repository, rosterRepo roster.Repository, teamRepo team.Repository, logger *logging.Logger) *AutoPicker {
	if logger == nil {
		logger = logging.Default()
	}
	return &AutoPicker{
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		teamRepo:   teamRepo,
		logger:     logger,
		randIntn:   rand.Intn,
	}
}

// ChooseBestOption returns a usable pick for the team as long as any
// draftable player or coach remains. ErrCatalogExhausted means the
// league is misconfigured (too few catalog entries for the draft).
func (p *AutoPicker) ChooseBestOption(ctx context.Context, t team.Team, round int) (PickChoice, error) {
	available, teamPlayers, err := p.loadDraftState(ctx, t)
	if err != nil {
		return nil, err
	}

	capacity := roster.NewCapacityModel(teamPlayers)

	bestPlayer, ok := p.choosePlayer(ctx, t, round, available, teamPlayers, capacity)
	if !ok {
		// No player anywhere; a coach can still save the pick when
		// the team needs one.
		if !t.HasCoach() {
			if coach, found, err := p.bestAvailableCoach(ctx, t.SimulationID); err != nil {
				return nil, err
			} else if found {
				return CoachPick{CoachID: coach.ID}, nil
			}
		}
		return nil, fmt.Errorf("%w: simulation=%d team=%d", ErrCatalogExhausted, t.SimulationID, t.ID)
	}

	if !t.HasCoach() {
		coach, found, err := p.bestAvailableCoach(ctx, t.SimulationID)
		if err != nil {
			return nil, err
		}
		// Coach rating and player overall share one scale; take
		// whichever is higher.
		if found && float64(coach.Rating) > bestPlayer.Overall() {
			return CoachPick{CoachID: coach.ID}, nil
		}
	}

	return PlayerPick{PlayerID: bestPlayer.ID}, nil
}

func (p *AutoPicker) loadDraftState(ctx context.Context, t team.Team) (available, teamPlayers []player.Player, err error) {
	catalog, err := p.playerRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list player catalog: %w", err)
	}

	assignments, err := p.rosterRepo.ListBySimulation(ctx, t.SimulationID)
	if err != nil {
		return nil, nil, fmt.Errorf("list roster assignments: %w", err)
	}

	drafted := make(map[int64]int64, len(assignments))
	for _, a := range assignments {
		drafted[a.PlayerID] = a.TeamID
	}

	for _, pl := range catalog {
		teamID, taken := drafted[pl.ID]
		switch {
		case !taken:
			available = append(available, pl)
		case teamID == t.ID:
			teamPlayers = append(teamPlayers, pl)
		}
	}

	return available, teamPlayers, nil
}

func (p *AutoPicker) choosePlayer(
	ctx context.Context,
	t team.Team,
	round int,
	available, teamPlayers []player.Player,
	capacity roster.CapacityModel,
) (player.Player, bool) {
	if len(available) == 0 {
		return player.Player{}, false
	}

	if delta, early := eliteDelta[round]; early {
		return p.chooseEarlyRound(ctx, t, round, delta, available, capacity), true
	}
	return p.chooseNeedWeighted(ctx, t, round, available, teamPlayers, capacity), true
}

// chooseEarlyRound picks uniformly at random among near-elite players
// at positions that still have room. Variance here keeps drafts from
// being identical while the very best talent still goes early.
func (p *AutoPicker) chooseEarlyRound(
	ctx context.Context,
	t team.Team,
	round int,
	delta float64,
	available []player.Player,
	capacity roster.CapacityModel,
) player.Player {
	best := maxOverall(available)

	candidates := make([]player.Player, 0, len(available))
	for _, pl := range available {
		if capacity.AtCapacity(pl.Position) {
			continue
		}
		if pl.Overall() >= best-delta {
			candidates = append(candidates, pl)
		}
	}

	if len(candidates) == 0 {
		p.logger.DebugContext(ctx, "auto pick pool relaxed",
			"stage", stagePositionRelaxed,
			"team_id", t.ID,
			"round", round,
		)
		return bestByOverall(available)
	}

	return candidates[p.randIntn(len(candidates))]
}

// chooseNeedWeighted scores every capacity-eligible player by overall
// plus positional-need and attribute-balance bonuses, falling back to
// the best player regardless of position if filtering empties the
// pool.
func (p *AutoPicker) chooseNeedWeighted(
	ctx context.Context,
	t team.Team,
	round int,
	available, teamPlayers []player.Player,
	capacity roster.CapacityModel,
) player.Player {
	eligible := make([]player.Player, 0, len(available))
	for _, pl := range available {
		if !capacity.AtCapacity(pl.Position) {
			eligible = append(eligible, pl)
		}
	}

	if len(eligible) == 0 {
		// Capacity would deadlock the draft; take the best player
		// anywhere on the board.
		p.logger.DebugContext(ctx, "auto pick pool relaxed",
			"stage", stageFullyRelaxed,
			"team_id", t.ID,
			"round", round,
		)
		return bestByOverall(available)
	}
	if len(eligible) < len(available) {
		p.logger.DebugContext(ctx, "auto pick pool narrowed",
			"stage", stageCapacityFiltered,
			"team_id", t.ID,
			"round", round,
			"eligible", len(eligible),
			"available", len(available),
		)
	}

	best := maxOverall(available)
	roundMult := needRoundMultiplier(round)
	avgOff, avgDef, avgPhys := attributeAverages(teamPlayers)
	weakest := weakestDimension(avgOff, avgDef, avgPhys)

	var (
		picked    player.Player
		bestScore = -1e9
	)
	for _, pl := range eligible {
		overall := pl.Overall()

		perDeficit := needPerDeficitForward
		if pl.IsDefense() {
			perDeficit = needPerDeficitDefense
		}
		score := overall + float64(capacity.Deficit(pl.Position))*perDeficit*roundMult
		score += balanceBonus(pl, weakest, avgOff, avgDef, avgPhys)
		if overall < best-trailingThreshold {
			score -= trailingPenalty
		}

		if score > bestScore {
			bestScore = score
			picked = pl
		}
	}

	return picked
}

func (p *AutoPicker) bestAvailableCoach(ctx context.Context, simulationID int64) (player.Coach, bool, error) {
	coaches, err := p.playerRepo.ListCoaches(ctx)
	if err != nil {
		return player.Coach{}, false, fmt.Errorf("list coach catalog: %w", err)
	}

	taken, err := p.takenCoachIDs(ctx, simulationID)
	if err != nil {
		return player.Coach{}, false, err
	}

	var (
		best  player.Coach
		found bool
	)
	for _, c := range coaches {
		if _, held := taken[c.ID]; held {
			continue
		}
		if !found || c.Rating > best.Rating {
			best = c
			found = true
		}
	}

	return best, found, nil
}

func (p *AutoPicker) takenCoachIDs(ctx context.Context, simulationID int64) (map[int64]struct{}, error) {
	teams, err := p.teamRepo.ListBySimulation(ctx, simulationID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	taken := make(map[int64]struct{}, len(teams))
	for _, t := range teams {
		if t.CoachID != nil {
			taken[*t.CoachID] = struct{}{}
		}
	}
	return taken, nil
}

func needRoundMultiplier(round int) float64 {
	switch {
	case round <= 6:
		return 0.5
	case round <= 12:
		return 1.0
	default:
		return 2.0
	}
}

func maxOverall(players []player.Player) float64 {
	best := 0.0
	for _, pl := range players {
		if ov := pl.Overall(); ov > best {
			best = ov
		}
	}
	return best
}

func bestByOverall(players []player.Player) player.Player {
	best := players[0]
	for _, pl := range players[1:] {
		if pl.Overall() > best.Overall() {
			best = pl
		}
	}
	return best
}

func attributeAverages(players []player.Player) (off, def, phys float64) {
	if len(players) == 0 {
		return 0, 0, 0
	}
	for _, pl := range players {
		off += float64(pl.Off)
		def += float64(pl.Def)
		phys += float64(pl.Phys)
	}
	n := float64(len(players))
	return off / n, def / n, phys / n
}

const (
	dimOff  = "off"
	dimDef  = "def"
	dimPhys = "phys"
)

func weakestDimension(avgOff, avgDef, avgPhys float64) string {
	weakest := dimOff
	low := avgOff
	if avgDef < low {
		weakest, low = dimDef, avgDef
	}
	if avgPhys < low {
		weakest = dimPhys
	}
	return weakest
}

// balanceBonus rewards players who raise the team's weakest attribute
// dimension above its current average.
func balanceBonus(pl player.Player, weakest string, avgOff, avgDef, avgPhys float64) float64 {
	var stat, avg float64
	switch weakest {
	case dimOff:
		stat, avg = float64(pl.Off), avgOff
	case dimDef:
		stat, avg = float64(pl.Def), avgDef
	default:
		stat, avg = float64(pl.Phys), avgPhys
	}
	if stat <= avg {
		return 0
	}
	return (stat - avg) * balanceBonusPerPoint
}
