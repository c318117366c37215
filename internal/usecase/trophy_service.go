package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/domain/series"
	"github.com/claudynachos/LHL/internal/domain/simulation"
	"github.com/claudynachos/LHL/internal/domain/trophy"
	"github.com/claudynachos/LHL/internal/platform/logging"
)

// TrophyService hands out end-of-season awards from box-score totals.
type TrophyService struct {
	simRepo    simulation.Repository
	playerRepo player.Repository
	gameRepo   game.Repository
	seriesRepo series.Repository
	standings  *StandingsService
	trophyRepo trophy.Repository
	logger     *logging.Logger
}

func NewTrophyService(
	simRepo simulation.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	seriesRepo series.Repository,
	standings *StandingsService,
	trophyRepo trophy.Repository,
	logger *logging.Logger,
) *TrophyService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TrophyService{
		simRepo:    simRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		seriesRepo: seriesRepo,
		standings:  standings,
		trophyRepo: trophyRepo,
		logger:     logger,
	}
}

// seasonTotals is one player's accumulated box-score line for a season
// segment.
type seasonTotals struct {
	playerID     int64
	games        int
	goals        int
	assists      int
	saves        int
	shotsAgainst int
}

func (t seasonTotals) points() int { return t.goals + t.assists }

func (t seasonTotals) savePct() float64 {
	if t.shotsAgainst == 0 {
		return 0
	}
	return float64(t.saves) / float64(t.shotsAgainst)
}

// AwardTrophies grants the full award slate for a finished season.
// All-or-nothing and idempotent: a season with any trophy row already
// on record is skipped.
func (s *TrophyService) AwardTrophies(ctx context.Context, simulationID int64, season int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrophyService.AwardTrophies")
	defer span.End()

	awarded, err := s.trophyRepo.ExistsForSeason(ctx, simulationID, season)
	if err != nil {
		return fmt.Errorf("check existing trophies: %w", err)
	}
	if awarded {
		return nil
	}

	sim, exists, err := s.simRepo.GetByID(ctx, simulationID)
	if err != nil {
		return fmt.Errorf("get simulation: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: simulation=%d", ErrNotFound, simulationID)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	byID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	regular, err := s.collectTotals(ctx, simulationID, season, false)
	if err != nil {
		return err
	}
	playoff, err := s.collectTotals(ctx, simulationID, season, true)
	if err != nil {
		return err
	}

	// Award floors scale with the schedule so short seasons still
	// produce winners.
	minGames := GamesPerTeamTarget(sim.NumTeams) / 2

	var trophies []trophy.Trophy
	teamAward := func(name string, teamID int64) {
		id := teamID
		trophies = append(trophies, trophy.Trophy{
			SimulationID: simulationID,
			Season:       season,
			Name:         name,
			Kind:         trophy.KindTeam,
			TeamID:       &id,
		})
	}
	playerAward := func(name string, playerID int64) {
		id := playerID
		trophies = append(trophies, trophy.Trophy{
			SimulationID: simulationID,
			Season:       season,
			Name:         name,
			Kind:         trophy.KindIndividual,
			PlayerID:     &id,
		})
	}

	if champion, ok, err := s.championTeam(ctx, simulationID, season); err != nil {
		return err
	} else if ok {
		teamAward(trophy.NameChampionsCup, champion)
	}

	if table, err := s.standings.SeasonStandings(ctx, simulationID, season); err != nil {
		return err
	} else if len(table) > 0 {
		teamAward(trophy.NameBestRecord, table[0].Team.ID)
	}

	isSkater := func(t seasonTotals) bool {
		p, ok := byID[t.playerID]
		return ok && p.Position != player.PositionGoalie
	}
	isDefense := func(t seasonTotals) bool {
		p, ok := byID[t.playerID]
		return ok && p.IsDefense()
	}
	isGoalie := func(t seasonTotals) bool {
		p, ok := byID[t.playerID]
		return ok && p.Position == player.PositionGoalie
	}

	if winner, ok := bestTotals(regular, func(t seasonTotals) bool {
		return isSkater(t) && t.games >= minGames
	}, func(a, b seasonTotals) bool { return a.points() > b.points() }); ok {
		playerAward(trophy.NameMostPoints, winner.playerID)
	}
	if winner, ok := bestTotals(regular, func(t seasonTotals) bool {
		return isSkater(t) && t.games >= minGames
	}, func(a, b seasonTotals) bool { return a.goals > b.goals }); ok {
		playerAward(trophy.NameMostGoals, winner.playerID)
	}

	// MVP goes to the top skater by points; the top goalie only takes
	// it when no skater qualifies.
	if winner, ok := bestTotals(regular, func(t seasonTotals) bool {
		return isSkater(t) && t.games >= minGames
	}, func(a, b seasonTotals) bool { return a.points() > b.points() }); ok {
		playerAward(trophy.NameMVP, winner.playerID)
	} else if winner, ok := bestTotals(regular, func(t seasonTotals) bool {
		return isGoalie(t) && t.games >= minGames && t.shotsAgainst > 0
	}, func(a, b seasonTotals) bool { return a.savePct() > b.savePct() }); ok {
		playerAward(trophy.NameMVP, winner.playerID)
	}

	if winner, ok := bestTotals(regular, func(t seasonTotals) bool {
		return isDefense(t) && t.games >= minGames
	}, func(a, b seasonTotals) bool { return a.points() > b.points() }); ok {
		playerAward(trophy.NameBestDefenseman, winner.playerID)
	}

	if winner, ok := bestTotals(regular, func(t seasonTotals) bool {
		return isGoalie(t) && t.games >= minGames && t.shotsAgainst > 0
	}, func(a, b seasonTotals) bool { return a.savePct() > b.savePct() }); ok {
		playerAward(trophy.NameBestGoaltender, winner.playerID)
	}

	if winner, ok := bestTotals(playoff, func(t seasonTotals) bool {
		return isSkater(t)
	}, func(a, b seasonTotals) bool { return a.points() > b.points() }); ok {
		playerAward(trophy.NamePlayoffMVP, winner.playerID)
	}

	if len(trophies) == 0 {
		return nil
	}
	if err := s.trophyRepo.CreateBatch(ctx, trophies); err != nil {
		return fmt.Errorf("create trophies: %w", err)
	}

	s.logger.InfoContext(ctx, "trophies awarded",
		"simulation_id", simulationID,
		"season", season,
		"count", len(trophies),
	)
	return nil
}

// SeasonTrophies lists a season's awards.
func (s *TrophyService) SeasonTrophies(ctx context.Context, simulationID int64, season int) ([]trophy.Trophy, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrophyService.SeasonTrophies")
	defer span.End()
	return s.trophyRepo.ListBySeason(ctx, simulationID, season)
}

func (s *TrophyService) collectTotals(ctx context.Context, simulationID int64, season int, playoff bool) ([]seasonTotals, error) {
	stats, err := s.gameRepo.ListStatsBySeason(ctx, simulationID, season, playoff)
	if err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	byPlayer := make(map[int64]*seasonTotals)
	gamesSeen := make(map[int64]map[int64]bool)
	for _, stat := range stats {
		t, ok := byPlayer[stat.PlayerID]
		if !ok {
			t = &seasonTotals{playerID: stat.PlayerID}
			byPlayer[stat.PlayerID] = t
			gamesSeen[stat.PlayerID] = make(map[int64]bool)
		}
		if !gamesSeen[stat.PlayerID][stat.GameID] {
			gamesSeen[stat.PlayerID][stat.GameID] = true
			t.games++
		}
		t.goals += stat.Line.Goals
		t.assists += stat.Line.Assists
		t.saves += stat.Line.Saves
		t.shotsAgainst += stat.Line.ShotsAgainst
	}
	out := make([]seasonTotals, 0, len(byPlayer))
	for _, t := range byPlayer {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].playerID < out[j].playerID })
	return out, nil
}

// championTeam resolves the playoff champion: the winner of the
// highest completed round.
func (s *TrophyService) championTeam(ctx context.Context, simulationID int64, season int) (int64, bool, error) {
	all, err := s.seriesRepo.ListBySeason(ctx, simulationID, season)
	if err != nil {
		return 0, false, fmt.Errorf("list series: %w", err)
	}
	var final *series.Series
	for i := range all {
		sr := &all[i]
		if !sr.Complete() || sr.WinnerID == nil {
			continue
		}
		if final == nil || sr.Round > final.Round {
			final = sr
		}
	}
	if final == nil {
		return 0, false, nil
	}
	return *final.WinnerID, true, nil
}

// bestTotals returns the single best row among those passing the
// filter. Ties break toward the lower player id so repeated runs pick
// the same winner.
func bestTotals(rows []seasonTotals, filter func(seasonTotals) bool, better func(a, b seasonTotals) bool) (seasonTotals, bool) {
	var best seasonTotals
	found := false
	for _, row := range rows {
		if !filter(row) {
			continue
		}
		if !found || better(row, best) {
			best = row
			found = true
		}
	}
	return best, found
}
