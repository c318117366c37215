// Package rated is an in-process game engine driven by lineup
// strength. It stands in for the external simulator in development
// and tests: deterministic for a fixed seed and always decisive.
package rated

import (
	"context"
	"math/rand"
	"sync"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/lineup"
	"github.com/claudynachos/LHL/internal/usecase"
)

const homeIceBonus = 1.5

type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

func (e *Engine) SimulateGame(ctx context.Context, home, away usecase.TeamSheet, isPlayoff bool) (game.Result, error) {
	if err := ctx.Err(); err != nil {
		return game.Result{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	homeStrength := sheetStrength(home) + homeIceBonus
	awayStrength := sheetStrength(away)

	homeGoals := e.goals(homeStrength, awayStrength)
	awayGoals := e.goals(awayStrength, homeStrength)

	result := game.Result{HomeScore: homeGoals, AwayScore: awayGoals}
	if result.Tied() {
		// Sudden death, odds tilted toward the stronger side.
		total := homeStrength + awayStrength
		if e.rng.Float64()*total < homeStrength {
			result.HomeScore++
		} else {
			result.AwayScore++
		}
		result.Overtime = true
		if !isPlayoff && e.rng.Float64() < 0.35 {
			result.Shootout = true
		}
	}

	result.HomeStats = e.boxScore(home, result.HomeScore, result.AwayScore)
	result.AwayStats = e.boxScore(away, result.AwayScore, result.HomeScore)
	return result, nil
}

// goals samples a score from attacking strength against defense, kept
// in a plausible hockey range.
func (e *Engine) goals(attack, defend float64) int {
	expected := 3.0 * attack / defend
	goals := 0
	for i := 0; i < 10; i++ {
		if e.rng.Float64()*10 < expected {
			goals++
		}
	}
	return goals
}

// boxScore fabricates per-player lines consistent with the final
// score: goals go to forwards weighted by offense, each with up to two
// assists, and the starting goalie wears the goals against.
func (e *Engine) boxScore(sheet usecase.TeamSheet, goalsFor, goalsAgainst int) []game.PlayerLine {
	lines := make([]game.PlayerLine, 0, len(sheet.Slots))
	index := make(map[int64]int, len(sheet.Slots))

	var skaters []int64
	var weights []float64
	var starter int64

	for _, slot := range sheet.Slots {
		line := game.PlayerLine{PlayerID: slot.Player.ID}
		switch slot.LineType {
		case lineup.LineTypeGoalie:
			if slot.LineNumber == 1 {
				starter = slot.Player.ID
			}
		default:
			line.Shots = e.rng.Intn(5)
			line.Hits = e.rng.Intn(4)
			line.Blocks = e.rng.Intn(3)
			line.Takeaways = e.rng.Intn(3)
			line.Giveaways = e.rng.Intn(3)
			line.TOISeconds = 600 + e.rng.Intn(900)
			skaters = append(skaters, slot.Player.ID)
			weights = append(weights, float64(slot.Player.Off)+1)
		}
		index[slot.Player.ID] = len(lines)
		lines = append(lines, line)
	}

	for g := 0; g < goalsFor && len(skaters) > 0; g++ {
		scorer := skaters[e.weightedPick(weights)]
		lines[index[scorer]].Goals++
		lines[index[scorer]].PlusMinus++
		for a := 0; a < e.rng.Intn(3); a++ {
			helper := skaters[e.weightedPick(weights)]
			if helper != scorer {
				lines[index[helper]].Assists++
			}
		}
	}

	if starterIdx, ok := index[starter]; ok && starter != 0 {
		shotsAgainst := goalsAgainst + 15 + e.rng.Intn(20)
		lines[starterIdx].ShotsAgainst = shotsAgainst
		lines[starterIdx].GoalsAgainst = goalsAgainst
		lines[starterIdx].Saves = shotsAgainst - goalsAgainst
		lines[starterIdx].TOISeconds = 3600
	}
	return lines
}

func (e *Engine) weightedPick(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := e.rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

// sheetStrength is a coarse ice-time-weighted rating, enough to make
// better rosters win more often.
func sheetStrength(sheet usecase.TeamSheet) float64 {
	var total, weight float64
	for _, slot := range sheet.Slots {
		var iceTime float64
		switch slot.LineType {
		case lineup.LineTypeForward:
			iceTime = []float64{0.35, 0.30, 0.20, 0.15}[slot.LineNumber-1]
		case lineup.LineTypeDefense:
			iceTime = []float64{0.45, 0.35, 0.20}[slot.LineNumber-1]
		case lineup.LineTypeGoalie:
			if slot.LineNumber != 1 {
				continue
			}
			iceTime = 0.5
		}
		total += slot.Player.Overall() * iceTime
		weight += iceTime
	}
	if weight == 0 {
		return 1
	}
	strength := total / weight
	if sheet.Coach != nil {
		strength *= 1.0 + (float64(sheet.Coach.Rating)-75.0)/500.0
	}
	if strength < 1 {
		return 1
	}
	return strength
}
