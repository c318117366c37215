package roster

import "github.com/claudynachos/LHL/internal/domain/player"

// Assignment links one catalog player to one team within one
// simulation. Created by a committed draft pick, never mutated,
// removed only when its simulation is deleted.
type Assignment struct {
	ID             int64
	SimulationID   int64
	TeamID         int64
	PlayerID       int64
	SeasonAcquired int
}

// TargetSize is the number of players each team drafts.
const TargetSize = 20

// positionTargets are the per-position roster targets the draft steers
// every team toward.
var positionTargets = map[string]int{
	player.PositionCenter:       4,
	player.PositionLeftWing:     4,
	player.PositionRightWing:    4,
	player.PositionLeftDefense:  3,
	player.PositionRightDefense: 3,
	player.PositionGoalie:       2,
}

// TargetFor returns the roster target for a position, zero for
// unknown positions.
func TargetFor(position string) int {
	return positionTargets[position]
}

// CapacityModel tracks a single team's per-position counts against the
// fixed targets.
type CapacityModel struct {
	counts map[string]int
}

func NewCapacityModel(players []player.Player) CapacityModel {
	counts := make(map[string]int, len(positionTargets))
	for _, p := range players {
		counts[p.Position]++
	}
	return CapacityModel{counts: counts}
}

func (m CapacityModel) Count(position string) int {
	return m.counts[position]
}

// Deficit is the number of open slots remaining at a position.
func (m CapacityModel) Deficit(position string) int {
	deficit := positionTargets[position] - m.counts[position]
	if deficit < 0 {
		return 0
	}
	return deficit
}

func (m CapacityModel) AtCapacity(position string) bool {
	target, known := positionTargets[position]
	if !known {
		return true
	}
	return m.counts[position] >= target
}

// OpenPositions reports whether any position still has a deficit.
func (m CapacityModel) OpenPositions() bool {
	for position := range positionTargets {
		if m.Deficit(position) > 0 {
			return true
		}
	}
	return false
}
