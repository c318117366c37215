package player

const (
	PositionCenter       = "C"
	PositionLeftWing     = "LW"
	PositionRightWing    = "RW"
	PositionLeftDefense  = "LD"
	PositionRightDefense = "RD"
	PositionGoalie       = "G"
)

// Positions lists every skater and goalie position in roster order.
var Positions = []string{
	PositionCenter,
	PositionLeftWing,
	PositionRightWing,
	PositionLeftDefense,
	PositionRightDefense,
	PositionGoalie,
}

func ValidPosition(value string) bool {
	for _, pos := range Positions {
		if pos == value {
			return true
		}
	}
	return false
}

// Player is a league-wide catalog entry shared across simulations.
// Immutable once created.
type Player struct {
	ID       int64
	Name     string
	Position string
	Off      int
	Def      int
	Phys     int
	Lead     int
	Const    int
	IsGoalie bool
}

// Overall is the reference rating formula. Coach ratings share this
// scale by convention, which is what lets the draft heuristic compare
// the two directly.
func (p Player) Overall() float64 {
	base := float64(p.Off)*1.1 + float64(p.Def)*0.95 + float64(p.Phys)*0.9
	return base * (float64(p.Lead) / 100) * (float64(p.Const) / 100) / 2.5
}

func (p Player) IsDefense() bool {
	return p.Position == PositionLeftDefense || p.Position == PositionRightDefense
}

// Coach is a league-wide catalog entry. At most one team per
// simulation may hold a given coach.
type Coach struct {
	ID        int64
	Name      string
	Rating    int
	CoachType string
}
