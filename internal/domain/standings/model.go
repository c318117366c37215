package standings

// Standing is one team's accumulated regular-season record for one
// simulation season. Points follow the 2/1/0 rule: two for any win,
// one for an overtime loss, none for a regulation loss.
type Standing struct {
	ID           int64
	SimulationID int64
	Season       int
	TeamID       int64
	Wins         int
	Losses       int
	OTLosses     int
	Points       int
	GoalsFor     int
	GoalsAgainst int
}

func (s Standing) GoalDifferential() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Better orders standings rows: points, then wins, then goals for,
// all descending. Used for playoff seeding.
func Better(a, b Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	return a.GoalsFor > b.GoalsFor
}
