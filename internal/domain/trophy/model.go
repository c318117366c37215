package trophy

const (
	KindTeam       = "team"
	KindIndividual = "individual"
)

// Trophy names awarded at the end of each season.
const (
	NameChampionsCup    = "Champions Cup"
	NameBestRecord      = "Presidents' Trophy"
	NameMostPoints      = "Scoring Title"
	NameMostGoals       = "Goal-Scoring Title"
	NameMVP             = "League MVP"
	NameBestDefenseman  = "Best Defenseman"
	NameBestGoaltender  = "Best Goaltender"
	NamePlayoffMVP      = "Playoff MVP"
)

// Trophy is one season award, either to a team or to a player.
type Trophy struct {
	ID           int64
	SimulationID int64
	Season       int
	Name         string
	Kind         string
	TeamID       *int64
	PlayerID     *int64
}
