package game

import "time"

// Game is one fixture within a simulation season. Mutated exactly
// once, when the engine result is applied; never re-simulated.
type Game struct {
	ID           int64
	SimulationID int64
	Season       int
	Date         time.Time
	HomeTeamID   int64
	AwayTeamID   int64
	HomeScore    *int
	AwayScore    *int
	IsPlayoff    bool
	PlayoffRound *int
	SeriesID     *int64
	Simulated    bool
}

// PlayerLine is one player's box score for one game.
type PlayerLine struct {
	PlayerID   int64
	Goals      int
	Assists    int
	Shots      int
	Hits       int
	Blocks     int
	PlusMinus  int
	TOISeconds int
	Takeaways  int
	Giveaways  int

	// Goalie lines.
	Saves        int
	GoalsAgainst int
	ShotsAgainst int
}

// PlayerStat is a persisted PlayerLine tied to a game and team.
type PlayerStat struct {
	ID       int64
	GameID   int64
	TeamID   int64
	PlayerID int64
	Line     PlayerLine
}

// Result is what the external game engine returns for one game. A
// completed game always has a winner; tied results are rejected when
// applied.
type Result struct {
	HomeScore int
	AwayScore int
	Overtime  bool
	Shootout  bool
	HomeStats []PlayerLine
	AwayStats []PlayerLine
}

func (r Result) HomeWon() bool {
	return r.HomeScore > r.AwayScore
}

func (r Result) Tied() bool {
	return r.HomeScore == r.AwayScore
}
