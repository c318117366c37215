package team

import "fmt"

const (
	ConferenceEast = "East"
	ConferenceWest = "West"
)

// Play styles understood by the game engine. PlayStyleAuto defers to
// the coach type at sheet-building time.
const (
	PlayStyleAuto       = "auto"
	PlayStylePossession = "possession"
	PlayStyleTrap       = "trap"
	PlayStyleDumpChase  = "dump_chase"
	PlayStyleRush       = "rush"
	PlayStyleShootCrash = "shoot_crash"
)

// Team belongs to exactly one simulation.
type Team struct {
	ID             int64
	SimulationID   int64
	Name           string
	City           string
	Conference     string
	UserControlled bool
	CoachID        *int64
	PlayStyle      string
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Conference != ConferenceEast && t.Conference != ConferenceWest {
		return fmt.Errorf("conference must be %s or %s", ConferenceEast, ConferenceWest)
	}
	return nil
}

func (t Team) HasCoach() bool {
	return t.CoachID != nil
}
