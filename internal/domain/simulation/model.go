package simulation

import (
	"fmt"
	"time"
)

const (
	StatusDrafting  = "drafting"
	StatusSeason    = "season"
	StatusSeasonEnd = "seasonEnd"
	StatusPlayoffs  = "playoffs"
	StatusCompleted = "completed"
)

// Simulation is one multi-season league run. It owns every team, game
// and playoff series created for it until it is explicitly deleted.
type Simulation struct {
	ID            int64
	Name          string
	NumTeams      int
	YearLength    int
	CurrentSeason int
	// DraftPickCursor is the zero-based index into the flattened snake
	// draft order. It only moves forward.
	DraftPickCursor int
	Status          string
	IsActive        bool
	CreatedAt       time.Time
}

func ValidStatus(value string) bool {
	switch value {
	case StatusDrafting, StatusSeason, StatusSeasonEnd, StatusPlayoffs, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Simulation) Validate() error {
	switch s.NumTeams {
	case 4, 6, 8, 10, 12:
	default:
		return fmt.Errorf("num teams must be 4, 6, 8, 10 or 12")
	}
	if s.YearLength < 20 || s.YearLength > 25 {
		return fmt.Errorf("year length must be between 20 and 25")
	}
	if s.CurrentSeason < 1 {
		return fmt.Errorf("current season must be >= 1")
	}
	if !ValidStatus(s.Status) {
		return fmt.Errorf("invalid status %q", s.Status)
	}
	return nil
}
