package series

import "fmt"

const (
	StatusInProgress = "inProgress"
	StatusComplete   = "complete"
)

// WinsToTake is how many games win a best-of-seven series.
const WinsToTake = 4

// MaxGames is the longest a best-of-seven series can run.
const MaxGames = 7

// Series is one best-of-seven playoff matchup. The higher seed is the
// team with the better regular-season record.
type Series struct {
	ID             int64
	SimulationID   int64
	Season         int
	Round          int
	HigherSeedID   int64
	LowerSeedID    int64
	HigherWins     int
	LowerWins      int
	Status         string
	NextGameNumber int
	WinnerID       *int64
}

func (s Series) Complete() bool {
	return s.Status == StatusComplete
}

// HigherSeedHosts applies the 2-2-1-1-1 pattern: the higher seed
// hosts games 1, 2, 5 and 7.
func HigherSeedHosts(gameNumber int) bool {
	switch gameNumber {
	case 1, 2, 5, 7:
		return true
	default:
		return false
	}
}

// RecordWin counts one game for the given side and completes the
// series when the side reaches four wins.
func (s *Series) RecordWin(winnerID int64) error {
	if s.Complete() {
		return fmt.Errorf("series %d already complete", s.ID)
	}
	if s.NextGameNumber > MaxGames {
		return fmt.Errorf("series %d has no game %d in a best of %d", s.ID, s.NextGameNumber, MaxGames)
	}
	switch winnerID {
	case s.HigherSeedID:
		s.HigherWins++
	case s.LowerSeedID:
		s.LowerWins++
	default:
		return fmt.Errorf("team %d is not part of series %d", winnerID, s.ID)
	}
	s.NextGameNumber++

	if s.HigherWins >= WinsToTake {
		s.Status = StatusComplete
		winner := s.HigherSeedID
		s.WinnerID = &winner
	} else if s.LowerWins >= WinsToTake {
		s.Status = StatusComplete
		winner := s.LowerSeedID
		s.WinnerID = &winner
	}
	return nil
}
