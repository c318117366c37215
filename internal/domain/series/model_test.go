package series

import "testing"

func TestHigherSeedHosts(t *testing.T) {
	hosts := map[int]bool{1: true, 2: true, 3: false, 4: false, 5: true, 6: false, 7: true}
	for gameNumber, want := range hosts {
		if got := HigherSeedHosts(gameNumber); got != want {
			t.Errorf("game %d: higher seed hosts = %t, want %t", gameNumber, got, want)
		}
	}
}

func TestSeries_RecordWin_SweepByHigherSeed(t *testing.T) {
	s := Series{
		ID:             1,
		HigherSeedID:   10,
		LowerSeedID:    20,
		Status:         StatusInProgress,
		NextGameNumber: 1,
	}

	for i := 0; i < WinsToTake; i++ {
		if err := s.RecordWin(10); err != nil {
			t.Fatalf("record win %d: %v", i+1, err)
		}
	}

	if !s.Complete() {
		t.Fatal("series should be complete after four wins")
	}
	if s.WinnerID == nil || *s.WinnerID != 10 {
		t.Fatalf("winner = %v, want 10", s.WinnerID)
	}
	if s.NextGameNumber != 5 {
		t.Fatalf("next game number = %d, want 5", s.NextGameNumber)
	}
}

func TestSeries_RecordWin_FullSevenGames(t *testing.T) {
	s := Series{HigherSeedID: 10, LowerSeedID: 20, Status: StatusInProgress, NextGameNumber: 1}

	winners := []int64{10, 20, 10, 20, 10, 20, 20}
	for _, w := range winners {
		if err := s.RecordWin(w); err != nil {
			t.Fatalf("record win for %d: %v", w, err)
		}
	}

	if s.HigherWins != 3 || s.LowerWins != 4 {
		t.Fatalf("wins = %d-%d, want 3-4", s.HigherWins, s.LowerWins)
	}
	if s.WinnerID == nil || *s.WinnerID != 20 {
		t.Fatalf("winner = %v, want 20", s.WinnerID)
	}
}

func TestSeries_RecordWin_Rejections(t *testing.T) {
	s := Series{HigherSeedID: 10, LowerSeedID: 20, Status: StatusInProgress, NextGameNumber: 1}

	if err := s.RecordWin(99); err == nil {
		t.Fatal("expected error for a team outside the series")
	}

	for i := 0; i < WinsToTake; i++ {
		if err := s.RecordWin(20); err != nil {
			t.Fatalf("record win: %v", err)
		}
	}
	if err := s.RecordWin(10); err == nil {
		t.Fatal("expected error for a win recorded after completion")
	}

	// A row that somehow ran past game seven without completing must
	// not accept an eighth game.
	overlong := Series{HigherSeedID: 10, LowerSeedID: 20, Status: StatusInProgress, NextGameNumber: MaxGames + 1}
	if err := overlong.RecordWin(10); err == nil {
		t.Fatal("expected error for a game past the best-of-seven limit")
	}
	if overlong.HigherWins != 0 {
		t.Fatalf("rejected game still counted: %d wins", overlong.HigherWins)
	}
}
