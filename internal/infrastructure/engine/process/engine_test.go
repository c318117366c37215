package process

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/claudynachos/LHL/internal/domain/player"
	"github.com/claudynachos/LHL/internal/platform/logging"
	"github.com/claudynachos/LHL/internal/usecase"
)

// fakeBinary writes a shell script standing in for the simulator.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func minimalSheet(teamID, playerID int64) usecase.TeamSheet {
	return usecase.TeamSheet{
		TeamID:    teamID,
		Name:      "Testers",
		PlayStyle: "possession",
		Slots: []usecase.LineSlot{{
			LineType:   "forward",
			LineNumber: 1,
			Position:   player.PositionCenter,
			Player:     player.Player{ID: playerID, Name: "Skater", Off: 80, Def: 75, Phys: 70, Lead: 80, Const: 85},
		}},
	}
}

func TestNewEngine_RequiresBinaryPath(t *testing.T) {
	_, err := NewEngine(EngineConfig{BinaryPath: "  "})
	require.Error(t, err)
}

func TestEngine_SimulateGame(t *testing.T) {
	binary := fakeBinary(t, `cat > /dev/null
echo '{"home_score":4,"away_score":2,"overtime":true,"home_stats":[{"player_id":11,"goals":2,"assists":1}],"away_stats":[{"player_id":22,"saves":30,"goals_against":4,"shots_against":34}]}'`)

	engine, err := NewEngine(EngineConfig{BinaryPath: binary, Logger: logging.NewNop()})
	require.NoError(t, err)

	result, err := engine.SimulateGame(t.Context(), minimalSheet(1, 11), minimalSheet(2, 22), false)
	require.NoError(t, err)
	require.Equal(t, 4, result.HomeScore)
	require.Equal(t, 2, result.AwayScore)
	require.True(t, result.Overtime)
	require.False(t, result.Shootout)

	require.Len(t, result.HomeStats, 1)
	require.Equal(t, int64(11), result.HomeStats[0].PlayerID)
	require.Equal(t, 2, result.HomeStats[0].Goals)
	require.Len(t, result.AwayStats, 1)
	require.Equal(t, 30, result.AwayStats[0].Saves)
	require.Equal(t, 34, result.AwayStats[0].ShotsAgainst)
}

func TestEngine_RejectsTiedScore(t *testing.T) {
	binary := fakeBinary(t, `cat > /dev/null
echo '{"home_score":3,"away_score":3}'`)

	engine, err := NewEngine(EngineConfig{BinaryPath: binary, Logger: logging.NewNop()})
	require.NoError(t, err)

	_, err = engine.SimulateGame(t.Context(), minimalSheet(1, 11), minimalSheet(2, 22), true)
	require.ErrorContains(t, err, "tied score")
}

func TestEngine_SurfacesStderrOnFailure(t *testing.T) {
	binary := fakeBinary(t, `cat > /dev/null
echo "roster file corrupt" >&2
exit 3`)

	engine, err := NewEngine(EngineConfig{BinaryPath: binary, Logger: logging.NewNop()})
	require.NoError(t, err)

	_, err = engine.SimulateGame(t.Context(), minimalSheet(1, 11), minimalSheet(2, 22), false)
	require.ErrorContains(t, err, "roster file corrupt")
}

func TestEngine_Timeout(t *testing.T) {
	binary := fakeBinary(t, `sleep 5`)

	engine, err := NewEngine(EngineConfig{
		BinaryPath: binary,
		Timeout:    100 * time.Millisecond,
		Logger:     logging.NewNop(),
	})
	require.NoError(t, err)

	_, err = engine.SimulateGame(t.Context(), minimalSheet(1, 11), minimalSheet(2, 22), false)
	require.ErrorContains(t, err, "timed out")
}
