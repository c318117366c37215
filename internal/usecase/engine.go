package usecase

import (
	"context"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/domain/player"
)

// LineSlot is one lineup slot handed to the game engine.
type LineSlot struct {
	LineType   string
	LineNumber int
	Position   string
	Player     player.Player
}

// TeamSheet is everything the engine needs to know about one side of a
// game: the dressed lineup, the coach and the resolved play style.
type TeamSheet struct {
	TeamID    int64
	Name      string
	City      string
	PlayStyle string
	Coach     *player.Coach
	Slots     []LineSlot
}

// GameEngine resolves a single game from two team sheets. It behaves
// as a pure function: same sheets and flag in, one decisive result
// out. The engine's internals are not part of this package.
type GameEngine interface {
	SimulateGame(ctx context.Context, home, away TeamSheet, isPlayoff bool) (game.Result, error)
}
