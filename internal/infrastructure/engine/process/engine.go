// Package process drives an external game-simulator binary: one
// process invocation per game, JSON request on stdin, JSON result on
// stdout.
package process

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/claudynachos/LHL/internal/domain/game"
	"github.com/claudynachos/LHL/internal/platform/logging"
	"github.com/claudynachos/LHL/internal/usecase"
)

const defaultTimeout = 30 * time.Second

type EngineConfig struct {
	// BinaryPath locates the simulator executable.
	BinaryPath string
	Args       []string
	Timeout    time.Duration
	Logger     *logging.Logger
}

type Engine struct {
	binaryPath string
	args       []string
	timeout    time.Duration
	logger     *logging.Logger
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	binaryPath := strings.TrimSpace(cfg.BinaryPath)
	if binaryPath == "" {
		return nil, crerr.New("engine binary path is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Engine{
		binaryPath: binaryPath,
		args:       cfg.Args,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

type requestPayload struct {
	Home      sheetPayload `json:"home"`
	Away      sheetPayload `json:"away"`
	IsPlayoff bool         `json:"is_playoff"`
}

type sheetPayload struct {
	TeamID    int64         `json:"team_id"`
	Name      string        `json:"name"`
	PlayStyle string        `json:"play_style"`
	Coach     *coachPayload `json:"coach,omitempty"`
	Slots     []slotPayload `json:"slots"`
}

type coachPayload struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Type   string `json:"type"`
}

type slotPayload struct {
	LineType   string `json:"line_type"`
	LineNumber int    `json:"line_number"`
	Position   string `json:"position"`
	PlayerID   int64  `json:"player_id"`
	Name       string `json:"name"`
	Off        int    `json:"off"`
	Def        int    `json:"def"`
	Phys       int    `json:"phys"`
	Lead       int    `json:"lead"`
	Const      int    `json:"const"`
}

type resultPayload struct {
	HomeScore int           `json:"home_score"`
	AwayScore int           `json:"away_score"`
	Overtime  bool          `json:"overtime"`
	Shootout  bool          `json:"shootout"`
	HomeStats []statPayload `json:"home_stats"`
	AwayStats []statPayload `json:"away_stats"`
}

type statPayload struct {
	PlayerID     int64 `json:"player_id"`
	Goals        int   `json:"goals"`
	Assists      int   `json:"assists"`
	Shots        int   `json:"shots"`
	Hits         int   `json:"hits"`
	Blocks       int   `json:"blocks"`
	PlusMinus    int   `json:"plus_minus"`
	TOISeconds   int   `json:"toi_seconds"`
	Takeaways    int   `json:"takeaways"`
	Giveaways    int   `json:"giveaways"`
	Saves        int   `json:"saves"`
	GoalsAgainst int   `json:"goals_against"`
	ShotsAgainst int   `json:"shots_against"`
}

func (e *Engine) SimulateGame(ctx context.Context, home, away usecase.TeamSheet, isPlayoff bool) (game.Result, error) {
	payload := requestPayload{
		Home:      mapSheet(home),
		Away:      mapSheet(away),
		IsPlayoff: isPlayoff,
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return game.Result{}, crerr.Wrap(err, "encode engine request")
	}
	_, _ = buf.Write(encoded)

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	cmd := exec.CommandContext(runCtx, e.binaryPath, e.args...)
	cmd.Stdin = bytes.NewReader(buf.Bytes())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			return game.Result{}, crerr.Wrapf(runCtx.Err(), "engine timed out after %s", e.timeout)
		}
		return game.Result{}, crerr.Wrapf(err, "engine run failed: %s", strings.TrimSpace(stderr.String()))
	}

	var out resultPayload
	if err := sonic.Unmarshal(stdout.Bytes(), &out); err != nil {
		return game.Result{}, crerr.Wrap(err, "decode engine result")
	}
	if out.HomeScore == out.AwayScore {
		return game.Result{}, crerr.Newf("engine returned tied score %d-%d", out.HomeScore, out.AwayScore)
	}

	e.logger.DebugContext(ctx, "engine game simulated",
		"home_team_id", home.TeamID,
		"away_team_id", away.TeamID,
		"playoff", isPlayoff,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return mapResult(out), nil
}

func mapSheet(sheet usecase.TeamSheet) sheetPayload {
	out := sheetPayload{
		TeamID:    sheet.TeamID,
		Name:      sheet.Name,
		PlayStyle: sheet.PlayStyle,
		Slots:     make([]slotPayload, 0, len(sheet.Slots)),
	}
	if sheet.Coach != nil {
		out.Coach = &coachPayload{
			Name:   sheet.Coach.Name,
			Rating: sheet.Coach.Rating,
			Type:   sheet.Coach.CoachType,
		}
	}
	for _, slot := range sheet.Slots {
		out.Slots = append(out.Slots, slotPayload{
			LineType:   slot.LineType,
			LineNumber: slot.LineNumber,
			Position:   slot.Position,
			PlayerID:   slot.Player.ID,
			Name:       slot.Player.Name,
			Off:        slot.Player.Off,
			Def:        slot.Player.Def,
			Phys:       slot.Player.Phys,
			Lead:       slot.Player.Lead,
			Const:      slot.Player.Const,
		})
	}
	return out
}

func mapResult(payload resultPayload) game.Result {
	return game.Result{
		HomeScore: payload.HomeScore,
		AwayScore: payload.AwayScore,
		Overtime:  payload.Overtime,
		Shootout:  payload.Shootout,
		HomeStats: mapStats(payload.HomeStats),
		AwayStats: mapStats(payload.AwayStats),
	}
}

func mapStats(stats []statPayload) []game.PlayerLine {
	out := make([]game.PlayerLine, 0, len(stats))
	for _, s := range stats {
		out = append(out, game.PlayerLine{
			PlayerID:     s.PlayerID,
			Goals:        s.Goals,
			Assists:      s.Assists,
			Shots:        s.Shots,
			Hits:         s.Hits,
			Blocks:       s.Blocks,
			PlusMinus:    s.PlusMinus,
			TOISeconds:   s.TOISeconds,
			Takeaways:    s.Takeaways,
			Giveaways:    s.Giveaways,
			Saves:        s.Saves,
			GoalsAgainst: s.GoalsAgainst,
			ShotsAgainst: s.ShotsAgainst,
		})
	}
	return out
}
