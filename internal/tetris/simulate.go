package tetris

import (
	"context"
	"math/rand"
	"time"
)

// SimulationResult describes one headless demo game.
type SimulationResult struct {
	Seed     int64
	Score    int
	Lines    int
	Level    int
	Pieces   int // spawned pieces, at most maxPieces when the limit stopped the game
	Frames   int
	GameTime time.Duration
	Finished bool
}

// Simulate plays a demo game on a manual clock, advancing frame per Tick,
// until the game ends, maxPieces have spawned (0 means no limit) or ctx is
// done. Line clears and levels behave exactly as in a live game.
func Simulate(ctx context.Context, cfg Config, seed int64, frame time.Duration, maxPieces int) (SimulationResult, error) {
	clock := &ManualClock{}
	engine, err := NewEngine(cfg, WithClock(clock), WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return SimulationResult{}, err
	}
	engine.Reset(ModeDemo)

	result := SimulationResult{Seed: seed}
	for engine.Mode() == ModeDemo {
		if maxPieces > 0 && engine.Pieces() > maxPieces {
			break
		}
		if result.Frames%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}
		clock.Advance(frame)
		engine.Tick(0)
		result.Frames++
	}

	result.Finished = engine.Mode() == ModeOver
	result.GameTime = clock.Now()
	result.Pieces = engine.Pieces()
	if !result.Finished && maxPieces > 0 {
		// the piece spawned past the limit never fell
		result.Pieces = min(result.Pieces, maxPieces)
	}
	result.Score = engine.Score()
	result.Lines = engine.Lines()
	result.Level = engine.Level()
	return result, nil
}
