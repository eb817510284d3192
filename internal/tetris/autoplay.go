package tetris

import (
	"time"
)

// autoplay steers the falling piece toward the current suggestion using the
// same moves a player has. Once the piece is lined up it is dropped one row
// per AutoplayInterval. Until then one corrective step is taken each time
// the per-piece delay runs out.
func (engine *Engine) autoplay(now time.Duration) {
	if !engine.hasSuggestion {
		return
	}
	target := engine.suggestion
	elapsed := now - engine.lastAutomove

	if engine.piece.Rotation == target.Rotation && engine.piece.X == target.X {
		if elapsed > engine.cfg.AutoplayInterval {
			engine.drop(now)
			engine.lastAutomove = now
		}
		return
	}
	if elapsed <= engine.automoveDelay {
		return
	}

	if engine.piece.Rotation != target.Rotation {
		engine.rotate(engine.rotationToward(target.Rotation))
		engine.lastAutomove = now
	}
	switch {
	case engine.piece.X < target.X:
		engine.shift(1)
		engine.lastAutomove = now
	case engine.piece.X > target.X:
		engine.shift(-1)
		engine.lastAutomove = now
	}
}

// rotationToward picks the rotation direction for reaching target. Two-state
// pieces and four-state targets two steps away pick at random.
func (engine *Engine) rotationToward(target int) int {
	n := RotationCount(engine.piece.Type)
	if n == 4 {
		switch target {
		case wrapRotation(engine.piece.Rotation, 1, n):
			return 1
		case wrapRotation(engine.piece.Rotation, -1, n):
			return -1
		}
	}
	if engine.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
