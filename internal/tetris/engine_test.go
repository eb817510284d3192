package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg Config) (*Engine, *ManualClock) {
	t.Helper()
	clock := &ManualClock{}
	engine, err := NewEngine(cfg, WithClock(clock), WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return engine, clock
}

// playing returns an engine in Play with its pending events discarded.
func playing(t *testing.T) (*Engine, *ManualClock) {
	t.Helper()
	engine, clock := newTestEngine(t, DefaultConfig())
	engine.Reset(ModePlay)
	engine.events = nil
	return engine, clock
}

// dropUntilLocked drops the current piece until the next one spawns.
func dropUntilLocked(t *testing.T, engine *Engine) {
	t.Helper()
	pieces := engine.Pieces()
	for i := 0; engine.Pieces() == pieces; i++ {
		require.Less(t, i, 30, "piece never locked")
		engine.Drop()
	}
}

func interiorCount(field *Field) int {
	in := field.Interior()
	n := 0
	for y := in.Y0; y < in.Y1; y++ {
		for x := in.X0; x < in.X1; x++ {
			if field.Occupied(x, y) {
				n++
			}
		}
	}
	return n
}

func TestNewEngine(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())
	require.Equal(t, ModeOver, engine.Mode())
	require.Equal(t, 1, engine.Level())
	require.Equal(t, 0, engine.Lines())
	require.Equal(t, 500*time.Millisecond, engine.DropInterval())
	require.Equal(t, 6, engine.Piece().X)
	require.Empty(t, engine.Tick(0))

	cfg := DefaultConfig()
	cfg.DropIntervalMin = time.Second
	_, err := NewEngine(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSpawn(t *testing.T) {
	engine, clock := playing(t)
	for i := 0; i < 14; i++ {
		engine.spawn(clock.Now())
		p := engine.Piece()
		require.Equal(t, 0, p.Rotation)
		require.Equal(t, 6, p.X)
		if p.Type == PieceL {
			require.Equal(t, 2, p.Y)
		} else {
			require.Equal(t, 1, p.Y)
		}
		require.True(t, engine.Field().Fits(p), p.String())
		_, ok := engine.Suggestion()
		require.False(t, ok, "no suggestion outside demo")
	}
}

func TestDropLocksOPieceOnTheFloor(t *testing.T) {
	engine, _ := playing(t)
	engine.piece = NewPiece(PieceO, 6, 1)
	color := engine.Palette().Of(PieceO)

	dropUntilLocked(t, engine)

	field := engine.Field()
	require.Equal(t, 4, interiorCount(field))
	for _, c := range []Cell{{6, 21}, {7, 21}, {6, 22}, {7, 22}} {
		require.Equal(t, color, field.At(c.X, c.Y), "%v", c)
	}
	require.Equal(t, 0, engine.Lines())
	require.Equal(t, ModePlay, engine.Mode())
}

func TestDropClearsOneLine(t *testing.T) {
	engine, _ := playing(t)
	fillRow(engine.field, 22, locked, 12)
	engine.field.Set(5, 21, 0xabcdef)
	engine.piece = NewPiece(PieceI, 10, 1).Rotated(1)

	dropUntilLocked(t, engine)

	require.Equal(t, 1, engine.Lines())
	require.Equal(t, 80, engine.Score())
	field := engine.Field()
	require.Equal(t, Color(0xabcdef), field.At(5, 22))
	iColor := ThemeForLevel(1).Of(PieceI)
	for y := 20; y <= 22; y++ {
		require.Equal(t, iColor, field.At(12, y), "row %d", y)
	}
	require.Equal(t, Empty, field.At(12, 19))
	require.Equal(t, 4, interiorCount(field))

	events := engine.Tick(0)
	require.NotEmpty(t, events)
	collapse, ok := events[0].(*EventLineCollapse)
	require.True(t, ok, "%T", events[0])
	require.Equal(t, []int{22}, collapse.Rows)
	require.True(t, collapse.Field.isFullLine(22), "snapshot taken before the collapse")
}

func TestGravity(t *testing.T) {
	engine, clock := playing(t)
	y := engine.Piece().Y

	clock.Advance(500 * time.Millisecond)
	engine.Tick(0)
	require.Equal(t, y, engine.Piece().Y, "interval must be exceeded")

	clock.Advance(time.Millisecond)
	engine.Tick(0)
	require.Equal(t, y+1, engine.Piece().Y)

	clock.Advance(400 * time.Millisecond)
	engine.Tick(0)
	require.Equal(t, y+1, engine.Piece().Y)
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	engine, clock := playing(t)
	for y := 3; y <= 5; y++ {
		for x := 6; x <= 9; x++ {
			engine.field.Set(x, y, locked)
		}
	}
	engine.piece = NewPiece(PieceO, 3, 19)
	engine.AddScore(123)
	lastDrop := engine.lastDrop

	clock.Advance(time.Second)
	engine.Drop()

	require.Equal(t, ModeOver, engine.Mode())
	require.Equal(t, lastDrop, engine.lastDrop)

	events := engine.Tick(0)
	require.Len(t, events, 2)
	cover, ok := events[0].(*EventGameOverCover)
	require.True(t, ok, "%T", events[0])
	require.Equal(t, 123, cover.Score)
	require.False(t, cover.Demo)
	require.Equal(t, &EventModeChange{EventGame: EventGame{when: time.Second}, From: ModePlay, To: ModeOver}, events[1])

	clock.Advance(time.Second)
	y := engine.Piece().Y
	engine.Tick(0)
	require.Equal(t, y, engine.Piece().Y, "no gravity in over")
}

func TestLevelUp(t *testing.T) {
	t.Run("one level per boundary crossed", func(t *testing.T) {
		engine, _ := playing(t)
		engine.AddDeleteLines(4)
		engine.AddDeleteLines(4)
		require.Equal(t, 1, engine.Level())

		engine.AddDeleteLines(2)
		require.Equal(t, 10, engine.Lines())
		require.Equal(t, 2, engine.Level())
		require.Equal(t, 450*time.Millisecond, engine.DropInterval())

		engine.AddDeleteLines(3)
		engine.AddDeleteLines(4)
		engine.AddDeleteLines(4)
		require.Equal(t, 21, engine.Lines())
		require.Equal(t, 3, engine.Level())
		require.Equal(t, 400*time.Millisecond, engine.DropInterval())

		levels := 0
		for _, event := range engine.Tick(0) {
			if _, ok := event.(*EventLevelUp); ok {
				levels++
			}
		}
		require.Equal(t, 2, levels)
	})

	t.Run("a large batch crosses several boundaries", func(t *testing.T) {
		engine, _ := playing(t)
		engine.AddDeleteLines(9)
		engine.AddDeleteLines(25)
		require.Equal(t, 34, engine.Lines())
		require.Equal(t, 4, engine.Level())
		require.Equal(t, 350*time.Millisecond, engine.DropInterval())
	})

	t.Run("interval is floored", func(t *testing.T) {
		engine, _ := playing(t)
		for i := 0; i < 30; i++ {
			engine.LevelUp()
		}
		require.Equal(t, 31, engine.Level())
		require.Equal(t, 50*time.Millisecond, engine.DropInterval())
	})

	t.Run("locked cells take the new theme", func(t *testing.T) {
		engine, _ := playing(t)
		engine.field.Set(4, 22, ThemeForLevel(1).Of(PieceS))
		engine.LevelUp()
		require.Equal(t, ThemeForLevel(2).Of(PieceS), engine.Field().At(4, 22))
		require.Equal(t, ThemeForLevel(2), engine.Palette())
	})
}

func TestScore(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{1, 80},
		{2, 200},
		{3, 600},
		{4, 2400},
	}
	for _, tt := range tests {
		engine, _ := playing(t)
		engine.AddDeleteLines(tt.lines)
		require.Equal(t, tt.want, engine.Score(), "%d lines", tt.lines)
	}

	engine, _ := playing(t)
	engine.AddScore(maxScore + 1)
	require.Equal(t, maxScore, engine.Score())
}

func TestModeTransitions(t *testing.T) {
	kinds := func(events []Event) []string {
		names := make([]string, 0, len(events))
		for _, event := range events {
			switch event.(type) {
			case *EventStartReveal:
				names = append(names, "reveal")
			case *EventGameOverCover:
				names = append(names, "cover")
			case *EventModeChange:
				names = append(names, "mode")
			}
		}
		return names
	}

	t.Run("over to play reveals", func(t *testing.T) {
		engine, _ := newTestEngine(t, DefaultConfig())
		engine.Reset(ModePlay)
		require.Equal(t, []string{"reveal", "mode"}, kinds(engine.Tick(0)))
	})

	t.Run("over to demo reveals and suggests", func(t *testing.T) {
		engine, _ := newTestEngine(t, DefaultConfig())
		engine.Reset(ModeDemo)
		require.Equal(t, []string{"reveal", "mode"}, kinds(engine.events))
		_, ok := engine.Suggestion()
		require.True(t, ok)
	})

	t.Run("toggle during demo covers then reveals", func(t *testing.T) {
		engine, _ := newTestEngine(t, DefaultConfig())
		engine.Reset(ModeDemo)
		engine.events = nil

		events := engine.Tick(NewIntents(IntentToggle))
		require.Equal(t, ModePlay, engine.Mode())
		require.Equal(t, []string{"cover", "reveal", "mode"}, kinds(events))
		require.True(t, events[0].(*EventGameOverCover).Demo)
		_, ok := engine.Suggestion()
		require.False(t, ok)
	})

	t.Run("toggle from over starts a game", func(t *testing.T) {
		engine, _ := newTestEngine(t, DefaultConfig())
		engine.Tick(NewIntents(IntentToggle))
		require.Equal(t, ModePlay, engine.Mode())
	})

	t.Run("pause toggles and freezes gravity", func(t *testing.T) {
		engine, clock := playing(t)
		y := engine.Piece().Y

		engine.Tick(NewIntents(IntentToggle))
		require.Equal(t, ModePause, engine.Mode())

		clock.Advance(100 * time.Millisecond)
		engine.Tick(NewIntents(IntentToggle))
		require.Equal(t, ModePause, engine.Mode(), "held toggle does not repeat yet")

		clock.Advance(2 * time.Second)
		engine.Tick(NewIntents(IntentLeft))
		require.Equal(t, y, engine.Piece().Y)
		require.Equal(t, 6, engine.Piece().X, "movement is ignored while paused")

		engine.Tick(NewIntents(IntentToggle))
		require.Equal(t, ModePlay, engine.Mode())
	})

	t.Run("idle over screen starts a demo", func(t *testing.T) {
		engine, clock := newTestEngine(t, DefaultConfig())
		clock.Advance(10 * time.Second)
		engine.Tick(0)
		require.Equal(t, ModeOver, engine.Mode())

		clock.Advance(time.Millisecond)
		require.Equal(t, []string{"reveal", "mode"}, kinds(engine.Tick(0)))
		require.Equal(t, ModeDemo, engine.Mode())
	})

	t.Run("zero demo delay disables demos", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DemoAfter = 0
		engine, clock := newTestEngine(t, cfg)
		clock.Advance(time.Hour)
		engine.Tick(0)
		require.Equal(t, ModeOver, engine.Mode())
	})
}

func TestInput(t *testing.T) {
	t.Run("held moves repeat after the interval", func(t *testing.T) {
		engine, clock := playing(t)
		x := engine.Piece().X
		left := NewIntents(IntentLeft)

		engine.Tick(left)
		require.Equal(t, x-1, engine.Piece().X)

		clock.Advance(100 * time.Millisecond)
		engine.Tick(left)
		require.Equal(t, x-1, engine.Piece().X)

		clock.Advance(101 * time.Millisecond)
		engine.Tick(left)
		require.Equal(t, x-2, engine.Piece().X)

		engine.Tick(0)
		engine.Tick(left)
		require.Equal(t, x-3, engine.Piece().X, "release re-arms immediately")
	})

	t.Run("left wins over right", func(t *testing.T) {
		engine, _ := playing(t)
		x := engine.Piece().X
		engine.Tick(NewIntents(IntentLeft, IntentRight))
		require.Equal(t, x-1, engine.Piece().X)
	})

	t.Run("walls stop shifts", func(t *testing.T) {
		engine, clock := playing(t)
		engine.piece = NewPiece(PieceO, 3, 5)
		engine.Tick(NewIntents(IntentLeft))
		require.Equal(t, 3, engine.Piece().X)
		clock.Advance(10 * time.Millisecond)
		engine.Tick(NewIntents(IntentRight))
		require.Equal(t, 4, engine.Piece().X)
	})

	t.Run("soft drop", func(t *testing.T) {
		engine, _ := playing(t)
		y := engine.Piece().Y
		engine.Tick(NewIntents(IntentDown))
		require.Equal(t, y+1, engine.Piece().Y)
	})

	t.Run("soft drop does not lock", func(t *testing.T) {
		engine, _ := playing(t)
		engine.piece = NewPiece(PieceO, 3, 19)
		pieces := engine.Pieces()
		engine.Tick(NewIntents(IntentDown))
		require.Equal(t, pieces, engine.Pieces())
		require.Equal(t, 19, engine.Piece().Y)
	})

	t.Run("rotation", func(t *testing.T) {
		engine, clock := playing(t)
		engine.piece = NewPiece(PieceT, 6, 5)

		engine.Tick(NewIntents(IntentRotateCW))
		require.Equal(t, 1, engine.Piece().Rotation)

		clock.Advance(50 * time.Millisecond)
		engine.Tick(NewIntents(IntentRotateCCW))
		require.Equal(t, 0, engine.Piece().Rotation)

		clock.Advance(50 * time.Millisecond)
		engine.Tick(NewIntents(IntentRotateCCW))
		require.Equal(t, 0, engine.Piece().Rotation, "held rotate does not repeat yet")
	})

	t.Run("blocked rotation is a no-op", func(t *testing.T) {
		engine, _ := playing(t)
		// vertical I in the rightmost column: horizontal would poke into the wall
		engine.piece = NewPiece(PieceI, 10, 5).Rotated(1)
		before := engine.Piece()
		require.False(t, engine.rotate(1))
		require.Equal(t, before, engine.Piece())
	})

	t.Run("no input is harmless", func(t *testing.T) {
		engine, _ := playing(t)
		before := engine.Piece()
		engine.Tick(0)
		require.Equal(t, before, engine.Piece())
	})
}

func TestRotateFullCycleOnTheField(t *testing.T) {
	for _, pt := range PieceTypes {
		engine, _ := playing(t)
		engine.piece = NewPiece(pt, 6, 8)
		start := engine.Piece()
		for i := 0; i < RotationCount(pt); i++ {
			require.True(t, engine.rotate(1), pt.String())
		}
		require.Equal(t, start, engine.Piece())
	}
}

func TestSnapshot(t *testing.T) {
	engine, _ := playing(t)
	engine.piece = NewPiece(PieceO, 6, 1)

	snap := engine.Snapshot()
	require.Equal(t, 20, snap.Rows)
	require.Equal(t, 10, snap.Cols)
	require.Len(t, snap.Cells, 20)
	require.Len(t, snap.Cells[0], 10)
	require.Equal(t, 3, snap.Piece.X)
	require.Equal(t, -2, snap.Piece.Y)
	require.Equal(t, 16, snap.Ghost)
	require.Equal(t, engine.Next(), snap.Next.Type)
	require.Equal(t, ThemeForLevel(1).Of(PieceO), snap.Piece.Color)
	require.Equal(t, ModePlay, snap.Mode)
}
