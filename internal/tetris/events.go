package tetris

import (
	"time"
)

// Event is a state transition reported by the engine after a frame. Events
// carry what a presentation layer needs to animate the transition.
type Event interface {
	When() time.Duration
}

// EventGame is embedded by every engine event.
type EventGame struct {
	when time.Duration
}

// When returns the clock reading at which the event was raised
func (event *EventGame) When() time.Duration {
	return event.when
}

// EventModeChange reports every mode transition.
type EventModeChange struct {
	EventGame
	From Mode
	To   Mode
}

// EventStartReveal is raised when a game starts from the Over screen or
// takes over from a demo.
type EventStartReveal struct {
	EventGame
	Mode Mode
}

// EventGameOverCover is raised when a running game ends, including a demo
// interrupted by a human start.
type EventGameOverCover struct {
	EventGame
	Field *Field
	Score int
	Lines int
	Level int
	Demo  bool
}

// EventLineCollapse is raised once per lock that completes rows, before the
// rows are removed. Field is the grid as it was before the collapse.
type EventLineCollapse struct {
	EventGame
	Rows  []int
	Field *Field
}

// EventLevelUp is raised for every level gained.
type EventLevelUp struct {
	EventGame
	Level   int
	Palette Palette
}
