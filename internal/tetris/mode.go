package tetris

// Mode is the top-level game state.
type Mode uint8

const (
	// ModeOver is the idle state after a game ends, and before the first one.
	ModeOver Mode = iota
	// ModePause freezes gravity and movement of a Play game.
	ModePause
	// ModeDemo is autonomous play driven by the AI.
	ModeDemo
	// ModePlay is a human-controlled game.
	ModePlay
)

func (m Mode) String() string {
	switch m {
	case ModeOver:
		return "over"
	case ModePause:
		return "pause"
	case ModeDemo:
		return "demo"
	case ModePlay:
		return "play"
	}
	return "unknown"
}

// AcceptsInput reports whether movement input is processed in m. Only the
// toggle intent is honoured in the other modes.
func (m Mode) AcceptsInput() bool {
	return m == ModePlay
}

// Running reports whether gravity applies in m.
func (m Mode) Running() bool {
	return m == ModePlay || m == ModeDemo
}
