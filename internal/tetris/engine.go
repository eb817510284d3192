package tetris

import (
	"io"
	"log"
	"math/rand"
	"time"
)

const (
	maxScore = 9999999
	maxLines = 999999
)

// Engine is the game context. It owns the field, the falling piece, the bag
// and every timer, and advances them one frame at a time. An Engine is not
// safe for concurrent use; separate games use separate engines.
type Engine struct {
	cfg    Config
	clock  Clock
	rng    *rand.Rand
	logger *log.Logger
	dumps  bool

	mode          Mode
	modeChangedAt time.Duration

	field *Field
	piece Piece
	bag   *Bag
	input *repeater

	suggestion    Suggestion
	hasSuggestion bool
	lastAutomove  time.Duration
	automoveDelay time.Duration

	lastDrop     time.Duration
	dropInterval time.Duration
	score        int
	level        int
	deleteLines  int
	pieces       int

	events []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. The default is SystemClock.
func WithClock(clock Clock) Option {
	return func(engine *Engine) {
		engine.clock = clock
	}
}

// WithRand sets the random source for the bag and autoplay.
func WithRand(rng *rand.Rand) Option {
	return func(engine *Engine) {
		engine.rng = rng
	}
}

// WithLogger sets where the engine logs. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(engine *Engine) {
		engine.logger = logger
	}
}

// WithDumps logs a field dump next to every AI suggestion.
func WithDumps(dumps bool) Option {
	return func(engine *Engine) {
		engine.dumps = dumps
	}
}

// NewEngine creates an engine in ModeOver with a fresh field and piece.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine := &Engine{
		cfg:    cfg,
		clock:  SystemClock(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.rng == nil {
		engine.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	engine.input = newRepeater(cfg.RepeatInterval)
	engine.field = NewField(cfg.Rows, cfg.Cols, cfg.Margin)
	engine.bag = NewBag(engine.rng)
	engine.bag.refill = func(queue []PieceType) {
		engine.logger.Printf("bag refill %v", queue)
	}

	engine.Reset(ModeOver)
	engine.events = nil
	return engine, nil
}

// Reset starts over in the given mode: score, lines, level, drop speed, bag
// and field all return to their initial state and a new piece spawns.
func (engine *Engine) Reset(mode Mode) {
	now := engine.clock.Now()
	engine.logger.Printf("Engine Reset %s", mode)

	engine.lastDrop = now
	engine.SetMode(mode)
	engine.score = 0
	engine.deleteLines = 0
	engine.level = 1
	engine.pieces = 0
	engine.dropInterval = engine.cfg.DropIntervalMax
	engine.hasSuggestion = false

	engine.bag.Reset()
	engine.field.Clear()
	engine.spawn(now)
}

// SetMode switches mode and queues the transition events. Leaving a running
// game for Over covers the field, entering a game from Over reveals it, and
// a player taking over a demo gets both.
func (engine *Engine) SetMode(mode Mode) {
	now := engine.clock.Now()
	from := engine.mode
	if from == mode {
		return
	}
	engine.logger.Printf("mode %s >> %s after %s", from, mode, (now - engine.modeChangedAt).Round(time.Millisecond))

	switch {
	case from.Running() && mode == ModeOver:
		engine.emit(engine.gameOverCover(now))
	case from == ModeOver && mode.Running():
		engine.emit(&EventStartReveal{EventGame: EventGame{when: now}, Mode: mode})
	case from == ModeDemo && mode == ModePlay:
		engine.emit(engine.gameOverCover(now))
		engine.emit(&EventStartReveal{EventGame: EventGame{when: now}, Mode: mode})
	}

	engine.mode = mode
	engine.modeChangedAt = now
	engine.emit(&EventModeChange{EventGame: EventGame{when: now}, From: from, To: mode})
}

func (engine *Engine) gameOverCover(now time.Duration) *EventGameOverCover {
	return &EventGameOverCover{
		EventGame: EventGame{when: now},
		Field:     engine.field.Clone(),
		Score:     engine.score,
		Lines:     engine.deleteLines,
		Level:     engine.level,
		Demo:      engine.mode == ModeDemo,
	}
}

func (engine *Engine) emit(event Event) {
	engine.events = append(engine.events, event)
}

// Tick runs one frame: gravity, then autoplay, then the held intents. In
// Over, a demo starts once DemoAfter has passed. It returns the events
// raised since the previous frame, including those from direct calls such
// as Reset, in the order they happened.
func (engine *Engine) Tick(in Intents) []Event {
	now := engine.clock.Now()

	if engine.mode.Running() && now-engine.lastDrop > engine.dropInterval {
		engine.drop(now)
	}
	if engine.mode == ModeDemo {
		engine.autoplay(now)
	}
	engine.handleInput(in, now)

	if engine.mode == ModeOver && engine.cfg.DemoAfter > 0 && now-engine.modeChangedAt > engine.cfg.DemoAfter {
		engine.Reset(ModeDemo)
	}

	events := engine.events
	engine.events = nil
	return events
}

// Drop moves the piece down one row, locking it if it cannot move.
func (engine *Engine) Drop() {
	engine.drop(engine.clock.Now())
}

// drop is one gravity step. A piece that cannot fall locks, completed rows
// collapse and the next piece spawns. When the new piece does not fit it is
// stamped in anyway and the game is over.
func (engine *Engine) drop(now time.Duration) {
	if engine.field.Fits(engine.piece.Moved(0, 1)) {
		engine.piece.Y++
		engine.lastDrop = now
		return
	}

	engine.field.Lock(engine.piece, engine.Palette().Of(engine.piece.Type))
	engine.deleteCheck(now)
	engine.spawn(now)
	if !engine.field.Fits(engine.piece) {
		engine.field.Lock(engine.piece, engine.Palette().Of(engine.piece.Type))
		engine.logger.Printf("game over: score %d lines %d level %d pieces %d", engine.score, engine.deleteLines, engine.level, engine.pieces)
		engine.SetMode(ModeOver)
		return
	}
	engine.lastDrop = now
}

// deleteCheck collapses full rows and updates lines, score and level.
func (engine *Engine) deleteCheck(now time.Duration) {
	rows := engine.field.FullRows()
	if len(rows) == 0 {
		return
	}
	engine.emit(&EventLineCollapse{
		EventGame: EventGame{when: now},
		Rows:      rows,
		Field:     engine.field.Clone(),
	})

	lines := engine.field.ClearLines()
	engine.AddDeleteLines(lines)
	engine.logger.Printf("lines %d (+%d) level %d interval %s elapsed %s",
		engine.deleteLines, lines, engine.level, engine.dropInterval, (now - engine.modeChangedAt).Round(time.Millisecond))
}

// AddDeleteLines adds deleted lines to the total, scores them and raises
// the level once for every LinesPerLevel boundary crossed.
func (engine *Engine) AddDeleteLines(lines int) {
	before := engine.deleteLines
	engine.deleteLines += lines
	if engine.deleteLines > maxLines {
		engine.deleteLines = maxLines
	}

	switch lines {
	case 1:
		engine.AddScore(40 * (engine.level + 1))
	case 2:
		engine.AddScore(100 * (engine.level + 1))
	case 3:
		engine.AddScore(300 * (engine.level + 1))
	case 4:
		engine.AddScore(1200 * (engine.level + 1))
	}

	per := engine.cfg.LinesPerLevel
	for crossed := engine.deleteLines/per - before/per; crossed > 0; crossed-- {
		engine.LevelUp()
	}
}

// AddScore adds to score
func (engine *Engine) AddScore(add int) {
	engine.score += add
	if engine.score > maxScore {
		engine.score = maxScore
	}
}

// LevelUp goes up a level: locked cells take the next theme and gravity
// speeds up by one step.
func (engine *Engine) LevelUp() {
	from := engine.Palette()
	engine.level++
	to := engine.Palette()
	engine.field.Recolor(from, to)

	engine.dropInterval -= engine.cfg.DropIntervalStep
	if engine.dropInterval < engine.cfg.DropIntervalMin {
		engine.dropInterval = engine.cfg.DropIntervalMin
	}
	engine.emit(&EventLevelUp{
		EventGame: EventGame{when: engine.clock.Now()},
		Level:     engine.level,
		Palette:   to,
	})
}

// spawn takes the next piece from the bag and places it at the top.
func (engine *Engine) spawn(now time.Duration) {
	t := engine.bag.Next()
	y := engine.cfg.Margin - 2
	if t == PieceL {
		y++
	}
	engine.piece = NewPiece(t, engine.cfg.spawnX(), y)
	engine.pieces++

	engine.hasSuggestion = false
	if engine.mode == ModeDemo {
		engine.suggestion, engine.hasSuggestion = Suggest(t, engine.piece.X, engine.piece.Y, engine.field)
		if engine.hasSuggestion {
			engine.logger.Printf("suggest %s next %s: %s", t, engine.bag.Peek(), engine.suggestion)
			if engine.dumps {
				engine.logger.Printf("field\n%s", engine.suggestion.Dump(t, engine.field))
			}
		}
	}
	engine.lastAutomove = now
	engine.automoveDelay = engine.cfg.AutoplayInterval
	if engine.cfg.AutoplayJitter > 0 {
		engine.automoveDelay += time.Duration(engine.rng.Int63n(int64(engine.cfg.AutoplayJitter) + 1))
	}
}

// shift moves the piece dx columns if it fits there.
func (engine *Engine) shift(dx int) bool {
	moved := engine.piece.Moved(dx, 0)
	if !engine.field.Fits(moved) {
		return false
	}
	engine.piece = moved
	return true
}

// rotate turns the piece by dir steps in place. There are no wall kicks: a
// rotation that does not fit is dropped silently.
func (engine *Engine) rotate(dir int) bool {
	rotated := engine.piece.Rotated(dir)
	if !engine.field.Fits(rotated) {
		return false
	}
	engine.piece = rotated
	return true
}

// landingRow returns the row the piece would come to rest on.
func (engine *Engine) landingRow() int {
	p := engine.piece
	for engine.field.Fits(p.Moved(0, 1)) {
		p.Y++
	}
	return p.Y
}

// Mode returns the current mode.
func (engine *Engine) Mode() Mode { return engine.mode }

// Level returns the current level, starting at 1.
func (engine *Engine) Level() int { return engine.level }

// Lines returns the number of rows cleared this game.
func (engine *Engine) Lines() int { return engine.deleteLines }

// Score returns the current score.
func (engine *Engine) Score() int { return engine.score }

// Pieces returns how many pieces have spawned this game.
func (engine *Engine) Pieces() int { return engine.pieces }

// DropInterval returns the current gravity period.
func (engine *Engine) DropInterval() time.Duration { return engine.dropInterval }

// Field returns the live field. Callers must not modify it.
func (engine *Engine) Field() *Field { return engine.field }

// Piece returns the falling piece.
func (engine *Engine) Piece() Piece { return engine.piece }

// Next returns the type of the piece after the current one.
func (engine *Engine) Next() PieceType { return engine.bag.Peek() }

// Suggestion returns the AI target for the falling piece, if any.
func (engine *Engine) Suggestion() (Suggestion, bool) {
	return engine.suggestion, engine.hasSuggestion
}

// Palette returns the colours for the current level.
func (engine *Engine) Palette() Palette {
	return ThemeForLevel(engine.level)
}

// Config returns the configuration the engine was built with.
func (engine *Engine) Config() Config { return engine.cfg }
