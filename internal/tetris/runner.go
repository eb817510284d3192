package tetris

import (
	"context"
	"io"
	"log"
	"time"
)

// Renderer draws a frame.
type Renderer interface {
	Render(Snapshot)
}

// Subscriber receives engine events. Subscribers run on the loop goroutine
// and may block, which holds the game until they return.
type Subscriber func(Event)

// RunnerStats summarises the frames a Runner has executed.
type RunnerStats struct {
	Frames        int64
	Events        int64
	LastDuration  time.Duration
	MaxDuration   time.Duration
	TotalDuration time.Duration
}

// AvgDuration is the mean frame time.
func (stats RunnerStats) AvgDuration() time.Duration {
	if stats.Frames == 0 {
		return 0
	}
	return stats.TotalDuration / time.Duration(stats.Frames)
}

// Runner drives an engine frame by frame: poll input, advance the engine,
// hand the frame's events to subscribers, then render.
type Runner struct {
	engine      *Engine
	input       InputSource
	renderer    Renderer
	subscribers []Subscriber
	logger      *log.Logger
	stats       RunnerStats
}

// NewRunner creates a runner for engine. Input and renderer may be nil.
func NewRunner(engine *Engine, input InputSource, renderer Renderer) *Runner {
	return &Runner{
		engine:   engine,
		input:    input,
		renderer: renderer,
		logger:   log.New(io.Discard, "", 0),
	}
}

// SetLogger sets where the runner logs its start, stop and stats.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Subscribe adds fn to the subscribers, called in registration order.
func (r *Runner) Subscribe(fn Subscriber) {
	r.subscribers = append(r.subscribers, fn)
}

// Once runs a single frame.
func (r *Runner) Once() {
	start := time.Now()

	var in Intents
	if r.input != nil {
		in = r.input.Poll()
	}
	events := r.engine.Tick(in)
	for _, event := range events {
		for _, fn := range r.subscribers {
			fn(event)
		}
	}
	if r.renderer != nil {
		r.renderer.Render(r.engine.Snapshot())
	}

	duration := time.Since(start)
	r.stats.Frames++
	r.stats.Events += int64(len(events))
	r.stats.LastDuration = duration
	r.stats.TotalDuration += duration
	if duration > r.stats.MaxDuration {
		r.stats.MaxDuration = duration
	}
}

// Run executes a frame every interval until ctx is cancelled.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	r.logger.Printf("Runner Run start, interval %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if r.renderer != nil {
		r.renderer.Render(r.engine.Snapshot())
	}
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			r.Once()
		}
	}

	stats := r.stats
	r.logger.Printf("Runner Run end: %d frames, %d events, avg %s, max %s",
		stats.Frames, stats.Events, stats.AvgDuration(), stats.MaxDuration)
}

// Stats returns the frame statistics so far.
func (r *Runner) Stats() RunnerStats {
	return r.stats
}
