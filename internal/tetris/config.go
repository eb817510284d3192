package tetris

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the field geometry and timing of a game.
type Config struct {
	Rows   int `mapstructure:"rows"`
	Cols   int `mapstructure:"cols"`
	Margin int `mapstructure:"margin"`

	DropIntervalMax  time.Duration `mapstructure:"drop_interval_max"`
	DropIntervalMin  time.Duration `mapstructure:"drop_interval_min"`
	DropIntervalStep time.Duration `mapstructure:"drop_interval_step"`
	LinesPerLevel    int           `mapstructure:"lines_per_level"`

	AutoplayInterval time.Duration `mapstructure:"autoplay_interval"`
	AutoplayJitter   time.Duration `mapstructure:"autoplay_jitter"`
	RepeatInterval   time.Duration `mapstructure:"repeat_interval"`

	// DemoAfter is the idle time on the Over screen before a demo starts.
	// Zero disables demos.
	DemoAfter time.Duration `mapstructure:"demo_after"`
}

// DefaultConfig returns the classic 20x10 layout and timings.
func DefaultConfig() Config {
	return Config{
		Rows:             26,
		Cols:             16,
		Margin:           3,
		DropIntervalMax:  500 * time.Millisecond,
		DropIntervalMin:  50 * time.Millisecond,
		DropIntervalStep: 50 * time.Millisecond,
		LinesPerLevel:    10,
		AutoplayInterval: 50 * time.Millisecond,
		AutoplayJitter:   75 * time.Millisecond,
		RepeatInterval:   200 * time.Millisecond,
		DemoAfter:        10 * time.Second,
	}
}

// Validate checks that the field can hold a spawned piece and that the
// timings are usable.
func (cfg Config) Validate() error {
	if cfg.Margin < 1 {
		return fmt.Errorf("%w: margin must be positive, got %d", ErrInvalidConfig, cfg.Margin)
	}
	if cfg.Cols-2*cfg.Margin < 4 {
		return fmt.Errorf("%w: %d columns leave no room for a piece", ErrInvalidConfig, cfg.Cols)
	}
	if cfg.Rows-2*cfg.Margin < 4 {
		return fmt.Errorf("%w: %d rows leave no room for a piece", ErrInvalidConfig, cfg.Rows)
	}
	if cfg.DropIntervalMin <= 0 || cfg.DropIntervalMax <= 0 {
		return fmt.Errorf("%w: drop intervals must be positive", ErrInvalidConfig)
	}
	if cfg.DropIntervalMin > cfg.DropIntervalMax {
		return fmt.Errorf("%w: drop_interval_min %s exceeds drop_interval_max %s", ErrInvalidConfig, cfg.DropIntervalMin, cfg.DropIntervalMax)
	}
	if cfg.DropIntervalStep < 0 {
		return fmt.Errorf("%w: drop_interval_step must not be negative", ErrInvalidConfig)
	}
	if cfg.LinesPerLevel <= 0 {
		return fmt.Errorf("%w: lines_per_level must be positive", ErrInvalidConfig)
	}
	if cfg.AutoplayInterval <= 0 || cfg.AutoplayJitter < 0 {
		return fmt.Errorf("%w: autoplay_interval must be positive and autoplay_jitter not negative", ErrInvalidConfig)
	}
	if cfg.RepeatInterval < 0 || cfg.DemoAfter < 0 {
		return fmt.Errorf("%w: repeat_interval and demo_after must not be negative", ErrInvalidConfig)
	}
	return nil
}

// spawnX is the column where new pieces appear.
func (cfg Config) spawnX() int {
	return cfg.Cols/2 - 2
}
