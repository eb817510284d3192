package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/athoscouto/codename"
	"github.com/kirsle/configdir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tetrislab/tetris-cli/internal/tetris"
)

// ErrUnknownKey is returned by Set for keys that are not settings.
var ErrUnknownKey = errors.New("unknown setting")

type kind int

const (
	kindDuration kind = iota
	kindInt
	kindString
)

// gameKeys are decoded into tetris.Config under the "game" prefix.
var gameKeys = map[string]kind{
	"drop_interval_max":  kindDuration,
	"drop_interval_min":  kindDuration,
	"drop_interval_step": kindDuration,
	"lines_per_level":    kindInt,
	"autoplay_interval":  kindDuration,
	"autoplay_jitter":    kindDuration,
	"repeat_interval":    kindDuration,
	"demo_after":         kindDuration,
}

var otherKeys = map[string]kind{
	"frame_rate": kindInt,
	"player":     kindString,
	"seed":       kindInt,
}

const (
	DefaultFrameRate = 60
	maxFrameRate     = 240
)

type Settings struct {
	path string
}

func ReadSettings() (*Settings, error) {
	configPath := configdir.LocalConfig("tetris")
	configPathFlag := viper.GetString("config-path")
	if len(configPathFlag) > 0 {
		configPath = configPathFlag
	}
	err := configdir.MakePath(configPath)
	if err != nil {
		return nil, err
	}

	setDefaults()
	viper.SetConfigName("settings")
	viper.SetConfigType("json")
	viper.AddConfigPath(configPath)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Force config creation
			if err := viper.SafeWriteConfig(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &Settings{path: configPath}, nil
}

func setDefaults() {
	def := tetris.DefaultConfig()
	for key, value := range map[string]interface{}{
		"drop_interval_max":  def.DropIntervalMax,
		"drop_interval_min":  def.DropIntervalMin,
		"drop_interval_step": def.DropIntervalStep,
		"lines_per_level":    def.LinesPerLevel,
		"autoplay_interval":  def.AutoplayInterval,
		"autoplay_jitter":    def.AutoplayJitter,
		"repeat_interval":    def.RepeatInterval,
		"demo_after":         def.DemoAfter,
	} {
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}
		viper.SetDefault("game."+key, value)
	}
	viper.SetDefault("frame_rate", DefaultFrameRate)
	viper.SetDefault("player", "")
	viper.SetDefault("seed", 0)
}

// GameConfig decodes the game settings on top of the default config.
func (s *Settings) GameConfig() (tetris.Config, error) {
	cfg := tetris.DefaultConfig()
	raw := make(map[string]interface{}, len(gameKeys))
	for key := range gameKeys {
		raw[key] = viper.Get("game." + key)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("%w: %v", tetris.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s *Settings) FrameRate() int {
	return viper.GetInt("frame_rate")
}

// Seed is the configured random seed. Zero means seed from the clock.
func (s *Settings) Seed() int64 {
	return viper.GetInt64("seed")
}

// Player returns the player name, generating and saving a codename the
// first time.
func (s *Settings) Player() (string, error) {
	if name := viper.GetString("player"); name != "" {
		return name, nil
	}
	rng, err := codename.DefaultRNG()
	if err != nil {
		return "", err
	}
	name := codename.Generate(rng, 0)
	viper.Set("player", name)
	if err := viper.WriteConfig(); err != nil {
		return name, fmt.Errorf("error saving settings: %w", err)
	}
	return name, nil
}

func lookup(key string) (kind, bool) {
	if k, ok := otherKeys[key]; ok {
		return k, true
	}
	if name, found := strings.CutPrefix(key, "game."); found {
		k, ok := gameKeys[name]
		return k, ok
	}
	return 0, false
}

// Keys lists every setting in sorted order.
func Keys() []string {
	keys := maps.Keys(otherKeys)
	for key := range gameKeys {
		keys = append(keys, "game."+key)
	}
	slices.Sort(keys)
	return keys
}

// Get returns a setting as text.
func (s *Settings) Get(key string) string {
	return viper.GetString(key)
}

// Set validates and saves one setting.
func (s *Settings) Set(key, value string) error {
	k, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var parsed interface{}
	switch k {
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		parsed = d.String()
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "frame_rate" && (n < 1 || n > maxFrameRate) {
			return fmt.Errorf("frame_rate must be between 1 and %d, got %d", maxFrameRate, n)
		}
		parsed = n
	default:
		parsed = value
	}

	previous := viper.Get(key)
	viper.Set(key, parsed)
	if _, err := s.GameConfig(); err != nil {
		viper.Set(key, previous)
		return err
	}
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}

func (s *Settings) ConfigDir() string {
	return s.path
}

func (s *Settings) RankingPath() string {
	return filepath.Join(s.path, "ranking.db")
}

func (s *Settings) LogPath() string {
	return filepath.Join(s.path, "tetris.log")
}
