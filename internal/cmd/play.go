package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell"
	"github.com/spf13/cobra"

	"github.com/tetrislab/tetris-cli/internal"
	"github.com/tetrislab/tetris-cli/internal/flags"
	"github.com/tetrislab/tetris-cli/internal/prompt"
	"github.com/tetrislab/tetris-cli/internal/ranking"
	"github.com/tetrislab/tetris-cli/internal/settings"
	"github.com/tetrislab/tetris-cli/internal/tetris"
	"github.com/tetrislab/tetris-cli/internal/tetris/tui"
)

// rankingSize is how many scores the game over screen lists.
const rankingSize = 9

var (
	demoAfterFlag time.Duration
	demoFlag      bool
)

func init() {
	rootCmd.AddCommand(playCmd)
	addSeedFlag(playCmd)
	addFpsFlag(playCmd)
	playCmd.Flags().DurationVar(&demoAfterFlag, "demo-after", 0, "Idle time on the game over screen before a demo starts. 0 disables demos")
	playCmd.Flags().BoolVar(&demoFlag, "demo", false, "Start with a demo game")
}

var playCmd = &cobra.Command{
	Use:               "play",
	Aliases:           []string{"relax"},
	Short:             "Sometimes you feel like you're working too hard... relax!",
	Args:              cobra.NoArgs,
	ValidArgsFunction: noFilesArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if !prompt.IsInteractive() {
			return fmt.Errorf("%s needs a terminal", internal.Emph("tetris play"))
		}

		config, err := settings.ReadSettings()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		cfg, err := config.GameConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("demo-after") {
			cfg.DemoAfter = demoAfterFlag
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		interval, err := frameInterval(cmd, config.FrameRate())
		if err != nil {
			return err
		}
		player, err := playerName(config)
		if err != nil {
			return err
		}

		logFile, err := os.OpenFile(config.LogPath(), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file error: %w", err)
		}
		defer logFile.Close()
		logger := newLogger(logFile)

		store, err := ranking.Open(config.RankingPath())
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return play(ctx, game{
			cfg:      cfg,
			seed:     seed(cmd, config.Seed()),
			interval: interval,
			player:   player,
			store:    store,
			logger:   logger,
		})
	},
}

type game struct {
	cfg      tetris.Config
	seed     int64
	interval time.Duration
	player   string
	store    *ranking.Store
	logger   *log.Logger
}

func play(ctx context.Context, g game) error {
	g.logger.Printf("play start: player %s seed %d", g.player, g.seed)

	engine, err := tetris.NewEngine(g.cfg,
		tetris.WithRand(rand.New(rand.NewSource(g.seed))),
		tetris.WithLogger(g.logger),
		tetris.WithDumps(flags.Verbose()),
	)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("NewScreen error: %w", err)
	}
	view, err := tui.NewView(screen, g.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	keys := view.Keys(cancel)
	defer view.Stop()

	refreshRanking := func() {
		scores, err := g.store.Scores(ctx, rankingSize)
		if err != nil {
			g.logger.Println("ranking:", err)
			return
		}
		view.SetRanking(scores)
	}
	refreshRanking()

	if demoFlag {
		engine.Reset(tetris.ModeDemo)
	}

	runner := tetris.NewRunner(engine, keys, view)
	runner.SetLogger(g.logger)
	runner.Subscribe(view.Animate)
	runner.Subscribe(func(event tetris.Event) {
		over, ok := event.(*tetris.EventGameOverCover)
		if !ok || over.Demo {
			return
		}
		entry, err := g.store.Insert(ctx, ranking.Entry{
			Player: g.player,
			Score:  over.Score,
			Lines:  over.Lines,
			Level:  over.Level,
		})
		if err != nil {
			g.logger.Println("ranking:", err)
			return
		}
		g.logger.Printf("ranked %s: score %d lines %d level %d", entry.ID, entry.Score, entry.Lines, entry.Level)
		refreshRanking()
	})
	runner.Run(ctx, g.interval)

	g.logger.Println("play end")
	return nil
}

// playerName returns the configured player. The first time it offers a
// generated codename for the player to accept or change.
func playerName(config *settings.Settings) (string, error) {
	if name := config.Get("player"); name != "" {
		return name, nil
	}
	generated, err := config.Player()
	if err != nil {
		return "", err
	}
	chosen, err := chooseName(generated, prompt.PlayerName)
	if err != nil {
		return "", err
	}
	if chosen != generated {
		if err := config.Set("player", chosen); err != nil {
			return "", err
		}
	}
	return chosen, nil
}

// chooseName asks for a name starting from generated. An empty answer keeps
// generated.
func chooseName(generated string, ask func(offered string) (string, error)) (string, error) {
	chosen, err := ask(generated)
	if err != nil {
		return "", fmt.Errorf("player name: %w", err)
	}
	if chosen == "" {
		return generated, nil
	}
	return chosen, nil
}
