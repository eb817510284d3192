package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tetrislab/tetris-cli/internal"
	"github.com/tetrislab/tetris-cli/internal/prompt"
	"github.com/tetrislab/tetris-cli/internal/settings"
	"github.com/tetrislab/tetris-cli/internal/tetris"
)

var (
	gamesFlag     int
	maxPiecesFlag int
	parallelFlag  int
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	addSeedFlag(simulateCmd)
	addFpsFlag(simulateCmd)
	simulateCmd.Flags().IntVarP(&gamesFlag, "games", "n", 8, "Number of demo games to play")
	simulateCmd.Flags().IntVar(&maxPiecesFlag, "max-pieces", 1000, "Stop a game after this many pieces. 0 plays until game over")
	simulateCmd.Flags().IntVar(&parallelFlag, "parallel", runtime.NumCPU(), "Games played at the same time")
}

var simulateCmd = &cobra.Command{
	Use:               "simulate",
	Short:             "Play demo games without a screen and summarise them",
	Args:              cobra.NoArgs,
	ValidArgsFunction: noFilesArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if gamesFlag < 1 {
			return fmt.Errorf("--games must be at least 1")
		}
		if parallelFlag < 1 {
			return fmt.Errorf("--parallel must be at least 1")
		}

		config, err := settings.ReadSettings()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		cfg, err := config.GameConfig()
		if err != nil {
			return err
		}
		frame, err := frameInterval(cmd, config.FrameRate())
		if err != nil {
			return err
		}
		base := seed(cmd, config.Seed())

		start := time.Now()
		spinner := prompt.Spinner(fmt.Sprintf("Simulating %d games...", gamesFlag))
		var finished atomic.Int32
		results := make([]tetris.SimulationResult, gamesFlag)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(parallelFlag)
		for i := range results {
			i := i
			g.Go(func() error {
				result, err := tetris.Simulate(ctx, cfg, base+int64(i), frame, maxPiecesFlag)
				if err != nil {
					return fmt.Errorf("game %d: %w", i+1, err)
				}
				results[i] = result
				spinner.Text(fmt.Sprintf("Simulating %d games... %d done", gamesFlag, finished.Add(1)))
				return nil
			})
		}
		err = g.Wait()
		spinner.Stop()
		if err != nil {
			return err
		}

		fmt.Printf("Simulated %s games in %s.\n\n", internal.Emph(gamesFlag), time.Since(start).Round(time.Millisecond))
		printSimulation(os.Stdout, results)
		return nil
	},
}

// simulationRows formats one table row per game.
func simulationRows(results []tetris.SimulationResult) [][]string {
	data := make([][]string, 0, len(results))
	for i, result := range results {
		ended := "game over"
		if !result.Finished {
			ended = "piece limit"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(result.Seed, 10),
			humanize.Comma(int64(result.Score)),
			humanize.Comma(int64(result.Lines)),
			strconv.Itoa(result.Level),
			humanize.Comma(int64(result.Pieces)),
			result.GameTime.Round(time.Second).String(),
			ended,
		})
	}
	return data
}

func printSimulation(w io.Writer, results []tetris.SimulationResult) {
	printTable(w, []string{"#", "seed", "score", "lines", "level", "pieces", "game time", "ended"}, simulationRows(results))

	if len(results) == 0 {
		return
	}
	var score, lines, best int
	for _, result := range results {
		score += result.Score
		lines += result.Lines
		best = max(best, result.Score)
	}
	fmt.Fprintf(w, "\nbest %s, mean %s, %s lines in total\n",
		internal.Good(humanize.Comma(int64(best))),
		internal.Good(humanize.Comma(int64(score/len(results)))),
		internal.Good(humanize.Comma(int64(lines))))
}
