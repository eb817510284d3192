package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tetrislab/tetris-cli/internal"
	"github.com/tetrislab/tetris-cli/internal/flags"
	"github.com/tetrislab/tetris-cli/internal/ranking"
	"github.com/tetrislab/tetris-cli/internal/settings"
)

var (
	limitFlag int
	clearFlag bool
)

func init() {
	rootCmd.AddCommand(scoresCmd)
	scoresCmd.Flags().IntVarP(&limitFlag, "limit", "l", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&clearFlag, "clear", false, "Delete every recorded score")
	flags.AddYes(scoresCmd, "Confirms clearing the ranking")
}

var scoresCmd = &cobra.Command{
	Use:               "scores",
	Short:             "Show the best games played",
	Args:              cobra.NoArgs,
	ValidArgsFunction: noFilesArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		config, err := settings.ReadSettings()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		store, err := ranking.Open(config.RankingPath())
		if err != nil {
			return err
		}
		defer store.Close()

		if clearFlag {
			if !flags.Yes() {
				fmt.Println(internal.Warn("This deletes every recorded score."))
				ok, err := promptConfirmation("Are you sure you want to do this?")
				if err != nil {
					return fmt.Errorf("could not get prompt confirmed by user: %w", err)
				}
				if !ok {
					fmt.Println("Ranking kept.")
					return nil
				}
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Ranking cleared.")
			return nil
		}

		entries, err := store.Top(cmd.Context(), limitFlag)
		if err != nil {
			return err
		}
		printScores(os.Stdout, entries)
		return nil
	},
}

func printScores(w io.Writer, entries []ranking.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No games recorded yet. Start one with %s.\n", internal.Emph("tetris play"))
		return
	}

	data := make([][]string, 0, len(entries))
	for i, entry := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			entry.Player,
			humanize.Comma(int64(entry.Score)),
			strconv.Itoa(entry.Lines),
			strconv.Itoa(entry.Level),
			humanize.Time(entry.PlayedAt),
		})
	}
	printTable(w, []string{"rank", "player", "score", "lines", "level", "played"}, data)
}
