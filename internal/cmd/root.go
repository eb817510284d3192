package cmd

import (
	_ "embed"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetrislab/tetris-cli/internal/flags"
)

//go:embed version.txt
var version string

var rootCmd = &cobra.Command{
	Use:     "tetris",
	Version: version,
	Long:    "Tetris for the terminal, with a greedy demo player",
}

func init() {
	if err := flags.AddConfigPath(rootCmd); err != nil {
		panic(err)
	}
	flags.AddVerbose(rootCmd)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
