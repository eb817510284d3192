package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var seedFlag int64

func addSeedFlag(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seedFlag, "seed", 0, "Random seed for the piece sequence. 0 seeds from the clock")
}

// seed picks the flag, then the setting, then the clock.
func seed(cmd *cobra.Command, configured int64) int64 {
	if cmd.Flags().Changed("seed") {
		configured = seedFlag
	}
	if configured == 0 {
		configured = time.Now().UnixNano()
	}
	return configured
}
