package flags

import (
	"github.com/spf13/cobra"
)

var verboseFlag bool

func AddVerbose(cmd *cobra.Command) {
	usage := "If set, logs field dumps for every AI suggestion."
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, usage)
}

func Verbose() bool {
	return verboseFlag
}
