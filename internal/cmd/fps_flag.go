package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var fpsFlag int

func addFpsFlag(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fpsFlag, "fps", 0, "Frames per second. Defaults to the frame_rate setting")
}

// frameInterval turns a frame rate into the period between frames.
func frameInterval(cmd *cobra.Command, configured int) (time.Duration, error) {
	fps := configured
	if cmd.Flags().Changed("fps") {
		fps = fpsFlag
	}
	if fps < 1 || fps > 240 {
		return 0, fmt.Errorf("frame rate must be between 1 and 240, got %d", fps)
	}
	return time.Second / time.Duration(fps), nil
}
