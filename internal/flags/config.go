package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

// AddConfigPath adds the --config-path flag and binds it for settings.ReadSettings.
func AddConfigPath(cmd *cobra.Command) error {
	cmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Path to the directory with config file")
	return viper.BindPFlag("config-path", cmd.PersistentFlags().Lookup("config-path"))
}
