package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rhystmorgan/contactterm/internal/config"
)

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "contactterm",
		Short:         "Terminal client for a REST contacts collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.ReadFile(v, v.GetString("config"))
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file path (optional).")
	cmd.PersistentFlags().String("log-level", "", "Logging level: debug|info|warn|error.")
	cmd.PersistentFlags().String("log-format", "", "Logging format: text|json.")
	cmd.PersistentFlags().String("log-file", "", "Log file used by the UI.")

	bindFlag(v, "config", cmd, "config")
	bindFlag(v, "logging.level", cmd, "log-level")
	bindFlag(v, "logging.format", cmd, "log-format")
	bindFlag(v, "logging.file", cmd, "log-file")

	ui := newUICmd(v)
	cmd.AddCommand(ui, newServeCmd(v))

	// Running the bare binary opens the UI.
	cmd.RunE = ui.RunE

	return cmd
}

// bindFlag binds a persistent flag to key. viper only prefers the flag over
// defaults and env when the flag was set on the command line.
func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
}
