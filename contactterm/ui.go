package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rhystmorgan/contactterm/internal/api"
	"rhystmorgan/contactterm/internal/config"
	"rhystmorgan/contactterm/internal/logutil"
	"rhystmorgan/contactterm/internal/views"
)

func newUICmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the contacts screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI, so logs go to a file.
			logger, closer, err := logutil.NewFileLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer closer.Close()

			client, err := api.NewClient(cfg.ToClientConfig())
			if err != nil {
				return fmt.Errorf("failed to initialize contacts client: %w", err)
			}
			defer client.Close()

			logger.Info("starting ui", "base_url", client.BaseURL(), "timeout", cfg.API.Timeout)

			contacts := views.NewContactsModel(cmd.Context(), client, logger)
			p := tea.NewProgram(views.NewAppModel(contacts, client), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run application: %w", err)
			}
			return nil
		},
	}
}
