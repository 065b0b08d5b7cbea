package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rhystmorgan/contactterm/internal/backend"
	"rhystmorgan/contactterm/internal/config"
	"rhystmorgan/contactterm/internal/logutil"
	"rhystmorgan/contactterm/internal/models"
)

var sampleContacts = []models.ContactFields{
	{Name: "Alice Martin", Address: "1 Rose Lane", MobileNumber: "+44 7700 900001", Email: "alice@example.com", Message: "Call after 6pm"},
	{Name: "bob Stone", Address: "22 Mill Road", MobileNumber: "+44 7700 900002", Email: "bob@example.com", Message: "Owes me lunch"},
	{Name: "Émile Roux", Address: "3 Rue Neuve", MobileNumber: "+33 6 00 00 00 03", Email: "emile@example.com", Message: "Met at the conference"},
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory contacts backend for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger, err := logutil.New(cfg.Logging, os.Stderr)
			if err != nil {
				return err
			}

			var seed []models.ContactFields
			if v.GetBool("serve.seed") {
				seed = sampleContacts
			}
			handler := backend.NewHandler(backend.NewMemoryStore(seed...), logger)

			ln, err := net.Listen("tcp", cfg.Serve.Listen)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", cfg.Serve.Listen, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return backend.Serve(ctx, backend.NewServer(cfg.Serve.Listen, handler, logger), ln, logger)
		},
	}

	cmd.Flags().String("listen", "", "Listen address (defaults to 127.0.0.1:5000).")
	cmd.Flags().Bool("seed", false, "Start with a few sample contacts.")
	_ = v.BindPFlag("serve.listen", cmd.Flags().Lookup("listen"))
	_ = v.BindPFlag("serve.seed", cmd.Flags().Lookup("seed"))

	return cmd
}
