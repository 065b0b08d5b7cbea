package main

import (
	"testing"
	"time"

	"rhystmorgan/contactterm/internal/config"
)

func TestRootCommands(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"ui", "serve"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("Expected subcommand %q, got %v (%v)", name, sub, err)
		}
	}
	if cmd.PersistentFlags().Lookup("base-url") != nil {
		t.Error("The server address must not be a flag")
	}
	if cmd.RunE == nil {
		t.Error("Expected the root command to open the UI")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	t.Setenv("CONTACTTERM_API_TIMEOUT", "2s")

	v := config.NewViper()
	cmd := newServeCmd(v)
	if err := cmd.Flags().Set("listen", ":7000"); err != nil {
		t.Fatalf("set listen: %v", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Serve.Listen != ":7000" {
		t.Errorf("Expected flag listen address, got %q", cfg.Serve.Listen)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("Expected env timeout, got %v", cfg.API.Timeout)
	}
}
