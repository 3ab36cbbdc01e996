package main

import (
	"time"

	"taskdesk/internal/config"

	"github.com/spf13/cobra"
)

// loadConfig reads the environment and lets any flag the user actually set win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.ServerPort, _ = flags.GetString("port")
	}
	if flags.Changed("latency") {
		cfg.SimulatedLatency, _ = flags.GetDuration("latency")
	}
	if flags.Changed("seed") {
		cfg.SeedDemoData, _ = flags.GetBool("seed")
	}
	if flags.Lookup("debounce") != nil && flags.Changed("debounce") {
		cfg.SearchDebounce, _ = flags.GetDuration("debounce")
	}
	return cfg, nil
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("latency", 300*time.Millisecond, "simulated latency per operation (overrides SIMULATED_LATENCY)")
	cmd.Flags().Bool("seed", true, "load the demo employees and tasks (overrides SEED_DEMO_DATA)")
}
