package main

import (
	"fmt"

	"taskdesk/internal/logger"
	"taskdesk/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.EnvFileLoaded {
				log.Warn("no .env file found, using system environment variables")
			}

			s, err := server.Init(cfg, log)
			if err != nil {
				log.Error("server initialization failed", zap.Error(err))
				return err
			}
			return s.Run()
		},
	}
	cmd.Flags().String("port", "8080", "listen port (overrides SERVER_PORT)")
	addStoreFlags(cmd)
	return cmd
}
