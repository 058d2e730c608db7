package main

import (
	"github.com/Temutjin2k/agro-insurance/config"
	"github.com/Temutjin2k/agro-insurance/internal/app"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, log, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()

		config.PrintConfig(cfg, log)
		metrics.SetService(cfg.ServiceName)
		app.Version = Version

		application, err := app.NewApplication(ctx, *cfg, log)
		if err != nil {
			log.Error(ctx, "failed to init application", err)
			return err
		}

		if err = application.Run(ctx); err != nil {
			log.Error(ctx, "failed to run application", err)
			return err
		}
		return nil
	},
}

// setup loads the configuration and builds the logger it describes.
// closeLog flushes the log file, if any.
func setup() (*config.Config, logger.Logger, func(), error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if !logger.ValidateLogLevel(cfg.Log.Level) {
		cfg.Log.Level = logger.LevelInfo
	}

	file := logger.NewFileWriter(logger.FileConfig{
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if file == nil {
		return cfg, logger.InitLogger(cfg.ServiceName, cfg.Log.Level), func() {}, nil
	}

	log := logger.InitLogger(cfg.ServiceName, cfg.Log.Level, file)
	return cfg, log, func() { _ = file.Close() }, nil
}
