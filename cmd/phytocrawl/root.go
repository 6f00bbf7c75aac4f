package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/pkg/config"
	"github.com/user/phytochem-crawler/pkg/logger"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "phytocrawl",
	Short: "Scrape plant and phytochemical data from IMPPAT",
	Long: `phytocrawl downloads IMPPAT plant pages and the detail pages of every
phytochemical they list, and extracts them into one JSON document per plant.

Typical use:
  phytocrawl options --home impat_home.html   # build the plant list
  phytocrawl run "Abrus precatorius"          # scrape one plant
  phytocrawl serve                            # API and queue worker`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file to read (default: ./.env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL")

	rootCmd.AddCommand(optionsCmd, fetchCmd, runCmd, extractCmd, serveCmd, failedCmd)
}

// setup loads the configuration and builds the root logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}
