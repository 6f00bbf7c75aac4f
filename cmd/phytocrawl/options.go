package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/adapter/filesystem"
	"github.com/user/phytochem-crawler/internal/extractor"
)

var (
	optionsHome string
	optionsURL  string
	optionsOut  string
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Build the plant list from the home page dropdown",
	Long: `Read the plant dropdown of the IMPPAT home page and write it as a CSV
with the columns Value and Plant Name.

The home page is read from a saved file, or downloaded when --url is given.

Examples:
  phytocrawl options --home impat_home.html
  phytocrawl options --url https://cb.imsc.res.in/imppat/ --out plants.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		a := newApp(cfg, logger)
		defer a.Close()

		var html string
		if optionsURL != "" {
			if html, err = a.fetcher.Fetch(ctx, optionsURL); err != nil {
				return fmt.Errorf("download home page: %w", err)
			}
		} else {
			raw, err := os.ReadFile(optionsHome)
			if err != nil {
				return fmt.Errorf("read home page: %w", err)
			}
			html = string(raw)
		}

		plants, err := extractor.ExtractPlantOptions(html)
		if err != nil {
			return err
		}

		out := optionsOut
		if out == "" {
			out = cfg.PlantCSV
		}
		if err := filesystem.NewPlantList(out).Store(ctx, plants); err != nil {
			return err
		}
		logger.Info("plant list written", zap.String("path", out), zap.Int("plants", len(plants)))
		fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d plant entries and saved to %s\n", len(plants), out)
		return nil
	},
}

func init() {
	optionsCmd.Flags().StringVar(&optionsHome, "home", "impat_home.html", "saved home page to read")
	optionsCmd.Flags().StringVar(&optionsURL, "url", "", "download the home page from this URL instead")
	optionsCmd.Flags().StringVar(&optionsOut, "out", "", "CSV to write (default: PLANT_CSV)")
}
