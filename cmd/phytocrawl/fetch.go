package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchLimit int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download plant pages without extracting them",
	Long: `Download the plant pages of the first --limit plants of the plant list
into WEBPAGES_DIR as plant_NNNN_<name>.html. A limit of 0 downloads every
plant.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		a := newApp(cfg, logger)
		defer a.Close()
		if err := a.connectStores(ctx); err != nil {
			return err
		}

		p, err := a.pipeline()
		if err != nil {
			return err
		}
		saved, err := p.FetchPlantPages(ctx, fetchLimit)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d plant pages to %s\n", saved, cfg.WebpagesDir)
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 10, "number of plants to download, 0 for all")
}
