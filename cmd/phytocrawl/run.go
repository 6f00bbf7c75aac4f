package main

import (
	"github.com/spf13/cobra"
)

var runForce bool

var runCmd = &cobra.Command{
	Use:   "run NAME...",
	Short: "Scrape the named plants",
	Long: `Scrape the named plants end to end: the plant page, then the five
detail pages of every phytochemical it lists. Names are matched against the
plant list without regard to case.

One JSON document per plant is written under JSONS_DIR, and to PostgreSQL
when POSTGRES_URL is set. With REDIS_ADDR set, plants scraped within
DEDUPLICATION_HOURS are skipped unless --force is given.

Examples:
  phytocrawl run "Abrus precatorius"
  phytocrawl run --force "Curcuma longa" "Zingiber officinale"`,
	Args: cobra.MinimumNArgs(1),
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
		summary, err := p.Run(ctx, args, runForce)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), summary)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runForce, "force", false, "scrape even if scraped recently")
}
