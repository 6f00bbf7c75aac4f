package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/phytochem-crawler/internal/adapter/postgres"
)

var failedLimit int

var failedCmd = &cobra.Command{
	Use:   "failed",
	Short: "List pages that could not be downloaded",
	Long: `List the most recent download failures recorded in PostgreSQL.
Needs POSTGRES_URL. Failed pages are not retried automatically; run the
plant again to retry them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if cfg.PostgresURL == "" {
			return errors.New("failed needs POSTGRES_URL")
		}
		a := newApp(cfg, logger)
		defer a.Close()
		if err := a.connectStores(ctx); err != nil {
			return err
		}

		pages, err := postgres.NewFailedPageRepo(a.pool).FindRecent(ctx, failedLimit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LAST ATTEMPT\tTRIES\tTYPE\tPLANT\tURL\tREASON")
		for _, p := range pages {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
				p.LastAttempt.Format(time.RFC3339), p.RetryCount, p.PageType, p.PlantName, p.URL, p.FailureReason)
		}
		return tw.Flush()
	},
}

func init() {
	failedCmd.Flags().IntVar(&failedLimit, "limit", 20, "number of failures to show")
}
