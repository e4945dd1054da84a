package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/ui/explorer"
)

func newMarketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markets",
		Short: "Explore prediction markets",
		Long: `Explore prediction markets.

The exchange applies only the coarse filters (--status, --category,
--limit); everything else — search, facets, sorting, paging — is refined
locally.

Examples:
  mstctl markets                       # interactive
  mstctl markets --status open --json  # open markets as JSON
  mstctl markets --save                # snapshot the fetch`,
		RunE: runMarkets,
	}

	addListFlags(cmd)
	cmd.Flags().String("status", "", "Server-side status filter (open|closed|resolved)")
	cmd.Flags().String("category", "", "Server-side category filter")

	return cmd
}

func runMarkets(cmd *cobra.Command, args []string) error {
	client, cfg, err := clientForCommand()
	if err != nil {
		return err
	}

	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Defaults.Limit
	}

	fetch := func(ctx context.Context) ([]*api.Market, error) {
		return client.ListMarkets(ctx, api.MarketFilter{Status: status, Category: category, Limit: limit})
	}

	return runScreen(cmd, cfg, explorer.Options[*api.Market]{
		Title:   "Markets",
		Schema:  marketSchema(cfg.UI.PageSize),
		Fetch:   fetch,
		Timeout: cfg.Timeout(),
	})
}
