package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/ui/explorer"
)

func newTradesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Explore executed trades",
		RunE:  runTrades,
	}

	addListFlags(cmd)
	cmd.Flags().String("market", "", "Server-side market id filter")

	return cmd
}

func runTrades(cmd *cobra.Command, args []string) error {
	client, cfg, err := clientForCommand()
	if err != nil {
		return err
	}

	market, _ := cmd.Flags().GetString("market")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Defaults.Limit
	}

	fetch := func(ctx context.Context) ([]*api.Trade, error) {
		return client.ListTrades(ctx, api.TradeFilter{MarketID: market, Limit: limit})
	}

	return runScreen(cmd, cfg, explorer.Options[*api.Trade]{
		Title:   "Trades",
		Schema:  tradeSchema(cfg.UI.PageSize),
		Fetch:   fetch,
		Timeout: cfg.Timeout(),
	})
}
