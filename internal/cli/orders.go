package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/explore"
	"github.com/moltstreet/mstctl/internal/ui"
	"github.com/moltstreet/mstctl/internal/ui/explorer"
	"github.com/moltstreet/mstctl/internal/util"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Explore an agent's orders",
		Long: `Explore an agent's orders.

Interactively, 'c' cancels the selected order (open or partially filled
orders only). Cancelling refunds the locked balance.

Examples:
  mstctl orders                              # interactive, default agent
  mstctl orders --agent <id> --status open
  mstctl orders cancel 3f9k2mq               # one-shot, short ids work`,
		RunE: runOrders,
	}

	addListFlags(cmd)
	cmd.Flags().String("agent", "", "Agent id (default from config)")
	cmd.Flags().String("status", "", "Server-side status filter (open|partial|filled|cancelled)")
	cmd.Flags().String("market", "", "Server-side market id filter")

	cmd.AddCommand(newOrdersCancelCmd())

	return cmd
}

func runOrders(cmd *cobra.Command, args []string) error {
	client, cfg, err := clientForCommand()
	if err != nil {
		return err
	}

	agent, err := agentFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	status, _ := cmd.Flags().GetString("status")
	market, _ := cmd.Flags().GetString("market")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Defaults.Limit
	}

	fetch := func(ctx context.Context) ([]*api.Order, error) {
		return client.ListOrders(ctx, api.OrderFilter{AgentID: agent, Status: status, MarketID: market, Limit: limit})
	}

	exec, done := newExecutor(client, agent)
	defer done()

	return runScreen(cmd, cfg, explorer.Options[*api.Order]{
		Title:      "Orders",
		Schema:     orderSchema(cfg.UI.PageSize),
		Fetch:      fetch,
		Dispatcher: explore.NewDispatcher(exec, explore.NewNotifier()),
		Commands:   explorer.Commands{Cancel: true},
		Timeout:    cfg.Timeout(),
	})
}

func newOrdersCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an open or partially filled order",
		Args:  cobra.ExactArgs(1),
		RunE:  runOrdersCancel,
	}
	cmd.Flags().String("agent", "", "Agent id (default from config)")
	return cmd
}

func runOrdersCancel(cmd *cobra.Command, args []string) error {
	client, cfg, err := clientForCommand()
	if err != nil {
		return err
	}

	agent, err := agentFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	// Fetch first so short ids resolve and the status pre-check runs before
	// the mutation call.
	sp := ui.NewSpinner("Fetching orders")
	sp.Start()
	orders, err := client.ListOrders(ctx, api.OrderFilter{AgentID: agent, Limit: cfg.Defaults.Limit})
	sp.Stop()
	if err != nil {
		return err
	}
	order, ok := findByID(orders, args[0])
	if !ok {
		return util.NewError("Order not found").
			WithContext("id: " + args[0]).
			WithSuggestion("mstctl orders --plain  # list order ids")
	}

	exec, done := newExecutor(client, agent)
	defer done()

	d := explore.NewDispatcher(exec, printingNotifier())
	return d.Execute(ctx, explore.CancelOrder, order.ID, order.Status, "")
}
