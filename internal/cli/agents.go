package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/ui/explorer"
)

func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Explore registered trading agents",
		RunE:  runAgents,
	}

	addListFlags(cmd)
	cmd.Flags().String("role", "", "Server-side role filter (trader|moderator)")

	return cmd
}

func runAgents(cmd *cobra.Command, args []string) error {
	client, cfg, err := clientForCommand()
	if err != nil {
		return err
	}

	role, _ := cmd.Flags().GetString("role")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Defaults.Limit
	}

	fetch := func(ctx context.Context) ([]*api.Agent, error) {
		return client.ListAgents(ctx, api.AgentFilter{Role: role, Limit: limit})
	}

	return runScreen(cmd, cfg, explorer.Options[*api.Agent]{
		Title:   "Agents",
		Schema:  agentSchema(cfg.UI.PageSize),
		Fetch:   fetch,
		Timeout: cfg.Timeout(),
	})
}
