package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/explore"
	"github.com/moltstreet/mstctl/internal/ui"
	"github.com/moltstreet/mstctl/internal/ui/explorer"
	"github.com/moltstreet/mstctl/internal/util"
)

func newActionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Review an agent's queued actions",
		Long: `Review an agent's queued (manual-mode) actions.

Interactively, 'a' approves, 'x' rejects (with a reason), and 'd' deletes
the selected action. All three apply to pending actions only; approving
executes the queued action, deleting drops it without executing.

Examples:
  mstctl actions                        # interactive, default agent
  mstctl actions --status pending
  mstctl actions approve 01jq8...
  mstctl actions reject 01jq8... --reason "price way off"`,
		RunE: runActions,
	}

	addListFlags(cmd)
	cmd.Flags().String("agent", "", "Agent id (default from config)")
	cmd.Flags().String("status", "", "Server-side status filter (pending|approved|rejected|expired)")
	cmd.Flags().String("type", "", "Server-side action type filter")

	cmd.AddCommand(
		newActionsApproveCmd(),
		newActionsRejectCmd(),
		newActionsDeleteCmd(),
	)

	return cmd
}

func runActions(cmd *cobra.Command, args []string) error {
	client, cfg, err := clientForCommand()
	if err != nil {
		return err
	}

	agent, err := agentFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	status, _ := cmd.Flags().GetString("status")
	actionType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Defaults.Limit
	}

	fetch := func(ctx context.Context) ([]*api.PendingAction, error) {
		return client.ListPendingActions(ctx, api.ActionFilter{AgentID: agent, Status: status, ActionType: actionType, Limit: limit})
	}

	exec, done := newExecutor(client, agent)
	defer done()

	return runScreen(cmd, cfg, explorer.Options[*api.PendingAction]{
		Title:      "Pending actions",
		Schema:     actionSchema(cfg.UI.PageSize),
		Fetch:      fetch,
		Dispatcher: explore.NewDispatcher(exec, explore.NewNotifier()),
		Commands:   explorer.Commands{Approve: true, Reject: true, Delete: true},
		Timeout:    cfg.Timeout(),
	})
}

func newActionsApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <action-id>",
		Short: "Approve a pending action, executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionCommand(cmd, args[0], explore.ApproveAction, "")
		},
	}
	cmd.Flags().String("agent", "", "Agent id (default from config)")
	return cmd
}

func newActionsRejectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject <action-id>",
		Short: "Reject a pending action with a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")
			if strings.TrimSpace(reason) == "" {
				return util.NewError("Rejection needs a reason").
					WithSuggestion(`mstctl actions reject ` + args[0] + ` --reason "..."`)
			}
			return runActionCommand(cmd, args[0], explore.RejectAction, reason)
		},
	}
	cmd.Flags().String("agent", "", "Agent id (default from config)")
	cmd.Flags().String("reason", "", "Why the action is rejected")
	return cmd
}

func newActionsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <action-id>",
		Short: "Drop a pending action without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionCommand(cmd, args[0], explore.DeleteAction, "")
		},
	}
	cmd.Flags().String("agent", "", "Agent id (default from config)")
	return cmd
}

func runActionCommand(cmd *cobra.Command, id string, kind explore.CommandKind, payload string) error {
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

	sp := ui.NewSpinner("Fetching pending actions")
	sp.Start()
	actions, err := client.ListPendingActions(ctx, api.ActionFilter{AgentID: agent, Limit: cfg.Defaults.Limit})
	sp.Stop()
	if err != nil {
		return err
	}
	action, ok := findByID(actions, id)
	if !ok {
		return util.NewError("Pending action not found").
			WithContext("id: " + id).
			WithSuggestion("mstctl actions --plain  # list action ids")
	}

	exec, done := newExecutor(client, agent)
	defer done()

	d := explore.NewDispatcher(exec, printingNotifier())
	return d.Execute(ctx, kind, action.ID, action.Status, payload)
}
