package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/config"
	"github.com/moltstreet/mstctl/internal/explore"
	"github.com/moltstreet/mstctl/internal/store"
	"github.com/moltstreet/mstctl/internal/ui"
	"github.com/moltstreet/mstctl/internal/ui/explorer"
	"github.com/moltstreet/mstctl/internal/ui/styles"
	"github.com/moltstreet/mstctl/internal/util"
)

// clientForCommand loads the configuration and builds an authenticated API
// client from it. Listing and mutation commands all start here.
func clientForCommand() (*api.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.API.Key == "" {
		return nil, nil, util.MissingAPIKeyError()
	}
	if cfg.API.URL == "" {
		return nil, nil, util.NewError("No API URL configured").
			WithErr(util.ErrNoAPIURL).
			WithSuggestion("mstctl config api.url https://api.moltstreet.com")
	}
	return api.New(cfg.API.URL, cfg.API.Key, cfg.Timeout()), cfg, nil
}

// resolveAgent picks the agent id for agent-scoped listings: the --agent flag
// when given, the configured default otherwise.
func resolveAgent(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Defaults.AgentID != "" {
		return cfg.Defaults.AgentID, nil
	}
	return "", util.NewError("No agent selected").
		WithMessage("Orders and pending actions are scoped to one agent.").
		WithErr(util.ErrNoAgent).
		WithSuggestion("mstctl config defaults.agent_id <agent-id>").
		WithSuggestion("or pass --agent <agent-id>")
}

// agentFromFlags resolves the agent id from a command's --agent flag and the
// configured default.
func agentFromFlags(cmd *cobra.Command, cfg *config.Config) (string, error) {
	flagValue, _ := cmd.Flags().GetString("agent")
	return resolveAgent(cfg, flagValue)
}

// openStore opens the local snapshot/audit database.
func openStore() (*store.Store, error) {
	path, err := store.DefaultPath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// addListFlags registers the output flags every listing command shares.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the refined collection as JSON and exit")
	cmd.Flags().Bool("plain", false, "Print a plain table and exit")
	cmd.Flags().Bool("save", false, "Snapshot the fetched collection to the local store")
	cmd.Flags().Int("limit", 0, "Server-side fetch cap (default from config)")
}

// newExecutor returns the dispatcher executor for row commands, wrapped so
// that every outcome lands in the local audit log, plus a cleanup that closes
// the audit store once the screen or one-shot command is done. Mutations run
// as agentID; the exchange verifies ownership against it. A store open
// failure degrades to an unaudited executor rather than blocking the command.
func newExecutor(client *api.Client, agentID string) (explore.ExecFunc, func()) {
	raw := func(ctx context.Context, kind explore.CommandKind, rowID, payload string) error {
		switch kind {
		case explore.CancelOrder:
			return client.CancelOrder(ctx, agentID, rowID)
		case explore.ApproveAction:
			return client.ApproveAction(ctx, agentID, rowID)
		case explore.RejectAction:
			return client.RejectAction(ctx, agentID, rowID, payload)
		case explore.DeleteAction:
			return client.DeleteAction(ctx, agentID, rowID)
		}
		return fmt.Errorf("%s: %w", kind, util.ErrUnknownCommand)
	}

	st, err := openStore()
	if err != nil {
		return raw, func() {}
	}

	audited := func(ctx context.Context, kind explore.CommandKind, rowID, payload string) error {
		err := raw(ctx, kind, rowID, payload)
		outcome := "ok"
		if err != nil {
			outcome = err.Error()
		}
		_ = st.LogCommand(kind.String(), rowID, outcome)
		return err
	}
	return audited, func() { _ = st.Close() }
}

// printingNotifier builds a notifier whose success and info events are echoed
// to the terminal. The one-shot mutation commands use it; failures are not
// echoed here because they propagate as returned errors.
func printingNotifier() *explore.Notifier {
	n := explore.NewNotifier()
	n.Subscribe(func(ev explore.Event) {
		switch ev.Kind {
		case explore.EventSuccess:
			fmt.Println(styles.SuccessMsg(ev.Message))
		case explore.EventInfo:
			fmt.Println(styles.InfoMsg(ev.Message))
		}
	})
	return n
}

// findByID resolves a full or short (suffix) row id within a fetched
// collection.
func findByID[E explore.Entity](rows []E, id string) (E, bool) {
	for _, r := range rows {
		full := r.EntityID()
		if full == id || strings.HasSuffix(full, id) {
			return r, true
		}
	}
	var zero E
	return zero, false
}

// runScreen renders one screen. On a terminal it launches the interactive
// explorer; otherwise (or with --json/--plain) it fetches once and prints the
// refined collection. --save snapshots the fetch before printing.
func runScreen[E explore.Entity](cmd *cobra.Command, cfg *config.Config, opts explorer.Options[E]) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	plainOut, _ := cmd.Flags().GetBool("plain")
	save, _ := cmd.Flags().GetBool("save")

	if !jsonOut && !plainOut && !save && ui.IsTTY() {
		return explorer.Run(opts)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	rows, err := opts.Fetch(ctx)
	if err != nil {
		return err
	}

	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		snap, err := st.SaveSnapshot(screenName(opts.Title), len(rows), rows)
		if err != nil {
			return err
		}
		fmt.Println(styles.SuccessMsg(fmt.Sprintf("Saved snapshot %s (%d rows)", util.ShortID(snap.ID), snap.RowCount)))
	}

	x := explore.New[E](opts.Schema)
	x.SetRows(rows)

	if jsonOut {
		return explorer.PrintJSON(opts.Schema, x.Filtered())
	}
	explorer.PrintPlain(opts.Schema, x.Filtered())
	return nil
}

func screenName(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}
