package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/ui/styles"
	"github.com/moltstreet/mstctl/internal/util"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect saved collection snapshots",
		Long: `Inspect collection snapshots saved with --save.

Snapshot bodies are canonical JSON, so diffing two snapshots of the same
screen shows exactly which rows changed between fetches.

Examples:
  mstctl orders --save            # take a snapshot
  mstctl snapshot list
  mstctl snapshot show 3f9k2mq    # short ids work
  mstctl snapshot diff 3f9k2mq p8xw04n`,
	}

	cmd.AddCommand(
		newSnapshotSaveCmd(),
		newSnapshotListCmd(),
		newSnapshotShowCmd(),
		newSnapshotDiffCmd(),
	)

	return cmd
}

func newSnapshotSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "save <markets|orders|agents|actions|trades>",
		Short:     "Fetch a collection and snapshot it",
		ValidArgs: []string{"markets", "orders", "agents", "actions", "trades"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE:      runSnapshotSave,
	}
	cmd.Flags().String("agent", "", "Agent id for agent-scoped screens (default from config)")
	return cmd
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	client, cfg, err := clientForCommand()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()
	limit := cfg.Defaults.Limit

	var rows any
	var count int
	switch args[0] {
	case "markets":
		markets, err := client.ListMarkets(ctx, api.MarketFilter{Limit: limit})
		if err != nil {
			return err
		}
		rows, count = markets, len(markets)
	case "orders":
		agent, err := agentFromFlags(cmd, cfg)
		if err != nil {
			return err
		}
		orders, err := client.ListOrders(ctx, api.OrderFilter{AgentID: agent, Limit: limit})
		if err != nil {
			return err
		}
		rows, count = orders, len(orders)
	case "agents":
		agents, err := client.ListAgents(ctx, api.AgentFilter{Limit: limit})
		if err != nil {
			return err
		}
		rows, count = agents, len(agents)
	case "actions":
		agent, err := agentFromFlags(cmd, cfg)
		if err != nil {
			return err
		}
		actions, err := client.ListPendingActions(ctx, api.ActionFilter{AgentID: agent, Limit: limit})
		if err != nil {
			return err
		}
		rows, count = actions, len(actions)
	case "trades":
		trades, err := client.ListTrades(ctx, api.TradeFilter{Limit: limit})
		if err != nil {
			return err
		}
		rows, count = trades, len(trades)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.SaveSnapshot(args[0], count, rows)
	if err != nil {
		return err
	}
	fmt.Println(styles.SuccessMsg(fmt.Sprintf("Saved %s snapshot %s (%d rows)", args[0], util.ShortID(snap.ID), snap.RowCount)))
	return nil
}

func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			snaps, err := st.ListSnapshots()
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println(styles.MutedMsg("No snapshots yet. Take one with e.g. 'mstctl orders --save'."))
				return nil
			}

			for _, snap := range snaps {
				fmt.Printf("%s  %-16s  %5d rows  %s\n",
					styles.ID(util.ShortID(snap.ID)),
					snap.Screen,
					snap.RowCount,
					styles.Mute(util.RelativeTime(snap.TakenAt)),
				)
			}
			return nil
		},
	}
}

func newSnapshotShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <snapshot-id>",
		Short: "Print a snapshot's rows as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			snap, err := st.GetSnapshot(args[0])
			if err != nil {
				return err
			}
			fmt.Println(string(snap.Body))
			return nil
		},
	}
}

func newSnapshotDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <snapshot-a> <snapshot-b>",
		Short: "Show what changed between two snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			a, err := st.GetSnapshot(args[0])
			if err != nil {
				return err
			}
			b, err := st.GetSnapshot(args[1])
			if err != nil {
				return err
			}

			if a.Screen != b.Screen {
				fmt.Println(styles.WarningMsg(fmt.Sprintf("Comparing different screens: %s vs %s", a.Screen, b.Screen)))
			}

			fmt.Printf("%s %s (%d rows) %s %s (%d rows)\n\n",
				styles.ID(util.ShortID(a.ID)), styles.Mute(util.RelativeTime(a.TakenAt)), a.RowCount,
				styles.SymbolArrow,
				styles.ID(util.ShortID(b.ID)), b.RowCount)

			printDiff(string(a.Body), string(b.Body))
			return nil
		},
	}
}

// printDiff renders a line-level diff of two snapshot bodies, unchanged runs
// collapsed to a count.
func printDiff(before, after string) {
	dmp := diffmatchpatch.New()
	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	changed := false
	for _, d := range diffs {
		lines := strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			fmt.Println(styles.Mutef("  ... %d unchanged lines", len(lines)))
		case diffmatchpatch.DiffInsert:
			changed = true
			for _, line := range lines {
				fmt.Println(styles.DiffAddLine.Render("+ " + line))
			}
		case diffmatchpatch.DiffDelete:
			changed = true
			for _, line := range lines {
				fmt.Println(styles.DiffRemoveLine.Render("- " + line))
			}
		}
	}

	if !changed {
		fmt.Println(styles.SuccessMsg("Snapshots are identical"))
	}
}
