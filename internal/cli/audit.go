package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/ui/styles"
	"github.com/moltstreet/mstctl/internal/util"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the local log of dispatched row commands",
		Args:  cobra.NoArgs,
		RunE:  runAudit,
	}

	cmd.Flags().Int("limit", 50, "Maximum entries to show")

	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.ListCommands(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(styles.MutedMsg("No commands dispatched yet."))
		return nil
	}

	for _, e := range entries {
		outcome := styles.SuccessText("ok")
		if e.Outcome != "ok" {
			outcome = styles.ErrorText(e.Outcome)
		}
		fmt.Printf("%s  %-15s  %s  %s  %s\n",
			styles.Mute(util.RelativeTimeShort(e.CreatedAt)),
			e.Kind,
			styles.ID(util.ShortID(e.RowID)),
			outcome,
			styles.Mute(util.ShortID(e.ID)),
		)
	}
	return nil
}
