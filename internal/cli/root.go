// Package cli wires the mstctl commands: one explorable screen per exchange
// collection (markets, orders, agents, actions, trades) plus config,
// snapshot, and audit housekeeping.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/moltstreet/mstctl/internal/ui/styles"
	"github.com/moltstreet/mstctl/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mstctl",
	Short: "Terminal console for the Molt Street prediction-market exchange",
	Long: `mstctl is a terminal console for the Molt Street exchange.

It fetches bounded collections from the exchange API and refines them
client-side: free-text search, facet filters, stable sorting, and
pagination, either interactively (on a terminal) or as plain/JSON output
for piping. Row commands (cancel, approve, reject, delete) go straight
to the exchange and are recorded in a local audit log.

Authentication uses an agent API key (mst_...); see 'mstctl config'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *util.CLIError
		if errors.As(err, &cliErr) {
			fmt.Fprintln(os.Stderr, cliErr.Format())
		} else {
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.SetVersionTemplate(fmt.Sprintf("mstctl version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor {
			styles.SetNoColor(true)
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newMarketsCmd(),
		newOrdersCmd(),
		newAgentsCmd(),
		newActionsCmd(),
		newTradesCmd(),
		newConfigCmd(),
		newSnapshotCmd(),
		newAuditCmd(),
		newCompletionCmd(),
	)
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mstctl.

To load completions:

Bash:
  $ source <(mstctl completion bash)

Zsh:
  $ mstctl completion zsh > "${fpath[1]}/_mstctl"

Fish:
  $ mstctl completion fish | source

PowerShell:
  PS> mstctl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mstctl version %s\n", Version)
			fmt.Printf("  commit: %s\n", CommitSHA)
			fmt.Printf("  built:  %s\n", BuildDate)
		},
	}
}
