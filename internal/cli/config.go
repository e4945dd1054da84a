package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moltstreet/mstctl/internal/config"
	"github.com/moltstreet/mstctl/internal/ui/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set mstctl options",
		Long: `Get and set mstctl configuration options.

Examples:
  mstctl config api.key mst_abc123     # Set the API key
  mstctl config defaults.agent_id      # Get value
  mstctl config ui.page_size 25        # Set value
  mstctl config --list                 # List all config`,
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	listAll, _ := cmd.Flags().GetBool("list")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if listAll {
		for _, f := range config.Fields() {
			value, _ := cfg.GetValue(f.Key)
			if f.Key == "api.key" && value != "" {
				value = maskKey(value)
			}
			fmt.Printf("%s=%s  %s\n", f.Key, value, styles.Mutef("# %s", f.Desc))
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("usage: mstctl config <key> [value]")
	}

	key := strings.ToLower(args[0])

	if len(args) == 1 {
		value, ok := cfg.GetValue(key)
		if !ok {
			return fmt.Errorf("unknown config key: %s", key)
		}
		fmt.Println(value)
		return nil
	}

	if err := cfg.SetValue(key, args[1]); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	path, _ := config.Path()
	fmt.Println(styles.SuccessMsg(fmt.Sprintf("Set %s (%s)", key, path)))
	return nil
}

// maskKey hides all but the prefix and last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
