package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML.

The output combines defaults, the nearest configuration file and any flags,
and can be saved as a starting point for a project configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Path != "" {
				fmt.Fprintf(c.out, "# loaded from %s\n", cfg.Path)
			}
			return cfg.Encode(c.out)
		},
	}
}
