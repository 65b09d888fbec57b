package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/acts/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show ACTS configuration attributes and their sources",
	Long: `Show ACTS configuration attributes and their sources.

The values displayed by this command reflect the current state of the
configuration sources. For example, the environment variables and config
file. These may not reflect the current values used by the running ACTS
server.

Config file location: /etc/acts/acts.yml (or ACTS_CONFIG_PATH)

Example:
  actsctl configuration show
  actsctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if err := showConfiguration(cmd.OutOrStdout(), cfg, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(w io.Writer, cfg *config.ActsConfig, output string) error {
	switch output {
	case "json":
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, jsonOutput)
		return err
	case "text":
		_, err := fmt.Fprint(w, cfg.FormatText())
		return err
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
