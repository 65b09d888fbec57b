package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/acts/pkg/audit"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect the audit log",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'log' requires a subcommand (list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit log entries, newest first",
	Long: `List recent audit log entries, newest first.

Example:
  actsctl log list
  actsctl log list --level error --limit 50`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		levelFlag, _ := cmd.Flags().GetString("level")
		output, _ := cmd.Flags().GetString("output")

		filter := audit.Filter{Limit: limit}
		if levelFlag != "" {
			level, err := audit.LevelString(levelFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid --level: %v\n", err)
				os.Exit(1)
			}
			filter.Level = &level
		}

		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		entries, err := a.audit.List(cmd.Context(), filter)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := writeEntries(cmd.OutOrStdout(), entries, output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logListCmd)

	logListCmd.Flags().IntP("limit", "n", 20, "maximum number of entries (0 for all)")
	logListCmd.Flags().StringP("level", "l", "", "only show entries of this level (info, error, success)")
	logListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func writeEntries(w io.Writer, entries []audit.Entry, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	case "text":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tLEVEL\tSOURCE\tUSER\tMESSAGE")
	for _, e := range entries {
		msg := e.Message
		if e.Exception != "" {
			msg += ": " + e.Exception
		}
		user := e.UserID
		if user == "" {
			user = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Timestamp.Format(time.RFC3339), e.Level, e.Source, user, msg)
	}
	return tw.Flush()
}
