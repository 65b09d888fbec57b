package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/acts/pkg/command"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
)

// dutyCmd represents the duty command
var dutyCmd = &cobra.Command{
	Use:   "duty",
	Short: "Manage astronaut duties",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'duty' requires a subcommand (assign)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var dutyAssignCmd = &cobra.Command{
	Use:   "assign <name>",
	Short: "Assign a new duty to a person",
	Long: `Assign a new duty to a person.

The person's current duty, if any, ends the day before the new one starts.
A duty titled RETIRED ends the person's career on its start date.

Example:
  actsctl duty assign "John Doe" --rank CPT --title PILOT --start 2020-01-01`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank, _ := cmd.Flags().GetString("rank")
		title, _ := cmd.Flags().GetString("title")
		startFlag, _ := cmd.Flags().GetString("start")

		start, err := model.ParseDate(startFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --start: %v\n", err)
			os.Exit(1)
		}

		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		id, err := mediator.Send[command.CreateAstronautDuty, int64](cliContext(cmd.Context()), a.mediator, command.CreateAstronautDuty{
			Name:          args[0],
			Rank:          rank,
			DutyTitle:     title,
			DutyStartDate: start,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to assign duty: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %q (duty id %d)\n", title, args[0], id)
	},
}

func init() {
	rootCmd.AddCommand(dutyCmd)
	dutyCmd.AddCommand(dutyAssignCmd)

	dutyAssignCmd.Flags().String("rank", "", "rank held during the duty")
	dutyAssignCmd.Flags().String("title", "", "duty title")
	dutyAssignCmd.Flags().String("start", "", "duty start date (YYYY-MM-DD)")
	_ = dutyAssignCmd.MarkFlagRequired("rank")
	_ = dutyAssignCmd.MarkFlagRequired("title")
	_ = dutyAssignCmd.MarkFlagRequired("start")
}
