package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/acts/pkg/command"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/query"
)

// personCmd represents the person command
var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage people",
	Long:  `List, create and inspect people and their duty histories.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'person' requires a subcommand (list, create, show)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List people with their current rank and duty",
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		people, err := mediator.Send[query.GetPeople, []model.PersonAstronaut](cliContext(cmd.Context()), a.mediator, query.GetPeople{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list people: %v\n", err)
			os.Exit(1)
		}
		if err := writePeople(cmd.OutOrStdout(), people, output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var personCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a person",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		id, err := mediator.Send[command.CreatePerson, int64](cliContext(cmd.Context()), a.mediator, command.CreatePerson{Name: args[0]})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create person: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created person %q (id %d)\n", args[0], id)
	},
}

var personShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a person and their duty history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		res, err := mediator.Send[query.GetAstronautDutiesByName, *query.PersonDuties](cliContext(cmd.Context()), a.mediator, query.GetAstronautDutiesByName{Name: args[0]})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show person: %v\n", err)
			os.Exit(1)
		}
		writePersonDuties(cmd.OutOrStdout(), res)
	},
}

func init() {
	rootCmd.AddCommand(personCmd)
	personCmd.AddCommand(personListCmd)
	personCmd.AddCommand(personCreateCmd)
	personCmd.AddCommand(personShowCmd)

	personListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func writePeople(w io.Writer, people []model.PersonAstronaut, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(people)
	case "text":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRANK\tDUTY\tCAREER START\tCAREER END")
	for _, p := range people {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.PersonID, p.Name,
			orDash(p.CurrentRank), orDash(p.CurrentDutyTitle),
			orDash(model.FormatDate(p.CareerStartDate)), orDash(model.FormatDate(p.CareerEndDate)))
	}
	return tw.Flush()
}

func writePersonDuties(w io.Writer, res *query.PersonDuties) {
	p := res.Person
	fmt.Fprintf(w, "%s (id %d)\n", p.Name, p.PersonID)
	if !p.IsAstronaut() {
		fmt.Fprintln(w, "No astronaut career")
		return
	}
	fmt.Fprintf(w, "Rank: %s\nDuty: %s\nCareer: %s to %s\n\n",
		orDash(p.CurrentRank), orDash(p.CurrentDutyTitle),
		orDash(model.FormatDate(p.CareerStartDate)), orDash(model.FormatDate(p.CareerEndDate)))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTITLE\tSTART\tEND")
	for _, d := range res.Duties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Rank, d.DutyTitle, d.DutyStartDate.Format(model.DateLayout), orDash(model.FormatDate(d.DutyEndDate)))
	}
	_ = tw.Flush()
}
