package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "actsctl",
	Short: "Astronaut Career Tracking System",
	Long: `Run the ACTS server and manage its people, duties and database.

Commands that touch the database require the DATABASE_URL environment
variable.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
