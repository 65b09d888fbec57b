package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the ACTS server to be ready",
	Long: `Wait for the ACTS server to be ready by polling the status endpoint.

The status endpoint reports ready only once the database is reachable.

Example:
  actsctl wait
  actsctl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForServer(fmt.Sprintf("http://localhost:%d/", port), retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(url string, retries int, interval time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Println("Waiting for ACTS to be ready...")

	for i := 0; i < retries; i++ {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 300 {
				fmt.Println()
				fmt.Println("ACTS is ready!")
				return nil
			}
		}

		fmt.Print(".")
		time.Sleep(interval)
	}

	fmt.Println()
	return fmt.Errorf("ACTS is not ready after %d attempts", retries)
}
