package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/acts/pkg/roster"
)

// rosterCmd represents the roster command
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Import people and duty histories from a YAML roster",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'roster' requires a subcommand (load, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var rosterLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a roster file",
	Long: `Load a roster file.

People that do not exist yet are created and their duties are assigned
oldest first. Entries that are already present are skipped, so a roster
can be loaded repeatedly.

Example:
  actsctl roster load roster.yml
  actsctl roster load --dry-run roster.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		loader := roster.NewLoader(a.mediator, a.log).WithDryRun(dryRun)
		if err := loadRosterFile(cliContext(cmd.Context()), cmd.OutOrStdout(), loader, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load roster: %v\n", err)
			os.Exit(1)
		}
	},
}

var rosterWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a roster file and load it whenever it changes",
	Long: `Watch a roster file and load it whenever it changes.

The file is loaded once at start. Editors that save by replacing the file
are supported.

Example:
  actsctl roster watch /run/acts/roster.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cliContext(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		loader := roster.NewLoader(a.mediator, a.log)
		if err := watchRoster(ctx, cmd.OutOrStdout(), loader, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch roster: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(rosterCmd)
	rosterCmd.AddCommand(rosterLoadCmd)
	rosterCmd.AddCommand(rosterWatchCmd)

	rosterLoadCmd.Flags().Bool("dry-run", false, "parse and check the roster without applying it")
}

func loadRosterFile(ctx context.Context, w io.Writer, loader *roster.Loader, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open roster file: %w", err)
	}
	defer func() { _ = file.Close() }()

	result, err := loader.LoadFromReader(ctx, file)
	switch {
	case result == nil:
	case loader.DryRun():
		fmt.Fprintf(w, "Dry run: would create %d people, assign %d duties, failed %d\n",
			result.PeopleCreated, result.DutiesAssigned, result.Failed)
	default:
		fmt.Fprintf(w, "Created %d people, assigned %d duties, skipped %d, failed %d\n",
			result.PeopleCreated, result.DutiesAssigned, result.Skipped, result.Failed)
	}
	return err
}

// watchRoster loads filename, then reloads it on every write until ctx is
// done. The parent directory is watched so that replaced files are seen.
func watchRoster(ctx context.Context, w io.Writer, loader *roster.Loader, filename string) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	fmt.Fprintf(w, "Watching %s for roster changes\n", abs)
	if err := loadRosterFile(ctx, w, loader, abs); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading roster: %v\n", err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fmt.Fprintf(w, "[%s] Roster modified, reloading...\n", time.Now().Format(time.RFC3339))
			if err := loadRosterFile(ctx, w, loader, abs); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading roster: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-ctx.Done():
			fmt.Fprintln(w, "\nShutting down...")
			return nil
		}
	}
}
