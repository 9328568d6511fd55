package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and keep directions in sync",
	Long: `Run the vault watcher in the foreground.

Filesystem events flow through the debounced watcher: renames relocate
stored entries, deletions drop them. SIGHUP reloads the configuration in
place; interrupt or SIGTERM stops the daemon.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(app.WithWatcher(true))
		if err != nil {
			return err
		}
		defer closeApp(a)

		PrintInfo(fmt.Sprintf("Watching %s (pid %d)", a.Root(), os.Getpid()))

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(signals)

		for sig := range signals {
			if sig == syscall.SIGHUP {
				changes, err := a.ReloadConfig()
				if err != nil {
					PrintError(fmt.Sprintf("reload failed: %v", err))
					continue
				}
				PrintInfo(fmt.Sprintf("Configuration reloaded: %s", countNoun(len(changes), "change", "changes")))
				continue
			}
			break
		}

		PrintInfo("Stopping")
		return nil
	},
}
