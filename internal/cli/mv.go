package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/vault"
)

var mvEntryOnly bool

var mvCmd = &cobra.Command{
	Use:   "mv <old> <new>",
	Short: "Rename a file and carry its direction along",
	Long: `Rename a file inside the vault.

The stored direction entry follows the file to its new path. Use
--entry-only to relocate just the entry when the file was already moved
by another tool.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		oldPath := vault.NormalizePath(args[0])
		newPath := vault.NormalizePath(args[1])
		if err := a.MoveFile(context.Background(), oldPath, newPath, mvEntryOnly); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"old": oldPath, "new": newPath})
		}
		if mvEntryOnly {
			PrintSuccess(fmt.Sprintf("Entry relocated: %s to %s", oldPath, newPath))
		} else {
			PrintSuccess(fmt.Sprintf("Renamed %s to %s", oldPath, newPath))
		}
		return nil
	},
}

func init() {
	mvCmd.Flags().BoolVar(&mvEntryOnly, "entry-only", false, "Relocate the stored entry without touching the filesystem")
}
