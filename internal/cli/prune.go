package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pruneDryRun bool
	pruneForce  bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop entries whose file no longer exists",
	Long: `Remove stored direction entries for files that are gone from the vault.

Entries are never pruned automatically: renames carry them along, and this
command is the explicit cleanup for files deleted outside textdir. By
default you are asked to confirm. Use --dry-run to preview what would be
dropped and --force to skip the prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		stale := make([]string, 0)
		for _, p := range a.Store().Paths() {
			if !a.FS().Exists(p) {
				stale = append(stale, p)
			}
		}

		if len(stale) == 0 {
			if jsonOutput {
				return outputJSON(map[string]any{"pruned": []string{}})
			}
			PrintEmptyState("No stale entries found")
			return nil
		}

		if pruneDryRun {
			if jsonOutput {
				return outputJSON(map[string]any{"stale": stale, "dry_run": true})
			}
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would drop %s:", countNoun(len(stale), "stale entry", "stale entries")))
			PrintList(stale, 1)
			fmt.Println()
			PrintWarning("Run without --dry-run to drop them")
			return nil
		}

		if !pruneForce {
			PrintInfo(fmt.Sprintf("About to drop %s:", countNoun(len(stale), "stale entry", "stale entries")))
			PrintList(stale, 1)
			if !confirm("Proceed") {
				PrintInfo("Aborted")
				return nil
			}
		}

		removed, err := a.PruneStore()
		if err != nil {
			return fmt.Errorf("failed to prune store: %w", err)
		}

		if jsonOutput {
			return outputJSON(map[string]any{"pruned": removed})
		}
		PrintSuccess(fmt.Sprintf("Dropped %s", countNoun(len(removed), "stale entry", "stale entries")))
		return nil
	},
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Preview what would be dropped without dropping")
	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Skip the confirmation prompt")
}
