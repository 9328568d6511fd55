package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/vault"
)

var clearAll bool

var clearCmd = &cobra.Command{
	Use:   "clear [file]",
	Short: "Forget the stored direction of a file",
	Long: `Remove a file's stored direction entry.

The file falls back to the rest of the resolution chain: rules, content
detection, then the vault default. Use --all to forget every entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if clearAll && len(args) > 0 {
			return fmt.Errorf("cannot combine --all with a file argument")
		}
		if !clearAll && len(args) == 0 {
			return fmt.Errorf("requires a file argument or --all")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		if clearAll {
			n := a.Store().Len()
			if n == 0 {
				PrintInfo("No stored directions to clear")
				return nil
			}
			if err := a.Store().Clear(); err != nil {
				return fmt.Errorf("failed to clear entries: %w", err)
			}
			PrintSuccess(fmt.Sprintf("Cleared %s", countNoun(n, "entry", "entries")))
			return nil
		}

		p := vault.NormalizePath(args[0])
		if _, ok := a.Store().Get(p); !ok {
			PrintInfo(fmt.Sprintf("No stored direction for %s", p))
			return nil
		}
		if err := a.Resolver().ClearFor(p); err != nil {
			return fmt.Errorf("failed to clear %s: %w", p, err)
		}
		PrintSuccess(fmt.Sprintf("Cleared %s", p))
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Forget every stored entry")
}
