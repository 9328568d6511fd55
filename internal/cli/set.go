package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/vault"
)

var setCmd = &cobra.Command{
	Use:   "set <file> <ltr|rtl>",
	Short: "Store an explicit direction for a file",
	Long: `Store a direction for a file and apply it to the attached surfaces.

The entry persists across sessions and wins over rules, content detection,
and the vault default whenever remember_per_file is on.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := direction.Parse(args[1])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		p := vault.NormalizePath(args[0])
		if err := a.Resolver().SetFor(p, d); err != nil {
			return fmt.Errorf("failed to set direction for %s: %w", p, err)
		}

		if jsonOutput {
			return outputJSON(map[string]string{"path": p, "direction": d.String()})
		}
		PrintSuccess(fmt.Sprintf("%s %s", p, directionBadge(d)))
		return nil
	},
}
