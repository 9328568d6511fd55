package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/direction"
)

var defaultCmd = &cobra.Command{
	Use:   "default [ltr|rtl]",
	Short: "Show or set the vault default direction",
	Long: `Show or set the direction used for files with no stored entry.

The default also answers for every file while remember_per_file is off.
With no argument the current default is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		if len(args) == 0 {
			d := a.Store().DefaultDirection()
			if jsonOutput {
				return outputJSON(map[string]string{"default": d.String()})
			}
			fmt.Println(d)
			return nil
		}

		d, err := direction.Parse(args[0])
		if err != nil {
			return err
		}
		if err := a.Resolver().SetDefaultDirection(d); err != nil {
			return fmt.Errorf("failed to set default direction: %w", err)
		}

		if jsonOutput {
			return outputJSON(map[string]string{"default": d.String()})
		}
		PrintSuccess(fmt.Sprintf("Default direction set to %s", directionBadge(d)))
		return nil
	},
}
