package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored directions",
	Long:  `Display every file with a stored direction entry.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		entries := a.Store().Entries()
		if jsonOutput {
			return outputJSON(entries)
		}

		if len(entries) == 0 {
			PrintEmptyState("No stored directions")
			return nil
		}

		paths := a.Store().Paths()
		rows := make([][2]string, 0, len(paths))
		for _, p := range paths {
			rows = append(rows, [2]string{p, coloredBadge(entries[p])})
		}
		PrintTable([2]string{"PATH", "DIRECTION"}, rows)
		fmt.Println()
		PrintInfo(fmt.Sprintf("%s, default %s", countNoun(len(paths), "entry", "entries"), a.Store().DefaultDirection()))
		return nil
	},
}
