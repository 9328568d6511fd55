package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/app"
	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/surface"
	"github.com/dshills/textdir/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse and edit directions in a terminal UI",
	Long: `Open an interactive terminal interface for the vault.

The left pane lists vault files with their effective directions; the right
pane previews the selected file aligned per its direction. Press ? inside
the UI for the key map.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		edit := surface.NewMemory(direction.Default)
		a, err := newApp(app.WithSurfaces(surface.Set{}.WithEdit(edit)))
		if err != nil {
			return err
		}
		defer closeApp(a)

		return ui.Run(a, edit)
	},
}
