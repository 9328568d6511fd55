package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/app"
	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/surface"
	"github.com/dshills/textdir/internal/vault"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <file>",
	Short: "Switch the text direction of a file",
	Long: `Flip a file's direction between ltr and rtl.

The new direction applies to every attached surface. With remember_per_file
on (the default) the flip also persists, so the file opens with the new
direction next session. Toggling twice restores the original direction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edit := surface.NewMemory(direction.Default)
		a, err := newApp(app.WithSurfaces(surface.Set{}.WithEdit(edit)))
		if err != nil {
			return err
		}
		defer closeApp(a)

		p := vault.NormalizePath(args[0])
		old := a.Resolver().Resolve(p)
		edit.SetDirection(old)

		next, err := a.Resolver().Toggle(p)
		if err != nil {
			return fmt.Errorf("failed to toggle %s: %w", p, err)
		}

		if jsonOutput {
			return outputJSON(map[string]string{
				"path": p,
				"old":  old.String(),
				"new":  next.String(),
			})
		}
		PrintSuccess(fmt.Sprintf("%s now %s (was %s)", p, coloredBadge(next), old))
		if !a.Store().RememberPerFile() {
			PrintWarning("remember_per_file is off: the change lasts only for this session")
		}
		return nil
	},
}
