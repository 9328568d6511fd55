package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/resolver"
	"github.com/dshills/textdir/internal/vault"
)

var getExplain bool

var getCmd = &cobra.Command{
	Use:   "get <file>",
	Short: "Show the effective direction of a file",
	Long: `Resolve the effective text direction of a file.

The direction comes from the per-file store, then user rules, then content
detection, then the vault default. Use --explain to see which step decided.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		p := vault.NormalizePath(args[0])
		d, src := a.Resolver().ResolveWithSource(p)

		if jsonOutput {
			return outputJSON(map[string]string{
				"path":      p,
				"direction": d.String(),
				"source":    src.String(),
			})
		}

		if getExplain {
			PrintLabelValue("Path", p)
			PrintLabelValue("Direction", coloredBadge(d))
			PrintLabelValue("Source", src.String())
		} else {
			fmt.Println(d)
		}

		// A default answer for a file the vault does not have is often a
		// typo for a stored path.
		if src == resolver.SourceDefault && !a.FS().Exists(p) {
			if near, ok := nearestStored(p, a.Store().Paths()); ok {
				PrintInfo(fmt.Sprintf("Did you mean %q?", near))
			}
		}
		return nil
	},
}

func init() {
	getCmd.Flags().BoolVar(&getExplain, "explain", false, "Show which resolution step decided")
}
