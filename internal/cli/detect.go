package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/vault"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Classify a file's direction from its content",
	Long: `Report the direction of a file's first strongly directional character.

Hebrew and Arabic script classify as rtl; Latin and other left-to-right
scripts classify as ltr. A file of digits and punctuation has no strong
characters and reports nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		p := vault.NormalizePath(args[0])
		data, err := a.FS().ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		d, ok := direction.Detect(string(data))
		if jsonOutput {
			out := map[string]any{"path": p, "detected": ok}
			if ok {
				out["direction"] = d.String()
			}
			return outputJSON(out)
		}

		if !ok {
			PrintInfo(fmt.Sprintf("%s has no strongly directional content", p))
			return nil
		}
		fmt.Println(d)
		return nil
	},
}
