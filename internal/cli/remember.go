package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rememberCmd = &cobra.Command{
	Use:   "remember [on|off]",
	Short: "Show or set per-file direction memory",
	Long: `Control whether direction changes persist per file.

When on (the default), toggles and sets are stored and survive restarts.
When off, every file follows the vault default; stored entries are kept
but ignored until memory is turned back on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp(a)

		if len(args) == 0 {
			state := "off"
			if a.Store().RememberPerFile() {
				state = "on"
			}
			if jsonOutput {
				return outputJSON(map[string]bool{"remember_per_file": a.Store().RememberPerFile()})
			}
			fmt.Println(state)
			return nil
		}

		var remember bool
		switch strings.ToLower(args[0]) {
		case "on", "true", "yes":
			remember = true
		case "off", "false", "no":
			remember = false
		default:
			return fmt.Errorf("invalid value %q: want on or off", args[0])
		}

		if err := a.Resolver().SetRememberPerFile(remember); err != nil {
			return fmt.Errorf("failed to set remember_per_file: %w", err)
		}

		if jsonOutput {
			return outputJSON(map[string]bool{"remember_per_file": remember})
		}
		if remember {
			PrintSuccess("Per-file direction memory is on")
		} else {
			PrintSuccess("Per-file direction memory is off; files follow the vault default")
		}
		return nil
	},
}
