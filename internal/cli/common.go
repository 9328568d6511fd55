package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/dshills/textdir/internal/app"
)

// shutdownTimeout bounds how long a command waits for the application to
// release its watcher and rules worker.
const shutdownTimeout = 5 * time.Second

// newApp builds an application from the persistent flags. Commands that
// need a watcher or surfaces pass extra options.
func newApp(extra ...app.Option) (*app.Application, error) {
	opts := make([]app.Option, 0, len(extra)+3)
	if vaultFlag != "" {
		opts = append(opts, app.WithVault(vaultFlag))
	}
	if configFlag != "" {
		opts = append(opts, app.WithConfigFile(configFlag))
	}
	if logLevelFlag != "" {
		opts = append(opts, app.WithLogLevel(logLevelFlag))
	}
	opts = append(opts, extra...)
	return app.New(opts...)
}

// closeApp shuts the application down with a bounded timeout.
func closeApp(a *app.Application) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		PrintError(fmt.Sprintf("shutdown: %v", err))
	}
}

// confirm asks a yes/no question and reads the answer from stdin.
// Anything other than y or yes declines.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// suggestionMaxDistance caps how far a stored path may be from the query
// before a suggestion is dropped as noise.
const suggestionMaxDistance = 5

// nearestStored returns the stored path closest to the query by edit
// distance, if one is close enough to be a plausible typo.
func nearestStored(query string, stored []string) (string, bool) {
	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, p := range stored {
		if d := levenshtein.ComputeDistance(query, p); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, best != ""
}

// outputJSON writes a value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
