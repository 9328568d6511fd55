// Package config loads and validates textdir configuration.
//
// Configuration is layered: built-in defaults, then the user config file,
// then the vault config file, then TEXTDIR_* environment variables. Later
// layers win, and a layer only overrides the keys it actually sets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/vault"
)

// FileName is the config file name inside both config directories.
const FileName = "config.toml"

// Config holds the full textdir configuration.
type Config struct {
	// Vault is the vault root directory.
	Vault string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFile is where logs go; empty means stderr.
	LogFile string

	// DefaultDirection seeds the store's default on first run.
	DefaultDirection direction.Direction

	// RememberPerFile seeds the store's remember-per-file flag on first run.
	RememberPerFile bool

	// DetectContent enables first-strong content detection in resolution.
	DetectContent bool

	// RulesEnabled turns the Lua rule engine on.
	RulesEnabled bool

	// RulesPath is the rule script, vault-relative.
	RulesPath string

	// PrintStylesheet is the managed print stylesheet, vault-relative.
	PrintStylesheet string

	// WatchDebounce is the watcher debounce window in milliseconds.
	WatchDebounce int

	// WatchExtensions restricts watching to these file extensions.
	WatchExtensions []string

	// WatchIgnore lists directory names excluded from watching.
	WatchIgnore []string

	// Theme selects the TUI theme: dark or light.
	Theme string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Vault:            ".",
		LogLevel:         "info",
		LogFile:          "",
		DefaultDirection: direction.Default,
		RememberPerFile:  true,
		DetectContent:    false,
		RulesEnabled:     false,
		RulesPath:        vault.ConfigDirName + "/rules.lua",
		PrintStylesheet:  vault.ConfigDirName + "/print.css",
		WatchDebounce:    100,
		WatchExtensions:  []string{".md", ".markdown", ".txt"},
		WatchIgnore:      []string{".git", vault.ConfigDirName, "node_modules", ".obsidian", ".trash"},
		Theme:            "dark",
	}
}

// UserConfigPath returns the per-user config file location.
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "textdir", FileName), nil
}

// VaultConfigPath returns the config file location inside a vault.
func VaultConfigPath(root string) string {
	return filepath.Join(vault.ConfigDir(root), FileName)
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	if !c.DefaultDirection.IsValid() {
		return &ValidationError{Field: "direction.default", Value: string(c.DefaultDirection), Message: "must be ltr or rtl"}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log.level", Value: c.LogLevel, Message: "must be debug, info, warn, or error"}
	}
	switch c.Theme {
	case "dark", "light":
	default:
		return &ValidationError{Field: "ui.theme", Value: c.Theme, Message: "must be dark or light"}
	}
	if c.WatchDebounce < 0 || c.WatchDebounce > 60000 {
		return &ValidationError{Field: "watch.debounce_ms", Value: c.WatchDebounce, Message: "must be between 0 and 60000"}
	}
	return nil
}

// Diff returns one Change per field whose value differs between two
// configurations, keyed by the field's config path. Source is left for
// the caller to fill.
func Diff(old, updated Config) []Change {
	var changes []Change
	add := func(path string, o, n any) {
		changes = append(changes, Change{Path: path, Old: o, New: n})
	}

	if old.Vault != updated.Vault {
		add("vault", old.Vault, updated.Vault)
	}
	if old.LogLevel != updated.LogLevel {
		add("log.level", old.LogLevel, updated.LogLevel)
	}
	if old.LogFile != updated.LogFile {
		add("log.file", old.LogFile, updated.LogFile)
	}
	if old.DefaultDirection != updated.DefaultDirection {
		add("direction.default", old.DefaultDirection, updated.DefaultDirection)
	}
	if old.RememberPerFile != updated.RememberPerFile {
		add("direction.remember_per_file", old.RememberPerFile, updated.RememberPerFile)
	}
	if old.DetectContent != updated.DetectContent {
		add("direction.detect_content", old.DetectContent, updated.DetectContent)
	}
	if old.RulesEnabled != updated.RulesEnabled {
		add("rules.enabled", old.RulesEnabled, updated.RulesEnabled)
	}
	if old.RulesPath != updated.RulesPath {
		add("rules.path", old.RulesPath, updated.RulesPath)
	}
	if old.PrintStylesheet != updated.PrintStylesheet {
		add("print.stylesheet", old.PrintStylesheet, updated.PrintStylesheet)
	}
	if old.WatchDebounce != updated.WatchDebounce {
		add("watch.debounce_ms", old.WatchDebounce, updated.WatchDebounce)
	}
	if !equalStrings(old.WatchExtensions, updated.WatchExtensions) {
		add("watch.extensions", old.WatchExtensions, updated.WatchExtensions)
	}
	if !equalStrings(old.WatchIgnore, updated.WatchIgnore) {
		add("watch.ignore", old.WatchIgnore, updated.WatchIgnore)
	}
	if old.Theme != updated.Theme {
		add("ui.theme", old.Theme, updated.Theme)
	}
	return changes
}

// equalStrings compares two string slices element-wise.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
