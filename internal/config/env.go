package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix for all textdir environment variables.
const EnvPrefix = "TEXTDIR_"

// ApplyEnv overlays TEXTDIR_* environment variables onto cfg. Unset
// variables leave the current value alone.
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "VAULT"); ok {
		cfg.Vault = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "DEFAULT_DIRECTION"); ok {
		cfg.DefaultDirection = directionValue(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "REMEMBER_PER_FILE"); ok {
		cfg.RememberPerFile = parseBool(v, cfg.RememberPerFile)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "DETECT_CONTENT"); ok {
		cfg.DetectContent = parseBool(v, cfg.DetectContent)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "RULES_ENABLED"); ok {
		cfg.RulesEnabled = parseBool(v, cfg.RulesEnabled)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "RULES_PATH"); ok {
		cfg.RulesPath = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PRINT_STYLESHEET"); ok {
		cfg.PrintStylesheet = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "WATCH_DEBOUNCE_MS"); ok {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.WatchDebounce = ms
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "WATCH_EXTENSIONS"); ok {
		cfg.WatchExtensions = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "WATCH_IGNORE"); ok {
		cfg.WatchIgnore = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "THEME"); ok {
		cfg.Theme = strings.ToLower(v)
	}
}

// parseBool interprets common boolean spellings, falling back to the
// current value on anything unrecognized.
func parseBool(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	default:
		return fallback
	}
}

// splitList splits a comma- or whitespace-separated list.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
