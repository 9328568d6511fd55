package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textdir/internal/direction"
)

// fileConfig mirrors the TOML document. Scalar fields are pointers so a
// layer only overrides what it actually sets.
type fileConfig struct {
	Vault     *string       `toml:"vault"`
	Log       *logSection   `toml:"log"`
	Direction *dirSection   `toml:"direction"`
	Rules     *rulesSection `toml:"rules"`
	Print     *printSection `toml:"print"`
	Watch     *watchSection `toml:"watch"`
	UI        *uiSection    `toml:"ui"`
}

type logSection struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

type dirSection struct {
	Default         *string `toml:"default"`
	RememberPerFile *bool   `toml:"remember_per_file"`
	DetectContent   *bool   `toml:"detect_content"`
}

type rulesSection struct {
	Enabled *bool   `toml:"enabled"`
	Path    *string `toml:"path"`
}

type printSection struct {
	Stylesheet *string `toml:"stylesheet"`
}

type watchSection struct {
	DebounceMS *int     `toml:"debounce_ms"`
	Extensions []string `toml:"extensions"`
	Ignore     []string `toml:"ignore"`
}

type uiSection struct {
	Theme *string `toml:"theme"`
}

// Load builds the configuration for a vault: defaults, then the user
// file, then the vault file, then environment variables. A missing file
// is not an error; a malformed one is.
func Load(vaultRoot string) (Config, error) {
	cfg := Default()

	if userPath, err := UserConfigPath(); err == nil {
		if err := applyFile(&cfg, userPath); err != nil {
			return cfg, err
		}
	}

	if vaultRoot != "" {
		if err := applyFile(&cfg, VaultConfigPath(vaultRoot)); err != nil {
			return cfg, err
		}
	}

	ApplyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile applies a single TOML file over the defaults. Used by tests
// and by `textdir` when an explicit --config flag is given.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := applyFile(&cfg, path); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFile merges one TOML file into cfg. Missing files are skipped.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return &ParseError{Path: path, Err: err}
	}

	fc.apply(cfg)
	return nil
}

// apply merges the set fields of a parsed file into cfg.
func (fc fileConfig) apply(cfg *Config) {
	if fc.Vault != nil {
		cfg.Vault = *fc.Vault
	}
	if fc.Log != nil {
		if fc.Log.Level != nil {
			cfg.LogLevel = *fc.Log.Level
		}
		if fc.Log.File != nil {
			cfg.LogFile = *fc.Log.File
		}
	}
	if fc.Direction != nil {
		if fc.Direction.Default != nil {
			cfg.DefaultDirection = directionValue(*fc.Direction.Default)
		}
		if fc.Direction.RememberPerFile != nil {
			cfg.RememberPerFile = *fc.Direction.RememberPerFile
		}
		if fc.Direction.DetectContent != nil {
			cfg.DetectContent = *fc.Direction.DetectContent
		}
	}
	if fc.Rules != nil {
		if fc.Rules.Enabled != nil {
			cfg.RulesEnabled = *fc.Rules.Enabled
		}
		if fc.Rules.Path != nil {
			cfg.RulesPath = *fc.Rules.Path
		}
	}
	if fc.Print != nil && fc.Print.Stylesheet != nil {
		cfg.PrintStylesheet = *fc.Print.Stylesheet
	}
	if fc.Watch != nil {
		if fc.Watch.DebounceMS != nil {
			cfg.WatchDebounce = *fc.Watch.DebounceMS
		}
		if fc.Watch.Extensions != nil {
			cfg.WatchExtensions = fc.Watch.Extensions
		}
		if fc.Watch.Ignore != nil {
			cfg.WatchIgnore = fc.Watch.Ignore
		}
	}
	if fc.UI != nil && fc.UI.Theme != nil {
		cfg.Theme = *fc.UI.Theme
	}
}

// directionValue normalizes a direction string into the typed field while
// preserving unknown values for Validate to reject.
func directionValue(s string) direction.Direction {
	if d, err := direction.Parse(s); err == nil {
		return d
	}
	return direction.Direction(s)
}
