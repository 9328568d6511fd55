package app

import (
	"github.com/dshills/textdir/internal/config"
	"github.com/dshills/textdir/internal/logging"
)

// ReloadConfig re-reads the layered configuration, applies the changes
// that can take effect live, and notifies config subscribers. The watch
// daemon calls this on SIGHUP.
//
// Log level, default direction, and remember-per-file apply immediately.
// Rules and detection wiring are fixed at bootstrap; changes to them are
// reported but take effect on the next start.
func (a *Application) ReloadConfig() ([]config.Change, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}

	fresh, _, err := loadConfig(a.opts)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	old := a.cfg
	a.cfg = fresh
	a.mu.Unlock()

	changes := config.Diff(old, fresh)
	for _, c := range changes {
		a.applyChange(c)
	}
	a.notifier.NotifyAll(changes)

	// The rules file may have changed even when the config did not.
	if a.rules != nil {
		if err := a.rules.Reload(); err != nil {
			a.appLog.Warn("failed to reload rules: %v", err)
		}
	}

	if len(changes) > 0 {
		a.appLog.Info("configuration reloaded: %d changes", len(changes))
	}
	return changes, nil
}

// applyChange applies a single configuration change where live application
// is possible.
func (a *Application) applyChange(c config.Change) {
	switch c.Path {
	case "log.level":
		a.logger.SetLevel(logging.ParseLevel(a.Config().LogLevel))

	case "direction.default":
		if err := a.resolver.SetDefaultDirection(a.Config().DefaultDirection); err != nil {
			a.appLog.Warn("failed to apply default direction: %v", err)
		}

	case "direction.remember_per_file":
		if err := a.resolver.SetRememberPerFile(a.Config().RememberPerFile); err != nil {
			a.appLog.Warn("failed to apply remember-per-file: %v", err)
		}

	case "rules.enabled", "rules.path", "direction.detect_content", "watch.debounce_ms", "watch.extensions", "watch.ignore", "vault":
		a.appLog.Info("config change to %s takes effect on restart", c.Path)
	}
}
