// Package app wires the textdir components together: configuration,
// logging, the event bus, the direction store, optional Lua rules, the
// presentation surfaces, and the resolver that connects them. It owns
// bootstrap and shutdown ordering; the CLI and TUI front ends both sit on
// top of an Application.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/textdir/internal/config"
	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/event"
	"github.com/dshills/textdir/internal/logging"
	"github.com/dshills/textdir/internal/resolver"
	"github.com/dshills/textdir/internal/rules"
	"github.com/dshills/textdir/internal/store"
	"github.com/dshills/textdir/internal/surface"
	"github.com/dshills/textdir/internal/vault"
)

// Application is the assembled textdir runtime.
type Application struct {
	mu  sync.RWMutex
	cfg config.Config

	opts     options
	root     string
	notifier *config.Notifier

	logger   *logging.Logger // base logger, level-adjustable on reload
	appLog   *logging.Logger
	logClose io.Closer

	bus       *event.Bus
	fs        vault.FS
	store     *store.Store
	rules     *rules.Engine
	ruleProxy *ruleProxy
	resolver  *resolver.Resolver
	documents *DocumentManager

	watcher     *vault.Debounced
	publisher   *vault.Publisher
	watchCancel context.CancelFunc
	watchDone   chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once
}

// options collects the functional option values.
type options struct {
	vault       string
	configFile  string
	logger      *logging.Logger
	logLevel    string
	fs          vault.FS
	watch       bool
	surfaces    surface.Set
	hasSurfaces bool
}

// Option configures an Application.
type Option func(*options)

// WithVault sets the vault root, overriding configuration.
func WithVault(path string) Option {
	return func(o *options) {
		o.vault = path
	}
}

// WithConfigFile loads configuration from an explicit file instead of the
// user and vault layers.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithLogger supplies a prebuilt logger. Log level and log file
// configuration are ignored when set.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel overrides the configured log level.
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithFS replaces the vault filesystem. Used by tests.
func WithFS(fsys vault.FS) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithWatcher enables the filesystem watcher and its event publisher.
func WithWatcher(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithSurfaces supplies the presentation surfaces. When the set has no
// print surface and a print stylesheet is configured, the stylesheet
// surface is still attached.
func WithSurfaces(s surface.Set) Option {
	return func(o *options) {
		o.surfaces = s
		o.hasSurfaces = true
	}
}

// New builds and starts an Application.
func New(opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &Application{
		opts:     o,
		notifier: config.NewNotifier(),
	}
	if err := a.bootstrap(); err != nil {
		// Stop whatever partially started.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.Shutdown(ctx)
		return nil, err
	}
	return a, nil
}

// bootstrap initializes components in dependency order.
func (a *Application) bootstrap() error {
	// 1. Configuration. The vault root may itself come from configuration,
	// so the loader runs before anything that needs the root.
	cfg, root, err := loadConfig(a.opts)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	a.cfg = cfg
	a.root = root

	// 2. Logging. The global logger is replaced before any component
	// captures it.
	logger, logClose, err := buildLogger(cfg, a.opts)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	a.logger = logger
	a.logClose = logClose
	logging.SetLogger(logger)
	a.appLog = logger.WithComponent("app")

	// 3. Event bus.
	a.bus = event.New()

	// 4. Vault filesystem.
	a.fs = a.opts.fs
	if a.fs == nil {
		a.fs = vault.NewOS(root)
	}

	// 5. Direction store. A corrupt document logs and keeps defaults; a
	// missing one is the normal first run.
	a.store = store.New(store.DefaultStorePath(""),
		store.WithFS(a.fs),
		store.WithDefaultDirection(cfg.DefaultDirection),
		store.WithRememberPerFile(cfg.RememberPerFile),
	)
	if err := a.store.Load(); err != nil {
		a.appLog.Warn("failed to load direction store: %v", err)
	}

	// 6. Rules engine, optional and non-fatal.
	a.ruleProxy = &ruleProxy{}
	if cfg.RulesEnabled {
		eng, err := rules.New(a.fs, cfg.RulesPath, rules.WithLogger(logger.WithComponent("rules")))
		if err != nil {
			a.appLog.Warn("rules disabled: %v", err)
		} else {
			a.rules = eng
			a.ruleProxy.set(eng)
		}
	}

	// 7. Presentation surfaces.
	surfaces := a.opts.surfaces
	if surfaces.Print == nil && cfg.PrintStylesheet != "" {
		surfaces.Print = surface.NewCSSFile(a.fs, cfg.PrintStylesheet,
			surface.WithLogger(logger.WithComponent("print-css")))
	}

	// 8. Resolver, bound to the bus so vault events reach the store.
	ropts := []resolver.Option{
		resolver.WithSurfaces(surfaces),
		resolver.WithBus(a.bus),
		resolver.WithRules(a.ruleProxy),
		resolver.WithLogger(logger.WithComponent("resolver")),
	}
	if cfg.DetectContent {
		ropts = append(ropts, resolver.WithContentDetection(a.fs))
	}
	a.resolver = resolver.New(a.store, ropts...)
	if err := a.resolver.Bind(a.bus); err != nil {
		return &InitError{Component: "resolver", Err: err}
	}

	// 9. Document tracking.
	a.documents = NewDocumentManager(a.fs, a.bus)

	// 10. Filesystem watcher, only when requested.
	if a.opts.watch {
		if err := a.startWatcher(); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
	}

	a.appLog.Info("vault ready: root=%s entries=%d default=%s", root, a.store.Len(), a.store.DefaultDirection())
	return nil
}

// loadConfig resolves the vault root and loads the layered configuration.
// The root comes from the explicit option first, then from the user
// configuration and environment, then falls back to the working directory.
func loadConfig(o options) (config.Config, string, error) {
	if o.configFile != "" {
		cfg, err := config.LoadFile(o.configFile)
		if err != nil {
			return cfg, "", err
		}
		root := o.vault
		if root == "" {
			root = cfg.Vault
		}
		if root == "" {
			root = "."
		}
		cfg.Vault = root
		return cfg, root, nil
	}

	root := o.vault
	if root == "" {
		boot, err := config.Load("")
		if err != nil {
			return boot, "", err
		}
		root = boot.Vault
		if root == "" {
			root = "."
		}
	}

	cfg, err := config.Load(root)
	if err != nil {
		return cfg, "", err
	}
	cfg.Vault = root
	return cfg, root, nil
}

// buildLogger constructs the process logger from configuration.
func buildLogger(cfg config.Config, o options) (*logging.Logger, io.Closer, error) {
	if o.logger != nil {
		return o.logger, nil, nil
	}

	lcfg := logging.DefaultConfig()
	lcfg.Level = logging.ParseLevel(cfg.LogLevel)
	if o.logLevel != "" {
		lcfg.Level = logging.ParseLevel(o.logLevel)
	}

	var closer io.Closer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		lcfg.Output = f
		closer = f
	}
	return logging.NewLogger(lcfg), closer, nil
}

// startWatcher builds the fsnotify watcher chain: raw watcher, debouncer,
// then the publisher that turns coalesced events into bus traffic.
func (a *Application) startWatcher() error {
	ig := vault.NewIgnore()
	for _, d := range a.cfg.WatchIgnore {
		ig.AddDir(d)
	}
	ig.AddExtensions(a.cfg.WatchExtensions)

	fsw, err := vault.NewFSWatcher(a.root, vault.WithIgnore(ig))
	if err != nil {
		return err
	}

	deb := vault.NewDebounced(fsw, time.Duration(a.cfg.WatchDebounce)*time.Millisecond)
	if err := deb.WatchRecursive(a.root); err != nil {
		deb.Close()
		return err
	}

	pub := vault.NewPublisher(deb, a.bus, a.fs, fsw.Root(),
		vault.WithPublisherLogger(a.logger.WithComponent("vault-watch")))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		pub.Run(ctx)
	}()

	a.watcher = deb
	a.publisher = pub
	a.watchCancel = cancel
	a.watchDone = done
	return nil
}

// Shutdown stops components in reverse bootstrap order. It is idempotent;
// the context bounds how long to wait for the watcher goroutine.
func (a *Application) Shutdown(ctx context.Context) error {
	var err error
	a.closeOnce.Do(func() {
		err = a.shutdown(ctx)
	})
	return err
}

func (a *Application) shutdown(ctx context.Context) error {
	a.closed.Store(true)
	errs := NewErrorList()

	if a.watchCancel != nil {
		a.watchCancel()
		select {
		case <-a.watchDone:
		case <-ctx.Done():
			errs.Add(fmt.Errorf("failed to stop watcher: %w", ctx.Err()))
		}
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs.Add(fmt.Errorf("failed to close watcher: %w", err))
		}
	}

	if a.resolver != nil {
		a.resolver.Unbind()
	}
	if a.rules != nil {
		a.rules.Close()
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			errs.Add(fmt.Errorf("failed to close event bus: %w", err))
		}
	}

	if a.appLog != nil {
		a.appLog.Info("shutdown complete")
	}
	if a.logClose != nil {
		if err := a.logClose.Close(); err != nil {
			errs.Add(fmt.Errorf("failed to close log file: %w", err))
		}
	}
	return errs.AsError()
}

// Config returns a copy of the active configuration.
func (a *Application) Config() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Root returns the vault root path.
func (a *Application) Root() string {
	return a.root
}

// FS returns the vault filesystem.
func (a *Application) FS() vault.FS {
	return a.fs
}

// Bus returns the event bus.
func (a *Application) Bus() *event.Bus {
	return a.bus
}

// Store returns the direction store.
func (a *Application) Store() *store.Store {
	return a.store
}

// Resolver returns the direction resolver.
func (a *Application) Resolver() *resolver.Resolver {
	return a.resolver
}

// Rules returns the rules engine, or nil when rules are disabled.
func (a *Application) Rules() *rules.Engine {
	return a.rules
}

// Documents returns the document manager.
func (a *Application) Documents() *DocumentManager {
	return a.documents
}

// Watcher returns the debounced watcher, or nil when not enabled.
func (a *Application) Watcher() *vault.Debounced {
	return a.watcher
}

// Notifier returns the configuration change notifier.
func (a *Application) Notifier() *config.Notifier {
	return a.notifier
}

// Logger returns the base logger.
func (a *Application) Logger() *logging.Logger {
	return a.logger
}

// ruleProxy lets the resolver hold a stable rule source while the engine
// behind it can be absent or replaced.
type ruleProxy struct {
	mu  sync.RWMutex
	src resolver.RuleSource
}

func (p *ruleProxy) set(src resolver.RuleSource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.src = src
}

// DirectionFor delegates to the current engine; no engine means no match.
func (p *ruleProxy) DirectionFor(path string) (direction.Direction, bool) {
	p.mu.RLock()
	src := p.src
	p.mu.RUnlock()

	if src == nil {
		return direction.Default, false
	}
	return src.DirectionFor(path)
}
