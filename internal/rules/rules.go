// Package rules evaluates user-defined direction rules written in Lua.
//
// A rules script lives in the vault (by default .textdir/rules.lua) and
// defines a single function:
//
//	function direction_for(path)
//	    if string.find(path, "^hebrew/") then
//	        return "rtl"
//	    end
//	    return nil
//	end
//
// The function receives a normalized vault-relative path and returns "ltr",
// "rtl", or nil for "no opinion". Scripts run sandboxed: no file system, no
// process access, only the string, table, and math libraries.
//
// gopher-lua's LState is not goroutine-safe, so the Engine confines it to a
// single worker goroutine and serializes all calls through a request channel.
package rules

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/logging"
	"github.com/dshills/textdir/internal/vault"
)

// FuncName is the global function a rules script must define.
const FuncName = "direction_for"

// DefaultCallTimeout bounds a single rule evaluation. The timeout is wired
// into the Lua state, so even a non-terminating script is interrupted.
const DefaultCallTimeout = 2 * time.Second

const callQueueSize = 16

var (
	// ErrEngineClosed is returned when using an engine after Close.
	ErrEngineClosed = errors.New("rules engine is closed")

	// ErrNoRuleFunction is returned when the script does not define
	// direction_for.
	ErrNoRuleFunction = errors.New("rules script does not define direction_for")
)

// call is one Lua operation queued for the worker goroutine.
type call struct {
	fn     func(L *lua.LState) error
	result chan error
}

// Engine loads a rules script and answers direction queries from it.
// It implements the resolver's rule source interface. All methods are safe
// for concurrent use.
type Engine struct {
	fs      vault.FS
	path    string
	timeout time.Duration
	logger  *logging.Logger

	queue     chan *call
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures an Engine.
type Option func(*Engine)

// WithCallTimeout sets the per-evaluation timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger used for evaluation failures.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New starts an engine for the script at path inside fsys. The script is
// loaded before New returns; a missing file, a syntax error, or a script
// without direction_for all fail here.
func New(fsys vault.FS, path string, opts ...Option) (*Engine, error) {
	e := &Engine{
		fs:      fsys,
		path:    vault.NormalizePath(path),
		timeout: DefaultCallTimeout,
		logger:  logging.GetLogger().WithComponent("rules"),
		queue:   make(chan *call, callQueueSize),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	ready := make(chan error, 1)
	e.wg.Add(1)
	go e.run(ready)

	if err := <-ready; err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// Path returns the normalized script path.
func (e *Engine) Path() string {
	return e.path
}

// run owns the Lua state. It loads the script, reports readiness, then
// serves queued calls until Close.
func (e *Engine) run(ready chan<- error) {
	defer e.wg.Done()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibraries(L)
	installSandbox(L)

	if err := e.loadScript(L); err != nil {
		ready <- err
		return
	}
	ready <- nil

	for {
		select {
		case <-e.done:
			e.drain()
			return
		case c := <-e.queue:
			err := e.runCall(L, c)
			select {
			case c.result <- err:
			default:
			}
			close(c.result)
		}
	}
}

// runCall executes one queued operation with panic recovery.
func (e *Engine) runCall(L *lua.LState, c *call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = errors.New("lua panic")
			}
		}
	}()
	return c.fn(L)
}

// drain fails any calls still queued after Close.
func (e *Engine) drain() {
	for {
		select {
		case c := <-e.queue:
			select {
			case c.result <- ErrEngineClosed:
			default:
			}
			close(c.result)
		default:
			return
		}
	}
}

// execute runs fn on the worker goroutine and waits for its result.
func (e *Engine) execute(ctx context.Context, fn func(L *lua.LState) error) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	c := &call{
		fn:     fn,
		result: make(chan error, 1),
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrEngineClosed
	case e.queue <- c:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err, ok := <-c.result:
		if !ok {
			return ErrEngineClosed
		}
		return err
	}
}

// loadScript reads and executes the rules file, then verifies direction_for
// exists. A failed execution leaves any previously loaded rules in place.
func (e *Engine) loadScript(L *lua.LState) error {
	data, err := e.fs.ReadFile(e.path)
	if err != nil {
		return fmt.Errorf("failed to read rules script %s: %w", e.path, err)
	}
	if err := L.DoString(string(data)); err != nil {
		return fmt.Errorf("failed to load rules script %s: %w", e.path, err)
	}
	if L.GetGlobal(FuncName).Type() != lua.LTFunction {
		return fmt.Errorf("%w: %s", ErrNoRuleFunction, e.path)
	}
	return nil
}

// DirectionFor asks the script for a direction. The second return is false
// when the script has no opinion, when evaluation fails, or when the script
// returns something that is not a direction. Failures are logged, never
// propagated.
func (e *Engine) DirectionFor(path string) (direction.Direction, bool) {
	np := vault.NormalizePath(path)

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	var (
		result  direction.Direction
		matched bool
	)

	err := e.execute(ctx, func(L *lua.LState) error {
		L.SetContext(ctx)
		defer L.RemoveContext()

		fn := L.GetGlobal(FuncName)
		if fn.Type() != lua.LTFunction {
			return ErrNoRuleFunction
		}

		L.Push(fn)
		L.Push(lua.LString(np))
		if err := L.PCall(1, 1, nil); err != nil {
			return err
		}
		ret := L.Get(-1)
		L.Pop(1)

		if ret == lua.LNil {
			return nil
		}
		s, ok := ret.(lua.LString)
		if !ok {
			return fmt.Errorf("%s returned %s, want string or nil", FuncName, ret.Type())
		}
		d, err := direction.Parse(string(s))
		if err != nil {
			return fmt.Errorf("%s returned invalid direction: %w", FuncName, err)
		}
		result = d
		matched = true
		return nil
	})
	if err != nil {
		e.logger.Warn("rule evaluation failed for %s: %v", np, err)
		return direction.Default, false
	}
	return result, matched
}

// Reload re-reads and re-executes the rules script. On failure the engine
// keeps serving the previously loaded rules.
func (e *Engine) Reload() error {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	return e.execute(ctx, func(L *lua.LState) error {
		return e.loadScript(L)
	})
}

// Close stops the worker and releases the Lua state. Close is idempotent;
// calls after Close fail with ErrEngineClosed.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.done)
	})
	e.wg.Wait()
}

// IsClosed returns true once Close has been called.
func (e *Engine) IsClosed() bool {
	return e.closed.Load()
}
