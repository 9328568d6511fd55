package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/logging"
	"github.com/dshills/textdir/internal/vault"
)

const scriptPath = ".textdir/rules.lua"

func newTestEngine(t *testing.T, script string, opts ...Option) (*Engine, *vault.Mem) {
	t.Helper()

	fsys := vault.NewMem()
	if err := fsys.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		t.Fatalf("failed to seed rules script: %v", err)
	}

	opts = append(opts, WithLogger(logging.NullLogger))
	eng, err := New(fsys, scriptPath, opts...)
	if err != nil {
		t.Fatalf("failed to start engine: %v", err)
	}
	t.Cleanup(eng.Close)
	return eng, fsys
}

func TestNew_MissingScript(t *testing.T) {
	_, err := New(vault.NewMem(), scriptPath, WithLogger(logging.NullLogger))
	if err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestNew_SyntaxError(t *testing.T) {
	fsys := vault.NewMem()
	if err := fsys.WriteFile(scriptPath, []byte("function direction_for(path"), 0o644); err != nil {
		t.Fatalf("failed to seed rules script: %v", err)
	}

	_, err := New(fsys, scriptPath, WithLogger(logging.NullLogger))
	if err == nil {
		t.Fatal("expected error for broken script")
	}
}

func TestNew_MissingFunction(t *testing.T) {
	fsys := vault.NewMem()
	if err := fsys.WriteFile(scriptPath, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("failed to seed rules script: %v", err)
	}

	_, err := New(fsys, scriptPath, WithLogger(logging.NullLogger))
	if !errors.Is(err, ErrNoRuleFunction) {
		t.Fatalf("expected ErrNoRuleFunction, got %v", err)
	}
}

func TestDirectionFor(t *testing.T) {
	eng, _ := newTestEngine(t, `
		function direction_for(path)
			if string.find(path, "^hebrew/") then
				return "rtl"
			end
			if string.find(path, "%.he%.md$") then
				return "RTL"
			end
			return nil
		end
	`)

	tests := []struct {
		path    string
		want    direction.Direction
		matched bool
	}{
		{"hebrew/notes.md", direction.RTL, true},
		{"./hebrew/notes.md", direction.RTL, true},
		{"poems/a.he.md", direction.RTL, true},
		{"notes/a.md", direction.Default, false},
	}

	for _, tt := range tests {
		got, ok := eng.DirectionFor(tt.path)
		if got != tt.want || ok != tt.matched {
			t.Errorf("DirectionFor(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.matched)
		}
	}
}

func TestDirectionFor_InvalidReturnIgnored(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"unknown string", `function direction_for(path) return "sideways" end`},
		{"number", `function direction_for(path) return 42 end`},
		{"table", `function direction_for(path) return {} end`},
		{"runtime error", `function direction_for(path) error("boom") end`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, _ := newTestEngine(t, tt.script)

			got, ok := eng.DirectionFor("notes/a.md")
			if ok {
				t.Error("expected no match")
			}
			if got != direction.Default {
				t.Errorf("direction = %q, want default", got)
			}
		})
	}
}

func TestDirectionFor_RunawayScriptTimesOut(t *testing.T) {
	eng, _ := newTestEngine(t, `
		function direction_for(path)
			while true do end
		end
	`, WithCallTimeout(100*time.Millisecond))

	start := time.Now()
	_, ok := eng.DirectionFor("notes/a.md")
	if ok {
		t.Error("expected no match from runaway script")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("evaluation took %v, timeout did not fire", elapsed)
	}
}

func TestReload(t *testing.T) {
	eng, fsys := newTestEngine(t, `function direction_for(path) return "ltr" end`)

	if d, ok := eng.DirectionFor("a.md"); !ok || d != direction.LTR {
		t.Fatalf("initial rules gave (%q, %v)", d, ok)
	}

	err := fsys.WriteFile(scriptPath, []byte(`function direction_for(path) return "rtl" end`), 0o644)
	if err != nil {
		t.Fatalf("failed to rewrite script: %v", err)
	}
	if err := eng.Reload(); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}

	if d, ok := eng.DirectionFor("a.md"); !ok || d != direction.RTL {
		t.Errorf("reloaded rules gave (%q, %v), want (rtl, true)", d, ok)
	}
}

func TestReload_BrokenScriptKeepsOldRules(t *testing.T) {
	eng, fsys := newTestEngine(t, `function direction_for(path) return "rtl" end`)

	err := fsys.WriteFile(scriptPath, []byte("function direction_for("), 0o644)
	if err != nil {
		t.Fatalf("failed to rewrite script: %v", err)
	}
	if err := eng.Reload(); err == nil {
		t.Fatal("expected reload error for broken script")
	}

	if d, ok := eng.DirectionFor("a.md"); !ok || d != direction.RTL {
		t.Errorf("after failed reload got (%q, %v), want previous rules (rtl, true)", d, ok)
	}
}

func TestClose(t *testing.T) {
	eng, _ := newTestEngine(t, `function direction_for(path) return "rtl" end`)

	eng.Close()
	eng.Close()

	if !eng.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if _, ok := eng.DirectionFor("a.md"); ok {
		t.Error("closed engine should not match")
	}
	if err := eng.Reload(); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Reload after close = %v, want ErrEngineClosed", err)
	}
}

func TestSandbox_LoadersRemoved(t *testing.T) {
	// The script itself proves dofile and friends are gone; New fails if
	// any assertion raises.
	newTestEngine(t, `
		assert(dofile == nil, "dofile leaked")
		assert(loadfile == nil, "loadfile leaked")
		assert(load == nil, "load leaked")
		assert(io == nil, "io leaked")
		assert(os == nil, "os leaked")
		function direction_for(path) return nil end
	`)
}

func TestNormalizedPathReachesScript(t *testing.T) {
	eng, _ := newTestEngine(t, `
		function direction_for(path)
			if path == "notes/a.md" then
				return "rtl"
			end
			return nil
		end
	`)

	if d, ok := eng.DirectionFor("./notes//a.md"); !ok || d != direction.RTL {
		t.Errorf("got (%q, %v), want normalized path match (rtl, true)", d, ok)
	}
}
