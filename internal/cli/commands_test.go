package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/store"
	"github.com/dshills/textdir/internal/vault"
)

// resetFlags clears the package-level flag state that survives between
// Execute calls in the same process.
func resetFlags() {
	vaultFlag = ""
	configFlag = ""
	logLevelFlag = ""
	jsonOutput = false
	getExplain = false
	clearAll = false
	mvEntryOnly = false
	pruneDryRun = false
	pruneForce = false
	// Cobra registers help/version as bool flags on rootCmd during Execute;
	// their parsed values also survive between Execute calls.
	for _, name := range []string{"help", "version"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}
}

// newTestVault creates an empty vault directory and isolates user config.
func newTestVault(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return t.TempDir()
}

// runCLI executes the root command with the given arguments.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.Execute()
}

// loadStore reads the persisted direction document of a vault.
func loadStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	st := store.New(store.DefaultStorePath(""), store.WithFS(vault.NewOS(dir)))
	if err := st.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return st
}

func writeVaultFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestSetCommand_PersistsEntry(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "set", "notes/hebrew.md", "rtl", "--vault", dir); err != nil {
		t.Fatalf("set error = %v", err)
	}

	st := loadStore(t, dir)
	got, ok := st.Get("notes/hebrew.md")
	if !ok || got != direction.RTL {
		t.Errorf("stored entry = (%v, %v), want (rtl, true)", got, ok)
	}
}

func TestSetCommand_RejectsUnknownDirection(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "set", "a.md", "sideways", "--vault", dir); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestGetCommand_MissingFileSucceeds(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "get", "never-seen.md", "--vault", dir); err != nil {
		t.Errorf("get error = %v", err)
	}
}

func TestToggleCommand_TwicePersistsOriginal(t *testing.T) {
	dir := newTestVault(t)
	writeVaultFile(t, dir, "a.md", "plain notes\n")

	if err := runCLI(t, "toggle", "a.md", "--vault", dir); err != nil {
		t.Fatalf("first toggle error = %v", err)
	}
	st := loadStore(t, dir)
	if got, ok := st.Get("a.md"); !ok || got != direction.RTL {
		t.Fatalf("after first toggle = (%v, %v), want (rtl, true)", got, ok)
	}

	if err := runCLI(t, "toggle", "a.md", "--vault", dir); err != nil {
		t.Fatalf("second toggle error = %v", err)
	}
	st = loadStore(t, dir)
	if got, ok := st.Get("a.md"); !ok || got != direction.LTR {
		t.Errorf("after second toggle = (%v, %v), want (ltr, true)", got, ok)
	}
}

func TestClearCommand_RemovesEntry(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "set", "a.md", "rtl", "--vault", dir); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if err := runCLI(t, "clear", "a.md", "--vault", dir); err != nil {
		t.Fatalf("clear error = %v", err)
	}

	st := loadStore(t, dir)
	if _, ok := st.Get("a.md"); ok {
		t.Error("entry still present after clear")
	}
}

func TestClearCommand_All(t *testing.T) {
	dir := newTestVault(t)

	for _, p := range []string{"a.md", "b.md", "c.md"} {
		if err := runCLI(t, "set", p, "rtl", "--vault", dir); err != nil {
			t.Fatalf("set %s error = %v", p, err)
		}
	}
	if err := runCLI(t, "clear", "--all", "--vault", dir); err != nil {
		t.Fatalf("clear --all error = %v", err)
	}

	if st := loadStore(t, dir); st.Len() != 0 {
		t.Errorf("Len() = %d after clear --all, want 0", st.Len())
	}
}

func TestClearCommand_AllWithFileArgRejected(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "clear", "a.md", "--all", "--vault", dir); err == nil {
		t.Error("expected error combining --all with a file argument")
	}
}

func TestMvCommand_MovesFileAndEntry(t *testing.T) {
	dir := newTestVault(t)
	writeVaultFile(t, dir, "old.md", "שלום\n")

	if err := runCLI(t, "set", "old.md", "rtl", "--vault", dir); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if err := runCLI(t, "mv", "old.md", "new.md", "--vault", dir); err != nil {
		t.Fatalf("mv error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "old.md")); !os.IsNotExist(err) {
		t.Error("old.md still exists after mv")
	}
	if _, err := os.Stat(filepath.Join(dir, "new.md")); err != nil {
		t.Errorf("new.md missing after mv: %v", err)
	}

	st := loadStore(t, dir)
	if _, ok := st.Get("old.md"); ok {
		t.Error("entry for old.md still present")
	}
	if got, ok := st.Get("new.md"); !ok || got != direction.RTL {
		t.Errorf("entry for new.md = (%v, %v), want (rtl, true)", got, ok)
	}
}

func TestMvCommand_EntryOnlySkipsFilesystem(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "set", "moved-elsewhere.md", "rtl", "--vault", dir); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if err := runCLI(t, "mv", "moved-elsewhere.md", "final.md", "--entry-only", "--vault", dir); err != nil {
		t.Fatalf("mv --entry-only error = %v", err)
	}

	st := loadStore(t, dir)
	if got, ok := st.Get("final.md"); !ok || got != direction.RTL {
		t.Errorf("entry for final.md = (%v, %v), want (rtl, true)", got, ok)
	}
}

func TestPruneCommand_ForceDropsStaleEntries(t *testing.T) {
	dir := newTestVault(t)
	writeVaultFile(t, dir, "kept.md", "still here\n")

	if err := runCLI(t, "set", "kept.md", "rtl", "--vault", dir); err != nil {
		t.Fatalf("set kept error = %v", err)
	}
	if err := runCLI(t, "set", "gone.md", "rtl", "--vault", dir); err != nil {
		t.Fatalf("set gone error = %v", err)
	}

	if err := runCLI(t, "prune", "--force", "--vault", dir); err != nil {
		t.Fatalf("prune error = %v", err)
	}

	st := loadStore(t, dir)
	if _, ok := st.Get("kept.md"); !ok {
		t.Error("entry for existing file was pruned")
	}
	if _, ok := st.Get("gone.md"); ok {
		t.Error("stale entry survived prune")
	}
}

func TestPruneCommand_DryRunKeepsEntries(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "set", "gone.md", "rtl", "--vault", dir); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if err := runCLI(t, "prune", "--dry-run", "--vault", dir); err != nil {
		t.Fatalf("prune --dry-run error = %v", err)
	}

	if st := loadStore(t, dir); st.Len() != 1 {
		t.Errorf("Len() = %d after dry run, want 1", st.Len())
	}
}

func TestDefaultCommand_SetPersists(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "default", "rtl", "--vault", dir); err != nil {
		t.Fatalf("default rtl error = %v", err)
	}

	if st := loadStore(t, dir); st.DefaultDirection() != direction.RTL {
		t.Errorf("DefaultDirection() = %v, want rtl", st.DefaultDirection())
	}
}

func TestRememberCommand_OffPersists(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "remember", "off", "--vault", dir); err != nil {
		t.Fatalf("remember off error = %v", err)
	}

	if st := loadStore(t, dir); st.RememberPerFile() {
		t.Error("RememberPerFile() = true after remember off")
	}
}

func TestRememberCommand_RejectsBadValue(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "remember", "sometimes", "--vault", dir); err == nil {
		t.Error("expected error for bad remember value")
	}
}

func TestDetectCommand_MissingFileFails(t *testing.T) {
	dir := newTestVault(t)

	if err := runCLI(t, "detect", "absent.md", "--vault", dir); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDetectCommand_ReadsContent(t *testing.T) {
	dir := newTestVault(t)
	writeVaultFile(t, dir, "hebrew.md", "שלום עולם\n")

	if err := runCLI(t, "detect", "hebrew.md", "--vault", dir); err != nil {
		t.Errorf("detect error = %v", err)
	}
}
