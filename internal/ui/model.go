// Package ui is the interactive terminal front end: a vault browser that
// shows every file's effective direction next to a preview pane aligned
// the way the file would render, with single-key direction edits flowing
// through the resolver.
package ui

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/textdir/internal/app"
	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/resolver"
	"github.com/dshills/textdir/internal/surface"
	"github.com/dshills/textdir/internal/vault"
)

// previewMaxLines bounds how much of a file the preview pane loads.
const previewMaxLines = 200

type fileEntry struct {
	path    string
	dir     direction.Direction
	source  resolver.Source
	stored  bool
	missing bool
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmClear
	confirmPrune
)

type Model struct {
	app  *app.Application
	edit *surface.Memory
	keys KeyMap

	files   []fileEntry
	cursor  int
	viewTop int

	width   int
	height  int
	loading bool

	showHelp bool
	confirm  confirmKind
	status   string

	previewPath  string
	previewLines []string
	previewErr   error
}

// NewModel builds the initial model. The edit surface must be the one the
// application's resolver applies to; the UI renders from it and re-seeds
// it as the selection moves.
func NewModel(a *app.Application, edit *surface.Memory) Model {
	return Model{
		app:     a,
		edit:    edit,
		keys:    DefaultKeyMap(),
		status:  "Loading vault...",
		loading: true,
		width:   100,
		height:  30,
	}
}

// Run starts the terminal interface and blocks until the user quits.
func Run(a *app.Application, edit *surface.Memory) error {
	program := tea.NewProgram(NewModel(a, edit), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (model Model) Init() tea.Cmd {
	return model.scanCmd()
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.ensureCursorVisible()
		return model, nil
	case entriesLoadedMsg:
		model.loading = false
		if typed.err != nil {
			model.status = fmt.Sprintf("Scan error: %v", typed.err)
			return model, nil
		}
		model.files = typed.files
		model.ensureCursorVisible()
		model.status = fmt.Sprintf("%d files", len(model.files))
		return model.focusCurrent()
	case previewLoadedMsg:
		entry := model.currentEntry()
		if entry == nil || entry.path != typed.path {
			return model, nil
		}
		model.previewPath = typed.path
		model.previewLines = typed.lines
		model.previewErr = typed.err
		return model, nil
	default:
		return model, nil
	}
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case model.confirm != confirmNone && key.Matches(msg, model.keys.Confirm):
		return model.runConfirmed()
	case model.confirm != confirmNone && key.Matches(msg, model.keys.Cancel):
		model.confirm = confirmNone
		model.status = "Cancelled"
		return model, nil
	case model.confirm != confirmNone:
		return model, nil
	case key.Matches(msg, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
			model.ensureCursorVisible()
			return model.focusCurrent()
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		if model.cursor < len(model.files)-1 {
			model.cursor++
			model.ensureCursorVisible()
			return model.focusCurrent()
		}
		return model, nil
	case key.Matches(msg, model.keys.Toggle):
		return model.toggleCurrent()
	case key.Matches(msg, model.keys.SetLTR):
		return model.setCurrent(direction.LTR)
	case key.Matches(msg, model.keys.SetRTL):
		return model.setCurrent(direction.RTL)
	case key.Matches(msg, model.keys.Clear):
		entry := model.currentEntry()
		if entry == nil {
			return model, nil
		}
		if _, ok := model.app.Store().Get(entry.path); !ok {
			model.status = fmt.Sprintf("No stored direction for %s", entry.path)
			return model, nil
		}
		model.confirm = confirmClear
		model.status = fmt.Sprintf("Clear stored direction for %s? (y/n)", entry.path)
		return model, nil
	case key.Matches(msg, model.keys.Default):
		next := model.app.Store().DefaultDirection().Flip()
		if err := model.app.Resolver().SetDefaultDirection(next); err != nil {
			model.status = fmt.Sprintf("Default error: %v", err)
			return model, nil
		}
		model.refreshAllRows()
		model.status = fmt.Sprintf("Default direction is now %s", next)
		return model.focusCurrent()
	case key.Matches(msg, model.keys.Remember):
		next := !model.app.Store().RememberPerFile()
		if err := model.app.Resolver().SetRememberPerFile(next); err != nil {
			model.status = fmt.Sprintf("Remember error: %v", err)
			return model, nil
		}
		model.refreshAllRows()
		if next {
			model.status = "Per-file memory on"
		} else {
			model.status = "Per-file memory off: files follow the default"
		}
		return model.focusCurrent()
	case key.Matches(msg, model.keys.Prune):
		stale := model.stalePaths()
		if len(stale) == 0 {
			model.status = "No stale entries"
			return model, nil
		}
		model.confirm = confirmPrune
		model.status = fmt.Sprintf("Drop %s? (y/n)", staleLabel(len(stale)))
		return model, nil
	case key.Matches(msg, model.keys.Refresh):
		model.loading = true
		model.status = "Rescanning..."
		return model, model.scanCmd()
	default:
		return model, nil
	}
}

func (model Model) runConfirmed() (tea.Model, tea.Cmd) {
	kind := model.confirm
	model.confirm = confirmNone
	switch kind {
	case confirmClear:
		entry := model.currentEntry()
		if entry == nil {
			return model, nil
		}
		if err := model.app.Resolver().ClearFor(entry.path); err != nil {
			model.status = fmt.Sprintf("Clear error: %v", err)
			return model, nil
		}
		model.refreshRow(model.cursor)
		model.status = fmt.Sprintf("Cleared %s", entry.path)
		return model.focusCurrent()
	case confirmPrune:
		removed, err := model.app.PruneStore()
		if err != nil {
			model.status = fmt.Sprintf("Prune error: %v", err)
			return model, nil
		}
		dropped := make(map[string]bool, len(removed))
		for _, p := range removed {
			dropped[p] = true
		}
		kept := make([]fileEntry, 0, len(model.files))
		for _, f := range model.files {
			if f.missing && dropped[f.path] {
				continue
			}
			kept = append(kept, f)
		}
		model.files = kept
		model.ensureCursorVisible()
		model.status = fmt.Sprintf("Dropped %s", staleLabel(len(removed)))
		return model.focusCurrent()
	}
	return model, nil
}

// toggleCurrent flips the edit surface for the selected file. The surface
// was seeded from the file's resolution when it became current, so two
// flips land back where it started.
func (model Model) toggleCurrent() (tea.Model, tea.Cmd) {
	entry := model.currentEntry()
	if entry == nil {
		return model, nil
	}
	path := entry.path
	next, err := model.app.Resolver().Toggle(path)
	if err != nil {
		model.status = fmt.Sprintf("Toggle error: %v", err)
		return model, nil
	}
	model.refreshRow(model.cursor)
	if model.app.Store().RememberPerFile() {
		model.status = fmt.Sprintf("%s now %s", path, next)
	} else {
		model.status = fmt.Sprintf("%s now %s (session only)", path, next)
	}
	return model, nil
}

func (model Model) setCurrent(d direction.Direction) (tea.Model, tea.Cmd) {
	entry := model.currentEntry()
	if entry == nil {
		return model, nil
	}
	path := entry.path
	if err := model.app.Resolver().SetFor(path, d); err != nil {
		model.status = fmt.Sprintf("Set error: %v", err)
		return model, nil
	}
	model.refreshRow(model.cursor)
	model.status = fmt.Sprintf("%s stored as %s", path, d)
	return model.focusCurrent()
}

// focusCurrent seeds the edit surface from the selected file's resolution
// and kicks off a preview load.
func (model Model) focusCurrent() (tea.Model, tea.Cmd) {
	entry := model.currentEntry()
	if entry == nil {
		model.previewPath = ""
		model.previewLines = nil
		model.previewErr = nil
		return model, nil
	}
	model.edit.SetDirection(entry.dir)
	if entry.missing {
		model.previewPath = entry.path
		model.previewLines = nil
		model.previewErr = nil
		return model, nil
	}
	return model, model.previewCmd(entry.path)
}

func (model *Model) currentEntry() *fileEntry {
	if model.cursor < 0 || model.cursor >= len(model.files) {
		return nil
	}
	return &model.files[model.cursor]
}

func (model *Model) refreshRow(index int) {
	if index < 0 || index >= len(model.files) {
		return
	}
	entry := &model.files[index]
	entry.dir, entry.source = model.app.Resolver().ResolveWithSource(entry.path)
	_, entry.stored = model.app.Store().Get(entry.path)
}

func (model *Model) refreshAllRows() {
	for i := range model.files {
		model.refreshRow(i)
	}
}

func (model *Model) stalePaths() []string {
	stale := make([]string, 0)
	for _, p := range model.app.Store().Paths() {
		if !model.app.FS().Exists(p) {
			stale = append(stale, p)
		}
	}
	return stale
}

func staleLabel(n int) string {
	if n == 1 {
		return "1 stale entry"
	}
	return fmt.Sprintf("%d stale entries", n)
}

func (model *Model) ensureCursorVisible() {
	if len(model.files) == 0 {
		model.cursor = 0
		model.viewTop = 0
		return
	}
	if model.cursor >= len(model.files) {
		model.cursor = len(model.files) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	listHeight := model.listHeight()
	if listHeight <= 0 {
		return
	}
	if model.cursor < model.viewTop {
		model.viewTop = model.cursor
	}
	if model.cursor >= model.viewTop+listHeight {
		model.viewTop = model.cursor - listHeight + 1
	}
	maxTop := len(model.files) - listHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if model.viewTop > maxTop {
		model.viewTop = maxTop
	}
}

func (model *Model) listHeight() int {
	return model.height - 5
}

func (model Model) scanCmd() tea.Cmd {
	return func() tea.Msg {
		files, err := listVaultFiles(model.app)
		return entriesLoadedMsg{files: files, err: err}
	}
}

func (model Model) previewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := model.app.FS().ReadFile(path)
		if err != nil {
			return previewLoadedMsg{path: path, err: err}
		}
		lines := strings.Split(string(data), "\n")
		if len(lines) > previewMaxLines {
			lines = lines[:previewMaxLines]
		}
		return previewLoadedMsg{path: path, lines: lines}
	}
}

// listVaultFiles walks the vault for candidate text files, folds in stored
// entries whose file is gone, and resolves every row.
func listVaultFiles(a *app.Application) ([]fileEntry, error) {
	cfg := a.Config()
	ig := vault.NewIgnore()
	for _, d := range cfg.WatchIgnore {
		ig.AddDir(d)
	}
	ig.AddExtensions(cfg.WatchExtensions)

	seen := make(map[string]bool)
	files := make([]fileEntry, 0)
	err := a.FS().WalkDir(".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		np := vault.NormalizePath(p)
		if d.IsDir() {
			if np != "." && ig.Match(np, true) {
				return fs.SkipDir
			}
			return nil
		}
		if ig.Match(np, false) {
			return nil
		}
		seen[np] = true
		files = append(files, fileEntry{path: np})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan vault: %w", err)
	}

	for _, p := range a.Store().Paths() {
		if !seen[p] {
			files = append(files, fileEntry{path: p, missing: true})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })

	for i := range files {
		files[i].dir, files[i].source = a.Resolver().ResolveWithSource(files[i].path)
		_, files[i].stored = a.Store().Get(files[i].path)
	}
	return files, nil
}
