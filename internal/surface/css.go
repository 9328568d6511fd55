package surface

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/logging"
	"github.com/dshills/textdir/internal/vault"
)

// Markers delimiting the managed rule inside the stylesheet. Everything
// between them belongs to textdir and is rewritten on every change; the
// rest of the file is user territory.
const (
	cssBeginMarker = "/* textdir:begin */"
	cssEndMarker   = "/* textdir:end */"
)

// cssHeader is written once, when the stylesheet is first created.
const cssHeader = `/*
 * Print stylesheet managed by textdir. The block between the textdir
 * markers is rewritten on every direction change; edits inside it are
 * lost. Rules outside the markers are preserved.
 */
`

// CSSFile is a PrintSurface that maintains a direction rule inside a
// stylesheet file. The file is created from a template on first use;
// afterwards only the managed block is touched, so user rules in the same
// file survive. Write failures are logged rather than returned, matching
// the best-effort contract of the apply path.
type CSSFile struct {
	fs     vault.FS
	path   string
	logger *logging.Logger
}

// CSSOption configures a CSSFile.
type CSSOption func(*CSSFile)

// WithLogger sets the logger used to report write failures.
func WithLogger(l *logging.Logger) CSSOption {
	return func(c *CSSFile) {
		c.logger = l
	}
}

// NewCSSFile creates a print surface backed by the stylesheet at the
// given vault-relative path.
func NewCSSFile(fsys vault.FS, p string, opts ...CSSOption) *CSSFile {
	c := &CSSFile{
		fs:   fsys,
		path: vault.NormalizePath(p),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.GetLogger().WithComponent("print-css")
	}
	return c
}

// Ensure CSSFile implements PrintSurface.
var _ PrintSurface = (*CSSFile)(nil)

// Path returns the stylesheet path the surface writes to.
func (c *CSSFile) Path() string {
	return c.path
}

// SetDirection rewrites the managed block so printed output uses the
// given direction. Invalid directions fall back to the default.
func (c *CSSFile) SetDirection(d direction.Direction) {
	if !d.IsValid() {
		d = direction.Default
	}

	content, err := c.render(d)
	if err != nil {
		c.logger.Error("failed to read print stylesheet %s: %v", c.path, err)
		return
	}

	if dir := path.Dir(c.path); dir != "." && dir != "/" {
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			c.logger.Error("failed to create stylesheet directory %s: %v", dir, err)
			return
		}
	}
	if err := c.fs.WriteFile(c.path, content, 0o644); err != nil {
		c.logger.Error("failed to write print stylesheet %s: %v", c.path, err)
		return
	}
	c.logger.Debug("print stylesheet %s set to %s", c.path, d)
}

// render produces the full stylesheet content for the given direction,
// preserving everything outside the managed block.
func (c *CSSFile) render(d direction.Direction) ([]byte, error) {
	block := managedBlock(d)

	data, err := c.fs.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []byte(cssHeader + "\n" + block + "\n"), nil
		}
		return nil, err
	}
	return []byte(replaceManagedBlock(string(data), block)), nil
}

// managedBlock returns the marker-delimited rule for the given direction.
func managedBlock(d direction.Direction) string {
	return fmt.Sprintf("%s\n@media print {\n  body {\n    direction: %s;\n  }\n}\n%s", cssBeginMarker, d, cssEndMarker)
}

// replaceManagedBlock swaps the marker-delimited region of doc for block,
// appending the block when no markers are present.
func replaceManagedBlock(doc, block string) string {
	begin := strings.Index(doc, cssBeginMarker)
	end := strings.Index(doc, cssEndMarker)
	if begin >= 0 && end >= begin {
		end += len(cssEndMarker)
		return doc[:begin] + block + doc[end:]
	}

	if doc != "" && !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	return doc + "\n" + block + "\n"
}
