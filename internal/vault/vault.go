// Package vault abstracts the content directory textdir manages: filesystem
// access through a swappable FS, path normalization, and a filesystem
// watcher that feeds file lifecycle events onto the event bus.
package vault

import (
	"path"
	"path/filepath"
	"strings"
)

// ConfigDirName is the directory inside a vault that holds textdir state
// (the directions document, optional vault-local configuration, generated
// stylesheets). The watcher always ignores it.
const ConfigDirName = ".textdir"

// ConfigDir returns the configuration directory for a vault root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// NormalizePath converts a path into the canonical vault-relative form used
// as a store key: slash-separated, cleaned, no leading "./".
func NormalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	return p
}
