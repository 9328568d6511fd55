package app

import (
	"context"
	"io/fs"
	"path"

	"github.com/dshills/textdir/internal/event/events"
	"github.com/dshills/textdir/internal/vault"
)

// MoveFile renames a vault file and publishes FileRenamed so the stored
// direction follows the file. With entryOnly the file itself is left alone
// and only the direction entry moves, which covers files renamed outside
// textdir before the move was recorded.
func (a *Application) MoveFile(ctx context.Context, oldPath, newPath string, entryOnly bool) error {
	if a.closed.Load() {
		return ErrClosed
	}

	oldNP := vault.NormalizePath(oldPath)
	newNP := vault.NormalizePath(newPath)
	if oldNP == newNP {
		return nil
	}

	if !entryOnly {
		if !a.fs.Exists(oldNP) {
			return NewOperationError("move", oldNP, fs.ErrNotExist)
		}
		if a.fs.Exists(newNP) {
			return NewOperationError("move", newNP, fs.ErrExist)
		}
		if dir := path.Dir(newNP); dir != "." && dir != "/" {
			if err := a.fs.MkdirAll(dir, 0o755); err != nil {
				return NewOperationError("move", newNP, err)
			}
		}
		if err := a.fs.Rename(oldNP, newNP); err != nil {
			return NewOperationError("move", oldNP, err)
		}
	}

	a.documents.renameTracked(oldNP, newNP)

	if err := a.bus.Publish(ctx, events.FileRenamed{OldPath: oldNP, NewPath: newNP}); err != nil {
		a.appLog.Warn("failed to publish rename for %s: %v", oldNP, err)
	}
	return nil
}

// DeleteFile removes a vault file and publishes FileDeleted so the stored
// direction entry is dropped.
func (a *Application) DeleteFile(ctx context.Context, p string) error {
	if a.closed.Load() {
		return ErrClosed
	}

	np := vault.NormalizePath(p)
	if err := a.fs.Remove(np); err != nil {
		return NewOperationError("delete", np, err)
	}

	_ = a.documents.Close(np)

	if err := a.bus.Publish(ctx, events.FileDeleted{Path: np}); err != nil {
		a.appLog.Warn("failed to publish delete for %s: %v", np, err)
	}
	return nil
}

// PruneStore drops direction entries whose files no longer exist and
// returns the removed paths.
func (a *Application) PruneStore() ([]string, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}
	return a.store.Prune(a.fs.Exists)
}
