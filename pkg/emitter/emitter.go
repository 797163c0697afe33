// Package emitter writes assembled xacro documents to disk.
package emitter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultPerm fs.FileMode = 0o644

// ErrOverwriteDeclined is returned when the confirm hook refuses to replace an
// existing file.
var ErrOverwriteDeclined = errors.New("emitter: overwrite declined")

// Emitter persists one document at path.
type Emitter interface {
	Emit(ctx context.Context, path, document string) error
}

// ConfirmFunc is asked before an existing file is replaced.
type ConfirmFunc func(ctx context.Context, path string) (bool, error)

// Option customises a FileEmitter.
type Option func(*FileEmitter)

// WithPerm sets the permission bits of written files.
func WithPerm(perm fs.FileMode) Option {
	return func(e *FileEmitter) {
		e.perm = perm
	}
}

// WithConfirm installs a hook consulted before overwriting.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(e *FileEmitter) {
		e.confirm = confirm
	}
}

// FileEmitter writes documents atomically: content goes to a temporary file
// in the target directory which is then renamed over the destination.
type FileEmitter struct {
	perm    fs.FileMode
	confirm ConfirmFunc
}

var _ Emitter = (*FileEmitter)(nil)

// New constructs a FileEmitter.
func New(options ...Option) *FileEmitter {
	e := &FileEmitter{perm: defaultPerm}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Emit writes document to path.
func (e *FileEmitter) Emit(ctx context.Context, path, document string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return errors.New("emitter: path is required")
	}

	if e.confirm != nil {
		if _, err := os.Stat(path); err == nil {
			ok, err := e.confirm(ctx, path)
			if err != nil {
				return fmt.Errorf("emitter: confirm overwrite of %s: %w", path, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrOverwriteDeclined, path)
			}
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("emitter: create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.WriteString(document); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("emitter: write %s: %w", path, err)
	}
	if err := tmp.Chmod(e.perm); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("emitter: chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("emitter: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("emitter: rename into %s: %w", path, err)
	}
	return nil
}
