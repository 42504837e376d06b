// Package ctrlstate persists the last issued interchange control number in
// a plain file so generation stays monotonic across runs without a
// database. Concurrent processes serialize on a sibling lock file.
package ctrlstate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// File is a control-number state file.
type File struct {
	path string
	lock *flock.Flock
}

// Open returns the state file at path. The file need not exist yet.
func Open(path string) *File {
	return &File{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the state file location.
func (f *File) Path() string {
	return f.path
}

// Last returns the last recorded control number, or 0 when none was
// recorded.
func (f *File) Last() (uint64, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read control number state: %w", err)
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse control number state %q: %w", s, err)
	}
	return n, nil
}

// Update holds the lock while fn maps the last recorded control number to
// the new one. The new value is written only when fn succeeds and it never
// moves backwards.
func (f *File) Update(ctx context.Context, fn func(last uint64) (uint64, error)) error {
	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock control number state: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock control number state: %s is busy", f.lock.Path())
	}
	defer f.lock.Unlock()

	last, err := f.Last()
	if err != nil {
		return err
	}
	next, err := fn(last)
	if err != nil {
		return err
	}
	if next < last {
		return fmt.Errorf("control number would move backwards: %d -> %d", last, next)
	}
	if next == last {
		return nil
	}
	return f.write(next)
}

// write replaces the state atomically through a temp file and rename.
func (f *File) write(n uint64) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write control number state: %w", err)
	}
	if _, err := tmp.WriteString(strconv.FormatUint(n, 10) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write control number state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write control number state: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write control number state: %w", err)
	}
	return nil
}
