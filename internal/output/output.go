// Package output writes rendered report files. Each file is written to a
// temp file in the target directory and renamed into place, so a failed
// write never leaves a truncated report behind.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"fqc-report-go/internal/logger"
)

var ErrUnwritable = errors.New("output location not writable")

// File is one rendered output.
type File struct {
	Path string
	Data []byte
}

type Writer struct {
	// MaxElapsed bounds retries of transient failures, e.g. the previous
	// report still open in a spreadsheet application.
	MaxElapsed time.Duration
	log        *logger.Logger
}

func NewWriter(log *logger.Logger, maxElapsed time.Duration) *Writer {
	return &Writer{MaxElapsed: maxElapsed, log: log.Component("output")}
}

// WriteAll writes every file or none of them. All files are staged as temp
// files next to their targets first; targets are replaced only once every
// file is staged, so a failure never leaves a new report beside a stale
// chart. A failed rename restores the targets already replaced.
func (w *Writer) WriteAll(ctx context.Context, files []File) error {
	staged := make([]string, 0, len(files))
	discard := func() {
		for _, name := range staged {
			_ = os.Remove(name)
		}
	}

	for _, f := range files {
		var name string
		err := w.retry(ctx, f.Path, func() error {
			var err error
			name, err = stage(f.Path, f.Data)
			return err
		})
		if err != nil {
			discard()
			return err
		}
		staged = append(staged, name)
	}

	var undo []func()
	for i, f := range files {
		restore, err := backup(f.Path)
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrUnwritable, f.Path, err)
		} else {
			err = w.retry(ctx, f.Path, func() error { return os.Rename(staged[i], f.Path) })
		}
		if err != nil {
			for j := len(undo) - 1; j >= 0; j-- {
				undo[j]()
			}
			staged = staged[i:]
			discard()
			return err
		}
		undo = append(undo, restore)
		w.log.WithField("path", f.Path).WithField("bytes", len(f.Data)).Debug("output written")
	}
	return nil
}

// WriteFile atomically replaces path with data.
func (w *Writer) WriteFile(ctx context.Context, path string, data []byte) error {
	return w.WriteAll(ctx, []File{{Path: path, Data: data}})
}

// retry runs op with exponential backoff. Missing directories and
// permission errors are not retried.
func (w *Writer) retry(ctx context.Context, path string, op func() error) error {
	log := w.log.WithField("path", path)
	attempt := 0
	wrapped := func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return backoff.Permanent(err)
		}
		log.WithField("attempt", attempt).WithField("error", err.Error()).Warn("output write failed, retrying")
		return err
	}

	var b backoff.BackOff = &backoff.StopBackOff{}
	if w.MaxElapsed > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 100 * time.Millisecond
		eb.MaxElapsedTime = w.MaxElapsed
		b = eb
	}
	if err := backoff.Retry(wrapped, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnwritable, path, err)
	}
	return nil
}

// stage writes data to a temp file beside path and returns its name.
func stage(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

// backup keeps a copy of the current contents of path, if any, and returns a
// func that puts them back.
func backup(path string) (func(), error) {
	old, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return func() { _ = os.Remove(path) }, nil
	}
	if err != nil {
		return nil, err
	}
	return func() {
		if name, err := stage(path, old); err == nil {
			if os.Rename(name, path) != nil {
				_ = os.Remove(name)
			}
		}
	}, nil
}
