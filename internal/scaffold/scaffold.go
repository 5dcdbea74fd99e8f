// Package scaffold is the implementation of the structure generator component.
// The generator materializes a layout on disk: it creates the missing directories
// and zero-byte placeholder files, never modifying anything that already exists,
// and records the run in a stamp file at the scaffold root.
package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ubuntu/decorate"

	"github.com/omni-assistant/omni-scaffold/internal/constants"
	"github.com/omni-assistant/omni-scaffold/internal/fileutils"
	"github.com/omni-assistant/omni-scaffold/internal/layout"
)

// Result lists what a run did, with paths relative to the target directory in
// creation order. A skipped file existed before the run and was left untouched.
type Result struct {
	CreatedDirs  []string
	CreatedFiles []string
	SkippedFiles []string

	Stamp Stamp
}

type timeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// Creator applies layouts under a target directory.
type Creator struct {
	target string
	dryRun bool

	// Overrides for testing.
	time     timeProvider
	newRunID func() string

	log *slog.Logger
}

type options struct {
	// Private members exported for tests.
	timeProvider timeProvider
	newRunID     func() string
}

var defaultOptions = options{
	timeProvider: realTimeProvider{},
	newRunID:     func() string { return uuid.NewString() },
}

// Options represents an optional function to override Creator default values.
type Options func(*options)

// New returns a Creator generating scaffolds under target.
// If dryRun is true, Apply reports what a run would do without touching the
// filesystem.
func New(l *slog.Logger, target string, dryRun bool, args ...Options) Creator {
	opts := defaultOptions
	for _, opt := range args {
		opt(&opts)
	}

	return Creator{
		target: target,
		dryRun: dryRun,

		time:     opts.timeProvider,
		newRunID: opts.newRunID,

		log: l,
	}
}

// Apply creates the directories and placeholder files of the layout under the
// target directory.
//
// Existing directories are reused and existing files are never truncated or
// rewritten, so re-running Apply on a complete scaffold is a no-op apart from
// the stamp file. Permission and I/O errors abort the run and propagate.
func (c Creator) Apply(ctx context.Context, lay layout.Layout) (res Result, err error) {
	defer decorate.OnError(&err, "could not apply layout")

	if err := lay.Validate(); err != nil {
		return Result{}, err
	}

	for _, dir := range lay.DirPaths() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		path := filepath.Join(c.target, filepath.FromSlash(dir))
		fi, err := os.Stat(path)
		if err == nil {
			if !fi.IsDir() {
				return Result{}, fmt.Errorf("%s already exists and is not a directory", dir)
			}
			continue
		}
		if !os.IsNotExist(err) {
			return Result{}, err
		}

		if !c.dryRun {
			if err := os.MkdirAll(path, 0750); err != nil {
				return Result{}, fmt.Errorf("could not create directory %s: %w", dir, err)
			}
		}
		c.log.Debug("Created directory", "dir", dir)
		res.CreatedDirs = append(res.CreatedDirs, dir)
	}

	for _, file := range lay.FilePaths() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		path := filepath.Join(c.target, filepath.FromSlash(file))
		created, err := c.touch(path)
		if err != nil {
			return Result{}, fmt.Errorf("could not create file %s: %w", file, err)
		}
		if !created {
			c.log.Debug("Skipped existing file", "file", file)
			res.SkippedFiles = append(res.SkippedFiles, file)
			continue
		}
		c.log.Debug("Created file", "file", file)
		res.CreatedFiles = append(res.CreatedFiles, file)
	}

	res.Stamp, err = c.writeStamp(lay)
	if err != nil {
		return Result{}, err
	}

	c.log.Info("Applied layout", "root", lay.Root,
		"created_dirs", len(res.CreatedDirs), "created_files", len(res.CreatedFiles), "skipped_files", len(res.SkippedFiles))
	return res, nil
}

// touch creates an empty file, respecting dry-run mode.
func (c Creator) touch(path string) (created bool, err error) {
	if !c.dryRun {
		return fileutils.Touch(path)
	}

	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if fi.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return false, nil
}

// writeStamp writes the stamp file for the run, preserving the creation time
// of a previous readable stamp. In dry-run mode the stamp is computed but not
// written.
func (c Creator) writeStamp(lay layout.Layout) (Stamp, error) {
	now := c.time.Now()
	stamp := Stamp{
		RunID:          c.newRunID(),
		Version:        constants.Version,
		LayoutChecksum: lay.Checksum(),
		CreatedAt:      now,
		GeneratedAt:    now,
	}

	path := StampPath(c.target, lay)
	if previous, err := readStamp(path); err == nil {
		stamp.CreatedAt = previous.CreatedAt
	} else if !os.IsNotExist(err) {
		c.log.Warn("Could not read previous stamp file, starting over", "file", path, "error", err)
	}

	if c.dryRun {
		return stamp, nil
	}
	return stamp, stamp.write(c.log, path)
}
