// Package verifier is the implementation of the structure checker component.
// The checker compares a scaffold on disk against a layout and reports every
// expected directory or file that is missing, without mutating anything.
package verifier

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"

	"github.com/ubuntu/decorate"
	"golang.org/x/sync/errgroup"

	"github.com/omni-assistant/omni-scaffold/internal/constants"
	"github.com/omni-assistant/omni-scaffold/internal/layout"
)

// Report is the outcome of a verification, with paths relative to the target
// directory, sorted. Seeded files exist but are no longer zero-length; the
// generator only produces empty placeholders, so a seeded file means someone
// started implementing it.
type Report struct {
	MissingDirs  []string `yaml:"missingDirs,omitempty"`
	MissingFiles []string `yaml:"missingFiles,omitempty"`
	SeededFiles  []string `yaml:"seededFiles,omitempty"`
}

// OK returns true when every directory and file the layout expects exists.
// Seeded files do not make a scaffold incomplete.
func (r Report) OK() bool {
	return len(r.MissingDirs) == 0 && len(r.MissingFiles) == 0
}

// Verifier checks scaffolds under a target directory.
type Verifier struct {
	target string

	// Overrides for testing.
	maxChecks int

	log *slog.Logger
}

type options struct {
	// Private members exported for tests.
	maxChecks int
}

var defaultOptions = options{
	maxChecks: constants.MaxConcurrentChecks,
}

// Options represents an optional function to override Verifier default values.
type Options func(*options)

// New returns a Verifier checking scaffolds under target.
func New(l *slog.Logger, target string, args ...Options) Verifier {
	opts := defaultOptions
	for _, opt := range args {
		opt(&opts)
	}

	return Verifier{
		target: target,

		maxChecks: opts.maxChecks,

		log: l,
	}
}

// Run verifies the scaffold against the layout.
//
// Directory entries are checked concurrently. The files of a missing directory
// are not reported individually, the missing directory covers them. I/O errors
// other than a missing path abort the verification.
func (v Verifier) Run(ctx context.Context, lay layout.Layout) (report Report, err error) {
	defer decorate.OnError(&err, "could not verify scaffold")

	if err := lay.Validate(); err != nil {
		return Report{}, err
	}

	type dirEntry struct {
		path  string
		files []string
	}

	entries := []dirEntry{{path: lay.Root, files: []string{lay.Marker}}}
	for _, d := range lay.Dirs {
		entries = append(entries, dirEntry{
			path:  path.Join(lay.Root, d.Path),
			files: append([]string{lay.Marker}, d.Files...),
		})
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.maxChecks)
	for _, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			dirPath := filepath.Join(v.target, filepath.FromSlash(entry.path))
			fi, err := os.Stat(dirPath)
			if os.IsNotExist(err) || (err == nil && !fi.IsDir()) {
				v.log.Debug("Missing directory", "dir", entry.path)
				mu.Lock()
				defer mu.Unlock()
				report.MissingDirs = append(report.MissingDirs, entry.path)
				return nil
			}
			if err != nil {
				return err
			}

			var missing, seeded []string
			for _, f := range entry.files {
				rel := path.Join(entry.path, f)
				fi, err := os.Stat(filepath.Join(dirPath, f))
				if os.IsNotExist(err) || (err == nil && fi.IsDir()) {
					v.log.Debug("Missing file", "file", rel)
					missing = append(missing, rel)
					continue
				}
				if err != nil {
					return err
				}
				if fi.Size() > 0 {
					v.log.Debug("Placeholder is no longer empty", "file", rel)
					seeded = append(seeded, rel)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			report.MissingFiles = append(report.MissingFiles, missing...)
			report.SeededFiles = append(report.SeededFiles, seeded...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	slices.Sort(report.MissingDirs)
	slices.Sort(report.MissingFiles)
	slices.Sort(report.SeededFiles)

	return report, nil
}
