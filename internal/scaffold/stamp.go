package scaffold

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/omni-assistant/omni-scaffold/internal/constants"
	"github.com/omni-assistant/omni-scaffold/internal/fileutils"
	"github.com/omni-assistant/omni-scaffold/internal/layout"
)

// Stamp is the record of a generator run, stored at the scaffold root.
// It is the only non-empty file the generator writes.
type Stamp struct {
	RunID          string    `toml:"run_id"`
	Version        string    `toml:"version"`
	LayoutChecksum string    `toml:"layout_checksum"`
	CreatedAt      time.Time `toml:"created_at"`
	GeneratedAt    time.Time `toml:"generated_at"`
}

// StampPath returns the expected path to the stamp file for a layout applied
// under target. It does not check if the file exists, or if it is valid.
func StampPath(target string, lay layout.Layout) string {
	return filepath.Join(target, lay.Root, constants.StampFileName)
}

func readStamp(path string) (Stamp, error) {
	var stamp Stamp
	_, err := toml.DecodeFile(path, &stamp)

	return stamp, err
}

// write writes the stamp to the given path atomically, replacing it if it already exists.
// Not atomic on Windows.
func (s Stamp) write(l *slog.Logger, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("could not encode stamp file: %v", err)
	}

	if err := fileutils.AtomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("could not write stamp file: %v", err)
	}
	l.Debug("Wrote stamp file", "file", path, "run_id", s.RunID)

	return nil
}
