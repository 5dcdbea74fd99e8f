// Package constants is responsible for defining the constants used in the application.
// It also provides utility functions to get the default configuration path.
package constants

import (
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "omni-scaffold"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelWarn

	// DefaultProjectDir is the name of the directory the scaffold is generated under.
	DefaultProjectDir = "omni"

	// DefaultMarkerFile is the package marker file created at every directory level.
	DefaultMarkerFile = "__init__.py"

	// StampFileName is the base name of the stamp file written at the scaffold root.
	StampFileName = ".omni-scaffold.toml"

	// MaxConcurrentChecks is the maximum number of directory entries verified concurrently.
	MaxConcurrentChecks = 8
)

type options struct {
	baseDir func() (string, error)
}

type option func(*options)

// GetDefaultConfigPath is the default path to the configuration directory.
func GetDefaultConfigPath(opts ...option) string {
	o := options{baseDir: os.UserConfigDir}
	for _, opt := range opts {
		opt(&o)
	}

	return filepath.Join(getBaseDir(o.baseDir), CmdName)
}

// getBaseDir is a helper function to handle the case where the baseDir function returns an error, and instead return an empty string.
func getBaseDir(baseDirFunc func() (string, error)) string {
	dir, err := baseDirFunc()
	if err != nil {
		return ""
	}
	return dir
}
