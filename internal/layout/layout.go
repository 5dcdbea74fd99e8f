// Package layout defines the scaffold layout model.
// A layout describes the directory tree of a project skeleton: a root directory,
// a package marker file placed at every directory level, and the placeholder
// files expected in each directory.
package layout

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/omni-assistant/omni-scaffold/internal/constants"
)

var (
	// ErrInvalidLayout is returned when a layout fails validation.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Layout describes the expected structure of a scaffold.
//
// The root directory always exists and, like every listed directory, receives
// the marker file. Directory paths are relative to the root, use forward
// slashes, and must be listed parent first.
type Layout struct {
	Root   string `yaml:"root"`
	Marker string `yaml:"marker,omitempty"`
	Dirs   []Dir  `yaml:"dirs"`
}

// Dir is a single directory of a layout with its expected placeholder files.
// The marker file is implicit and must not be listed.
type Dir struct {
	Path  string   `yaml:"path"`
	Files []string `yaml:"files,omitempty"`
}

// Load reads a layout from a YAML file and validates it.
// Fields missing from the file get the built-in defaults.
func Load(p string) (Layout, error) {
	var l Layout
	f, err := os.Open(p)
	if err != nil {
		return Layout{}, fmt.Errorf("could not open layout file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("could not parse layout file %s: %w", p, err)
	}

	if l.Marker == "" {
		l.Marker = constants.DefaultMarkerFile
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// YAML returns the layout serialized as YAML.
func (l Layout) YAML() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("could not marshal layout: %v", err)
	}
	return data, nil
}

// Validate checks that the layout is well formed.
//
// Directory paths must be clean, relative, slash separated and unique, with
// every parent directory listed before its children. File names must be bare
// base names and must not repeat the marker file.
func (l Layout) Validate() error {
	if err := l.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return nil
}

func (l Layout) validate() error {
	if l.Root == "" {
		return errors.New("root directory name is empty")
	}
	if !validComponent(l.Root) {
		return fmt.Errorf("root %q must be a bare directory name", l.Root)
	}
	if l.Marker == "" {
		return errors.New("marker file name is empty")
	}
	if !validComponent(l.Marker) {
		return fmt.Errorf("marker %q must be a bare file name", l.Marker)
	}

	seen := map[string]struct{}{".": {}}
	for _, d := range l.Dirs {
		if d.Path == "" || d.Path == "." {
			return errors.New("directory path is empty, the root is implicit")
		}
		if path.Clean(d.Path) != d.Path || path.IsAbs(d.Path) || strings.HasPrefix(d.Path, "..") {
			return fmt.Errorf("directory path %q must be a clean relative path inside the root", d.Path)
		}
		if _, ok := seen[d.Path]; ok {
			return fmt.Errorf("duplicate directory path %q", d.Path)
		}
		if _, ok := seen[parent(d.Path)]; !ok {
			return fmt.Errorf("parent of directory %q is not listed before it", d.Path)
		}
		seen[d.Path] = struct{}{}

		files := map[string]struct{}{l.Marker: {}}
		for _, f := range d.Files {
			if !validComponent(f) {
				return fmt.Errorf("file %q in directory %q must be a bare file name", f, d.Path)
			}
			if _, ok := files[f]; ok {
				return fmt.Errorf("duplicate file %q in directory %q", f, d.Path)
			}
			files[f] = struct{}{}
		}
	}

	return nil
}

// DirPaths returns every directory of the layout relative to the parent of the
// root, root first, in creation order.
func (l Layout) DirPaths() []string {
	paths := make([]string, 0, len(l.Dirs)+1)
	paths = append(paths, l.Root)
	for _, d := range l.Dirs {
		paths = append(paths, path.Join(l.Root, d.Path))
	}
	return paths
}

// FilePaths returns every expected file of the layout relative to the parent
// of the root, markers included, in creation order.
func (l Layout) FilePaths() []string {
	var paths []string
	paths = append(paths, path.Join(l.Root, l.Marker))
	for _, d := range l.Dirs {
		paths = append(paths, path.Join(l.Root, d.Path, l.Marker))
		for _, f := range d.Files {
			paths = append(paths, path.Join(l.Root, d.Path, f))
		}
	}
	return paths
}

// Checksum returns a stable fingerprint of the layout.
// Two layouts with the same root, marker, directories and files in the same
// order share a checksum.
func (l Layout) Checksum() string {
	h := sha256.New()
	fmt.Fprintf(h, "root\x00%s\x00marker\x00%s\x00", l.Root, l.Marker)
	for _, d := range l.Dirs {
		fmt.Fprintf(h, "dir\x00%s\x00", d.Path)
		for _, f := range d.Files {
			fmt.Fprintf(h, "file\x00%s\x00", f)
		}
	}
	return fmt.Sprintf("sha256:%x", h.Sum(nil))
}

// TreeString renders the layout as an indented tree, directories suffixed with
// a slash, files of a directory listed before its subdirectories.
func (l Layout) TreeString() string {
	children := make(map[string][]string)
	files := map[string][]string{".": {l.Marker}}
	for _, d := range l.Dirs {
		p := parent(d.Path)
		children[p] = append(children[p], d.Path)
		files[d.Path] = append([]string{l.Marker}, d.Files...)
	}
	var sb strings.Builder
	var render func(dir string, depth int)
	render = func(dir string, depth int) {
		indent := strings.Repeat("    ", depth)
		name := l.Root
		if dir != "." {
			name = path.Base(dir)
		}
		fmt.Fprintf(&sb, "%s%s/\n", indent, name)
		for _, f := range files[dir] {
			fmt.Fprintf(&sb, "%s    %s\n", indent, f)
		}
		for _, c := range children[dir] {
			render(c, depth+1)
		}
	}
	render(".", 0)

	return sb.String()
}

func parent(p string) string {
	return path.Dir(p)
}

// validComponent reports whether s is a bare path component, with no
// separators and no directory traversal.
func validComponent(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
