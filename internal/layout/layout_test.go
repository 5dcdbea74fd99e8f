package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omni-assistant/omni-scaffold/internal/layout"
)

// smallLayout returns a valid layout used as a base for the tests.
func smallLayout() layout.Layout {
	return layout.Layout{
		Root:   "proj",
		Marker: "__init__.py",
		Dirs: []layout.Dir{
			{Path: "core", Files: []string{"app.py"}},
			{Path: "core/sub", Files: []string{"a.py", "b.py"}},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate func(*layout.Layout)

		wantErr bool
	}{
		"Valid layout":  {},
		"No files":      {mutate: func(l *layout.Layout) { l.Dirs[0].Files = nil }},
		"No dirs":       {mutate: func(l *layout.Layout) { l.Dirs = nil }},
		"Deeply nested": {mutate: func(l *layout.Layout) { l.Dirs = append(l.Dirs, layout.Dir{Path: "core/sub/deep"}) }},

		// Error cases
		"Empty root":                {mutate: func(l *layout.Layout) { l.Root = "" }, wantErr: true},
		"Root with separator":       {mutate: func(l *layout.Layout) { l.Root = "a/b" }, wantErr: true},
		"Empty marker":              {mutate: func(l *layout.Layout) { l.Marker = "" }, wantErr: true},
		"Marker with separator":     {mutate: func(l *layout.Layout) { l.Marker = "pkg/__init__.py" }, wantErr: true},
		"Empty dir path":            {mutate: func(l *layout.Layout) { l.Dirs[0].Path = "" }, wantErr: true},
		"Dot dir path":              {mutate: func(l *layout.Layout) { l.Dirs[0].Path = "." }, wantErr: true},
		"Absolute dir path":         {mutate: func(l *layout.Layout) { l.Dirs[0].Path = "/etc" }, wantErr: true},
		"Unclean dir path":          {mutate: func(l *layout.Layout) { l.Dirs[0].Path = "core//sub" }, wantErr: true},
		"Escaping dir path":         {mutate: func(l *layout.Layout) { l.Dirs[0].Path = "../out" }, wantErr: true},
		"Duplicate dir path":        {mutate: func(l *layout.Layout) { l.Dirs[1].Path = "core" }, wantErr: true},
		"Unlisted parent":           {mutate: func(l *layout.Layout) { l.Dirs[1].Path = "other/sub" }, wantErr: true},
		"Child listed before":       {mutate: func(l *layout.Layout) { l.Dirs[0].Path, l.Dirs[1].Path = l.Dirs[1].Path, l.Dirs[0].Path }, wantErr: true},
		"File with separator":       {mutate: func(l *layout.Layout) { l.Dirs[0].Files = []string{"sub/app.py"} }, wantErr: true},
		"File repeating the marker": {mutate: func(l *layout.Layout) { l.Dirs[0].Files = []string{"__init__.py"} }, wantErr: true},
		"Duplicate file":            {mutate: func(l *layout.Layout) { l.Dirs[0].Files = []string{"app.py", "app.py"} }, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := smallLayout()
			if tc.mutate != nil {
				tc.mutate(&l)
			}

			err := l.Validate()
			if tc.wantErr {
				require.Error(t, err, "Validate should return an error")
				assert.ErrorIs(t, err, layout.ErrInvalidLayout, "Validate errors should wrap ErrInvalidLayout")
				return
			}
			require.NoError(t, err, "Validate should not return an error")
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	l := layout.Default()
	require.NoError(t, l.Validate(), "the built-in layout should be valid")

	assert.Equal(t, "omni", l.Root, "the built-in layout should target the omni directory")
	assert.Equal(t, "__init__.py", l.Marker, "the built-in layout should use the package marker")

	dirs := l.DirPaths()
	assert.Equal(t, "omni", dirs[0], "the root should come first in creation order")
	assert.Contains(t, dirs, "omni/services/speech/wake_word", "the built-in layout should contain the speech subtree")
	assert.Contains(t, dirs, "omni/services/edge/cache", "the built-in layout should contain the edge subtree")

	files := l.FilePaths()
	assert.Contains(t, files, "omni/__init__.py", "every directory should receive the marker")
	assert.Contains(t, files, "omni/services/intent/engine.py", "the built-in layout should contain the intent placeholders")
	assert.Len(t, files, len(dirs)+countFiles(l), "there should be one marker per directory plus the listed files")
}

func countFiles(l layout.Layout) int {
	n := 0
	for _, d := range l.Dirs {
		n += len(d.Files)
	}
	return n
}

func TestPaths(t *testing.T) {
	t.Parallel()

	l := smallLayout()

	assert.Equal(t, []string{"proj", "proj/core", "proj/core/sub"}, l.DirPaths(), "DirPaths should list the root first, in creation order")
	assert.Equal(t, []string{
		"proj/__init__.py",
		"proj/core/__init__.py",
		"proj/core/app.py",
		"proj/core/sub/__init__.py",
		"proj/core/sub/a.py",
		"proj/core/sub/b.py",
	}, l.FilePaths(), "FilePaths should interleave markers and files in creation order")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content     string
		missingFile bool

		wantMarker string
		wantErr    bool
	}{
		"Valid layout": {
			content: `
root: proj
marker: __init__.py
dirs:
  - path: core
    files: [app.py]
`,
			wantMarker: "__init__.py",
		},
		"Marker defaults when omitted": {
			content: `
root: proj
dirs:
  - path: core
`,
			wantMarker: "__init__.py",
		},
		"Custom marker": {
			content: `
root: proj
marker: .gitkeep
dirs:
  - path: core
`,
			wantMarker: ".gitkeep",
		},

		// Error cases
		"Missing file fails":    {missingFile: true, wantErr: true},
		"Invalid YAML fails":    {content: "root: [", wantErr: true},
		"Unknown field fails":   {content: "root: proj\nextra: true\n", wantErr: true},
		"Invalid layout fails":  {content: "root: proj\ndirs:\n  - path: /abs\n", wantErr: true},
		"Empty root fails":      {content: "dirs:\n  - path: core\n", wantErr: true},
		"Unlisted parent fails": {content: "root: proj\ndirs:\n  - path: a/b\n", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "layout.yaml")
			if !tc.missingFile {
				require.NoError(t, os.WriteFile(path, []byte(tc.content), 0600), "Setup: WriteFile should not return an error")
			}

			got, err := layout.Load(path)
			if tc.wantErr {
				require.Error(t, err, "Load should return an error")
				return
			}
			require.NoError(t, err, "Load should not return an error")
			assert.Equal(t, tc.wantMarker, got.Marker, "Load should apply the expected marker")
			require.NoError(t, got.Validate(), "loaded layouts should be valid")
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	l := smallLayout()
	data, err := l.YAML()
	require.NoError(t, err, "YAML should not return an error")

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, data, 0600), "Setup: WriteFile should not return an error")

	got, err := layout.Load(path)
	require.NoError(t, err, "Load should accept the YAML the layout produced")
	assert.Equal(t, l, got, "the layout should survive a YAML round trip")
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	base := smallLayout()

	tests := map[string]struct {
		mutate func(*layout.Layout)

		wantSame bool
	}{
		"Identical layout": {wantSame: true},

		"Different root":   {mutate: func(l *layout.Layout) { l.Root = "other" }},
		"Different marker": {mutate: func(l *layout.Layout) { l.Marker = ".gitkeep" }},
		"Extra file":       {mutate: func(l *layout.Layout) { l.Dirs[0].Files = append(l.Dirs[0].Files, "extra.py") }},
		"Extra dir":        {mutate: func(l *layout.Layout) { l.Dirs = append(l.Dirs, layout.Dir{Path: "models"}) }},
		"Reordered files":  {mutate: func(l *layout.Layout) { l.Dirs[1].Files = []string{"b.py", "a.py"} }},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := smallLayout()
			if tc.mutate != nil {
				tc.mutate(&l)
			}

			if tc.wantSame {
				assert.Equal(t, base.Checksum(), l.Checksum(), "checksums should match")
				return
			}
			assert.NotEqual(t, base.Checksum(), l.Checksum(), "checksums should differ")
		})
	}
}

func TestTreeString(t *testing.T) {
	t.Parallel()

	l := smallLayout()

	want := `proj/
    __init__.py
    core/
        __init__.py
        app.py
        sub/
            __init__.py
            a.py
            b.py
`
	assert.Equal(t, want, l.TreeString(), "TreeString should render the expected tree")
}
