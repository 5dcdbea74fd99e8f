package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omni-assistant/omni-scaffold/cmd/omni-scaffold/commands"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args         []string
		customLayout bool

		wantErr      bool
		wantUsageErr bool
	}{
		"Layout tree":               {args: []string{"layout"}},
		"Layout tree explicit":      {args: []string{"layout", "--format", "tree"}},
		"Layout yaml":               {args: []string{"layout", "--format", "yaml"}},
		"Layout yaml shorthand":     {args: []string{"layout", "-f", "yaml"}},
		"Layout custom layout":      {args: []string{"layout"}, customLayout: true},
		"Layout custom layout yaml": {args: []string{"layout", "-f", "yaml"}, customLayout: true},

		// Error cases
		"Layout unknown format": {
			args:         []string{"layout", "--format", "json"},
			wantErr:      true,
			wantUsageErr: true,
		},
		"Layout with argument": {
			args:         []string{"layout", "extra-arg"},
			wantErr:      true,
			wantUsageErr: true,
		},
		"Layout missing layout file": {
			args:    []string{"layout", "--layout", "nonexistent.yaml"},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if tc.customLayout {
				tc.args = append(tc.args, "--layout", customLayoutFile(t))
			}

			app, err := commands.New()
			require.NoError(t, err, "Setup: could not create app")
			app.SetArgs(tc.args)

			err = app.Run()
			if tc.wantErr {
				require.Error(t, err, "Run should return an error")
				if tc.wantUsageErr {
					assert.True(t, app.UsageError(), "the error should be a usage error")
				}
				return
			}
			require.NoError(t, err, "Run should not return an error")
		})
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	app, err := commands.New()
	require.NoError(t, err, "Setup: could not create app")
	app.SetArgs([]string{"version"})

	assert.NoError(t, app.Run(), "version should not return an error")
}
