// Package commands contains the commands of the omni-scaffold command line tool.
package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omni-assistant/omni-scaffold/internal/cli"
	"github.com/omni-assistant/omni-scaffold/internal/constants"
	"github.com/omni-assistant/omni-scaffold/internal/layout"
)

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig
}

// appConfig holds the configuration for the application.
//
// The target directory comes from the positional argument of each command, not
// from the configuration surface, so it stays unexported.
type appConfig struct {
	Verbosity int
	Quiet     bool
	Layout    string

	Create createConfig
	Verify verifyConfig
	Watch  watchConfig
	Show   showConfig

	target string
}

type createConfig struct {
	DryRun bool
}

type verifyConfig struct {
	RequireEmpty bool
}

type watchConfig struct {
	Debounce time.Duration
}

type showConfig struct {
	Format string
}

// New registers commands and returns a new App.
func New() (*App, error) {
	a := App{}
	a.cmd = &cobra.Command{
		Use:   constants.CmdName + " [COMMAND]",
		Short: "Manage the skeleton of the omni assistant project",
		Long: `Generate, inspect, verify and watch the directory skeleton of the omni assistant project.

The skeleton is a fixed tree of directories with a package marker file at every level and empty placeholder files at the leaves. A layout file can replace the built-in tree.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			cli.SetVerbosity(a.config.Verbosity) // Set verbosity before loading config
			if err := cli.InitViperConfig(a.cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config); err != nil {
				return fmt.Errorf("unable to strictly decode configuration into struct: %w", err)
			}
			slog.Debug("got app config", "config", a.config)

			cli.SetVerbosity(a.config.Verbosity)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	cli.InstallConfigFlag(a.cmd)

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	installCreateCmd(&a)
	installVerifyCmd(&a)
	installWatchCmd(&a)
	installLayoutCmd(&a)
	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")
	cmd.PersistentFlags().BoolVarP(&app.config.Quiet, "quiet", "q", false, "suppress non-error command output")
	cmd.PersistentFlags().StringVar(&app.config.Layout, "layout", "", "path to a YAML layout file replacing the built-in layout")

	err := cmd.MarkPersistentFlagFilename("layout", "yaml", "yml")
	if err != nil {
		// This should never happen.
		panic(fmt.Sprintf("failed to mark layout flag as filename: %v", err))
	}
}

// Run executes the command and associated process, returning an error if any.
func (a *App) Run() error {
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// RootCmd returns the root command.
func (a App) RootCmd() cobra.Command {
	return *a.cmd
}

// effectiveLayout returns the layout the command operates on, either the
// built-in one or the one loaded from the layout flag.
func (a App) effectiveLayout() (layout.Layout, error) {
	if a.config.Layout == "" {
		return layout.Default(), nil
	}
	return layout.Load(a.config.Layout)
}

// targetDirArg returns the target directory from the command arguments,
// defaulting to the current directory.
func targetDirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
