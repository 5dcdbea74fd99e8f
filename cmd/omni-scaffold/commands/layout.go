package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func installLayoutCmd(app *App) {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the effective layout",
		Long: `Show the layout the other commands operate on, either the built-in one or the one from the layout flag.

The yaml format produces a file the layout flag accepts back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("Running layout command")
			return app.layoutRun()
		},
	}

	layoutCmd.Flags().StringVarP(&app.config.Show.Format, "format", "f", "tree", "output format, tree or yaml")

	app.cmd.AddCommand(layoutCmd)
}

// layoutRun runs the layout command.
func (a App) layoutRun() error {
	lay, err := a.effectiveLayout()
	if err != nil {
		return err
	}

	switch a.config.Show.Format {
	case "tree":
		fmt.Print(lay.TreeString())
	case "yaml":
		data, err := lay.YAML()
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	default:
		a.cmd.SilenceUsage = false
		return fmt.Errorf("unknown format %q, expected tree or yaml", a.config.Show.Format)
	}
	return nil
}
