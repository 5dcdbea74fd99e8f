package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/omni-assistant/omni-scaffold/internal/scaffold"
)

func installCreateCmd(app *App) {
	createCmd := &cobra.Command{
		Use:   "create [target-dir](optional argument)",
		Short: "Generate the project skeleton",
		Long: `Generate the project skeleton under the target directory, the current directory by default.

Missing directories and placeholder files are created empty. Anything that already exists, directories and files alike, is left untouched, so re-running create on a partial or complete scaffold only fills in the gaps.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.config.target = targetDirArg(args)

			slog.Info("Running create command")
			return app.createRun()
		},
	}

	createCmd.Flags().BoolVarP(&app.config.Create.DryRun, "dry-run", "d", false, "report what would be created without touching the filesystem")

	app.cmd.AddCommand(createCmd)
}

// createRun runs the create command.
func (a App) createRun() error {
	lay, err := a.effectiveLayout()
	if err != nil {
		return err
	}

	c := scaffold.New(slog.Default(), a.config.target, a.config.Create.DryRun)
	res, err := c.Apply(context.Background(), lay)
	if err != nil {
		return err
	}

	if a.config.Quiet {
		return nil
	}

	action := "Created"
	if a.config.Create.DryRun {
		action = "Would create"
	}
	fmt.Printf("%s %d directories and %d files under %s\n",
		action, len(res.CreatedDirs), len(res.CreatedFiles), filepath.Join(a.config.target, lay.Root))
	if len(res.SkippedFiles) > 0 {
		fmt.Printf("Left %d existing files untouched\n", len(res.SkippedFiles))
	}
	return nil
}
