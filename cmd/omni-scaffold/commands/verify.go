package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/omni-assistant/omni-scaffold/internal/verifier"
)

func installVerifyCmd(app *App) {
	verifyCmd := &cobra.Command{
		Use:   "verify [target-dir](optional argument)",
		Short: "Check the project skeleton against its layout",
		Long: `Check that every directory and file of the layout exists under the target directory, the current directory by default.

The command fails when the scaffold is incomplete. Placeholders that are no longer empty are listed for information, and fail the check under --require-empty.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.config.target = targetDirArg(args)

			slog.Info("Running verify command")
			return app.verifyRun()
		},
	}

	verifyCmd.Flags().BoolVar(&app.config.Verify.RequireEmpty, "require-empty", false, "fail when an expected placeholder file is no longer empty")

	app.cmd.AddCommand(verifyCmd)
}

// verifyRun runs the verify command.
func (a App) verifyRun() error {
	lay, err := a.effectiveLayout()
	if err != nil {
		return err
	}

	v := verifier.New(slog.Default(), a.config.target)
	report, err := v.Run(context.Background(), lay)
	if err != nil {
		return err
	}

	if !a.config.Quiet {
		printReport(report)
	}

	if !report.OK() {
		return fmt.Errorf("scaffold is incomplete: %d directories and %d files are missing",
			len(report.MissingDirs), len(report.MissingFiles))
	}
	if a.config.Verify.RequireEmpty && len(report.SeededFiles) > 0 {
		return fmt.Errorf("%d placeholder files are no longer empty", len(report.SeededFiles))
	}
	return nil
}

func printReport(report verifier.Report) {
	if report.OK() && len(report.SeededFiles) == 0 {
		fmt.Println("Scaffold matches its layout")
		return
	}

	if len(report.MissingDirs) > 0 {
		fmt.Println("Missing directories:")
		for _, d := range report.MissingDirs {
			fmt.Printf("  - %s\n", d)
		}
	}
	if len(report.MissingFiles) > 0 {
		fmt.Println("Missing files:")
		for _, f := range report.MissingFiles {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(report.SeededFiles) > 0 {
		fmt.Println("Placeholders no longer empty:")
		for _, f := range report.SeededFiles {
			fmt.Printf("  - %s\n", f)
		}
	}
}
