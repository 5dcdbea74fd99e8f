package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/omni-assistant/omni-scaffold/internal/watcher"
)

const defaultDebounce = 500 * time.Millisecond

func installWatchCmd(app *App) {
	watchCmd := &cobra.Command{
		Use:   "watch [target-dir](optional argument)",
		Short: "Watch the project skeleton for drift",
		Long: `Verify the scaffold under the target directory, then keep watching it until interrupted.

Whenever the filesystem settles after a change, the structure is re-verified and any missing directories or files are reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.config.target = targetDirArg(args)

			slog.Info("Running watch command")
			return app.watchRun(cmd.Context())
		},
	}

	watchCmd.Flags().DurationVar(&app.config.Watch.Debounce, "debounce", defaultDebounce, "how long the filesystem must stay quiet before re-verifying")

	app.cmd.AddCommand(watchCmd)
}

// watchRun runs the watch command until the context is done or a signal is
// received.
func (a App) watchRun(ctx context.Context) error {
	lay, err := a.effectiveLayout()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watcher.New(slog.Default(), a.config.target, lay, a.config.Watch.Debounce)
	reports, watchErrs, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	if !a.config.Quiet {
		fmt.Println("Watching scaffold, press Ctrl+C to stop")
	}

	for {
		select {
		case report, ok := <-reports:
			if !ok {
				return nil
			}
			if !a.config.Quiet {
				printReport(report)
			}
		case err, ok := <-watchErrs:
			if !ok {
				return nil
			}
			slog.Warn("Watch error", "error", err)
		case <-ctx.Done():
			slog.Info("Shutdown signal received, exiting...")
			return nil
		}
	}
}
