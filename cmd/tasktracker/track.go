package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var trackFor time.Duration

var trackCmd = &cobra.Command{
	Use:   "track <file>",
	Short: "Run a session on a task from the terminal",
	Long: `Start a session on the task and keep it running until interrupted or,
with --for, until the duration has passed. The task is auto-saved while the
session runs and saved again when it stops.`,
	Args: cobra.ExactArgs(1),
	RunE: trackTask,
}

func init() {
	trackCmd.Flags().DurationVar(&trackFor, "for", 0, "stop the session after this long")
}

func trackTask(cmd *cobra.Command, args []string) error {
	t, err := env.storage.Load(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if trackFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, trackFor)
		defer cancel()
	}

	if _, err := t.Start(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tracking %s, press Ctrl+C to stop\n", t.Record().TaskName)

	<-ctx.Done()

	_, err = t.Stop()
	fmt.Fprintf(out, "Stopped at %s\n", t.TotalElapsedFormatted())
	return err
}
