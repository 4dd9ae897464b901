package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/report"
)

var runningCmd = &cobra.Command{
	Use:   "running",
	Short: "List today's running timers",
	Args:  cobra.NoArgs,
	RunE:  runRunning,
}

func runRunning(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	api, err := a.api(ctx)
	if err != nil {
		return err
	}
	entries, err := api.ListLogs(ctx, time.Now())
	if err != nil {
		return err
	}
	printRunning(cmd.OutOrStdout(), report.Running(entries))
	return nil
}

func printRunning(w io.Writer, running []model.TimeEntry) {
	if len(running) == 0 {
		fmt.Fprintln(w, "There are no tasks")
		return
	}
	for _, e := range running {
		fmt.Fprintf(w, " 📋 %d - %s\n", e.ID, e.NoteText())
	}
}
