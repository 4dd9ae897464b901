package cmd

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/myhours-cli/internal/myhours"
	"github.com/Tiliavir/myhours-cli/internal/report"
)

var todayStandup bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's tasks",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func init() {
	todayCmd.Flags().BoolVarP(&todayStandup, "standup", "s", false, "Print a standup bullet list")
}

func runToday(cmd *cobra.Command, args []string) error {
	now := time.Now()
	return showDay(cmd, now, now, todayStandup)
}

// showDay prints the aggregated report for day.
func showDay(cmd *cobra.Command, day, now time.Time, standup bool) error {
	ctx := cmd.Context()
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	api, err := a.api(ctx)
	if err != nil {
		return err
	}
	return writeDay(ctx, cmd.OutOrStdout(), api, report.Options{Standup: standup, Day: day, Now: now})
}

func writeDay(ctx context.Context, w io.Writer, api *myhours.Client, opts report.Options) error {
	entries, err := api.ListLogs(ctx, opts.Day)
	if err != nil {
		return err
	}
	report.Render(w, report.Aggregate(entries), opts)
	return nil
}
