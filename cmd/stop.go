package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/report"
)

var stopCmd = &cobra.Command{
	Use:   "stop [id]",
	Short: "Stop a timer, or every running timer of today",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var ids []int64
	if len(args) == 1 {
		id, err := parseLogID(args[0])
		if err != nil {
			return err
		}
		ids = []int64{id}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	api, err := a.api(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if ids == nil {
		entries, err := api.ListLogs(ctx, now)
		if err != nil {
			return err
		}
		ids = entryIDs(report.Running(entries))
	}
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "There are no running tasks")
		return nil
	}

	for _, id := range ids {
		if _, err := api.StopTimer(ctx, id, now); err != nil {
			return fmt.Errorf("stopping log %d: %w", id, err)
		}
		a.log.Printf("stop: log %d stopped", id)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Stopped running task(s)")
	return nil
}

func parseLogID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a log id", model.ErrValidation, s)
	}
	return id, nil
}

func entryIDs(entries []model.TimeEntry) []int64 {
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
