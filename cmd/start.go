package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/myhours"
	"github.com/Tiliavir/myhours-cli/internal/tags"
	"github.com/Tiliavir/myhours-cli/internal/timecalc"
)

var (
	startTags    string
	startTime    string
	startProject int64
	startTask    int64
)

var startCmd = &cobra.Command{
	Use:   "start <note>",
	Short: "Start a new timer",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startTags, "tags", "t", "", "Comma-separated tags, created when missing")
	startCmd.Flags().StringVarP(&startTime, "start", "s", "", "Start time (ISO 8601), defaults to now")
	startCmd.Flags().Int64Var(&startProject, "project", 0, "Project id")
	startCmd.Flags().Int64Var(&startTask, "task", 0, "Task id")
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	now := time.Now()

	var at *time.Time
	if startTime != "" {
		t, err := model.ParseAPITime(startTime)
		if err != nil {
			return fmt.Errorf("%w: --start %q is not an ISO 8601 time", model.ErrValidation, startTime)
		}
		at = &t
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	api, err := a.api(ctx)
	if err != nil {
		return err
	}

	var resolved []model.Tag
	if names := tags.ParseList(startTags); len(names) > 0 {
		resolved, err = tags.NewResolver(api, a.cfg.Tags.HexColor).Resolve(ctx, names)
		if err != nil {
			return err
		}
	}

	id, err := api.StartLog(ctx, startRequest(args[0], resolved, at, startProject, startTask, now))
	if err != nil {
		return err
	}
	a.log.Printf("start: log %d with %d tags", id, len(resolved))
	fmt.Fprintf(cmd.OutOrStdout(), "Started new log: %d\n", id)
	return nil
}

// startRequest builds the body for a timer started today. Zero project and
// task ids are sent as null.
func startRequest(note string, tagList []model.Tag, at *time.Time, project, task int64, now time.Time) myhours.StartLogRequest {
	r := myhours.StartLogRequest{
		Date:   timecalc.DateString(now),
		TagIDs: model.TagIDs(tagList),
		Note:   note,
	}
	if project > 0 {
		r.ProjectID = &project
	}
	if task > 0 {
		r.TaskID = &task
	}
	if at != nil {
		s := at.UTC().Format("2006-01-02T15:04:05.000Z")
		r.Start = &s
	}
	return r
}
