package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/myhours-cli/internal/fudge"
	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/tags"
	"github.com/Tiliavir/myhours-cli/internal/timecalc"
)

var (
	fudgeAllocs []string
	fudgePlan   string
	fudgeWeek   string
	fudgeTags   string
	fudgeDryRun bool
)

var fudgeCmd = &cobra.Command{
	Use:   "fudge",
	Short: "Backfill a week with fixed daily allocations",
	Long: `Rewrite the seven days starting at --week (default: Monday of this week).
Every day loses the entries previously written by fudge; every weekday gets one
entry per allocation. Allocations come from --alloc HOURS:PROJECT[:TASK] and
from a YAML --plan file.`,
	Example: `  myhours fudge --alloc 4:1201 --alloc 3.5:1202:88 --dry-run
  myhours fudge --plan week.yaml --week 2024-03-04`,
	Args: cobra.NoArgs,
	RunE: runFudge,
}

func init() {
	fudgeCmd.Flags().StringArrayVarP(&fudgeAllocs, "alloc", "a", nil, "Daily allocation HOURS:PROJECT[:TASK] (repeatable)")
	fudgeCmd.Flags().StringVar(&fudgePlan, "plan", "", "YAML plan file with tags and allocations")
	fudgeCmd.Flags().StringVarP(&fudgeWeek, "week", "w", "", "First day to rewrite (YYYY-MM-DD)")
	fudgeCmd.Flags().StringVarP(&fudgeTags, "tags", "t", "", "Comma-separated tags for the new entries")
	fudgeCmd.Flags().BoolVar(&fudgeDryRun, "dry-run", false, "Print the steps without changing anything")
}

func runFudge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	allocs, planTags, err := collectAllocations(fudgeAllocs, fudgePlan)
	if err != nil {
		return err
	}
	if err := fudge.Validate(allocs); err != nil {
		return err
	}
	weekStart, err := fudgeWeekStart(fudgeWeek, time.Now())
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	tagNames := pickTags(tags.ParseList(fudgeTags), planTags, a.cfg.Fudge.Tags)
	steps := fudge.Plan(weekStart, allocs)

	fmt.Fprintf(out, "Week %s starting %s\n", timecalc.ISOWeekLabel(weekStart), timecalc.DateString(weekStart))
	if fudgeDryRun {
		printPlan(out, steps, tagNames, a.cfg.Fudge.Marker)
		return nil
	}

	api, err := a.api(ctx)
	if err != nil {
		return err
	}
	var resolved []model.Tag
	if len(tagNames) > 0 {
		resolved, err = tags.NewResolver(api, a.cfg.Tags.HexColor).Resolve(ctx, tagNames)
		if err != nil {
			return err
		}
	}

	d := fudge.NewDistributor(api, a.cfg.Fudge.Marker, out, a.log)
	res, err := d.Apply(ctx, steps, resolved)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: stopped after removing %d and creating %d entries\n", res.Deleted, res.Created)
		return err
	}
	fmt.Fprintf(out, "Removed %d and created %d entries\n", res.Deleted, res.Created)
	return nil
}

// collectAllocations merges plan file allocations with --alloc values, plan
// first.
func collectAllocations(specs []string, planPath string) ([]model.Allocation, []string, error) {
	var allocs []model.Allocation
	var planTags []string
	if planPath != "" {
		p, err := fudge.LoadPlanFile(planPath)
		if err != nil {
			return nil, nil, err
		}
		allocs = append(allocs, p.Allocations...)
		planTags = p.Tags
	}
	for _, s := range specs {
		a, err := fudge.ParseAllocation(s)
		if err != nil {
			return nil, nil, err
		}
		allocs = append(allocs, a)
	}
	return allocs, planTags, nil
}

// pickTags returns the first non-empty list: flag, plan file, config.
func pickTags(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

func fudgeWeekStart(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return timecalc.WeekStart(now), nil
	}
	return timecalc.ParseDate(s)
}

func printPlan(w io.Writer, steps []fudge.Step, tagNames []string, marker string) {
	fmt.Fprintf(w, "Dry run, note %q", marker)
	if len(tagNames) > 0 {
		fmt.Fprintf(w, ", tags %s", strings.Join(tagNames, ","))
	}
	fmt.Fprintln(w)
	for _, s := range steps {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}
