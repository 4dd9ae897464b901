// Package fudge backfills a week of hours: for every day it removes the
// entries it wrote before and, on weekdays, writes one entry per allocation.
package fudge

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/myhours"
	"github.com/Tiliavir/myhours-cli/internal/timecalc"
)

// DefaultMarker is the note that identifies entries written by fudge.
const DefaultMarker = "fudged by myhours"

// granularity is the smallest duration unit the API stores, in seconds.
const granularity = 5

// API is the subset of the remote client used to rewrite a week.
type API interface {
	DeleteLogsByNote(ctx context.Context, date time.Time, note string) (int, error)
	InsertLog(ctx context.Context, r myhours.InsertLogRequest) (int64, error)
}

// StepKind tells whether a step deletes or creates entries.
type StepKind int

const (
	StepDelete StepKind = iota
	StepCreate
)

// Step is one remote call of a week rewrite.
type Step struct {
	Kind            StepKind
	Date            time.Time
	Allocation      model.Allocation
	DurationSeconds int64
}

func (s Step) String() string {
	day := s.Date.Format("Mon 2006-01-02")
	if s.Kind == StepDelete {
		return fmt.Sprintf("%s  delete marker entries", day)
	}
	task := ""
	if s.Allocation.TaskID != nil {
		task = fmt.Sprintf(" task %d", *s.Allocation.TaskID)
	}
	return fmt.Sprintf("%s  create %s on project %d%s", day, timecalc.FormatDuration(s.DurationSeconds), s.Allocation.ProjectID, task)
}

// Result counts what a rewrite did.
type Result struct {
	Deleted int
	Created int
}

// DurationSeconds converts hours to seconds rounded to the nearest 5 seconds.
func DurationSeconds(hours float64) int64 {
	return int64(math.Round(hours*3600/granularity) * granularity)
}

// Validate checks allocations before any network call.
func Validate(allocs []model.Allocation) error {
	if len(allocs) == 0 {
		return fmt.Errorf("%w: at least one allocation is required", model.ErrValidation)
	}
	for i, a := range allocs {
		if math.IsNaN(a.Hours) || math.IsInf(a.Hours, 0) || a.Hours <= 0 {
			return fmt.Errorf("%w: allocation %d: hours must be positive, got %v", model.ErrValidation, i+1, a.Hours)
		}
		if DurationSeconds(a.Hours) == 0 {
			return fmt.Errorf("%w: allocation %d: %v hours rounds to zero", model.ErrValidation, i+1, a.Hours)
		}
		if a.ProjectID <= 0 {
			return fmt.Errorf("%w: allocation %d: project id must be positive", model.ErrValidation, i+1)
		}
	}
	return nil
}

// Plan lists the steps for the seven days starting at weekStart: a delete
// for every day, then one create per allocation on weekdays.
func Plan(weekStart time.Time, allocs []model.Allocation) []Step {
	var steps []Step
	for _, day := range timecalc.Week(weekStart) {
		steps = append(steps, Step{Kind: StepDelete, Date: day})
		if timecalc.IsWeekend(day) {
			continue
		}
		for _, a := range allocs {
			steps = append(steps, Step{
				Kind:            StepCreate,
				Date:            day,
				Allocation:      a,
				DurationSeconds: DurationSeconds(a.Hours),
			})
		}
	}
	return steps
}

// Distributor executes plans against the remote API.
type Distributor struct {
	api    API
	marker string
	out    io.Writer
	log    *log.Logger
}

// NewDistributor writes progress lines to out. An empty marker means
// DefaultMarker.
func NewDistributor(api API, marker string, out io.Writer, logger *log.Logger) *Distributor {
	if marker == "" {
		marker = DefaultMarker
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Distributor{api: api, marker: marker, out: out, log: logger}
}

// Marker returns the note used for written entries.
func (d *Distributor) Marker() string {
	return d.marker
}

// Distribute rewrites the week starting at weekStart.
func (d *Distributor) Distribute(ctx context.Context, weekStart time.Time, allocs []model.Allocation, tags []model.Tag) (Result, error) {
	if err := Validate(allocs); err != nil {
		return Result{}, err
	}
	return d.Apply(ctx, Plan(weekStart, allocs), tags)
}

// Apply runs steps in order and stops at the first failure. Days before the
// failing step stay rewritten.
func (d *Distributor) Apply(ctx context.Context, steps []Step, tags []model.Tag) (Result, error) {
	var result Result
	tagIDs := model.TagIDs(tags)
	for _, s := range steps {
		date := timecalc.DateString(s.Date)
		switch s.Kind {
		case StepDelete:
			n, err := d.api.DeleteLogsByNote(ctx, s.Date, d.marker)
			result.Deleted += n
			if err != nil {
				return result, fmt.Errorf("clearing %s: %w", date, err)
			}
			d.log.Printf("fudge: %s removed %d entries", date, n)
		case StepCreate:
			id, err := d.api.InsertLog(ctx, myhours.InsertLogRequest{
				ProjectID: &s.Allocation.ProjectID,
				TaskID:    s.Allocation.TaskID,
				Date:      date,
				Duration:  s.DurationSeconds,
				TagIDs:    tagIDs,
				Note:      d.marker,
				Billable:  false,
			})
			if err != nil {
				return result, fmt.Errorf("creating entry on %s: %w", date, err)
			}
			result.Created++
			fmt.Fprintf(d.out, "  ✓ %s (#%d)\n", s, id)
		}
	}
	return result, nil
}
