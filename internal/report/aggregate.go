// Package report turns the raw logs of a day into one row per task.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// Aggregate groups entries by exact note text. Entries without a note, or
// with a note of only whitespace, are dropped. Each group spans the earliest
// interval start to the latest interval end of its members, sums the members'
// own durations and takes the tags of its first member sorted by id. Groups
// are ordered by start; ties keep the order of first appearance.
func Aggregate(entries []model.TimeEntry) []model.AggregatedTask {
	var order []string
	groups := map[string][]model.TimeEntry{}
	for _, e := range entries {
		note := e.NoteText()
		if strings.TrimSpace(note) == "" {
			continue
		}
		if _, seen := groups[note]; !seen {
			order = append(order, note)
		}
		groups[note] = append(groups[note], e)
	}

	tasks := make([]model.AggregatedTask, 0, len(order))
	for _, note := range order {
		tasks = append(tasks, buildTask(note, groups[note]))
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Start.Before(tasks[j].Start)
	})
	return tasks
}

func buildTask(note string, members []model.TimeEntry) model.AggregatedTask {
	task := model.AggregatedTask{
		IDs:  make([]int64, 0, len(members)),
		Note: strings.TrimSpace(note),
		Tags: sortedTags(members[0].Tags),
	}
	if task.Note == "" {
		panic(fmt.Sprintf("report: group for note %q has empty display note", note))
	}

	var hasStart, hasEnd bool
	for _, e := range members {
		if e.NoteText() != note {
			panic(fmt.Sprintf("report: entry %d grouped under note %q has note %q", e.ID, note, e.NoteText()))
		}
		task.IDs = append(task.IDs, e.ID)
		task.TotalDurationSeconds += e.Duration
		if e.Running {
			task.Running = true
		}
		for _, iv := range e.Times {
			if iv.Running || iv.EndTime.IsZero() {
				task.Running = true
			}
			if !iv.StartTime.IsZero() && (!hasStart || iv.StartTime.Before(task.Start)) {
				task.Start = iv.StartTime.Time
				hasStart = true
			}
			if !iv.EndTime.IsZero() && (!hasEnd || iv.EndTime.After(task.End)) {
				task.End = iv.EndTime.Time
				hasEnd = true
			}
		}
	}
	if !hasEnd || task.End.Before(task.Start) {
		task.End = task.Start
	}
	return task
}

func sortedTags(tags []model.Tag) []model.Tag {
	out := make([]model.Tag, len(tags))
	copy(out, tags)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Total sums the durations of tasks in seconds.
func Total(tasks []model.AggregatedTask) int64 {
	var total int64
	for _, t := range tasks {
		total += t.TotalDurationSeconds
	}
	return total
}

// Running returns the entries that are still running.
func Running(entries []model.TimeEntry) []model.TimeEntry {
	var out []model.TimeEntry
	for _, e := range entries {
		if e.Running {
			out = append(out, e)
		}
	}
	return out
}
