package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/timecalc"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Options controls how a day is rendered.
type Options struct {
	// Standup prints a bullet list suitable for pasting into chat.
	Standup bool
	// Day is the reported day, Now the current instant.
	Day time.Time
	Now time.Time
}

// Render writes tasks to w.
func Render(w io.Writer, tasks []model.AggregatedTask, opts Options) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "There are no tasks")
		return
	}
	if opts.Standup {
		renderStandup(w, tasks, opts)
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, Line(t))
	}
	fmt.Fprintln(w, mutedStyle.Render("Total: "+timecalc.FormatDuration(Total(tasks))))
}

// Line formats one task as "📋 09:00 - 09:15 20m - note #tag,#tag".
func Line(t model.AggregatedTask) string {
	end := t.End.Local().Format("15:04")
	if t.Running {
		end = "now"
	}
	return fmt.Sprintf("📋 %s - %s %s - %s %s",
		t.Start.Local().Format("15:04"),
		end,
		timecalc.FormatDuration(t.TotalDurationSeconds),
		t.Note,
		tagList(t.Tags),
	)
}

// StandupLine formats one task as "  - **tag**: note".
func StandupLine(t model.AggregatedTask) string {
	tag := ""
	if len(t.Tags) > 0 {
		tag = fmt.Sprintf("**%s**: ", t.Tags[0].Name)
	}
	return fmt.Sprintf("  - %s%s", tag, t.Note)
}

func renderStandup(w io.Writer, tasks []model.AggregatedTask, opts Options) {
	today := timecalc.SameDay(opts.Day, opts.Now)
	switch {
	case today:
		fmt.Fprintln(w, headingStyle.Render("Today:"))
	case timecalc.IsDayBefore(opts.Day, opts.Now):
		fmt.Fprintln(w, headingStyle.Render("Yesterday:"))
	default:
		fmt.Fprintln(w, headingStyle.Render("Last week:"))
	}
	for _, t := range tasks {
		fmt.Fprintln(w, StandupLine(t))
	}
	if !today {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Today:"))
		fmt.Fprintln(w, "  - Something")
	}
}

func tagList(tags []model.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		style := lipgloss.NewStyle()
		if tag.HexColor != "" {
			style = style.Foreground(lipgloss.Color(tag.HexColor))
		}
		parts = append(parts, style.Render("#"+tag.Name))
	}
	return strings.Join(parts, ",")
}
