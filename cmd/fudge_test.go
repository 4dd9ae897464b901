package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/myhours-cli/internal/fudge"
	"github.com/Tiliavir/myhours-cli/internal/model"
)

func TestCollectAllocations(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "week.yaml")
	doc := "tags: [backfill]\nallocations:\n  - hours: 4\n    project: 1201\n"
	if err := os.WriteFile(plan, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	allocs, planTags, err := collectAllocations([]string{"3.5:1202:88"}, plan)
	if err != nil {
		t.Fatalf("collectAllocations: %v", err)
	}
	if len(allocs) != 2 || allocs[0].ProjectID != 1201 || allocs[1].ProjectID != 1202 {
		t.Errorf("allocs = %+v", allocs)
	}
	if allocs[1].TaskID == nil || *allocs[1].TaskID != 88 {
		t.Errorf("task = %v", allocs[1].TaskID)
	}
	if len(planTags) != 1 || planTags[0] != "backfill" {
		t.Errorf("planTags = %v", planTags)
	}

	if _, _, err := collectAllocations([]string{"4"}, ""); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, _, err := collectAllocations(nil, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing plan file")
	}
}

func TestPickTags(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  string
	}{
		{"flag wins", [][]string{{"a"}, {"b"}, {"c"}}, "a"},
		{"plan", [][]string{nil, {"b"}, {"c"}}, "b"},
		{"config", [][]string{nil, nil, {"c"}}, "c"},
		{"none", [][]string{nil, nil, nil}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(pickTags(tt.lists...), ",")
			if got != tt.want {
				t.Errorf("pickTags = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFudgeWeekStart(t *testing.T) {
	thu := time.Date(2024, 3, 7, 15, 0, 0, 0, time.Local)
	got, err := fudgeWeekStart("", thu)
	if err != nil || got.Format("2006-01-02") != "2024-03-04" {
		t.Errorf("default week = %v, %v", got, err)
	}
	got, err = fudgeWeekStart("2024-03-06", thu)
	if err != nil || got.Format("2006-01-02") != "2024-03-06" {
		t.Errorf("explicit week = %v, %v", got, err)
	}
	if _, err := fudgeWeekStart("06-03", thu); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestPrintPlan(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	steps := fudge.Plan(monday, []model.Allocation{{Hours: 1, ProjectID: 5}})

	var buf bytes.Buffer
	printPlan(&buf, steps, []string{"a", "b"}, "fudged by myhours")
	out := buf.String()

	if !strings.HasPrefix(out, `Dry run, note "fudged by myhours", tags a,b`) {
		t.Errorf("header = %q", out)
	}
	if n := strings.Count(out, "delete marker entries"); n != 7 {
		t.Errorf("deletes = %d, want 7", n)
	}
	if n := strings.Count(out, "create 1h 0m on project 5"); n != 5 {
		t.Errorf("creates = %d, want 5", n)
	}
}
