package fudge

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// PlanFile is a reusable weekly allocation, for example:
//
//	tags: [backfill]
//	allocations:
//	  - hours: 4
//	    project: 1201
//	  - hours: 3.5
//	    project: 1202
//	    task: 88
type PlanFile struct {
	Tags        []string           `yaml:"tags"`
	Allocations []model.Allocation `yaml:"allocations"`
}

// LoadPlanFile reads a YAML plan. Unknown keys are rejected.
func LoadPlanFile(path string) (PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlanFile{}, fmt.Errorf("reading plan file %s: %w", path, err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes a YAML plan document.
func ParsePlan(data []byte) (PlanFile, error) {
	var p PlanFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return PlanFile{}, fmt.Errorf("%w: parsing plan: %w", model.ErrValidation, err)
	}
	return p, nil
}

// ParseAllocation parses "HOURS:PROJECT" or "HOURS:PROJECT:TASK".
func ParseAllocation(s string) (model.Allocation, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return model.Allocation{}, fmt.Errorf("%w: allocation %q must be HOURS:PROJECT[:TASK]", model.ErrValidation, s)
	}
	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return model.Allocation{}, fmt.Errorf("%w: allocation %q: bad hours: %w", model.ErrValidation, s, err)
	}
	project, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return model.Allocation{}, fmt.Errorf("%w: allocation %q: bad project id: %w", model.ErrValidation, s, err)
	}
	a := model.Allocation{Hours: hours, ProjectID: project}
	if len(parts) == 3 {
		task, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return model.Allocation{}, fmt.Errorf("%w: allocation %q: bad task id: %w", model.ErrValidation, s, err)
		}
		a.TaskID = &task
	}
	return a, nil
}
