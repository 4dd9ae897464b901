package cmd

import (
	"errors"
	"testing"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

func TestParseLogID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"9007199254740993", 9007199254740993, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLogID(tt.in)
		if tt.wantErr {
			if !errors.Is(err, model.ErrValidation) {
				t.Errorf("parseLogID(%q) error = %v, want ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseLogID(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestEntryIDs(t *testing.T) {
	got := entryIDs([]model.TimeEntry{{ID: 3}, {ID: 1}})
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Errorf("entryIDs = %v", got)
	}
	if got := entryIDs(nil); len(got) != 0 {
		t.Errorf("entryIDs(nil) = %v", got)
	}
}
