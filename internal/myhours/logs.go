package myhours

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/timecalc"
)

// StartLogRequest starts a running timer.
type StartLogRequest struct {
	ProjectID *int64  `json:"projectId"`
	TaskID    *int64  `json:"taskId"`
	Date      string  `json:"date"`
	Start     *string `json:"start,omitempty"`
	TagIDs    []int64 `json:"tagIds,omitempty"`
	Note      string  `json:"note"`
	Billable  bool    `json:"billable"`
}

// InsertLogRequest creates a finished log with an explicit duration.
type InsertLogRequest struct {
	ProjectID *int64  `json:"projectId"`
	TaskID    *int64  `json:"taskId"`
	Date      string  `json:"date"`
	Duration  int64   `json:"duration"` // seconds
	TagIDs    []int64 `json:"tagIds,omitempty"`
	Note      string  `json:"note"`
	Billable  bool    `json:"billable"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type stopTimerRequest struct {
	LogID int64  `json:"logId"`
	Time  string `json:"time"`
}

// ListLogs returns every log of the given day.
func (c *Client) ListLogs(ctx context.Context, date time.Time) ([]model.TimeEntry, error) {
	q := url.Values{
		"date":       {timecalc.DateString(date)},
		"startIndex": {"0"},
		"step":       {"1000"},
	}
	var entries []model.TimeEntry
	err := c.do(ctx, c.authorized, request{
		op:     "list logs",
		method: http.MethodGet,
		path:   "/logs?" + q.Encode(),
		want:   http.StatusOK,
		kind:   model.ErrRemote,
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// StartLog starts a new running log and returns its id.
func (c *Client) StartLog(ctx context.Context, r StartLogRequest) (int64, error) {
	var created createdResponse
	err := c.do(ctx, c.authorized, request{
		op:     "start log",
		method: http.MethodPost,
		path:   "/logs/startNewLog",
		body:   r,
		want:   http.StatusCreated,
		kind:   model.ErrRemote,
	}, &created)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// StopTimer stops the running log with the given id at the given instant.
func (c *Client) StopTimer(ctx context.Context, logID int64, at time.Time) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := c.do(ctx, c.authorized, request{
		op:     "stop timer",
		method: http.MethodPost,
		path:   "/logs/stopTimer",
		body:   stopTimerRequest{LogID: logID, Time: at.UTC().Format(time.RFC3339)},
		want:   http.StatusOK,
		kind:   model.ErrRemote,
	}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// InsertLog creates a finished log and returns its id.
func (c *Client) InsertLog(ctx context.Context, r InsertLogRequest) (int64, error) {
	var created createdResponse
	err := c.do(ctx, c.authorized, request{
		op:     "insert log",
		method: http.MethodPost,
		path:   "/logs/insertlog",
		body:   r,
		want:   http.StatusCreated,
		kind:   model.ErrRemote,
	}, &created)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// DeleteLog removes a single log.
func (c *Client) DeleteLog(ctx context.Context, logID int64) error {
	return c.do(ctx, c.authorized, request{
		op:     "delete log",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/logs/%d", logID),
		want:   any2xx,
		kind:   model.ErrRemote,
	}, nil)
}

// DeleteLogsByNote removes every log on date whose note equals note exactly
// and reports how many were removed.
func (c *Client) DeleteLogsByNote(ctx context.Context, date time.Time, note string) (int, error) {
	entries, err := c.ListLogs(ctx, date)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, e := range entries {
		if e.Note == nil || *e.Note != note {
			continue
		}
		if err := c.DeleteLog(ctx, e.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
