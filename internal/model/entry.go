package model

// TimeEntry is a single time log as returned by the My Hours API.
// An entry may carry several intervals if it was started and stopped more
// than once under the same id.
type TimeEntry struct {
	ID       int64          `json:"id"`
	Note     *string        `json:"note"`
	Date     string         `json:"date"`
	Running  bool           `json:"running"`
	Duration int64          `json:"duration"` // seconds, authoritative total
	Tags     []Tag          `json:"tags"`
	Times    []TimeInterval `json:"times"`
}

// NoteText returns the entry note, or "" when the remote sent null.
func (e TimeEntry) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

// TimeInterval is one start/stop span of a TimeEntry.
type TimeInterval struct {
	ID        int64   `json:"id"`
	StartTime APITime `json:"startTime"`
	EndTime   APITime `json:"endTime"`
	Duration  int64   `json:"duration"`
	Running   bool    `json:"running"`
}

// Tag is a remote tag. Identity is by ID.
type Tag struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	HexColor     string  `json:"hexColor"`
	Archived     bool    `json:"archived"`
	DateArchived *string `json:"dateArchived"`
}

// TagIDs returns the ids of tags in order.
func TagIDs(tags []Tag) []int64 {
	if len(tags) == 0 {
		return nil
	}
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
