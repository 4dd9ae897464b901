package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Tiliavir/myhours-cli/internal/model"
	"github.com/Tiliavir/myhours-cli/internal/storage"
)

// fakeAPI serves the endpoints used by the commands.
type fakeAPI struct {
	mu      sync.Mutex
	logs    string
	stopped []int64
	auth    []string
	refresh int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/tokens/refresh":
		f.refresh++
		_, _ = w.Write([]byte(`{"accessToken":"fresh","refreshToken":"ref2","expiresIn":3600}`))
	case r.Method == http.MethodGet && r.URL.Path == "/logs":
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(f.logs))
	case r.Method == http.MethodPost && r.URL.Path == "/logs/stopTimer":
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		var body struct {
			LogID int64 `json:"logId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.stopped = append(f.stopped, body.LogID)
		_, _ = w.Write([]byte(`{"id":1}`))
	default:
		http.NotFound(w, r)
	}
}

const sampleLogs = `[
  {"id":1,"note":"Standup","running":false,"duration":900,"tags":[],
   "times":[{"startTime":"2024-03-05T09:00:00","endTime":"2024-03-05T09:15:00"}]},
  {"id":2,"note":"Review","running":true,"duration":600,"tags":[{"id":4,"name":"dev"}],
   "times":[{"startTime":"2024-03-05T10:00:00","endTime":null}]}
]`

// setup points the CLI at api with a cached session expiring at expiresAt.
func setup(t *testing.T, api *fakeAPI, expiresAt time.Time) string {
	t.Helper()
	dir := t.TempDir()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("MYHOURS_API_BASE_URL", srv.URL)
	t.Setenv("MYHOURS_CREDENTIALS_BACKEND", "file")
	t.Setenv("MYHOURS_CREDENTIALS_PATH", "")

	store := storage.NewFileStore(filepath.Join(dir, "my-hours-cli.json"))
	err := store.Save(model.Session{
		Email:        "me@example.com",
		AccessToken:  "tok",
		RefreshToken: "ref",
		ExpiresAt:    expiresAt.UnixMilli(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunningCommand(t *testing.T) {
	api := &fakeAPI{logs: sampleLogs}
	setup(t, api, time.Now().Add(time.Hour))

	out, err := execute(t, "running")
	if err != nil {
		t.Fatalf("running: %v", err)
	}
	if !strings.Contains(out, " 📋 2 - Review") || strings.Contains(out, "Standup") {
		t.Errorf("output = %q", out)
	}
	if len(api.auth) != 1 || api.auth[0] != "Bearer tok" {
		t.Errorf("authorization = %v", api.auth)
	}
	if api.refresh != 0 {
		t.Errorf("refresh calls = %d, want 0", api.refresh)
	}
}

func TestStopCommandStopsRunning(t *testing.T) {
	api := &fakeAPI{logs: sampleLogs}
	setup(t, api, time.Now().Add(time.Hour))

	out, err := execute(t, "stop")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !strings.Contains(out, "Stopped running task(s)") {
		t.Errorf("output = %q", out)
	}
	if len(api.stopped) != 1 || api.stopped[0] != 2 {
		t.Errorf("stopped = %v, want [2]", api.stopped)
	}
}

func TestStopCommandNothingRunning(t *testing.T) {
	api := &fakeAPI{logs: `[]`}
	setup(t, api, time.Now().Add(time.Hour))

	out, err := execute(t, "stop")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !strings.Contains(out, "There are no running tasks") {
		t.Errorf("output = %q", out)
	}
	if len(api.stopped) != 0 {
		t.Errorf("stopped = %v, want none", api.stopped)
	}
}

func TestStopCommandByID(t *testing.T) {
	api := &fakeAPI{logs: `[]`}
	setup(t, api, time.Now().Add(time.Hour))

	if _, err := execute(t, "stop", "77"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(api.stopped) != 1 || api.stopped[0] != 77 {
		t.Errorf("stopped = %v, want [77]", api.stopped)
	}
}

func TestTodayCommandRefreshesExpiredSession(t *testing.T) {
	api := &fakeAPI{logs: sampleLogs}
	dir := setup(t, api, time.Now().Add(-time.Minute))

	out, err := execute(t, "today")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !strings.Contains(out, "Standup") || !strings.Contains(out, "Review") || !strings.Contains(out, "Total:") {
		t.Errorf("output = %q", out)
	}
	if api.refresh != 1 {
		t.Errorf("refresh calls = %d, want 1", api.refresh)
	}
	if len(api.auth) != 1 || api.auth[0] != "Bearer fresh" {
		t.Errorf("authorization = %v", api.auth)
	}

	sess, err := storage.NewFileStore(filepath.Join(dir, "my-hours-cli.json")).Load()
	if err != nil || sess == nil {
		t.Fatalf("Load: %v, %v", sess, err)
	}
	if sess.AccessToken != "fresh" || sess.RefreshToken != "ref2" {
		t.Errorf("stored session = %+v", sess)
	}
}

func TestFudgeDryRunMakesNoCalls(t *testing.T) {
	api := &fakeAPI{}
	setup(t, api, time.Now().Add(time.Hour))
	t.Cleanup(func() {
		fudgeAllocs, fudgeWeek, fudgeDryRun = nil, "", false
	})

	out, err := execute(t, "fudge", "--alloc", "4:1201", "--week", "2024-03-04", "--dry-run")
	if err != nil {
		t.Fatalf("fudge: %v", err)
	}
	if !strings.Contains(out, "Week 2024-W10 starting 2024-03-04") {
		t.Errorf("output = %q", out)
	}
	if n := strings.Count(out, "create 4h 0m on project 1201"); n != 5 {
		t.Errorf("creates = %d, want 5\n%s", n, out)
	}
	if len(api.auth) != 0 || api.refresh != 0 {
		t.Errorf("dry run hit the API: auth=%v refresh=%d", api.auth, api.refresh)
	}
}
