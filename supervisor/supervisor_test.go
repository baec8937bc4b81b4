package supervisor

import (
	"errors"
	"testing"
	"time"

	"github.com/aidankcwu/lecture2obsidian/config"
	"github.com/aidankcwu/lecture2obsidian/schedule"
	"github.com/aidankcwu/lecture2obsidian/state"
)

type launchCall struct {
	logPath, course, title, date string
}

func testSupervisor(t *testing.T) (*Supervisor, *config.Config, *launchCall) {
	t.Helper()
	cfg := config.Default()
	cfg.DefaultCourse = "Lecture"
	sup := New(state.NewStore(t.TempDir()), func() (*config.Config, error) {
		return cfg, nil
	})

	call := &launchCall{}
	sup.launch = func(logPath, course, title, date string) (int, error) {
		*call = launchCall{logPath, course, title, date}
		return 4242, nil
	}
	// Monday 09:30.
	sup.now = func() time.Time {
		return time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)
	}
	return sup, cfg, call
}

func TestToggleIdleStartsWorker(t *testing.T) {
	sup, _, call := testSupervisor(t)

	res, err := sup.Toggle("", "", "")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !res.Started || res.Stopped || res.StaleCleared {
		t.Fatalf("result = %+v, want Started only", res)
	}
	if res.PID != 4242 {
		t.Errorf("pid = %d", res.PID)
	}
	if res.Course != "Lecture" {
		t.Errorf("course = %q, want schedule fallback", res.Course)
	}
	if res.Title != "Lecture 2024-01-01" {
		t.Errorf("title = %q", res.Title)
	}
	if res.Date != "2024-01-01" {
		t.Errorf("date = %q", res.Date)
	}
	if call.course != res.Course || call.title != res.Title || call.date != res.Date {
		t.Errorf("worker launched with %+v", call)
	}

	rec, ok := sup.Store.Read()
	if !ok {
		t.Fatal("marker not written after start")
	}
	if rec.PID != 4242 || rec.Course != "Lecture" {
		t.Errorf("marker = %+v", rec)
	}
}

func TestToggleFlagsOverrideSchedule(t *testing.T) {
	sup, cfg, call := testSupervisor(t)
	cfg.Schedule = map[string][]schedule.Entry{
		"Monday": {{Time: "09:00-10:15", Course: "CS 301", TitlePrefix: "Data Structures"}},
	}

	res, err := sup.Toggle("MATH 201", "Linear Algebra", "2024-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if res.Course != "MATH 201" || res.Title != "Linear Algebra" || res.Date != "2024-01-02" {
		t.Errorf("flags not honored: %+v", res)
	}
	if call.course != "MATH 201" {
		t.Errorf("launch got %+v", call)
	}
}

func TestToggleScheduleInference(t *testing.T) {
	sup, cfg, _ := testSupervisor(t)
	cfg.Schedule = map[string][]schedule.Entry{
		"Monday": {{Time: "09:00-10:15", Course: "CS 301", TitlePrefix: "Data Structures"}},
	}

	res, err := sup.Toggle("", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Course != "CS 301" {
		t.Errorf("course = %q, want inferred", res.Course)
	}
	if res.Title != "Data Structures 2024-01-01" {
		t.Errorf("title = %q", res.Title)
	}
}

func TestToggleActiveSignalsStop(t *testing.T) {
	sup, _, _ := testSupervisor(t)
	if err := sup.Store.Write(777, "CS 301", "Lecture 9", "2024-01-01"); err != nil {
		t.Fatal(err)
	}

	var signaled int
	sup.sigstop = func(pid int) error {
		signaled = pid
		return nil
	}

	res, err := sup.Toggle("", "", "")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !res.Stopped || res.Started || res.StaleCleared {
		t.Fatalf("result = %+v, want Stopped only", res)
	}
	if signaled != 777 {
		t.Errorf("signaled pid %d", signaled)
	}
	if res.Course != "CS 301" {
		t.Errorf("course = %q", res.Course)
	}

	// Stop does not wait for the pipeline; the worker clears the marker.
	if _, ok := sup.Store.Read(); !ok {
		t.Error("marker should survive until the worker finishes")
	}
}

func TestToggleStaleMarkerCleared(t *testing.T) {
	sup, _, _ := testSupervisor(t)
	if err := sup.Store.Write(777, "CS 301", "Lecture 9", "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	sup.sigstop = func(pid int) error { return errProcessGone }

	res, err := sup.Toggle("", "", "")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !res.StaleCleared || res.Started || res.Stopped {
		t.Fatalf("result = %+v, want StaleCleared only", res)
	}
	if _, ok := sup.Store.Read(); ok {
		t.Error("stale marker not cleared")
	}

	// The next toggle starts fresh.
	res2, err := sup.Toggle("", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !res2.Started {
		t.Errorf("follow-up toggle = %+v, want Started", res2)
	}
}

func TestToggleSignalFailure(t *testing.T) {
	sup, _, _ := testSupervisor(t)
	if err := sup.Store.Write(777, "CS 301", "L", "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("operation not permitted")
	sup.sigstop = func(pid int) error { return boom }

	if _, err := sup.Toggle("", "", ""); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped signal error", err)
	}
	if _, ok := sup.Store.Read(); !ok {
		t.Error("marker must not be cleared on signal failure")
	}
}

// Config is needed only to start; stopping must work even when the
// config file is broken or missing.
func TestToggleStopNeedsNoConfig(t *testing.T) {
	sup, _, _ := testSupervisor(t)
	sup.LoadConfig = func() (*config.Config, error) {
		t.Fatal("stop path must not load config")
		return nil, nil
	}
	if err := sup.Store.Write(777, "CS 301", "L", "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	sup.sigstop = func(pid int) error { return nil }

	res, err := sup.Toggle("", "", "")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !res.Stopped {
		t.Errorf("result = %+v, want Stopped", res)
	}
}

// The start path loads config itself off the same marker read that chose
// it, so a marker vanishing between reads cannot leave it configless.
func TestToggleStartConfigLoadFailure(t *testing.T) {
	sup, _, _ := testSupervisor(t)
	boom := errors.New("config not found")
	sup.LoadConfig = func() (*config.Config, error) { return nil, boom }

	if _, err := sup.Toggle("", "", ""); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want config load error", err)
	}
	if _, ok := sup.Store.Read(); ok {
		t.Error("no marker should be written when config load fails")
	}
}
