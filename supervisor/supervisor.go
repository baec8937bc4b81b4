// Package supervisor owns the recording lifecycle: one toggle entry
// point that either launches a detached worker or signals the running
// one to stop and finish its pipeline.
package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/aidankcwu/lecture2obsidian/config"
	"github.com/aidankcwu/lecture2obsidian/log"
	"github.com/aidankcwu/lecture2obsidian/schedule"
	"github.com/aidankcwu/lecture2obsidian/state"
)

// errProcessGone marks a signal sent to a pid that no longer exists.
var errProcessGone = errors.New("process not found")

// ToggleResult describes which transition a Toggle call made.
type ToggleResult struct {
	Started      bool
	Stopped      bool
	StaleCleared bool
	PID          int
	Course       string
	Title        string
	Date         string
	LogPath      string
}

type Supervisor struct {
	Store *state.Store

	// LoadConfig runs lazily on the start path only; stopping a
	// recording must work even with a broken config file.
	LoadConfig func() (*config.Config, error)

	// Seams for tests; nil means the real implementations.
	now     func() time.Time
	launch  func(logPath, course, title, date string) (int, error)
	sigstop func(pid int) error
}

func New(store *state.Store, loadConfig func() (*config.Config, error)) *Supervisor {
	return &Supervisor{Store: store, LoadConfig: loadConfig}
}

// Toggle flips the recording state. With a worker running it sends
// SIGTERM and returns immediately; the worker finishes the pipeline on
// its own. With no worker it resolves course/title/date and launches
// one detached. A marker pointing at a dead pid is cleared and reported,
// not treated as a running session.
func (s *Supervisor) Toggle(course, title, date string) (*ToggleResult, error) {
	if rec, ok := s.Store.Read(); ok {
		return s.stop(rec)
	}
	return s.start(course, title, date)
}

func (s *Supervisor) stop(rec *state.Record) (*ToggleResult, error) {
	res := &ToggleResult{
		PID:     rec.PID,
		Course:  rec.Course,
		Title:   rec.Title,
		Date:    rec.Date,
		LogPath: s.Store.LogPath(),
	}
	stop := s.sigstop
	if stop == nil {
		stop = stopProcess
	}
	if err := stop(rec.PID); err != nil {
		if errors.Is(err, errProcessGone) {
			if err := s.Store.Clear(); err != nil {
				return nil, fmt.Errorf("clearing stale marker: %w", err)
			}
			res.StaleCleared = true
			return res, nil
		}
		return nil, fmt.Errorf("signaling pid %d: %w", rec.PID, err)
	}
	res.Stopped = true
	return res, nil
}

func (s *Supervisor) start(course, title, date string) (*ToggleResult, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	if date == "" {
		date = now().Format("2006-01-02")
	}
	if course == "" || title == "" {
		inferredCourse, prefix := schedule.Infer(cfg.Schedule, cfg.DefaultCourse, now())
		if course == "" {
			course = inferredCourse
		}
		if title == "" {
			title = prefix + " " + date
		}
	}

	logPath := s.Store.LogPath()
	launch := s.launch
	if launch == nil {
		launch = launchWorker
	}
	pid, err := launch(logPath, course, title, date)
	if err != nil {
		return nil, fmt.Errorf("launching worker: %w", err)
	}

	// The worker is already running when the marker lands; a toggle in
	// the gap sees no marker and would double-start. The window is a few
	// milliseconds and a human driving a hotkey cannot hit it.
	if err := s.Store.Write(pid, course, title, date); err != nil {
		return nil, fmt.Errorf("writing marker: %w", err)
	}

	return &ToggleResult{
		Started: true,
		PID:     pid,
		Course:  course,
		Title:   title,
		Date:    date,
		LogPath: logPath,
	}, nil
}

// launchWorker re-execs this binary as the hidden _record command,
// detached from the terminal, with both output streams appended to the
// worker log.
func launchWorker(logPath, course, title, date string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, err
	}
	logFile, err := log.OpenFile(logPath)
	if err != nil {
		return 0, err
	}
	defer logFile.Close()

	cmd := exec.Command(exe, "_record",
		"--course", course,
		"--title", title,
		"--date", date,
	)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = detachAttr()

	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return 0, err
	}
	return pid, nil
}
