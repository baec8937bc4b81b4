// Package state tracks whether a recording worker is active via a durable
// marker file. The marker is the sole source of truth for "is a recording
// running", but presence alone is not liveness: readers probe the recorded
// pid and reclaim stale markers left behind by a crashed worker.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	markerName = "recording.json"
	logName    = "record.log"
)

type Record struct {
	PID       int       `json:"pid"`
	Course    string    `json:"course"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"start_time"`
}

type Store struct {
	dir string

	// alive overrides the pid probe in tests; nil means the real one.
	alive func(pid int) bool
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the per-user state directory, ~/.lecture2obsidian.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lecture2obsidian"), nil
}

func (s *Store) Dir() string { return s.dir }

// LogPath is the append-only log the detached worker writes to. One file
// per machine, not per run.
func (s *Store) LogPath() string { return filepath.Join(s.dir, logName) }

func (s *Store) markerPath() string { return filepath.Join(s.dir, markerName) }

// Write creates the marker, overwriting any existing one, stamping the
// start time as now. The write goes to a temp file in the same directory
// and is renamed into place so a reader never sees a partial record.
func (s *Store) Write(pid int, course, title, date string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	rec := Record{
		PID:       pid,
		Course:    course,
		Title:     title,
		Date:      date,
		StartTime: time.Now(),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, markerName+".tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.markerPath())
}

// Read returns the marker record. A missing or corrupt marker reads as
// absent; garbage state must never fail a status check.
func (s *Store) Read() (*Record, bool) {
	data, err := os.ReadFile(s.markerPath())
	if err != nil {
		return nil, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// Clear removes the marker. Removing an absent marker is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.markerPath())
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Active returns the marker record when its worker is actually running.
// A marker whose pid is gone is cleared on the spot, so a crashed worker
// heals on the next status check. Callers get the record from the same
// read that passed the liveness probe; a second Read could race the
// worker clearing the marker.
func (s *Store) Active() (*Record, bool) {
	rec, ok := s.Read()
	if !ok {
		return nil, false
	}
	if rec.PID <= 0 {
		s.Clear()
		return nil, false
	}
	probe := s.alive
	if probe == nil {
		probe = processAlive
	}
	if !probe(rec.PID) {
		s.Clear()
		return nil, false
	}
	return rec, true
}

// IsActive reports whether the recorded worker is actually running.
func (s *Store) IsActive() bool {
	_, ok := s.Active()
	return ok
}
