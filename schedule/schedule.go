// Package schedule infers which course is being recorded from a weekly
// timetable, so toggling a recording during class needs no flags.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Entry is one timetable slot for a weekday. Time is "HH:MM-HH:MM" in
// local time.
type Entry struct {
	Time        string `toml:"time"`
	Course      string `toml:"course"`
	TitlePrefix string `toml:"title_prefix"`
}

// Tolerance widens each slot on both sides, so a recording started a few
// minutes before or after class still matches.
const Tolerance = 15 * time.Minute

// Infer returns the (course, titlePrefix) whose slot contains now, within
// tolerance. Malformed entries are skipped. With no match it falls back to
// (defaultCourse, "Lecture").
func Infer(timetable map[string][]Entry, defaultCourse string, now time.Time) (string, string) {
	if defaultCourse == "" {
		defaultCourse = "Lecture"
	}

	for _, entry := range timetable[now.Weekday().String()] {
		start, end, ok := parseRange(entry.Time, now)
		if !ok {
			continue
		}
		windowStart := start.Add(-Tolerance)
		windowEnd := end.Add(Tolerance)
		if !now.Before(windowStart) && !now.After(windowEnd) {
			course := entry.Course
			if course == "" {
				course = defaultCourse
			}
			prefix := entry.TitlePrefix
			if prefix == "" {
				prefix = "Lecture"
			}
			return course, prefix
		}
	}

	return defaultCourse, "Lecture"
}

// parseRange resolves "HH:MM-HH:MM" against now's date. Single-digit
// hours ("9:00") are accepted.
func parseRange(r string, now time.Time) (start, end time.Time, ok bool) {
	parts := strings.SplitN(r, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	startH, startM, ok1 := parseClock(parts[0])
	endH, endM, ok2 := parseClock(parts[1])
	if !ok1 || !ok2 {
		return time.Time{}, time.Time{}, false
	}
	year, month, day := now.Date()
	start = time.Date(year, month, day, startH, startM, 0, 0, now.Location())
	end = time.Date(year, month, day, endH, endM, 0, 0, now.Location())
	return start, end, true
}

func parseClock(s string) (hour, minute int, ok bool) {
	hm := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(hm) != 2 {
		return 0, 0, false
	}
	hour, err1 := strconv.Atoi(hm[0])
	minute, err2 := strconv.Atoi(hm[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
