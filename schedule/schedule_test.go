package schedule

import (
	"testing"
	"time"
)

// 2026-08-31 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, 8, 31, hour, minute, 0, 0, time.Local)
}

var timetable = map[string][]Entry{
	"Monday": {
		{Time: "09:00-10:15", Course: "CS 301", TitlePrefix: "Data Structures"},
		{Time: "14:00-15:15", Course: "MATH 212", TitlePrefix: "Linear Algebra"},
	},
	"Wednesday": {
		{Time: "09:00-10:15", Course: "CS 301", TitlePrefix: "Data Structures"},
	},
}

func TestInferWithinSlot(t *testing.T) {
	course, prefix := Infer(timetable, "Lecture", monday(9, 30))
	if course != "CS 301" || prefix != "Data Structures" {
		t.Errorf("got (%q, %q)", course, prefix)
	}
}

func TestInferWithinTolerance(t *testing.T) {
	// 08:50 is before class but inside the 15-minute buffer.
	course, _ := Infer(timetable, "Lecture", monday(8, 50))
	if course != "CS 301" {
		t.Errorf("08:50 should match 09:00 slot, got %q", course)
	}
	// 10:25 is after class but inside the buffer.
	course, _ = Infer(timetable, "Lecture", monday(10, 25))
	if course != "CS 301" {
		t.Errorf("10:25 should match, got %q", course)
	}
}

func TestInferOutsideTolerance(t *testing.T) {
	course, prefix := Infer(timetable, "Lecture", monday(11, 0))
	if course != "Lecture" || prefix != "Lecture" {
		t.Errorf("11:00 should fall back, got (%q, %q)", course, prefix)
	}
}

func TestInferSecondSlot(t *testing.T) {
	course, _ := Infer(timetable, "Lecture", monday(14, 30))
	if course != "MATH 212" {
		t.Errorf("got %q", course)
	}
}

func TestInferWrongDay(t *testing.T) {
	// 2026-09-01 is a Tuesday: no slots at all.
	tuesday := time.Date(2026, 9, 1, 9, 30, 0, 0, time.Local)
	course, _ := Infer(timetable, "Default", tuesday)
	if course != "Default" {
		t.Errorf("got %q", course)
	}
}

func TestInferMalformedEntriesSkipped(t *testing.T) {
	bad := map[string][]Entry{
		"Monday": {
			{Time: "not-a-range", Course: "X"},
			{Time: "9am-10am", Course: "Y"},
			{Time: "09:00-10:15", Course: "CS 301"},
		},
	}
	course, _ := Infer(bad, "Lecture", monday(9, 30))
	if course != "CS 301" {
		t.Errorf("malformed entries should be skipped, got %q", course)
	}
}

func TestInferEmptyDefault(t *testing.T) {
	course, prefix := Infer(nil, "", monday(12, 0))
	if course != "Lecture" || prefix != "Lecture" {
		t.Errorf("got (%q, %q)", course, prefix)
	}
}

func TestInferSingleDigitHour(t *testing.T) {
	tight := map[string][]Entry{
		"Monday": {
			{Time: "9:00-10:15", Course: "CS 301", TitlePrefix: "Data Structures"},
		},
	}
	course, _ := Infer(tight, "Lecture", monday(9, 30))
	if course != "CS 301" {
		t.Errorf("9:00 should parse like 09:00, got %q", course)
	}
	// Out-of-range components are still malformed.
	bad := map[string][]Entry{
		"Monday": {{Time: "25:00-26:00", Course: "X"}},
	}
	if course, _ := Infer(bad, "Lecture", monday(9, 30)); course != "Lecture" {
		t.Errorf("invalid hours should be skipped, got %q", course)
	}
}
