package model

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value  string
		minute int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"10:30", 630},
		{"23:59", 1439},
		{" 12:00 ", 720},
	}
	for _, tc := range cases {
		minute, err := ParseClock(tc.value)
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error: %v", tc.value, err)
		}
		if minute != tc.minute {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.value, minute, tc.minute)
		}
	}
}

func TestParseClockRejectsInvalid(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "10", "10:30:00", "24:00", "10:60", "-1:30", "ab:cd", "10.30"} {
		if _, err := ParseClock(value); !errors.Is(err, ErrInvalidClock) {
			t.Fatalf("ParseClock(%q): want ErrInvalidClock, got %v", value, err)
		}
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minute int
		value  string
	}{
		{0, "00:00"},
		{630, "10:30"},
		{1439, "23:59"},
		{-5, "00:00"},
		{MinutesPerDay + 100, "23:59"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.minute); got != tc.value {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.minute, got, tc.value)
		}
	}
}

func TestTimeWindowContainsHalfOpen(t *testing.T) {
	t.Parallel()

	window := TimeWindow{Start: 630, End: 660}
	if window.Contains(629) {
		t.Fatalf("minute before start must not be contained")
	}
	if !window.Contains(630) {
		t.Fatalf("start minute must be contained")
	}
	if !window.Contains(659) {
		t.Fatalf("last minute before end must be contained")
	}
	if window.Contains(660) {
		t.Fatalf("end minute must not be contained")
	}
}

func TestDayBoundsProgress(t *testing.T) {
	t.Parallel()

	bounds := DefaultDayBounds()
	if got := bounds.Progress(400); got != 0 {
		t.Fatalf("progress before day start = %v, want 0", got)
	}
	if got := bounds.Progress(bounds.Start); got != 0 {
		t.Fatalf("progress at day start = %v, want 0", got)
	}
	if got := bounds.Progress(bounds.End); got != 100 {
		t.Fatalf("progress at day end = %v, want 100", got)
	}
	if got := bounds.Progress(1400); got != 100 {
		t.Fatalf("progress after day end = %v, want 100", got)
	}
	middle := bounds.Progress((bounds.Start + bounds.End) / 2)
	if middle < 49.9 || middle > 50.1 {
		t.Fatalf("progress at midpoint = %v, want 50", middle)
	}

	degenerate := DayBounds{Start: 600, End: 600}
	if got := degenerate.Progress(700); got != 0 {
		t.Fatalf("progress with empty bounds = %v, want 0", got)
	}
}
