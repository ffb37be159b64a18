package maint

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "⏳ 0h 0m 0s"},
		{-time.Minute, "⏳ 0h 0m 0s"},
		{DefaultDuration, "⏳ 45h 0m 0s"},
		{time.Hour + 2*time.Minute + 3*time.Second + 900*time.Millisecond, "⏳ 1h 2m 3s"},
		{59 * time.Second, "⏳ 0h 0m 59s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Format(tt.d); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestCountdownClampsAtZero(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(start, 0)

	if got := c.Remaining(start); got != DefaultDuration {
		t.Errorf("Remaining at start = %v, want %v", got, DefaultDuration)
	}
	if c.Done(start.Add(44 * time.Hour)) {
		t.Error("countdown done before the end")
	}

	late := start.Add(50 * time.Hour)
	if got := c.Remaining(late); got != 0 {
		t.Errorf("Remaining after end = %v, want 0", got)
	}
	if !c.Done(late) {
		t.Error("countdown not done after the end")
	}
	if got := c.String(late); got != "⏳ 0h 0m 0s" {
		t.Errorf("String after end = %q", got)
	}
}

func TestLines(t *testing.T) {
	start := time.Unix(0, 0)
	lines := New(start, 90*time.Second).Lines(start.Add(30 * time.Second))
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != Title {
		t.Errorf("first line = %q, want title", lines[0])
	}
	if lines[2] != "⏳ 0h 1m 0s" {
		t.Errorf("countdown line = %q", lines[2])
	}
}
