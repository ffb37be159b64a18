// Package maint renders the maintenance notice shown over the field.
package maint

import (
	"fmt"
	"time"
)

const DefaultDuration = 45 * time.Hour

const (
	Title    = "We'll be back soon!"
	Subtitle = "Our site is currently under maintenance. Please check again later."
)

// Countdown counts down to End. Once End has passed it reads zero.
type Countdown struct {
	End time.Time
}

func New(start time.Time, d time.Duration) Countdown {
	if d <= 0 {
		d = DefaultDuration
	}
	return Countdown{End: start.Add(d)}
}

func (c Countdown) Remaining(now time.Time) time.Duration {
	left := c.End.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Done reports whether the countdown has reached zero.
func (c Countdown) Done(now time.Time) bool { return c.Remaining(now) == 0 }

// Format renders whole hours, minutes and seconds, truncating fractions.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("⏳ %dh %dm %ds", h, m, s)
}

func (c Countdown) String(now time.Time) string { return Format(c.Remaining(now)) }

// Lines returns the notice as display lines, title first.
func (c Countdown) Lines(now time.Time) []string {
	return []string{Title, Subtitle, c.String(now)}
}
