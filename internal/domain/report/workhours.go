package report

import (
	"fmt"
	"time"
)

// WorkingHours is a daily window expressed in minutes from midnight.
// Windows that cross midnight (open > close) wrap to the next day.
type WorkingHours struct {
	OpenMinute  int
	CloseMinute int
}

// ParseWorkingHours parses "HH:MM" open and close times.
func ParseWorkingHours(open, close string) (WorkingHours, error) {
	o, err := parseClock(open)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("invalid open time %q: %w", open, err)
	}
	c, err := parseClock(close)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("invalid close time %q: %w", close, err)
	}
	return WorkingHours{OpenMinute: o, CloseMinute: c}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Contains reports whether t falls inside the window. The open boundary is
// inclusive and the close boundary exclusive.
func (w WorkingHours) Contains(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	if w.OpenMinute == w.CloseMinute {
		// Degenerate window covers the whole day.
		return true
	}
	if w.OpenMinute < w.CloseMinute {
		return minute >= w.OpenMinute && minute < w.CloseMinute
	}
	// Overnight window, e.g. 20:00-04:00.
	return minute >= w.OpenMinute || minute < w.CloseMinute
}
