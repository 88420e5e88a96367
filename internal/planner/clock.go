package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// parseClock converts "HH:MM" to minutes after midnight. Hours past 23 are
// accepted so that late stops keep counting forward.
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q: bad minute", s)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// clockHour returns the hour component of a formatted clock, or -1
func clockHour(s string) int {
	minutes, err := parseClock(s)
	if err != nil {
		return -1
	}
	return minutes / 60
}
