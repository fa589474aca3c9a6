package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical wire/storage format for reservation dates.
const DateLayout = "2006-01-02"

// MinutesFromClock converts a "HH:MM" clock string to minutes from midnight.
func MinutesFromClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", clock)
	}
	return hour*60 + minute, nil
}

// ClockFromMinutes converts minutes from midnight to a "HH:MM" clock string.
func ClockFromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a canonical date string into a time.Time at midnight local.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}

// FormatDate renders a time.Time in the canonical date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SeatingTime combines a canonical date and "HH:MM" clock into one time.Time.
func SeatingTime(date, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := MinutesFromClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
