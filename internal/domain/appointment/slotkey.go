package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot keys are "DD_MM_YYYY" with a 24-hour "HH:MM" time. Keys are compared as
// exact strings, so parsing always re-formats to the canonical zero-padded form.

func FormatSlotDate(day, month, year int) string {
	return fmt.Sprintf("%02d_%02d_%04d", day, month, year)
}

// ParseSlotDate accepts padded or unpadded components and returns the canonical
// key plus the calendar date at midnight in loc.
func ParseSlotDate(raw string, loc *time.Location) (string, time.Time, error) {
	parts := strings.Split(raw, "_")
	if len(parts) != 3 {
		return "", time.Time{}, fmt.Errorf("invalid slot date %q", raw)
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", time.Time{}, fmt.Errorf("invalid slot date %q", raw)
	}

	if month < 1 || month > 12 || day < 1 || year < 2000 || year > 2100 {
		return "", time.Time{}, fmt.Errorf("invalid slot date %q", raw)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes overflow (e.g. 31_02 becomes March); reject it.
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return "", time.Time{}, fmt.Errorf("invalid slot date %q", raw)
	}

	return FormatSlotDate(day, month, year), date, nil
}

// ParseSlotTime validates "HH:MM" and returns hour and minute.
func ParseSlotTime(raw string) (int, int, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot time %q", raw)
	}
	return t.Hour(), t.Minute(), nil
}

// SlotInstant combines a parsed slot date and time into a point on the clock.
func SlotInstant(date time.Time, slotTime string) (time.Time, error) {
	hour, minute, err := ParseSlotTime(slotTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		hour, minute, 0, 0,
		date.Location(),
	), nil
}
