package csvfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the on-disk calendar date format.
const dateLayout = "2006-01-02"

// FormatDate formats a time.Time as a calendar date for storage.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a stored calendar date. Timestamps written by
// other tools (date plus time of day) are accepted and truncated.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseOptionalDate parses a date that may be absent. Empty values
// and pandas-style NaN markers decode to nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none") {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatOptionalDate formats a date pointer, writing an empty field
// for nil.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// FormatBool writes booleans lowercase.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// ParseBool is case-insensitive so files written by other tools
// ("True"/"False") load unchanged. An empty field is false.
func ParseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}

// FormatFloat writes a float with minimal digits.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseFloat parses a stored float. Empty and NaN fields decode to
// zero, matching how missing rates and limits are treated.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// FormatWorkDays joins weekday names with commas for the settings file.
func FormatWorkDays(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

// ParseWorkDays parses a comma-joined list of weekday names.
// Unknown names are an error; the caller decides whether to fall
// back to defaults.
func ParseWorkDays(s string) ([]time.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty work day list")
	}
	byName := map[string]time.Weekday{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		byName[strings.ToLower(d.String())] = d
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		d, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("empty work day list")
	}
	return days, nil
}
