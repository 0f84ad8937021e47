package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60

	// DateLayout is the layout of the date-of-flight column.
	DateLayout = "2006-01-02"
)

var ErrInvalidTime = errors.New("invalid time input")

// BlockMinutes returns the minutes between off-blocks and on-blocks, both
// given as minutes after midnight UTC. An on-blocks time at or before the
// off-blocks time is taken to be on the following day.
func BlockMinutes(tofb, tonb int) int {
	return ((tonb-tofb)%minutesPerDay + minutesPerDay) % minutesPerDay
}

// MinutesToString formats a number of minutes as "hh:mm".
func MinutesToString(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// StringToMinutes parses "h:mm" or "hh:mm" into minutes. Hours may exceed 23
// so that durations can be parsed as well as times of day.
func StringToMinutes(s string) (int, error) {
	hours, mins, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mins) != 2 || hours == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// FormatTimeInput normalizes user time-of-day input into "hh:mm".
// Accepted forms: "930", "0930", "9:30" and "09:30".
func FormatTimeInput(input string) (string, error) {
	input = strings.TrimSpace(input)

	var hh, mm string
	switch hasSep := strings.Contains(input, ":"); {
	case !hasSep && len(input) == 4:
		hh, mm = input[:2], input[2:]
	case !hasSep && len(input) == 3:
		hh, mm = input[:1], input[1:]
	case hasSep && (len(input) == 4 || len(input) == 5):
		var ok bool
		hh, mm, ok = strings.Cut(input, ":")
		if !ok || len(mm) != 2 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTime, input)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, input)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, input)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, input)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// TimeOfDayMinutes parses any input accepted by FormatTimeInput into minutes after midnight.
func TimeOfDayMinutes(input string) (int, error) {
	formatted, err := FormatTimeInput(input)
	if err != nil {
		return 0, err
	}
	return StringToMinutes(formatted)
}

// BlockOffUTC combines a date ("2006-01-02") and minutes after midnight into a UTC instant.
func BlockOffUTC(date string, minutesAfterMidnight int) (time.Time, error) {
	if minutesAfterMidnight < 0 || minutesAfterMidnight >= minutesPerDay {
		return time.Time{}, fmt.Errorf("%w: %d minutes after midnight", ErrInvalidTime, minutesAfterMidnight)
	}
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidTime, date, err)
	}
	return day.Add(time.Duration(minutesAfterMidnight) * time.Minute), nil
}
