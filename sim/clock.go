package sim

import (
	"errors"
	"fmt"
)

// ClockTime is a same-day wall-clock time in minutes since midnight, in [0, 1439].
// There is no timezone and no cross-midnight handling.
type ClockTime int

const (
	// MinutesPerDay bounds every valid ClockTime.
	MinutesPerDay = 24 * 60
)

var errClockFormat = errors.New("want 4 digits HHMM")

// ParseError reports a field value that could not be parsed.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot parse %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("cannot parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewClockTime builds a ClockTime from hour and minute without validation.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses a 24-hour "HHMM" string, e.g. "0730" or "1330".
// Exactly four ASCII digits are required.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != 4 {
		return 0, &ParseError{Value: s, Err: errClockFormat}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, &ParseError{Value: s, Err: errClockFormat}
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[2]-'0')*10 + int(s[3]-'0')
	if hour > 23 {
		return 0, &ParseError{Value: s, Err: fmt.Errorf("hour %d out of range", hour)}
	}
	if minute > 59 {
		return 0, &ParseError{Value: s, Err: fmt.Errorf("minute %d out of range", minute)}
	}
	return NewClockTime(hour, minute), nil
}

// Hour returns the hour component.
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c ClockTime) Minute() int { return int(c) % 60 }

// String renders the time back in HHMM form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d%02d", c.Hour(), c.Minute())
}

// Overlaps reports whether [start1, end1) and [start2, end2) share any minute.
// The comparison is strict, so back-to-back ranges do not overlap.
func Overlaps(start1, end1, start2, end2 ClockTime) bool {
	return max(start1, start2) < min(end1, end2)
}
