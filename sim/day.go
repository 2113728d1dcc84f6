package sim

import "strings"

// Day is a single weekday a section meets on.
type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// daySymbols maps each Day to its one-letter symbol. Thursday is H and Sunday is U.
var daySymbols = [...]byte{'M', 'T', 'W', 'H', 'F', 'S', 'U'}

// Symbol returns the one-letter symbol for d.
func (d Day) Symbol() byte { return daySymbols[d] }

func (d Day) String() string { return string(daySymbols[d]) }

// DayFromSymbol maps an upper-case day symbol to a Day.
func DayFromSymbol(r rune) (Day, bool) {
	for i, s := range daySymbols {
		if rune(s) == r {
			return Day(i), true
		}
	}
	return 0, false
}

// DaySet is a bitmask of Days.
type DaySet uint8

// NewDaySet builds a DaySet from the given days.
func NewDaySet(days ...Day) DaySet {
	var s DaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// With returns s plus d.
func (s DaySet) With(d Day) DaySet { return s | 1<<d }

// Has reports whether d is in s.
func (s DaySet) Has(d Day) bool { return s&(1<<d) != 0 }

// Intersects reports whether s and o share at least one day.
func (s DaySet) Intersects(o DaySet) bool { return s&o != 0 }

// Empty reports whether no day is set.
func (s DaySet) Empty() bool { return s == 0 }

// Days lists the members of s in week order.
func (s DaySet) Days() []Day {
	days := make([]Day, 0, len(daySymbols))
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s DaySet) String() string {
	var b strings.Builder
	for _, d := range s.Days() {
		b.WriteByte(d.Symbol())
	}
	return b.String()
}

// ParseDays reads a concatenated day string such as "MWF" or "th".
// Input is upper-cased first. Characters that are not day symbols are
// skipped and returned in unknown so the caller can warn about them.
func ParseDays(s string) (days DaySet, unknown []rune) {
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if d, ok := DayFromSymbol(r); ok {
			days = days.With(d)
			continue
		}
		unknown = append(unknown, r)
	}
	return days, unknown
}
