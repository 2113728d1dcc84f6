package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/enlist-sim/enlist-sim/sim/internal/testutil"
)

// testSection builds a section from HHMM strings and a day string.
// Panics on malformed input; test data is hand-written.
func testSection(subject, class string, slots, demand, rank int, days, start, end string) Section {
	ds, unknown := ParseDays(days)
	if len(unknown) > 0 {
		panic(fmt.Sprintf("bad days %q", days))
	}
	s, err := ParseClockTime(start)
	if err != nil {
		panic(err)
	}
	e, err := ParseClockTime(end)
	if err != nil {
		panic(err)
	}
	return NewSection(subject, class, slots, demand, rank, ds, s, e)
}

// sureSection is a section with probability 1.
func sureSection(subject, class string, rank int, days, start, end string) Section {
	return testSection(subject, class, 1, 0, rank, days, start, end)
}

// goldenSections converts golden rows into sections.
func goldenSections(t *testing.T, rows []testutil.GoldenSection) []Section {
	t.Helper()
	out := make([]Section, 0, len(rows))
	for _, r := range rows {
		out = append(out, testSection(r.Subject, r.ClassName, r.AvailableSlots, r.Demand, r.Rank, r.Days, r.Start, r.End))
	}
	return out
}

// randomSections generates n sections over a small pool of subjects, days and
// half-hour aligned times so that collisions are frequent.
func randomSections(rng *rand.Rand, n int) []Section {
	subjects := []string{"CS11", "CS12", "MATH21", "PHYS71", "ENG10", "KAS1"}
	out := make([]Section, n)
	for i := range out {
		var days DaySet
		for days.Empty() {
			for d := Monday; d <= Sunday; d++ {
				if rng.Intn(4) == 0 {
					days = days.With(d)
				}
			}
		}
		start := ClockTime(7*60 + 30*rng.Intn(20))
		end := start + ClockTime(30*(1+rng.Intn(6)))
		out[i] = NewSection(
			subjects[rng.Intn(len(subjects))],
			fmt.Sprintf("S%d", i),
			rng.Intn(50), rng.Intn(80),
			rng.Intn(n+1),
			days, start, end,
		)
	}
	return out
}
