package sim

import (
	"fmt"
	"sort"
)

// Section is one enrollable offering of a subject.
// Sections are built once by NewSection and treated as immutable values afterwards.
type Section struct {
	Subject        string    // grouping key; a roster holds at most one section per subject
	ClassName      string    // free-text label
	AvailableSlots int       // seats open in this enlistment round
	Demand         int       // students competing for those seats
	Rank           int       // lower is more preferred
	Days           DaySet    // days the section meets
	Start          ClockTime // inclusive
	End            ClockTime // exclusive

	probability float64
}

// NewSection builds a Section and derives its win probability from slots and demand.
func NewSection(subject, className string, availableSlots, demand, rank int, days DaySet, start, end ClockTime) Section {
	return Section{
		Subject:        subject,
		ClassName:      className,
		AvailableSlots: availableSlots,
		Demand:         demand,
		Rank:           rank,
		Days:           days,
		Start:          start,
		End:            end,
		probability:    WinProbability(availableSlots, demand),
	}
}

// WinProbability returns min(availableSlots/demand, 1). Zero demand means a sure win.
func WinProbability(availableSlots, demand int) float64 {
	if demand <= 0 {
		return 1.0
	}
	return min(float64(availableSlots)/float64(demand), 1.0)
}

// Probability is the chance of winning this section in a single trial.
func (s Section) Probability() float64 { return s.probability }

func (s Section) String() string {
	return fmt.Sprintf("%s/%s (rank %d, %s %s-%s)", s.Subject, s.ClassName, s.Rank, s.Days, s.Start, s.End)
}

// SortByRank stable-sorts sections by ascending rank in place.
// Equal ranks keep their input order.
func SortByRank(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Rank < sections[j].Rank
	})
}

// Subjects returns the distinct subjects in first-appearance order.
func Subjects(sections []Section) []string {
	seen := make(map[string]bool, len(sections))
	subjects := make([]string, 0, len(sections))
	for _, s := range sections {
		if !seen[s.Subject] {
			seen[s.Subject] = true
			subjects = append(subjects, s.Subject)
		}
	}
	return subjects
}
