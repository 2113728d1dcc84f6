package sim

// ConflictReason names why two sections cannot both be held.
type ConflictReason string

const (
	// SameSubject marks two alternatives for the same subject.
	SameSubject ConflictReason = "same-subject"
	// TimeOverlap marks sections that share a day and overlap in time.
	TimeOverlap ConflictReason = "time-overlap"
)

// Conflict is one conflicting pair found by FindConflicts. A precedes B in input order.
type Conflict struct {
	A, B   Section
	Reason ConflictReason
}

// Conflicts returns the verdict for a single pair.
// Same-subject wins over time overlap, so a pair is reported once.
func Conflicts(a, b Section) (ConflictReason, bool) {
	if a.Subject == b.Subject {
		return SameSubject, true
	}
	if a.Days.Intersects(b.Days) && Overlaps(a.Start, a.End, b.Start, b.End) {
		return TimeOverlap, true
	}
	return "", false
}

// FindConflicts examines every unordered pair once and returns all conflicts.
// It is a diagnostic view; Resolve carries its own per-day interval check
// that must reach the same verdicts.
func FindConflicts(sections []Section) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(sections); i++ {
		for j := i + 1; j < len(sections); j++ {
			if reason, ok := Conflicts(sections[i], sections[j]); ok {
				conflicts = append(conflicts, Conflict{A: sections[i], B: sections[j], Reason: reason})
			}
		}
	}
	return conflicts
}
