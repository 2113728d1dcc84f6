package sim

// Drop records a won section that the resolver turned away.
type Drop struct {
	Section Section
	Reason  ConflictReason
	Blocker Section // the already-accepted section it collided with
}

// Resolution is the detailed outcome of resolving one set of won sections.
type Resolution struct {
	Roster  []Section
	Dropped []Drop
}

// Resolve reduces a set of won sections to a consistent roster.
//
// Candidates are taken in ascending rank (stable, so equal ranks keep input
// order). A candidate is rejected if its subject is already held or if, on any
// day it meets, it overlaps an already accepted interval. The roster is
// returned in acceptance order. The input slice is not modified.
func Resolve(selected []Section) []Section {
	return ResolveDetailed(selected).Roster
}

// ResolveDetailed is Resolve plus the list of rejected sections and their blockers.
func ResolveDetailed(selected []Section) Resolution {
	sorted := make([]Section, len(selected))
	copy(sorted, selected)
	SortByRank(sorted)

	var r resolver
	var dropped []Drop
	roster := r.run(sorted, &dropped)
	out := make([]Section, len(roster))
	copy(out, roster)
	return Resolution{Roster: out, Dropped: dropped}
}

// dayInterval is one (day, start, end) triple held by an accepted section.
type dayInterval struct {
	day        Day
	start, end ClockTime
	owner      int // index into resolver.roster
}

// resolver holds scratch state so a worker can resolve many trials without
// reallocating. Not safe for concurrent use.
type resolver struct {
	subjects  map[string]int // subject -> index into roster
	intervals []dayInterval
	roster    []Section
}

func (r *resolver) reset() {
	if r.subjects == nil {
		r.subjects = make(map[string]int)
	} else {
		clear(r.subjects)
	}
	r.intervals = r.intervals[:0]
	r.roster = r.roster[:0]
}

// run resolves candidates that are already in rank order. The returned slice
// aliases r's buffer and is only valid until the next call. Rejections are
// appended to dropped when it is non-nil.
func (r *resolver) run(sorted []Section, dropped *[]Drop) []Section {
	r.reset()
	for _, c := range sorted {
		if owner, held := r.subjects[c.Subject]; held {
			if dropped != nil {
				*dropped = append(*dropped, Drop{Section: c, Reason: SameSubject, Blocker: r.roster[owner]})
			}
			continue
		}

		owner := -1
		for _, iv := range r.intervals {
			if c.Days.Has(iv.day) && Overlaps(c.Start, c.End, iv.start, iv.end) {
				owner = iv.owner
				break
			}
		}
		if owner >= 0 {
			if dropped != nil {
				*dropped = append(*dropped, Drop{Section: c, Reason: TimeOverlap, Blocker: r.roster[owner]})
			}
			continue
		}

		idx := len(r.roster)
		r.roster = append(r.roster, c)
		r.subjects[c.Subject] = idx
		for d := Monday; d <= Sunday; d++ {
			if c.Days.Has(d) {
				r.intervals = append(r.intervals, dayInterval{day: d, start: c.Start, end: c.End, owner: idx})
			}
		}
	}
	return r.roster
}
