package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/enlist-sim/enlist-sim/sim"
)

// SectionRef identifies a section in a conflict report.
type SectionRef struct {
	Subject   string `json:"subject"`
	ClassName string `json:"class_name"`
	Rank      int    `json:"rank"`
	Schedule  string `json:"schedule"`
}

func refOf(s sim.Section) SectionRef {
	return SectionRef{
		Subject:   s.Subject,
		ClassName: s.ClassName,
		Rank:      s.Rank,
		Schedule:  fmt.Sprintf("%s %s-%s", s.Days, s.Start, s.End),
	}
}

// ConflictPair is one conflicting pair of sections.
type ConflictPair struct {
	A      SectionRef `json:"a"`
	B      SectionRef `json:"b"`
	Reason string     `json:"reason"`
}

// DroppedSection is a section rejected when every section is assumed won.
type DroppedSection struct {
	Section   SectionRef `json:"section"`
	Reason    string     `json:"reason"`
	BlockedBy string     `json:"blocked_by"`
}

// ConflictReport shows the static conflict structure of the desired sections:
// every conflicting pair, and the roster kept if every section were won.
type ConflictReport struct {
	Sections  int              `json:"sections"`
	Conflicts []ConflictPair   `json:"conflicts"`
	BestCase  []SectionRef     `json:"best_case_roster"`
	Dropped   []DroppedSection `json:"best_case_dropped"`
}

func newConflictReport(sections []sim.Section) *ConflictReport {
	r := &ConflictReport{
		Sections:  len(sections),
		Conflicts: []ConflictPair{},
		BestCase:  []SectionRef{},
		Dropped:   []DroppedSection{},
	}
	for _, c := range sim.FindConflicts(sections) {
		r.Conflicts = append(r.Conflicts, ConflictPair{A: refOf(c.A), B: refOf(c.B), Reason: string(c.Reason)})
	}
	res := sim.ResolveDetailed(sections)
	for _, s := range res.Roster {
		r.BestCase = append(r.BestCase, refOf(s))
	}
	for _, d := range res.Dropped {
		r.Dropped = append(r.Dropped, DroppedSection{
			Section:   refOf(d.Section),
			Reason:    string(d.Reason),
			BlockedBy: d.Blocker.ClassName,
		})
	}
	return r
}

// Write renders the report in the given format.
func (r *ConflictReport) Write(w io.Writer, format string) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding conflict report: %w", err)
		}
		return nil
	}

	_, _ = fmt.Fprintf(w, "=== Conflicts among %d desired classes ===\n", r.Sections)
	if len(r.Conflicts) == 0 {
		_, _ = fmt.Fprintln(w, "  none")
	}
	for _, c := range r.Conflicts {
		_, _ = fmt.Fprintf(w, "  %s/%s (%s) x %s/%s (%s): %s\n",
			c.A.Subject, c.A.ClassName, c.A.Schedule, c.B.Subject, c.B.ClassName, c.B.Schedule, c.Reason)
	}

	_, _ = fmt.Fprintln(w, "\n=== Roster if every class were won ===")
	for _, s := range r.BestCase {
		_, _ = fmt.Fprintf(w, "  rank %-3d %s/%s %s\n", s.Rank, s.Subject, s.ClassName, s.Schedule)
	}
	for _, d := range r.Dropped {
		_, _ = fmt.Fprintf(w, "  dropped  %s/%s: %s with %s\n", d.Section.Subject, d.Section.ClassName, d.Reason, d.BlockedBy)
	}
	return nil
}
