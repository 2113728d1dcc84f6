package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/enlist-sim/enlist-sim/sim"
	"github.com/enlist-sim/enlist-sim/sim/dataset"
	"github.com/enlist-sim/enlist-sim/sim/trace"
)

// reportNotes are printed with every report.
var reportNotes = []string{
	"The overall roster probability counts a trial as a success when every desired subject ends up with exactly one section (its highest-ranked non-conflicting win).",
	"Time conflicts and same-subject conflicts are resolved by keeping the higher-ranked section.",
	"Unit limits and PE class limits are not considered. Make sure your desired classes respect them.",
	"The schedule is not optimized (e.g. to minimize breaks). Only the probability of acquisition is estimated.",
	"Accuracy depends on the Available Slots and Demand data being accurate for your enlistment period.",
	"Demand changes during enlistment, so probabilities are a snapshot at the time the data was collected.",
	"Days are single letters: M=Monday, T=Tuesday, W=Wednesday, H=Thursday, F=Friday, S=Saturday, U=Sunday. Input is upper-cased before parsing.",
	"Start Time and End Time use HHMM (e.g. 0700 for 07:00, 1330 for 13:30).",
}

// SubjectReport is the per-subject section of a Report.
type SubjectReport struct {
	Subject     string   `json:"subject"`
	Sections    int      `json:"sections"`
	Probability float64  `json:"probability_percent"`
	Tier        sim.Tier `json:"tier"`
	Advice      string   `json:"advice"`
	Message     string   `json:"message"`
	Missed      *int     `json:"missed_trials,omitempty"`
}

// MissedSubject is a subject and the number of failed trials it was missing from.
type MissedSubject struct {
	Subject string `json:"subject"`
	Trials  int    `json:"trials"`
}

// Report is everything printed at the end of a run.
type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	InputPath   string          `json:"input_path"`
	Trials      int             `json:"trials"`
	Workers     int             `json:"workers"`
	Seed        int64           `json:"seed"`
	Sections    int             `json:"sections"`
	Rows        int             `json:"rows"`
	SkippedRows int             `json:"skipped_rows"`
	Successes   int             `json:"successes"`
	Probability float64         `json:"probability_percent"`
	StdErr      float64         `json:"std_err_percent"`
	Subjects    []SubjectReport `json:"subjects"`
	TopMissed   []MissedSubject `json:"top_missed,omitempty"`
	Drops       map[string]int  `json:"drops,omitempty"`
	Notes       []string        `json:"notes"`
}

// newReport assembles a Report from the loaded data, the simulation result
// and the per-subject recommendations.
func newReport(opts RunOptions, ds *dataset.Dataset, res *sim.SimResult, recs sim.Recommendations) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		InputPath:   opts.InputPath,
		Trials:      res.Trials,
		Workers:     opts.Sim.Workers,
		Seed:        opts.Sim.Seed,
		Sections:    len(ds.Sections),
		Rows:        ds.Rows,
		SkippedRows: ds.Skipped(),
		Successes:   res.Successes,
		Probability: res.Percent,
		StdErr:      res.StdErrPercent,
		Notes:       reportNotes,
	}

	var summary *trace.TraceSummary
	if res.Trace != nil {
		summary = trace.Summarize(res.Trace)
		if len(summary.DropDistribution) > 0 {
			r.Drops = summary.DropDistribution
		}
		for _, sc := range summary.TopMissed(opts.TopMissed) {
			r.TopMissed = append(r.TopMissed, MissedSubject{Subject: sc.Subject, Trials: sc.Count})
		}
	}

	for _, rec := range recs {
		sr := SubjectReport{
			Subject:     rec.Subject,
			Sections:    rec.Sections,
			Probability: 100 * rec.ProbAtLeastOne,
			Tier:        rec.Tier,
			Advice:      string(rec.Advice),
			Message:     adviceMessage(rec),
		}
		if summary != nil {
			missed := summary.MissDistribution[rec.Subject]
			sr.Missed = &missed
		}
		r.Subjects = append(r.Subjects, sr)
	}
	return r
}

// adviceMessage renders the recommendation as a sentence for the user.
func adviceMessage(rec sim.Recommendation) string {
	switch rec.Advice {
	case sim.AdviceReallocate:
		return fmt.Sprintf("HIGH PROBABILITY. You have a very good chance of getting a class for '%s'. "+
			"Consider whether you need %d applications for this subject; removing lower-ranked options could free a slot for another subject.",
			rec.Subject, rec.Sections)
	case sim.AdviceNone:
		return fmt.Sprintf("HIGH PROBABILITY. You have a very good chance of getting this class. No action required for '%s'.", rec.Subject)
	case sim.AdviceOptionalAlternative:
		return fmt.Sprintf("MEDIUM PROBABILITY. Your chances for '%s' are moderate. No action required, "+
			"but adding another alternative for this subject could slightly improve your odds if you have available slots.", rec.Subject)
	default:
		return fmt.Sprintf("LOW PROBABILITY. Your chances for '%s' are low. Strongly consider adding more alternative classes "+
			"for '%s' if you have available slots, or explore other subjects.", rec.Subject, rec.Subject)
	}
}

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	if format == OutputJSON {
		return r.WriteJSON(w)
	}
	r.WriteText(w)
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteText writes the human-readable report.
func (r *Report) WriteText(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Ran %d simulations over %d desired classes", r.Trials, r.Sections)
	if r.SkippedRows > 0 {
		_, _ = fmt.Fprintf(w, " (%d of %d rows skipped)", r.SkippedRows, r.Rows)
	}
	_, _ = fmt.Fprintln(w, ".")

	_, _ = fmt.Fprintln(w, "\n=== Subject-wise Recommendations ===")
	for _, s := range r.Subjects {
		_, _ = fmt.Fprintf(w, "\n  Subject: %s (%d section(s))\n", s.Subject, s.Sections)
		_, _ = fmt.Fprintf(w, "    Probability of getting at least one class: %.2f%%\n", s.Probability)
		_, _ = fmt.Fprintf(w, "    Recommendation: %s\n", s.Message)
	}

	_, _ = fmt.Fprintln(w, "\n=== Overall Roster Probability ===")
	_, _ = fmt.Fprintf(w, "Estimated probability of a complete, non-conflicting roster: %.2f%% (± %.2f%%)\n", r.Probability, r.StdErr)

	printMissedSubjects(w, r.TopMissed)
	printDrops(w, r.Drops)

	_, _ = fmt.Fprintln(w, "\n=== Important Notes ===")
	for i, n := range r.Notes {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, n)
	}
}

// printMissedSubjects prints the subjects that most often caused a failed trial.
// Prints nothing when the trace was off or every trial succeeded.
func printMissedSubjects(w io.Writer, missed []MissedSubject) {
	if len(missed) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\n=== Most Frequently Missed Subjects ===")
	for _, m := range missed {
		_, _ = fmt.Fprintf(w, "  %-12s missing in %d trial(s)\n", m.Subject, m.Trials)
	}
}

func printDrops(w io.Writer, drops map[string]int) {
	if len(drops) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\n=== Won Sections Dropped by Conflict ===")
	for _, reason := range []sim.ConflictReason{sim.SameSubject, sim.TimeOverlap} {
		if n, ok := drops[string(reason)]; ok {
			_, _ = fmt.Fprintf(w, "  %-14s %d\n", reason, n)
		}
	}
}
