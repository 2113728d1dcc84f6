package trace

import "sort"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrials      int
	SuccessCount     int
	FailureCount     int
	MissDistribution map[string]int // subject → trials in which it was missing
	DropDistribution map[string]int // reason → rejected sections
}

// SubjectCount pairs a subject with a count.
type SubjectCount struct {
	Subject string
	Count   int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		MissDistribution: make(map[string]int),
		DropDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTrials = len(st.Trials)
	for _, tr := range st.Trials {
		if tr.Success {
			summary.SuccessCount++
		} else {
			summary.FailureCount++
		}
		for _, subject := range tr.Missing {
			summary.MissDistribution[subject]++
		}
		for _, d := range tr.Drops {
			summary.DropDistribution[d.Reason]++
		}
	}

	return summary
}

// TopMissed returns up to k subjects ordered by miss count, most missed first.
// Ties are ordered by subject code. k <= 0 returns all.
func (s *TraceSummary) TopMissed(k int) []SubjectCount {
	out := make([]SubjectCount, 0, len(s.MissDistribution))
	for subject, n := range s.MissDistribution {
		out = append(out, SubjectCount{Subject: subject, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Subject < out[j].Subject
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
