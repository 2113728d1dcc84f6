package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalTrials != 0 || summary.SuccessCount != 0 || summary.FailureCount != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.MissDistribution == nil || summary.DropDistribution == nil {
		t.Error("expected non-nil distributions")
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTrials})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalTrials != 0 {
		t.Errorf("expected 0 trials, got %d", summary.TotalTrials)
	}
	if len(summary.MissDistribution) != 0 || len(summary.DropDistribution) != 0 {
		t.Error("expected empty distributions")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed outcomes
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTrials})
	st.RecordTrial(TrialRecord{Trial: 0, Success: true})
	st.RecordTrial(TrialRecord{Trial: 1, Missing: []string{"MATH21"},
		Drops: []DropRecord{{Subject: "MATH21", Reason: "time-overlap"}}})
	st.RecordTrial(TrialRecord{Trial: 2, Missing: []string{"MATH21", "CS11"},
		Drops: []DropRecord{{Subject: "CS11", Reason: "same-subject"}, {Subject: "MATH21", Reason: "time-overlap"}}})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalTrials != 3 {
		t.Errorf("expected 3 trials, got %d", summary.TotalTrials)
	}
	if summary.SuccessCount != 1 || summary.FailureCount != 2 {
		t.Errorf("expected 1 success and 2 failures, got %d/%d", summary.SuccessCount, summary.FailureCount)
	}
	if summary.MissDistribution["MATH21"] != 2 || summary.MissDistribution["CS11"] != 1 {
		t.Errorf("unexpected miss distribution %v", summary.MissDistribution)
	}
	if summary.DropDistribution["time-overlap"] != 2 || summary.DropDistribution["same-subject"] != 1 {
		t.Errorf("unexpected drop distribution %v", summary.DropDistribution)
	}
}

func TestTraceSummary_TopMissed_OrdersByCountThenSubject(t *testing.T) {
	// GIVEN a summary with ties
	summary := &TraceSummary{MissDistribution: map[string]int{"B": 3, "A": 3, "C": 7, "D": 1}}

	// WHEN the top 3 are requested
	top := summary.TopMissed(3)

	// THEN C comes first and the tie is broken alphabetically
	want := []SubjectCount{{"C", 7}, {"A", 3}, {"B", 3}}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, top[i], want[i])
		}
	}

	if all := summary.TopMissed(0); len(all) != 4 {
		t.Errorf("TopMissed(0) returned %d entries, want 4", len(all))
	}
}
