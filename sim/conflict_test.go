package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflicts_PairVerdicts(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Section
		wantReason ConflictReason
		wantOK     bool
	}{
		{
			name:       "same subject short-circuits even without overlap",
			a:          sureSection("CS11", "A", 1, "M", "0700", "0800"),
			b:          sureSection("CS11", "B", 2, "T", "1300", "1400"),
			wantReason: SameSubject, wantOK: true,
		},
		{
			name:       "same subject that also overlaps reports same subject",
			a:          sureSection("CS11", "A", 1, "M", "0700", "0800"),
			b:          sureSection("CS11", "B", 2, "M", "0730", "0830"),
			wantReason: SameSubject, wantOK: true,
		},
		{
			name:       "shared day and overlap",
			a:          sureSection("CS11", "A", 1, "MW", "0700", "0800"),
			b:          sureSection("MATH21", "B", 2, "WF", "0730", "0830"),
			wantReason: TimeOverlap, wantOK: true,
		},
		{
			name: "overlap but no shared day",
			a:    sureSection("CS11", "A", 1, "MW", "0700", "0800"),
			b:    sureSection("MATH21", "B", 2, "TH", "0700", "0800"),
		},
		{
			name: "shared day but back to back",
			a:    sureSection("CS11", "A", 1, "M", "0900", "1000"),
			b:    sureSection("MATH21", "B", 2, "M", "1000", "1100"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := Conflicts(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)

			// verdict does not depend on argument order
			reason2, ok2 := Conflicts(tt.b, tt.a)
			assert.Equal(t, ok, ok2)
			assert.Equal(t, reason, reason2)
		})
	}
}

func TestFindConflicts_EveryPairOnceInInputOrder(t *testing.T) {
	// GIVEN four sections with three conflicting pairs
	a := sureSection("CS11", "A", 1, "M", "0700", "0800")
	b := sureSection("CS11", "B", 2, "T", "0700", "0800")
	c := sureSection("MATH21", "C", 3, "M", "0730", "0900")
	d := sureSection("PHYS71", "D", 4, "T", "0800", "0900")

	// WHEN conflicts are collected
	got := FindConflicts([]Section{a, b, c, d})

	// THEN (a,b) same subject, (a,c) overlap; b/d and c/d are back to back or on other days
	require.Len(t, got, 2)
	assert.Equal(t, Conflict{A: a, B: b, Reason: SameSubject}, got[0])
	assert.Equal(t, Conflict{A: a, B: c, Reason: TimeOverlap}, got[1])
}

func TestFindConflicts_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, FindConflicts(nil))
	assert.Empty(t, FindConflicts([]Section{sureSection("CS11", "A", 1, "M", "0700", "0800")}))
}
