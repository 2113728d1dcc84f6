package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classNames(sections []Section) []string {
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.ClassName)
	}
	return names
}

func TestResolve_SameSubject_KeepsBetterRank(t *testing.T) {
	// GIVEN two alternatives of the same subject given in reverse rank order
	in := []Section{
		sureSection("CS101", "second", 2, "T", "0900", "1000"),
		sureSection("CS101", "first", 1, "M", "0900", "1000"),
	}

	// WHEN resolved
	res := ResolveDetailed(in)

	// THEN only rank 1 survives and the other is dropped as same-subject
	assert.Equal(t, []string{"first"}, classNames(res.Roster))
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, SameSubject, res.Dropped[0].Reason)
	assert.Equal(t, "second", res.Dropped[0].Section.ClassName)
	assert.Equal(t, "first", res.Dropped[0].Blocker.ClassName)
}

func TestResolve_TimeOverlap_DropsLowerRank(t *testing.T) {
	in := []Section{
		sureSection("MATH21", "math", 1, "M", "1000", "1130"),
		sureSection("PHYS71", "phys", 2, "M", "1100", "1200"),
	}

	res := ResolveDetailed(in)

	assert.Equal(t, []string{"math"}, classNames(res.Roster))
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, TimeOverlap, res.Dropped[0].Reason)
	assert.Equal(t, "math", res.Dropped[0].Blocker.ClassName)
}

func TestResolve_MultiDayCandidate_ChecksEveryDay(t *testing.T) {
	// GIVEN a MWF candidate that only collides on Friday with an accepted section
	in := []Section{
		sureSection("A", "fri", 1, "F", "0800", "0900"),
		sureSection("B", "tue", 2, "T", "0800", "0900"),
		sureSection("C", "mwf", 3, "MWF", "0830", "0930"),
	}

	// WHEN resolved
	res := ResolveDetailed(in)

	// THEN the multi-day candidate is rejected and blamed on the Friday section
	assert.Equal(t, []string{"fri", "tue"}, classNames(res.Roster))
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "fri", res.Dropped[0].Blocker.ClassName)
}

func TestResolve_RejectedSectionDoesNotBlockLaterOnes(t *testing.T) {
	// GIVEN B is rejected by A; C overlaps only B
	in := []Section{
		sureSection("A", "a", 1, "M", "0700", "0800"),
		sureSection("B", "b", 2, "M", "0730", "0900"),
		sureSection("C", "c", 3, "M", "0830", "0930"),
	}

	// THEN C is accepted since B never entered the roster
	assert.Equal(t, []string{"a", "c"}, classNames(Resolve(in)))
}

func TestResolve_TiesKeepInputOrder(t *testing.T) {
	in := []Section{
		sureSection("X", "x-listed-first", 5, "M", "0700", "0800"),
		sureSection("X", "x-listed-second", 5, "T", "0700", "0800"),
	}
	// stable sort: equal ranks keep input order, so the first listed wins
	assert.Equal(t, []string{"x-listed-first"}, classNames(Resolve(in)))
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	in := []Section{
		sureSection("B", "b", 2, "M", "0700", "0800"),
		sureSection("A", "a", 1, "T", "0700", "0800"),
	}
	before := append([]Section(nil), in...)
	Resolve(in)
	assert.Equal(t, before, in)
}

func TestResolve_Empty(t *testing.T) {
	assert.Empty(t, Resolve(nil))
	res := ResolveDetailed([]Section{})
	assert.Empty(t, res.Roster)
	assert.Empty(t, res.Dropped)
}

// TestResolve_Properties checks the resolver invariants over random inputs.
func TestResolve_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(20240601))
	for iter := 0; iter < 500; iter++ {
		in := randomSections(rng, 1+rng.Intn(12))
		res := ResolveDetailed(in)
		roster := res.Roster

		// size bounded by distinct subjects
		require.LessOrEqual(t, len(roster), len(Subjects(in)))

		// roster ⊆ input
		for _, r := range roster {
			assert.Contains(t, in, r)
		}

		// every input is either in the roster or dropped
		require.Equal(t, len(in), len(roster)+len(res.Dropped))

		// no duplicate subjects and no same-day overlaps: the detector finds nothing
		assert.Empty(t, FindConflicts(roster), "iteration %d", iter)

		// every drop is confirmed by the detector against its blocker
		for _, d := range res.Dropped {
			reason, ok := Conflicts(d.Blocker, d.Section)
			require.True(t, ok, "iteration %d: detector disagrees on %v vs %v", iter, d.Section, d.Blocker)
			assert.Equal(t, d.Reason, reason)
			assert.LessOrEqual(t, d.Blocker.Rank, d.Section.Rank)
		}

		// idempotent
		assert.Equal(t, roster, Resolve(roster), "iteration %d", iter)
	}
}

// TestResolve_AgreesWithDetector checks that a candidate is accepted exactly
// when the detector finds no conflict between it and any already accepted section.
func TestResolve_AgreesWithDetector(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 300; iter++ {
		in := randomSections(rng, 2+rng.Intn(10))
		sorted := append([]Section(nil), in...)
		SortByRank(sorted)

		var want []Section
		for _, c := range sorted {
			blocked := false
			for _, held := range want {
				if _, ok := Conflicts(held, c); ok {
					blocked = true
					break
				}
			}
			if !blocked {
				want = append(want, c)
			}
		}

		got := Resolve(in)
		if len(want) == 0 {
			assert.Empty(t, got)
			continue
		}
		assert.Equal(t, want, got, "iteration %d", iter)
	}
}

func TestResolve_PermutationInvariantWithDistinctRanks(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	in := randomSections(rng, 10)
	for i := range in {
		in[i].Rank = i
	}
	want := Resolve(in)
	for k := 0; k < 20; k++ {
		shuffled := append([]Section(nil), in...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, Resolve(shuffled))
	}
}
