// Package testutil provides shared test infrastructure for the enlistment simulator.
// It holds the golden scenario types and assertion helpers used by the
// sim/ test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	json "github.com/goccy/go-json"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one scenario with an analytically known success probability.
type GoldenTestCase struct {
	Name     string          `json:"name"`
	Trials   int             `json:"trials"`
	Workers  int             `json:"workers"`
	Seed     int64           `json:"seed"`
	Sections []GoldenSection `json:"sections"`
	Expected GoldenExpected  `json:"expected"`
}

// GoldenSection mirrors one CSV row, already in typed form.
type GoldenSection struct {
	Subject        string `json:"subject"`
	ClassName      string `json:"class_name"`
	AvailableSlots int    `json:"available_slots"`
	Demand         int    `json:"demand"`
	Rank           int    `json:"rank"`
	Days           string `json:"days"`
	Start          string `json:"start"`
	End            string `json:"end"`
}

// GoldenExpected holds the expected outcome of a scenario.
type GoldenExpected struct {
	Percent     float64            `json:"percent"`
	AbsTolPct   float64            `json:"abs_tol_pct"` // allowed Monte Carlo noise, in percentage points
	RosterSize  int                `json:"roster_size"` // size of the roster when every section is won
	SubjectProb map[string]float64 `json:"subject_prob"`
	SubjectTier map[string]string  `json:"subject_tier"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertWithin compares two float64 values with an absolute tolerance.
func AssertWithin(t *testing.T, name string, want, got, absTol float64) {
	t.Helper()
	if math.Abs(want-got) > absTol {
		t.Errorf("%s: got %v, want %v ± %v", name, got, want, absTol)
	}
}
