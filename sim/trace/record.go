// Package trace provides per-trial recording for enlistment simulation diagnostics.
// The package has no dependencies on sim/ and stores only plain data types.
package trace

// DropRecord captures one won section that conflict resolution rejected.
type DropRecord struct {
	Subject   string
	ClassName string
	Reason    string // "same-subject" or "time-overlap"
	BlockedBy string // class name of the accepted section it collided with
}

// TrialRecord captures a single simulated enlistment draw.
type TrialRecord struct {
	Trial   int // index within the worker's partition
	Worker  int
	Success bool
	Missing []string     // desired subjects absent from the resolved roster
	Drops   []DropRecord // nil if nothing was rejected
}
