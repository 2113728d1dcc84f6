// Package sim provides the enlistment model and the Monte Carlo engine that
// estimates the chance of a complete, conflict-free class roster.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - section.go: Section records and their win probability (slots / demand, capped at 1)
//   - resolver.go: Reduction of a set of won sections to a consistent roster
//   - simulator.go: Trial loop, worker partitioning and result aggregation
//
// # Architecture
//
// The sim package holds the model and algorithms; collaborators live in
// sub-packages:
//   - sim/dataset/: CSV loading into validated sections, with per-row diagnostics
//   - sim/trace/: Per-trial trace recording and summaries
//   - sim/internal/testutil/: Golden scenarios and float assertions for tests
//
// # Key Operations
//
//   - Overlaps: strict half-open overlap of two clock ranges
//   - FindConflicts / Conflicts: same-subject and same-day time-overlap detection
//   - Resolve / ResolveDetailed: rank-ordered greedy acceptance
//   - Simulate: independent Bernoulli draws per section, resolved once per trial
//   - Recommend / RecommendWith: per-subject probability of at least one section, tiered
//
// Randomness flows through PartitionedRNG so that a seed and a worker count
// fully determine a run.
package sim
