// sim/simulator.go
package sim

import (
	"context"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/enlist-sim/enlist-sim/sim/trace"
)

// cancelCheckInterval is how many trials a worker runs between context checks.
const cancelCheckInterval = 1024

// SimResult is the aggregated outcome of a Monte Carlo run.
type SimResult struct {
	Trials        int
	Successes     int
	Subjects      []string // desired subjects in rank order of first appearance
	Percent       float64  // 100 * Successes / Trials
	StdErrPercent float64  // Monte Carlo standard error of Percent
	Trace         *trace.SimulationTrace
}

// Simulate estimates the chance of ending up with one non-conflicting section
// for every desired subject.
//
// Each trial draws every section independently with its own win probability,
// resolves the won set, and counts a success when the roster covers every
// subject exactly once. Trials are split across cfg.Workers goroutines, each
// with its own RNG stream derived from cfg.Seed, so a given seed and worker
// count always yields the same result.
//
// Draws for sections of the same subject are independent. Real lotteries may
// anti-correlate them; that is not modeled.
func Simulate(ctx context.Context, sections []Section, cfg SimConfig) (*SimResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]Section, len(sections))
	copy(ordered, sections)
	SortByRank(ordered)

	subjects := Subjects(ordered)
	subjectIdx := make(map[string]int, len(subjects))
	for i, s := range subjects {
		subjectIdx[s] = i
	}

	workers := min(cfg.Workers, cfg.Trials)
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	tws := make([]*trialWorker, workers)
	for w := range tws {
		tws[w] = &trialWorker{
			id:         w,
			sections:   ordered,
			subjects:   subjects,
			subjectIdx: subjectIdx,
			rng:        rng.ForWorker(w),
			won:        make([]Section, 0, len(ordered)),
			seen:       make([]bool, len(subjects)),
		}
		if cfg.Trace.Enabled() {
			tws[w].trace = trace.NewSimulationTrace(cfg.Trace)
		}
	}

	per, rem := cfg.Trials/workers, cfg.Trials%workers
	logrus.Debugf("simulating %d trials over %d sections (%d subjects) on %d workers",
		cfg.Trials, len(ordered), len(subjects), workers)

	counts := make([]int, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w, tw := range tws {
		w, tw := w, tw
		n := per
		if w < rem {
			n++
		}
		g.Go(func() error {
			successes, err := tw.run(gctx, n)
			counts[w] = successes
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SimResult{Trials: cfg.Trials, Subjects: subjects}
	for _, c := range counts {
		result.Successes += c
	}
	p := float64(result.Successes) / float64(result.Trials)
	result.Percent = 100 * p
	result.StdErrPercent = 100 * math.Sqrt(p*(1-p)/float64(result.Trials))

	if cfg.Trace.Enabled() {
		result.Trace = trace.NewSimulationTrace(cfg.Trace)
		for _, tw := range tws {
			result.Trace.Merge(tw.trace)
		}
	}

	logrus.Infof("simulation complete: %d/%d successful trials (%.2f%%)", result.Successes, result.Trials, result.Percent)
	return result, nil
}

// trialWorker runs one partition of trials. All fields other than the shared
// read-only section data are owned by the worker.
type trialWorker struct {
	id         int
	sections   []Section // rank-sorted, shared read-only
	subjects   []string
	subjectIdx map[string]int
	rng        *rand.Rand
	won        []Section
	seen       []bool
	res        resolver
	trace      *trace.SimulationTrace
}

func (w *trialWorker) run(ctx context.Context, n int) (int, error) {
	successes := 0
	for t := 0; t < n; t++ {
		if t%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return successes, err
			}
		}
		if w.trial(t) {
			successes++
		}
	}
	return successes, nil
}

func (w *trialWorker) trial(t int) bool {
	w.won = w.won[:0]
	for _, s := range w.sections {
		if w.rng.Float64() < s.probability {
			w.won = append(w.won, s)
		}
	}

	var drops []Drop
	var dropSink *[]Drop
	if w.trace != nil {
		dropSink = &drops
	}
	roster := w.res.run(w.won, dropSink)
	ok := w.complete(roster)

	if w.trace != nil {
		w.record(t, ok, drops)
	}
	return ok
}

// complete reports whether roster holds exactly one section for every desired subject.
func (w *trialWorker) complete(roster []Section) bool {
	clear(w.seen)
	for _, s := range roster {
		idx, ok := w.subjectIdx[s.Subject]
		if !ok || w.seen[idx] {
			return false
		}
		w.seen[idx] = true
	}
	return len(roster) == len(w.subjects)
}

func (w *trialWorker) record(t int, ok bool, drops []Drop) {
	rec := trace.TrialRecord{Trial: t, Worker: w.id, Success: ok}
	for i, held := range w.seen {
		if !held {
			rec.Missing = append(rec.Missing, w.subjects[i])
		}
	}
	for _, d := range drops {
		rec.Drops = append(rec.Drops, trace.DropRecord{
			Subject:   d.Section.Subject,
			ClassName: d.Section.ClassName,
			Reason:    string(d.Reason),
			BlockedBy: d.Blocker.ClassName,
		})
	}
	w.trace.RecordTrial(rec)
}
