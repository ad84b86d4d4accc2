// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabstat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/benchtable/tabfilter"
	"golang.org/x/benchtable/tabfmt"
)

// ErrStale is returned for a recomputation that was superseded by a
// later Submit before its result could be published.
var ErrStale = errors.New("stale recomputation")

// A Result is the set of aggregate rows for one filter set.
type Result struct {
	// Generation is the submission the result was computed for.
	// Every Submit gets a new, larger generation; the initial
	// result has generation 0.
	Generation uint64

	// Filter is the tabfilter.Set generation of the filter set
	// the result covers. Different sets may share it.
	Filter uint64

	Rows []AggregateRow
}

// A Recomputer keeps the aggregate rows of a dataset up to date as
// its filter set changes.
//
// Each Submit starts a recomputation in a new goroutine. Only the
// most recent submission may publish its result; older ones stop
// early or, if they finish late, are discarded. Readers always see a
// complete Result, never a partially updated one.
type Recomputer struct {
	tab     *tabfilter.Table
	tmpl    []RowDesc
	weights Weights

	newest atomic.Uint64 // generation of the latest Submit
	latest atomic.Pointer[Result]
	stale  atomic.Int64

	wg sync.WaitGroup

	// testHookPublish, if set, runs before a result is published.
	testHookPublish func(gen uint64)
}

// NewRecomputer returns a Recomputer for the dataset of tab. Its
// initial result covers all rows.
func NewRecomputer(tab *tabfilter.Table, tmpl []RowDesc, weights Weights) *Recomputer {
	r := &Recomputer{tab: tab, tmpl: tmpl, weights: weights}
	ds := tab.Dataset()
	r.latest.Store(&Result{Rows: Compute(ds, ds.Rows, tmpl, weights)})
	return r
}

// A Job is one submitted recomputation.
type Job struct {
	gen  uint64
	done chan struct{}
	res  *Result
	err  error
}

// Generation returns the submission generation of j.
func (j *Job) Generation() uint64 {
	return j.gen
}

// Wait blocks until j finishes and returns its result. The error is
// ErrStale if j was superseded, or the context's error if it was
// canceled.
func (j *Job) Wait() (*Result, error) {
	<-j.done
	return j.res, j.err
}

// Submit starts recomputing the aggregate rows for the rows that set
// selects, superseding every earlier submission. Any set may be
// submitted, including the zero Set or one equal to an earlier set.
// Filter errors are reported by the Job.
func (r *Recomputer) Submit(ctx context.Context, set tabfilter.Set) *Job {
	j := &Job{gen: r.newest.Add(1), done: make(chan struct{})}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		res, err := r.run(ctx, j.gen, set)
		r.finish(j, res, err)
	}()
	return j
}

func (r *Recomputer) run(ctx context.Context, gen uint64, set tabfilter.Set) (*Result, error) {
	superseded := func() bool {
		return ctx.Err() != nil || r.newest.Load() != gen
	}
	ds := r.tab.Dataset()
	rows, err := r.tab.Apply(set)
	if err != nil {
		return nil, err
	}
	aggs, ok := compute(ds, rows, r.tmpl, r.weights, superseded)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStale
	}
	res := &Result{Generation: gen, Filter: set.Generation(), Rows: aggs}
	if r.testHookPublish != nil {
		r.testHookPublish(gen)
	}

	// Publish unless a later Submit happened or a later result
	// was published in the meantime.
	for {
		cur := r.latest.Load()
		if r.newest.Load() != gen || cur.Generation > gen {
			return nil, ErrStale
		}
		if r.latest.CompareAndSwap(cur, res) {
			return res, nil
		}
	}
}

func (r *Recomputer) finish(j *Job, res *Result, err error) {
	if errors.Is(err, ErrStale) {
		r.stale.Add(1)
	}
	j.res, j.err = res, err
	close(j.done)
}

// Latest returns the most recently published result.
func (r *Recomputer) Latest() *Result {
	return r.latest.Load()
}

// Stale returns the number of recomputations discarded so far.
func (r *Recomputer) Stale() int64 {
	return r.stale.Load()
}

// Wait blocks until all submitted recomputations have finished.
func (r *Recomputer) Wait() {
	r.wg.Wait()
}

// Dataset returns the dataset r aggregates.
func (r *Recomputer) Dataset() *tabfmt.Dataset {
	return r.tab.Dataset()
}
