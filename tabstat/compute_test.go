// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabstat

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/benchtable/tabfilter"
	"golang.org/x/benchtable/tabfmt"
)

// Columns of testDataset.
const (
	colStatus = iota
	colTime
	colHost
)

func testDataset() *tabfmt.Dataset {
	ds := &tabfmt.Dataset{
		RunSets: []tabfmt.RunSet{{Tool: "cpa"}},
		Columns: []tabfmt.Column{
			{Title: "status", Type: tabfmt.MainStatus, SignificantDigits: tabfmt.NoDigits,
				Categories: []string{"correct", "error", "wrong"},
				Statuses:   []string{"TIMEOUT", "false(unreach-call)", "true"}},
			{Title: "cputime", Type: tabfmt.Measure, Unit: "s", SignificantDigits: 2},
			{Title: "host", Type: tabfmt.Text, SignificantDigits: tabfmt.NoDigits},
		},
	}
	rows := []struct {
		task, status, category string
		time                   tabfmt.Raw
	}{
		{"a.c", "true", "correct", tabfmt.NumberRaw(1.5)},
		{"b.c", "false(unreach-call)", "correct", tabfmt.NumberRaw(2.5)},
		{"c.c", "true", "wrong", tabfmt.StringRaw("4s")},
		{"d.c", "TIMEOUT", "error", tabfmt.StringRaw("900 s")},
		{"e.c", "", "", tabfmt.StringRaw("-")},
	}
	for i, r := range rows {
		ds.Rows = append(ds.Rows, tabfmt.Row{Task: r.task, Index: i, Cells: []tabfmt.Cell{
			{Raw: tabfmt.StringRaw(r.status), Category: r.category},
			{Raw: r.time},
			{Raw: tabfmt.StringRaw("host1")},
		}})
	}
	return ds
}

func TestClassify(t *testing.T) {
	for status, want := range map[string]Class{
		"true":                ClassTrue,
		"false":               ClassFalse,
		"false(unreach-call)": ClassFalse,
		"TIMEOUT":             ClassOther,
		"True":                ClassOther,
		"":                    ClassOther,
	} {
		if got := Classify(status); got != want {
			t.Errorf("Classify(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestWeights(t *testing.T) {
	w := Weights{"wrong": -1, "wrong:true": -10}
	if got := w.Weight("wrong", ClassTrue); got != -10 {
		t.Errorf("wrong:true weight %v, want -10", got)
	}
	if got := w.Weight("wrong", ClassFalse); got != -1 {
		t.Errorf("wrong:false weight %v, want -1", got)
	}
	if got := w.Weight("correct", ClassTrue); got != 0 {
		t.Errorf("correct:true weight %v, want 0", got)
	}
}

func TestNewTemplate(t *testing.T) {
	ds := testDataset()
	var ids []string
	for _, d := range NewTemplate(ds, DefaultWeights()) {
		ids = append(ids, d.ID)
	}
	want := []string{
		"total",
		"correct", "correct_true", "correct_false",
		"correct_unconfirmed", "correct_unconfirmed_true", "correct_unconfirmed_false",
		"wrong", "wrong_true", "wrong_false",
		"category_error",
		"score",
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("template IDs (-want +got):\n%s", diff)
	}
	if n := len(NewTemplate(ds, nil)); n != len(want)-1 {
		t.Errorf("template without weights has %d rows, want %d", n, len(want)-1)
	}
}

func TestCompute(t *testing.T) {
	ds := testDataset()
	tmpl := NewTemplate(ds, DefaultWeights())
	aggs := Compute(ds, ds.Rows, tmpl, DefaultWeights())
	if len(aggs) != len(tmpl) {
		t.Fatalf("got %d aggregate rows, want %d", len(aggs), len(tmpl))
	}
	row := func(id string) AggregateRow {
		t.Helper()
		i, err := LookupRow(tmpl, id)
		if err != nil {
			t.Fatal(err)
		}
		return aggs[i]
	}
	check := func(id string, col int, want Stat) {
		t.Helper()
		if got := row(id).Cells[col]; !same(got, want) {
			t.Errorf("%s/%s = %+v, want %+v", id, ds.Columns[col].Title, got, want)
		}
	}

	check("total", colStatus, CountStat(4))
	check("total", colTime, Stat{Summary, 4, 908, 1.5, 900, 227, 3.25, math.Sqrt((225.5*225.5 + 224.5*224.5 + 223*223 + 673*673) / 4)})
	check("total", colHost, Stat{})
	check("correct", colStatus, CountStat(2))
	check("correct", colTime, Stat{Summary, 2, 4, 1.5, 2.5, 2, 2, 0.5})
	check("correct_true", colStatus, CountStat(1))
	check("correct_false", colTime, Stat{Summary, 1, 2.5, 2.5, 2.5, 2.5, 2.5, 0})
	check("correct_unconfirmed", colStatus, CountStat(0))
	check("correct_unconfirmed", colTime, Stat{})
	check("wrong", colTime, Stat{Summary, 1, 4, 4, 4, 4, 4, 0})
	check("wrong_false", colStatus, CountStat(0))
	check("wrong_false", colTime, Stat{})
	check("category_error", colTime, Stat{Summary, 1, 900, 900, 900, 900, 900, 0})
	check("score", colStatus, ScoreStat(4, 2+1-12))
	check("score", colTime, Stat{})

	for i, agg := range aggs {
		if agg.Desc != tmpl[i] {
			t.Errorf("row %d is %q, want %q", i, agg.Desc.ID, tmpl[i].ID)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	ds := testDataset()
	tmpl := NewTemplate(ds, DefaultWeights())
	aggs := Compute(ds, nil, tmpl, DefaultWeights())
	if len(aggs) != len(tmpl) {
		t.Fatalf("got %d aggregate rows, want %d", len(aggs), len(tmpl))
	}
	for i, agg := range aggs {
		if agg.Desc != tmpl[i] {
			t.Errorf("row %d is %q, want %q", i, agg.Desc.ID, tmpl[i].ID)
		}
		for ci, st := range agg.Cells {
			if st.Defined() {
				t.Errorf("%s/%s = %+v over empty subset, want no data", agg.Desc.ID, ds.Columns[ci].Title, st)
			}
		}
	}
}

func TestComputeWithoutStatus(t *testing.T) {
	ds := testDataset()
	ds.Columns[colStatus].Type = tabfmt.Text
	tmpl := NewTemplate(ds, nil)
	aggs := Compute(ds, ds.Rows, tmpl, nil)
	if got := aggs[0].Cells[colTime]; got.N != 4 {
		t.Errorf("total cputime over %d values, want 4", got.N)
	}
	for _, agg := range aggs[1:] {
		if agg.Cells[colTime].Defined() {
			t.Errorf("%s/cputime defined without status column", agg.Desc.ID)
		}
	}
}

func TestFormat(t *testing.T) {
	ds := testDataset()
	tmpl := NewTemplate(ds, DefaultWeights())
	aggs := Compute(ds, ds.Rows, tmpl, DefaultWeights())
	got := Format(ds, aggs, FieldSum)
	check := func(id string, want []string) {
		t.Helper()
		i, err := LookupRow(tmpl, id)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Errorf("row %s (-want +got):\n%s", id, diff)
		}
	}
	check("total", []string{"4", "908.0", ""})
	check("correct", []string{"2", "4.0", ""})
	check("correct_true", []string{"1", "1.5", ""})
	check("correct_unconfirmed", []string{"0", "", ""})
	check("score", []string{"-9", "", ""})

	got = Format(ds, aggs, FieldMedian)
	check("total", []string{"4", "3.25", ""})
	check("correct", []string{"2", "2.00", ""})
}

func TestFormatFractionalScore(t *testing.T) {
	ds := testDataset()
	weights := Weights{"correct": 0.1, "wrong": 0.2}
	tmpl := NewTemplate(ds, weights)
	i, err := LookupRow(tmpl, "score")
	if err != nil {
		t.Fatal(err)
	}
	// 0.1 + 0.2 is not exactly 0.3.
	rows := []tabfmt.Row{ds.Rows[0], ds.Rows[2]}
	aggs := Compute(ds, rows, tmpl, weights)
	if got := Format(ds, aggs, FieldSum)[i][colStatus]; got != "0.3" {
		t.Errorf("score of a.c and c.c is %q, want 0.3", got)
	}
	aggs = Compute(ds, ds.Rows, tmpl, weights)
	if got := Format(ds, aggs, FieldSum)[i][colStatus]; got != "0.4" {
		t.Errorf("score of all rows is %q, want 0.4", got)
	}
}

func TestRecomputer(t *testing.T) {
	ds := testDataset()
	tab := tabfilter.NewTable(ds)
	tmpl := NewTemplate(ds, nil)
	r := NewRecomputer(tab, tmpl, nil)
	ctx := context.Background()

	if res := r.Latest(); res.Generation != 0 || res.Rows[0].Cells[colStatus].N != 4 {
		t.Fatalf("initial result %+v, want generation 0 over all rows", res)
	}

	// check submits set and checks the published totals.
	check := func(set tabfilter.Set, wantN int, wantSum float64) *Result {
		t.Helper()
		res, err := r.Submit(ctx, set).Wait()
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if r.Latest() != res {
			t.Errorf("result of generation %d not published", res.Generation)
		}
		if res.Filter != set.Generation() {
			t.Errorf("result filter generation %d, want %d", res.Filter, set.Generation())
		}
		total := res.Rows[0]
		if n, sum := total.Cells[colStatus].N, total.Cells[colTime].Sum; n != wantN || sum != wantSum {
			t.Errorf("total count %d, sum %v; want %d, %v", n, sum, wantN, wantSum)
		}
		return res
	}

	low, err := tab.Edit(tabfilter.Set{}, colTime, ":3")
	if err != nil {
		t.Fatal(err)
	}
	res1 := check(low, 2, 4)

	// Resetting to the empty set covers all rows again.
	res2 := check(tabfilter.Set{}, 4, 908)
	if res2.Generation <= res1.Generation {
		t.Errorf("generation %d after %d, want increasing", res2.Generation, res1.Generation)
	}

	// A set branched off an earlier state has the same filter
	// generation as low, but is a new submission.
	high, err := tab.Edit(tabfilter.Set{}, colTime, "3:")
	if err != nil {
		t.Fatal(err)
	}
	if high.Generation() != low.Generation() {
		t.Fatalf("branched set has generation %d, want %d", high.Generation(), low.Generation())
	}
	check(high, 2, 904)

	// Going back to an equal set recomputes too.
	check(low, 2, 4)
	if r.Stale() != 0 {
		t.Errorf("Stale() = %d, want 0", r.Stale())
	}
}

func TestRecomputerDiscardsSuperseded(t *testing.T) {
	ds := testDataset()
	tab := tabfilter.NewTable(ds)
	r := NewRecomputer(tab, NewTemplate(ds, nil), nil)

	set1, _ := tab.Edit(tabfilter.Set{}, colTime, ":3")
	set2, _ := tab.Edit(set1, colTime, "3:")

	reached := make(chan struct{})
	release := make(chan struct{})
	r.testHookPublish = func(gen uint64) {
		if gen == 1 {
			close(reached)
			<-release
		}
	}

	job1 := r.Submit(context.Background(), set1)
	if job1.Generation() != 1 {
		t.Fatalf("first job has generation %d, want 1", job1.Generation())
	}
	<-reached
	job2 := r.Submit(context.Background(), set2)
	res2, err := job2.Wait()
	if err != nil {
		t.Fatal(err)
	}
	close(release)
	if _, err := job1.Wait(); !errors.Is(err, ErrStale) {
		t.Errorf("superseded job: got %v, want ErrStale", err)
	}
	r.Wait()

	if got := r.Latest(); got != res2 || got.Generation != job2.Generation() {
		t.Errorf("latest result has generation %d, want %d", got.Generation, job2.Generation())
	}
	if n := r.Latest().Rows[0].Cells[colStatus].N; n != 2 {
		t.Errorf("total count %d, want 2", n)
	}
	if r.Stale() != 1 {
		t.Errorf("Stale() = %d, want 1", r.Stale())
	}
}

func TestRecomputerCanceled(t *testing.T) {
	ds := testDataset()
	tab := tabfilter.NewTable(ds)
	r := NewRecomputer(tab, NewTemplate(ds, nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	set, _ := tab.Edit(tabfilter.Set{}, colTime, ":3")
	if _, err := r.Submit(ctx, set).Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if r.Latest().Generation != 0 {
		t.Errorf("canceled job published a result")
	}

	// The same set can be submitted again after a cancellation.
	res, err := r.Submit(context.Background(), set).Wait()
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if r.Latest() != res || res.Rows[0].Cells[colStatus].N != 2 {
		t.Errorf("resubmitted set not published: %+v", r.Latest())
	}
}
