// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabfilter parses, serializes and applies the per-column
// filters of a result table.
//
// Each filter is a Spec that constrains exactly one column. A row is
// kept if it satisfies every Spec. Specs are grouped in an immutable
// Set, so a change to one filter produces a new Set and recomputation
// can tell which Set a result belongs to.
package tabfilter

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/benchtable/tabfmt"
	"golang.org/x/benchtable/tabunit"
)

// A Filter selects rows of a dataset.
type Filter struct {
	// match holds one function per Spec. A row matches if all of
	// them do.
	match []matchFn
}

// matchFn reports whether a row satisfies one Spec.
type matchFn func(row *tabfmt.Row) bool

// NewFilter compiles specs into a Filter for rows of ds. It fails if
// a Spec refers to a column that does not exist or does not fit the
// column's type.
func NewFilter(ds *tabfmt.Dataset, specs ...Spec) (*Filter, error) {
	f := &Filter{match: make([]matchFn, 0, len(specs))}
	for _, s := range specs {
		m, err := compile(ds, s)
		if err != nil {
			return nil, err
		}
		if m != nil {
			f.match = append(f.match, m)
		}
	}
	return f, nil
}

// compile returns the match function for s, or nil if s keeps every
// row.
func compile(ds *tabfmt.Dataset, s Spec) (matchFn, error) {
	if s.Column == TaskColumn {
		if s.Kind != Text {
			return nil, fmt.Errorf("task column supports only text filters, not %v", s.Kind)
		}
		if s.Substring == "" {
			return nil, nil
		}
		return func(row *tabfmt.Row) bool {
			return strings.Contains(row.Task, s.Substring)
		}, nil
	}
	if s.Column < 0 || s.Column >= len(ds.Columns) {
		return nil, fmt.Errorf("filter on unknown column %d", s.Column)
	}
	col := ds.Columns[s.Column]
	ci := s.Column

	switch s.Kind {
	case Nothing:
		return func(*tabfmt.Row) bool { return false }, nil

	case Range:
		if !col.Type.IsNumeric() {
			return nil, fmt.Errorf("range filter on %v column %q", col.Type, col.Title)
		}
		b := s.Bounds
		if math.IsNaN(b.Min) {
			b.Min = math.Inf(-1)
		}
		if math.IsNaN(b.Max) {
			b.Max = math.Inf(1)
		}
		unit := col.Unit
		return func(row *tabfmt.Row) bool {
			v, err := tabunit.Parse(row.Cells[ci].Raw, unit)
			if err != nil {
				// Values that are not numbers are
				// outside every range.
				return false
			}
			return b.Contains(v)
		}, nil

	case Text:
		if s.Substring == "" {
			return nil, nil
		}
		return func(row *tabfmt.Row) bool {
			return strings.Contains(row.Cells[ci].Raw.Text(), s.Substring)
		}, nil

	case Selection:
		if !col.Type.IsStatus() {
			return nil, fmt.Errorf("selection filter on %v column %q", col.Type, col.Title)
		}
		cats := toSet(s.Categories)
		stats := toSet(s.Statuses)
		return func(row *tabfmt.Row) bool {
			cell := &row.Cells[ci]
			return cats[cell.Category] || stats[cell.Raw.Text()]
		}, nil
	}
	panic(fmt.Sprintf("unknown filter kind %v", s.Kind))
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// Match reports whether row satisfies every constraint of f.
func (f *Filter) Match(row *tabfmt.Row) bool {
	for _, m := range f.match {
		if !m(row) {
			return false
		}
	}
	return true
}

// Apply returns the rows that satisfy f, in their original order.
// It does not modify rows.
func (f *Filter) Apply(rows []tabfmt.Row) []tabfmt.Row {
	out := make([]tabfmt.Row, 0, len(rows))
	for i := range rows {
		if f.Match(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// Apply returns the rows of ds that satisfy every Spec in set.
func Apply(ds *tabfmt.Dataset, rows []tabfmt.Row, set Set) ([]tabfmt.Row, error) {
	f, err := NewFilter(ds, set.Specs()...)
	if err != nil {
		return nil, err
	}
	return f.Apply(rows), nil
}

// NaturalBounds returns the smallest and largest value of every
// numeric column of ds. Columns that are not numeric or hold no
// numbers get Unbounded.
func NaturalBounds(ds *tabfmt.Dataset) []Bounds {
	bounds := make([]Bounds, len(ds.Columns))
	for ci, col := range ds.Columns {
		bounds[ci] = Unbounded
		if !col.Type.IsNumeric() {
			continue
		}
		found := false
		for _, row := range ds.Rows {
			v, err := tabunit.Parse(row.Cells[ci].Raw, col.Unit)
			if err != nil || math.IsNaN(v) {
				continue
			}
			if !found {
				bounds[ci] = Bounds{v, v}
				found = true
				continue
			}
			bounds[ci].Min = math.Min(bounds[ci].Min, v)
			bounds[ci].Max = math.Max(bounds[ci].Max, v)
		}
	}
	return bounds
}
