// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfilter

import (
	"fmt"
	"sort"

	"golang.org/x/benchtable/tabfmt"
)

// A Set holds at most one Spec per column. Sets are immutable: With
// and Without return a new Set and leave the receiver unchanged, so a
// Set can be shared freely between goroutines.
//
// The zero Set has no filters.
type Set struct {
	specs []Spec // sorted by Column
	gen   uint64
}

// Generation counts the edits that led to s. Every With and Without
// call returns a Set with a larger generation than its receiver.
func (s Set) Generation() uint64 {
	return s.gen
}

// Len returns the number of filters in s.
func (s Set) Len() int {
	return len(s.specs)
}

// Specs returns the filters in s, ordered by column.
func (s Set) Specs() []Spec {
	return append([]Spec(nil), s.specs...)
}

// Lookup returns the filter on column, if any.
func (s Set) Lookup(column int) (Spec, bool) {
	i, ok := s.find(column)
	if !ok {
		return Spec{}, false
	}
	return s.specs[i], true
}

func (s Set) find(column int) (int, bool) {
	i := sort.Search(len(s.specs), func(i int) bool {
		return s.specs[i].Column >= column
	})
	return i, i < len(s.specs) && s.specs[i].Column == column
}

// With returns a copy of s in which spec replaces any filter on the
// same column.
func (s Set) With(spec Spec) Set {
	i, ok := s.find(spec.Column)
	specs := make([]Spec, 0, len(s.specs)+1)
	specs = append(specs, s.specs[:i]...)
	specs = append(specs, spec)
	if ok {
		i++
	}
	specs = append(specs, s.specs[i:]...)
	return Set{specs, s.gen + 1}
}

// Without returns a copy of s with no filter on column.
func (s Set) Without(column int) Set {
	i, ok := s.find(column)
	if !ok {
		return Set{s.specs, s.gen + 1}
	}
	specs := make([]Spec, 0, len(s.specs))
	specs = append(specs, s.specs[:i]...)
	specs = append(specs, s.specs[i+1:]...)
	return Set{specs, s.gen + 1}
}

// A Table binds filter parsing to one dataset. It remembers the
// natural bounds of every numeric column, which range tokens refer
// to.
type Table struct {
	ds      *tabfmt.Dataset
	natural []Bounds
}

// NewTable returns a Table for ds.
func NewTable(ds *tabfmt.Dataset) *Table {
	return &Table{ds, NaturalBounds(ds)}
}

// Dataset returns the dataset of t.
func (t *Table) Dataset() *tabfmt.Dataset {
	return t.ds
}

// Natural returns the natural bounds of column.
func (t *Table) Natural(column int) Bounds {
	if column < 0 || column >= len(t.natural) {
		return Unbounded
	}
	return t.natural[column]
}

func (t *Table) column(column int) (tabfmt.Column, error) {
	if column == TaskColumn {
		return tabfmt.Column{Title: "task", Type: tabfmt.Text}, nil
	}
	if column < 0 || column >= len(t.ds.Columns) {
		return tabfmt.Column{}, fmt.Errorf("unknown column %d", column)
	}
	return t.ds.Columns[column], nil
}

// Parse parses a filter token for column. See the package-level Parse.
func (t *Table) Parse(column int, token string) (Spec, error) {
	col, err := t.column(column)
	if err != nil {
		return Spec{}, err
	}
	return Parse(column, col, t.Natural(column), token)
}

// Token returns the serialized form of spec.
func (t *Table) Token(spec Spec) string {
	return spec.Token(t.Natural(spec.Column))
}

// IsActive reports whether set has a filter on column that
// constrains it. It decides, for example, whether a control to reset
// the filter is enabled.
func (t *Table) IsActive(set Set, column int) bool {
	spec, ok := set.Lookup(column)
	if !ok {
		return false
	}
	col, err := t.column(column)
	if err != nil {
		return false
	}
	return IsActive(spec, col, t.Natural(column))
}

// Edit returns set with the filter on column replaced by the one
// token describes. An empty token removes the filter. If token does
// not parse, Edit returns set unchanged together with the error, so
// the previous filter stays in effect.
func (t *Table) Edit(set Set, column int, token string) (Set, error) {
	if token == "" {
		return set.Without(column), nil
	}
	spec, err := t.Parse(column, token)
	if err != nil {
		return set, err
	}
	return set.With(spec), nil
}

// Apply returns the rows of t's dataset that satisfy set.
func (t *Table) Apply(set Set) ([]tabfmt.Row, error) {
	return Apply(t.ds, t.ds.Rows, set)
}
