// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabstat computes the aggregate rows of a result table over
// the rows that are currently visible.
//
// The shape of the aggregate rows is a template of RowDescs fixed
// when the dataset is loaded. Compute fills in the values for one
// subset of rows and never changes the shape. A Recomputer runs
// Compute in the background and discards results for filter sets
// that have been superseded.
package tabstat

import (
	"strconv"

	"golang.org/x/benchtable/tabfmt"
	"golang.org/x/benchtable/tabunit"
)

// An AggregateRow holds one Stat per dataset column for the tasks
// that Desc selects.
type AggregateRow struct {
	Desc  RowDesc
	Cells []Stat
}

// Compute aggregates rows of ds following tmpl. The result has one
// AggregateRow per RowDesc, in template order, each with one cell per
// column of ds.
//
// Values that are not numbers in their column's unit are left out of
// the summaries. If rows is empty, every cell is NoData. In a row
// whose status count is zero, the numeric cells are NoData too.
//
// Compute does not modify its arguments.
func Compute(ds *tabfmt.Dataset, rows []tabfmt.Row, tmpl []RowDesc, weights Weights) []AggregateRow {
	out, _ := compute(ds, rows, tmpl, weights, nil)
	return out
}

// compute is Compute with a stop function that is polled between
// columns. If stop returns true, compute gives up and returns false.
func compute(ds *tabfmt.Dataset, rows []tabfmt.Row, tmpl []RowDesc, weights Weights, stop func() bool) ([]AggregateRow, bool) {
	out := make([]AggregateRow, len(tmpl))
	for i, d := range tmpl {
		out[i] = AggregateRow{Desc: d, Cells: make([]Stat, len(ds.Columns))}
	}
	if len(rows) == 0 {
		return out, true
	}

	for rs := range ds.RunSets {
		statusCol := ds.StatusColumn(rs)
		cols := ds.ColumnsOf(rs)

		// Status cells are counted first so the numeric cells of
		// rows without tasks can be blanked.
		for _, ci := range cols {
			if stop != nil && stop() {
				return nil, false
			}
			if ds.Columns[ci].Type.IsStatus() {
				for i, d := range tmpl {
					out[i].Cells[ci] = statusStat(rows, ci, d, weights)
				}
			}
		}
		for _, ci := range cols {
			if stop != nil && stop() {
				return nil, false
			}
			col := ds.Columns[ci]
			if !col.Type.IsNumeric() {
				continue
			}
			for i, d := range tmpl {
				if d.Score {
					continue
				}
				if statusCol >= 0 && out[i].Cells[statusCol].N == 0 {
					continue
				}
				out[i].Cells[ci] = numericStat(rows, ci, col.Unit, statusCol, d)
			}
		}
	}
	return out, true
}

func statusStat(rows []tabfmt.Row, ci int, d RowDesc, weights Weights) Stat {
	n := 0
	score := 0.0
	for i := range rows {
		cell := &rows[i].Cells[ci]
		status := cell.Raw.Text()
		if !d.Selects(cell.Category, status) {
			continue
		}
		n++
		if d.Score {
			score += weights.Weight(cell.Category, Classify(status))
		}
	}
	if d.Score {
		return ScoreStat(n, score)
	}
	return CountStat(n)
}

func numericStat(rows []tabfmt.Row, ci int, unit string, statusCol int, d RowDesc) Stat {
	var xs []float64
	for i := range rows {
		cells := rows[i].Cells
		if statusCol >= 0 {
			st := &cells[statusCol]
			if !d.Selects(st.Category, st.Raw.Text()) {
				continue
			}
		} else if d.Category != "" || d.Classes != ClassAny {
			// Without a status column, only the total
			// row covers any tasks.
			continue
		}
		v, err := tabunit.Parse(cells[ci].Raw, unit)
		if err != nil {
			continue
		}
		xs = append(xs, v)
	}
	return NewSummary(xs)
}

// scoreDigits is the number of significant digits of scores.
const scoreDigits = 2

// Format renders rows for display, showing field for summary cells.
// All numbers of one column share a precision chosen by a
// tabunit.Builder from the column's significant digits. Scores share
// a precision of their own. NoData cells are rendered as "".
func Format(ds *tabfmt.Dataset, rows []AggregateRow, field Field) [][]string {
	fmts := make([]tabunit.Formatter, len(ds.Columns))
	scoreFmts := make([]tabunit.Formatter, len(ds.Columns))
	for ci, col := range ds.Columns {
		b := tabunit.NewBuilder(col.SignificantDigits)
		sb := tabunit.NewBuilder(scoreDigits)
		for _, r := range rows {
			st := r.Cells[ci]
			switch st.Kind {
			case Summary:
				v, _ := st.Value(field)
				b.Add(v)
			case Score:
				sb.Add(st.Sum)
			}
		}
		fmts[ci] = b.Build()
		scoreFmts[ci] = sb.Build()
	}

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = make([]string, len(r.Cells))
		for ci, st := range r.Cells {
			v, ok := st.Value(field)
			switch {
			case !ok:
			case st.Kind == Count:
				out[i][ci] = strconv.Itoa(st.N)
			case st.Kind == Score:
				out[i][ci] = scoreFmts[ci].Format(v)
			default:
				out[i][ci] = fmts[ci].Format(v)
			}
		}
	}
	return out
}
