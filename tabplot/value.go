// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabplot turns table cells into plot values and draws
// quantile and scatter plots of the visible rows.
package tabplot

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot/plotter"

	"golang.org/x/benchtable/tabfmt"
	"golang.org/x/benchtable/tabunit"
)

// A ValueKind says what a Value holds.
type ValueKind int

const (
	// Absent values are left out of plots.
	Absent ValueKind = iota
	// Number values are points on a numeric axis.
	Number
	// Category values are points on a categorical axis.
	Category
)

// A Value is a cell as a plot sees it.
type Value struct {
	Kind ValueKind
	Num  float64
	Cat  string
}

func (v Value) String() string {
	switch v.Kind {
	case Number:
		return fmt.Sprint(v.Num)
	case Category:
		return v.Cat
	}
	return "absent"
}

// Extract returns the plot value of cell in col. Numeric columns give
// the full-precision number after stripping the column's unit, or
// Absent if the cell is not a number. Other columns give the cell's
// raw text as a category.
func Extract(cell tabfmt.Cell, col tabfmt.Column) Value {
	if col.Type.IsNumeric() {
		v, err := tabunit.Parse(cell.Raw, col.Unit)
		if err != nil {
			return Value{Kind: Absent}
		}
		return Value{Kind: Number, Num: v}
	}
	if cell.Raw.Kind == tabfmt.Missing {
		return Value{Kind: Absent}
	}
	return Value{Kind: Category, Cat: cell.Raw.Text()}
}

// A Series is one named line or point cloud.
type Series struct {
	Name string
	XYs  plotter.XYs
}

// Quantile returns one series per column in cols. The points of a
// series are the column's numeric values in increasing order, each
// plotted against its rank. Absent values are skipped.
func Quantile(ds *tabfmt.Dataset, rows []tabfmt.Row, cols []int) ([]Series, error) {
	out := make([]Series, 0, len(cols))
	for _, ci := range cols {
		if err := checkNumeric(ds, ci); err != nil {
			return nil, err
		}
		col := ds.Columns[ci]
		var ys []float64
		for _, row := range rows {
			if v := Extract(row.Cells[ci], col); v.Kind == Number {
				ys = append(ys, v.Num)
			}
		}
		sort.Float64s(ys)
		xys := make(plotter.XYs, len(ys))
		for i, y := range ys {
			xys[i].X = float64(i + 1)
			xys[i].Y = y
		}
		out = append(out, Series{Name: ds.ColumnName(ci), XYs: xys})
	}
	return out, nil
}

// Scatter returns the series of tasks with a number in both column x
// and column y, in row order.
func Scatter(ds *tabfmt.Dataset, rows []tabfmt.Row, x, y int) (Series, error) {
	for _, ci := range []int{x, y} {
		if err := checkNumeric(ds, ci); err != nil {
			return Series{}, err
		}
	}
	s := Series{Name: ds.ColumnName(y) + " vs " + ds.ColumnName(x)}
	for _, row := range rows {
		vx := Extract(row.Cells[x], ds.Columns[x])
		vy := Extract(row.Cells[y], ds.Columns[y])
		if vx.Kind != Number || vy.Kind != Number {
			continue
		}
		s.XYs = append(s.XYs, plotter.XY{X: vx.Num, Y: vy.Num})
	}
	return s, nil
}

func checkNumeric(ds *tabfmt.Dataset, ci int) error {
	if ci < 0 || ci >= len(ds.Columns) {
		return fmt.Errorf("no column %d", ci)
	}
	if col := ds.Columns[ci]; !col.Type.IsNumeric() {
		return fmt.Errorf("cannot plot %v column %s", col.Type, ds.ColumnName(ci))
	}
	return nil
}
