// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out result tables as aligned plain text.
package texttab

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// A Table collects cells row by row and lays them out in aligned
// columns.
//
// Its building methods return the Table so calls can be chained.
type Table struct {
	cells []cell
	cols  int

	curRow, curCol int
}

type cell struct {
	row, col, span int
	value          string
	align          align
	style          *color.Color
}

// A CellOption changes how a cell is shown.
type CellOption func(c *cell)

type align int

const (
	alignLeft align = iota
	alignRight
	alignCenter
)

var (
	Left   CellOption = func(c *cell) { c.align = alignLeft }
	Right  CellOption = func(c *cell) { c.align = alignRight }
	Center CellOption = func(c *cell) { c.align = alignCenter }
)

// Indent shifts the cell's text right by n levels.
func Indent(n int) CellOption {
	return func(c *cell) {
		c.value = strings.Repeat("  ", n) + c.value
	}
}

// Style colors the cell's text. The color is applied after padding,
// so it does not affect the layout.
func Style(s *color.Color) CellOption {
	return func(c *cell) {
		c.style = s
	}
}

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case alignRight:
		return strings.Repeat(" ", n) + s
	case alignCenter:
		return strings.Repeat(" ", n/2) + s + strings.Repeat(" ", n-n/2)
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	if len(t.cells) > 0 || t.curCol > 0 {
		t.curRow++
	}
	t.curCol = 0
	return t
}

// Cell adds a cell at the current row and column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	return t.Span(1, value, opts...)
}

// Span adds a cell covering cols columns.
func (t *Table) Span(cols int, value string, opts ...CellOption) *Table {
	c := cell{row: t.curRow, col: t.curCol, span: cols, value: value}
	for _, o := range opts {
		o(&c)
	}
	t.cells = append(t.cells, c)
	t.curCol += cols
	if t.curCol > t.cols {
		t.cols = t.curCol
	}
	return t
}

// Format lays out the table and writes it to w. Columns are separated
// by two spaces. Trailing space is trimmed from every line.
func (t *Table) Format(w io.Writer) error {
	const sep = 2

	// Single-column cells set the widths; wider cells then
	// grow their last column if they still don't fit.
	ws := make([]int, t.cols)
	for _, c := range t.cells {
		if c.span == 1 {
			ws[c.col] = max(ws[c.col], utf8.RuneCountInString(c.value))
		}
	}
	for _, c := range t.cells {
		if c.span == 1 {
			continue
		}
		have := sep * (c.span - 1)
		for col := c.col; col < c.col+c.span; col++ {
			have += ws[col]
		}
		if need := utf8.RuneCountInString(c.value); need > have {
			ws[c.col+c.span-1] += need - have
		}
	}

	cells := append([]cell(nil), t.cells...)
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].row != cells[j].row {
			return cells[i].row < cells[j].row
		}
		return cells[i].col < cells[j].col
	})

	var line strings.Builder
	flush := func() error {
		_, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
		line.Reset()
		return err
	}
	row, col := 0, 0
	for i, c := range cells {
		for row < c.row {
			if i > 0 {
				if err := flush(); err != nil {
					return err
				}
			}
			row++
			col = 0
		}
		// Skip to the cell's column.
		for ; col < c.col; col++ {
			line.WriteString(strings.Repeat(" ", ws[col]+sep))
		}
		width := sep * (c.span - 1)
		for k := c.col; k < c.col+c.span; k++ {
			width += ws[k]
		}
		s := c.align.pad(c.value, width)
		if c.style != nil {
			// Keep padding outside the escape sequences.
			trimmed := strings.TrimRight(s, " ")
			s = c.style.Sprint(trimmed) + s[len(trimmed):]
		}
		line.WriteString(s)
		col += c.span
		if col < t.cols {
			line.WriteString(strings.Repeat(" ", sep))
		}
	}
	if len(cells) > 0 {
		return flush()
	}
	return nil
}
