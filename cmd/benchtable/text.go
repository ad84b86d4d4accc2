// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"golang.org/x/benchtable/cmd/benchtable/internal/texttab"
	"golang.org/x/benchtable/tabstat"
)

var (
	correctStyle = color.New(color.FgGreen)
	wrongStyle   = color.New(color.FgRed, color.Bold)
	otherStyle   = color.New(color.FgYellow)
)

// statusStyle returns the color of a status cell in category.
func statusStyle(category string) *color.Color {
	switch category {
	case "":
		return nil
	case tabstat.CategoryCorrect:
		return correctStyle
	case tabstat.CategoryWrong:
		return wrongStyle
	}
	return otherStyle
}

func (v *view) writeText(w io.Writer) error {
	var t texttab.Table

	t.Row().Cell("")
	for rs, r := range v.ds.RunSets {
		if n := len(v.ds.ColumnsOf(rs)); n > 0 {
			t.Span(n, r.Label(), texttab.Center)
		}
	}
	t.Row().Cell("task")
	for _, ci := range v.order {
		t.Cell(v.header(ci), texttab.Center)
	}

	if v.showRows {
		for _, row := range v.rows {
			t.Row().Cell(row.Task)
			for _, ci := range v.order {
				cell := row.Cells[ci]
				if v.ds.Columns[ci].Type.IsStatus() {
					t.Cell(v.cellText(ci, cell), texttab.Style(statusStyle(cell.Category)))
					continue
				}
				t.Cell(v.cellText(ci, cell), texttab.Right)
			}
		}
	}

	if v.showStats {
		t.Row()
		t.Row().Cell(fmt.Sprintf("statistics (%s)", v.field))
		for i, r := range v.stats {
			t.Row().Cell(r.Desc.Title, texttab.Indent(r.Desc.Indent))
			for _, ci := range v.order {
				t.Cell(v.cells[i][ci], texttab.Right)
			}
		}
	}

	if err := t.Format(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d tasks\n", len(v.rows), v.total)
	return err
}
