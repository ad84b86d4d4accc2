// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabfmt defines the in-memory model of a benchmark result
// table and reads it from JSON or YAML files.
//
// A Dataset has one Row per task and one Column per measured quantity
// of each run set. Every Row carries exactly one Cell per Column. A
// Dataset is never modified after it has been read; filtering only
// selects subsets of its Rows.
package tabfmt

import (
	"fmt"
	"math"
	"strconv"
)

// A ColumnType is the declared type of the values in a Column.
type ColumnType int

const (
	// Text columns hold arbitrary strings.
	Text ColumnType = iota
	// Count columns hold integral numbers.
	Count
	// Measure columns hold numbers, possibly with a unit suffix.
	Measure
	// Status columns hold the raw outcome reported by a tool and
	// the category it was classified into.
	Status
	// MainStatus is the Status column that determines the
	// category of a task for a run set.
	MainStatus
)

var columnTypeNames = []string{"text", "count", "measure", "status", "main_status"}

func (t ColumnType) String() string {
	if t >= 0 && int(t) < len(columnTypeNames) {
		return columnTypeNames[t]
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// ParseColumnType returns the ColumnType with name s.
func ParseColumnType(s string) (ColumnType, bool) {
	for i, name := range columnTypeNames {
		if name == s {
			return ColumnType(i), true
		}
	}
	// "numeric" is accepted as an alias of "measure".
	if s == "numeric" {
		return Measure, true
	}
	return 0, false
}

// IsNumeric reports whether values of this type are compared as numbers.
func (t ColumnType) IsNumeric() bool {
	return t == Count || t == Measure
}

// IsStatus reports whether this is a Status or MainStatus column.
func (t ColumnType) IsStatus() bool {
	return t == Status || t == MainStatus
}

// NoDigits is the SignificantDigits value of a column that does not
// declare a precision.
const NoDigits = -1

// A Column describes one measured quantity of one run set.
type Column struct {
	Title string
	Type  ColumnType

	// Unit is the suffix that is stripped from textual values
	// before they are interpreted as numbers, such as "s".
	Unit string

	// SignificantDigits is the declared display precision, or
	// NoDigits.
	SignificantDigits int

	// Categories and Statuses enumerate the values of a status
	// column. They are nil for other columns.
	Categories []string
	Statuses   []string

	// RunSet is the index of the run set in Dataset.RunSets.
	RunSet int
}

// A RunSet is the group of columns reported by one tool invocation.
type RunSet struct {
	Tool string
	Name string
	Date string
}

// Label returns a short human-readable name for r.
func (r RunSet) Label() string {
	switch {
	case r.Name == "":
		return r.Tool
	case r.Tool == "":
		return r.Name
	}
	return r.Tool + " " + r.Name
}

// A Kind tags the variant held by a Raw value.
type Kind uint8

const (
	// Missing means the cell has no value at all. This is
	// distinct from the string "" and from the number 0.
	Missing Kind = iota
	// String is a textual value as written by the tool.
	String
	// Number is a value that was already numeric in the input.
	Number
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case String:
		return "string"
	case Number:
		return "number"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Raw is the original value of a cell. Only the field selected by
// Kind is meaningful.
type Raw struct {
	Kind Kind
	Str  string
	Num  float64
}

// StringRaw returns a String Raw holding s.
func StringRaw(s string) Raw {
	return Raw{Kind: String, Str: s}
}

// NumberRaw returns a Number Raw holding v.
func NumberRaw(v float64) Raw {
	return Raw{Kind: Number, Num: v}
}

// Text returns the textual form of r. It is "" for Missing values.
func (r Raw) Text() string {
	switch r.Kind {
	case String:
		return r.Str
	case Number:
		if math.IsInf(r.Num, 0) {
			if r.Num > 0 {
				return "inf"
			}
			return "-inf"
		}
		return strconv.FormatFloat(r.Num, 'f', -1, 64)
	}
	return ""
}

// A Cell is the value of one Column in one Row.
type Cell struct {
	Raw Raw

	// Href links to the tool output this value was taken from.
	Href string

	// Category is the result category of status cells, such as
	// "correct" or "wrong".
	Category string
}

// A Row holds the results of all run sets for one task.
type Row struct {
	// Task identifies the task, typically the input file name.
	Task string

	// Index is the position of this row in Dataset.Rows. It
	// identifies the full row after filtering.
	Index int

	// Cells has one entry per Dataset column.
	Cells []Cell
}

// A Dataset is a loaded result table.
type Dataset struct {
	Name    string
	RunSets []RunSet
	Columns []Column
	Rows    []Row
}

// ColumnsOf returns the indexes of the columns that belong to run set rs.
func (d *Dataset) ColumnsOf(rs int) []int {
	var cols []int
	for i, c := range d.Columns {
		if c.RunSet == rs {
			cols = append(cols, i)
		}
	}
	return cols
}

// StatusColumn returns the index of the status column of run set rs
// that determines the category of its tasks, or -1 if it has none.
// A MainStatus column is preferred over a plain Status column.
func (d *Dataset) StatusColumn(rs int) int {
	found := -1
	for i, c := range d.Columns {
		if c.RunSet != rs {
			continue
		}
		if c.Type == MainStatus {
			return i
		}
		if c.Type == Status && found < 0 {
			found = i
		}
	}
	return found
}

// ColumnName returns the name used to refer to column i on command
// lines, "runset/title".
func (d *Dataset) ColumnName(i int) string {
	c := d.Columns[i]
	if c.RunSet < len(d.RunSets) {
		return d.RunSets[c.RunSet].Label() + "/" + c.Title
	}
	return c.Title
}

// LookupColumn finds a column by name. name may be a column index,
// a "runset/title" pair as returned by ColumnName, or a bare title if
// that title is unique.
func (d *Dataset) LookupColumn(name string) (int, error) {
	if i, err := strconv.Atoi(name); err == nil {
		if i < 0 || i >= len(d.Columns) {
			return 0, fmt.Errorf("column index %d out of range", i)
		}
		return i, nil
	}
	found := -1
	for i := range d.Columns {
		if d.ColumnName(i) == name {
			return i, nil
		}
		if d.Columns[i].Title == name {
			if found >= 0 {
				return 0, fmt.Errorf("column title %q is ambiguous", name)
			}
			found = i
		}
	}
	if found < 0 {
		return 0, fmt.Errorf("unknown column %q", name)
	}
	return found, nil
}
