// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabunit interprets table cell values as numbers in a
// column's unit and formats numbers with a column's declared
// precision.
package tabunit

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/benchtable/tabfmt"
)

// A FormatError reports a value that is not a number in its column's
// unit. Callers treat such values as absent, never as zero.
type FormatError struct {
	Value string // textual form of the offending value
	Unit  string
	Msg   string
}

func (e *FormatError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("value %q (unit %q): %s", e.Value, e.Unit, e.Msg)
	}
	return fmt.Sprintf("value %q: %s", e.Value, e.Msg)
}

// Strip removes surrounding space and the unit suffix from s. If s
// does not end in unit, only the space is removed.
func Strip(s, unit string) string {
	s = strings.TrimSpace(s)
	if unit != "" && strings.HasSuffix(s, unit) {
		s = strings.TrimSpace(s[:len(s)-len(unit)])
	}
	return s
}

// Parse interprets raw as a number in the given unit. Values that
// are already numeric are returned as is. Missing values and text
// that is not a number after stripping unit fail with a *FormatError.
func Parse(raw tabfmt.Raw, unit string) (float64, error) {
	switch raw.Kind {
	case tabfmt.Number:
		return raw.Num, nil
	case tabfmt.String:
		s := Strip(raw.Str, unit)
		if s == "" {
			return 0, &FormatError{raw.Str, unit, "empty value"}
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				// Out of range values parse to ±Inf,
				// which is what a table can show.
				return v, nil
			}
			return 0, &FormatError{raw.Str, unit, "not a number"}
		}
		return v, nil
	}
	return 0, &FormatError{"", unit, "missing value"}
}
