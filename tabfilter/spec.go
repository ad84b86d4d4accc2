// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfilter

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/benchtable/tabfmt"
	"golang.org/x/benchtable/tabunit"
)

// TaskColumn is the column number of the task name, which is not one
// of the dataset's columns but can be filtered by text.
const TaskColumn = -1

// NothingToken is the token of a selection filter with no selected
// categories or statuses. It matches no row.
const NothingToken = "##########"

// A Kind is the kind of constraint a Spec places on its column.
type Kind int

const (
	// Range keeps numeric values within Bounds.
	Range Kind = iota
	// Text keeps values containing Substring.
	Text
	// Selection keeps status cells whose category is in
	// Categories or whose status is in Statuses.
	Selection
	// Nothing keeps no rows. It is the selection the user gets by
	// deselecting every category and status.
	Nothing
)

func (k Kind) String() string {
	switch k {
	case Range:
		return "range"
	case Text:
		return "text"
	case Selection:
		return "selection"
	case Nothing:
		return "nothing"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Bounds is a closed numeric interval. An unset bound is infinite.
type Bounds struct {
	Min, Max float64
}

// Unbounded is the interval containing every number.
var Unbounded = Bounds{math.Inf(-1), math.Inf(1)}

// Contains reports whether v lies within b.
func (b Bounds) Contains(v float64) bool {
	return b.Min <= v && v <= b.Max
}

// A Spec is a constraint on one column. Specs are values; changing a
// filter means replacing its Spec.
type Spec struct {
	Column int
	Kind   Kind

	Bounds     Bounds   // Range
	Substring  string   // Text
	Categories []string // Selection, sorted
	Statuses   []string // Selection, sorted
}

// RangeSpec returns a Range constraint on column.
func RangeSpec(column int, b Bounds) Spec {
	return Spec{Column: column, Kind: Range, Bounds: b}
}

// TextSpec returns a Text constraint on column.
func TextSpec(column int, substring string) Spec {
	return Spec{Column: column, Kind: Text, Substring: substring}
}

// SelectionSpec returns a Selection constraint on column. If nothing
// is selected, the result has Kind Nothing.
func SelectionSpec(column int, categories, statuses []string) Spec {
	if len(categories) == 0 && len(statuses) == 0 {
		return Spec{Column: column, Kind: Nothing}
	}
	return Spec{
		Column:     column,
		Kind:       Selection,
		Categories: sortedCopy(categories),
		Statuses:   sortedCopy(statuses),
	}
}

func sortedCopy(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	c := append([]string(nil), s...)
	sort.Strings(c)
	return c
}

// A ParseError reports a malformed filter token. The filter that was
// being edited keeps its previous value.
type ParseError struct {
	Token string // The token being parsed
	Off   int    // Byte offset of the error in Token
	Msg   string
}

func (e *ParseError) Error() string {
	// Translate byte offset to a rune offset.
	pos := 0
	for i, r := range e.Token {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			pos++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Token, pos, "")
}

// Parse parses the token of a filter on column, which is described by
// col. natural is the range of values that occur in a numeric column;
// an empty side of a range token stands for the natural bound.
//
// The empty token places no constraint on the column. For numeric
// columns, tokens have the form "min:max" where either side may be
// empty. For text columns and the task column, the token is the
// substring to look for. For status columns, the token is either
// NothingToken or a comma-separated list of "category:name" and
// "status:name" entries.
func Parse(column int, col tabfmt.Column, natural Bounds, token string) (Spec, error) {
	switch {
	case column == TaskColumn:
		return TextSpec(column, token), nil
	case col.Type.IsNumeric():
		return parseRange(column, col.Unit, natural, token)
	case col.Type.IsStatus():
		return parseSelection(column, col, token)
	}
	return TextSpec(column, token), nil
}

func parseRange(column int, unit string, natural Bounds, token string) (Spec, error) {
	if strings.TrimSpace(token) == "" {
		return RangeSpec(column, natural), nil
	}
	colon := strings.IndexByte(token, ':')
	if colon < 0 {
		return Spec{}, &ParseError{token, len(token), "expected min:max"}
	}
	b := natural
	side := func(s string, off int, dst *float64) error {
		s = tabunit.Strip(s, unit)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &ParseError{token, off, fmt.Sprintf("bad number %q", s)}
		}
		*dst = v
		return nil
	}
	if err := side(token[:colon], 0, &b.Min); err != nil {
		return Spec{}, err
	}
	if err := side(token[colon+1:], colon+1, &b.Max); err != nil {
		return Spec{}, err
	}
	return RangeSpec(column, b), nil
}

func parseSelection(column int, col tabfmt.Column, token string) (Spec, error) {
	switch strings.TrimSpace(token) {
	case "":
		return SelectionSpec(column, col.Categories, col.Statuses), nil
	case NothingToken:
		return Spec{Column: column, Kind: Nothing}, nil
	}
	var cats, stats []string
	off := 0
	for _, entry := range strings.Split(token, ",") {
		start := off
		off += len(entry) + 1
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		kind, name, ok := strings.Cut(entry, ":")
		if !ok {
			return Spec{}, &ParseError{token, start, "expected category:name or status:name"}
		}
		name, err := url.QueryUnescape(name)
		if err != nil {
			return Spec{}, &ParseError{token, start, err.Error()}
		}
		switch kind {
		case "category":
			cats = append(cats, name)
		case "status":
			stats = append(stats, name)
		default:
			return Spec{}, &ParseError{token, start, fmt.Sprintf("unknown selection kind %q", kind)}
		}
	}
	if cats == nil && stats == nil {
		return Spec{}, &ParseError{token, 0, "empty selection"}
	}
	return SelectionSpec(column, cats, stats), nil
}

// Token returns the serialized form of s, as accepted by Parse. A
// bound that is infinite or equal to the natural bound is left empty,
// and a range with both sides empty serializes to "".
func (s Spec) Token(natural Bounds) string {
	switch s.Kind {
	case Range:
		lo := formatBound(s.Bounds.Min, natural.Min)
		hi := formatBound(s.Bounds.Max, natural.Max)
		if lo == "" && hi == "" {
			return ""
		}
		return lo + ":" + hi
	case Text:
		return s.Substring
	case Selection:
		entries := make([]string, 0, len(s.Categories)+len(s.Statuses))
		for _, c := range s.Categories {
			entries = append(entries, "category:"+url.QueryEscape(c))
		}
		for _, st := range s.Statuses {
			entries = append(entries, "status:"+url.QueryEscape(st))
		}
		if len(entries) == 0 {
			return NothingToken
		}
		return strings.Join(entries, ",")
	case Nothing:
		return NothingToken
	}
	panic(fmt.Sprintf("unknown filter kind %v", s.Kind))
}

func formatBound(v, natural float64) string {
	if math.IsInf(v, 0) || v == natural {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsActive reports whether s constrains its column at all. It is false
// for an empty text filter, a range spanning the natural bounds, and a
// selection of every category and status that col declares.
func IsActive(s Spec, col tabfmt.Column, natural Bounds) bool {
	switch s.Kind {
	case Range:
		return s.Token(natural) != ""
	case Text:
		return s.Substring != ""
	case Selection:
		if len(col.Categories) == 0 && len(col.Statuses) == 0 {
			return true
		}
		return !(containsAll(s.Categories, col.Categories) && containsAll(s.Statuses, col.Statuses))
	}
	return true
}

func containsAll(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
