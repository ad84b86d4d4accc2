// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabstat

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/benchtable/tabfmt"
)

// Well-known result categories.
const (
	CategoryCorrect            = "correct"
	CategoryCorrectUnconfirmed = "correct-unconfirmed"
	CategoryWrong              = "wrong"
)

// A Class is the classification of a raw status string. Classes are
// bits, so a set of classes is a Class too.
type Class uint8

const (
	ClassTrue Class = 1 << iota
	ClassFalse
	ClassOther

	// ClassAny selects every class.
	ClassAny = ClassTrue | ClassFalse | ClassOther
)

func (c Class) String() string {
	switch c {
	case ClassTrue:
		return "true"
	case ClassFalse:
		return "false"
	case ClassOther:
		return "other"
	case ClassAny:
		return "any"
	}
	var parts []string
	for _, b := range []Class{ClassTrue, ClassFalse, ClassOther} {
		if c&b != 0 {
			parts = append(parts, b.String())
		}
	}
	return strings.Join(parts, "|")
}

// Classify returns the class of a tool's status string. "true" is
// ClassTrue and any status starting with "false", such as
// "false(unreach-call)", is ClassFalse.
func Classify(status string) Class {
	switch {
	case status == "true":
		return ClassTrue
	case strings.HasPrefix(status, "false"):
		return ClassFalse
	}
	return ClassOther
}

// Weights maps results to the score they contribute. A key is either
// a category, such as "wrong", or a category and class, such as
// "wrong:true". The more specific key wins.
type Weights map[string]float64

// DefaultWeights returns the usual scoring scheme for verification
// results.
func DefaultWeights() Weights {
	return Weights{
		"correct:true":  2,
		"correct:false": 1,
		"wrong:true":    -12,
		"wrong:false":   -6,
	}
}

// Weight returns the score of a result with the given category and
// class. Results without a weight score 0.
func (w Weights) Weight(category string, class Class) float64 {
	if v, ok := w[category+":"+class.String()]; ok {
		return v
	}
	return w[category]
}

// A RowDesc describes one aggregate row: which tasks it covers and
// how it is shown. It does not depend on the rows being aggregated,
// so a template of RowDescs is built once per dataset.
type RowDesc struct {
	ID     string
	Title  string
	Indent int

	// Category selects tasks of one category. The empty string
	// selects every task that has a status.
	Category string

	// Classes selects tasks by the class of their status.
	Classes Class

	// Score rows sum the weights of the selected tasks instead of
	// counting them.
	Score bool
}

// Selects reports whether d covers a task with the given status
// category and status text. Tasks without status are never covered.
func (d RowDesc) Selects(category, status string) bool {
	if status == "" {
		return false
	}
	if d.Category != "" && d.Category != category {
		return false
	}
	return d.Classes&Classify(status) != 0
}

// NewTemplate returns the aggregate rows shown for ds: the total,
// the correct, unconfirmed and incorrect results split by class, one
// row for every other category the status columns declare, and a
// score row if weights is not empty.
func NewTemplate(ds *tabfmt.Dataset, weights Weights) []RowDesc {
	tmpl := []RowDesc{
		{ID: "total", Title: "all results", Classes: ClassAny},
	}
	split := func(id, title, category string) {
		tmpl = append(tmpl,
			RowDesc{ID: id, Title: title, Indent: 1, Category: category, Classes: ClassTrue | ClassFalse},
			RowDesc{ID: id + "_true", Title: "true", Indent: 2, Category: category, Classes: ClassTrue},
			RowDesc{ID: id + "_false", Title: "false", Indent: 2, Category: category, Classes: ClassFalse},
		)
	}
	split("correct", "correct results", CategoryCorrect)
	split("correct_unconfirmed", "correct, but unconfirmed", CategoryCorrectUnconfirmed)
	split("wrong", "incorrect results", CategoryWrong)

	known := map[string]bool{
		CategoryCorrect:            true,
		CategoryCorrectUnconfirmed: true,
		CategoryWrong:              true,
	}
	var extra []string
	for _, col := range ds.Columns {
		if !col.Type.IsStatus() {
			continue
		}
		for _, c := range col.Categories {
			if !known[c] {
				known[c] = true
				extra = append(extra, c)
			}
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		tmpl = append(tmpl, RowDesc{
			ID: "category_" + c, Title: c, Indent: 1,
			Category: c, Classes: ClassAny,
		})
	}

	if len(weights) > 0 {
		tmpl = append(tmpl, RowDesc{ID: "score", Title: "score", Classes: ClassAny, Score: true})
	}
	return tmpl
}

// LookupRow returns the index of the row with the given ID in tmpl.
func LookupRow(tmpl []RowDesc, id string) (int, error) {
	for i, d := range tmpl {
		if d.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no aggregate row %q", id)
}
