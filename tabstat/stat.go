// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabstat

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Kind says what a Stat holds.
type Kind int

const (
	// NoData means there was nothing to aggregate. It is distinct
	// from a count or sum of zero.
	NoData Kind = iota
	// Count is a number of tasks, in N.
	Count
	// Summary describes the values of a numeric column.
	Summary
	// Score is the sum of the weights of a set of tasks, in Sum.
	Score
)

func (k Kind) String() string {
	switch k {
	case NoData:
		return "no data"
	case Count:
		return "count"
	case Summary:
		return "summary"
	case Score:
		return "score"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Stat is one cell of an aggregate row.
type Stat struct {
	Kind Kind

	// N is the number of tasks or values aggregated.
	N int

	// Summary statistics. For a Count, Sum is N. For a Score, only
	// Sum is set.
	Sum, Min, Max, Mean, Median, StdDev float64
}

// Defined reports whether s holds data.
func (s Stat) Defined() bool {
	return s.Kind != NoData
}

// CountStat returns a Count of n tasks.
func CountStat(n int) Stat {
	return Stat{Kind: Count, N: n, Sum: float64(n)}
}

// ScoreStat returns the Score of n tasks whose weights sum to sum.
func ScoreStat(n int, sum float64) Stat {
	return Stat{Kind: Score, N: n, Sum: sum}
}

// NewSummary summarizes xs. It returns a NoData Stat if xs is empty.
//
// A NaN in xs makes every statistic NaN. If xs holds both infinities,
// the sum, mean and standard deviation are NaN. If it holds only one,
// the sum and mean take its sign and the standard deviation is +Inf.
// StdDev is the population standard deviation.
func NewSummary(xs []float64) Stat {
	if len(xs) == 0 {
		return Stat{Kind: NoData}
	}
	n := len(xs)
	for _, x := range xs {
		if math.IsNaN(x) {
			nan := math.NaN()
			return Stat{Summary, n, nan, nan, nan, nan, nan, nan}
		}
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	sample := stats.Sample{Xs: sorted, Sorted: true}

	st := Stat{Kind: Summary, N: n}
	st.Min, st.Max = sample.Bounds()
	switch {
	case math.IsInf(st.Min, -1) && math.IsInf(st.Max, 1):
		st.Sum, st.Mean, st.StdDev = math.NaN(), math.NaN(), math.NaN()
	case math.IsInf(st.Max, 1):
		st.Sum, st.Mean, st.StdDev = math.Inf(1), math.Inf(1), math.Inf(1)
	case math.IsInf(st.Min, -1):
		st.Sum, st.Mean, st.StdDev = math.Inf(-1), math.Inf(-1), math.Inf(1)
	default:
		st.Sum = sample.Sum()
		st.Mean = st.Sum / float64(n)
		var ss float64
		for _, x := range sorted {
			d := x - st.Mean
			ss += d * d
		}
		st.StdDev = math.Sqrt(ss / float64(n))
	}

	// Quantile interpolates between neighbors, which gives NaN
	// next to an infinity even when the middle value is defined.
	st.Median = sample.Quantile(0.5)
	if math.IsNaN(st.Median) {
		mid := sorted[(n-1)/2 : n/2+1]
		st.Median = (mid[0] + mid[len(mid)-1]) / 2
	}
	return st
}

// A Field selects the statistic shown for Summary cells.
type Field int

const (
	FieldSum Field = iota
	FieldMean
	FieldMedian
	FieldMin
	FieldMax
	FieldStdDev
)

var fieldNames = []string{"sum", "mean", "median", "min", "max", "stdev"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField returns the Field named s.
func ParseField(s string) (Field, error) {
	for i, name := range fieldNames {
		if s == name {
			return Field(i), nil
		}
	}
	if s == "avg" {
		return FieldMean, nil
	}
	return 0, fmt.Errorf("unknown statistic %q (want one of sum, mean, median, min, max, stdev)", s)
}

// Value returns the number s shows for field f. Counts and scores
// ignore f. The result is false for NoData.
func (s Stat) Value(f Field) (float64, bool) {
	switch s.Kind {
	case NoData:
		return 0, false
	case Count:
		return float64(s.N), true
	case Score:
		return s.Sum, true
	}
	switch f {
	case FieldMean:
		return s.Mean, true
	case FieldMedian:
		return s.Median, true
	case FieldMin:
		return s.Min, true
	case FieldMax:
		return s.Max, true
	case FieldStdDev:
		return s.StdDev, true
	}
	return s.Sum, true
}
