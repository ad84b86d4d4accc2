// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabstat

import (
	"math"
	"testing"
)

func TestNewSummary(t *testing.T) {
	inf := math.Inf(1)
	check := func(xs []float64, want Stat) {
		t.Helper()
		got := NewSummary(xs)
		if !same(got, want) {
			t.Errorf("NewSummary(%v) = %+v, want %+v", xs, got, want)
		}
	}
	check(nil, Stat{Kind: NoData})
	check([]float64{5}, Stat{Summary, 1, 5, 5, 5, 5, 5, 0})
	check([]float64{3, 1, 2}, Stat{Summary, 3, 6, 1, 3, 2, 2, math.Sqrt(2.0 / 3)})
	check([]float64{4, 1, 3, 2}, Stat{Summary, 4, 10, 1, 4, 2.5, 2.5, math.Sqrt(1.25)})
	check([]float64{1, math.NaN(), 3}, Stat{Summary, 3, nan(), nan(), nan(), nan(), nan(), nan()})
	check([]float64{1, inf, 3}, Stat{Summary, 3, inf, 1, inf, inf, 3, inf})
	check([]float64{-inf, 1, 3}, Stat{Summary, 3, -inf, -inf, 3, -inf, 1, inf})
	check([]float64{-inf, 1, 3, inf}, Stat{Summary, 4, nan(), -inf, inf, nan(), 2, nan()})
	check([]float64{2, inf, inf}, Stat{Summary, 3, inf, 2, inf, inf, inf, inf})
	check([]float64{inf, inf}, Stat{Summary, 2, inf, inf, inf, inf, inf, inf})
	check([]float64{0.5, 0.25, 4, 1, 8}, Stat{Summary, 5, 13.75, 0.25, 8, 2.75, 1, math.Sqrt(8.6875)})
}

func TestNewSummaryDoesNotSort(t *testing.T) {
	xs := []float64{3, 1, 2}
	NewSummary(xs)
	if xs[0] != 3 || xs[1] != 1 || xs[2] != 2 {
		t.Errorf("NewSummary reordered its argument: %v", xs)
	}
}

func TestStatValue(t *testing.T) {
	st := NewSummary([]float64{1, 2, 6})
	for _, tc := range []struct {
		field string
		want  float64
	}{
		{"sum", 9}, {"mean", 3}, {"avg", 3}, {"median", 2}, {"min", 1}, {"max", 6},
	} {
		f, err := ParseField(tc.field)
		if err != nil {
			t.Fatal(err)
		}
		if got, ok := st.Value(f); !ok || got != tc.want {
			t.Errorf("Value(%v) = %v, %v, want %v", f, got, ok, tc.want)
		}
	}
	if _, err := ParseField("mode"); err == nil {
		t.Errorf("ParseField(mode): expected error")
	}
	if v, ok := CountStat(7).Value(FieldMedian); !ok || v != 7 {
		t.Errorf("count Value = %v, %v, want 7", v, ok)
	}
	if _, ok := (Stat{}).Value(FieldSum); ok {
		t.Errorf("NoData Value reported ok")
	}
}

func nan() float64 { return math.NaN() }

// same compares Stats, treating NaNs as equal and allowing for
// rounding in StdDev.
func same(a, b Stat) bool {
	eq := func(x, y float64) bool {
		if math.IsNaN(x) || math.IsNaN(y) {
			return math.IsNaN(x) && math.IsNaN(y)
		}
		if math.IsInf(x, 0) || math.IsInf(y, 0) {
			return x == y
		}
		return math.Abs(x-y) < 1e-9
	}
	return a.Kind == b.Kind && a.N == b.N &&
		eq(a.Sum, b.Sum) && eq(a.Min, b.Min) && eq(a.Max, b.Max) &&
		eq(a.Mean, b.Mean) && eq(a.Median, b.Median) && eq(a.StdDev, b.StdDev)
}
