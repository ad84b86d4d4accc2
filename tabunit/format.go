// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabunit

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/benchtable/tabfmt"
)

// Format parses raw in unit and renders it with the given number of
// significant digits (see FormatFloat). If raw is not a number, it
// returns "" and a *FormatError.
func Format(raw tabfmt.Raw, unit string, digits int) (string, error) {
	v, err := Parse(raw, unit)
	if err != nil {
		return "", err
	}
	return FormatFloat(v, digits), nil
}

// FormatFloat renders v for display in a column that declares digits
// significant digits.
//
// Non-integral values are shown with digits+1 digits after the
// decimal point. The extra digit keeps the precision that tools
// report despite floating-point representation error. Integral values,
// and all values of columns with tabfmt.NoDigits, are rounded to the
// nearest integer.
func FormatFloat(v float64, digits int) string {
	if s, ok := formatSpecial(v); ok {
		return s
	}
	if digits < 0 || v == math.Trunc(v) {
		return formatFixed(math.Round(v), 0)
	}
	return formatFixed(v, digits+1)
}

func formatSpecial(v float64) (string, bool) {
	switch {
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	case math.IsNaN(v):
		return "NaN", true
	}
	return "", false
}

func formatFixed(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		// Don't show "-0" or "-0.00".
		s = s[1:]
	}
	return s
}

// A Formatter renders numbers with a fixed number of digits after the
// decimal point.
type Formatter struct {
	Prec int // Digits after the decimal point
}

// Format renders v. Infinite values are rendered as "∞" and "-∞".
// With Prec 0, halves round away from zero as in FormatFloat.
func (f Formatter) Format(val float64) string {
	if s, ok := formatSpecial(val); ok {
		return s
	}
	if f.Prec <= 0 {
		return formatFixed(math.Round(val), 0)
	}
	return formatFixed(val, f.Prec)
}

// A Builder collects the values that will be shown together, such as
// the bounds of one range control or one column of a summary, and
// picks a single precision for all of them.
//
// The result does not depend on the order in which values are added.
// Non-finite values are ignored when choosing the precision.
//
// The zero Builder behaves like a column without declared digits.
type Builder struct {
	digits int
	set    bool
	prec   int
}

// NewBuilder returns a Builder for a column that declares digits
// significant digits.
func NewBuilder(digits int) *Builder {
	return &Builder{digits: digits, set: true}
}

// Add records a value that the built Formatter must show.
func (b *Builder) Add(vals ...float64) *Builder {
	for _, v := range vals {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		if p := b.precFor(v); p > b.prec {
			b.prec = p
		}
	}
	return b
}

// precFor returns the number of digits after the decimal point that
// FormatFloat shows for v, ignoring trailing zeros.
func (b *Builder) precFor(v float64) int {
	if !b.set || b.digits < 0 || v == math.Trunc(v) {
		return 0
	}
	s := strconv.FormatFloat(v, 'f', b.digits+1, 64)
	s = strings.TrimRight(s, "0")
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return len(s) - dot - 1
}

// Build returns the Formatter for all values added so far.
func (b *Builder) Build() Formatter {
	return Formatter{Prec: b.prec}
}
