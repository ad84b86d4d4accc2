// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"golang.org/x/benchtable/cmd/benchtable/internal/logging"
	"golang.org/x/benchtable/tabfilter"
	"golang.org/x/benchtable/tabfmt"
	"golang.org/x/benchtable/tabplot"
)

func (a *app) plotCmd() *cobra.Command {
	var (
		filters []string
		kind    string
		columns []string
		x, y    string
		logY    bool
		out     string
	)
	cmd := &cobra.Command{
		Use:   "plot [flags] dataset",
		Short: "Plot numeric columns of a filtered result table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("missing --out file")
			}
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			ds, err := a.loadDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tab := tabfilter.NewTable(ds)
			set, err := filterSet(tab, filters)
			if err != nil {
				return err
			}
			rows, err := tab.Apply(set)
			if err != nil {
				return err
			}

			var series []tabplot.Series
			opts := tabplot.Options{Title: ds.Name, LogY: logY, Format: format}
			switch kind {
			case "quantile":
				cols, err := lookupColumns(ds, columns)
				if err != nil {
					return err
				}
				if series, err = tabplot.Quantile(ds, rows, cols); err != nil {
					return err
				}
				opts.Lines = true
				opts.XLabel = "n-th fastest result"
				if len(cols) == 1 {
					opts.YLabel = ds.ColumnName(cols[0])
				}
			case "scatter":
				cols, err := lookupColumns(ds, []string{x, y})
				if err != nil {
					return err
				}
				s, err := tabplot.Scatter(ds, rows, cols[0], cols[1])
				if err != nil {
					return err
				}
				series = []tabplot.Series{s}
				opts.XLabel = ds.ColumnName(cols[0])
				opts.YLabel = ds.ColumnName(cols[1])
			default:
				return fmt.Errorf("unknown plot kind %q: want quantile or scatter", kind)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := tabplot.Render(f, series, opts); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			logging.Debugf("wrote %d series of %d tasks to %s", len(series), len(rows), out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&filters, "filter", "f", nil, "filter `column=token`; may be repeated")
	f.StringVar(&kind, "kind", "quantile", "plot `kind`: quantile or scatter")
	f.StringArrayVar(&columns, "column", nil, "`column` of a quantile plot; may be repeated")
	f.StringVar(&x, "x", "", "X `column` of a scatter plot")
	f.StringVar(&y, "y", "", "Y `column` of a scatter plot")
	f.BoolVar(&logY, "log", false, "use a logarithmic Y axis")
	f.StringVarP(&out, "out", "o", "", "output `file`; its extension selects png or svg")
	return cmd
}

// lookupColumns resolves column names. An empty list of names means
// all numeric columns.
func lookupColumns(ds *tabfmt.Dataset, names []string) ([]int, error) {
	if len(names) == 0 {
		var cols []int
		for i, c := range ds.Columns {
			if c.Type.IsNumeric() {
				cols = append(cols, i)
			}
		}
		if len(cols) == 0 {
			return nil, fmt.Errorf("dataset has no numeric columns")
		}
		return cols, nil
	}
	cols := make([]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("missing column name")
		}
		ci, err := ds.LookupColumn(name)
		if err != nil {
			return nil, err
		}
		cols[i] = ci
	}
	return cols, nil
}
