// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"golang.org/x/benchtable/cmd/benchtable/internal/logging"
	"golang.org/x/benchtable/tabfilter"
	"golang.org/x/benchtable/tabfmt"
	"golang.org/x/benchtable/tabstat"
	"golang.org/x/benchtable/tabunit"
)

func (a *app) showCmd() *cobra.Command {
	var (
		filters []string
		noRows  bool
		noStats bool
	)
	cmd := &cobra.Command{
		Use:   "show [flags] dataset",
		Short: "Print a filtered result table and its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v, err := a.newView(cmd, ds, filters)
			if err != nil {
				return err
			}
			v.showRows = !noRows
			v.showStats = !noStats
			return v.write(cmd.OutOrStdout(), a.cfg.Format)
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&filters, "filter", "f", nil, "filter `column=token`; may be repeated")
	f.String("format", "text", "output `format`: text, csv, html or json")
	f.String("stat", "sum", "summary `field` of numeric columns: sum, mean, median, min, max or stdev")
	f.BoolVar(&noRows, "no-rows", false, "omit the task rows")
	f.BoolVar(&noStats, "no-stats", false, "omit the aggregate rows")
	for _, key := range []string{"format", "stat"} {
		if err := a.v.BindPFlag(key, f.Lookup(key)); err != nil {
			panic(err)
		}
	}
	return cmd
}

// filterSet builds the filter set described by flags of the form
// "column=token". Tokens that do not parse are reported and skipped.
func filterSet(tab *tabfilter.Table, flags []string) (tabfilter.Set, error) {
	ds := tab.Dataset()
	var set tabfilter.Set
	for _, fl := range flags {
		name, token, ok := strings.Cut(fl, "=")
		if !ok {
			return set, fmt.Errorf("bad filter %q: want column=token", fl)
		}
		column := tabfilter.TaskColumn
		if name != "task" {
			var err error
			if column, err = ds.LookupColumn(name); err != nil {
				return set, fmt.Errorf("filter %q: %w", fl, err)
			}
		}
		next, err := tab.Edit(set, column, token)
		if err != nil {
			logging.Warnf("ignoring filter on %s: %v", name, err)
			continue
		}
		set = next
	}
	return set, nil
}

// A view is a filtered dataset ready to be written.
type view struct {
	ds    *tabfmt.Dataset
	order []int // columns in display order
	rows  []tabfmt.Row
	total int

	stats []tabstat.AggregateRow
	field tabstat.Field
	cells [][]string // formatted stats

	showRows, showStats bool
}

func (a *app) newView(cmd *cobra.Command, ds *tabfmt.Dataset, filters []string) (*view, error) {
	field, err := tabstat.ParseField(a.cfg.Stat)
	if err != nil {
		return nil, err
	}
	tab := tabfilter.NewTable(ds)
	set, err := filterSet(tab, filters)
	if err != nil {
		return nil, err
	}
	logging.Debugf("%d filters, generation %d", set.Len(), set.Generation())
	rows, err := tab.Apply(set)
	if err != nil {
		return nil, err
	}

	weights := a.weights()
	tmpl := tabstat.NewTemplate(ds, weights)
	rc := tabstat.NewRecomputer(tab, tmpl, weights)
	res, err := rc.Submit(cmd.Context(), set).Wait()
	if err != nil {
		return nil, err
	}

	v := &view{
		ds:    ds,
		rows:  rows,
		total: len(ds.Rows),
		stats: res.Rows,
		field: field,
		cells: tabstat.Format(ds, res.Rows, field),
	}
	for rs := range ds.RunSets {
		v.order = append(v.order, ds.ColumnsOf(rs)...)
	}
	return v, nil
}

func (v *view) write(w io.Writer, format string) error {
	switch format {
	case "text", "":
		return v.writeText(w)
	case "csv":
		return v.writeCSV(w)
	case "html":
		return v.writeHTML(w)
	case "json":
		return v.writeJSON(w)
	}
	return fmt.Errorf("unknown format %q: want text, csv, html or json", format)
}

// cellText returns the display text of a task cell. Numbers are
// rounded to the column's precision; anything else is shown as is.
func (v *view) cellText(ci int, cell tabfmt.Cell) string {
	col := v.ds.Columns[ci]
	if col.Type.IsNumeric() && cell.Raw.Kind != tabfmt.Missing {
		if s, err := tabunit.Format(cell.Raw, col.Unit, col.SignificantDigits); err == nil {
			return s
		}
	}
	return cell.Raw.Text()
}

func (v *view) header(ci int) string {
	col := v.ds.Columns[ci]
	if col.Unit != "" {
		return fmt.Sprintf("%s (%s)", col.Title, col.Unit)
	}
	return col.Title
}

func (v *view) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	rec := []string{"task"}
	for _, ci := range v.order {
		rec = append(rec, v.ds.ColumnName(ci))
	}
	cw.Write(rec)
	if v.showRows {
		for _, row := range v.rows {
			rec = append(rec[:0], row.Task)
			for _, ci := range v.order {
				rec = append(rec, v.cellText(ci, row.Cells[ci]))
			}
			cw.Write(rec)
		}
	}
	if v.showStats {
		for i, r := range v.stats {
			rec = append(rec[:0], r.Desc.ID)
			for _, ci := range v.order {
				rec = append(rec, v.cells[i][ci])
			}
			cw.Write(rec)
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonView struct {
	Name    string      `json:"name,omitempty"`
	Columns []string    `json:"columns"`
	Tasks   int         `json:"tasks"`
	Shown   int         `json:"shown"`
	Rows    []jsonRow   `json:"rows,omitempty"`
	Stat    string      `json:"stat,omitempty"`
	Stats   []jsonStats `json:"stats,omitempty"`
}

type jsonRow struct {
	Task   string   `json:"task"`
	Values []string `json:"values"`
}

type jsonStats struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Values []string `json:"values"`
}

func (v *view) writeJSON(w io.Writer) error {
	out := jsonView{Name: v.ds.Name, Tasks: v.total, Shown: len(v.rows)}
	for _, ci := range v.order {
		out.Columns = append(out.Columns, v.ds.ColumnName(ci))
	}
	if v.showRows {
		for _, row := range v.rows {
			jr := jsonRow{Task: row.Task}
			for _, ci := range v.order {
				jr.Values = append(jr.Values, v.cellText(ci, row.Cells[ci]))
			}
			out.Rows = append(out.Rows, jr)
		}
	}
	if v.showStats {
		out.Stat = v.field.String()
		for i, r := range v.stats {
			js := jsonStats{ID: r.Desc.ID, Title: r.Desc.Title}
			for _, ci := range v.order {
				js.Values = append(js.Values, v.cells[i][ci])
			}
			out.Stats = append(out.Stats, js)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(out)
}
