// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfmt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// A SyntaxError reports a malformed dataset file.
type SyntaxError struct {
	FileName string
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
}

// The file format. Cells of a row are grouped by run set in the same
// order as the run sets' columns.
type fileDataset struct {
	Name    string        `json:"name,omitempty" yaml:"name"`
	RunSets []fileRunSet  `json:"runSets" yaml:"runSets"`
	Rows    []fileTaskRow `json:"rows" yaml:"rows"`
}

type fileRunSet struct {
	Tool    string       `json:"tool,omitempty" yaml:"tool"`
	Name    string       `json:"name,omitempty" yaml:"name"`
	Date    string       `json:"date,omitempty" yaml:"date"`
	Columns []fileColumn `json:"columns" yaml:"columns"`
}

type fileColumn struct {
	Title             string   `json:"title" yaml:"title"`
	Type              string   `json:"type" yaml:"type"`
	Unit              string   `json:"unit,omitempty" yaml:"unit"`
	SignificantDigits *int     `json:"significantDigits,omitempty" yaml:"significantDigits"`
	Categories        []string `json:"categories,omitempty" yaml:"categories"`
	Statuses          []string `json:"statuses,omitempty" yaml:"statuses"`
}

type fileTaskRow struct {
	Task    string       `json:"task" yaml:"task"`
	Results [][]fileCell `json:"results" yaml:"results"`
}

type fileCell struct {
	Raw      interface{} `json:"raw" yaml:"raw"`
	Href     string      `json:"href,omitempty" yaml:"href"`
	Category string      `json:"category,omitempty" yaml:"category"`
}

// ReadFile reads a dataset from the named file. Files ending in
// ".yaml" or ".yml" are read as YAML, all others as JSON.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// Read reads a dataset from r. fileName selects the encoding and is
// used in error messages.
func Read(r io.Reader, fileName string) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if fileName == "" {
		fileName = "<unknown>"
	}

	var doc gojsonschema.JSONLoader
	var fd fileDataset
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, &SyntaxError{fileName, err.Error()}
		}
		doc = gojsonschema.NewGoLoader(generic)
		if err := validate(doc, fileName); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &fd); err != nil {
			return nil, &SyntaxError{fileName, err.Error()}
		}
	default:
		doc = gojsonschema.NewBytesLoader(data)
		if err := validate(doc, fileName); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &fd); err != nil {
			return nil, &SyntaxError{fileName, err.Error()}
		}
	}
	return fd.dataset(fileName)
}

func validate(doc gojsonschema.JSONLoader, fileName string) error {
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return &SyntaxError{fileName, err.Error()}
	}
	if !res.Valid() {
		var msgs []string
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return &SyntaxError{fileName, strings.Join(msgs, "; ")}
	}
	return nil
}

func (fd *fileDataset) dataset(fileName string) (*Dataset, error) {
	ds := &Dataset{Name: fd.Name}
	var perRunSet []int
	for rsi, frs := range fd.RunSets {
		ds.RunSets = append(ds.RunSets, RunSet{Tool: frs.Tool, Name: frs.Name, Date: frs.Date})
		perRunSet = append(perRunSet, len(frs.Columns))
		for _, fc := range frs.Columns {
			typ, ok := ParseColumnType(fc.Type)
			if !ok {
				return nil, &SyntaxError{fileName, fmt.Sprintf("column %q: unknown type %q", fc.Title, fc.Type)}
			}
			col := Column{
				Title:             fc.Title,
				Type:              typ,
				Unit:              fc.Unit,
				SignificantDigits: NoDigits,
				Categories:        fc.Categories,
				Statuses:          fc.Statuses,
				RunSet:            rsi,
			}
			if fc.SignificantDigits != nil {
				col.SignificantDigits = *fc.SignificantDigits
			}
			ds.Columns = append(ds.Columns, col)
		}
	}

	for i, fr := range fd.Rows {
		if len(fr.Results) != len(perRunSet) {
			return nil, &SyntaxError{fileName, fmt.Sprintf("task %q: have results for %d run sets, want %d", fr.Task, len(fr.Results), len(perRunSet))}
		}
		row := Row{Task: fr.Task, Index: i, Cells: make([]Cell, 0, len(ds.Columns))}
		for rsi, cells := range fr.Results {
			if len(cells) != perRunSet[rsi] {
				return nil, &SyntaxError{fileName, fmt.Sprintf("task %q: run set %d has %d cells, want %d", fr.Task, rsi, len(cells), perRunSet[rsi])}
			}
			for _, fc := range cells {
				raw, err := toRaw(fc.Raw)
				if err != nil {
					return nil, &SyntaxError{fileName, fmt.Sprintf("task %q: %v", fr.Task, err)}
				}
				row.Cells = append(row.Cells, Cell{Raw: raw, Href: fc.Href, Category: fc.Category})
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func toRaw(v interface{}) (Raw, error) {
	switch v := v.(type) {
	case nil:
		return Raw{}, nil
	case string:
		return StringRaw(v), nil
	case float64:
		return NumberRaw(v), nil
	case int:
		return NumberRaw(float64(v)), nil
	case int64:
		return NumberRaw(float64(v)), nil
	case uint64:
		return NumberRaw(float64(v)), nil
	case bool:
		// YAML turns bare true/false into booleans; tools
		// report these as status text.
		if v {
			return StringRaw("true"), nil
		}
		return StringRaw("false"), nil
	}
	return Raw{}, fmt.Errorf("unsupported cell value %v (%T)", v, v)
}

// WriteJSON writes ds to w in the format accepted by Read.
func WriteJSON(w io.Writer, ds *Dataset) error {
	fd := fileDataset{Name: ds.Name, RunSets: make([]fileRunSet, len(ds.RunSets))}
	for i, rs := range ds.RunSets {
		fd.RunSets[i] = fileRunSet{Tool: rs.Tool, Name: rs.Name, Date: rs.Date, Columns: []fileColumn{}}
	}
	for _, c := range ds.Columns {
		fc := fileColumn{Title: c.Title, Type: c.Type.String(), Unit: c.Unit, Categories: c.Categories, Statuses: c.Statuses}
		if c.SignificantDigits != NoDigits {
			digits := c.SignificantDigits
			fc.SignificantDigits = &digits
		}
		fd.RunSets[c.RunSet].Columns = append(fd.RunSets[c.RunSet].Columns, fc)
	}
	fd.Rows = make([]fileTaskRow, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		fr := fileTaskRow{Task: row.Task, Results: make([][]fileCell, len(ds.RunSets))}
		for i := range fr.Results {
			fr.Results[i] = []fileCell{}
		}
		for ci, cell := range row.Cells {
			fc := fileCell{Href: cell.Href, Category: cell.Category}
			switch cell.Raw.Kind {
			case String:
				fc.Raw = cell.Raw.Str
			case Number:
				if math.IsInf(cell.Raw.Num, 0) || math.IsNaN(cell.Raw.Num) {
					// JSON has no literal for these.
					fc.Raw = cell.Raw.Text()
				} else {
					fc.Raw = cell.Raw.Num
				}
			}
			rs := ds.Columns[ci].RunSet
			fr.Results[rs] = append(fr.Results[rs], fc)
		}
		fd.Rows = append(fd.Rows, fr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(fd)
}
