// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/google/safehtml/template"

	"golang.org/x/benchtable/tabstat"
)

const htmlSource = `<table class='benchtable'>
<thead>
<tr><th>task{{range .Headers}}<th>{{.}}{{end}}
</thead>
{{- if .Rows}}
<tbody>
{{range .Rows -}}
<tr><td>{{.Task}}{{range .Cells}}{{if eq .Class "correct"}}<td class='correct'>{{else if eq .Class "wrong"}}<td class='wrong'>{{else if eq .Class "other"}}<td class='other'>{{else}}<td>{{end}}{{.Text}}{{end}}
{{end -}}
</tbody>
{{- end}}
{{- if .Stats}}
<tbody class='stats'>
<tr><th>statistics ({{.Field}})
{{range .Stats -}}
<tr><td>{{.Title}}{{range .Cells}}<td>{{.}}{{end}}
{{end -}}
</tbody>
{{- end}}
</table>
<p>{{.Shown}} of {{.Total}} tasks</p>
`

var htmlTemplate = template.Must(template.New("benchtable").Parse(htmlSource))

type htmlCell struct {
	Text  string
	Class string
}

type htmlRow struct {
	Task  string
	Cells []htmlCell
}

type htmlStats struct {
	Title string
	Cells []string
}

type htmlPage struct {
	Headers []string
	Rows    []htmlRow
	Stats   []htmlStats
	Field   string
	Shown   int
	Total   int
}

func (v *view) writeHTML(w io.Writer) error {
	p := htmlPage{
		Field: v.field.String(),
		Shown: len(v.rows),
		Total: v.total,
	}
	for _, ci := range v.order {
		h := v.ds.ColumnName(ci)
		if u := v.ds.Columns[ci].Unit; u != "" {
			h += " (" + u + ")"
		}
		p.Headers = append(p.Headers, h)
	}
	if v.showRows {
		for _, row := range v.rows {
			hr := htmlRow{Task: row.Task}
			for _, ci := range v.order {
				c := htmlCell{Text: v.cellText(ci, row.Cells[ci])}
				if v.ds.Columns[ci].Type.IsStatus() {
					c.Class = statusClass(row.Cells[ci].Category)
				}
				hr.Cells = append(hr.Cells, c)
			}
			p.Rows = append(p.Rows, hr)
		}
	}
	if v.showStats {
		for i, r := range v.stats {
			hs := htmlStats{Title: r.Desc.Title}
			for _, ci := range v.order {
				hs.Cells = append(hs.Cells, v.cells[i][ci])
			}
			p.Stats = append(p.Stats, hs)
		}
	}
	return htmlTemplate.Execute(w, p)
}

// statusClass returns the CSS class of a status cell in category.
func statusClass(category string) string {
	switch category {
	case "":
		return ""
	case tabstat.CategoryCorrect:
		return "correct"
	case tabstat.CategoryWrong:
		return "wrong"
	}
	return "other"
}
