// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDataset = `{
	"name": "demo",
	"runSets": [
		{"tool": "cpa", "name": "default", "columns": [
			{"title": "status", "type": "main_status", "categories": ["correct", "error", "wrong"], "statuses": ["TIMEOUT", "false", "true"]},
			{"title": "cputime", "type": "measure", "unit": "s", "significantDigits": 2}
		]}
	],
	"rows": [
		{"task": "a.c", "results": [[{"raw": "true", "category": "correct"}, {"raw": "1.5s"}]]},
		{"task": "b.c", "results": [[{"raw": "false", "category": "wrong"}, {"raw": 2.25}]]},
		{"task": "c.c", "results": [[{"raw": "TIMEOUT", "category": "error"}, {"raw": "900s"}]]}
	]
}`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.json")
	if err := os.WriteFile(path, []byte(testDataset), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the benchtable command with args and returns its
// output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("benchtable %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestShowText(t *testing.T) {
	path := writeDataset(t)
	out := mustRun(t, "show", "-f", "cputime=:3", path)
	for _, want := range []string{"cpa default", "cputime (s)", "a.c", "1.500", "b.c", "statistics (sum)", "all results", "2 of 3 tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "c.c") {
		t.Errorf("filtered task c.c shown:\n%s", out)
	}
}

func TestShowCSV(t *testing.T) {
	path := writeDataset(t)
	check := func(want string, args ...string) {
		t.Helper()
		out := mustRun(t, append([]string{"show", "--format", "csv"}, args...)...)
		if !strings.Contains(out, want) {
			t.Errorf("%v: output lacks %q:\n%s", args, want, out)
		}
	}
	check("task,cpa default/status,cpa default/cputime\n", path)
	check("a.c,true,1.500\nb.c,false,2.250\n", "-f", "cputime=:3", path)
	check("total,2,3.75\n", "-f", "cputime=:3", path)
	check("score,-4,\n", "-f", "cputime=:3", path)
	check("total,2,2.25\n", "-f", "cputime=:3", "--stat", "max", path)
	check("total,1,900\n", "-f", "status=category:error", path)
}

func TestShowBadFilterKeepsRows(t *testing.T) {
	path := writeDataset(t)
	logFile := filepath.Join(t.TempDir(), "benchtable.log")
	out := mustRun(t, "--log-file", logFile, "show", "--format", "csv", "-f", "cputime=x:", path)
	for _, task := range []string{"a.c", "b.c", "c.c"} {
		if !strings.Contains(out, task+",") {
			t.Errorf("output lacks %s:\n%s", task, out)
		}
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ignoring filter on cputime") {
		t.Errorf("log lacks filter warning:\n%s", data)
	}

	// A later bad token leaves the earlier filter in place.
	out = mustRun(t, "show", "--format", "csv", "-f", "cputime=:3", "-f", "cputime=x:", path)
	if strings.Contains(out, "c.c,") {
		t.Errorf("earlier filter dropped:\n%s", out)
	}
}

func TestShowUnknownColumn(t *testing.T) {
	path := writeDataset(t)
	if _, err := run(t, "show", "-f", "memory=1:", path); err == nil {
		t.Errorf("filter on unknown column succeeded")
	}
	if _, err := run(t, "show", "-f", "cputime", path); err == nil {
		t.Errorf("filter without token succeeded")
	}
}

func TestShowJSON(t *testing.T) {
	path := writeDataset(t)
	t.Setenv("BENCHTABLE_FORMAT", "json")
	out := mustRun(t, "show", "--no-stats", "-f", "task=b", path)
	var got jsonView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad JSON output: %v\n%s", err, out)
	}
	if got.Tasks != 3 || got.Shown != 1 || len(got.Rows) != 1 || got.Rows[0].Task != "b.c" {
		t.Errorf("got %+v, want only task b.c of 3", got)
	}
	if len(got.Stats) != 0 {
		t.Errorf("got stats with --no-stats: %+v", got.Stats)
	}
}

func TestShowFlagsBound(t *testing.T) {
	path := writeDataset(t)
	t.Setenv("BENCHTABLE_STAT", "max")
	out := mustRun(t, "show", "--format", "csv", "-f", "cputime=:3", path)
	if !strings.Contains(out, "total,2,2.25\n") {
		t.Errorf("BENCHTABLE_STAT=max ignored:\n%s", out)
	}
	// The flag wins over the environment.
	out = mustRun(t, "show", "--format", "csv", "--stat", "min", "-f", "cputime=:3", path)
	if !strings.Contains(out, "total,2,1.50\n") {
		t.Errorf("--stat min ignored:\n%s", out)
	}
}

func TestShowHTML(t *testing.T) {
	path := writeDataset(t)
	out := mustRun(t, "show", "--format", "html", path)
	for _, want := range []string{"<table class='benchtable'>", "<td class='correct'>true", "<td class='wrong'>false", "3 of 3 tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestConfigFile(t *testing.T) {
	path := writeDataset(t)
	cfg := filepath.Join(t.TempDir(), "benchtable.yaml")
	const yamlConfig = `
format: csv
stat: min
weights:
  correct: 10
`
	if err := os.WriteFile(cfg, []byte(yamlConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	out := mustRun(t, "--config", cfg, "show", "-f", "cputime=:3", path)
	for _, want := range []string{"total,2,1.50\n", "score,10,\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "show", path); err == nil {
		t.Errorf("missing config file accepted")
	}
}

func TestStore(t *testing.T) {
	path := writeDataset(t)
	dsn := filepath.Join(t.TempDir(), "results.db")

	id := strings.TrimSpace(mustRun(t, "--db-dsn", dsn, "import", path))
	if len(id) != 36 {
		t.Fatalf("import printed %q, want an ID", id)
	}
	list := mustRun(t, "--db-dsn", dsn, "list")
	if !strings.Contains(list, id) || !strings.Contains(list, "cpa") || !strings.Contains(list, "demo") {
		t.Errorf("list lacks dataset %s:\n%s", id, list)
	}
	if list := mustRun(t, "--db-dsn", dsn, "list", "--tool", "esbmc"); strings.Contains(list, id) {
		t.Errorf("list --tool esbmc shows dataset of cpa:\n%s", list)
	}

	out := mustRun(t, "--db-dsn", dsn, "show", "--format", "csv", "db:"+id)
	if !strings.Contains(out, "c.c,TIMEOUT,900\n") {
		t.Errorf("stored dataset shown as:\n%s", out)
	}

	mustRun(t, "--db-dsn", dsn, "rm", id)
	if list := mustRun(t, "--db-dsn", dsn, "list"); strings.Contains(list, id) {
		t.Errorf("removed dataset still listed:\n%s", list)
	}
	if _, err := run(t, "--db-dsn", dsn, "rm", id); err == nil {
		t.Errorf("removing %s twice succeeded", id)
	}
}

func TestPlot(t *testing.T) {
	path := writeDataset(t)
	dir := t.TempDir()
	check := func(out, prefix string, args ...string) {
		t.Helper()
		mustRun(t, append([]string{"plot", "--out", filepath.Join(dir, out)}, args...)...)
		data, err := os.ReadFile(filepath.Join(dir, out))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data[:min(len(data), 512)], []byte(prefix)) {
			t.Errorf("%s does not start like a %s image", out, prefix)
		}
	}
	check("q.png", "\x89PNG", "--log", path)
	check("s.svg", "<svg", "--kind", "scatter", "--x", "cputime", "--y", "cputime", "-f", "cputime=:3", path)

	if _, err := run(t, "plot", "--out", filepath.Join(dir, "x.png"), "--column", "status", path); err == nil {
		t.Errorf("plot of status column succeeded")
	}
	if _, err := run(t, "plot", "--out", filepath.Join(dir, "x.gif"), path); err == nil {
		t.Errorf("plot to gif succeeded")
	}
	if _, err := os.Stat(filepath.Join(dir, "x.gif")); !os.IsNotExist(err) {
		t.Errorf("failed plot left x.gif behind")
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "frobnicate")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("got %v, want unknown command error", err)
	}
}
