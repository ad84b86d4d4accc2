// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchtable shows, filters and summarizes tables of benchmark
// results.
//
// Usage:
//
//	benchtable show [-f column=token ...] [--format text|csv|html|json] [--stat field] dataset
//	benchtable plot [-f column=token ...] [--kind quantile|scatter] --out file dataset
//	benchtable import dataset...
//	benchtable list [--tool name]
//	benchtable rm id...
//
// A dataset is a JSON or YAML file holding the results of one or more
// run sets, or "db:ID" for a dataset stored with benchtable import.
//
// # Filters
//
// Each -f flag constrains one column. Columns are named "runset/title",
// by a title that is unique in the dataset, by their index, or "task"
// for the task name. The token depends on the column type:
//
//	2:10          numeric columns: values from 2 to 10 inclusive
//	2:            numeric columns: values of at least 2
//	foo           text columns and task: values containing "foo"
//	category:correct,status:true
//	              status columns: tasks in any of the listed
//	              categories or with any of the listed statuses
//	##########    status columns: no task at all
//
// Units of numeric columns may be given, as in "1.5s:". A later flag
// for the same column replaces an earlier one. A token that does not
// parse is reported and ignored, and the earlier filter stays in
// effect.
//
// # Statistics
//
// Below the rows, show prints aggregate rows over the tasks that pass
// the filters: the number of results per category, a summary of every
// numeric column, and a score computed from the configured weights.
// The --stat flag selects the summary shown: sum, mean, median, min,
// max or stdev.
//
// # Configuration
//
// Defaults for flags are read from benchtable.yaml in the current
// directory, or the file named by --config, and from environment
// variables prefixed with BENCHTABLE_, such as BENCHTABLE_DB_DSN.
// The weights key maps result categories, optionally followed by
// ":true" or ":false", to score weights:
//
//	format: text
//	stat: mean
//	db:
//	  driver: sqlite3
//	  dsn: results.db
//	weights:
//	  correct:true: 2
//	  correct:false: 1
//	  wrong:true: -32
//	  wrong:false: -16
package main

import (
	"log"
)

func main() {
	log.SetPrefix("benchtable: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
