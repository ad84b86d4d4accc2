// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides a database for tests of packages that use
// golang.org/x/benchtable/storage/db.
package dbtest

import (
	"testing"

	"golang.org/x/benchtable/storage/db"
	_ "golang.org/x/benchtable/storage/db/sqlite3"
)

// NewDB makes a connection to an empty in-memory SQLite database.
// cleanup must be called when done with the testing database, instead
// of calling db.Close().
func NewDB(t *testing.T) (*db.DB, func()) {
	t.Helper()
	d, err := db.OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return d, func() {
		if err := d.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	}
}
