// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores loaded result tables in a SQL database so they
// can be listed and shown again later.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"golang.org/x/benchtable/tabfmt"
)

// ErrNotFound is returned for a dataset ID that is not in the
// database.
var ErrNotFound = errors.New("dataset not found")

// DB is a high-level interface to a database of datasets. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB

	insertDataset *sql.Stmt
	insertLabel   *sql.Stmt
	selectContent *sql.Stmt
}

// OpenSQL opens the dataset store in the database named by driverName
// and dataSourceName, as for sql.Open, creating its tables if needed.
// The DDL is written for sqlite3 and mysql; other drivers get the
// mysql dialect.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	conn, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook, ok := openHooks[driverName]; ok {
		if err := hook(conn); err != nil {
			conn.Close()
			return nil, err
		}
	}
	d := &DB{sql: conn}
	if err := d.migrate(driverName); err != nil {
		conn.Close()
		return nil, err
	}
	if err := d.prepare(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook arranges for hook to run on every database opened
// with driverName, before any table is touched. Driver packages such
// as storage/db/sqlite3 call it from init.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl expands to the schema, one statement per ';'. Its data is
// a map with the driver name as its only true key, so the template
// can test {{if .sqlite3}}.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Datasets (
	DatasetID VARCHAR(36) PRIMARY KEY,
	Name VARCHAR(255),
	Uploaded VARCHAR(40),
	NumRows BIGINT UNSIGNED,
	Content {{if .sqlite3}}BLOB{{else}}LONGBLOB{{end}}
);
CREATE TABLE IF NOT EXISTS DatasetLabels (
	DatasetID VARCHAR(36),
	Name VARCHAR(255),
	Value VARCHAR(8192),
{{if not .sqlite3}}
	Index (Name(100), Value(100)),
{{end}}
	FOREIGN KEY (DatasetID) REFERENCES Datasets(DatasetID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS DatasetLabelsNameValue ON DatasetLabels(Name, Value);
{{end}}
`))

// migrate creates the tables and indexes that do not exist yet.
func (db *DB) migrate(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, stmt := range strings.Split(buf.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt == "" {
			continue
		}
		if _, err := db.sql.Exec(stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", driverName, err)
		}
	}
	return nil
}

func (db *DB) prepare() error {
	var err error
	db.insertDataset, err = db.sql.Prepare("INSERT INTO Datasets(DatasetID, Name, Uploaded, NumRows, Content) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertLabel, err = db.sql.Prepare("INSERT INTO DatasetLabels(DatasetID, Name, Value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.selectContent, err = db.sql.Prepare("SELECT Content FROM Datasets WHERE DatasetID = ?")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing.
var now = time.Now

// An Entry describes a stored dataset.
type Entry struct {
	ID       string
	Name     string
	Uploaded time.Time
	Rows     int

	// Tools lists the tools of the dataset's run sets.
	Tools []string
}

// PutDataset stores ds and returns its new ID.
func (db *DB) PutDataset(ctx context.Context, ds *tabfmt.Dataset) (id string, err error) {
	var buf bytes.Buffer
	if err := tabfmt.WriteJSON(&buf, ds); err != nil {
		return "", err
	}
	id = uuid.NewString()
	uploaded := now().UTC().Format(time.RFC3339)

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.StmtContext(ctx, db.insertDataset).ExecContext(ctx, id, ds.Name, uploaded, len(ds.Rows), buf.Bytes()); err != nil {
		return "", err
	}
	seen := make(map[string]bool)
	for _, rs := range ds.RunSets {
		if rs.Tool == "" || seen[rs.Tool] {
			continue
		}
		seen[rs.Tool] = true
		if _, err = tx.StmtContext(ctx, db.insertLabel).ExecContext(ctx, id, "tool", rs.Tool); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Dataset returns the dataset stored under id.
func (db *DB) Dataset(ctx context.Context, id string) (*tabfmt.Dataset, error) {
	var content []byte
	err := db.selectContent.QueryRowContext(ctx, id).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return tabfmt.Read(bytes.NewReader(content), id+".json")
}

// List returns the stored datasets, most recent first. If tool is not
// empty, only datasets with a run set of that tool are listed.
func (db *DB) List(ctx context.Context, tool string) ([]Entry, error) {
	query := "SELECT DatasetID, Name, Uploaded, NumRows FROM Datasets"
	var args []any
	if tool != "" {
		query += " WHERE DatasetID IN (SELECT DatasetID FROM DatasetLabels WHERE Name = 'tool' AND Value = ?)"
		args = append(args, tool)
	}
	query += " ORDER BY Uploaded DESC, DatasetID"
	entries, err := db.entries(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int)
	for i, e := range entries {
		byID[e.ID] = i
	}

	labels, err := db.sql.QueryContext(ctx, "SELECT DatasetID, Value FROM DatasetLabels WHERE Name = 'tool' ORDER BY DatasetID, Value")
	if err != nil {
		return nil, err
	}
	defer labels.Close()
	for labels.Next() {
		var id, tool string
		if err := labels.Scan(&id, &tool); err != nil {
			return nil, err
		}
		if i, ok := byID[id]; ok {
			entries[i].Tools = append(entries[i].Tools, tool)
		}
	}
	return entries, labels.Err()
}

// entries runs query and scans the resulting entries. The rows are
// closed before it returns, so the connection can be reused.
func (db *DB) entries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var uploaded string
		if err := rows.Scan(&e.ID, &e.Name, &uploaded, &e.Rows); err != nil {
			return nil, err
		}
		if e.Uploaded, err = time.Parse(time.RFC3339, uploaded); err != nil {
			return nil, fmt.Errorf("dataset %s: bad upload time: %v", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the dataset stored under id.
func (db *DB) Delete(ctx context.Context, id string) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM DatasetLabels WHERE DatasetID = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM Datasets WHERE DatasetID = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Close releases the prepared statements and the connection pool.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertDataset, db.insertLabel, db.selectContent} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
