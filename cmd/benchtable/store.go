// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"golang.org/x/benchtable/cmd/benchtable/internal/texttab"
	"golang.org/x/benchtable/tabfmt"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import dataset...",
		Short: "Store datasets in the database and print their IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Read everything first so a bad file stores nothing.
			var sets []*tabfmt.Dataset
			for _, arg := range args {
				ds, err := tabfmt.ReadFile(arg)
				if err != nil {
					return err
				}
				sets = append(sets, ds)
			}
			d, err := a.openDB()
			if err != nil {
				return err
			}
			defer d.Close()
			for i, ds := range sets {
				id, err := d.PutDataset(cmd.Context(), ds)
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var tool string
	cmd := &cobra.Command{
		Use:   "list [--tool name]",
		Short: "List stored datasets, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDB()
			if err != nil {
				return err
			}
			defer d.Close()
			entries, err := d.List(cmd.Context(), tool)
			if err != nil {
				return err
			}
			var t texttab.Table
			t.Row().Cell("id").Cell("uploaded").Cell("tasks", texttab.Right).Cell("tools").Cell("name")
			for _, e := range entries {
				t.Row().
					Cell(e.ID).
					Cell(e.Uploaded.Local().Format(time.DateTime)).
					Cell(strconv.Itoa(e.Rows), texttab.Right).
					Cell(strings.Join(e.Tools, ",")).
					Cell(e.Name)
			}
			return t.Format(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&tool, "tool", "", "list only datasets with a run set of `tool`")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm id...",
		Short: "Remove stored datasets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDB()
			if err != nil {
				return err
			}
			defer d.Close()
			for _, id := range args {
				if err := d.Delete(cmd.Context(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
