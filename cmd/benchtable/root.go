// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"golang.org/x/benchtable/cmd/benchtable/internal/logging"
	"golang.org/x/benchtable/storage/db"
	_ "golang.org/x/benchtable/storage/db/sqlite3"
	"golang.org/x/benchtable/tabfmt"
	"golang.org/x/benchtable/tabstat"
)

// Config holds the settings shared by all subcommands.
type Config struct {
	Format  string             `mapstructure:"format"`
	Stat    string             `mapstructure:"stat"`
	Color   string             `mapstructure:"color"`
	Verbose bool               `mapstructure:"verbose"`
	LogFile string             `mapstructure:"logFile"`
	Weights map[string]float64 `mapstructure:"weights"`
	DB      DBConfig           `mapstructure:"db"`
}

// DBConfig selects the database of stored datasets.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// app is the state of one command invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetDefault("format", "text")
	a.v.SetDefault("stat", "sum")
	a.v.SetDefault("color", "auto")
	a.v.SetDefault("db.driver", "sqlite3")
	a.v.SetDefault("db.dsn", "benchtable.db")

	root := &cobra.Command{
		Use:           "benchtable",
		Short:         "benchtable shows, filters and summarizes benchmark result tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config `file` (default ./benchtable.yaml)")
	pf.BoolP("verbose", "v", false, "print debug messages")
	pf.String("log-file", "", "also write log messages to `file`")
	pf.String("color", "auto", "color text output: auto, always or never")
	pf.String("db-driver", "sqlite3", "database `driver` for stored datasets: sqlite3 or mysql")
	pf.String("db-dsn", "benchtable.db", "database `source` name for stored datasets")
	for key, flag := range map[string]string{
		"verbose":   "verbose",
		"logFile":   "log-file",
		"color":     "color",
		"db.driver": "db-driver",
		"db.dsn":    "db-dsn",
	} {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		a.showCmd(),
		a.plotCmd(),
		a.importCmd(),
		a.listCmd(),
		a.rmCmd(),
	)
	return root
}

// loadConfig reads the config file and environment into a.cfg.
func (a *app) loadConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("benchtable")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	a.v.SetEnvPrefix("BENCHTABLE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || a.cfgFile != "" {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := logging.Init(a.cfg.LogFile, a.cfg.Verbose); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	if f := a.v.ConfigFileUsed(); f != "" {
		logging.Debugf("using config %s", f)
	}

	switch a.cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
	default:
		return fmt.Errorf("bad color setting %q: want auto, always or never", a.cfg.Color)
	}
	return nil
}

// weights returns the configured score weights.
func (a *app) weights() tabstat.Weights {
	if len(a.cfg.Weights) == 0 {
		return tabstat.DefaultWeights()
	}
	return tabstat.Weights(a.cfg.Weights)
}

// openDB opens the configured database of stored datasets.
func (a *app) openDB() (*db.DB, error) {
	logging.Debugf("opening %s database %s", a.cfg.DB.Driver, a.cfg.DB.DSN)
	d, err := db.OpenSQL(a.cfg.DB.Driver, a.cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return d, nil
}

// loadDataset reads the dataset named by arg: a file, or "db:ID" for
// a stored dataset.
func (a *app) loadDataset(ctx context.Context, arg string) (*tabfmt.Dataset, error) {
	id, ok := strings.CutPrefix(arg, "db:")
	if !ok {
		return tabfmt.ReadFile(arg)
	}
	d, err := a.openDB()
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.Dataset(ctx, id)
}
