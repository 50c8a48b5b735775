/*
 * root.go, part of molsvg.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package cli implements the molsvg command line tool on github.com/spf13/cobra.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmera/molsvg/internal/config"
	"github.com/rmera/molsvg/internal/logging"
	"github.com/rmera/molsvg/internal/metrics"
	"github.com/rmera/molsvg/store"
)

//Set at build time with -ldflags.
var Version = "dev"

//RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
}

//App carries what the commands share. It is filled before any command runs,
//and Close releases it.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	DB      *store.DB
	Metrics *metrics.Metrics
	Output  string
}

//Close writes the metrics file, if one is configured, and closes the database.
func (a *App) Close() error {
	var firstErr error
	if a.Config != nil && a.Config.Render.MetricsFile != "" && a.Metrics != nil {
		if err := a.Metrics.WriteToTextfile(a.Config.Render.MetricsFile); err != nil {
			a.Logger.Error("metrics not written", logging.Err(err))
			firstErr = err
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.DB = nil
	}
	if a.Logger != nil {
		a.Logger.Sync()
	}
	return firstErr
}

//NewRootCommand returns the molsvg command with all its sub-commands. The
//commands fill app before running.
func NewRootCommand(app *App) *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "molsvg",
		Short: "Store molecules in a database and draw them as SVG",
		Long: "molsvg reads molecules from structure-data (SDF) files, keeps them in a\n" +
			"SQLite or PostgreSQL database together with the element styles, and draws\n" +
			"them as SVG documents where each atom is a shaded sphere and each bond a band.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd.Context(), app, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (YAML)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config file")
	pf.StringVar(&opts.OutputFormat, "output", "text", "output format (text, json)")

	cmd.AddCommand(
		newInitCmd(app),
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newRenderCmd(app),
		newPlotCmd(app),
		newElementsCmd(app),
	)
	return cmd
}

//setup loads the configuration and opens the logger, the metrics and the database.
func setup(ctx context.Context, app *App, opts *RootOptions) error {
	switch opts.OutputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q, expected text or json", opts.OutputFormat)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, OutputPaths: []string{"stderr"}})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	app.Config = cfg
	app.Logger = logger
	app.Output = opts.OutputFormat
	app.Metrics = metrics.New()
	db, err := store.Open(ctx, store.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Atomic: cfg.Store.AtomicInserts,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	app.DB = db
	return nil
}

//Execute runs the molsvg command with args, writing results to out and
//errors to errOut.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	app := &App{}
	cmd := NewRootCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	err := cmd.ExecuteContext(ctx)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}

//printResult writes data as indented JSON if the output format is json, and
//calls text otherwise.
func printResult(cmd *cobra.Command, app *App, data interface{}, text func(w io.Writer)) error {
	if strings.ToLower(app.Output) == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	text(cmd.OutOrStdout())
	return nil
}
