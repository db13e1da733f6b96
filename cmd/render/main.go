// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

// Command render runs the flightmap pipeline once and writes the scene as
// a PDF or JSON file.
//
//	render -format pdf -out flights.pdf -airline 24
//	render -format json -out scene.json
//	render -order asc -summary
//
// Dataset locations, chart and map settings come from the same
// configuration as the server (config.yaml and environment); flags
// override them for this run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/config"
	"github.com/tomtom215/flightmap/internal/loader"
	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/pipeline"
	"github.com/tomtom215/flightmap/internal/render"
)

var errUsage = errors.New("usage")

type renderFlags struct {
	format     string
	out        string
	airline    string
	order      string
	routes     string
	boundaries string
	title      string
	summary    bool
}

func parseFlags(args []string, stderr io.Writer) (*renderFlags, error) {
	f := &renderFlags{}
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.format, "format", "pdf", "output format: pdf or json")
	fs.StringVar(&f.out, "out", "", "output file (json defaults to stdout)")
	fs.StringVar(&f.airline, "airline", "", "airline ID whose routes are drawn (overrides ROUTES_AIRLINE)")
	fs.StringVar(&f.order, "order", "", "airline sort order: asc or desc (overrides CHART_SORT_ORDER)")
	fs.StringVar(&f.routes, "routes", "", "route table location (overrides ROUTES_PATH)")
	fs.StringVar(&f.boundaries, "boundaries", "", "GeoJSON boundary location (overrides BOUNDARIES_PATH)")
	fs.StringVar(&f.title, "title", "Flightmap", "PDF document title")
	fs.BoolVar(&f.summary, "summary", false, "print ranked airline summaries as JSON lines and exit")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	switch {
	case f.summary:
	case f.format != "pdf" && f.format != "json":
		return nil, fmt.Errorf("%w: -format must be pdf or json, got %q", errUsage, f.format)
	case f.format == "pdf" && f.out == "":
		return nil, fmt.Errorf("%w: -format pdf needs -out", errUsage)
	}
	return f, nil
}

// options applies the flag overrides to the configured run options.
func (f *renderFlags) options(base pipeline.Options) (pipeline.Options, error) {
	opts := base
	if f.order != "" {
		order, err := aggregate.ParseSortOrder(f.order)
		if err != nil {
			return opts, fmt.Errorf("%w: -order: %w", errUsage, err)
		}
		opts.Order = order
	}
	if f.airline != "" {
		opts.Airline = f.airline
	}
	if f.routes != "" {
		opts.RoutesPath = f.routes
	}
	if f.boundaries != "" {
		opts.BoundariesPath = f.boundaries
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(cfg.LoggingSettings())

	base, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}
	opts, err := flags.options(base)
	if err != nil {
		return err
	}

	ld, err := loader.New(cfg.LoaderConfig())
	if err != nil {
		return fmt.Errorf("initialize loader: %w", err)
	}
	defer func() {
		if cerr := ld.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Error closing loader")
		}
	}()
	coord := pipeline.NewCoordinator(ld)

	switch {
	case flags.summary:
		scene, err := coord.Compute(ctx, opts)
		if err != nil {
			return err
		}
		return writeSummaries(stdout, scene)

	case flags.format == "json":
		scene, err := coord.Compute(ctx, opts)
		if err != nil {
			return err
		}
		return writeOutput(flags.out, stdout, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(scene)
		})

	default:
		pdf := render.NewPDF(flags.title, nil)
		scene, err := coord.Run(ctx, opts, pdf)
		if err != nil {
			return err
		}
		if err := writeOutput(flags.out, stdout, func(w io.Writer) error {
			_, err := pdf.WriteTo(w)
			return err
		}); err != nil {
			return err
		}
		logging.Info().
			Str("run_id", scene.RunID).
			Str("out", flags.out).
			Int("airlines", len(scene.Airlines)).
			Int("airports", len(scene.Airports)).
			Msg("PDF written")
		return nil
	}
}

// writeSummaries prints one JSON object per ranked airline.
func writeSummaries(w io.Writer, scene *pipeline.Scene) error {
	enc := json.NewEncoder(w)
	for _, s := range scene.Airlines {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes to path through a temp file and rename, or to
// stdout when path is empty or "-".
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".render-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	logging.Error().Err(err).Msg("Render failed")
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	os.Exit(1)
}
