// Command trendcast fits a linear trend to a CSV of yearly anomalies and prints the
// historical data followed by a forecast over a fixed horizon.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	forecaster "github.com/aouyang1/go-trendcast"
	"github.com/aouyang1/go-trendcast/dataset"
	"github.com/aouyang1/go-trendcast/forecast"
	"github.com/aouyang1/go-trendcast/render"
	"github.com/aouyang1/go-trendcast/server"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2

	defaultInput = "data/sea-surface-temp_fig-1.csv"
)

type config struct {
	input      string
	start      int
	end        int
	baseline   string
	format     string
	precision  int
	plot       string
	model      string
	loadModel  string
	cpuprofile string
	serve      string
	logLevel   string
	rangeSet   bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("trendcast", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.input, "input", defaultInput, "CSV of year,anomaly rows with one header line")
	fs.IntVar(&cfg.start, "start", forecast.DefaultStartYear, "first forecast year")
	fs.IntVar(&cfg.end, "end", forecast.DefaultEndYear, "last forecast year, inclusive")
	fs.StringVar(&cfg.baseline, "baseline", render.DefaultBaseline, "baseline period label printed with the output")
	fs.StringVar(&cfg.format, "format", "csv", "output format: csv or json")
	fs.IntVar(&cfg.precision, "precision", render.DefaultPrecision, "significant digits for csv values, -1 for shortest")
	fs.StringVar(&cfg.plot, "plot", "", "write an html chart to this path")
	fs.StringVar(&cfg.model, "model", "", "write the fit model as json to this path")
	fs.StringVar(&cfg.loadModel, "load-model", "", "forecast from a saved json model instead of fitting -input")
	fs.StringVar(&cfg.cpuprofile, "cpuprofile", "", "write a cpu profile into this directory")
	fs.StringVar(&cfg.serve, "serve", "", "serve forecasts over http on this address instead of running once")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "start" || f.Name == "end" {
			cfg.rangeSet = true
		}
	})

	switch cfg.format {
	case "csv", "json":
	default:
		return nil, fmt.Errorf("unknown format %q", cfg.format)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, err := newLogger(stderr, cfg.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	prev := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(prev)

	if cfg.cpuprofile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.cpuprofile), profile.Quiet).Stop()
	}

	opt, err := (&forecaster.Options{
		Range:    forecast.Range{Start: cfg.start, End: cfg.end},
		Baseline: cfg.baseline,
	}).Validate()
	if err != nil {
		slog.Error("invalid options", "error", err.Error())
		return exitUsage
	}

	if cfg.serve != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := serve(ctx, cfg.serve, opt); err != nil {
			slog.Error("server failed", "error", err.Error())
			return exitFail
		}
		return exitOK
	}

	if cfg.loadModel != "" {
		return runFromModel(cfg, stdout)
	}
	return runFit(cfg, opt, stdout)
}

func runFit(cfg *config, opt *forecaster.Options, stdout io.Writer) int {
	ds, skipped, err := dataset.LoadCSV(cfg.input, nil)
	if err != nil {
		if errors.Is(err, dataset.ErrNoTrainingData) {
			slog.Error("no samples after parsing input", "input", cfg.input, "skipped", len(skipped))
			return exitFail
		}
		slog.Error("unable to read input", "input", cfg.input, "error", err.Error())
		return exitFail
	}

	summary, err := ds.Summary()
	if err == nil {
		slog.Info("loaded samples",
			"count", summary.Count,
			"first_year", summary.FirstYear,
			"last_year", summary.LastYear,
			"mean_anomaly", summary.MeanAnomaly,
			"skipped", len(skipped),
		)
	}

	f, err := forecaster.New(opt)
	if err != nil {
		slog.Error("unable to create forecaster", "error", err.Error())
		return exitFail
	}
	if err := f.FitDataset(ds); err != nil {
		slog.Error("unable to fit", "error", err.Error())
		return exitFail
	}
	slog.Info("fit trend line", "model", f.Line().String(), "degenerate", f.Degenerate())

	doc, err := f.Document(skipped)
	if err != nil {
		slog.Error("unable to forecast", "error", err.Error())
		return exitFail
	}
	if err := write(stdout, cfg, doc); err != nil {
		slog.Error("unable to write output", "error", err.Error())
		return exitFail
	}

	if cfg.plot != "" {
		if err := f.PlotFit(cfg.plot); err != nil {
			slog.Error("unable to write plot", "path", cfg.plot, "error", err.Error())
			return exitFail
		}
		slog.Info("wrote plot", "path", cfg.plot)
	}

	if cfg.model != "" {
		if err := saveModel(f, cfg.model); err != nil {
			slog.Error("unable to write model", "path", cfg.model, "error", err.Error())
			return exitFail
		}
		slog.Info("wrote model", "path", cfg.model)
	}
	return exitOK
}

func runFromModel(cfg *config, stdout io.Writer) int {
	b, err := os.ReadFile(cfg.loadModel)
	if err != nil {
		slog.Error("unable to read model", "path", cfg.loadModel, "error", err.Error())
		return exitFail
	}
	var m forecaster.Model
	if err := json.Unmarshal(b, &m); err != nil {
		slog.Error("unable to decode model", "path", cfg.loadModel, "error", err.Error())
		return exitFail
	}
	if m.Options != nil && cfg.rangeSet {
		m.Options.Range = forecast.Range{Start: cfg.start, End: cfg.end}
	}

	f, err := forecaster.NewFromModel(m)
	if err != nil {
		slog.Error("unable to load model", "path", cfg.loadModel, "error", err.Error())
		return exitFail
	}
	res, err := f.Forecast()
	if err != nil {
		slog.Error("unable to forecast", "error", err.Error())
		return exitFail
	}

	doc := render.NewForecastDocument(f.Options().Baseline, f.Line(), res)
	if err := write(stdout, cfg, doc); err != nil {
		slog.Error("unable to write output", "error", err.Error())
		return exitFail
	}
	return exitOK
}

func write(w io.Writer, cfg *config, doc *render.Document) error {
	if cfg.format == "json" {
		return render.WriteJSON(w, doc)
	}
	return render.WriteCSV(w, doc, &render.Format{Precision: cfg.precision})
}

func saveModel(f *forecaster.Forecaster, path string) error {
	m, err := f.Model()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func serve(ctx context.Context, addr string, opt *forecaster.Options) error {
	srv, err := server.New(opt)
	if err != nil {
		return err
	}
	s := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving forecasts", "addr", addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
