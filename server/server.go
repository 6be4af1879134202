// Package server exposes trend forecasts over HTTP
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	forecaster "github.com/aouyang1/go-trendcast"
	"github.com/aouyang1/go-trendcast/dataset"
	"github.com/aouyang1/go-trendcast/forecast"
	"github.com/aouyang1/go-trendcast/render"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

const MaxBodyBytes = 10 << 20

var ErrUnknownFormat = errors.New("unknown output format")

// Server answers forecast requests against CSV uploads
type Server struct {
	opt    *forecaster.Options
	router *mux.Router
}

// New creates a server whose forecasts default to opt
func New(opt *forecaster.Options) (*Server, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize server, %w", err)
	}
	s := &Server{
		opt:    opt,
		router: mux.NewRouter(),
	}
	s.routes()
	return s, nil
}

// Router returns the http handler serving all routes
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(logRequests)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/forecast", s.handleForecast).Methods(http.MethodPost)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("handled request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("unable to encode response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// requestOptions overrides the server defaults with the start, end, and baseline query
// parameters
func (s *Server) requestOptions(r *http.Request) (*forecaster.Options, error) {
	opt := &forecaster.Options{
		Range:      s.opt.Range,
		Baseline:   s.opt.Baseline,
		OLSOptions: s.opt.OLSOptions,
	}

	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		start, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid start year %q, %w", v, err)
		}
		opt.Range.Start = start
	}
	if v := q.Get("end"); v != "" {
		end, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid end year %q, %w", v, err)
		}
		opt.Range.End = end
	}
	if q.Has("baseline") {
		opt.Baseline = q.Get("baseline")
	}
	return opt.Validate()
}

func requestFormat(r *http.Request) (*render.Format, error) {
	f := render.NewDefaultFormat()
	if v := r.URL.Query().Get("precision"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid precision %q, %w", v, err)
		}
		f.Precision = p
	}
	return f.Validate()
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	opt, err := s.requestOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "csv":
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("%q, %w", format, ErrUnknownFormat))
		return
	}

	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	ds, skipped, err := dataset.LoadCSVFromReader(body, nil)
	if err != nil {
		if errors.Is(err, dataset.ErrNoTrainingData) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	f, err := forecaster.New(opt)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := f.FitDataset(ds); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	doc, err := f.Document(skipped)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidRange) || errors.Is(err, forecast.ErrRangeTooLarge) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if format == "csv" {
		rf, err := requestFormat(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		if err := render.WriteCSV(w, doc, rf); err != nil {
			slog.Error("unable to write csv response", "error", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
