// Package server exposes report generation over HTTP: upload a workbook,
// get the report back as JSON, xlsx, text or the chart PNG.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fqc-report-go/internal/dataset"
	"fqc-report-go/internal/logger"
	"fqc-report-go/internal/pipeline"
	"fqc-report-go/internal/report"
)

type Server struct {
	engine    *pipeline.Engine
	defaults  pipeline.Options
	maxUpload int64
	log       *logger.Logger
}

func New(engine *pipeline.Engine, defaults pipeline.Options, maxUpload int64, log *logger.Logger) *Server {
	return &Server{engine: engine, defaults: defaults, maxUpload: maxUpload, log: log.Component("server")}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.log.WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("POST /report", s.handleReport)
	return mux
}

// HTTPServer wraps the handler with the timeouts used in production.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "report")
	start := time.Now()

	format := strings.ToLower(r.URL.Query().Get("format"))
	if !knownFormat(format) {
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		reqLog.WithField("error", err.Error()).Warn("missing upload")
		http.Error(w, "missing workbook upload in field \"file\"", http.StatusBadRequest)
		return
	}
	defer file.Close()
	reqLog = reqLog.WithField("filename", hdr.Filename)

	sheet, err := dataset.Read(file)
	if err != nil {
		reqLog.WithField("error", err.Error()).Warn("unreadable workbook")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	opts := s.defaults
	if label := strings.TrimSpace(r.URL.Query().Get("label")); label != "" {
		opts.Label = label
	}
	rep, err := s.engine.Analyze(sheet, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dataset.ErrColumnNotFound) {
			status = http.StatusUnprocessableEntity
		}
		reqLog.WithField("error", err.Error()).Warn("analyze failed")
		http.Error(w, err.Error(), status)
		return
	}
	reqLog = reqLog.WithField("run_id", rep.RunID)

	if err := writeReport(w, rep, format); err != nil {
		reqLog.WithField("error", err.Error()).Error("failed to write response")
		return
	}
	reqLog.WithField("format", format).WithField("duration_ms", time.Since(start).Milliseconds()).Info("report served")
}

func writeReport(w http.ResponseWriter, rep *report.Report, format string) error {
	switch format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "txt", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, err := w.Write(report.EncodeText(rep))
		return err
	case "xlsx":
		data, err := report.EncodeXLSX(rep)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return err
		}
		return attachment(w, pipeline.XLSXName, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "png", "chart":
		data, err := report.EncodeChart(rep)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return err
		}
		return attachment(w, pipeline.ChartName, "image/png", data)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func knownFormat(f string) bool {
	switch f {
	case "", "json", "txt", "text", "xlsx", "png", "chart":
		return true
	}
	return false
}

func attachment(w http.ResponseWriter, name, contentType string, data []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, err := w.Write(data)
	return err
}
