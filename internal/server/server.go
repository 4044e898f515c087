// Package server exposes the formatter over HTTP so editors and CI jobs can
// format configurations without a local binary.
//
// Routes:
//
//	POST /format   body: XML   → canonical XML, header X-Canonical: true|false
//	POST /check    body: XML   → {"status": "unchanged" | "rewritten"}
//	GET  /healthz              → {"status": "ok", "version": "...", ...}
//
// Malformed documents yield 422 with {"code": "...", "message": "..."}.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/precice/config-format/pkg/buildinfo"
	"github.com/precice/config-format/pkg/canon"
	errs "github.com/precice/config-format/pkg/errors"
	"github.com/precice/config-format/pkg/observability"
	"github.com/precice/config-format/pkg/pipeline"
)

// MaxBodyBytes caps request bodies. preCICE configurations are a few
// kilobytes; anything this large is not one.
const MaxBodyBytes = 10 << 20

type handler struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
}

// New returns the HTTP API. opts supplies the layout for every request;
// Check is ignored since the server never touches the filesystem.
func New(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	opts.Check = true
	h := &handler{runner: runner, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.healthz)
	r.Post("/format", h.format)
	r.Post("/check", h.check)
	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", elapsed)
	})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	body := buildinfo.Fields()
	body["status"] = "ok"
	writeJSON(w, http.StatusOK, body)
}

func (h *handler) format(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("X-Canonical", strconv.FormatBool(res.Status == canon.Unchanged))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

func (h *handler) check(w http.ResponseWriter, r *http.Request) {
	res, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": res.Status.String(),
		"cached": res.Cached,
	})
}

// run reads the body and formats it, writing an error response on failure.
func (h *handler) run(w http.ResponseWriter, r *http.Request) (pipeline.Result, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodyBytes))
			return pipeline.Result{}, false
		}
		writeError(w, http.StatusBadRequest, errs.Wrap(errs.ErrCodeInvalidInput, err, "read request body"))
		return pipeline.Result{}, false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, errs.New(errs.ErrCodeInvalidInput, "request body is empty"))
		return pipeline.Result{}, false
	}

	res, err := h.runner.FormatBytes(r.Context(), body, h.opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return pipeline.Result{}, false
	}
	return res, true
}

func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeSourceMalformed, errs.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errs.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"code":    string(code),
		"message": errs.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
