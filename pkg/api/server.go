// Rostercheck
// Copyright (c) 2026 The Rostercheck Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Rostercheck.
//
// Rostercheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rostercheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rostercheck.  If not, see <http://www.gnu.org/licenses/>.

// Package api serves roster checks over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	apimw "github.com/rostercheck/rostercheck/pkg/api/middleware"
	"github.com/rostercheck/rostercheck/pkg/api/models"
	"github.com/rostercheck/rostercheck/pkg/api/validation"
	"github.com/rostercheck/rostercheck/pkg/check"
	"github.com/rostercheck/rostercheck/pkg/config"
	"github.com/rostercheck/rostercheck/pkg/listing"
	"github.com/rostercheck/rostercheck/pkg/matcher"
	"github.com/rostercheck/rostercheck/pkg/names"
	"github.com/rostercheck/rostercheck/pkg/report"
	"github.com/rs/zerolog/log"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server routes API requests to a Checker.
type Server struct {
	cfg     *config.Instance
	checker *check.Checker
	drive   listing.Fetcher
	limiter *apimw.IPRateLimiter
	router  chi.Router
}

// NewServer builds the router. drive fetches Google Drive folder pages for
// checks that name a folder instead of inline filenames.
func NewServer(cfg *config.Instance, checker *check.Checker, drive listing.Fetcher) *Server {
	s := &Server{
		cfg:     cfg,
		checker: checker,
		drive:   drive,
		limiter: apimw.NewIPRateLimiter(cfg.APIRateLimit(), 0),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(cfg.APIRequestTimeout()))
	r.Use(apimw.HTTPIPFilterMiddleware(apimw.NewIPFilter(cfg.AllowedIPs())))

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.Get(models.PathHealth, s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(apimw.HTTPRateLimitMiddleware(s.limiter))
		r.Get(models.PathStatuses, s.handleStatuses)
		r.Post(models.PathNormalize, s.handleNormalize)
		r.Post(models.PathCheck, s.handleCheck)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.APIListen())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.APIListen(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.limiter.StartCleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("api server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	<-errCh
	log.Info().Msg("api server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Version: config.AppVersion,
	})
}

func (s *Server) handleStatuses(w http.ResponseWriter, _ *http.Request) {
	all := matcher.AllStatuses()
	resp := models.StatusesResponse{Statuses: make([]models.StatusInfo, 0, len(all))}
	for _, st := range all {
		resp.Statuses = append(resp.Statuses, models.StatusInfo{
			Name:    st.String(),
			Label:   st.Label(),
			Problem: st.IsProblem(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req models.NormalizeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp := models.NormalizeResponse{Results: make([]models.NormalizedName, 0, len(req.Names))}
	for _, n := range req.Names {
		resp.Results = append(resp.Results, models.NormalizedName{
			Input: n,
			Key:   names.Normalize(n),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	format := report.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := report.ParseFormat(q)
		if err != nil || f == report.FormatTable {
			writeError(w, http.StatusBadRequest, "format must be json or csv", nil)
			return
		}
		format = f
	}

	var req models.CheckRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	creq := check.Request{
		SchoolPrefix:       req.SchoolPrefix,
		RosterURL:          req.RosterURL,
		Roster:             req.Roster,
		DetectFlippedOrder: req.DetectFlippedOrder,
	}
	if len(req.Filenames) > 0 {
		creq.Lister = listing.Static(req.Filenames)
	} else {
		creq.Lister = &listing.Drive{
			Client:    s.drive,
			FolderURL: req.DriveFolderURL,
			Extension: s.cfg.ImageExtension(),
		}
	}

	rep, err := s.checker.Run(r.Context(), creq)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, check.ErrNoSchoolPrefix),
			errors.Is(err, check.ErrNoRosterSource),
			errors.Is(err, check.ErrNoLister),
			errors.Is(err, listing.ErrNoFolderID):
			status = http.StatusBadRequest
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		log.Warn().Err(err).Int("status", status).Msg("check request failed")
		writeError(w, status, err.Error(), nil)
		return
	}

	if format == report.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="rostercheck-%s.csv"`, rep.SchoolPrefix))
		w.WriteHeader(http.StatusOK)
		if err := rep.WriteCSV(w); err != nil {
			log.Error().Err(err).Msg("failed to write csv response")
		}
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// decodeRequest reads and validates a JSON body into dest, writing a 400
// response and returning false when it is not acceptable.
func decodeRequest[T any](w http.ResponseWriter, r *http.Request, dest *T) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return false
		}
		writeError(w, http.StatusBadRequest, "failed to read request body", nil)
		return false
	}

	err = validation.ValidateAndUnmarshalCtx(r.Context(), body, dest)
	if err == nil {
		return true
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "invalid request", verr.Messages())
		return false
	}
	writeError(w, http.StatusBadRequest, err.Error(), nil)
	return false
}

func writeError(w http.ResponseWriter, status int, msg string, fields []string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg, Fields: fields})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write json response")
	}
}
