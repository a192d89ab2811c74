package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/config"

	"github.com/rs/zerolog"
)

const headerUserID = "X-Sharer-User-Id"

// Server is the public edge of the system. It validates incoming requests
// and proxies the valid ones to the backend, relaying status codes and
// bodies untouched. Business rules stay on the backend; the gateway only
// rejects requests that are malformed on their face.
type Server struct {
	serverURL string
	client    *http.Client
	logger    *zerolog.Logger
	server    *http.Server
}

func NewServer(cfg config.GatewayConfig, logger *zerolog.Logger) *Server {
	s := &Server{
		serverURL: cfg.ServerURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.forwardHandler)
	mux.HandleFunc("GET /users/{id}", s.forwardHandler)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.forwardHandler)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.withCaller(s.forward))
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", s.withCaller(s.forward))
	mux.HandleFunc("PATCH /items/{id}", s.withCaller(s.forward))
	mux.HandleFunc("POST /items/{id}/comment", s.handleAddComment)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /bookings", s.handleListBookings)
	mux.HandleFunc("GET /bookings/owner", s.handleListBookings)
	mux.HandleFunc("GET /bookings/export", s.withCaller(s.forward))
	mux.HandleFunc("GET /bookings/{id}", s.withCaller(s.forward))
	mux.HandleFunc("PATCH /bookings/{id}", s.handleApproveBooking)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.withCaller(s.forward))
	mux.HandleFunc("GET /requests/all", s.handleListAllRequests)
	mux.HandleFunc("GET /requests/{id}", s.withCaller(s.forward))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           loggingMiddleware(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      35 * time.Second,
	}

	return s
}

// Handler returns the configured handler chain, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Str("backend", s.serverURL).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// forward proxies the request to the backend preserving method, path, query,
// body and the identity header. The body may have been consumed by a
// validation step; callers pass the buffered copy.
func (s *Server) forward(w http.ResponseWriter, r *http.Request, body []byte) {
	target := s.serverURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, bytes.NewReader(body))
	if err != nil {
		s.logger.Error().Err(err).Str("target", target).Msg("building backend request")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if userID := r.Header.Get(headerUserID); userID != "" {
		req.Header.Set(headerUserID, userID)
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	} else if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("target", target).Msg("backend unreachable")
		writeError(w, http.StatusBadGateway, "backend unavailable")
		return
	}
	defer resp.Body.Close()

	for _, h := range []string{"Content-Type", "Content-Disposition", "X-Request-Id"} {
		if v := resp.Header.Get(h); v != "" {
			w.Header().Set(h, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// forwardHandler proxies a request that needs no validation at the edge.
func (s *Server) forwardHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	s.forward(w, r, body)
}

// withCaller wraps a forwarding step with the identity header check shared
// by every route that acts on behalf of a user.
func (s *Server) withCaller(next func(http.ResponseWriter, *http.Request, []byte)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := callerID(r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		body, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "cannot read request body")
			return
		}
		next(w, r, body)
	}
}

func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(headerUserID)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", headerUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", headerUserID)
	}
	return id, nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 1<<20))
}

func loggingMiddleware(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("gateway request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
