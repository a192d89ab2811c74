package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/config"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"
	"github.com/Vladislav-Onoprienko/shareit/internal/service"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the sharing backend over HTTP. Status codes are the
// contract: 404/403/409/400 for the typed failures, 500 for everything else.
type HTTPServer struct {
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	comments *service.CommentService
	requests *service.RequestService
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(
	cfg config.ServerConfig,
	rateLimit config.RateLimitConfig,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	comments *service.CommentService,
	requests *service.RequestService,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		users:    users,
		items:    items,
		bookings: bookings,
		comments: comments,
		requests: requests,
		logger:   logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("GET /users/{id}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", srv.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", srv.handleDeleteUser)

	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("GET /items", srv.handleListItemsByOwner)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", srv.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", srv.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", srv.handleAddComment)

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /bookings", srv.handleListBookerBookings)
	mux.HandleFunc("GET /bookings/owner", srv.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/export", srv.handleExportBookings)
	mux.HandleFunc("GET /bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", srv.handleApproveBooking)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests", srv.handleListUserRequests)
	mux.HandleFunc("GET /requests/all", srv.handleListAllRequests)
	mux.HandleFunc("GET /requests/{id}", srv.handleGetRequest)

	limiter := NewRateLimiter(rateLimit)
	handler := loggingMiddleware(logger, metricsMiddleware(limiter.Wrap(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler returns the configured handler chain, for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// callerID extracts the trusted identity header. The id is not authenticated
// here; the gateway owns request validation.
func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(headerUserID)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", headerUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s header", headerUserID)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// pagination reads from/size query params with the documented defaults.
func pagination(r *http.Request) (from, size int, err error) {
	from, size = 0, models.DefaultPageSize
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid from parameter")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid size parameter")
		}
	}
	return from, size, nil
}
