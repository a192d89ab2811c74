package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"
)

// Request shapes mirror what the backend accepts. All fields are pointers so
// that "absent" and "zero" can be told apart during validation; the original
// body bytes are forwarded, not a re-encoding.

type userPayload struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type itemPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type bookingPayload struct {
	ItemID *int64     `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type textPayload struct {
	Text *string `json:"text"`
}

type requestPayload struct {
	Description *string `json:"description"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if isBlank(payload.Name) {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if isBlank(payload.Email) {
		writeError(w, http.StatusBadRequest, "email must not be blank")
		return
	}
	if !validEmail(*payload.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	s.forward(w, r, body)
}

// handleUpdateUser validates only the fields the partial update carries.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email != nil && !validEmail(*payload.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	s.forward(w, r, body)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	var payload itemPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if isBlank(payload.Name) {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if isBlank(payload.Description) {
		writeError(w, http.StatusBadRequest, "description must not be blank")
		return
	}
	if payload.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}
	s.forward(w, r, body)
}

// handleSearchItems answers blank searches locally with an empty list; the
// backend is only consulted when there is something to search for.
func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.URL.Query().Get("text")) == "" {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	s.forward(w, r, nil)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	var payload textPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if isBlank(payload.Text) {
		writeError(w, http.StatusBadRequest, "comment text must not be blank")
		return
	}
	s.forward(w, r, body)
}

// handleCreateBooking rejects bookings whose start is absent or already in
// the past and bookings with no end or no item. Whether the end makes sense
// relative to the start is the backend's call.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	var payload bookingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ItemID == nil {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	if payload.Start == nil {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}
	if payload.Start.Before(time.Now()) {
		writeError(w, http.StatusBadRequest, "start must not be in the past")
		return
	}
	if payload.End == nil {
		writeError(w, http.StatusBadRequest, "end is required")
		return
	}
	s.forward(w, r, body)
}

func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}
	s.forward(w, r, nil)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := models.ParseStateFilter(r.URL.Query().Get("state")); !ok {
		writeError(w, http.StatusBadRequest, "Unknown state: "+r.URL.Query().Get("state"))
		return
	}
	if err := validatePagination(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.forward(w, r, nil)
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	var payload requestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if isBlank(payload.Description) {
		writeError(w, http.StatusBadRequest, "description must not be blank")
		return
	}
	s.forward(w, r, body)
}

func (s *Server) handleListAllRequests(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePagination(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.forward(w, r, nil)
}

func validatePagination(r *http.Request) error {
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return errors.New("from must be zero or positive")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return errors.New("size must be positive")
		}
	}
	return nil
}
