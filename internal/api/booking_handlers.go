package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Vladislav-Onoprienko/shareit/internal/export"
	"github.com/Vladislav-Onoprienko/shareit/internal/metrics"
	"github.com/Vladislav-Onoprienko/shareit/internal/service"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input service.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.Create(r.Context(), input, bookerID)
	if err != nil {
		metrics.IncBooking("create", "error")
		writeServiceError(w, s.logger, err)
		return
	}

	metrics.IncBooking("create", "ok")
	writeJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved parameter is required")
		return
	}

	booking, err := s.bookings.Approve(r.Context(), bookingID, ownerID, approved)
	if err != nil {
		metrics.IncBooking("approve", "error")
		writeServiceError(w, s.logger, err)
		return
	}

	metrics.IncBooking("approve", "ok")
	writeJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), bookingID, requesterID)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, size, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = "ALL"
	}

	bookings, err := s.bookings.ListForBooker(r.Context(), bookerID, state, from, size)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, size, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = "ALL"
	}

	bookings, err := s.bookings.ListForOwner(r.Context(), ownerID, state, from, size)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.OwnerReport(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := export.WriteBookingsReport(w, bookings); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("bookings export failed")
	}
}
