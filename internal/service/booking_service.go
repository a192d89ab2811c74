package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/events"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/rs/zerolog"
)

// CreateBookingInput carries the booking creation parameters.
type CreateBookingInput struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// BookingService owns the booking lifecycle: creation, the one-shot
// approve/reject transition and state-filtered listings.
type BookingService struct {
	bookings domain.BookingStore
	users    domain.UserStore
	items    domain.ItemStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(bookings domain.BookingStore, users domain.UserStore, items domain.ItemStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		items:    items,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// Create registers a WAITING booking for an available item on behalf of a
// non-owner. The owner-booking-own-item case is reported as not-found rather
// than forbidden so probing users cannot discover ownership.
//
// Overlapping bookings for the same item and period are not detected here;
// double-booking is a known gap of this design.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput, bookerID int64) (*models.Booking, error) {
	s.logger.Info().Int64("item_id", input.ItemID).Int64("booker_id", bookerID).Msg("creating booking")

	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		s.logger.Error().Int64("booker_id", bookerID).Msg("booker not found")
		return nil, notFound("user not found")
	}

	item, err := s.items.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		s.logger.Error().Int64("item_id", input.ItemID).Msg("item not found")
		return nil, notFound("item not found")
	}

	if !item.Available {
		s.logger.Warn().Int64("item_id", item.ID).Msg("attempt to book unavailable item")
		return nil, unavailable("item is not available for booking")
	}
	if bookerID == item.OwnerID {
		s.logger.Warn().Int64("item_id", item.ID).Int64("booker_id", bookerID).Msg("owner attempted to book own item")
		return nil, notFound("owner cannot book their own item")
	}
	if input.End.Before(input.Start) {
		s.logger.Warn().Time("start", input.Start).Time("end", input.End).Msg("booking end before start")
		return nil, conflict("booking end date cannot be before start date")
	}

	booking := &models.Booking{
		Start:    input.Start,
		End:      input.End,
		Status:   models.StatusWaiting,
		ItemID:   item.ID,
		BookerID: booker.ID,

		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerName:  booker.Name,
	}
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking)
	return booking, nil
}

// Approve resolves a WAITING booking to APPROVED or REJECTED. Only the item
// owner may do it, and only once.
func (s *BookingService) Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		s.logger.Error().Int64("booking_id", bookingID).Msg("booking not found")
		return nil, notFound("booking not found")
	}

	if booking.ItemOwnerID != ownerID {
		s.logger.Warn().Int64("booking_id", bookingID).Int64("user_id", ownerID).Msg("non-owner attempted to process booking")
		return nil, forbidden("only the item owner can process a booking")
	}
	if booking.Status != models.StatusWaiting {
		s.logger.Warn().Int64("booking_id", bookingID).Msg("booking already processed")
		return nil, conflict("booking has already been processed")
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	updated, err := s.bookings.UpdateStatusIfWaiting(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race against a concurrent approval.
		return nil, conflict("booking has already been processed")
	}

	booking.Status = status
	s.logger.Info().Int64("booking_id", bookingID).Str("status", string(status)).Msg("booking processed")
	s.publishEvent(eventType, booking)
	return booking, nil
}

// GetByID returns a booking to its booker or the item owner. Anyone else gets
// not-found, for the same ownership-hiding reason as Create.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requesterID int64) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, notFound("booking not found")
	}

	if booking.BookerID != requesterID && booking.ItemOwnerID != requesterID {
		s.logger.Warn().Int64("booking_id", bookingID).Int64("user_id", requesterID).Msg("unauthorized booking view attempt")
		return nil, notFound("only the booker or the item owner can view a booking")
	}
	return booking, nil
}

// ListForBooker returns the booker's bookings filtered by state, newest start
// first. Pagination and the state literal are validated strictly here, unlike
// the owner listing.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]models.Booking, error) {
	if from < 0 || size <= 0 {
		s.logger.Warn().Int("from", from).Int("size", size).Msg("invalid pagination parameters")
		return nil, validation("invalid pagination parameters")
	}

	filter, ok := models.ParseStateFilter(state)
	if !ok {
		s.logger.Warn().Str("state", state).Msg("unknown booking state")
		return nil, validation("unknown state: " + state)
	}

	exists, err := s.users.ExistsByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("user not found")
	}

	offset := (from / size) * size
	return s.bookings.FindForBooker(ctx, bookerID, filter, s.now(), offset, size)
}

// ListForOwner returns bookings of the owner's items filtered by state. An
// unrecognized state literal silently falls back to the unfiltered listing and
// pagination inputs are not validated; both quirks are kept as the original
// behaves.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]models.Booking, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("user not found")
	}

	if size <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", size)
	}

	filter, _ := models.ParseStateFilter(state)
	offset := (from / size) * size
	return s.bookings.FindForOwner(ctx, ownerID, filter, s.now(), offset, size)
}

// OwnerReport returns every booking on the owner's items, newest start first,
// for the export endpoint.
func (s *BookingService) OwnerReport(ctx context.Context, ownerID int64) ([]models.Booking, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("user not found")
	}
	return s.bookings.FindAllForOwner(ctx, ownerID)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		BookerID:   booking.BookerID,
		BookerName: booking.BookerName,
		ItemID:     booking.ItemID,
		ItemName:   booking.ItemName,
		OwnerID:    booking.ItemOwnerID,
		Status:     string(booking.Status),
		Start:      booking.Start,
		End:        booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
