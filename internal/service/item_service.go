package service

import (
	"context"
	"strings"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/rs/zerolog"
)

// CreateItemInput carries item creation parameters. RequestID links the new
// item to the request that prompted it, when set.
type CreateItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemInput carries a partial item update; nil fields are left alone.
type UpdateItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingRef points at a booking in an item view.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemDetails is an item enriched with its comment log and, for the owner,
// the nearest past and future approved bookings.
type ItemDetails struct {
	models.Item
	Comments    []models.Comment `json:"comments"`
	LastBooking *BookingRef      `json:"lastBooking,omitempty"`
	NextBooking *BookingRef      `json:"nextBooking,omitempty"`
}

// ItemService is the item catalog: ownership-guarded CRUD and text search.
type ItemService struct {
	items    domain.ItemStore
	users    domain.UserStore
	bookings domain.BookingStore
	comments domain.CommentStore
	requests domain.RequestStore
	cache    domain.SearchCache
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewItemService(items domain.ItemStore, users domain.UserStore, bookings domain.BookingStore, comments domain.CommentStore, requests domain.RequestStore, cache domain.SearchCache, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ItemService) Create(ctx context.Context, input CreateItemInput, ownerID int64) (*models.Item, error) {
	s.logger.Info().Str("name", input.Name).Int64("owner_id", ownerID).Msg("creating item")

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		s.logger.Error().Int64("owner_id", ownerID).Msg("owner not found")
		return nil, notFound("user not found")
	}

	if input.RequestID != nil {
		exists, err := s.requests.ExistsByID(ctx, *input.RequestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, notFound("request not found")
		}
	}

	item := &models.Item{
		Name:        input.Name,
		Description: input.Description,
		Available:   input.Available,
		OwnerID:     owner.ID,
		RequestID:   input.RequestID,
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx)
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, itemID int64, input UpdateItemInput, ownerID int64) (*models.Item, error) {
	s.logger.Info().Int64("item_id", itemID).Msg("updating item")

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		s.logger.Error().Int64("item_id", itemID).Msg("item not found")
		return nil, notFound("item not found")
	}

	if item.OwnerID != ownerID {
		s.logger.Warn().Int64("item_id", itemID).Int64("user_id", ownerID).Msg("attempt to edit another user's item")
		return nil, forbidden("cannot edit another user's item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx)
	return item, nil
}

// GetByID returns the item with its comments. When the requester owns the
// item, the nearest past-starting and future-starting approved bookings are
// attached as well.
func (s *ItemService) GetByID(ctx context.Context, itemID, userID int64) (*ItemDetails, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("item not found")
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &ItemDetails{Item: *item, Comments: comments}
	if details.Comments == nil {
		details.Comments = []models.Comment{}
	}

	if item.OwnerID == userID {
		now := s.now()
		last, err := s.bookings.FindLastForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.FindNextForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		details.LastBooking = toBookingRef(last)
		details.NextBooking = toBookingRef(next)
	}

	return details, nil
}

// ListByOwner returns the owner's items, id ascending. An unknown owner gets
// an empty list, not an error.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Warn().Int64("owner_id", ownerID).Msg("unknown owner, returning empty list")
		return []models.Item{}, nil
	}

	items, err := s.items.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// Search finds available items matching the text in name or description,
// case-insensitively. Blank text yields an empty list, never the full catalog.
func (s *ItemService) Search(ctx context.Context, text string) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}

	normalized := strings.ToLower(strings.TrimSpace(text))
	if s.cache != nil {
		if items, ok := s.cache.Get(ctx, normalized); ok {
			return items, nil
		}
	}

	items, err := s.items.SearchAvailable(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, normalized, items)
	}
	return items, nil
}

func (s *ItemService) invalidateSearch(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func toBookingRef(booking *models.Booking) *BookingRef {
	if booking == nil {
		return nil
	}
	return &BookingRef{ID: booking.ID, BookerID: booking.BookerID}
}
