package service

import (
	"context"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/events"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/rs/zerolog"
)

// CommentService appends comments to items, gated by a completed rental.
type CommentService struct {
	comments domain.CommentStore
	bookings domain.BookingStore
	users    domain.UserStore
	items    domain.ItemStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewCommentService(comments domain.CommentStore, bookings domain.BookingStore, users domain.UserStore, items domain.ItemStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		bookings: bookings,
		users:    users,
		items:    items,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// Add appends a comment on behalf of a user who has at least one approved
// booking on the item that already ended. A missing rental history is a
// validation failure, not a not-found.
func (s *CommentService) Add(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error) {
	s.logger.Info().Int64("item_id", itemID).Int64("author_id", authorID).Msg("adding comment")

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, notFound("user not found")
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("item not found")
	}

	rented, err := s.bookings.HasPastApproved(ctx, itemID, authorID, s.now())
	if err != nil {
		return nil, err
	}
	if !rented {
		s.logger.Warn().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment on item that was never rented")
		return nil, validation("cannot comment on an item that was not rented")
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    s.now(),
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", itemID).Msg("comment added")
	if s.eventBus != nil {
		payload := events.CommentEventPayload{
			CommentID:  comment.ID,
			ItemID:     comment.ItemID,
			AuthorID:   comment.AuthorID,
			AuthorName: comment.AuthorName,
		}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}
	return comment, nil
}
