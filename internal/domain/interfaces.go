package domain

import (
	"context"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UserStore persists users. Find methods return (nil, nil) when absent.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// ItemStore persists catalog items.
type ItemStore interface {
	FindByID(ctx context.Context, id int64) (*models.Item, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	SearchAvailable(ctx context.Context, text string) ([]models.Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error)
	Save(ctx context.Context, item *models.Item) error
}

// BookingStore persists bookings. Joined reads fill the ItemName, ItemOwnerID
// and BookerName fields of returned bookings.
type BookingStore interface {
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
	// UpdateStatusIfWaiting flips the status of a WAITING booking with a
	// compare-and-set. Returns false when the booking was already processed.
	UpdateStatusIfWaiting(ctx context.Context, id int64, status models.BookingStatus) (bool, error)
	FindForBooker(ctx context.Context, bookerID int64, state models.StateFilter, now time.Time, offset, limit int) ([]models.Booking, error)
	FindForOwner(ctx context.Context, ownerID int64, state models.StateFilter, now time.Time, offset, limit int) ([]models.Booking, error)
	FindAllForOwner(ctx context.Context, ownerID int64) ([]models.Booking, error)
	// FindLastForItem returns the APPROVED booking with the latest start
	// before now, FindNextForItem the one with the earliest start after now.
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	// HasPastApproved reports whether the booker has at least one APPROVED
	// booking on the item that ended before now.
	HasPastApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

// CommentStore persists the append-only comment log.
type CommentStore interface {
	FindByItemID(ctx context.Context, itemID int64) ([]models.Comment, error)
	Save(ctx context.Context, comment *models.Comment) error
}

// RequestStore persists item requests.
type RequestStore interface {
	FindByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	FindByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	FindAllExcluding(ctx context.Context, requestorID int64, offset, limit int) ([]models.ItemRequest, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, request *models.ItemRequest) error
}

// SearchCache memoizes item search results between catalog mutations.
type SearchCache interface {
	Get(ctx context.Context, text string) ([]models.Item, bool)
	Set(ctx context.Context, text string, items []models.Item)
	Invalidate(ctx context.Context)
}

// EventPublisher fans out domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TelegramSender is the send-only slice of the bot API used for notifications.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}
