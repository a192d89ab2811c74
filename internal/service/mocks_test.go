package service

import (
	"context"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *mockUserStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserStore) Save(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockItemStore struct {
	mock.Mock
}

func (m *mockItemStore) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}
func (m *mockItemStore) FindByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}
func (m *mockItemStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockItemStore) SearchAvailable(ctx context.Context, text string) ([]models.Item, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}
func (m *mockItemStore) FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}
func (m *mockItemStore) Save(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingStore) Save(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}
func (m *mockBookingStore) UpdateStatusIfWaiting(ctx context.Context, id int64, status models.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}
func (m *mockBookingStore) FindForBooker(ctx context.Context, bookerID int64, state models.StateFilter, now time.Time, offset, limit int) ([]models.Booking, error) {
	args := m.Called(ctx, bookerID, state, now, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockBookingStore) FindForOwner(ctx context.Context, ownerID int64, state models.StateFilter, now time.Time, offset, limit int) ([]models.Booking, error) {
	args := m.Called(ctx, ownerID, state, now, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockBookingStore) FindAllForOwner(ctx context.Context, ownerID int64) ([]models.Booking, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockBookingStore) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingStore) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingStore) HasPastApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, bookerID, now)
	return args.Bool(0), args.Error(1)
}

type mockCommentStore struct {
	mock.Mock
}

func (m *mockCommentStore) FindByItemID(ctx context.Context, itemID int64) ([]models.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}
func (m *mockCommentStore) Save(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

type mockRequestStore struct {
	mock.Mock
}

func (m *mockRequestStore) FindByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) FindByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	args := m.Called(ctx, requestorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) FindAllExcluding(ctx context.Context, requestorID int64, offset, limit int) ([]models.ItemRequest, error) {
	args := m.Called(ctx, requestorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockRequestStore) Save(ctx context.Context, request *models.ItemRequest) error {
	return m.Called(ctx, request).Error(0)
}

type mockSearchCache struct {
	mock.Mock
}

func (m *mockSearchCache) Get(ctx context.Context, text string) ([]models.Item, bool) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]models.Item), args.Bool(1)
}
func (m *mockSearchCache) Set(ctx context.Context, text string, items []models.Item) {
	m.Called(ctx, text, items)
}
func (m *mockSearchCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}
