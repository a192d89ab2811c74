package service

import (
	"context"
	"testing"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newBookingService(bookings *mockBookingStore, users *mockUserStore, items *mockItemStore) *BookingService {
	logger := zerolog.Nop()
	svc := NewBookingService(bookings, users, items, nil, &logger)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreateBooking_Success(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("FindByID", mock.Anything, int64(2)).Return(&models.User{ID: 2, Name: "Renter"}, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(&models.Item{ID: 10, Name: "Drill", Available: true, OwnerID: 1}, nil)
	bookings.On("Save", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.Status == models.StatusWaiting && b.ItemID == 10 && b.BookerID == 2
	})).Return(nil)

	input := CreateBookingInput{ItemID: 10, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}
	booking, err := svc.Create(context.Background(), input, 2)

	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, booking.Status)
	assert.Equal(t, "Drill", booking.ItemName)
	assert.Equal(t, int64(1), booking.ItemOwnerID)
	bookings.AssertExpectations(t)
}

func TestCreateBooking_BookerNotFound(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingInput{ItemID: 10}, 99)

	assert.Equal(t, KindNotFound, KindOf(err))
	bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateBooking_ItemNotFound(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("FindByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	items.On("FindByID", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingInput{ItemID: 404}, 2)

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateBooking_UnavailableItem(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("FindByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(&models.Item{ID: 10, Available: false, OwnerID: 1}, nil)

	_, err := svc.Create(context.Background(), CreateBookingInput{ItemID: 10}, 2)

	assert.Equal(t, KindUnavailable, KindOf(err))
	bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Booking your own item reads as not-found, not forbidden, so callers cannot
// probe who owns what.
func TestCreateBooking_OwnerBooksOwnItem(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("FindByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(&models.Item{ID: 10, Available: true, OwnerID: 1}, nil)

	_, err := svc.Create(context.Background(), CreateBookingInput{ItemID: 10}, 1)

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateBooking_EndBeforeStart(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("FindByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(&models.Item{ID: 10, Available: true, OwnerID: 1}, nil)

	input := CreateBookingInput{ItemID: 10, Start: testNow.Add(2 * time.Hour), End: testNow.Add(time.Hour)}
	_, err := svc.Create(context.Background(), input, 2)

	assert.Equal(t, KindConflict, KindOf(err))
	bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// A zero-length interval is accepted: only end strictly before start is
// rejected.
func TestCreateBooking_EndEqualsStart(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("FindByID", mock.Anything, int64(2)).Return(&models.User{ID: 2, Name: "Renter"}, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(&models.Item{ID: 10, Available: true, OwnerID: 1}, nil)
	bookings.On("Save", mock.Anything, mock.Anything).Return(nil)

	moment := testNow.Add(time.Hour)
	_, err := svc.Create(context.Background(), CreateBookingInput{ItemID: 10, Start: moment, End: moment}, 2)

	require.NoError(t, err)
}

func TestApproveBooking_Success(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	bookings.On("FindByID", mock.Anything, int64(5)).Return(&models.Booking{
		ID: 5, Status: models.StatusWaiting, ItemOwnerID: 1, BookerID: 2,
	}, nil)
	bookings.On("UpdateStatusIfWaiting", mock.Anything, int64(5), models.StatusApproved).Return(true, nil)

	booking, err := svc.Approve(context.Background(), 5, 1, true)

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, booking.Status)
	bookings.AssertExpectations(t)
}

func TestApproveBooking_Reject(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	bookings.On("FindByID", mock.Anything, int64(5)).Return(&models.Booking{
		ID: 5, Status: models.StatusWaiting, ItemOwnerID: 1, BookerID: 2,
	}, nil)
	bookings.On("UpdateStatusIfWaiting", mock.Anything, int64(5), models.StatusRejected).Return(true, nil)

	booking, err := svc.Approve(context.Background(), 5, 1, false)

	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, booking.Status)
}

func TestApproveBooking_NotOwner(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	bookings.On("FindByID", mock.Anything, int64(5)).Return(&models.Booking{
		ID: 5, Status: models.StatusWaiting, ItemOwnerID: 1, BookerID: 2,
	}, nil)

	_, err := svc.Approve(context.Background(), 5, 2, true)

	assert.Equal(t, KindForbidden, KindOf(err))
	bookings.AssertNotCalled(t, "UpdateStatusIfWaiting", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveBooking_AlreadyProcessed(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	bookings.On("FindByID", mock.Anything, int64(5)).Return(&models.Booking{
		ID: 5, Status: models.StatusApproved, ItemOwnerID: 1, BookerID: 2,
	}, nil)

	_, err := svc.Approve(context.Background(), 5, 1, false)

	assert.Equal(t, KindConflict, KindOf(err))
}

// Losing the guarded update means another request processed the booking
// between the read and the write; the caller sees the same conflict as a
// plain double approve.
func TestApproveBooking_LostRace(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	bookings.On("FindByID", mock.Anything, int64(5)).Return(&models.Booking{
		ID: 5, Status: models.StatusWaiting, ItemOwnerID: 1, BookerID: 2,
	}, nil)
	bookings.On("UpdateStatusIfWaiting", mock.Anything, int64(5), models.StatusApproved).Return(false, nil)

	_, err := svc.Approve(context.Background(), 5, 1, true)

	assert.Equal(t, KindConflict, KindOf(err))
}

func TestGetBooking_VisibleToBookerAndOwner(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	stored := &models.Booking{ID: 5, BookerID: 2, ItemOwnerID: 1}
	bookings.On("FindByID", mock.Anything, int64(5)).Return(stored, nil)

	for _, viewer := range []int64{1, 2} {
		booking, err := svc.GetByID(context.Background(), 5, viewer)
		require.NoError(t, err)
		assert.Equal(t, int64(5), booking.ID)
	}
}

func TestGetBooking_HiddenFromStranger(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	bookings.On("FindByID", mock.Anything, int64(5)).Return(&models.Booking{ID: 5, BookerID: 2, ItemOwnerID: 1}, nil)

	_, err := svc.GetByID(context.Background(), 5, 77)

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListForBooker_InvalidPagination(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	_, err := svc.ListForBooker(context.Background(), 2, "ALL", -1, 10)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.ListForBooker(context.Background(), 2, "ALL", 0, 0)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestListForBooker_UnknownState(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	_, err := svc.ListForBooker(context.Background(), 2, "SOMEDAY", 0, 10)

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "unknown state: SOMEDAY")
}

func TestListForBooker_UnknownUser(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("ExistsByID", mock.Anything, int64(99)).Return(false, nil)

	_, err := svc.ListForBooker(context.Background(), 99, "ALL", 0, 10)

	assert.Equal(t, KindNotFound, KindOf(err))
}

// from is rounded down to a page boundary before it becomes an offset:
// from=7 size=5 reads the second page, rows 5 through 9.
func TestListForBooker_PageIndexOffset(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	bookings.On("FindForBooker", mock.Anything, int64(2), models.StateAll, testNow, 5, 5).
		Return([]models.Booking{}, nil)

	_, err := svc.ListForBooker(context.Background(), 2, "ALL", 7, 5)

	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

// The owner listing never rejects a bad state literal; it quietly lists
// everything instead.
func TestListForOwner_UnknownStateFallsBackToAll(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)
	bookings.On("FindForOwner", mock.Anything, int64(1), models.StateAll, testNow, 0, 10).
		Return([]models.Booking{}, nil)

	_, err := svc.ListForOwner(context.Background(), 1, "GIBBERISH", 0, 10)

	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestListForOwner_UnknownUser(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("ExistsByID", mock.Anything, int64(99)).Return(false, nil)

	_, err := svc.ListForOwner(context.Background(), 99, "ALL", 0, 10)

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListForOwner_ZeroSizeIsInternal(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)

	_, err := svc.ListForOwner(context.Background(), 1, "ALL", 0, 0)

	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestOwnerReport(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newBookingService(bookings, users, items)

	users.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)
	bookings.On("FindAllForOwner", mock.Anything, int64(1)).Return([]models.Booking{{ID: 5}}, nil)

	report, err := svc.OwnerReport(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, report, 1)
}

func TestCreateBooking_PublishesEvent(t *testing.T) {
	bookings := new(mockBookingStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	bus := new(mockPublisher)
	logger := zerolog.Nop()
	svc := NewBookingService(bookings, users, items, bus, &logger)
	svc.now = func() time.Time { return testNow }

	users.On("FindByID", mock.Anything, int64(2)).Return(&models.User{ID: 2, Name: "Renter"}, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(&models.Item{ID: 10, Name: "Drill", Available: true, OwnerID: 1}, nil)
	bookings.On("Save", mock.Anything, mock.Anything).Return(nil)
	bus.On("PublishJSON", "booking_created", mock.Anything).Return(nil)

	input := CreateBookingInput{ItemID: 10, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}
	_, err := svc.Create(context.Background(), input, 2)

	require.NoError(t, err)
	bus.AssertExpectations(t)
}
