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

func newRequestService(requests *mockRequestStore, users *mockUserStore, items *mockItemStore) *RequestService {
	logger := zerolog.Nop()
	svc := NewRequestService(requests, users, items, &logger)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreateRequest_Success(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	requests.On("Save", mock.Anything, mock.MatchedBy(func(r *models.ItemRequest) bool {
		return r.RequestorID == 2 && r.Created.Equal(testNow)
	})).Return(nil)

	request, err := svc.Create(context.Background(), 2, "need a ladder")

	require.NoError(t, err)
	assert.Equal(t, "need a ladder", request.Description)
}

func TestCreateRequest_UnknownUser(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	users.On("ExistsByID", mock.Anything, int64(99)).Return(false, nil)

	_, err := svc.Create(context.Background(), 99, "need a ladder")

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetRequestsByUser_EnrichesItems(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	reqID := int64(7)
	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	requests.On("FindByRequestor", mock.Anything, int64(2)).Return([]models.ItemRequest{{ID: 7, RequestorID: 2}}, nil)
	items.On("FindByRequestIDs", mock.Anything, []int64{7}).Return([]models.Item{
		{ID: 10, Name: "Ladder", OwnerID: 3, RequestID: &reqID},
	}, nil)

	details, err := svc.GetByUser(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Items, 1)
	assert.Equal(t, "Ladder", details[0].Items[0].Name)
}

// Items with an empty name are listed under a placeholder instead of
// breaking the response.
func TestGetRequestsByUser_PlaceholderName(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	reqID := int64(7)
	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	requests.On("FindByRequestor", mock.Anything, int64(2)).Return([]models.ItemRequest{{ID: 7}}, nil)
	items.On("FindByRequestIDs", mock.Anything, []int64{7}).Return([]models.Item{
		{ID: 10, Name: "", RequestID: &reqID},
	}, nil)

	details, err := svc.GetByUser(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, details[0].Items, 1)
	assert.Equal(t, models.PlaceholderItemName, details[0].Items[0].Name)
}

func TestGetAllRequests_InvalidPagination(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)

	_, err := svc.GetAll(context.Background(), 2, -1, 10)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.GetAll(context.Background(), 2, 0, 0)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestGetAllRequests_PageIndexOffset(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	requests.On("FindAllExcluding", mock.Anything, int64(2), 10, 10).Return([]models.ItemRequest{}, nil)

	_, err := svc.GetAll(context.Background(), 2, 13, 10)

	require.NoError(t, err)
	requests.AssertExpectations(t)
}

func TestGetRequestByID_NotFound(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	requests.On("FindByID", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.GetByID(context.Background(), 2, 404)

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetRequestByID_EmptyItems(t *testing.T) {
	requests := new(mockRequestStore)
	users := new(mockUserStore)
	items := new(mockItemStore)
	svc := newRequestService(requests, users, items)

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	requests.On("FindByID", mock.Anything, int64(7)).Return(&models.ItemRequest{ID: 7}, nil)
	items.On("FindByRequestIDs", mock.Anything, []int64{7}).Return([]models.Item{}, nil)

	details, err := svc.GetByID(context.Background(), 2, 7)

	require.NoError(t, err)
	assert.NotNil(t, details.Items)
	assert.Empty(t, details.Items)
}
