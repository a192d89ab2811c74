package service

import (
	"context"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/rs/zerolog"
)

// RequestItem is an item summary attached to a request listing. Items with a
// missing name get a placeholder label instead of failing the whole listing.
type RequestItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

// RequestDetails is a request enriched with the items answering it.
type RequestDetails struct {
	models.ItemRequest
	Items []RequestItem `json:"items"`
}

// RequestService is the request board: wishes for items, enriched at read
// time with the catalog items that answer them.
type RequestService struct {
	requests domain.RequestStore
	users    domain.UserStore
	items    domain.ItemStore
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewRequestService(requests domain.RequestStore, users domain.UserStore, items domain.ItemStore, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		items:    items,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*models.ItemRequest, error) {
	s.logger.Info().Int64("user_id", userID).Msg("creating item request")

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("user not found")
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     s.now(),
	}
	if err := s.requests.Save(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetByUser returns the user's own requests, newest first.
func (s *RequestService) GetByUser(ctx context.Context, userID int64) ([]RequestDetails, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("user not found")
	}

	requests, err := s.requests.FindByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichWithItems(ctx, requests)
}

// GetAll returns other users' requests, newest first, paginated with the same
// page-index quirk as booking listings.
func (s *RequestService) GetAll(ctx context.Context, userID int64, from, size int) ([]RequestDetails, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("user not found")
	}

	if size <= 0 {
		return nil, validation("invalid pagination parameters")
	}
	if from < 0 {
		return nil, validation("invalid pagination parameters")
	}

	offset := (from / size) * size
	requests, err := s.requests.FindAllExcluding(ctx, userID, offset, size)
	if err != nil {
		return nil, err
	}
	return s.enrichWithItems(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (*RequestDetails, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("user not found")
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, notFound("request not found")
	}

	enriched, err := s.enrichWithItems(ctx, []models.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// enrichWithItems attaches matching items to each request with a single bulk
// lookup keyed by request id.
func (s *RequestService) enrichWithItems(ctx context.Context, requests []models.ItemRequest) ([]RequestDetails, error) {
	if len(requests) == 0 {
		return []RequestDetails{}, nil
	}

	requestIDs := make([]int64, len(requests))
	for i, req := range requests {
		requestIDs[i] = req.ID
	}

	items, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	itemsByRequest := make(map[int64][]RequestItem)
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		name := item.Name
		if name == "" {
			s.logger.Warn().Int64("item_id", item.ID).Msg("item has empty name, substituting placeholder")
			name = models.PlaceholderItemName
		}
		itemsByRequest[*item.RequestID] = append(itemsByRequest[*item.RequestID], RequestItem{
			ID:          item.ID,
			Name:        name,
			Description: item.Description,
			Available:   item.Available,
			OwnerID:     item.OwnerID,
			RequestID:   *item.RequestID,
		})
	}

	result := make([]RequestDetails, len(requests))
	for i, req := range requests {
		attached := itemsByRequest[req.ID]
		if attached == nil {
			attached = []RequestItem{}
		}
		result[i] = RequestDetails{ItemRequest: req, Items: attached}
	}
	return result, nil
}
