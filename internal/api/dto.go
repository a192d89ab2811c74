package api

import (
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"
	"github.com/Vladislav-Onoprienko/shareit/internal/service"
)

// Transfer shapes and their conversions are written out by hand; the
// persisted models never cross the HTTP boundary directly.

type userRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type itemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookingResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker userRef   `json:"booker"`
	Item   itemRef   `json:"item"`
}

func toBookingResponse(b models.Booking) bookingResponse {
	return bookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: userRef{ID: b.BookerID, Name: b.BookerName},
		Item:   itemRef{ID: b.ItemID, Name: b.ItemName},
	}
}

func toBookingResponses(bookings []models.Booking) []bookingResponse {
	out := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}
	return out
}

type commentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func toCommentResponse(c models.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.Created,
	}
}

func toCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}
	return out
}

type bookingRefResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type itemDetailsResponse struct {
	itemResponse
	Comments    []commentResponse   `json:"comments"`
	LastBooking *bookingRefResponse `json:"lastBooking,omitempty"`
	NextBooking *bookingRefResponse `json:"nextBooking,omitempty"`
}

func toItemResponse(item models.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
		RequestID:   item.RequestID,
	}
}

func toItemResponses(items []models.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

func toItemDetailsResponse(details service.ItemDetails) itemDetailsResponse {
	resp := itemDetailsResponse{
		itemResponse: toItemResponse(details.Item),
		Comments:     toCommentResponses(details.Comments),
	}
	if details.LastBooking != nil {
		resp.LastBooking = &bookingRefResponse{ID: details.LastBooking.ID, BookerID: details.LastBooking.BookerID}
	}
	if details.NextBooking != nil {
		resp.NextBooking = &bookingRefResponse{ID: details.NextBooking.ID, BookerID: details.NextBooking.BookerID}
	}
	return resp
}
