package models

import "time"

// User is a registered member of the sharing network.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Item is a thing listed for sharing. OwnerID is immutable after creation.
// RequestID links the item to the request that prompted its listing, if any.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// Booking is a request to rent an item over a period of time.
//
// ItemName, ItemOwnerID and BookerName are populated by joined reads and are
// never written back to the bookings table.
type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`

	ItemName    string `json:"-"`
	ItemOwnerID int64  `json:"-"`
	BookerName  string `json:"-"`
}

// Comment is feedback left on an item after a completed rental.
type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"itemId"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemRequest is a wish for an item that does not exist in the catalog yet.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
}
