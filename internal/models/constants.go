package models

import "strings"

// BookingStatus is the lifecycle state of a booking. Transitions are one-shot:
// a WAITING booking becomes APPROVED or REJECTED and never changes again.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// StateFilter partitions a booking listing at query time.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
)

// ParseStateFilter parses a state literal case-insensitively.
// An empty string means ALL.
func ParseStateFilter(raw string) (StateFilter, bool) {
	if raw == "" {
		return StateAll, true
	}
	switch StateFilter(strings.ToUpper(raw)) {
	case StateAll:
		return StateAll, true
	case StateCurrent:
		return StateCurrent, true
	case StatePast:
		return StatePast, true
	case StateFuture:
		return StateFuture, true
	case StateWaiting:
		return StateWaiting, true
	case StateRejected:
		return StateRejected, true
	}
	return StateAll, false
}

const (
	// DefaultPageSize is the page length when the caller omits size.
	DefaultPageSize = 10

	// PlaceholderItemName substitutes a missing item name in request listings.
	PlaceholderItemName = "Default Name"
)
