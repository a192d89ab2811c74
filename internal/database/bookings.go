package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"
)

// BookingStore is the sqlite-backed booking store. All reads join items and
// users so returned bookings carry the item name, item owner and booker name.
type BookingStore struct {
	db *DB
}

func NewBookingStore(db *DB) *BookingStore {
	return &BookingStore{db: db}
}

const bookingSelect = `
        SELECT b.id, b.start_date, b.end_date, b.status, b.item_id, b.booker_id,
               i.name, i.owner_id, u.name
        FROM bookings b
        JOIN items i ON i.id = b.item_id
        JOIN users u ON u.id = b.booker_id`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status, &b.ItemID, &b.BookerID,
		&b.ItemName, &b.ItemOwnerID, &b.BookerName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := bookingSelect + ` WHERE b.id = ?`

	booking, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// Save inserts the booking when ID is zero. Status changes go through
// UpdateStatusIfWaiting, never through Save.
func (s *BookingStore) Save(ctx context.Context, booking *models.Booking) error {
	if booking.ID != 0 {
		return fmt.Errorf("bookings are immutable after creation")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO bookings (start_date, end_date, status, item_id, booker_id) VALUES (?, ?, ?, ?, ?)`,
		booking.Start.UTC(), booking.End.UTC(), booking.Status, booking.ItemID, booking.BookerID)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

// UpdateStatusIfWaiting flips the status only when the booking is still
// WAITING. The guarded update makes two concurrent approvals race-safe: the
// second one sees zero affected rows.
func (s *BookingStore) UpdateStatusIfWaiting(ctx context.Context, id int64, status models.BookingStatus) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`,
		status, id, models.StatusWaiting)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	return affected > 0, nil
}

// stateClause renders the WHERE fragment for a state filter. The now argument
// is bound once per temporal comparison.
func stateClause(state models.StateFilter, now time.Time, args *[]any) string {
	switch state {
	case models.StateCurrent:
		*args = append(*args, now.UTC(), now.UTC())
		return ` AND b.start_date < ? AND b.end_date > ?`
	case models.StatePast:
		*args = append(*args, now.UTC())
		return ` AND b.end_date < ?`
	case models.StateFuture:
		*args = append(*args, now.UTC())
		return ` AND b.start_date > ?`
	case models.StateWaiting, models.StateRejected:
		*args = append(*args, string(state))
		return ` AND b.status = ?`
	default:
		return ``
	}
}

func (s *BookingStore) FindForBooker(ctx context.Context, bookerID int64, state models.StateFilter, now time.Time, offset, limit int) ([]models.Booking, error) {
	args := []any{bookerID}
	query := bookingSelect + ` WHERE b.booker_id = ?` + stateClause(state, now, &args)
	query += ` ORDER BY b.start_date DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return s.queryBookings(ctx, query, args...)
}

func (s *BookingStore) FindForOwner(ctx context.Context, ownerID int64, state models.StateFilter, now time.Time, offset, limit int) ([]models.Booking, error) {
	args := []any{ownerID}
	query := bookingSelect + ` WHERE i.owner_id = ?` + stateClause(state, now, &args)
	query += ` ORDER BY b.start_date DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return s.queryBookings(ctx, query, args...)
}

func (s *BookingStore) FindAllForOwner(ctx context.Context, ownerID int64) ([]models.Booking, error) {
	query := bookingSelect + ` WHERE i.owner_id = ? ORDER BY b.start_date DESC`
	return s.queryBookings(ctx, query, ownerID)
}

func (s *BookingStore) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingSelect + `
        WHERE b.item_id = ? AND b.start_date < ? AND b.status = ?
        ORDER BY b.start_date DESC LIMIT 1`

	booking, err := scanBooking(s.db.QueryRowContext(ctx, query, itemID, now.UTC(), models.StatusApproved))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

func (s *BookingStore) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingSelect + `
        WHERE b.item_id = ? AND b.start_date > ? AND b.status = ?
        ORDER BY b.start_date ASC LIMIT 1`

	booking, err := scanBooking(s.db.QueryRowContext(ctx, query, itemID, now.UTC(), models.StatusApproved))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

func (s *BookingStore) HasPastApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND status = ? AND end_date < ?`

	var count int
	err := s.db.QueryRowContext(ctx, query, itemID, bookerID, models.StatusApproved, now.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check past bookings: %w", err)
	}
	return count > 0, nil
}

func (s *BookingStore) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
