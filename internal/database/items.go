package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"
)

// ItemStore is the sqlite-backed item catalog store.
type ItemStore struct {
	db *DB
}

func NewItemStore(db *DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, name, description, available, owner_id, request_id`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	var item models.Item
	var requestID sql.NullInt64
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		item.RequestID = &requestID.Int64
	}
	return &item, nil
}

func (s *ItemStore) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) FindByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by owner: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (s *ItemStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return count > 0, nil
}

// SearchAvailable matches available items whose name or description contains
// the text, case-insensitively. Callers are expected to reject blank text
// before reaching the store.
func (s *ItemStore) SearchAvailable(ctx context.Context, text string) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = 1 AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)
              ORDER BY id`

	pattern := "%" + strings.ToLower(text) + "%"
	rows, err := s.db.QueryContext(ctx, query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (s *ItemStore) FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(requestIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id IN (` + placeholders + `) ORDER BY id`

	args := make([]any, len(requestIDs))
	for i, id := range requestIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by requests: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// Save inserts the item when ID is zero, updates it otherwise. The owner
// column is never touched by updates.
func (s *ItemStore) Save(ctx context.Context, item *models.Item) error {
	if item.ID == 0 {
		result, err := s.db.ExecContext(ctx,
			`INSERT INTO items (name, description, available, owner_id, request_id) VALUES (?, ?, ?, ?, ?)`,
			item.Name, item.Description, item.Available, item.OwnerID, nullableID(item.RequestID))
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		item.ID = id
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`,
		item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func collectItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
