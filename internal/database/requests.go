package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"
)

// RequestStore is the sqlite-backed item request store.
type RequestStore struct {
	db *DB
}

func NewRequestStore(db *DB) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) FindByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests WHERE id = ?`

	var req models.ItemRequest
	err := s.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &req, nil
}

func (s *RequestStore) FindByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id = ? ORDER BY created DESC`

	rows, err := s.db.QueryContext(ctx, query, requestorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (s *RequestStore) FindAllExcluding(ctx context.Context, requestorID int64, offset, limit int) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id != ? ORDER BY created DESC LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, requestorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (s *RequestStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check request existence: %w", err)
	}
	return count > 0, nil
}

func (s *RequestStore) Save(ctx context.Context, request *models.ItemRequest) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`,
		request.Description, request.RequestorID, request.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func collectRequests(rows *sql.Rows) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	for rows.Next() {
		var req models.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
