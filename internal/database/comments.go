package database

import (
	"context"
	"fmt"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"
)

// CommentStore is the sqlite-backed append-only comment log.
type CommentStore struct {
	db *DB
}

func NewCommentStore(db *DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) FindByItemID(ctx context.Context, itemID int64) ([]models.Comment, error) {
	query := `
        SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.item_id = ?
        ORDER BY c.created DESC`

	rows, err := s.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentStore) Save(ctx context.Context, comment *models.Comment) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`,
		comment.Text, comment.ItemID, comment.AuthorID, comment.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}
