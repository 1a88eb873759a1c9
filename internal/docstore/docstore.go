// Package docstore maps a (collection, document id) addressing scheme onto
// a single MySQL table holding JSON document values.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Store provides point lookups and upserts over the documents table
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New creates a new document store
func New(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// Get performs a point lookup of a document. A missing document is not an
// error: it is reported through the second return value.
func (s *Store) Get(ctx context.Context, collection, docID string) (json.RawMessage, bool, error) {
	query := `
		SELECT data
		FROM documents
		WHERE collection = ? AND doc_id = ?
	`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, collection, docID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("failed to get document", zap.Error(err),
			zap.String("collection", collection), zap.String("doc_id", docID))
		return nil, false, fmt.Errorf("failed to get document: %w", err)
	}

	return json.RawMessage(data), true, nil
}

// Set writes a document as a single atomic upsert. The primary key on
// (collection, doc_id) decides between insert and update inside the store,
// so concurrent writers cannot both insert.
func (s *Store) Set(ctx context.Context, collection, docID string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	query := `
		INSERT INTO documents (collection, doc_id, data)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE data = VALUES(data)
	`

	if _, err := s.db.ExecContext(ctx, query, collection, docID, payload); err != nil {
		s.logger.Error("failed to set document", zap.Error(err),
			zap.String("collection", collection), zap.String("doc_id", docID))
		return fmt.Errorf("failed to set document: %w", err)
	}

	return nil
}
