package repository

import (
	"context"
	"errors"

	"legalvoice/internal/model"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document ID format")
)

// DocumentRepository defines read access to stored documents
type DocumentRepository interface {
	// List returns every document in the collection
	List(ctx context.Context) ([]model.Document, error)

	// GetByID returns one document. Malformed ids yield ErrInvalidID and
	// absent ones ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Document, error)
}
