// Package todos provides repositories for to-do item persistence: a
// DynamoDB implementation used in production, a PostgreSQL implementation,
// and an in-memory implementation for tests and local runs.
package todos

import (
	"context"

	"github.com/dmitrijs2005/todovault/internal/server/models"
)

// Repository is the item-store contract the service layer depends on.
//
// Semantics follow the backing store, not the business layer: Create
// overwrites silently on id collision, Update and Delete do not check
// existence. Callers that need existence or ownership guarantees perform
// them before calling.
type Repository interface {
	// GetByID returns the item or common.ErrorNotFound when no record exists.
	GetByID(ctx context.Context, todoID string) (*models.TodoItem, error)

	// Exists reports whether a record with the given id is present.
	Exists(ctx context.Context, todoID string) (bool, error)

	// Create inserts the item unconditionally.
	Create(ctx context.Context, item *models.TodoItem) error

	// ListByOwner returns all items owned by userID. Order is whatever the
	// secondary index yields.
	ListByOwner(ctx context.Context, userID string) ([]*models.TodoItem, error)

	// Update replaces the three mutable fields of the item.
	Update(ctx context.Context, todoID string, update *models.TodoUpdate) error

	// UpdateAttachmentURL sets only the attachment URL field.
	UpdateAttachmentURL(ctx context.Context, todoID string, url string) error

	// Delete removes the item. Deleting an absent id is not an error.
	Delete(ctx context.Context, todoID string) error
}
