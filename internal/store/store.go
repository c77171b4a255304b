// Package store persists todo items keyed by (userId, todoId).
package store

import (
	"context"
	"errors"

	"github.com/ytakahashi/todo-backend/internal/models"
)

var (
	// ErrNotFound is returned by Update and SetAttachment when no item
	// matches the key. Backends that would silently upsert are made to
	// report it.
	ErrNotFound = errors.New("todo not found")

	// ErrAlreadyExists is returned by Create on a duplicate key.
	ErrAlreadyExists = errors.New("todo already exists")
)

// TodoStore is the data-access contract shared by every backend. All
// operations are scoped to a single owner.
type TodoStore interface {
	// List returns the owner's items newest first. It never returns a nil
	// slice on success.
	List(ctx context.Context, userID string) ([]models.Todo, error)
	Create(ctx context.Context, todo models.Todo) (models.Todo, error)
	Update(ctx context.Context, userID, todoID string, req models.UpdateTodoRequest) error
	// Delete succeeds when the item is already gone.
	Delete(ctx context.Context, userID, todoID string) error
	SetAttachment(ctx context.Context, userID, todoID, url string) error
}
