package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
// Every operation is scoped by the owning user's ID; a category is never
// visible or mutable outside its owner.
type CategoryStore interface {
	// Create saves a new category and fills in the assigned ID.
	// Returns ErrCategoryExists if the (user, name) pair is already taken.
	Create(ctx context.Context, category *domain.Category) error

	// ListByUser returns the user's categories ordered alphabetically by name.
	ListByUser(ctx context.Context, userID int64) ([]domain.Category, error)

	// Delete removes the category with the given ID if it belongs to userID.
	// Tasks referencing it are left with a null category by the schema's
	// ON DELETE SET NULL. Returns false with a nil error when no row matched.
	Delete(ctx context.Context, userID, categoryID int64) (bool, error)

	// WithTx returns a CategoryStore bound to the given transaction.
	WithTx(tx *sqlx.Tx) CategoryStore
}
