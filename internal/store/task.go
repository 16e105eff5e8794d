package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every operation selects rows by (id, user_id), never id alone, so a
// guessable numeric ID is useless across users.
type TaskStore interface {
	// Create saves a new task and fills in the assigned ID.
	// If the task carries a category reference, the category must belong to
	// the task's owner; Create returns ErrInvalidReference otherwise.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUser returns the user's tasks joined with their category name and
	// color, ordered by status rank (in_progress, pending, completed), then
	// priority rank (high, medium, low), then creation time descending.
	ListByUser(ctx context.Context, userID int64) ([]domain.TaskWithCategory, error)

	// Stats returns the user's task counts by status; all zero when the user
	// has no tasks.
	Stats(ctx context.Context, userID int64) (domain.TaskStats, error)

	// UpdateStatus sets the status of the user's task and refreshes its
	// updated timestamp. Returns false with a nil error when no row matched
	// (unknown ID, or a task owned by someone else).
	// Statuses outside the enumeration are rejected with ErrInvalidEntity.
	UpdateStatus(ctx context.Context, userID, taskID int64, status domain.TaskStatus) (bool, error)

	// Delete removes the user's task. Returns false with a nil error when no
	// row matched.
	Delete(ctx context.Context, userID, taskID int64) (bool, error)

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sqlx.Tx) TaskStore
}
