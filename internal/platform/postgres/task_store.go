package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/store"
)

// Dashboard ordering: active work first, then by urgency, newest first
// within the same tier.
const (
	statusRankExpr   = "CASE t.status WHEN 'in_progress' THEN 1 WHEN 'pending' THEN 2 WHEN 'completed' THEN 3 END"
	priorityRankExpr = "CASE t.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 END"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db      store.DBTX
	logger  *slog.Logger
	builder squirrel.StatementBuilderType
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. If log is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		db:      db,
		logger:  log.With(slog.String("component", "task_store")),
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
// A carried category reference makes this a two-statement mutation: the
// category is re-selected by (id, user_id) and share-locked, then the task is
// inserted, both inside one transaction so a concurrent category delete waits
// instead of racing the insert. A failed pair leaves the store unchanged.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return store.ErrInvalidEntity
	}

	if task.CategoryID.Valid {
		if db, ok := s.db.(*sqlx.DB); ok {
			return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
				return s.withTx(tx).create(ctx, task)
			})
		}
	}
	return s.create(ctx, task)
}

func (s *TaskStore) create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.CategoryID.Valid {
		var categoryID int64
		checkQuery := `SELECT id FROM categories WHERE id = $1 AND user_id = $2 FOR SHARE`
		err := s.db.GetContext(ctx, &categoryID, checkQuery, task.CategoryID.Int64, task.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("task references a category not owned by the user",
				slog.Int64("user_id", task.UserID),
				slog.Int64("category_id", task.CategoryID.Int64))
			return store.ErrInvalidReference
		}
		if err != nil {
			return mapQueryError("check task category", err)
		}
	}

	query, args, err := s.builder.
		Insert("tasks").
		Columns("user_id", "category_id", "title", "description",
			"priority", "status", "due_date", "created_at", "updated_at").
		Values(task.UserID, task.CategoryID, task.Title, task.Description,
			task.Priority, task.Status, task.DueDate, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return mapQueryError("build create task", err)
	}

	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&task.ID); err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidReference
		}
		if isCheckViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return mapQueryError("create task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", task.UserID),
		slog.String("priority", string(task.Priority)))
	return nil
}

// ListByUser implements store.TaskStore.ListByUser.
func (s *TaskStore) ListByUser(ctx context.Context, userID int64) ([]domain.TaskWithCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.builder.
		Select("t.id", "t.user_id", "t.category_id", "t.title", "t.description",
			"t.priority", "t.status", "t.due_date", "t.created_at", "t.updated_at",
			"c.name AS category_name", "c.color AS category_color").
		From("tasks t").
		LeftJoin("categories c ON t.category_id = c.id").
		Where(squirrel.Eq{"t.user_id": userID}).
		OrderBy(statusRankExpr, priorityRankExpr, "t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, mapQueryError("build list tasks", err)
	}

	tasks := []domain.TaskWithCategory{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, mapQueryError("list tasks", err)
	}

	return tasks, nil
}

// Stats implements store.TaskStore.Stats.
// The COALESCEs keep the counts zero-valued when the user has no tasks.
func (s *TaskStore) Stats(ctx context.Context, userID int64) (domain.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress
		FROM tasks
		WHERE user_id = $1
	`

	var stats domain.TaskStats
	if err := s.db.GetContext(ctx, &stats, query, userID); err != nil {
		log.Error("failed to load task stats",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return domain.TaskStats{}, mapQueryError("task stats", err)
	}

	return stats, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus.
// The WHERE clause scopes the update to (id, user_id); the database's row
// atomicity is the only synchronization, concurrent writers are
// last-writer-wins.
func (s *TaskStore) UpdateStatus(ctx context.Context, userID, taskID int64, status domain.TaskStatus) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidTaskStatus(status) {
		return false, store.ErrInvalidEntity
	}

	query, args, err := s.builder.
		Update("tasks").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": taskID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, mapQueryError("build update task status", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isCheckViolation(err) {
			return false, store.ErrInvalidEntity
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID))
		return false, mapQueryError("update task status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, mapQueryError("update task status rows affected", err)
	}
	if rows == 0 {
		log.Debug("no task matched for status update",
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID))
		return false, nil
	}

	log.Info("task status updated",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID),
		slog.String("status", string(status)))
	return true, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, userID, taskID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.builder.
		Delete("tasks").
		Where(squirrel.Eq{"id": taskID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, mapQueryError("build delete task", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID))
		return false, mapQueryError("delete task", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, mapQueryError("delete task rows affected", err)
	}
	if rows == 0 {
		log.Debug("no task matched for delete",
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID))
		return false, nil
	}

	log.Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))
	return true, nil
}

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sqlx.Tx) store.TaskStore {
	return s.withTx(tx)
}

func (s *TaskStore) withTx(tx *sqlx.Tx) *TaskStore {
	return &TaskStore{
		db:      tx,
		logger:  s.logger,
		builder: s.builder,
	}
}
