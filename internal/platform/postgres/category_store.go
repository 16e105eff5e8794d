package postgres

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/store"
)

// CategoryStore implements the store.CategoryStore interface using a
// PostgreSQL database as the storage backend.
type CategoryStore struct {
	db      store.DBTX
	logger  *slog.Logger
	builder squirrel.StatementBuilderType
}

// NewCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface. If log is nil, a default logger will be used.
func NewCategoryStore(db store.DBTX, log *slog.Logger) *CategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CategoryStore{
		db:      db,
		logger:  log.With(slog.String("component", "category_store")),
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Ensure CategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*CategoryStore)(nil)

// Create implements store.CategoryStore.Create.
// The unique constraint on (user_id, name) is the enforcement point for
// duplicate names; a violation maps to store.ErrCategoryExists.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create",
			slog.String("error", err.Error()))
		return store.ErrInvalidEntity
	}

	query, args, err := s.builder.
		Insert("categories").
		Columns("user_id", "name", "color", "created_at").
		Values(category.UserID, category.Name, category.Color, category.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return mapQueryError("build create category", err)
	}

	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&category.ID); err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate category name",
				slog.Int64("user_id", category.UserID),
				slog.String("name", category.Name))
			return store.ErrCategoryExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrInvalidReference
		}
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.Int64("user_id", category.UserID))
		return mapQueryError("create category", err)
	}

	log.Info("category created",
		slog.Int64("category_id", category.ID),
		slog.Int64("user_id", category.UserID))
	return nil
}

// ListByUser implements store.CategoryStore.ListByUser.
func (s *CategoryStore) ListByUser(ctx context.Context, userID int64) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.builder.
		Select("id", "user_id", "name", "color", "created_at").
		From("categories").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, mapQueryError("build list categories", err)
	}

	categories := []domain.Category{}
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		log.Error("failed to list categories",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, mapQueryError("list categories", err)
	}

	return categories, nil
}

// Delete implements store.CategoryStore.Delete.
// Referencing tasks keep a null category via the schema's ON DELETE SET NULL.
func (s *CategoryStore) Delete(ctx context.Context, userID, categoryID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.builder.
		Delete("categories").
		Where(squirrel.Eq{"id": categoryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, mapQueryError("build delete category", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", categoryID),
			slog.Int64("user_id", userID))
		return false, mapQueryError("delete category", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, mapQueryError("delete category rows affected", err)
	}
	if rows == 0 {
		log.Debug("no category matched for delete",
			slog.Int64("category_id", categoryID),
			slog.Int64("user_id", userID))
		return false, nil
	}

	log.Info("category deleted",
		slog.Int64("category_id", categoryID),
		slog.Int64("user_id", userID))
	return true, nil
}

// WithTx implements store.CategoryStore.WithTx.
func (s *CategoryStore) WithTx(tx *sqlx.Tx) store.CategoryStore {
	return &CategoryStore{
		db:      tx,
		logger:  s.logger,
		builder: s.builder,
	}
}
