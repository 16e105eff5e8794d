package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation reproduces the dashboard's composite ordering so handler
// and end-to-end tests can assert on it.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, task *domain.Task) error
	ListByUserFn   func(ctx context.Context, userID int64) ([]domain.TaskWithCategory, error)
	StatsFn        func(ctx context.Context, userID int64) (domain.TaskStats, error)
	UpdateStatusFn func(ctx context.Context, userID, taskID int64, status domain.TaskStatus) (bool, error)
	DeleteFn       func(ctx context.Context, userID, taskID int64) (bool, error)

	// Categories, when set, backs the ownership check in Create and the
	// joined category fields in ListByUser.
	Categories *MockCategoryStore

	mu     sync.Mutex
	tasks  []domain.Task
	nextID int64
}

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{nextID: 1}
}

// NewMockTaskStoreWith creates a task store whose category references are
// checked against the given category store. Category deletions null out
// task references, like the real schema.
func NewMockTaskStoreWith(categories *MockCategoryStore) *MockTaskStore {
	m := &MockTaskStore{nextID: 1, Categories: categories}
	categories.OnDelete = m.clearCategoryRefs
	return m
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if task.CategoryID.Valid && m.Categories != nil &&
		!m.Categories.Owns(task.UserID, task.CategoryID.Int64) {
		return store.ErrInvalidReference
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	m.nextID++
	m.tasks = append(m.tasks, *task)
	return nil
}

// ListByUser implements the TaskStore interface.
func (m *MockTaskStore) ListByUser(ctx context.Context, userID int64) ([]domain.TaskWithCategory, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := []domain.TaskWithCategory{}
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		row := domain.TaskWithCategory{Task: task}
		if task.CategoryID.Valid && m.Categories != nil {
			if category, ok := m.Categories.Get(task.CategoryID.Int64); ok {
				row.CategoryName = sql.NullString{String: category.Name, Valid: true}
				row.CategoryColor = sql.NullString{String: category.Color, Valid: true}
			}
		}
		result = append(result, row)
	}

	sort.SliceStable(result, func(i, j int) bool {
		si, sj := domain.StatusRank(result[i].Status), domain.StatusRank(result[j].Status)
		if si != sj {
			return si < sj
		}
		pi, pj := domain.PriorityRank(result[i].Priority), domain.PriorityRank(result[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Stats implements the TaskStore interface.
func (m *MockTaskStore) Stats(ctx context.Context, userID int64) (domain.TaskStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var stats domain.TaskStats
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		stats.Total++
		switch task.Status {
		case domain.TaskStatusCompleted:
			stats.Completed++
		case domain.TaskStatusPending:
			stats.Pending++
		case domain.TaskStatusInProgress:
			stats.InProgress++
		}
	}
	return stats, nil
}

// UpdateStatus implements the TaskStore interface.
func (m *MockTaskStore) UpdateStatus(ctx context.Context, userID, taskID int64, status domain.TaskStatus) (bool, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, userID, taskID, status)
	}

	if !domain.IsValidTaskStatus(status) {
		return false, store.ErrInvalidEntity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == taskID && m.tasks[i].UserID == userID {
			m.tasks[i].Status = status
			m.tasks[i].UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, userID, taskID int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == taskID && m.tasks[i].UserID == userID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Get returns the stored task by ID regardless of owner.
func (m *MockTaskStore) Get(taskID int64) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, task := range m.tasks {
		if task.ID == taskID {
			return task, true
		}
	}
	return domain.Task{}, false
}

func (m *MockTaskStore) clearCategoryRefs(categoryID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].CategoryID.Valid && m.tasks[i].CategoryID.Int64 == categoryID {
			m.tasks[i].CategoryID = sql.NullInt64{}
		}
	}
}

// WithTx implements the TaskStore interface; the mock has no transactions.
func (m *MockTaskStore) WithTx(tx *sqlx.Tx) store.TaskStore {
	return m
}
