package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing.
type MockCategoryStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, category *domain.Category) error
	ListByUserFn func(ctx context.Context, userID int64) ([]domain.Category, error)
	DeleteFn     func(ctx context.Context, userID, categoryID int64) (bool, error)

	// Data for the default implementation
	mu         sync.Mutex
	categories []domain.Category
	nextID     int64

	// OnDelete is invoked with the deleted category's ID so a paired
	// MockTaskStore can null out references, mirroring ON DELETE SET NULL.
	OnDelete func(categoryID int64)
}

// NewMockCategoryStore creates a new mock store with initialized defaults.
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{nextID: 1}
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// Create implements the CategoryStore interface.
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.UserID == category.UserID && existing.Name == category.Name {
			return store.ErrCategoryExists
		}
	}

	category.ID = m.nextID
	m.nextID++
	m.categories = append(m.categories, *category)
	return nil
}

// ListByUser implements the CategoryStore interface.
func (m *MockCategoryStore) ListByUser(ctx context.Context, userID int64) ([]domain.Category, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := []domain.Category{}
	for _, category := range m.categories {
		if category.UserID == userID {
			result = append(result, category)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete implements the CategoryStore interface.
func (m *MockCategoryStore) Delete(ctx context.Context, userID, categoryID int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, categoryID)
	}

	m.mu.Lock()
	for i, category := range m.categories {
		if category.ID == categoryID && category.UserID == userID {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			m.mu.Unlock()
			if m.OnDelete != nil {
				m.OnDelete(categoryID)
			}
			return true, nil
		}
	}
	m.mu.Unlock()
	return false, nil
}

// Owns reports whether the category exists and belongs to userID.
func (m *MockCategoryStore) Owns(userID, categoryID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, category := range m.categories {
		if category.ID == categoryID && category.UserID == userID {
			return true
		}
	}
	return false
}

// Get returns the stored category by ID.
func (m *MockCategoryStore) Get(categoryID int64) (domain.Category, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, category := range m.categories {
		if category.ID == categoryID {
			return category, true
		}
	}
	return domain.Category{}, false
}

// WithTx implements the CategoryStore interface; the mock has no transactions.
func (m *MockCategoryStore) WithTx(tx *sqlx.Tx) store.CategoryStore {
	return m
}
