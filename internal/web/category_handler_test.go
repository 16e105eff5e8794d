package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/mocks"
	"github.com/taskdeck/taskdeck/internal/store"
)

func TestAddCategory(t *testing.T) {
	t.Parallel()

	t.Run("success with explicit color", func(t *testing.T) {
		t.Parallel()

		categories := mocks.NewMockCategoryStore()
		handler := NewCategoryHandler(categories, nil)

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/add_category", url.Values{
			"name":  {"Work"},
			"color": {"#ff0000"},
		}), 1, "alice")
		handler.AddCategory(rec, r)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, msgCategoryAdded, flashes[0].Message)

		saved, ok := categories.Get(1)
		require.True(t, ok)
		assert.Equal(t, "Work", saved.Name)
		assert.Equal(t, "#ff0000", saved.Color)
	})

	t.Run("empty color falls back to the default", func(t *testing.T) {
		t.Parallel()

		categories := mocks.NewMockCategoryStore()
		handler := NewCategoryHandler(categories, nil)

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/add_category", url.Values{
			"name": {"Personal"},
		}), 1, "alice")
		handler.AddCategory(rec, r)

		saved, ok := categories.Get(1)
		require.True(t, ok)
		assert.Equal(t, domain.DefaultCategoryColor, saved.Color)
	})

	t.Run("duplicate name for the same user", func(t *testing.T) {
		t.Parallel()

		categories := mocks.NewMockCategoryStore()
		handler := NewCategoryHandler(categories, nil)

		seed, err := domain.NewCategory(1, "Work", "")
		require.NoError(t, err)
		require.NoError(t, categories.Create(context.Background(), seed))

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/add_category", url.Values{
			"name": {"Work"},
		}), 1, "alice")
		handler.AddCategory(rec, r)

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, msgCategoryExists, flashes[0].Message)
		assert.Equal(t, FlashError, flashes[0].Level)
	})

	t.Run("same name under a different user is allowed", func(t *testing.T) {
		t.Parallel()

		categories := mocks.NewMockCategoryStore()
		handler := NewCategoryHandler(categories, nil)

		seed, err := domain.NewCategory(2, "Work", "")
		require.NoError(t, err)
		require.NoError(t, categories.Create(context.Background(), seed))

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/add_category", url.Values{
			"name": {"Work"},
		}), 1, "alice")
		handler.AddCategory(rec, r)

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, msgCategoryAdded, flashes[0].Message)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		handler := NewCategoryHandler(mocks.NewMockCategoryStore(), nil)

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/add_category", url.Values{}), 1, "alice")
		handler.AddCategory(rec, r)

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, errNameRequired.Error(), flashes[0].Message)
	})

	t.Run("invalid color", func(t *testing.T) {
		t.Parallel()

		handler := NewCategoryHandler(mocks.NewMockCategoryStore(), nil)

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/add_category", url.Values{
			"name":  {"Work"},
			"color": {"red"},
		}), 1, "alice")
		handler.AddCategory(rec, r)

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, FlashError, flashes[0].Level)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Parallel()

	t.Run("success leaves tasks uncategorized", func(t *testing.T) {
		t.Parallel()

		categories := mocks.NewMockCategoryStore()
		tasks := mocks.NewMockTaskStoreWith(categories)
		handler := NewCategoryHandler(categories, nil)

		seed, err := domain.NewCategory(1, "Work", "")
		require.NoError(t, err)
		require.NoError(t, categories.Create(context.Background(), seed))

		task, err := domain.NewTask(1, "Ship release", "", domain.TaskPriorityHigh)
		require.NoError(t, err)
		task.CategoryID.Int64 = seed.ID
		task.CategoryID.Valid = true
		require.NoError(t, tasks.Create(context.Background(), task))

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/delete_category/1", url.Values{}), 1, "alice")
		r = withURLParam(r, "categoryID", "1")
		handler.DeleteCategory(rec, r)

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, msgCategoryDeleted, flashes[0].Message)

		// The task survives, detached from the deleted category.
		saved, ok := tasks.Get(task.ID)
		require.True(t, ok)
		assert.False(t, saved.CategoryID.Valid)
	})

	t.Run("another user's category reports not found", func(t *testing.T) {
		t.Parallel()

		categories := mocks.NewMockCategoryStore()
		handler := NewCategoryHandler(categories, nil)

		seed, err := domain.NewCategory(2, "Theirs", "")
		require.NoError(t, err)
		require.NoError(t, categories.Create(context.Background(), seed))

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/delete_category/1", url.Values{}), 1, "alice")
		r = withURLParam(r, "categoryID", "1")
		handler.DeleteCategory(rec, r)

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, msgCategoryNotFound, flashes[0].Message)

		_, ok := categories.Get(seed.ID)
		assert.True(t, ok)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		categories := mocks.NewMockCategoryStore()
		categories.DeleteFn = func(ctx context.Context, _, _ int64) (bool, error) {
			return false, store.ErrStorageUnavailable
		}
		handler := NewCategoryHandler(categories, nil)

		rec := httptest.NewRecorder()
		r := withTestSession(newFormRequest(t, "/delete_category/1", url.Values{}), 1, "alice")
		r = withURLParam(r, "categoryID", "1")
		handler.DeleteCategory(rec, r)

		flashes := recordedFlashes(t, rec)
		require.Len(t, flashes, 1)
		assert.Equal(t, msgDashboardDown, flashes[0].Message)
	})
}
