package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/store"
)

// User-facing messages for the category routes.
const (
	msgCategoryAdded        = "Category added successfully!"
	msgCategoryAddFailed    = "Failed to add category"
	msgCategoryExists       = "You already have a category with that name"
	msgCategoryDeleted      = "Category deleted successfully!"
	msgCategoryDeleteFailed = "Failed to delete category"
	msgCategoryNotFound     = "Category not found"
)

// CategoryHandler handles the category mutation routes. Every route here
// sits behind RequireSession.
type CategoryHandler struct {
	categories store.CategoryStore
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler with the given
// dependencies.
func NewCategoryHandler(categories store.CategoryStore, log *slog.Logger) *CategoryHandler {
	if log == nil {
		log = slog.Default()
	}

	return &CategoryHandler{
		categories: categories,
		validate:   validator.New(),
		logger:     log.With(slog.String("component", "category_handler")),
	}
}

// AddCategory handles POST /add_category. A duplicate name is reported as a
// conflict distinct from a generic failure.
func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	claims := SessionFromContext(r.Context())
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := parseCategoryForm(r, h.validate)
	if err != nil {
		h.redirectWithFlash(w, r, Flash{Message: err.Error(), Level: FlashError})
		return
	}

	category, err := domain.NewCategory(claims.UserID, form.Name, form.Color)
	if err != nil {
		h.redirectWithFlash(w, r, Flash{Message: err.Error(), Level: FlashError})
		return
	}

	if err := h.categories.Create(r.Context(), category); err != nil {
		message := msgCategoryAddFailed
		switch {
		case errors.Is(err, store.ErrCategoryExists):
			message = msgCategoryExists
		case store.IsUnavailableError(err):
			message = msgDashboardDown
		default:
			log.Error("failed to add category",
				slog.String("error", err.Error()),
				slog.Int64("user_id", claims.UserID))
		}
		h.redirectWithFlash(w, r, Flash{Message: message, Level: FlashError})
		return
	}

	h.redirectWithFlash(w, r, Flash{Message: msgCategoryAdded, Level: FlashSuccess})
}

// DeleteCategory handles POST /delete_category/{categoryID}. Tasks filed
// under the deleted category are left uncategorized, not dangling.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	claims := SessionFromContext(r.Context())
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		h.redirectWithFlash(w, r, Flash{Message: msgCategoryNotFound, Level: FlashError})
		return
	}

	changed, err := h.categories.Delete(r.Context(), claims.UserID, categoryID)
	if err != nil {
		message := msgCategoryDeleteFailed
		if store.IsUnavailableError(err) {
			message = msgDashboardDown
		} else {
			log.Error("failed to delete category",
				slog.String("error", err.Error()),
				slog.Int64("category_id", categoryID),
				slog.Int64("user_id", claims.UserID))
		}
		h.redirectWithFlash(w, r, Flash{Message: message, Level: FlashError})
		return
	}

	if !changed {
		h.redirectWithFlash(w, r, Flash{Message: msgCategoryNotFound, Level: FlashError})
		return
	}
	h.redirectWithFlash(w, r, Flash{Message: msgCategoryDeleted, Level: FlashSuccess})
}

func (h *CategoryHandler) redirectWithFlash(w http.ResponseWriter, r *http.Request, flash Flash) {
	SetFlashes(w, flash)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
