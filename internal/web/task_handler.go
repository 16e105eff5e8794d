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

// User-facing messages for the task routes.
const (
	msgTaskAdded        = "Task added successfully!"
	msgTaskAddFailed    = "Failed to add task"
	msgTaskUpdated      = "Task status updated!"
	msgTaskUpdateFailed = "Failed to update task"
	msgTaskDeleted      = "Task deleted successfully!"
	msgTaskDeleteFailed = "Failed to delete task"
	msgTaskNotFound     = "Task not found"
	msgDashboardDown    = "Database connection error"
	msgDashboardFailed  = "Error loading dashboard"
)

// TaskHandler handles the dashboard and the task mutation routes. Every
// route here sits behind RequireSession.
type TaskHandler struct {
	tasks      store.TaskStore
	categories store.CategoryStore
	renderer   *Renderer
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	tasks store.TaskStore,
	categories store.CategoryStore,
	renderer *Renderer,
	log *slog.Logger,
) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		tasks:      tasks,
		categories: categories,
		renderer:   renderer,
		validate:   validator.New(),
		logger:     log.With(slog.String("component", "task_handler")),
	}
}

// Dashboard handles GET /dashboard. A storage failure degrades to empty
// lists and zero stats plus an error message; it never propagates.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := SessionFromContext(r.Context())
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	flashes := PopFlashes(w, r)
	data := DashboardData{}

	categories, err := h.categories.ListByUser(r.Context(), claims.UserID)
	if err == nil {
		data.Categories = categories

		data.Tasks, err = h.tasks.ListByUser(r.Context(), claims.UserID)
	}
	if err == nil {
		data.Stats, err = h.tasks.Stats(r.Context(), claims.UserID)
	}

	if err != nil {
		log.Error("failed to load dashboard",
			slog.String("error", err.Error()),
			slog.Int64("user_id", claims.UserID))
		message := msgDashboardFailed
		if store.IsUnavailableError(err) {
			message = msgDashboardDown
		}
		flashes = append(flashes, Flash{Message: message, Level: FlashError})
		data = DashboardData{}
	}

	h.renderer.Render(w, r, http.StatusOK, "dashboard", &ViewData{
		Title:    "Dashboard",
		Username: claims.Username,
		Flashes:  flashes,
		Data:     data,
	})
}

// AddTask handles POST /add. New tasks always start pending.
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	claims := SessionFromContext(r.Context())
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := parseTaskForm(r, h.validate)
	if err != nil {
		h.redirectWithFlash(w, r, Flash{Message: err.Error(), Level: FlashError})
		return
	}

	task, err := domain.NewTask(claims.UserID, form.Title, form.Description, form.Priority)
	if err != nil {
		h.redirectWithFlash(w, r, Flash{Message: err.Error(), Level: FlashError})
		return
	}
	task.CategoryID = form.CategoryID
	task.DueDate = form.DueDate

	if err := h.tasks.Create(r.Context(), task); err != nil {
		message := msgTaskAddFailed
		switch {
		case errors.Is(err, store.ErrInvalidReference):
			message = errBadCategoryRef.Error()
		case store.IsUnavailableError(err):
			message = msgDashboardDown
		default:
			log.Error("failed to add task",
				slog.String("error", err.Error()),
				slog.Int64("user_id", claims.UserID))
		}
		h.redirectWithFlash(w, r, Flash{Message: message, Level: FlashError})
		return
	}

	h.redirectWithFlash(w, r, Flash{Message: msgTaskAdded, Level: FlashSuccess})
}

// UpdateTaskStatus handles POST /update/{taskID}. A mutation that matches no
// (id, user) pair reports "not found" rather than failing.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	claims := SessionFromContext(r.Context())
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		h.redirectWithFlash(w, r, Flash{Message: msgTaskNotFound, Level: FlashError})
		return
	}

	status := domain.TaskStatus(r.PostFormValue("status"))
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !domain.IsValidTaskStatus(status) {
		h.redirectWithFlash(w, r, Flash{Message: "Unknown task status", Level: FlashError})
		return
	}

	changed, err := h.tasks.UpdateStatus(r.Context(), claims.UserID, taskID, status)
	if err != nil {
		message := msgTaskUpdateFailed
		if store.IsUnavailableError(err) {
			message = msgDashboardDown
		} else {
			log.Error("failed to update task status",
				slog.String("error", err.Error()),
				slog.Int64("task_id", taskID),
				slog.Int64("user_id", claims.UserID))
		}
		h.redirectWithFlash(w, r, Flash{Message: message, Level: FlashError})
		return
	}

	if !changed {
		h.redirectWithFlash(w, r, Flash{Message: msgTaskNotFound, Level: FlashError})
		return
	}
	h.redirectWithFlash(w, r, Flash{Message: msgTaskUpdated, Level: FlashSuccess})
}

// DeleteTask handles POST /delete/{taskID}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	claims := SessionFromContext(r.Context())
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		h.redirectWithFlash(w, r, Flash{Message: msgTaskNotFound, Level: FlashError})
		return
	}

	changed, err := h.tasks.Delete(r.Context(), claims.UserID, taskID)
	if err != nil {
		message := msgTaskDeleteFailed
		if store.IsUnavailableError(err) {
			message = msgDashboardDown
		} else {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", taskID),
				slog.Int64("user_id", claims.UserID))
		}
		h.redirectWithFlash(w, r, Flash{Message: message, Level: FlashError})
		return
	}

	if !changed {
		h.redirectWithFlash(w, r, Flash{Message: msgTaskNotFound, Level: FlashError})
		return
	}
	h.redirectWithFlash(w, r, Flash{Message: msgTaskDeleted, Level: FlashSuccess})
}

func (h *TaskHandler) redirectWithFlash(w http.ResponseWriter, r *http.Request, flash Flash) {
	SetFlashes(w, flash)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
