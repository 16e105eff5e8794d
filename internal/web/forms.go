package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Validation messages mapped from form field failures. The handlers show
// these instead of validator's internal phrasing.
var (
	errFieldsRequired   = errors.New("Username and password are required")
	errLoginRequired    = errors.New("Please enter both username and password")
	errUsernameTooShort = errors.New("Username must be at least 3 characters long")
	errPasswordTooShort = errors.New("Password must be at least 6 characters long")
	errTitleRequired    = errors.New("Task title is required")
	errNameRequired     = errors.New("Category name is required")
	errBadPriority      = errors.New("Unknown task priority")
	errBadDueDate       = errors.New("Due date must be a valid calendar date")
	errBadCategoryRef   = errors.New("Unknown category")
)

// RegisterForm is the registration submission.
type RegisterForm struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6,max=72"`
}

// LoginForm is the login submission.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// TaskForm is the add-task submission after parsing.
type TaskForm struct {
	Title       string `validate:"required,max=255"`
	Description string
	Priority    domain.TaskPriority
	CategoryID  sql.NullInt64
	DueDate     sql.NullTime
}

// CategoryForm is the add-category submission.
type CategoryForm struct {
	Name  string `validate:"required,max=100"`
	Color string
}

// parseRegisterForm reads and validates the registration fields, mapping
// validator failures to the user-facing messages.
func parseRegisterForm(r *http.Request, validate *validator.Validate) (*RegisterForm, error) {
	form := &RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: strings.TrimSpace(r.PostFormValue("password")),
	}

	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, errFieldsRequired
		}
		for _, fe := range fieldErrs {
			switch {
			case fe.Tag() == "required":
				return nil, errFieldsRequired
			case fe.Field() == "Username":
				return nil, errUsernameTooShort
			default:
				return nil, errPasswordTooShort
			}
		}
	}

	return form, nil
}

// parseLoginForm reads and validates the login fields.
func parseLoginForm(r *http.Request, validate *validator.Validate) (*LoginForm, error) {
	form := &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: strings.TrimSpace(r.PostFormValue("password")),
	}

	if err := validate.Struct(form); err != nil {
		return nil, errLoginRequired
	}

	return form, nil
}

// parseTaskForm reads and validates the add-task fields. Empty category and
// due-date selections mean "none"; a malformed value in either is a
// validation error, not a silent null.
func parseTaskForm(r *http.Request, validate *validator.Validate) (*TaskForm, error) {
	form := &TaskForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Priority:    domain.TaskPriority(r.PostFormValue("priority")),
	}

	if form.Priority == "" {
		form.Priority = domain.TaskPriorityMedium
	}
	if !domain.IsValidTaskPriority(form.Priority) {
		return nil, errBadPriority
	}

	if raw := r.PostFormValue("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errBadCategoryRef
		}
		form.CategoryID = sql.NullInt64{Int64: id, Valid: true}
	}

	if raw := r.PostFormValue("due_date"); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errBadDueDate
		}
		form.DueDate = sql.NullTime{Time: due, Valid: true}
	}

	if err := validate.Struct(form); err != nil {
		return nil, errTitleRequired
	}

	return form, nil
}

// parseCategoryForm reads and validates the add-category fields. An empty
// color falls back to the domain default.
func parseCategoryForm(r *http.Request, validate *validator.Validate) (*CategoryForm, error) {
	form := &CategoryForm{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Color: strings.TrimSpace(r.PostFormValue("color")),
	}

	if err := validate.Struct(form); err != nil {
		return nil, errNameRequired
	}

	return form, nil
}
