package domain

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong    = errors.New("task title must be at most 255 characters long")
	ErrEmptyTaskUserID     = errors.New("task user ID cannot be empty")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
)

// Task is a single to-do item owned by a user, optionally filed under one of
// the owner's categories. CategoryID and DueDate are nullable.
type Task struct {
	ID          int64         `db:"id" json:"id"`
	UserID      int64         `db:"user_id" json:"user_id"`
	CategoryID  sql.NullInt64 `db:"category_id" json:"category_id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Priority    TaskPriority  `db:"priority" json:"priority"`
	Status      TaskStatus    `db:"status" json:"status"`
	DueDate     sql.NullTime  `db:"due_date" json:"due_date"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// TaskWithCategory is a Task joined with its category's display fields for
// the dashboard. The category fields are null when the task has no category.
type TaskWithCategory struct {
	Task
	CategoryName  sql.NullString `db:"category_name" json:"category_name"`
	CategoryColor sql.NullString `db:"category_color" json:"category_color"`
}

// TaskStats aggregates a user's task counts by status.
type TaskStats struct {
	Total      int `db:"total" json:"total"`
	Completed  int `db:"completed" json:"completed"`
	Pending    int `db:"pending" json:"pending"`
	InProgress int `db:"in_progress" json:"in_progress"`
}

// NewTask creates a Task owned by userID. New tasks always start pending;
// an empty priority falls back to medium. Returns an error if validation fails.
func NewTask(userID int64, title, description string, priority TaskPriority) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's fields.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTaskUserID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if len(t.Title) > 255 {
		return ErrTaskTitleTooLong
	}
	if !IsValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}
	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}
	return nil
}

// IsValidTaskPriority reports whether priority is one of the known values.
func IsValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// IsValidTaskStatus reports whether status is one of the known values.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// StatusRank returns the dashboard ordering rank for a status:
// in_progress sorts first, then pending, then completed.
func StatusRank(status TaskStatus) int {
	switch status {
	case TaskStatusInProgress:
		return 1
	case TaskStatusPending:
		return 2
	case TaskStatusCompleted:
		return 3
	default:
		return 4
	}
}

// PriorityRank returns the dashboard ordering rank for a priority:
// high sorts first, then medium, then low.
func PriorityRank(priority TaskPriority) int {
	switch priority {
	case TaskPriorityHigh:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 3
	default:
		return 4
	}
}
