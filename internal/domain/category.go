package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// DefaultCategoryColor is applied when a category is created without an
// explicit color.
const DefaultCategoryColor = "#667eea"

// Common validation errors for Category
var (
	ErrEmptyCategoryName    = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong  = errors.New("category name must be at most 100 characters long")
	ErrInvalidCategoryColor = errors.New("category color must be a hex value like #1a2b3c")
	ErrEmptyCategoryUserID  = errors.New("category user ID cannot be empty")
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category groups a user's tasks under a named, colored label.
// The (UserID, Name) pair is unique per user; the store enforces it.
type Category struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewCategory creates a Category owned by userID. An empty color falls back
// to DefaultCategoryColor. Returns an error if validation fails.
func NewCategory(userID int64, name, color string) (*Category, error) {
	if color == "" {
		color = DefaultCategoryColor
	}

	category := &Category{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks the Category's fields.
func (c *Category) Validate() error {
	if c.UserID <= 0 {
		return ErrEmptyCategoryUserID
	}
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > 100 {
		return ErrCategoryNameTooLong
	}
	if !hexColorPattern.MatchString(c.Color) {
		return ErrInvalidCategoryColor
	}
	return nil
}
