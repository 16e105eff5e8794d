package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
)

func newFormRequest(t *testing.T, target string, values url.Values) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseRegisterForm(t *testing.T) {
	t.Parallel()

	validate := validator.New()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "alice", password: "secret1"},
		{name: "whitespace trimmed", username: "  alice  ", password: " secret1 "},
		{name: "missing username", username: "", password: "secret1", wantErr: errFieldsRequired},
		{name: "missing password", username: "alice", password: "", wantErr: errFieldsRequired},
		{name: "whitespace-only username", username: "   ", password: "secret1", wantErr: errFieldsRequired},
		{name: "username too short", username: "ab", password: "secret1", wantErr: errUsernameTooShort},
		{name: "password too short", username: "alice", password: "12345", wantErr: errPasswordTooShort},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newFormRequest(t, "/register", url.Values{
				"username": {tc.username},
				"password": {tc.password},
			})

			form, err := parseRegisterForm(r, validate)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", form.Username)
		})
	}
}

func TestParseLoginForm(t *testing.T) {
	t.Parallel()

	validate := validator.New()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		r := newFormRequest(t, "/login", url.Values{
			"username": {"alice"},
			"password": {"secret1"},
		})

		form, err := parseLoginForm(r, validate)
		require.NoError(t, err)
		assert.Equal(t, "alice", form.Username)
		assert.Equal(t, "secret1", form.Password)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()

		r := newFormRequest(t, "/login", url.Values{"username": {"alice"}})

		_, err := parseLoginForm(r, validate)
		assert.ErrorIs(t, err, errLoginRequired)
	})
}

func TestParseTaskForm(t *testing.T) {
	t.Parallel()

	validate := validator.New()

	t.Run("full form", func(t *testing.T) {
		t.Parallel()

		r := newFormRequest(t, "/add", url.Values{
			"title":       {"Ship release"},
			"description": {"cut the tag"},
			"priority":    {"high"},
			"category":    {"5"},
			"due_date":    {"2026-09-15"},
		})

		form, err := parseTaskForm(r, validate)
		require.NoError(t, err)
		assert.Equal(t, "Ship release", form.Title)
		assert.Equal(t, domain.TaskPriorityHigh, form.Priority)
		require.True(t, form.CategoryID.Valid)
		assert.Equal(t, int64(5), form.CategoryID.Int64)
		require.True(t, form.DueDate.Valid)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), form.DueDate.Time)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		r := newFormRequest(t, "/add", url.Values{"title": {"Buy milk"}})

		form, err := parseTaskForm(r, validate)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskPriorityMedium, form.Priority)
		assert.False(t, form.CategoryID.Valid)
		assert.False(t, form.DueDate.Valid)
	})

	t.Run("rejections", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			values  url.Values
			wantErr error
		}{
			{
				name:    "missing title",
				values:  url.Values{"title": {"   "}},
				wantErr: errTitleRequired,
			},
			{
				name:    "unknown priority",
				values:  url.Values{"title": {"x"}, "priority": {"urgent"}},
				wantErr: errBadPriority,
			},
			{
				name:    "malformed category",
				values:  url.Values{"title": {"x"}, "category": {"abc"}},
				wantErr: errBadCategoryRef,
			},
			{
				name:    "non-positive category",
				values:  url.Values{"title": {"x"}, "category": {"0"}},
				wantErr: errBadCategoryRef,
			},
			{
				name:    "impossible date",
				values:  url.Values{"title": {"x"}, "due_date": {"2026-02-30"}},
				wantErr: errBadDueDate,
			},
			{
				name:    "malformed date",
				values:  url.Values{"title": {"x"}, "due_date": {"15/09/2026"}},
				wantErr: errBadDueDate,
			},
		}

		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				_, err := parseTaskForm(newFormRequest(t, "/add", tc.values), validate)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestParseCategoryForm(t *testing.T) {
	t.Parallel()

	validate := validator.New()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		r := newFormRequest(t, "/add_category", url.Values{
			"name":  {"Work"},
			"color": {"#ff0000"},
		})

		form, err := parseCategoryForm(r, validate)
		require.NoError(t, err)
		assert.Equal(t, "Work", form.Name)
		assert.Equal(t, "#ff0000", form.Color)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		_, err := parseCategoryForm(newFormRequest(t, "/add_category", url.Values{}), validate)
		assert.ErrorIs(t, err, errNameRequired)
	})
}
