package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/service/auth"
	"github.com/taskdeck/taskdeck/internal/store"
)

// User-facing messages for the authentication routes. The login failure
// message is identical for an unknown username and a wrong password so the
// response carries no username-enumeration signal.
const (
	msgRegisterSuccess    = "Registration successful! Please log in."
	msgUsernameTaken      = "Username already exists. Please choose another."
	msgRegisterFailed     = "Registration failed. Please try again."
	msgInvalidCredentials = "Invalid username or password"
	msgLoginFailed        = "Login failed. Please try again."
	msgStorageDown        = "Database connection error. Please try again later."
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users    store.UserStore
	sessions auth.SessionService
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	renderer *Renderer
	validate *validator.Validate
	lifetime time.Duration
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	users store.UserStore,
	sessions auth.SessionService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	renderer *Renderer,
	lifetime time.Duration,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	if lifetime <= 0 {
		lifetime = auth.DefaultSessionLifetime
	}

	return &AuthHandler{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		verifier: verifier,
		renderer: renderer,
		validate: validator.New(),
		lifetime: lifetime,
		logger:   log.With(slog.String("component", "auth_handler")),
	}
}

// Landing handles GET /. Authenticated users go straight to the dashboard.
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "landing", &ViewData{
		Title:   "Taskdeck",
		Flashes: PopFlashes(w, r),
	})
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "register", &ViewData{
		Title:   "Register",
		Flashes: PopFlashes(w, r),
	})
}

// Register handles POST /register. On success the user is sent to the login
// page; a session is deliberately not started.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := parseRegisterForm(r, h.validate)
	if err != nil {
		h.rerenderRegister(w, r, err.Error())
		return
	}

	user, err := domain.NewUser(form.Username, form.Password)
	if err != nil {
		h.rerenderRegister(w, r, err.Error())
		return
	}

	hashed, err := h.hasher.Hash(form.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		h.rerenderRegister(w, r, msgRegisterFailed)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.users.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			h.rerenderRegister(w, r, msgUsernameTaken)
		case store.IsUnavailableError(err):
			h.rerenderRegister(w, r, msgStorageDown)
		default:
			log.Error("failed to create user", slog.String("error", err.Error()))
			h.rerenderRegister(w, r, msgRegisterFailed)
		}
		return
	}

	SetFlashes(w, Flash{Message: msgRegisterSuccess, Level: FlashSuccess})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "login", &ViewData{
		Title:   "Log in",
		Flashes: PopFlashes(w, r),
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := parseLoginForm(r, h.validate)
	if err != nil {
		h.rerenderLogin(w, r, err.Error())
		return
	}

	user, err := h.users.GetByUsername(r.Context(), form.Username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			h.rerenderLogin(w, r, msgInvalidCredentials)
		case store.IsUnavailableError(err):
			h.rerenderLogin(w, r, msgStorageDown)
		default:
			log.Error("failed to look up user", slog.String("error", err.Error()))
			h.rerenderLogin(w, r, msgLoginFailed)
		}
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, form.Password); err != nil {
		h.rerenderLogin(w, r, msgInvalidCredentials)
		return
	}

	token, err := h.sessions.Issue(r.Context(), user.ID, user.Username)
	if err != nil {
		log.Error("failed to issue session",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		h.rerenderLogin(w, r, msgLoginFailed)
		return
	}

	SetSessionCookie(w, token, h.lifetime)
	SetFlashes(w, Flash{Message: "Welcome back, " + user.Username + "!", Level: FlashSuccess})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles GET /logout. The goodbye message uses the pre-clear
// username, falling back to "User" when no session was active.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := "User"
	if claims := SessionFromContext(r.Context()); claims != nil {
		username = claims.Username
	}

	ClearSessionCookie(w)
	SetFlashes(w, Flash{
		Message: "Goodbye " + username + "! You have been logged out successfully.",
		Level:   FlashSuccess,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) rerenderRegister(w http.ResponseWriter, r *http.Request, message string) {
	h.renderer.Render(w, r, http.StatusOK, "register", &ViewData{
		Title:   "Register",
		Flashes: []Flash{{Message: message, Level: FlashError}},
	})
}

func (h *AuthHandler) rerenderLogin(w http.ResponseWriter, r *http.Request, message string) {
	h.renderer.Render(w, r, http.StatusOK, "login", &ViewData{
		Title:   "Log in",
		Flashes: []Flash{{Message: message, Level: FlashError}},
	})
}
