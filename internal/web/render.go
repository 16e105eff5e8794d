package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// ViewData is everything a template receives. Rendering is a pure function
// of this value; templates hold no behavior of their own.
type ViewData struct {
	Title    string
	Username string
	Flashes  []Flash
	Data     any
}

// DashboardData is the page payload for the dashboard view.
type DashboardData struct {
	Categories []domain.Category
	Tasks      []domain.TaskWithCategory
	Stats      domain.TaskStats
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewRenderer parses the embedded templates. It panics on a parse failure
// since a broken template set is a build defect, not a runtime condition.
func NewRenderer(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}

	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:    log.With(slog.String("component", "renderer")),
	}
}

// Render writes the named page with the given status code and data.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data *ViewData) {
	log := logger.FromContextOrDefault(r.Context(), rd.logger)

	if data == nil {
		data = &ViewData{}
	}
	if data.Username == "" {
		if claims := SessionFromContext(r.Context()); claims != nil {
			data.Username = claims.Username
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rd.templates.ExecuteTemplate(w, page+".html", data); err != nil {
		// Headers are already written; all that is left is to log.
		log.Error("failed to execute template",
			slog.String("template", page),
			slog.String("error", err.Error()))
	}
}

// RenderNotFound writes the dedicated 404 page.
func (rd *Renderer) RenderNotFound(w http.ResponseWriter, r *http.Request) {
	rd.Render(w, r, http.StatusNotFound, "404", &ViewData{Title: "Page Not Found"})
}

// RenderServerError writes the dedicated 500 page.
func (rd *Renderer) RenderServerError(w http.ResponseWriter, r *http.Request) {
	rd.Render(w, r, http.StatusInternalServerError, "500", &ViewData{Title: "Something Went Wrong"})
}
