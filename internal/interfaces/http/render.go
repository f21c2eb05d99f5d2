package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// page templates, each is parsed together with the layout
var pages = []string{"landing", "courses", "course", "module", "error"}

// TemplateRenderer echo.Renderer over html/template
type TemplateRenderer struct {
	templates map[string]*template.Template
}

var _ echo.Renderer = &TemplateRenderer{}

var templateFuncs = template.FuncMap{
	"pathEscape": func(id domain.ID) string {
		return url.PathEscape(id.String())
	},
	"percent": func(p domain.ModuleProgress) string {
		return fmt.Sprintf("%.0f", p.Percent())
	},
}

// NewTemplateRenderer parse the embedded page templates
func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render implement echo.Renderer
func (tr *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := tr.templates[name]
	if !ok {
		return fmt.Errorf("unknown template: %s", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
