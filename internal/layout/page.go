package layout

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"spacex-dashboard/internal/binding"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

type pageData struct {
	Layout      Layout
	Figures     map[string]template.HTML
	CallbackURL string
}

// RenderPage writes the dashboard HTML with the initial figures already in
// their placeholders. callbackURL is where the page posts control changes.
func RenderPage(w io.Writer, l Layout, initial []binding.Update, callbackURL string) error {
	figures := make(map[string]template.HTML, len(initial))
	for _, u := range initial {
		// SVG comes from our own renderer, not from user input
		figures[u.Output] = template.HTML(u.SVG)
	}

	data := pageData{
		Layout:      l,
		Figures:     figures,
		CallbackURL: callbackURL,
	}
	if err := pageTemplate.ExecuteTemplate(w, "dashboard.html.tmpl", data); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}
	return nil
}
