package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"regexp"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names, one per content file under templates/.
const (
	pageBrowse = "browse"
	pageVOC    = "voc"
	pageIssues = "issues"
	pageDetail = "detail"
)

var funcs = template.FuncMap{
	"colorStyle": colorStyle,
}

// parsePages parses the layout once and clones it for every page so that
// each page can define its own "content" block.
func parsePages() (map[string]*template.Template, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{pageBrowse, pageVOC, pageIssues, pageDetail} {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// render executes the base layout with the named page's content.
func (s *Server) render(w http.ResponseWriter, status int, page string, data *pageData) {
	t, ok := s.pages[page]
	if !ok {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		s.log.Errorw("template exec failed", "page", page, "error", err)
	}
}

var colorToken = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|var\(--[a-z0-9-]+\))$`)

// colorStyle returns a CSS color declaration for a palette colour.
// Values outside the palette grammar fall back to the default token.
func colorStyle(color string) template.CSS {
	if !colorToken.MatchString(color) {
		color = domain.DefaultColor
	}
	return template.CSS("color: " + color + ";")
}
