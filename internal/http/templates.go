package http

import (
	"html"
	"html/template"
	"path/filepath"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// templateFuncs are available in every page template.
var templateFuncs = template.FuncMap{
	// Stored text has its markup escaped on the way in; undo that before
	// html/template escapes it again on the way out.
	"text": html.UnescapeString,
	"date": entities.FormatDate,
	"selected": func(current string, id uint) bool {
		return current != "" && current == uintString(id)
	},
}

// LoadTemplates parses every *.html file in dir.
func LoadTemplates(dir string) (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseGlob(filepath.Join(dir, "*.html"))
}
