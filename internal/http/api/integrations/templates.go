package integrations

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the HTML views served by integration endpoints.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
