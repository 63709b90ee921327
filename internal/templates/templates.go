// Package templates embeds the server-rendered pages. Each page file is a
// complete document built from the partials in layout.html.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page and partial into one set named by file name
func Load() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
