// Package templates holds the embedded page and mail templates.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
	texttemplate "text/template"
)

//go:embed html/*.html html/catalog/*.html html/account/*.html
var htmlFS embed.FS

//go:embed mail/*.txt
var mailFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"nutriscoreClass": func(score string) string {
		if score == "" {
			return "nutriscore-unknown"
		}
		return "nutriscore-" + score
	},
}

// Pages parses every HTML page. Each file defines a template named after
// its path, for example "catalog/detail.html".
func Pages() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(htmlFS,
		"html/*.html", "html/catalog/*.html", "html/account/*.html")
}

func ActivationMail() (*texttemplate.Template, error) {
	return texttemplate.ParseFS(mailFS, "mail/activation.txt")
}

// Assets returns the static files served under /static/.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
