package server

import (
	"bytes"
	"strconv"
	"text/template"

	"github.com/woozymasta/parallax/assets"
	"github.com/woozymasta/parallax/internal/report"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

type indexData struct {
	Title  string
	CSS    string
	Report report.Report
}

var indexFuncs = template.FuncMap{
	"num": func(v *float64, prec int) string {
		if v == nil {
			return "-"
		}
		return strconv.FormatFloat(*v, 'f', prec, 64)
	},
}

// BuildIndex renders the index page for the report and minifies it.
func BuildIndex(title string, r report.Report) ([]byte, error) {
	if title == "" {
		title = "Parallax observations"
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)

	cssMin, err := m.String("text/css", assets.StyleCSS)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("index").Funcs(indexFuncs).Parse(assets.IndexTemplate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, indexData{Title: title, CSS: cssMin, Report: r}); err != nil {
		return nil, err
	}

	return m.Bytes("text/html", buf.Bytes())
}
