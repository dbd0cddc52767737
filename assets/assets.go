// Package assets embeds the web page sources served by the HTTP server.
package assets

import _ "embed"

// IndexTemplate is the HTML template of the index page.
//
//go:embed index.html.tpl
var IndexTemplate string

// StyleCSS is inlined into the index page.
//
//go:embed style.css
var StyleCSS string
