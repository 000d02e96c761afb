// Package web holds the single-page front end served at "/".
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
