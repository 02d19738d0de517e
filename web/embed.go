// Package web holds the page templates and static assets compiled into the
// binary.
package web

import "embed"

// TemplatesFS contains index.html (full page) and summary.html (the
// "summary" partial reloaded after every accepted submission).
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS contains the stylesheet and the small htmx glue script.
//
//go:embed static/*
var StaticFS embed.FS
