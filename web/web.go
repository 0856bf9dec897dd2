// Package web встроенные в бинарник шаблоны страниц и статика.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
