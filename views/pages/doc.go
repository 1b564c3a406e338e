// Package pages holds the HTML pages served under /ui.
package pages

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate
