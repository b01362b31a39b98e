// Package demopage renders the captcha demo page: an image taken verbatim
// from the url query parameter next to a fixed, pre-solved result text.
//
// The page performs no recognition and never fetches the image itself; the
// browser loads it straight from the given URL, and a missing or broken URL
// simply shows as a broken image. A small inline script re-reads the query
// parameter on load, so the same document works unchanged when served as a
// static file.
package demopage

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

// DefaultSolvedText is the fixed result text shown for every captcha. It is
// identical on every render regardless of the image.
const DefaultSolvedText = "Simulated solved text"

// DefaultTitle is used when no title is provided.
const DefaultTitle = "Captcha Solver"

//go:embed page.html.tmpl
var pageTmpl string

//nolint: gochecknoglobals
var tmpl = template.Must(template.New("page").Parse(pageTmpl))

// Data is the input of a single page render.
type Data struct {
	// Title is the page heading.
	Title string
	// Brief is an optional description shown under the heading.
	Brief string
	// ImageURL is placed on the image element's src attribute as-is, without
	// validation. When empty, the attribute is omitted entirely.
	ImageURL string
	// SolvedText is the result text. Render falls back to DefaultSolvedText
	// when empty.
	SolvedText string
}

// Render writes the demo page HTML for the given data.
func Render(w io.Writer, data Data) error {
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	if data.SolvedText == "" {
		data.SolvedText = DefaultSolvedText
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("could not execute page template: %w", err)
	}

	return nil
}

// Handler serves the page over HTTP, reading the image source from the url
// query parameter of each request.
func Handler(title, brief string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := Render(w, Data{
			Title:    title,
			Brief:    brief,
			ImageURL: r.URL.Query().Get("url"),
		})
		if err != nil {
			http.Error(w, "could not render page", http.StatusInternalServerError)
		}
	}
}
