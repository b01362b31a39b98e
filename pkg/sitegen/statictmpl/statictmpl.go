// Package statictmpl provides a deterministic, template-based sitegen.Generator.
// The index page comes from the demopage template, the README from a text
// template, and the LICENSE from the shared MIT text. No external service is
// involved, which makes it the safe default generator.
package statictmpl

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"pagesmith/pkg/demopage"
	"pagesmith/pkg/sitegen"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
)

//go:embed readme.md.tmpl
var readmeTmpl string

// Options configure the generated site.
type Options struct {
	// Title is the heading of the generated index page. Empty uses the
	// demopage default.
	Title string
	// LicenseHolder is the copyright holder written into LICENSE and README.
	LicenseHolder string
	// Minify enables HTML minification of the generated index page.
	Minify bool
}

// Generator implements sitegen.Generator from embedded templates.
type Generator struct {
	options  Options
	readme   *template.Template
	minifier *minify.M
}

// New constructs a Generator with the provided options.
func New(options Options) *Generator {
	m := minify.New()
	m.AddFunc("text/html", mhtml.Minify)

	return &Generator{
		options:  options,
		readme:   template.Must(template.New("readme").Funcs(sprig.FuncMap()).Parse(readmeTmpl)),
		minifier: m,
	}
}

// readmeData is the input of the README template.
type readmeData struct {
	sitegen.Request

	Year   int
	Holder string
}

// Generate renders index.html, README.md and LICENSE for the request.
func (g *Generator) Generate(_ context.Context, req sitegen.Request) (sitegen.Site, error) {
	var index bytes.Buffer
	if err := demopage.Render(&index, demopage.Data{
		Title: g.options.Title,
		Brief: req.Brief,
	}); err != nil {
		return sitegen.Site{}, fmt.Errorf("could not render index page: %w", err)
	}

	indexBytes := index.Bytes()
	if g.options.Minify {
		minified, err := g.minifier.Bytes("text/html", indexBytes)
		if err != nil {
			return sitegen.Site{}, fmt.Errorf("could not minify index page: %w", err)
		}
		indexBytes = minified
	}

	year := time.Now().Year()
	var readme bytes.Buffer
	if err := g.readme.Execute(&readme, readmeData{
		Request: req,
		Year:    year,
		Holder:  g.options.LicenseHolder,
	}); err != nil {
		return sitegen.Site{}, fmt.Errorf("could not render README: %w", err)
	}

	site := sitegen.Site{Files: map[string][]byte{
		sitegen.IndexFile:   indexBytes,
		sitegen.ReadmeFile:  readme.Bytes(),
		sitegen.LicenseFile: sitegen.MITLicense(year, g.options.LicenseHolder),
	}}
	if err := sitegen.Validate(site); err != nil {
		return sitegen.Site{}, fmt.Errorf("generated site is invalid: %w", err)
	}

	return site, nil
}

// Ensure Generator conforms to the sitegen.Generator interface at compile time.
var _ sitegen.Generator = (*Generator)(nil)
