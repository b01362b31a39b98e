// Package sitegen defines the interface and data types used to turn a task
// brief into the file set of a publishable static site.
package sitegen

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"text/template"

	"pagesmith/pkg/demopage"
	"pagesmith/pkg/domain"

	"golang.org/x/net/html"
)

// File names every generated site must contain.
const (
	IndexFile   = "index.html"
	ReadmeFile  = "README.md"
	LicenseFile = "LICENSE"
)

// Request carries everything a generator needs to produce a site.
type Request struct {
	// Task is the slug naming the task; it doubles as the repository name.
	Task string
	// Round is the delivery round, starting at 1.
	Round int
	// Brief is the human-readable description of what the page must do.
	Brief string
	// Checks lists the verification checks the evaluator will run.
	Checks []string
	// Attachments are artifacts shipped with the brief, typically sample images.
	Attachments []domain.Attachment
}

// Site is the set of files that make up a generated site. Keys are
// repository-relative paths.
type Site struct {
	Files map[string][]byte
}

// Generator is the abstraction for site generators. Implementations produce a
// complete, validated Site for a request.
//
//go:generate mockgen -package mocksitegen -source=sitegen.go -destination=mock/mocksitegen.go *
type Generator interface {
	// Generate produces the full site for the given request.
	Generate(ctx context.Context, req Request) (Site, error)
}

//go:embed license.txt.tmpl
var licenseTmpl string

//nolint: gochecknoglobals
var licenseTemplate = template.Must(template.New("license").Parse(licenseTmpl))

// MITLicense renders the MIT license text for the given year and holder.
func MITLicense(year int, holder string) []byte {
	var buf bytes.Buffer
	_ = licenseTemplate.Execute(&buf, struct {
		Year   int
		Holder string
	}{Year: year, Holder: holder})

	return buf.Bytes()
}

// urlParamRe matches the common ways a page reads the url query parameter.
//
//nolint: gochecknoglobals
var urlParamRe = regexp.MustCompile(`(?i)(URLSearchParams|location\.search|[?&]url=)`)

// Validate checks that a generated site fulfills the demo page contract:
// index.html must read the url query parameter, carry the fixed solved text
// and contain an image element; README.md and LICENSE must be present.
func Validate(site Site) error {
	index, ok := site.Files[IndexFile]
	if !ok || len(index) == 0 {
		return errors.New("site is missing index.html")
	}
	if !bytes.Contains(index, []byte(demopage.DefaultSolvedText)) {
		return fmt.Errorf("index.html does not contain the solved text %q", demopage.DefaultSolvedText)
	}
	if !ReadsURLParam(index) {
		return errors.New("index.html does not read the url query parameter")
	}
	if !HasImageElement(index) {
		return errors.New("index.html does not contain an image element")
	}

	if b, ok := site.Files[ReadmeFile]; !ok || len(b) == 0 {
		return errors.New("site is missing README.md")
	}
	if b, ok := site.Files[LicenseFile]; !ok || len(b) == 0 {
		return errors.New("site is missing LICENSE")
	}

	return nil
}

// ReadsURLParam reports whether the document references the url query
// parameter.
func ReadsURLParam(index []byte) bool {
	return urlParamRe.Match(index)
}

// HasImageElement reports whether the document contains at least one img tag.
func HasImageElement(index []byte) bool {
	doc, err := html.Parse(bytes.NewReader(index))
	if err != nil {
		return false
	}

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "img" {
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}

		return false
	}

	return walk(doc)
}
