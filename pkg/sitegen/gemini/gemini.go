// Package gemini provides an LLM-assisted sitegen.Generator backed by the
// Gemini API. The model writes index.html and README.md; the LICENSE and the
// demo page contract are enforced locally.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pagesmith/pkg/demopage"
	"pagesmith/pkg/sitegen"

	"google.golang.org/genai"
)

// DefaultModel is used when Options.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// Options configure the Gemini generator.
type Options struct {
	// Model is the Gemini model used for generation.
	Model string
	// LicenseHolder is the copyright holder written into LICENSE.
	LicenseHolder string
}

// Generator implements sitegen.Generator on the Gemini API.
type Generator struct {
	client  *genai.Client
	options Options
}

// New creates a Generator authenticating with the given API key.
func New(ctx context.Context, apiKey string, options Options) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("could not create genai client: %w", err)
	}
	if options.Model == "" {
		options.Model = DefaultModel
	}

	return &Generator{client: client, options: options}, nil
}

// Generate asks the model for the site files and validates the result. An
// undecodable or contract-violating response is returned as an error so the
// job queue can retry.
func (g *Generator) Generate(ctx context.Context, req sitegen.Request) (sitegen.Site, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.options.Model,
		genai.Text(Prompt(req)),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return sitegen.Site{}, fmt.Errorf("could not generate content: %w", err)
	}

	site, err := DecodeSite(resp.Text())
	if err != nil {
		return sitegen.Site{}, err
	}
	site.Files[sitegen.LicenseFile] = sitegen.MITLicense(time.Now().Year(), g.options.LicenseHolder)

	if err := sitegen.Validate(site); err != nil {
		return sitegen.Site{}, fmt.Errorf("generated site is invalid: %w", err)
	}

	return site, nil
}

// Prompt builds the generation prompt for a request.
func Prompt(req sitegen.Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a minimal static web app (index.html with JS/CSS via CDN) for: %s. ", req.Brief)
	fmt.Fprintf(&sb, "For round %d. Include Bootstrap and handle the ?url= query parameter: ", req.Round)
	sb.WriteString("show the image from that URL, or no image when the parameter is absent. ")
	fmt.Fprintf(&sb, "Always display the fixed result text %q. ", demopage.DefaultSolvedText)
	if len(req.Attachments) > 0 {
		sb.WriteString("Attachments: ")
		for i, a := range req.Attachments {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s (%s)", a.Name, a.URL)
		}
		sb.WriteString(". ")
	}
	sb.WriteString(`Output as JSON: {"index.html": "...", "README.md": "..."}`)

	return sb.String()
}

// DecodeSite parses the model response into a Site. The response must be a
// JSON object with non-empty index.html and README.md entries.
func DecodeSite(raw string) (sitegen.Site, error) {
	raw = strings.TrimSpace(raw)
	// tolerate fenced output from models that ignore the JSON response type
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")

	var files map[string]string
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		return sitegen.Site{}, fmt.Errorf("could not decode generated site: %w", err)
	}
	if files[sitegen.IndexFile] == "" {
		return sitegen.Site{}, fmt.Errorf("generated site is missing %s", sitegen.IndexFile)
	}
	if files[sitegen.ReadmeFile] == "" {
		return sitegen.Site{}, fmt.Errorf("generated site is missing %s", sitegen.ReadmeFile)
	}

	return sitegen.Site{Files: map[string][]byte{
		sitegen.IndexFile:  []byte(files[sitegen.IndexFile]),
		sitegen.ReadmeFile: []byte(files[sitegen.ReadmeFile]),
	}}, nil
}

// Ensure Generator conforms to the sitegen.Generator interface at compile time.
var _ sitegen.Generator = (*Generator)(nil)
