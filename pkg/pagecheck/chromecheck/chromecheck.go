// Package chromecheck provides a pagecheck.Checker that drives a headless
// Chrome, so script effects like the url query parameter handling are
// observed on the live DOM rather than in the static source.
package chromecheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"pagesmith/pkg/demopage"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/pagecheck"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ProbeImage is appended as the url query parameter during verification. A
// data URI keeps the probe self-contained.
const ProbeImage = "data:image/gif;base64,R0lGODlhAQABAAAAACH5BAEKAAEALAAAAAABAAEAAAICTAEAOw=="

// CheckReachable reports the document response status, named as in the html
// checker so both modes produce the same result row.
const CheckReachable = "page responds with 200 OK"

// DefaultTimeout bounds one full page verification.
const DefaultTimeout = 30 * time.Second

// Options configure the chrome checker.
type Options struct {
	// ExecPath overrides the Chrome binary location.
	ExecPath string
	// Timeout bounds one full page verification.
	Timeout time.Duration
}

// Checker verifies pages in a headless Chrome instance and fulfills the
// pagecheck.Checker interface.
type Checker struct {
	options Options
}

// builtins probe the page contract on the live DOM, after page scripts ran.
//
//nolint: gochecknoglobals
var builtins = []struct {
	name string
	js   string
}{
	{
		name: "page contains an image element",
		js:   `document.getElementById("captcha-image") !== null || document.images.length > 0`,
	},
	{
		name: "page contains the solved text placeholder",
		js:   fmt.Sprintf(`document.body.innerText.includes(%q)`, demopage.DefaultSolvedText),
	},
	{
		name: "page applies the url query parameter to the image",
		js: `(() => {
			const img = document.getElementById("captcha-image") || document.images[0];
			return !!img && img.src.startsWith("data:image/gif");
		})()`,
	},
}

// Check loads pageURL with the probe image as url query parameter and
// evaluates the built-in contract probes plus the task checks in the page.
// The document response status is reported as the first result: an absent
// pages deployment still serves a styled 404 document with a ready body.
func (c *Checker) Check(ctx context.Context, pageURL string, checks []string) ([]domain.CheckResult, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if c.options.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.options.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	runCtx, runCancel := context.WithTimeout(browserCtx, c.options.Timeout)
	defer runCancel()

	// The handler runs on the CDP event goroutine; only the first document
	// response counts, subframe and asset responses are ignored.
	var status atomic.Int64
	chromedp.ListenTarget(runCtx, func(ev any) {
		if res, ok := ev.(*network.EventResponseReceived); ok && res.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, res.Response.Status)
		}
	})

	err := chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(ProbeURL(pageURL)),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return nil, fmt.Errorf("could not load page: %w", err)
	}

	code := status.Load()
	results := make([]domain.CheckResult, 0, len(builtins)+len(checks)+1)
	results = append(results, domain.CheckResult{
		Check:  CheckReachable,
		Passed: code == http.StatusOK,
		Detail: fmt.Sprintf("status %d", code),
	})
	for _, b := range builtins {
		results = append(results, evaluate(runCtx, b.name, b.js))
	}
	for _, check := range checks {
		results = append(results, evaluate(runCtx, check, CheckJS(check)))
	}

	return results, nil
}

// evaluate runs one boolean expression in the page and converts the outcome
// into a check result.
func evaluate(ctx context.Context, name, js string) domain.CheckResult {
	var passed bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &passed)); err != nil {
		return domain.CheckResult{Check: name, Detail: fmt.Sprintf("evaluation failed: %v", err)}
	}

	res := domain.CheckResult{Check: name, Passed: passed}
	if !passed {
		res.Detail = "expression evaluated to false"
	}

	return res
}

// CheckJS turns a task check into a boolean page expression. Checks prefixed
// with "js:" run verbatim; anything else becomes a case-insensitive substring
// match over the document source.
func CheckJS(check string) string {
	if js, ok := strings.CutPrefix(check, "js:"); ok {
		return js
	}

	return fmt.Sprintf(`document.documentElement.outerHTML.toLowerCase().includes(%q)`, strings.ToLower(check))
}

// ProbeURL appends the probe image as the url query parameter.
func ProbeURL(pageURL string) string {
	sep := "?"
	if strings.Contains(pageURL, "?") {
		sep = "&"
	}

	return pageURL + sep + "url=" + url.QueryEscape(ProbeImage)
}

// Ensure Checker conforms to the pagecheck.Checker interface at compile time.
var _ pagecheck.Checker = (*Checker)(nil)

// New constructs a Checker that launches its own headless Chrome per
// verification.
func New(options Options) *Checker {
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}

	return &Checker{options: options}
}
