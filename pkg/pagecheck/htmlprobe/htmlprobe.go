// Package htmlprobe provides a pagecheck.Checker that fetches the published
// page once and inspects its static HTML. It cannot observe script effects,
// so checks prefixed with "js:" need the chrome checker instead.
package htmlprobe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pagesmith/pkg/demopage"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/pagecheck"
	"pagesmith/pkg/sitegen"
)

// Built-in probe names, reported before any task check.
const (
	CheckReachable  = "page responds with 200 OK"
	CheckImage      = "page contains an image element"
	CheckSolvedText = "page contains the solved text placeholder"
	CheckReadsURL   = "page reads the url query parameter"
)

// Checker fetches pages over plain HTTP and fulfills the pagecheck.Checker
// interface.
type Checker struct {
	httpClient *http.Client
}

// Check fetches pageURL and evaluates the built-in page contract probes plus
// the task checks. Task checks are matched as case-insensitive substrings of
// the page source.
func (c *Checker) Check(ctx context.Context, pageURL string, checks []string) ([]domain.CheckResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch page: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read page: %w", err)
	}

	results := contractResults(resp.StatusCode, body)
	source := strings.ToLower(string(body))
	for _, check := range checks {
		results = append(results, matchCheck(source, check))
	}

	return results, nil
}

// contractResults evaluates the built-in probes against the fetched document.
func contractResults(status int, body []byte) []domain.CheckResult {
	return []domain.CheckResult{
		{
			Check:  CheckReachable,
			Passed: status == http.StatusOK,
			Detail: fmt.Sprintf("status %d", status),
		},
		{
			Check:  CheckImage,
			Passed: sitegen.HasImageElement(body),
		},
		{
			Check:  CheckSolvedText,
			Passed: bytes.Contains(body, []byte(demopage.DefaultSolvedText)),
		},
		{
			Check:  CheckReadsURL,
			Passed: sitegen.ReadsURLParam(body),
		},
	}
}

// matchCheck evaluates one task check against the lowercased page source.
func matchCheck(source, check string) domain.CheckResult {
	if strings.HasPrefix(check, "js:") {
		return domain.CheckResult{Check: check, Detail: "requires the chrome checker"}
	}

	if strings.Contains(source, strings.ToLower(check)) {
		return domain.CheckResult{Check: check, Passed: true, Detail: "matched page source"}
	}

	return domain.CheckResult{Check: check, Detail: "no match in page source"}
}

// Ensure Checker conforms to the pagecheck.Checker interface at compile time.
var _ pagecheck.Checker = (*Checker)(nil)

// New constructs a Checker that uses the provided http.Client to fetch pages.
func New(httpClient *http.Client) *Checker {
	return &Checker{httpClient: httpClient}
}
