// Package ghpages provides a publisher.Publisher implementation backed by the
// GitHub REST API and GitHub Pages.
package ghpages

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"pagesmith/pkg/publisher"
	"pagesmith/pkg/serrors"

	"github.com/sethvargo/go-retry"
)

// DefaultAPIBase is the GitHub REST API endpoint used when Options.APIBase is
// empty.
const DefaultAPIBase = "https://api.github.com"

// Defaults for the page liveness poll. GitHub Pages deploys usually finish
// well within two minutes.
const (
	DefaultPollInterval = 12 * time.Second
	DefaultPollAttempts = 10
)

// Options configure the GitHub publisher.
type Options struct {
	// APIBase overrides the GitHub API endpoint, mainly for tests.
	APIBase string
	// Owner is the account the repositories live under. Empty means the
	// authenticated user, resolved per publication.
	Owner string
	// PagesBase overrides the public pages host, mainly for tests. Empty
	// means https://<owner>.github.io.
	PagesBase string
	// PollInterval is the wait between page liveness probes.
	PollInterval time.Duration
	// PollAttempts is how many liveness probes run before giving up.
	PollAttempts uint64
}

// Client talks to the GitHub REST API and fulfills the publisher.Publisher
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the GitHub API and the pages host
	token      string       // token is the personal access token with repo scope
	options    Options
}

// ParseRateLimit extracts GitHub rate-limit information from the HTTP
// response headers and converts it into a publisher.RateLimitStatus.
func ParseRateLimit(h http.Header) (publisher.RateLimitStatus, error) {
	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}

		return 0
	}
	limit := atoi(h.Get("X-RateLimit-Limit"))
	remaining := atoi(h.Get("X-RateLimit-Remaining"))

	resetStr := h.Get("X-RateLimit-Reset")
	resetEpoch, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return publisher.RateLimitStatus{}, fmt.Errorf("could not parse reset at: %w", err)
	}

	return publisher.RateLimitStatus{Limit: limit, Remaining: remaining, ResetAt: time.Unix(resetEpoch, 0)}, nil
}

// apiError maps GitHub API status codes onto semantic error kinds. 2xx is
// success.
func apiError(status int, rl publisher.RateLimitStatus, body []byte) error {
	msg := strings.TrimSpace(string(body))
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests,
		status == http.StatusForbidden && rl.Limit > 0 && rl.Remaining == 0:
		return serrors.With(serrors.ErrRateLimited, "rate limited: %s", msg)
	case status == http.StatusUnauthorized:
		return serrors.With(serrors.ErrUnauthorized, "unauthorized: %s", msg)
	case status == http.StatusForbidden:
		return serrors.With(serrors.ErrForbidden, "forbidden: %s", msg)
	case status == http.StatusNotFound:
		return serrors.With(serrors.ErrNotFound, "not found: %s", msg)
	case status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return serrors.With(serrors.ErrConflict, "conflict: %s", msg)
	default:
		return fmt.Errorf("request failed with status %d: %s", status, msg)
	}
}

// do sends one API request and decodes the JSON response into out when out is
// non-nil. The returned rate-limit status is zero when the response carries no
// rate-limit headers.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out any) (publisher.RateLimitStatus, error) {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return publisher.RateLimitStatus{}, fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.options.APIBase+path, body)
	if err != nil {
		return publisher.RateLimitStatus{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return publisher.RateLimitStatus{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	rl, _ := ParseRateLimit(resp.Header)
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return rl, fmt.Errorf("could not read response body: %w", err)
	}
	if err := apiError(resp.StatusCode, rl, b); err != nil {
		return rl, err
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			return rl, fmt.Errorf("could not decode response: %w", err)
		}
	}

	return rl, nil
}

// Publish creates or updates the repository, commits every site file and
// enables GitHub Pages for the main branch. It returns the repository URL,
// the head commit and the public page URL plus the rate-limit status of the
// last API call.
func (c *Client) Publish(ctx context.Context, req publisher.Request) (publisher.Result, publisher.RateLimitStatus, error) {
	var rl publisher.RateLimitStatus

	owner := c.options.Owner
	if owner == "" {
		login, lrl, err := c.login(ctx)
		rl = lrl
		if err != nil {
			return publisher.Result{}, rl, fmt.Errorf("could not resolve owner: %w", err)
		}
		owner = login
	}

	if !req.Update {
		crl, err := c.createRepo(ctx, req.Repo, req.Description)
		rl = crl
		if err != nil {
			return publisher.Result{}, rl, fmt.Errorf("could not create repository: %w", err)
		}
	}

	for _, path := range sortedPaths(req.Files) {
		var sha string
		if req.Update {
			s, srl, err := c.fileSHA(ctx, owner, req.Repo, path)
			rl = srl
			if err != nil {
				return publisher.Result{}, rl, fmt.Errorf("could not look up %s: %w", path, err)
			}
			sha = s
		}

		prl, err := c.putFile(ctx, owner, req.Repo, path, req.Files[path], sha, req.Round, req.Update)
		rl = prl
		if err != nil {
			return publisher.Result{}, rl, fmt.Errorf("could not commit %s: %w", path, err)
		}
	}

	erl, err := c.enablePages(ctx, owner, req.Repo)
	rl = erl
	if err != nil {
		return publisher.Result{}, rl, fmt.Errorf("could not enable pages: %w", err)
	}

	sha, hrl, err := c.branchHead(ctx, owner, req.Repo, "main")
	rl = hrl
	if err != nil {
		return publisher.Result{}, rl, fmt.Errorf("could not resolve head commit: %w", err)
	}

	return publisher.Result{
		RepoURL:   fmt.Sprintf("https://github.com/%s/%s", owner, req.Repo),
		CommitSHA: sha,
		PagesURL:  c.pagesURL(owner, req.Repo),
	}, rl, nil
}

// WaitLive polls the page URL until it responds with 200 OK. It returns an
// error when the page never comes up within the configured attempts.
func (c *Client) WaitLive(ctx context.Context, pagesURL string) error {
	backoff := retry.WithMaxRetries(c.options.PollAttempts-1, retry.NewConstant(c.options.PollInterval))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, pagesURL, nil)
		if err != nil {
			return fmt.Errorf("could not create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("page responded with status %d", resp.StatusCode))
		}

		return nil
	})
}

func (c *Client) login(ctx context.Context) (string, publisher.RateLimitStatus, error) {
	// https://docs.github.com/en/rest/users/users#get-the-authenticated-user
	var user struct {
		Login string `json:"login"`
	}
	rl, err := c.do(ctx, http.MethodGet, "/user", nil, &user)
	if err != nil {
		return "", rl, err
	}
	if user.Login == "" {
		return "", rl, errors.New("empty login in response")
	}

	return user.Login, rl, nil
}

func (c *Client) createRepo(ctx context.Context, name, description string) (publisher.RateLimitStatus, error) {
	// https://docs.github.com/en/rest/repos/repos#create-a-repository-for-the-authenticated-user
	type createReq struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Private     bool   `json:"private"`
	}

	return c.do(ctx, http.MethodPost, "/user/repos", createReq{Name: name, Description: description}, nil)
}

// fileSHA returns the blob SHA of an existing file, or empty when the file
// does not exist yet.
func (c *Client) fileSHA(ctx context.Context, owner, repo, path string) (string, publisher.RateLimitStatus, error) {
	// https://docs.github.com/en/rest/repos/contents#get-repository-content
	var file struct {
		SHA string `json:"sha"`
	}
	rl, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path), nil, &file)
	if errors.Is(err, serrors.ErrNotFound) {
		return "", rl, nil
	}
	if err != nil {
		return "", rl, err
	}

	return file.SHA, rl, nil
}

func (c *Client) putFile(
	ctx context.Context,
	owner, repo, path string,
	content []byte,
	sha string,
	round int,
	update bool) (publisher.RateLimitStatus, error) {
	// https://docs.github.com/en/rest/repos/contents#create-or-update-file-contents
	type putReq struct {
		Message string `json:"message"`
		Content string `json:"content"`
		SHA     string `json:"sha,omitempty"`
	}

	return c.do(ctx,
		http.MethodPut,
		fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path),
		putReq{
			Message: commitMessage(path, round, update),
			Content: base64.StdEncoding.EncodeToString(content),
			SHA:     sha,
		},
		nil)
}

func (c *Client) enablePages(ctx context.Context, owner, repo string) (publisher.RateLimitStatus, error) {
	// https://docs.github.com/en/rest/pages/pages#create-a-github-pages-site
	type pagesReq struct {
		Source struct {
			Branch string `json:"branch"`
			Path   string `json:"path"`
		} `json:"source"`
	}
	var body pagesReq
	body.Source.Branch = "main"
	body.Source.Path = "/"

	rl, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/pages", owner, repo), body, nil)
	if errors.Is(err, serrors.ErrConflict) {
		// the pages site already exists, nothing to enable
		return rl, nil
	}

	return rl, err
}

func (c *Client) branchHead(ctx context.Context, owner, repo, branch string) (string, publisher.RateLimitStatus, error) {
	// https://docs.github.com/en/rest/branches/branches#get-a-branch
	var br struct {
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}
	rl, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/branches/%s", owner, repo, branch), nil, &br)
	if err != nil {
		return "", rl, err
	}

	return br.Commit.SHA, rl, nil
}

// pagesURL is where GitHub serves the project page.
func (c *Client) pagesURL(owner, repo string) string {
	if c.options.PagesBase != "" {
		return fmt.Sprintf("%s/%s/", strings.TrimSuffix(c.options.PagesBase, "/"), repo)
	}

	return fmt.Sprintf("https://%s.github.io/%s/", owner, repo)
}

// commitMessage keeps the fixed message for the license file and carries the
// round in every other commit.
func commitMessage(path string, round int, update bool) string {
	if path == "LICENSE" {
		return "Add MIT license"
	}

	verb := "Add"
	if update {
		verb = "Update"
	}

	return fmt.Sprintf("%s %s for round %d", verb, path, round)
}

// sortedPaths returns the file paths in a stable commit order.
func sortedPaths(files map[string][]byte) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return paths
}

// Ensure Client conforms to the publisher.Publisher interface at compile time.
var _ publisher.Publisher = (*Client)(nil)

// New constructs a Client that uses the provided http.Client and access token
// to interact with the GitHub API.
func New(httpClient *http.Client, token string, options Options) *Client {
	if options.APIBase == "" {
		options.APIBase = DefaultAPIBase
	}
	if options.PollInterval <= 0 {
		options.PollInterval = DefaultPollInterval
	}
	if options.PollAttempts == 0 {
		options.PollAttempts = DefaultPollAttempts
	}

	return &Client{
		httpClient: httpClient,
		token:      token,
		options:    options,
	}
}
