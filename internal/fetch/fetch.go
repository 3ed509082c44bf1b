package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Client wraps http.Client with a user agent, per-request timeout, a redirect
// cap and body decoding to UTF-8. Requests are issued once; there is no retry.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// PerRequestTimeout bounds each request. Zero means no extra bound.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means default (5).
	RedirectMaxHops int
	// Charset forces the body encoding (e.g. "windows-1251") instead of
	// trusting Content-Type and <meta> hints.
	Charset string
}

// Page is a fetched document decoded to UTF-8.
type Page struct {
	// URL is where the response came from after redirects.
	URL         string
	ContentType string
	Status      int
	Body        string
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// NewCookieJar returns a jar suitable for keeping a login session.
func NewCookieJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.PerRequestTimeout, CheckRedirect: c.checkRedirectFunc()}
}

// Get issues a GET and returns the decoded HTML page. Non-HTML responses are
// rejected.
func (c *Client) Get(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	page, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !isAllowedHTMLContentType(page.ContentType) {
		return nil, fmt.Errorf("unsupported content type: %s", page.ContentType)
	}
	return page, nil
}

// PostForm submits form as application/x-www-form-urlencoded.
func (c *Client) PostForm(ctx context.Context, target string, form url.Values) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Page, error) {
	// Reject non-HTTP(S) schemes early
	if !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("unsupported URL scheme: %q", req.URL.Scheme)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	if c.PerRequestTimeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), c.PerRequestTimeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	final := req.URL.String()
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: final, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := c.decode(resp.Body, contentType)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Page{URL: final, ContentType: contentType, Status: resp.StatusCode, Body: body}, nil
}

// decode converts the body to UTF-8 using the forced charset, or whatever
// Content-Type and the document's own <meta> declare.
func (c *Client) decode(r io.Reader, contentType string) (string, error) {
	if name := strings.TrimSpace(c.Charset); name != "" {
		enc, err := htmlindex.Get(name)
		if err != nil {
			return "", fmt.Errorf("charset %q: %w", name, err)
		}
		b, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
		return string(b), err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	// charset.NewReader fails with io.EOF on an empty body.
	if len(raw) == 0 {
		return "", nil
	}
	utf8, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(utf8)
	return string(b), err
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	// allow text/html variants and application/xhtml+xml
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
