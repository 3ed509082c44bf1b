package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "opensubs-test" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "opensubs-test", PerRequestTimeout: 2 * time.Second}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.ContentType == "" || page.Body == "" {
		t.Fatalf("expected content type and body")
	}
	if page.Status != 200 || page.URL != srv.URL {
		t.Fatalf("unexpected page meta: %+v", page)
	}
}

func TestGet_NoRetryOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(502)
	}))
	defer srv.Close()

	c := &Client{UserAgent: "opensubs-test", PerRequestTimeout: 2 * time.Second}
	_, err := c.Get(context.Background(), srv.URL)
	se, ok := err.(*StatusError)
	if !ok || se.StatusCode != 502 {
		t.Fatalf("expected StatusError 502, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestGet_FinalURLAfterRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/en/search2" {
			http.Redirect(w, r, "/en/subtitles/7863206", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<h1>episode</h1>"))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	page, err := c.Get(context.Background(), srv.URL+"/en/search2?MovieName=x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.URL != srv.URL+"/en/subtitles/7863206" {
		t.Fatalf("expected final URL, got %q", page.URL)
	}
}

func TestGet_DecodesWindows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("<h1>Терминатор</h1>")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		_, _ = w.Write([]byte(encoded))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(page.Body, "Терминатор") {
		t.Fatalf("expected decoded body, got %q", page.Body)
	}
}

func TestGet_ForcedCharset(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("<h1>Сезон</h1>")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Misleading header: the site has been seen serving cp1251 without declaring it.
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(encoded))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second, Charset: "windows-1251"}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(page.Body, "Сезон") {
		t.Fatalf("expected decoded body, got %q", page.Body)
	}

	bad := &Client{Charset: "no-such-charset"}
	if _, err := bad.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for unknown charset")
	}
}

func TestGet_RejectsNonHTTP(t *testing.T) {
	c := &Client{UserAgent: "opensubs-test", PerRequestTimeout: 1 * time.Second}
	_, err := c.Get(context.Background(), "file:///etc/hosts")
	if err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestGet_ContentTypeGating(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("PK"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "opensubs-test", PerRequestTimeout: 2 * time.Second}
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for unsupported content type")
	}
}

func TestGet_RedirectLimit(t *testing.T) {
	// First path redirects once to /next; with RedirectMaxHops=1 this should fail immediately
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/next", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "opensubs-test", PerRequestTimeout: 2 * time.Second, RedirectMaxHops: 1}
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected redirect limit error")
	}
}

func TestPostForm_KeepsSessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_ = r.ParseForm()
			if r.PostForm.Get("user") != "alice" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "s3cr3t", Path: "/"})
			w.WriteHeader(http.StatusOK)
		case "/me":
			if c, err := r.Cookie("PHPSESSID"); err != nil || c.Value != "s3cr3t" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>alice</p>"))
		}
	}))
	defer srv.Close()

	jar, err := NewCookieJar()
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	c := &Client{HTTPClient: &http.Client{Jar: jar, Timeout: 2 * time.Second}}
	if _, err := c.PostForm(context.Background(), srv.URL+"/login", url.Values{"user": {"alice"}}); err != nil {
		t.Fatalf("login: %v", err)
	}
	page, err := c.Get(context.Background(), srv.URL+"/me")
	if err != nil {
		t.Fatalf("expected session cookie to be sent: %v", err)
	}
	if !strings.Contains(page.Body, "alice") {
		t.Fatalf("unexpected body %q", page.Body)
	}
}

// A 2xx response without a body is an empty page, not a read error.
func TestEmptyBody_IsEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client()}
	page, err := c.PostForm(context.Background(), srv.URL+"/login", url.Values{"user": {"alice"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if page.Status != http.StatusOK || page.Body != "" {
		t.Fatalf("unexpected page %+v", page)
	}
	page, err = c.Get(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if page.Body != "" {
		t.Fatalf("body=%q, want empty", page.Body)
	}
}
