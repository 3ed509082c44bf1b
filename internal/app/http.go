package app

import (
	"net"
	"net/http"
	"time"

	"github.com/hyperifyio/opensubs/internal/fetch"
)

// newSessionHTTPClient returns an HTTP client with a cookie jar so that a
// login carries over to the following searches. Requests are sequential, so
// the connection pool stays small.
func newSessionHTTPClient(timeout time.Duration) (*http.Client, error) {
	jar, err := fetch.NewCookieJar()
	if err != nil {
		return nil, err
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		Jar:       jar,
	}, nil
}
