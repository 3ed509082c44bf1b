package app

import "time"

const (
	DefaultUserAgent = "opensubs/1.0 (+https://github.com/hyperifyio/opensubs)"
	DefaultTimeout   = 30 * time.Second
	DefaultFormat    = FormatTable
)

// Config holds runtime configuration for the application.
type Config struct {
	// Site
	BaseURL   string
	Locale    string
	UserAgent string
	Timeout   time.Duration
	// Charset forces the page encoding instead of trusting the response.
	Charset string

	// Credentials; login is skipped when User is empty.
	User     string
	Password string

	// Query
	Mask      string
	Languages string
	Season    int
	Episode   int
	// PageURL parses a site page directly instead of searching.
	PageURL string

	// Offline input: a saved HTML page served for every request.
	HTMLPath string

	// Extraction
	RowShape string

	// Output
	Format     string
	OutputPath string
	// Download resolves the download link of every result with a details page.
	Download bool

	Verbose bool
}
