package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"github.com/ZebulonRouseFrantzich/pour/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "pour/dev"
	// DefaultMaxBytes bounds the size of a fetched artifact.
	DefaultMaxBytes int64 = 512 << 20
)

// FetchOptions configures a Fetcher. Zero values select the defaults.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client
}

// Fetcher downloads artifacts into memory with a single attempt.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	logger    logging.Logger
}

// NewFetcher creates a new fetcher
func NewFetcher(opts FetchOptions) *Fetcher {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		}
	}

	f := &Fetcher{
		client:    client,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		logger:    logging.Noop(),
	}
	if f.userAgent == "" {
		f.userAgent = DefaultUserAgent
	}
	if f.maxBytes <= 0 {
		f.maxBytes = DefaultMaxBytes
	}
	return f
}

// WithLogger sets the logger used for request diagnostics.
func (f *Fetcher) WithLogger(l logging.Logger) *Fetcher {
	f.logger = logging.OrNoop(l)
	return f
}

// Fetch performs one GET of url and returns the body. A URL that still
// contains a ${NAME} placeholder fails before any request is made.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if names := formula.Placeholders(url); len(names) > 0 {
		return nil, &DownloadError{
			URL: url,
			Err: fmt.Errorf("unresolved placeholders %s", strings.Join(names, ", ")),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	f.logger.Debug("fetching", "url", url)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}
	if int64(len(data)) > f.maxBytes {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("artifact exceeds %d bytes", f.maxBytes)}
	}

	f.logger.Debug("fetched", "url", url, "bytes", len(data))
	return data, nil
}
