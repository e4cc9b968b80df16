package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "dsfetch"

// Downloader streams remote resources to local files.
type Downloader struct {
	client    *http.Client
	progress  io.Writer
	logger    *slog.Logger
	userAgent string
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) {
		if c != nil {
			d.client = c
		}
	}
}

// WithProgress sets where the progress bar is drawn. A nil writer hides it.
func WithProgress(w io.Writer) Option {
	return func(d *Downloader) {
		d.progress = w
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Downloader) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

// NewDownloader creates a Downloader. Without options it uses
// http.DefaultClient, draws no progress and discards logs.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		client:    http.DefaultClient,
		logger:    slog.New(slog.DiscardHandler),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches url into dest with a plain GET request.
// It returns the number of bytes written.
func (d *Downloader) Download(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &Error{Kind: KindNetwork, Op: "download", Path: url, Err: err}
	}
	return d.Do(req, dest)
}

// Do executes req and streams a successful response body into dest.
// On any failure the partially written dest is removed.
func (d *Downloader) Do(req *http.Request, dest string) (int64, error) {
	url := req.URL.Redacted()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	d.logger.Debug("download started", "url", url, "dest", dest)
	start := time.Now()

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, &Error{Kind: KindNetwork, Op: "download", Path: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &Error{
			Kind: KindNetwork,
			Op:   "download",
			Path: url,
			Err:  &StatusError{Code: resp.StatusCode, Status: resp.Status},
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return 0, &Error{Kind: KindFilesystem, Op: "create directory", Path: filepath.Dir(dest), Err: err}
	}

	out, err := os.Create(dest) //nolint:gosec // dest is derived from the catalog
	if err != nil {
		return 0, &Error{Kind: KindFilesystem, Op: "create file", Path: dest, Err: err}
	}

	bar := d.newBar(resp.ContentLength)
	n, copyErr := io.Copy(io.MultiWriter(out, bar), resp.Body)
	closeErr := out.Close()

	if copyErr != nil {
		_ = os.Remove(dest)
		return n, &Error{Kind: KindNetwork, Op: "download", Path: url, Err: copyErr}
	}
	if closeErr != nil {
		_ = os.Remove(dest)
		return n, &Error{Kind: KindFilesystem, Op: "write file", Path: dest, Err: closeErr}
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		_ = os.Remove(dest)
		return n, &Error{
			Kind: KindNetwork,
			Op:   "download",
			Path: url,
			Err:  fmt.Errorf("short body: got %d of %d bytes", n, resp.ContentLength),
		}
	}
	_ = bar.Finish()

	d.logger.Debug("download finished",
		"url", url,
		"bytes", n,
		"duration", time.Since(start).Round(time.Millisecond))
	return n, nil
}

func (d *Downloader) newBar(total int64) *progressbar.ProgressBar {
	if d.progress == nil {
		return progressbar.NewOptions64(total, progressbar.OptionSetVisibility(false))
	}
	w := d.progress
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("  Progress:"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}
