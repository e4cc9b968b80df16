package kaggle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/dsfetch/internal/fetch"
)

// DefaultBaseURL is the public Kaggle endpoint.
const DefaultBaseURL = "https://www.kaggle.com"

// Client talks to the Kaggle REST API.
type Client struct {
	baseURL    string
	creds      Credentials
	downloader *fetch.Downloader
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithDownloader sets the downloader used for archive transfers.
func WithDownloader(d *fetch.Downloader) ClientOption {
	return func(c *Client) {
		if d != nil {
			c.downloader = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client authenticated with creds.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		creds:      creds,
		downloader: fetch.NewDownloader(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Username returns the account the client authenticates as.
func (c *Client) Username() string {
	return c.creds.Username
}

// DownloadURL returns the API URL of a dataset archive.
func (c *Client) DownloadURL(ref string) (string, error) {
	owner, slug, ok := strings.Cut(ref, "/")
	if !ok || owner == "" || slug == "" || strings.Contains(slug, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return fmt.Sprintf("%s/api/v1/datasets/download/%s/%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(slug)), nil
}

// DownloadAndUnzip downloads the dataset archive for ref and extracts it into
// dest. The archive is staged next to dest and always removed afterwards, so
// a failed call never leaves dest populated with a partial download.
func (c *Client) DownloadAndUnzip(ctx context.Context, ref, dest string) error {
	target, err := c.DownloadURL(ref)
	if err != nil {
		return &APIError{Ref: ref, Op: "download", Err: err}
	}

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return &APIError{Ref: ref, Op: "download", Err: err}
	}

	tmp, err := os.CreateTemp(parent, "."+filepath.Base(dest)+"-*.zip")
	if err != nil {
		return &APIError{Ref: ref, Op: "download", Err: err}
	}
	archive := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(archive) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &APIError{Ref: ref, Op: "download", Err: err}
	}
	req.SetBasicAuth(c.creds.Username, c.creds.Key)

	c.logger.Debug("kaggle download", "ref", ref, "dest", dest)
	if _, err := c.downloader.Do(req, archive); err != nil {
		return &APIError{Ref: ref, Op: "download", Err: classify(err)}
	}

	files, err := fetch.Extract(archive, dest)
	if err != nil {
		return &APIError{Ref: ref, Op: "unzip", Err: err}
	}
	c.logger.Debug("kaggle dataset extracted", "ref", ref, "files", len(files))
	return nil
}

// classify maps HTTP status failures onto the package sentinels while keeping
// the original error in the chain.
func classify(err error) error {
	var se *fetch.StatusError
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (check %s): %w", ErrUnauthorized, ConfigFile, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrDatasetNotFound, err)
	default:
		return err
	}
}
