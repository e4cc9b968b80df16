package kaggle

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/dsfetch/internal/fetch"
)

// Access is the outcome of Probe. It is computed once per run and passed to
// every routine that may need the API.
type Access struct {
	Available bool

	// Reason is nil when Available, otherwise it wraps ErrNotInstalled or
	// ErrNotConfigured.
	Reason error

	// Client is non-nil only when Available.
	Client *Client

	// Origin names where credentials were found ("environment" or a path).
	Origin string
}

// ProbeOptions configures Probe.
type ProbeOptions struct {
	// Enabled false means the client is treated as not installed.
	Enabled bool

	Source     CredentialSource
	BaseURL    string
	Downloader *fetch.Downloader
	Logger     *slog.Logger
}

// Probe decides whether the Kaggle API is usable. It never touches the
// network: a client counts as available once it is enabled and credentials
// were found.
func Probe(opts ProbeOptions) Access {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if !opts.Enabled {
		logger.Debug("kaggle client disabled")
		return Access{Reason: fmt.Errorf("%w: disabled by configuration", ErrNotInstalled)}
	}

	creds, origin, err := LoadCredentials(opts.Source)
	if err != nil {
		logger.Debug("kaggle credentials unavailable", "error", err)
		return Access{Reason: err}
	}

	logger.Debug("kaggle credentials loaded", "origin", origin, "username", creds.Username)
	client := NewClient(creds,
		WithBaseURL(opts.BaseURL),
		WithDownloader(opts.Downloader),
		WithLogger(logger),
	)
	return Access{Available: true, Client: client, Origin: origin}
}
