package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rshade/pkindex/internal/logging"
)

// maxBodyBytes caps how much of a remote history file is read.
const maxBodyBytes = 64 << 20

// Source loads the history file from a fixed location: an http(s) URL, a
// file:// URL or a local path.
type Source struct {
	location string
	client   *http.Client
	timeout  time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient sets the client used for remote locations.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds a single fetch. Zero means no bound beyond the context.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// NewSource returns a Source for location.
func NewSource(location string, opts ...Option) *Source {
	s := &Source{location: location, client: http.DefaultClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the configured location.
func (s *Source) Location() string {
	return s.location
}

// Name returns the resource name used in messages.
func (s *Source) Name() string {
	if u, ok := s.remoteURL(); ok {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			return base
		}
		return u.Host
	}
	return filepath.Base(s.localPath())
}

// Load fetches and parses the history file. It is not retried.
func (s *Source) Load(ctx context.Context) ([]Record, error) {
	log := logging.FromContext(ctx)

	text, err := s.Fetch(ctx)
	if err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "history").
			Str("source", s.location).
			Err(err).
			Msg("history fetch failed")
		return nil, err
	}

	records := Parse(text)
	log.Debug().Ctx(ctx).
		Str("component", "history").
		Str("source", s.location).
		Int("records", len(records)).
		Msg("history loaded")
	return records, nil
}

// Fetch returns the raw text of the history file.
func (s *Source) Fetch(ctx context.Context) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if u, ok := s.remoteURL(); ok {
		return s.fetchHTTP(ctx, u)
	}
	return s.readFile()
}

func (s *Source) fetchHTTP(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", s.location, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", s.location, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &NotFoundError{Name: s.Name(), Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.location, err)
	}
	return string(body), nil
}

func (s *Source) readFile() (string, error) {
	data, err := os.ReadFile(s.localPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Name: s.Name()}
		}
		return "", fmt.Errorf("reading %s: %w", s.location, err)
	}
	return string(data), nil
}

func (s *Source) remoteURL() (*url.URL, bool) {
	if !strings.HasPrefix(s.location, "http://") && !strings.HasPrefix(s.location, "https://") {
		return nil, false
	}
	u, err := url.Parse(s.location)
	if err != nil {
		return nil, false
	}
	return u, true
}

func (s *Source) localPath() string {
	return strings.TrimPrefix(s.location, "file://")
}
