package scraper

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
)

const (
	// UserAgent is sent when Options.UserAgent is empty
	UserAgent = "fbref-matches/1.0 (github.com/pfrederiksen/fbref-matches)"
	// Timeout bounds a request when Options.Timeout is not positive
	Timeout = 30 * time.Second
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError reports a non-200 response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Options configures a Fetcher
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// KeepComments disables stripping of HTML comment markers before parsing.
	KeepComments bool
	// RespectRobots checks robots.txt for each host before fetching.
	RespectRobots bool
}

// Fetcher retrieves and parses HTML pages
type Fetcher struct {
	client    *http.Client
	userAgent string
	uncomment bool
	robots    *RobotsCache
}

// New creates a Fetcher
func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	client := &http.Client{Timeout: opts.Timeout}

	f := &Fetcher{
		client:    client,
		userAgent: opts.UserAgent,
		uncomment: !opts.KeepComments,
	}
	if opts.RespectRobots {
		f.robots = NewRobotsCache(client, opts.UserAgent)
	}
	return f
}

// Fetch issues a GET for url and returns the parsed document. A response
// other than 200 yields a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if f.robots != nil {
		ok, err := f.robots.Allowed(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("checking robots.txt: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("fetching %s: %w", url, ErrDisallowed)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	defer body.Close()

	return f.parse(body)
}

// parse builds a document from an HTML stream
func (f *Fetcher) parse(r io.Reader) (*goquery.Document, error) {
	if f.uncomment {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		r = bytes.NewReader(Uncomment(data))
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// decodeBody wraps the response body according to its Content-Encoding.
// Setting Accept-Encoding by hand turns off net/http's transparent gzip, so
// every advertised encoding has to be handled here.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// Uncomment removes HTML comment markers so commented-out tables are parsed
// as regular markup
func Uncomment(html []byte) []byte {
	html = bytes.ReplaceAll(html, []byte("<!--"), nil)
	return bytes.ReplaceAll(html, []byte("-->"), nil)
}
