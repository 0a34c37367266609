package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// RobotsCache fetches robots.txt once per host and answers path checks
type RobotsCache struct {
	client    *http.Client
	userAgent string
	robots    map[string]*robotstxt.RobotsData
}

// NewRobotsCache creates an empty cache
func NewRobotsCache(client *http.Client, userAgent string) *RobotsCache {
	return &RobotsCache{
		client:    client,
		userAgent: userAgent,
		robots:    make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the user agent may fetch rawURL. A host whose
// robots.txt cannot be retrieved is treated as allowing everything.
func (c *RobotsCache) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parsing url: %w", err)
	}
	host := u.Scheme + "://" + u.Host

	data, ok := c.robots[host]
	if !ok {
		data = c.load(ctx, host)
		c.robots[host] = data
	}
	if data == nil {
		return true, nil
	}
	return data.TestAgent(u.Path, c.userAgent), nil
}

func (c *RobotsCache) load(ctx context.Context, host string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return data
}
