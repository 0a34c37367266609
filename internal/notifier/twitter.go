package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/fbref-matches/internal/match"
)

// PostInterval is the pause between two consecutive posts
const PostInterval = 2 * time.Second

// ErrMissingCredentials is returned when a Twitter credential is not set
var ErrMissingCredentials = errors.New("missing required Twitter credentials in environment variables")

// TwitterNotifier posts matches to Twitter
type TwitterNotifier struct {
	client   *twitter.Client
	interval time.Duration
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, ErrMissingCredentials
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	return NewTwitterNotifierWithClient(config.Client(oauth1.NoContext, token)), nil
}

// NewTwitterNotifierWithClient creates a notifier on an already authenticated client
func NewTwitterNotifierWithClient(httpClient *http.Client) *TwitterNotifier {
	return &TwitterNotifier{
		client:   twitter.NewClient(httpClient),
		interval: PostInterval,
	}
}

// Notify posts one tweet per match, pausing between tweets
func (n *TwitterNotifier) Notify(ctx context.Context, posts []*match.Posted) error {
	for i, p := range posts {
		if _, _, err := n.client.Statuses.Update(formatPost(p), nil); err != nil {
			return fmt.Errorf("posting tweet for %s %s: %w", p.League, p.Match.Key(), err)
		}

		if i == len(posts)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.interval):
		}
	}
	return nil
}
