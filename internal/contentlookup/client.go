package contentlookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const userAgent = "cramplan/1.0 (educational use)"

// Client fetches plain-text topic summaries from Wikipedia. Lookup failures
// are absorbed: a topic with no usable content yields an empty result, never
// an error the caller must handle.
type Client interface {
	// FetchTopicSummary returns a cleaned summary for the topic, or ""
	// when no matching content exists.
	FetchTopicSummary(ctx context.Context, topic string) string
}

type wikiClient struct {
	summaryURL string
	searchURL  string
	http       *http.Client
	log        *zap.Logger
}

// Option configures a wikiClient.
type Option func(*wikiClient)

// WithBaseURL points the client at an alternate API host, used by tests.
func WithBaseURL(base string) Option {
	return func(c *wikiClient) {
		c.summaryURL = base + "/api/rest_v1/page/summary/"
		c.searchURL = base + "/w/api.php"
	}
}

// NewClient creates a Wikipedia-backed lookup client with a bounded
// per-request timeout.
func NewClient(log *zap.Logger, opts ...Option) Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &wikiClient{
		summaryURL: "https://en.wikipedia.org/api/rest_v1/page/summary/",
		searchURL:  "https://en.wikipedia.org/w/api.php",
		http:       &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *wikiClient) FetchTopicSummary(ctx context.Context, topic string) string {
	pageTitle, err := c.searchForPage(ctx, topic)
	if err != nil {
		c.log.Warn("content search failed", zap.String("topic", topic), zap.Error(err))
		return ""
	}
	if pageTitle == "" {
		c.log.Info("no content page found", zap.String("topic", topic))
		return ""
	}

	extract, err := c.fetchSummary(ctx, pageTitle)
	if err != nil {
		c.log.Warn("content fetch failed", zap.String("topic", topic), zap.Error(err))
		return ""
	}
	return CleanText(extract)
}

// searchForPage finds the most relevant page title for a topic, or "" when
// nothing matches.
func (c *wikiClient) searchForPage(ctx context.Context, topic string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", topic)
	params.Set("format", "json")
	params.Set("srlimit", "5")

	body, err := c.get(ctx, c.searchURL+"?"+params.Encode())
	if err != nil {
		return "", err
	}

	var result struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding search response: %w", err)
	}
	if len(result.Query.Search) == 0 {
		return "", nil
	}
	return strings.ReplaceAll(result.Query.Search[0].Title, " ", "_"), nil
}

func (c *wikiClient) fetchSummary(ctx context.Context, pageTitle string) (string, error) {
	body, err := c.get(ctx, c.summaryURL+url.PathEscape(pageTitle))
	if err != nil {
		return "", err
	}

	var result struct {
		Extract string `json:"extract"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding summary response: %w", err)
	}
	return result.Extract, nil
}

func (c *wikiClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
