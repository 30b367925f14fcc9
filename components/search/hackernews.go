package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/tributary-dev/tributary/capability"
)

// HackerNews queries the Algolia HN search API and formats the top stories.
type HackerNews struct {
	c *resty.Client
}

func newHackerNews(cfg capability.Config) (capability.Capability, error) {
	base := cfg.Setting("hackernews_base_url")
	if base == "" {
		base = "https://hn.algolia.com"
	}
	return &HackerNews{c: resty.New().SetBaseURL(base)}, nil
}

func (h *HackerNews) Run(ctx context.Context, query string) (string, error) {
	var out struct {
		Hits []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Points      int    `json:"points"`
			NumComments int    `json:"num_comments"`
			ObjectID    string `json:"objectID"`
		} `json:"hits"`
	}
	resp, err := h.c.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("query", query).
		SetQueryParam("hitsPerPage", "5").
		Get("/api/v1/search")
	if err != nil {
		return "", fmt.Errorf("hackernews: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("hackernews: %s", resp.Status())
	}
	if len(out.Hits) == 0 {
		return fmt.Sprintf("No Hacker News stories found for %q", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top Hacker News results for %q:\n", query)
	for i, hit := range out.Hits {
		url := hit.URL
		if url == "" {
			url = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}
		fmt.Fprintf(&b, "%d. %s (%d points, %d comments) %s\n", i+1, hit.Title, hit.Points, hit.NumComments, url)
	}
	return b.String(), nil
}

func init() {
	capability.Register("HackerNews-Search", capability.EnrichNone, newHackerNews)
}
