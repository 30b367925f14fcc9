package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/tributary-dev/tributary/capability"
)

// Wikipedia looks up the REST summary endpoint for the queried title.
type Wikipedia struct {
	c *resty.Client
}

func newWikipedia(cfg capability.Config) (capability.Capability, error) {
	base := cfg.Setting("wikipedia_base_url")
	if base == "" {
		base = "https://en.wikipedia.org"
	}
	return &Wikipedia{c: resty.New().SetBaseURL(base)}, nil
}

func (w *Wikipedia) Run(ctx context.Context, query string) (string, error) {
	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	if title == "" {
		return "", fmt.Errorf("wikipedia: empty query")
	}

	var out struct {
		Title   string `json:"title"`
		Extract string `json:"extract"`
	}
	resp, err := w.c.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("title", title).
		Get("/api/rest_v1/page/summary/{title}")
	if err != nil {
		return "", fmt.Errorf("wikipedia: %w", err)
	}
	if resp.IsError() {
		return fmt.Sprintf("The article %q was not found", query), nil
	}
	if out.Extract == "" {
		return fmt.Sprintf("No summary available for %q", query), nil
	}
	return out.Title + ": " + out.Extract, nil
}

func init() {
	capability.Register("Wikipedia", capability.EnrichNone, newWikipedia)
}
