package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/tributary-dev/tributary/capability"
)

// ArXiv queries the arXiv Atom API and formats the top matches.
type ArXiv struct {
	c *resty.Client
}

func newArXiv(cfg capability.Config) (capability.Capability, error) {
	base := cfg.Setting("arxiv_base_url")
	if base == "" {
		base = "https://export.arxiv.org"
	}
	return &ArXiv{c: resty.New().SetBaseURL(base)}, nil
}

type atomFeed struct {
	Entries []struct {
		ID      string `xml:"id"`
		Title   string `xml:"title"`
		Summary string `xml:"summary"`
	} `xml:"entry"`
}

func (a *ArXiv) Run(ctx context.Context, query string) (string, error) {
	resp, err := a.c.R().
		SetContext(ctx).
		SetQueryParam("search_query", "all:"+query).
		SetQueryParam("max_results", "5").
		Get("/api/query")
	if err != nil {
		return "", fmt.Errorf("arxiv: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("arxiv: %s", resp.Status())
	}

	var feed atomFeed
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return "", fmt.Errorf("arxiv: decoding feed: %w", err)
	}
	if len(feed.Entries) == 0 {
		return fmt.Sprintf("No arXiv papers found for %q", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "arXiv results for %q:\n", query)
	for i, e := range feed.Entries {
		summary := strings.Join(strings.Fields(e.Summary), " ")
		if len(summary) > 300 {
			summary = summary[:300] + "..."
		}
		fmt.Fprintf(&b, "%d. %s\n   %s\n   %s\n", i+1, strings.TrimSpace(e.Title), summary, e.ID)
	}
	return b.String(), nil
}

func init() {
	capability.Register("ArXiv-Search", capability.EnrichNone, newArXiv)
}
