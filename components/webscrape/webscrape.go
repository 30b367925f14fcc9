package webscrape

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"

	"github.com/tributary-dev/tributary/capability"
)

// maxExtract caps the extracted text so one large page cannot dominate a
// downstream prompt.
const maxExtract = 8000

// Scraper fetches the URL found in the query and extracts readable text.
type Scraper struct {
	c *resty.Client
}

func New(cfg capability.Config) (capability.Capability, error) {
	return &Scraper{c: resty.New()}, nil
}

func (s *Scraper) Run(ctx context.Context, query string) (string, error) {
	url := firstURL(query)
	if url == "" {
		return "", errors.New("no URL found in query")
	}

	resp, err := s.c.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetching %s: %s", url, resp.Status())
	}

	text, err := ExtractText(string(resp.Body()))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", url, err)
	}
	if text == "" {
		return fmt.Sprintf("No readable content was found at %s", url), nil
	}
	return text, nil
}

// firstURL returns the first http(s) token of the query, which may carry
// inline context ahead of the URL after prompt enrichment.
func firstURL(query string) string {
	for _, tok := range strings.Fields(query) {
		if strings.HasPrefix(tok, "http://") || strings.HasPrefix(tok, "https://") {
			return tok
		}
	}
	return ""
}

// ExtractText walks the HTML tree collecting visible text, skipping script,
// style and head content.
func ExtractText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := strings.Join(parts, " ")
	if len(text) > maxExtract {
		text = text[:maxExtract] + "..."
	}
	return text, nil
}

func init() {
	capability.Register("Web-Scraping", capability.EnrichInline, New)
}
