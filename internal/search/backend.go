package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultNumResults is used when a request does not ask for a count.
const DefaultNumResults = 5

const duckDuckGoURL = "https://html.duckduckgo.com/html/"

// Provider fetches live results for a query.
type Provider interface {
	Search(ctx context.Context, query string, n int) ([]Snippet, error)
}

// Backend serves web-search requests. It always answers: when the provider
// fails or finds nothing it falls back to template results.
type Backend struct {
	provider Provider
	logger   *slog.Logger
	now      func() time.Time
}

// NewBackend creates a backend around provider. A nil provider serves
// templates only.
func NewBackend(provider Provider, logger *slog.Logger) *Backend {
	return &Backend{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// Search returns up to n results for query.
func (b *Backend) Search(ctx context.Context, query string, n int) []Snippet {
	if n <= 0 {
		n = DefaultNumResults
	}

	if b.provider != nil {
		results, err := b.provider.Search(ctx, query, n)
		switch {
		case err != nil:
			b.logger.Warn("Search provider failed, serving templates", "query", query, "error", err)
		case len(results) == 0:
			b.logger.Info("Search provider returned no results, serving templates", "query", query)
		default:
			return results
		}
	}

	return TemplateResults(query, n, b.now().Year())
}

// TemplateResults builds canned results so the backend always returns
// something useful.
func TemplateResults(query string, n, year int) []Snippet {
	escaped := url.PathEscape(query)
	templates := []Snippet{
		{
			Title:  fmt.Sprintf("%s - Latest Trends and Insights %d", query, year),
			URL:    "https://example.com/search?q=" + url.QueryEscape(query),
			Text:   fmt.Sprintf("Discover the latest trends, insights, and best practices for %s. Stay updated with current industry developments.", query),
			Source: "Template",
		},
		{
			Title:  fmt.Sprintf("Complete Guide to %s in %d", query, year),
			URL:    "https://example.com/guide/" + escaped,
			Text:   fmt.Sprintf("A comprehensive guide covering everything you need to know about %s, including tips, strategies, and expert advice.", query),
			Source: "Template",
		},
		{
			Title:  fmt.Sprintf("%s Best Practices and Strategies", query),
			URL:    "https://example.com/best-practices/" + escaped,
			Text:   fmt.Sprintf("Learn proven strategies and best practices for %s. Expert insights and actionable tips for success.", query),
			Source: "Template",
		},
		{
			Title:  fmt.Sprintf("Top %s Tools and Resources %d", query, year),
			URL:    "https://example.com/tools/" + escaped,
			Text:   fmt.Sprintf("Explore the best tools, resources, and platforms for %s. Compare features and find the right solution.", query),
			Source: "Template",
		},
		{
			Title:  fmt.Sprintf("%s Case Studies and Success Stories", query),
			URL:    "https://example.com/case-studies/" + escaped,
			Text:   fmt.Sprintf("Real-world case studies and success stories showcasing effective %s implementations and results.", query),
			Source: "Template",
		},
	}

	if n < len(templates) {
		templates = templates[:n]
	}
	return templates
}

// DuckDuckGo scrapes the DuckDuckGo HTML interface. No API key is needed.
type DuckDuckGo struct {
	httpClient *http.Client
	baseURL    string
}

// NewDuckDuckGo creates a DuckDuckGo provider with the given request timeout.
func NewDuckDuckGo(timeout time.Duration) *DuckDuckGo {
	return &DuckDuckGo{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    duckDuckGoURL,
	}
}

// Search implements Provider.
func (d *DuckDuckGo) Search(ctx context.Context, query string, n int) ([]Snippet, error) {
	searchURL := d.baseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return parseResults(doc, n), nil
}

// parseResults walks div.result blocks and pulls title, URL and snippet.
func parseResults(doc *html.Node, n int) []Snippet {
	var results []Snippet

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if len(results) >= n {
			return
		}
		if node.Type == html.ElementNode && node.Data == "div" && hasClass(node, "result") {
			if r := extractResult(node); r.Title != "" && r.URL != "" {
				r.Source = "DuckDuckGo"
				results = append(results, r)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results
}

func extractResult(node *html.Node) Snippet {
	var r Snippet

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			switch {
			case hasClass(n, "result__a"):
				r.Title = textContent(n)
				if r.URL == "" {
					r.URL = cleanURL(attr(n, "href"))
				}
			case hasClass(n, "result__url"):
				r.URL = cleanURL(attr(n, "href"))
			case hasClass(n, "result__snippet"):
				r.Text = textContent(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	if r.Text == "" {
		r.Text = "No description"
	}
	return r
}

// cleanURL unwraps DuckDuckGo redirect links.
func cleanURL(href string) string {
	const redirect = "//duckduckgo.com/l/?uddg="
	if !strings.HasPrefix(href, redirect) {
		return href
	}

	decoded, err := url.QueryUnescape(strings.TrimPrefix(href, redirect))
	if err != nil {
		return href
	}
	if idx := strings.Index(decoded, "&"); idx > 0 {
		decoded = decoded[:idx]
	}
	return decoded
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}
