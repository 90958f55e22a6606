package builtin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	searchEndpoint   = "https://html.duckduckgo.com/html/"
	searchUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	searchTimeout    = 10 * time.Second
	maxSearchResults = 3
)

// SearchTool queries DuckDuckGo's HTML endpoint and extracts the top results.
type SearchTool struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewSearchTool(logger *zap.Logger) *SearchTool {
	return &SearchTool{
		endpoint: searchEndpoint,
		client:   &http.Client{Timeout: searchTimeout},
		logger:   logger,
	}
}

// NewSearchToolWithClient points the tool at an alternate endpoint and
// client, for tests.
func NewSearchToolWithClient(endpoint string, client *http.Client, logger *zap.Logger) *SearchTool {
	return &SearchTool{endpoint: endpoint, client: client, logger: logger}
}

func (t *SearchTool) Name() string { return "search_web" }

func (t *SearchTool) Description() string { return "Search the web for information" }

func (t *SearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query string",
			},
		},
		"required": []string{"query"},
	}
}

func (t *SearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, err := stringArg(args, "query")
	if err != nil {
		return fmt.Sprintf("Error searching web: %v", err), nil
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Sprintf("Error searching web: %v", err), nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("web search request failed", zap.Error(err))
		return fmt.Sprintf("Error searching web: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.logger.Warn("web search returned non-200 status", zap.Int("status", resp.StatusCode))
		return fmt.Sprintf("Error searching web: unexpected status %d", resp.StatusCode), nil
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return fmt.Sprintf("Error searching web: %v", err), nil
	}

	results := extractResults(doc, maxSearchResults)
	t.logger.Debug("web search completed", zap.String("query", query), zap.Int("results", len(results)))

	if len(results) == 0 {
		return fmt.Sprintf("No search results found for '%s'", query), nil
	}
	return fmt.Sprintf("Search results for '%s':\n\n%s", query, strings.Join(results, "\n\n")), nil
}

// extractResults collects up to max "**title**: snippet" entries from the
// result divs of a DuckDuckGo HTML response.
func extractResults(doc *html.Node, max int) []string {
	var results []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= max {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") {
			title := textOfClass(n, "result__a")
			if title != "" {
				snippet := textOfClass(n, "result__snippet")
				if snippet == "" {
					snippet = "No description"
				}
				results = append(results, fmt.Sprintf("**%s**: %s", title, snippet))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results
}

// textOfClass returns the trimmed text of the first descendant element
// carrying the given class token.
func textOfClass(n *html.Node, class string) string {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && hasClass(n, class) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(collectText(found))
}

func collectText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(collectText(c))
	}
	return sb.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(attr.Val) {
			if token == class {
				return true
			}
		}
	}
	return false
}
