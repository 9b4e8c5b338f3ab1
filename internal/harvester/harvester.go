// Package harvester fetches single document pages over HTTP and loads
// harvested-document JSON dumps. It does not crawl or follow links.
package harvester

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 10 << 20

// Config holds fetcher configuration.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Fetcher downloads document pages.
type Fetcher struct {
	config     Config
	httpClient *http.Client
}

// New creates a Fetcher with the given configuration.
func New(config Config) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "civic-docs/1.0"
	}
	return &Fetcher{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// FetchText downloads one document page and returns its plain text and,
// for HTML pages, the <title> content. HTML is converted to
// markdown-ish plain text; anything else is returned as-is.
func (f *Fetcher) FetchText(ctx context.Context, pageURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetching %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", pageURL, err)
	}

	content := string(body)
	contentType := resp.Header.Get("Content-Type")
	slog.Debug("fetched page", "url", pageURL, "content_type", contentType, "size", len(content))

	if !isHTML(contentType, content) {
		return content, "", nil
	}

	title := extractTitle(content)
	text, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", "", fmt.Errorf("converting %s: %w", pageURL, err)
	}
	return strings.TrimSpace(text), title, nil
}

// isHTML decides whether a response is an HTML page, by Content-Type
// first and content sniffing second.
func isHTML(contentType, content string) bool {
	ct := strings.ToLower(contentType)
	if strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml") {
		return true
	}
	if ct != "" && !strings.HasPrefix(ct, "text/plain") {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(lower, "<!doctype") ||
		strings.HasPrefix(lower, "<html") ||
		strings.HasPrefix(lower, "<head") ||
		strings.HasPrefix(lower, "<body")
}

// extractTitle pulls the <title> content out of an HTML page.
func extractTitle(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var title string
	var findTitle func(*html.Node)
	findTitle = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil {
				title = n.FirstChild.Data
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findTitle(c)
		}
	}
	findTitle(doc)

	return strings.TrimSpace(title)
}

// LoadDocuments reads a harvested-document JSON dump: either a plain
// array of documents or an object with a "documents" array.
func LoadDocuments(path string) ([]models.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading documents file: %w", err)
	}

	var docs []models.SourceDocument
	if err := json.Unmarshal(data, &docs); err == nil {
		return docs, nil
	}

	var wrapped struct {
		Documents []models.SourceDocument `json:"documents"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing documents file %s: %w", path, err)
	}
	return wrapped.Documents, nil
}
