package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

const (
	fetchTimeout = 30 * time.Second
	maxFetchSize = 4 << 20 // 4 MiB cap on fetched pages
)

// ContentExtractor resolves the three supported ingest sources.
type ContentExtractor struct {
	httpClient *http.Client
}

// NewContentExtractor returns an extractor using a default HTTP client.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Extract returns plain text for the payload's source.
func (e *ContentExtractor) Extract(ctx context.Context, p Payload) (string, error) {
	switch p.Source {
	case "text":
		return strings.TrimSpace(p.Content), nil
	case "url":
		return e.extractURL(ctx, p.URL)
	case "pdf":
		return extractPDF(p.Path)
	default:
		return "", fmt.Errorf("unknown ingest source %q", p.Source)
	}
}

func (e *ContentExtractor) extractURL(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("empty url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	return htmlToText(io.LimitReader(resp.Body, maxFetchSize))
}

// htmlToText walks the parsed document and collects visible text, skipping
// script and style subtrees.
func htmlToText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String(), nil
}

func extractPDF(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty pdf path")
	}
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
