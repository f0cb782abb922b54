// Package pagecontent turns a web page, given as a URL or a saved file, into
// the plain text passed to engines as translation context.
package pagecontent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultFetchTimeout  = 12 * time.Second
	DefaultBodyByteLimit = 2 * 1024 * 1024

	defaultUserAgent = "honyaku/1.0 (+https://github.com/valpere/honyaku)"
)

var ErrEmptyContent = errors.New("page content is empty")

// Loader reads page content from files or over HTTP.
type Loader struct {
	client        *resty.Client
	bodyByteLimit int64
}

// NewLoader returns a Loader that fetches URLs with client.
func NewLoader(client *resty.Client) *Loader {
	return &Loader{client: client, bodyByteLimit: DefaultBodyByteLimit}
}

// Load reads pathOrURL. http(s) URLs are fetched; anything else is a local
// file. HTML is reduced to its readable text, .txt and .md are used as-is.
func (l *Loader) Load(ctx context.Context, pathOrURL string) (string, error) {
	src := strings.TrimSpace(pathOrURL)
	if src == "" {
		return "", fmt.Errorf("page source is required")
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return l.FetchText(ctx, src)
	}
	return l.readFile(src)
}

// FetchText downloads pageURL and extracts its readable text.
func (l *Loader) FetchText(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	resp, err := l.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8").
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch url: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("fetch status %d", resp.StatusCode())
	}

	raw, err := io.ReadAll(io.LimitReader(body, l.bodyByteLimit))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	contentType := strings.ToLower(strings.TrimSpace(resp.Header().Get("Content-Type")))
	if strings.HasPrefix(contentType, "text/plain") {
		return nonEmpty(CleanText(string(raw)))
	}
	return Extract(bytes.NewReader(raw), parsed)
}

func (l *Loader) readFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read page file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		return nonEmpty(CleanText(string(raw)))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Extract(bytes.NewReader(raw), &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)})
}

// Extract runs readability over an HTML document and returns its text,
// falling back to the excerpt when the article body is empty.
func Extract(r io.Reader, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return "", fmt.Errorf("readability parse: %w", err)
	}

	var rendered bytes.Buffer
	if err := article.RenderText(&rendered); err != nil {
		return "", fmt.Errorf("render readability text: %w", err)
	}

	text := CleanText(rendered.String())
	if text == "" {
		text = CleanText(article.Excerpt())
	}
	return nonEmpty(text)
}

// CleanText normalizes line endings and collapses extra in-line whitespace.
func CleanText(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		clean := strings.Join(strings.Fields(strings.TrimSpace(line)), " ")
		if clean == "" {
			continue
		}
		paragraphs = append(paragraphs, clean)
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

func nonEmpty(text string) (string, error) {
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}
