package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ErrNoContent means the page yielded too little usable text; the candidate
// is skipped, not retried within the run.
var ErrNoContent = errors.New("no usable content")

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Containers tried in order; the first one producing enough paragraphs wins.
var defaultSelectors = []string{
	"article p",
	".article-body p",
	".entry-content p",
	".article__body p",
	"p",
}

type Extractor struct {
	client        *http.Client
	imageClient   *http.Client
	selectors     []string
	minParLen     int
	maxParagraphs int
	minContentLen int
	defaultImages []string
}

func New(fetchTimeout, imageTimeout time.Duration, minContentLen int, defaultImages []string) *Extractor {
	return &Extractor{
		client:        &http.Client{Timeout: fetchTimeout},
		imageClient:   &http.Client{Timeout: imageTimeout},
		selectors:     defaultSelectors,
		minParLen:     90,
		maxParagraphs: 12,
		minContentLen: minContentLen,
		defaultImages: defaultImages,
	}
}

// Extract fetches the article page and returns its body text as
// double-newline separated paragraphs.
func (e *Extractor) Extract(ctx context.Context, link string) (string, error) {
	body, err := e.fetch(ctx, e.client, link)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoContent, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoContent, err)
	}

	for _, selector := range e.selectors {
		paragraphs := e.collect(doc, selector)

		if text := strings.Join(paragraphs, "\n\n"); len(paragraphs) > 0 && len(text) >= e.minContentLen {
			return text, nil
		}
	}

	if text, ok := e.readable(link, body); ok {
		return text, nil
	}

	return "", ErrNoContent
}

func (e *Extractor) collect(doc *goquery.Document, selector string) []string {
	var paragraphs []string

	doc.Find(selector).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		txt := strings.TrimSpace(p.Text())

		if e.keep(txt) {
			paragraphs = append(paragraphs, txt)
		}

		return len(paragraphs) < e.maxParagraphs
	})

	return paragraphs
}

// keep drops boilerplate: short lines, copyright and subscription notices.
func (e *Extractor) keep(txt string) bool {
	if len(txt) <= e.minParLen {
		return false
	}

	lower := strings.ToLower(txt)

	return !strings.Contains(txt, "©") &&
		!strings.Contains(txt, "All rights reserved") &&
		!strings.Contains(lower, "subscribe")
}

// readable is the last extraction strategy: whole-page readability parse,
// re-filtered through the same paragraph rules.
func (e *Extractor) readable(link string, body []byte) (string, bool) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", false
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", false
	}

	var paragraphs []string

	for _, line := range strings.Split(article.TextContent, "\n") {
		line = strings.TrimSpace(line)

		if e.keep(line) {
			paragraphs = append(paragraphs, line)
		}

		if len(paragraphs) >= e.maxParagraphs {
			break
		}
	}

	text := strings.Join(paragraphs, "\n\n")

	return text, len(paragraphs) > 0 && len(text) >= e.minContentLen
}

// ExtractImage never fails: page meta image first, then a deterministic
// pick from the configured stock pool.
func (e *Extractor) ExtractImage(ctx context.Context, link string) string {
	body, err := e.fetch(ctx, e.imageClient, link)
	if err != nil {
		return e.fallbackImage(link)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return e.fallbackImage(link)
	}

	image, ok := doc.Find(`meta[property="og:image"]`).Attr("content")
	if !ok {
		image, _ = doc.Find(`meta[name="twitter:image"]`).Attr("content")
	}

	if !strings.HasPrefix(image, "http") {
		return e.fallbackImage(link)
	}

	return image
}

func (e *Extractor) fallbackImage(link string) string {
	if len(e.defaultImages) == 0 {
		return ""
	}

	h := fnv.New32a()
	h.Write([]byte(link))

	return e.defaultImages[int(h.Sum32())%len(e.defaultImages)]
}

func (e *Extractor) fetch(ctx context.Context, client *http.Client, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", link, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
