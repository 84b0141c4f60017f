package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scraper/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// Anchors with shorter visible text are nav/button links, not article titles.
const minAnchorTextLen = 25

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// ListingSource discovers candidates by scanning a plain HTML listing page
// for long-enough anchor texts inside the configured container.
type ListingSource struct {
	url        string
	sourceName string
	sourceLang string
	selector   string
	client     *http.Client
}

func NewListingSource(m model.Source, timeout time.Duration) *ListingSource {
	return &ListingSource{
		url:        m.Endpoint,
		sourceName: m.Name,
		sourceLang: m.Lang,
		selector:   m.Selector,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *ListingSource) Name() string {
	return s.sourceName
}

func (s *ListingSource) Lang() string {
	return s.sourceLang
}

func (s *ListingSource) Fetch(ctx context.Context) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing %s: status %d", s.url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	selector := "a"
	if s.selector != "" {
		selector = s.selector + " a"
	}

	var items []model.Item

	doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
		title := strings.TrimSpace(a.Text())
		link, ok := a.Attr("href")

		if !ok || link == "" || len(title) <= minAnchorTextLen {
			return
		}

		items = append(items, model.Item{Title: title, Link: link})
	})

	return resolveLinks(s.url, items), nil
}

// resolveLinks makes every candidate link absolute against the endpoint,
// so the canonical URL never leaves the discovery stage relative.
func resolveLinks(endpoint string, items []model.Item) []model.Item {
	base, err := url.Parse(endpoint)
	if err != nil {
		return items
	}

	resolved := make([]model.Item, 0, len(items))

	for _, item := range items {
		ref, err := url.Parse(strings.TrimSpace(item.Link))
		if err != nil {
			continue
		}

		item.Link = base.ResolveReference(ref).String()
		resolved = append(resolved, item)
	}

	return resolved
}
