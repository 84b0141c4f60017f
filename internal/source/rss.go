package source

import (
	"context"

	"scraper/internal/model"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"
)

type FeedSource struct {
	url        string
	sourceName string
	sourceLang string
}

func NewFeedSource(m model.Source) *FeedSource {
	return &FeedSource{
		url:        m.Endpoint,
		sourceName: m.Name,
		sourceLang: m.Lang,
	}
}

func (s *FeedSource) Name() string {
	return s.sourceName
}

func (s *FeedSource) Lang() string {
	return s.sourceLang
}

func (s *FeedSource) Fetch(ctx context.Context) ([]model.Item, error) {
	feed, err := s.loadFeed(ctx, s.url)

	if err != nil {
		return nil, err
	}

	items := lo.Map(feed.Items, func(item *rss.Item, _ int) model.Item {
		return model.Item{
			Title: item.Title,
			Link:  item.Link,
		}
	})

	return resolveLinks(s.url, items), nil
}

func (s *FeedSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	feedChan := make(chan *rss.Feed)
	errorChan := make(chan error)

	go func() {
		feed, err := rss.Fetch(url)

		if err != nil {
			errorChan <- err
			return
		}

		feedChan <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errorChan:
		return nil, err
	case feed := <-feedChan:
		return feed, nil
	}
}
