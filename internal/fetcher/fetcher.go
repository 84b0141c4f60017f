package fetcher

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"scraper/internal/extract"
	"scraper/internal/model"
	"scraper/internal/storage"

	"github.com/samber/lo"
)

type ArticleStorage interface {
	ByURL(ctx context.Context, sourceURL string) (*model.Article, error)
	Upsert(ctx context.Context, article model.Article) (int64, error)
	EnsurePublishIndex(ctx context.Context, articleID int64, slug string) error
}

type Source interface {
	Name() string
	Lang() string
	Fetch(ctx context.Context) ([]model.Item, error)
}

type Extractor interface {
	Extract(ctx context.Context, link string) (string, error)
	ExtractImage(ctx context.Context, link string) string
}

type Translator interface {
	Translate(ctx context.Context, text, from, to string) string
}

type Notifier interface {
	Notify(article model.Article) error
}

// Fetcher runs one bounded ingestion pass: sources in fixed order,
// candidates in discovery order, stopping at the per-run save cap.
// A failing source or candidate is skipped, never aborts the run.
type Fetcher struct {
	articles   ArticleStorage
	sources    []Source
	extractor  Extractor
	translator Translator
	notifier   Notifier

	keywords  []string
	maxSaved  int
	savePause time.Duration
}

func New(articles ArticleStorage, sources []Source, extractor Extractor, translator Translator,
	keywords []string, maxSaved int, savePause time.Duration) *Fetcher {

	return &Fetcher{
		articles:   articles,
		sources:    sources,
		extractor:  extractor,
		translator: translator,
		keywords:   keywords,
		maxSaved:   maxSaved,
		savePause:  savePause,
	}
}

// WithNotifier attaches the optional post-save notification side effect.
func (f *Fetcher) WithNotifier(n Notifier) *Fetcher {
	f.notifier = n
	return f
}

func (f *Fetcher) Run(ctx context.Context) error {
	totalSaved := 0

	for _, src := range f.sources {
		if totalSaved >= f.maxSaved {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Printf("checking source %s", src.Name())

		saved, err := f.processSource(ctx, src, f.maxSaved-totalSaved)
		totalSaved += saved

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			log.Printf("ERROR: source %s skipped: %v", src.Name(), err)
		}
	}

	log.Printf("run finished, %d new articles", totalSaved)

	return nil
}

// processSource discovers, filters and ingests candidates for one source,
// saving at most budget articles.
func (f *Fetcher) processSource(ctx context.Context, src Source, budget int) (int, error) {
	items, err := src.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	items = f.relevantItems(items)

	saved := 0

	for _, item := range items {
		if saved >= budget {
			break
		}

		if ctx.Err() != nil {
			return saved, ctx.Err()
		}

		stored, err := f.processItem(ctx, src, item)

		if err != nil {
			log.Printf("ERROR: candidate %s skipped: %v", item.Link, err)
			continue
		}

		if !stored {
			continue
		}

		saved++

		select {
		case <-ctx.Done():
			return saved, ctx.Err()
		case <-time.After(f.savePause):
		}
	}

	return saved, nil
}

// processItem runs one candidate through dedup, extraction, translation and
// persistence. Returns true only when a new article was written.
func (f *Fetcher) processItem(ctx context.Context, src Source, item model.Item) (bool, error) {
	existing, err := f.articles.ByURL(ctx, item.Link)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	if existing != nil {
		// Already ingested; heal the index row if an earlier run saved the
		// article but crashed before indexing it.
		if err := f.articles.EnsurePublishIndex(ctx, existing.ID, existing.Slug); err != nil {
			log.Printf("ERROR: article %d still not indexed: %v", existing.ID, err)
		}

		return false, nil
	}

	log.Printf("new content found: %q", truncate(item.Title, 50))

	body, err := f.extractor.Extract(ctx, item.Link)

	if errors.Is(err, extract.ErrNoContent) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	image := f.extractor.ExtractImage(ctx, item.Link)

	article := f.assemble(ctx, src, item, body, image)

	id, err := f.articles.Upsert(ctx, article)
	if err != nil {
		return false, err
	}

	// Index write is not atomic with the article write; a failure here
	// leaves the article unindexed until a later repair, never unsaved.
	if err := f.articles.EnsurePublishIndex(ctx, id, article.Slug); err != nil {
		log.Printf("ERROR: article %d saved but not indexed: %v", id, err)
	}

	if f.notifier != nil {
		if err := f.notifier.Notify(article); err != nil {
			log.Printf("ERROR: notification failed: %v", err)
		}
	}

	return true, nil
}

// relevantItems keeps keyword matches and collapses repeated links, so two
// anchors pointing at the same URL cost one pipeline attempt.
func (f *Fetcher) relevantItems(items []model.Item) []model.Item {
	matched := lo.Filter(items, func(item model.Item, _ int) bool {
		searchArea := strings.ToLower(item.Title + item.Link)

		return lo.SomeBy(f.keywords, func(keyword string) bool {
			return strings.Contains(searchArea, strings.ToLower(keyword))
		})
	})

	return lo.UniqBy(matched, func(item model.Item) string { return item.Link })
}

func truncate(s string, n int) string {
	runes := []rune(s)

	if len(runes) <= n {
		return s
	}

	return string(runes[:n]) + "..."
}
