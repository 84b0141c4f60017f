package source

import (
	"context"
	"time"

	"scraper/internal/model"
)

// Discoverer is one configured source turned into a candidate stream.
type Discoverer interface {
	Name() string
	Lang() string
	Fetch(ctx context.Context) ([]model.Item, error)
}

// New picks the adapter for the descriptor's discovery mode.
func New(m model.Source, fetchTimeout time.Duration) Discoverer {
	if m.Mode == model.ModeListing {
		return NewListingSource(m, fetchTimeout)
	}

	return NewFeedSource(m)
}
