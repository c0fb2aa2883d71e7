package podcasts

import (
	"context"

	"github.com/killallgit/podcast-gateway/internal/services/catalog"
)

// Catalog defines the upstream calls the aggregator depends on
type Catalog interface {
	FetchPage(ctx context.Context, page, limit int, search string) ([]catalog.Podcast, error)
	FetchTotalCount(ctx context.Context, search string) (int, error)
}

// Aggregator assembles one page of podcasts with its pagination totals.
// Both the REST and GraphQL endpoints share a single instance.
type Aggregator interface {
	GetPage(ctx context.Context, req PageRequest) (*PodcastPage, error)
}
