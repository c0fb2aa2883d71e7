package podcasts

import (
	"strings"

	"github.com/killallgit/podcast-gateway/internal/services/catalog"
)

// Pagination bounds
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is a pagination and search query
type PageRequest struct {
	Page   int
	Limit  int
	Search string
}

// Normalize applies defaults and bounds: page >= 1, limit in [1, MaxLimit],
// search lower-cased and trimmed.
func (r PageRequest) Normalize() PageRequest {
	if r.Page <= 0 {
		r.Page = DefaultPage
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	r.Search = strings.ToLower(strings.TrimSpace(r.Search))
	return r
}

// PodcastPage is one page of podcasts plus the totals needed to page through the rest
type PodcastPage struct {
	Podcasts    []catalog.Podcast `json:"podcasts"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	TotalItems  int               `json:"totalItems"`
}

// TotalPages returns ceil(totalItems/limit), or 0 when there is nothing to page.
func TotalPages(totalItems, limit int) int {
	if totalItems <= 0 || limit <= 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}
