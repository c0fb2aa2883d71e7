package types

import (
	"github.com/killallgit/podcast-gateway/internal/observability"
	"github.com/killallgit/podcast-gateway/internal/ratelimit"
	"github.com/killallgit/podcast-gateway/internal/services/podcasts"
	"github.com/killallgit/podcast-gateway/pkg/config"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Config        *config.Config
	Aggregator    podcasts.Aggregator
	Limiter       *ratelimit.Limiter
	Policies      map[string]ratelimit.Policy
	Observability *observability.Provider
}

// Development reports whether handlers should expose development-only surfaces.
func (d *Dependencies) Development() bool {
	return d != nil && d.Config != nil && d.Config.IsDevelopment()
}
