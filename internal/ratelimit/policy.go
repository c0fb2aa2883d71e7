package ratelimit

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/pkg/config"
)

// Policy is one rate limit scope: a window, the hits allowed in it, and the
// body returned once the limit is exceeded.
type Policy struct {
	Name    string
	Window  time.Duration
	Max     int
	Error   string
	Message string
	// Skip exempts a request from the policy without counting it.
	Skip func(c *gin.Context) bool
}

// Rejection is the JSON body of a 429 response
type Rejection struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter"`
}

// DefaultPolicy returns the built-in policy for name. Unknown names get the
// global wording.
func DefaultPolicy(name string) Policy {
	switch name {
	case config.PolicyGraphQL:
		return Policy{
			Name:    name,
			Window:  10 * time.Minute,
			Max:     50,
			Error:   "Too many GraphQL queries from this IP, please try again later.",
			Message: "Please wait before sending more GraphQL queries",
		}
	case config.PolicyPodcasts:
		return Policy{
			Name:    name,
			Window:  5 * time.Minute,
			Max:     30,
			Error:   "Too many podcast requests from this IP",
			Message: "Please wait 5 minutes before making more requests",
		}
	default:
		return Policy{
			Name:    name,
			Window:  15 * time.Minute,
			Max:     100,
			Error:   "Too many requests",
			Message: "You have exceeded the rate limit. Please try again later.",
		}
	}
}

// PoliciesFromConfig builds the global, graphql and podcasts policies,
// overriding window and max from configuration.
func PoliciesFromConfig(cfg *config.Config) map[string]Policy {
	policies := make(map[string]Policy, 3)
	for _, name := range []string{config.PolicyGlobal, config.PolicyGraphQL, config.PolicyPodcasts} {
		p := DefaultPolicy(name)
		if pc, ok := cfg.RateLimiting.Policies[name]; ok {
			if pc.Window > 0 {
				p.Window = pc.Window
			}
			if pc.Max > 0 {
				p.Max = pc.Max
			}
		}
		policies[name] = p
	}

	global := policies[config.PolicyGlobal]
	global.Skip = SkipPaths(cfg.RateLimiting.ExemptPaths...)
	policies[config.PolicyGlobal] = global

	if cfg.IsDevelopment() {
		graphql := policies[config.PolicyGraphQL]
		graphql.Skip = SkipBrowsers
		policies[config.PolicyGraphQL] = graphql
	}

	return policies
}

// SkipPaths exempts requests whose path equals, or is nested under, one of paths.
func SkipPaths(paths ...string) func(c *gin.Context) bool {
	return func(c *gin.Context) bool {
		p := c.Request.URL.Path
		for _, exempt := range paths {
			if exempt == "" {
				continue
			}
			if p == exempt || strings.HasPrefix(p, strings.TrimRight(exempt, "/")+"/") {
				return true
			}
		}
		return false
	}
}

// SkipBrowsers exempts requests whose User-Agent contains "Mozilla".
func SkipBrowsers(c *gin.Context) bool {
	return strings.Contains(c.Request.UserAgent(), "Mozilla")
}
