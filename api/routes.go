package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/podcast-gateway/api/graphql"
	"github.com/killallgit/podcast-gateway/api/health"
	"github.com/killallgit/podcast-gateway/api/podcasts"
	"github.com/killallgit/podcast-gateway/api/types"
	"github.com/killallgit/podcast-gateway/api/version"
	_ "github.com/killallgit/podcast-gateway/docs/swagger"
	"github.com/killallgit/podcast-gateway/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) error {
	// Register public routes (global limit only)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus exposition
	if deps.Observability != nil && deps.Config != nil {
		if h := deps.Observability.MetricsHandler(); h != nil {
			engine.GET(deps.Config.Monitoring.MetricsPath, gin.WrapH(h))
		}
	}

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// REST routes with the podcasts policy
	apiGroup := engine.Group("/api")
	podcasts.RegisterRoutes(apiGroup, deps, policyMiddleware(deps, config.PolicyPodcasts)...)

	// GraphQL with its own policy
	return graphql.RegisterRoutes(engine, deps, policyMiddleware(deps, config.PolicyGraphQL)...)
}

// policyMiddleware returns the limiter for the named policy, or nothing when
// rate limiting is off.
func policyMiddleware(deps *types.Dependencies, name string) []gin.HandlerFunc {
	if deps == nil || deps.Limiter == nil || deps.Config == nil || !deps.Config.RateLimiting.Enabled {
		return nil
	}
	policy, ok := deps.Policies[name]
	if !ok {
		return nil
	}
	return []gin.HandlerFunc{deps.Limiter.Middleware(policy)}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendNotFound(c)
	}
}
