package graphql

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/handler"

	"github.com/killallgit/podcast-gateway/api/types"
	"github.com/killallgit/podcast-gateway/pkg/logger"
)

// NewHandler builds the GraphQL HTTP handler. GraphiQL is served only in
// development.
func NewHandler(deps *types.Dependencies) (gin.HandlerFunc, error) {
	schema, err := NewSchema(deps.Aggregator)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	development := deps.Development()
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   development,
		GraphiQL: development,
	})

	return Serve(h, development), nil
}

// Serve handles GraphQL requests
// @Summary      GraphQL endpoint
// @Description  Executes a GraphQL query. The schema exposes podcasts(page, limit, search).
// @Description  GET requests carry the query in the query string; POST requests carry it in the body.
// @Tags         graphql
// @Accept       json
// @Produce      json
// @Param        query query string false "GraphQL query (GET only)"
// @Success      200 {object} map[string]interface{} "GraphQL result"
// @Failure      400 {object} types.ErrorResponse "GET without a query"
// @Failure      429 {object} ratelimit.Rejection "Rate limit exceeded"
// @Router       /graphql [get]
// @Router       /graphql [post]
func Serve(h *handler.Handler, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && c.Query("query") == "" && !development {
			types.SendBadRequest(c,
				"GraphQL endpoint requires a query",
				"Please provide a GraphQL query in the request body or query parameter")
			return
		}

		l := logger.FromContext(c)
		ctx := l.WithContext(c.Request.Context())
		h.ContextHandler(ctx, c.Writer, c.Request)
	}
}
