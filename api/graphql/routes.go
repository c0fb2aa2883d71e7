package graphql

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/api/types"
)

// RegisterRoutes registers the GraphQL endpoint on GET and POST
// Rate limiting is applied at the route registration level
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, middleware ...gin.HandlerFunc) error {
	serve, err := NewHandler(deps)
	if err != nil {
		return err
	}

	handlers := append(middleware, serve)
	engine.GET("/graphql", handlers...)
	engine.POST("/graphql", handlers...)
	return nil
}
