package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/api/types"
	buildinfo "github.com/killallgit/podcast-gateway/internal/version"
)

// ServiceName is reported at the service root
const ServiceName = "Podcast API Gateway"

// Get handles version requests
// @Summary      Service information
// @Description  Returns the service name and build metadata
// @Tags         version
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := buildinfo.GetInfo()
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:       ServiceName,
			Version:    info.Version,
			Commit:     info.GitCommit,
			BuildDate:  info.BuildDate,
			InstanceID: info.InstanceID,
			Status:     "running",
		})
	}
}
