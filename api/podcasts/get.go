package podcasts

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podcast-gateway/api/types"
	"github.com/killallgit/podcast-gateway/pkg/logger"
)

// GetPodcasts returns one page of podcasts from the upstream catalog
// @Summary      List podcasts
// @Description  Returns one page of podcasts with the total item and page counts.
// @Description  The search term is trimmed and lower-cased before it is sent upstream.
// @Tags         podcasts
// @Produce      json
// @Param        search query string false "Search term"
// @Param        page   query int    false "Page number" minimum(1) default(1)
// @Param        limit  query int    false "Page size" minimum(1) maximum(100) default(10)
// @Success      200 {object} podcasts.PodcastPage "One page of podcasts"
// @Header       200 {string} X-Response-Time "Handler latency, e.g. 42ms"
// @Header       200 {integer} X-Total-Results "Number of podcasts in this page"
// @Failure      400 {object} types.ValidationErrorResponse "Invalid query parameters"
// @Failure      429 {object} ratelimit.Rejection "Rate limit exceeded"
// @Failure      500 {object} types.ErrorResponse "Upstream catalog failure"
// @Router       /api/podcasts [get]
func GetPodcasts(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		req, verr := parseQuery(c.Request.URL.Query())
		if verr != nil {
			types.SendValidationError(c, verr)
			return
		}

		page, err := deps.Aggregator.GetPage(c.Request.Context(), req)
		if err != nil {
			l := logger.FromContext(c)
			l.Error().Err(err).
				Int("page", req.Page).
				Int("limit", req.Limit).
				Str("search", req.Search).
				Msg("Failed to fetch podcasts")
			types.SendInternalError(c, "Something went wrong", "Unable to fetch podcast data at this time")
			return
		}

		c.Header("X-Response-Time", strconv.FormatInt(time.Since(start).Milliseconds(), 10)+"ms")
		c.Header("X-Total-Results", strconv.Itoa(len(page.Podcasts)))
		types.SendSuccess(c, page)
	}
}
