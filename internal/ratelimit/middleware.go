package ratelimit

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Middleware returns a gin middleware enforcing policy per client IP. Every
// counted response carries the RateLimit-* headers; rejected requests get a
// 429 with Retry-After and the policy's body. A store failure lets the
// request through.
func (l *Limiter) Middleware(policy Policy) gin.HandlerFunc {
	policyHeader := strconv.Itoa(policy.Max) + ";w=" + strconv.Itoa(int(policy.Window.Seconds()))

	return func(c *gin.Context) {
		if policy.Skip != nil && policy.Skip(c) {
			c.Next()
			return
		}

		client := c.ClientIP()
		allowed, info, err := l.Allow(c.Request.Context(), policy, client)
		if err != nil {
			l.log.Error().
				Err(err).
				Str("policy", policy.Name).
				Str("client_ip", client).
				Msg("Rate limit check failed, allowing request")
			c.Next()
			return
		}

		now := l.now()
		resetSecs := int(math.Ceil(info.ResetAt.Sub(now).Seconds()))
		if resetSecs < 0 {
			resetSecs = 0
		}

		c.Header("RateLimit-Policy", policyHeader)
		c.Header("RateLimit-Limit", strconv.Itoa(info.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(info.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(resetSecs))

		if !allowed {
			retryAfter := info.RetryAfter(now)
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			l.log.Warn().
				Str("policy", policy.Name).
				Str("client_ip", client).
				Int("limit", info.Limit).
				Int("retry_after", retryAfter).
				Msg("Rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, Rejection{
				Error:      policy.Error,
				Message:    policy.Message,
				RetryAfter: retryAfter,
			})
			return
		}

		c.Next()
	}
}
