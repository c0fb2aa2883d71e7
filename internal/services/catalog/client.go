// Package catalog talks to the upstream podcast catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/killallgit/podcast-gateway/pkg/errors"
	"github.com/killallgit/podcast-gateway/pkg/logger"
)

// DefaultCountProbeLimit is the page size used to count the catalog.
// Catalogs larger than this are under-counted.
const DefaultCountProbeLimit = 10000

const (
	opFetchPage       = "FetchPage"
	opFetchTotalCount = "FetchTotalCount"
)

// Config holds configuration for the catalog client
type Config struct {
	BaseURL         string
	UserAgent       string
	Timeout         time.Duration
	CountProbeLimit int
	// RateLimit caps outbound requests per second. Zero disables the throttle.
	RateLimit float64
	RateBurst int
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client fetches pages and counts from the upstream catalog. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	probeLimit int
	limiter    *rate.Limiter
	log        zerolog.Logger

	tracer   trace.Tracer
	duration metric.Float64Histogram
	errCount metric.Int64Counter
}

// NewClient creates a new catalog client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "PodcastGateway/1.0"
	}
	if cfg.CountProbeLimit <= 0 {
		cfg.CountProbeLimit = DefaultCountProbeLimit
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		probeLimit: cfg.CountProbeLimit,
		limiter:    limiter,
		log:        logger.Component("catalog"),
		tracer:     otel.Tracer("podcast-gateway/catalog"),
	}

	meter := otel.Meter("podcast-gateway/catalog")
	var err error
	c.duration, err = meter.Float64Histogram(
		"gateway.upstream.duration",
		metric.WithDescription("Duration of upstream catalog calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to create upstream duration histogram")
	}
	c.errCount, err = meter.Int64Counter(
		"gateway.upstream.errors",
		metric.WithDescription("Number of failed upstream catalog calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to create upstream error counter")
	}

	return c
}

// FetchPage returns one page of podcasts. search is sent only when it is
// non-empty after trimming.
func (c *Client) FetchPage(ctx context.Context, page, limit int, search string) ([]Podcast, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	setSearch(params, search)

	var podcasts []Podcast
	if err := c.get(ctx, opFetchPage, params, &podcasts); err != nil {
		return nil, errors.UpstreamError("fetch page", err)
	}
	return podcasts, nil
}

// FetchTotalCount returns the number of podcasts matching search by asking
// for one oversized page and counting it. Elements are counted, not parsed.
func (c *Client) FetchTotalCount(ctx context.Context, search string) (int, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.probeLimit))
	setSearch(params, search)

	var items []json.RawMessage
	if err := c.get(ctx, opFetchTotalCount, params, &items); err != nil {
		return 0, errors.UpstreamError("count", err)
	}

	if len(items) >= c.probeLimit {
		c.log.Warn().
			Int("probe_limit", c.probeLimit).
			Msg("Catalog count reached the probe limit; total may be under-counted")
	}
	return len(items), nil
}

func setSearch(params url.Values, search string) {
	if s := strings.TrimSpace(search); s != "" {
		params.Set("search", s)
	}
}

// get performs a single GET against {baseURL}/podcasts and decodes the JSON body.
func (c *Client) get(ctx context.Context, op string, params url.Values, result interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "catalog."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("catalog.operation", op)),
	)
	start := time.Now()
	defer func() { c.record(ctx, span, op, start, err) }()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	fullURL := fmt.Sprintf("%s/podcasts?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("operation", op))
	if c.duration != nil {
		c.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	}

	if err != nil {
		if c.errCount != nil {
			c.errCount.Add(ctx, 1, attrs)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Debug().Err(err).Str("operation", op).Msg("Upstream call failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
