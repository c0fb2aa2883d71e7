package podcasts

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/killallgit/podcast-gateway/internal/services/catalog"
	"github.com/killallgit/podcast-gateway/pkg/errors"
	"github.com/killallgit/podcast-gateway/pkg/logger"
)

// Service joins a page fetch and a total count from the catalog
type Service struct {
	catalog  Catalog
	log      zerolog.Logger
	tracer   trace.Tracer
	duration metric.Float64Histogram
}

// NewService creates the aggregator over the given catalog
func NewService(c Catalog) *Service {
	s := &Service{
		catalog: c,
		log:     logger.Component("aggregator"),
		tracer:  otel.Tracer("podcast-gateway/podcasts"),
	}

	duration, err := otel.Meter("podcast-gateway/podcasts").Float64Histogram(
		"gateway.aggregation.duration",
		metric.WithDescription("Duration of page aggregation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to create aggregation duration histogram")
	}
	s.duration = duration

	return s
}

// GetPage fetches the requested page and the total count concurrently. If
// either call fails the other is cancelled and no partial page is returned.
func (s *Service) GetPage(ctx context.Context, req PageRequest) (*PodcastPage, error) {
	req = req.Normalize()

	ctx, span := s.tracer.Start(ctx, "podcasts.GetPage",
		trace.WithAttributes(
			attribute.Int("page", req.Page),
			attribute.Int("limit", req.Limit),
			attribute.Bool("search", req.Search != ""),
		),
	)
	defer span.End()
	start := time.Now()

	var (
		podcasts []catalog.Podcast
		total    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.catalog.FetchPage(gctx, req.Page, req.Limit, req.Search)
		if err != nil {
			return err
		}
		podcasts = page
		return nil
	})
	g.Go(func() error {
		count, err := s.catalog.FetchTotalCount(gctx, req.Search)
		if err != nil {
			return err
		}
		total = count
		return nil
	})

	err := g.Wait()
	s.record(ctx, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.AggregationError(err)
	}

	if podcasts == nil {
		podcasts = []catalog.Podcast{}
	}
	if total < 0 {
		total = 0
	}

	span.SetAttributes(attribute.Int("total_items", total))
	return &PodcastPage{
		Podcasts:    podcasts,
		CurrentPage: req.Page,
		TotalPages:  TotalPages(total, req.Limit),
		TotalItems:  total,
	}, nil
}

func (s *Service) record(ctx context.Context, start time.Time, err error) {
	if s.duration == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.duration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
