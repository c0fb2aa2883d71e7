// Package graphql serves the podcast listing over GraphQL. The resolver is an
// adapter over the same Aggregator the REST endpoint uses.
package graphql

import (
	stderrors "errors"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/killallgit/podcast-gateway/internal/services/catalog"
	podcastsvc "github.com/killallgit/podcast-gateway/internal/services/podcasts"
)

// ErrFetchFailed is the only resolver error clients ever see.
var ErrFetchFailed = stderrors.New("Error fetching podcast data")

var podcastImagesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PodcastImages",
	Fields: graphql.Fields{
		"default":   &graphql.Field{Type: graphql.String},
		"featured":  &graphql.Field{Type: graphql.String},
		"thumbnail": &graphql.Field{Type: graphql.String},
		"wide":      &graphql.Field{Type: graphql.String},
	},
})

var podcastType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Podcast",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				var podcast catalog.Podcast
				switch src := p.Source.(type) {
				case catalog.Podcast:
					podcast = src
				case *catalog.Podcast:
					podcast = *src
				default:
					return nil, nil
				}
				if id := podcast.IDString(); id != "" {
					return id, nil
				}
				return nil, nil
			},
		},
		"title":           &graphql.Field{Type: graphql.String},
		"description":     &graphql.Field{Type: graphql.String},
		"categoryName":    &graphql.Field{Type: graphql.String},
		"publisherName":   &graphql.Field{Type: graphql.String},
		"images":          &graphql.Field{Type: podcastImagesType},
		"isExclusive":     &graphql.Field{Type: graphql.Boolean},
		"hasFreeEpisodes": &graphql.Field{Type: graphql.Boolean},
		"mediaType":       &graphql.Field{Type: graphql.String},
	},
})

var podcastResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PodcastResponse",
	Fields: graphql.Fields{
		"podcasts":    &graphql.Field{Type: graphql.NewList(podcastType)},
		"totalItems":  &graphql.Field{Type: graphql.Int},
		"totalPages":  &graphql.Field{Type: graphql.Int},
		"currentPage": &graphql.Field{Type: graphql.Int},
	},
})

// NewSchema builds the gateway schema with its single podcasts query.
func NewSchema(agg podcastsvc.Aggregator) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"podcasts": &graphql.Field{
				Type:        podcastResponseType,
				Description: "One page of podcasts, optionally filtered by a search term",
				Args: graphql.FieldConfigArgument{
					"page":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: podcastsvc.DefaultPage},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: podcastsvc.DefaultLimit},
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: resolvePodcasts(agg),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func resolvePodcasts(agg podcastsvc.Aggregator) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		req := pageRequestFromArgs(p.Args)

		page, err := agg.GetPage(p.Context, req)
		if err != nil {
			zerolog.Ctx(p.Context).Error().Err(err).
				Int("page", req.Page).
				Int("limit", req.Limit).
				Str("search", req.Search).
				Msg("GraphQL podcasts query failed")
			return nil, ErrFetchFailed
		}
		return page, nil
	}
}

// pageRequestFromArgs maps query arguments onto a normalized PageRequest.
// Out-of-range values are clamped rather than rejected.
func pageRequestFromArgs(args map[string]interface{}) podcastsvc.PageRequest {
	var req podcastsvc.PageRequest
	if v, ok := args["page"].(int); ok {
		req.Page = v
	}
	if v, ok := args["limit"].(int); ok {
		req.Limit = v
	}
	if v, ok := args["search"].(string); ok {
		req.Search = v
	}
	return req.Normalize()
}
