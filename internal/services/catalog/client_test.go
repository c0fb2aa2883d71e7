package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podcast-gateway/pkg/errors"
)

const samplePage = `[
	{
		"id": 1,
		"title": "The Daily Build",
		"description": "Engineering news",
		"categoryName": "Technology",
		"publisherName": "Acme Audio",
		"images": {"default": "d.png", "featured": "f.png", "thumbnail": "t.png", "wide": "w.png"},
		"isExclusive": true,
		"hasFreeEpisodes": false,
		"mediaType": "audio"
	},
	{"id": "pod-2", "title": "Second", "images": {}}
]`

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://catalog.local/"})

	assert.Equal(t, "http://catalog.local", client.baseURL)
	assert.Equal(t, "PodcastGateway/1.0", client.userAgent)
	assert.Equal(t, DefaultCountProbeLimit, client.probeLimit)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	assert.Nil(t, client.limiter)
}

func TestFetchPage(t *testing.T) {
	tests := []struct {
		name       string
		search     string
		wantQuery  map[string]string
		wantSearch bool
	}{
		{
			name:      "without search",
			search:    "",
			wantQuery: map[string]string{"page": "2", "limit": "5"},
		},
		{
			name:      "whitespace search is omitted",
			search:    "   ",
			wantQuery: map[string]string{"page": "2", "limit": "5"},
		},
		{
			name:       "with search",
			search:     " tech ",
			wantQuery:  map[string]string{"page": "2", "limit": "5", "search": "tech"},
			wantSearch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/podcasts", r.URL.Path)
				assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))

				q := r.URL.Query()
				for k, v := range tt.wantQuery {
					assert.Equal(t, v, q.Get(k), "query param %s", k)
				}
				_, hasSearch := q["search"]
				assert.Equal(t, tt.wantSearch, hasSearch)

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(samplePage))
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL, UserAgent: "TestAgent/1.0"})
			podcasts, err := client.FetchPage(context.Background(), 2, 5, tt.search)
			require.NoError(t, err)
			require.Len(t, podcasts, 2)

			assert.Equal(t, "The Daily Build", podcasts[0].Title)
			assert.Equal(t, "Technology", podcasts[0].CategoryName)
			assert.Equal(t, "w.png", podcasts[0].Images.Wide)
			assert.True(t, podcasts[0].IsExclusive)
			assert.Equal(t, "1", podcasts[0].IDString())
			assert.Equal(t, "pod-2", podcasts[1].IDString())
		})
	}
}

func TestFetchPage_PreservesRawID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	podcasts, err := NewClient(Config{BaseURL: server.URL}).FetchPage(context.Background(), 1, 10, "")
	require.NoError(t, err)

	out, err := json.Marshal(podcasts[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":1`)

	out, err = json.Marshal(podcasts[1])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":"pod-2"`)
}

func TestFetchTotalCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "250", q.Get("limit"))
		assert.Empty(t, q.Get("page"))
		assert.Equal(t, "news", q.Get("search"))

		// Elements are counted without being decoded into Podcast
		w.Write([]byte(`[1, "two", {"id": 3}, null]`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, CountProbeLimit: 250})
	count, err := client.FetchTotalCount(context.Background(), "news")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestFetchTotalCount_DefaultProbeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10000", r.URL.Query().Get("limit"))
		_, hasSearch := r.URL.Query()["search"]
		assert.False(t, hasSearch)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	count, err := NewClient(Config{BaseURL: server.URL}).FetchTotalCount(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestClient_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not": "an array"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL})

			_, err := client.FetchPage(context.Background(), 1, 10, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeUpstream))

			_, err = client.FetchTotalCount(context.Background(), "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeUpstream))
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(Config{BaseURL: url}).FetchPage(context.Background(), 1, 10, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUpstream))
}

func TestClient_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewClient(Config{BaseURL: server.URL}).FetchPage(ctx, 1, 10, "")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_OutboundThrottle(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	// One token, refilled once per hour: the second call must wait and hit the deadline.
	client := NewClient(Config{BaseURL: server.URL, RateLimit: 1.0 / 3600, RateBurst: 1})
	require.NotNil(t, client.limiter)

	_, err := client.FetchTotalCount(context.Background(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.FetchTotalCount(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUpstream))
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchPage_PreservesUpstreamJSON(t *testing.T) {
	upstream := `[{"id":7,"title":null,"isExclusive":null,"episodes":12,"mediaType":["audio"],"images":{"default":"a"}},"odd"]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstream))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	podcasts, err := client.FetchPage(context.Background(), 1, 10, "")
	require.NoError(t, err)
	require.Len(t, podcasts, 2)

	body, err := json.Marshal(podcasts)
	require.NoError(t, err)
	assert.JSONEq(t, upstream, string(body))

	first := podcasts[0]
	assert.Equal(t, "7", first.IDString())
	assert.Empty(t, first.Title)
	assert.False(t, first.IsExclusive)
	assert.Empty(t, first.MediaType)
	assert.Equal(t, "a", first.Images.Default)

	assert.Empty(t, podcasts[1].IDString())
}

func TestPodcast_MarshalWithoutRaw(t *testing.T) {
	body, err := json.Marshal(Podcast{ID: json.RawMessage(`3`), Title: "Built", MediaType: "audio"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, float64(3), decoded["id"])
	assert.Equal(t, "Built", decoded["title"])
	assert.Equal(t, "audio", decoded["mediaType"])
	assert.NotContains(t, decoded, "Raw")
}
