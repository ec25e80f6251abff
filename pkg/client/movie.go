package client

import (
	"cinebook/pkg/logger"
	"cinebook/pkg/model"
	"context"
	"net/http"
	"net/url"
	"time"
)

// MovieClient looks movies up in the movie service. Lookups answer found or
// absent only: a network error, a non-200 status or a malformed body all
// count as absent, so callers cannot tell "does not exist" from "service
// down" and must fail identically either way.
type MovieClient struct {
	httpClient *HttpClient
	log        *logger.Logger
}

func NewMovieClient(baseURL string, timeout time.Duration, log *logger.Logger) *MovieClient {
	return &MovieClient{
		httpClient: NewHttpClient(baseURL, timeout),
		log:        log,
	}
}

func (c *MovieClient) FindMovie(ctx context.Context, movieID string) (*model.Movie, bool) {
	resp, err := c.httpClient.GET(ctx, "/movies/"+url.PathEscape(movieID))
	if err != nil {
		c.log.Warn("Movie lookup failed", "movie_id", movieID, "error", err)
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var movie model.Movie
	if err := resp.DecodeJSON(&movie); err != nil {
		c.log.Warn("Movie lookup returned malformed body", "movie_id", movieID, "error", err)
		return nil, false
	}
	return &movie, true
}
