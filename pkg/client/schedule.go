package client

import (
	"cinebook/pkg/logger"
	"cinebook/pkg/model"
	"context"
	"net/http"
	"net/url"
	"time"
)

// ScheduleClient checks movie availability against the schedule service.
// Same absence semantics as MovieClient: any failure is absent.
type ScheduleClient struct {
	httpClient *HttpClient
	log        *logger.Logger
}

func NewScheduleClient(baseURL string, timeout time.Duration, log *logger.Logger) *ScheduleClient {
	return &ScheduleClient{
		httpClient: NewHttpClient(baseURL, timeout),
		log:        log,
	}
}

func (c *ScheduleClient) FindScreening(ctx context.Context, movieID, date string) (*model.Screening, bool) {
	path := "/schedule/" + url.PathEscape(movieID) + "/" + url.PathEscape(date)
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		c.log.Warn("Screening lookup failed", "movie_id", movieID, "date", date, "error", err)
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var screening model.Screening
	if err := resp.DecodeJSON(&screening); err != nil {
		c.log.Warn("Screening lookup returned malformed body", "movie_id", movieID, "date", date, "error", err)
		return nil, false
	}
	return &screening, true
}
