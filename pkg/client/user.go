package client

import (
	"cinebook/pkg/logger"
	"cinebook/pkg/model"
	"context"
	"net/http"
	"net/url"
	"time"
)

// UserClient resolves users and their roles from the user service.
type UserClient struct {
	httpClient *HttpClient
	log        *logger.Logger
}

func NewUserClient(baseURL string, timeout time.Duration, log *logger.Logger) *UserClient {
	return &UserClient{
		httpClient: NewHttpClient(baseURL, timeout),
		log:        log,
	}
}

func (c *UserClient) FindUser(ctx context.Context, userID string) (*model.User, bool) {
	resp, err := c.httpClient.GET(ctx, "/users/"+url.PathEscape(userID))
	if err != nil {
		c.log.Warn("User lookup failed", "user_id", userID, "error", err)
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var user model.User
	if err := resp.DecodeJSON(&user); err != nil {
		c.log.Warn("User lookup returned malformed body", "user_id", userID, "error", err)
		return nil, false
	}
	return &user, true
}
