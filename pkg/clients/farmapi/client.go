// Package farmapi is the typed client for the remote livestock API.
package farmapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/karangnongko/goatherd/internal/apperror"
	"github.com/karangnongko/goatherd/internal/domain/models"
)

// Client exposes the livestock API operations used by the dashboard.
type Client interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	ListGoats(ctx context.Context, token string, filter GoatFilter) ([]models.Goat, error)
	GetGoat(ctx context.Context, token, id string) (*models.Goat, error)
	CreateGoat(ctx context.Context, token string, in models.GoatCreate) (*models.Goat, error)
	UpdateGoat(ctx context.Context, token, id string, in models.GoatCreate) (*models.Goat, error)
	DeleteGoat(ctx context.Context, token, id string) error
	GoatStats(ctx context.Context, token string) (*models.GoatStats, error)

	ListFeedingLogs(ctx context.Context, token string, filter LogFilter) ([]models.FeedingLog, error)
	CreateFeedingLog(ctx context.Context, token string, in models.FeedingLogCreate) (*models.FeedingLog, error)
	UpdateFeedingLog(ctx context.Context, token, id string, in models.FeedingLogCreate) (*models.FeedingLog, error)
	DeleteFeedingLog(ctx context.Context, token, id string) error
}

// GoatFilter narrows a goat listing. The zero value imposes no restriction.
type GoatFilter struct {
	Barn models.Barn
}

// LogFilter narrows a feeding-log listing to one month. The zero value
// imposes no restriction.
type LogFilter struct {
	Year  int
	Month time.Month
}

// LoginResult carries the bearer token and actor snapshot returned on login.
type LoginResult struct {
	Token string       `json:"token"`
	User  models.Actor `json:"user"`
}

// APIClient is the resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a livestock API client rooted at the given base URL.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// apiError mirrors the error payload returned by the livestock API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// Login exchanges credentials for a bearer token and the actor snapshot.
// Authentication and network failures collapse into one authentication error
// so the UI cannot leak which of the two occurred.
func (c *APIClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	result := new(LoginResult)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(result).
		SetError(apiErr).
		Post("/login")
	if err != nil {
		return nil, apperror.Wrap(apperror.KindAuthentication, "login failed", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, apperror.New(apperror.KindAuthentication, "invalid username or password")
	}
	if result.Token == "" {
		return nil, apperror.New(apperror.KindAuthentication, "login response missing token")
	}

	return result, nil
}

// checkStatus maps a non-2xx livestock API response onto the error taxonomy.
func checkStatus(resp *resty.Response, apiErr *apiError, op string) error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return apperror.New(apperror.KindAuthorization, fmt.Sprintf("%s: token rejected", op))
	case resp.StatusCode() == http.StatusNotFound:
		return apperror.New(apperror.KindNotFound, fmt.Sprintf("%s: record not found", op))
	case resp.StatusCode() >= http.StatusBadRequest:
		msg := apiErr.text()
		if msg == "" {
			msg = resp.Status()
		}
		return apperror.New(apperror.KindUnknown, fmt.Sprintf("%s: %s", op, msg))
	}
	return nil
}

func networkErr(op string, err error) error {
	return apperror.Wrap(apperror.KindNetwork, op, err)
}

func (c *APIClient) request(ctx context.Context, token string) *resty.Request {
	return c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token)
}
