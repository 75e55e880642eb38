package farmapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/karangnongko/goatherd/internal/domain/models"
)

// ListFeedingLogs fetches feeding logs, optionally restricted to one month.
func (c *APIClient) ListFeedingLogs(ctx context.Context, token string, filter LogFilter) ([]models.FeedingLog, error) {
	var result []models.FeedingLog
	apiErr := new(apiError)

	req := c.request(ctx, token).SetResult(&result).SetError(apiErr)
	if filter.Year != 0 {
		req.SetQueryParam("year", strconv.Itoa(filter.Year))
	}
	if filter.Month != 0 {
		req.SetQueryParam("month", fmt.Sprintf("%02d", int(filter.Month)))
	}

	resp, err := req.Get("/feed-logs")
	if err != nil {
		return nil, networkErr("list feeding logs", err)
	}
	if err := checkStatus(resp, apiErr, "list feeding logs"); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateFeedingLog records a feeding activity; the server assigns id and
// user_id.
func (c *APIClient) CreateFeedingLog(ctx context.Context, token string, in models.FeedingLogCreate) (*models.FeedingLog, error) {
	result := new(models.FeedingLog)
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetBody(in).
		SetResult(result).
		SetError(apiErr).
		Post("/feed-logs")
	if err != nil {
		return nil, networkErr("create feeding log", err)
	}
	if err := checkStatus(resp, apiErr, "create feeding log"); err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateFeedingLog replaces the mutable fields of an existing log. The
// creator reference is never part of the request.
func (c *APIClient) UpdateFeedingLog(ctx context.Context, token, id string, in models.FeedingLogCreate) (*models.FeedingLog, error) {
	result := new(models.FeedingLog)
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetBody(in).
		SetResult(result).
		SetError(apiErr).
		Put(fmt.Sprintf("/feed-logs/%s", id))
	if err != nil {
		return nil, networkErr("update feeding log", err)
	}
	if err := checkStatus(resp, apiErr, "update feeding log"); err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteFeedingLog removes a feeding log permanently.
func (c *APIClient) DeleteFeedingLog(ctx context.Context, token, id string) error {
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetError(apiErr).
		Delete(fmt.Sprintf("/feed-logs/%s", id))
	if err != nil {
		return networkErr("delete feeding log", err)
	}
	return checkStatus(resp, apiErr, "delete feeding log")
}
