package farmapi

import (
	"context"
	"fmt"

	"github.com/karangnongko/goatherd/internal/domain/models"
)

// ListGoats fetches the goat collection, optionally restricted to one barn.
func (c *APIClient) ListGoats(ctx context.Context, token string, filter GoatFilter) ([]models.Goat, error) {
	var result []models.Goat
	apiErr := new(apiError)

	req := c.request(ctx, token).SetResult(&result).SetError(apiErr)
	if filter.Barn != "" {
		req.SetQueryParam("barn", string(filter.Barn))
	}

	resp, err := req.Get("/goats")
	if err != nil {
		return nil, networkErr("list goats", err)
	}
	if err := checkStatus(resp, apiErr, "list goats"); err != nil {
		return nil, err
	}

	return result, nil
}

// GetGoat fetches a single goat by id.
func (c *APIClient) GetGoat(ctx context.Context, token, id string) (*models.Goat, error) {
	result := new(models.Goat)
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetResult(result).
		SetError(apiErr).
		Get(fmt.Sprintf("/goats/%s", id))
	if err != nil {
		return nil, networkErr("get goat", err)
	}
	if err := checkStatus(resp, apiErr, "get goat"); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateGoat registers a new goat; the server assigns its id.
func (c *APIClient) CreateGoat(ctx context.Context, token string, in models.GoatCreate) (*models.Goat, error) {
	result := new(models.Goat)
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetBody(in).
		SetResult(result).
		SetError(apiErr).
		Post("/goats")
	if err != nil {
		return nil, networkErr("create goat", err)
	}
	if err := checkStatus(resp, apiErr, "create goat"); err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateGoat replaces the mutable fields of an existing goat.
func (c *APIClient) UpdateGoat(ctx context.Context, token, id string, in models.GoatCreate) (*models.Goat, error) {
	result := new(models.Goat)
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetBody(in).
		SetResult(result).
		SetError(apiErr).
		Put(fmt.Sprintf("/goats/%s", id))
	if err != nil {
		return nil, networkErr("update goat", err)
	}
	if err := checkStatus(resp, apiErr, "update goat"); err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteGoat removes a goat permanently.
func (c *APIClient) DeleteGoat(ctx context.Context, token, id string) error {
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetError(apiErr).
		Delete(fmt.Sprintf("/goats/%s", id))
	if err != nil {
		return networkErr("delete goat", err)
	}
	return checkStatus(resp, apiErr, "delete goat")
}

// GoatStats fetches the herd aggregate counts.
func (c *APIClient) GoatStats(ctx context.Context, token string) (*models.GoatStats, error) {
	result := new(models.GoatStats)
	apiErr := new(apiError)

	resp, err := c.request(ctx, token).
		SetResult(result).
		SetError(apiErr).
		Get("/goats/stats")
	if err != nil {
		return nil, networkErr("goat stats", err)
	}
	if err := checkStatus(resp, apiErr, "goat stats"); err != nil {
		return nil, err
	}

	return result, nil
}
